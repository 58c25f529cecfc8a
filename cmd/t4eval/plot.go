package main

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/Noofbiz/t4devkit/datasets"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// plotDataset writes a top-down PNG of the ego trajectory (blue line) and
// the centres of every 3D box (grey points), both in the map frame.
func plotDataset(path string, ds *datasets.Dataset) error {
	p := plot.New()
	p.Title.Text = "Ego trajectory (blue) and box centres (grey)"
	p.X.Label.Text = "x [m]"
	p.Y.Label.Text = "y [m]"

	ego := make(plotter.XYs, 0, ds.Len())
	var boxes plotter.XYs
	for _, f := range ds.Frames {
		ego = append(ego, plotter.XY{X: f.EgoPose.Translation[0], Y: f.EgoPose.Translation[1]})
		for _, b := range f.Boxes3D() {
			boxes = append(boxes, plotter.XY{X: b.Position[0], Y: b.Position[1]})
		}
	}

	if len(boxes) > 0 {
		sc, err := plotter.NewScatter(boxes)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = color.RGBA{R: 120, G: 120, B: 120, A: 180}
		sc.GlyphStyle.Radius = vg.Points(1.8)
		p.Add(sc)
		p.Legend.Add("boxes", sc)
	}

	if len(ego) > 0 {
		line, err := plotter.NewLine(ego)
		if err != nil {
			return err
		}
		line.Color = color.RGBA{R: 20, G: 80, B: 200, A: 220}
		line.Width = vg.Points(1.2)
		p.Add(line)
		p.Legend.Add("ego", line)
	}

	p.Add(plotter.NewGrid())
	all := append(append(plotter.XYs{}, ego...), boxes...)
	xmin, xmax, ymin, ymax := autoRange(all)
	p.X.Min = xmin
	p.X.Max = xmax
	p.Y.Min = ymin
	p.Y.Max = ymax

	if err := ensureDir(parentDir(path)); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// autoRange computes padded min/max for X and Y for a set of points.
func autoRange(xs plotter.XYs) (xmin, xmax, ymin, ymax float64) {
	if len(xs) == 0 {
		return -1, 1, -1, 1
	}
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, p := range xs {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	padx := (xmax - xmin) * 0.06
	pady := (ymax - ymin) * 0.06
	if padx == 0 {
		padx = 1.0
	}
	if pady == 0 {
		pady = 1.0
	}
	return xmin - padx, xmax + padx, ymin - pady, ymax + pady
}

func parentDir(path string) string {
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}

func ensureDir(path string) error {
	if path == "" {
		return nil
	}
	return os.MkdirAll(path, 0755)
}
