package main

// Example command that loads a T4 dataset for one evaluation task, prints a
// short description of every frame and converts the first frame into gomlx
// tensors.
//
// Usage:
//   go run ./datasets/example -root path/to/t4/annotation -task detection3d

import (
	"flag"
	"fmt"

	"github.com/Noofbiz/t4devkit/datasets"
	"github.com/sirupsen/logrus"
)

func main() {
	root := flag.String("root", "annotation", "directory holding the dataset tables")
	task := flag.String("task", string(datasets.TaskDetection3D), "evaluation task")
	limit := flag.Int("n", 10, "number of frames to print")
	flag.Parse()

	log := logrus.StandardLogger()

	t, err := datasets.ParseTask(*task)
	if err != nil {
		log.Fatalf("bad -task: %v", err)
	}
	ds, err := datasets.LoadDataset(*root, t, datasets.WithLogger(log))
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	fmt.Printf("Loaded %d frames for %s from %s\n", ds.Len(), ds.Task, ds.Root)

	for i := range min(*limit, ds.Len()) {
		f := ds.Frames[i]
		fmt.Printf("  frame %d: t=%d ego=%v objects=%d surfaces=%d\n",
			f.Index, f.UnixTime, f.EgoPose.Translation, f.NumObjects(), len(f.Surfaces))
		for _, b := range f.Boxes3D() {
			fmt.Printf("    %-24s uuid=%s pos=%v speed=%.2f\n", b.Label, b.UUID, b.Position, b.Speed())
		}
		for _, b := range f.Boxes2D() {
			fmt.Printf("    %-24s uuid=%s roi=%v\n", b.Label, b.UUID, b.Roi)
		}
	}

	if ds.Len() == 0 || !t.Is3D() {
		return
	}
	src := datasets.NewFrameSource(ds)
	_, inputs, labels, err := src.Yield()
	if err != nil {
		log.Fatalf("failed to convert first frame: %v", err)
	}
	fmt.Printf("First frame tensors: ego=%v boxes=%v\n",
		inputs[0].Shape().Dimensions, labels[0].Shape().Dimensions)
}
