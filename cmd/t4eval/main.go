// Command t4eval loads a T4 dataset for one evaluation task, logs what it
// found and optionally writes a JSON summary and a top-down plot of the ego
// trajectory and the annotated boxes.
//
// Usage:
//
//	t4eval -config eval.yaml
//	t4eval -root path/to/annotation -task tracking3d -plot out/scene.png -summary out/summary.json
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Noofbiz/t4devkit/datasets"
	"github.com/Noofbiz/t4devkit/schema"
	"github.com/sirupsen/logrus"
)

type options struct {
	config  string
	root    string
	task    string
	plot    string
	summary string
	verbose bool
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.StringVar(&o.config, "config", "", "path to a JSON or YAML config file (optional)")
	fs.StringVar(&o.root, "root", "", "dataset root directory (overrides config)")
	fs.StringVar(&o.task, "task", "", "evaluation task (overrides config)")
	fs.StringVar(&o.plot, "plot", "", "if set, write a PNG of the ego trajectory and box centres to this path")
	fs.StringVar(&o.summary, "summary", "", "if set, write a JSON summary to this path")
	fs.BoolVar(&o.verbose, "verbose", false, "log per-frame details")
	err := fs.Parse(args)
	return o, err
}

// resolveConfig loads the config file if one is given and layers the
// command line flags over it.
func resolveConfig(o options) (datasets.Config, error) {
	cfg := datasets.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = datasets.LoadConfig(o.config); err != nil {
			return datasets.Config{}, err
		}
	}
	if o.root != "" {
		cfg.Dataset = o.root
	}
	if o.task != "" {
		cfg.Task = datasets.Task(o.task)
	}
	if cfg.Dataset == "" {
		return datasets.Config{}, errors.New("no dataset root: pass -root or set dataset in the config")
	}
	if err := cfg.Validate(); err != nil {
		return datasets.Config{}, err
	}
	return cfg, nil
}

// Summary describes a loaded dataset.
type Summary struct {
	Root      string              `json:"root"`
	Task      datasets.Task       `json:"task"`
	Tables    map[schema.Name]int `json:"tables"`
	Frames    int                 `json:"frames"`
	Objects   int                 `json:"objects"`
	Surfaces  int                 `json:"surfaces"`
	Labels    map[string]int      `json:"labels"`
	Instances int                 `json:"instances"`
	StartTime int64               `json:"start_time"`
	EndTime   int64               `json:"end_time"`
}

func summarize(ds *datasets.Dataset) Summary {
	s := Summary{
		Root:   ds.Root,
		Task:   ds.Task,
		Tables: make(map[schema.Name]int),
		Frames: ds.Len(),
		Labels: make(map[string]int),
	}
	for name, store := range ds.Tables().Stores() {
		s.Tables[name] = store.Len()
	}

	instances := make(map[string]bool)
	for i, f := range ds.Frames {
		if i == 0 || f.UnixTime < s.StartTime {
			s.StartTime = f.UnixTime
		}
		if i == 0 || f.UnixTime > s.EndTime {
			s.EndTime = f.UnixTime
		}
		s.Objects += f.NumObjects()
		s.Surfaces += len(f.Surfaces)
		for _, b := range f.Boxes3D() {
			s.Labels[b.Label.Name]++
			instances[b.UUID] = true
		}
		for _, b := range f.Boxes2D() {
			s.Labels[b.Label.Name]++
			instances[b.UUID] = true
		}
	}
	s.Instances = len(instances)
	return s
}

func logSummary(log logrus.FieldLogger, ds *datasets.Dataset, s Summary) {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, string(name))
	}
	sort.Strings(names)
	for _, name := range names {
		log.WithFields(logrus.Fields{"table": name, "rows": s.Tables[schema.Name(name)]}).Info("table")
	}

	for _, f := range ds.Frames {
		log.WithFields(logrus.Fields{
			"frame":    f.Index,
			"sample":   f.Sample.Token,
			"time":     f.UnixTime,
			"objects":  f.NumObjects(),
			"surfaces": len(f.Surfaces),
		}).Debug("frame")
	}

	log.WithFields(logrus.Fields{
		"task":      s.Task,
		"frames":    s.Frames,
		"objects":   s.Objects,
		"instances": s.Instances,
	}).Info("dataset summary")
}

func run(o options, log *logrus.Logger) error {
	cfg, err := resolveConfig(o)
	if err != nil {
		return err
	}

	ds, err := cfg.Load(log)
	if errors.Is(err, datasets.ErrNotImplemented) {
		return fmt.Errorf("task %s is not supported yet: %w", cfg.Task, err)
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	s := summarize(ds)
	logSummary(log, ds, s)

	if o.summary != "" {
		if err := schema.SaveJSON(o.summary, s); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		log.Infof("Summary written to %s", o.summary)
	}
	if o.plot != "" {
		if err := plotDataset(o.plot, ds); err != nil {
			return fmt.Errorf("failed to generate plot: %w", err)
		}
		log.Infof("Plot written to %s", o.plot)
	}
	return nil
}

func main() {
	o, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log := logrus.StandardLogger()
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(o, log); err != nil {
		log.Fatalf("%v", err)
	}
}
