package datasets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// DefaultFrameTolerance is the LookupFrame tolerance used when the config
// does not set one, in microseconds.
const DefaultFrameTolerance int64 = 75_000

// Config describes an evaluation run.
type Config struct {
	// Dataset is the root directory of the dataset tables.
	Dataset string `json:"dataset" yaml:"dataset"`
	Task    Task   `json:"task" yaml:"task"`
	// FutureSeconds is the prediction horizon, used by prediction3d.
	FutureSeconds float64 `json:"future_seconds" yaml:"future_seconds"`
	// FrameTolerance bounds LookupFrame, in microseconds.
	FrameTolerance int64        `json:"frame_tolerance_us" yaml:"frame_tolerance_us"`
	Filtering      FilterParams `json:"filtering" yaml:"filtering"`
}

// DefaultConfig returns a config with every optional value set.
func DefaultConfig() Config {
	return Config{
		Task:           TaskDetection3D,
		FutureSeconds:  DefaultFutureSeconds,
		FrameTolerance: DefaultFrameTolerance,
		Filtering:      DefaultFilterParams(),
	}
}

// LoadConfig reads a config file. Files ending in .yaml or .yml are YAML,
// anything else JSON. Keys missing from the file keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the task and fills zero values with defaults.
func (c *Config) Validate() error {
	task, err := ParseTask(string(c.Task))
	if err != nil {
		return err
	}
	c.Task = task
	if c.FutureSeconds < 0 {
		return fmt.Errorf("future_seconds must be >= 0, got %v", c.FutureSeconds)
	}
	if c.FrameTolerance <= 0 {
		c.FrameTolerance = DefaultFrameTolerance
	}
	if c.Filtering.MinDistance > c.Filtering.MaxDistance {
		return fmt.Errorf("filtering: min_distance %v exceeds max_distance %v", c.Filtering.MinDistance, c.Filtering.MaxDistance)
	}
	if c.Filtering.MinSpeed > c.Filtering.MaxSpeed {
		return fmt.Errorf("filtering: min_speed %v exceeds max_speed %v", c.Filtering.MinSpeed, c.Filtering.MaxSpeed)
	}
	return nil
}

// Options returns the LoadDataset options the config describes.
func (c Config) Options(log logrus.FieldLogger) []Option {
	return []Option{
		WithLogger(log),
		WithFilter(c.Filtering),
		WithFutureSeconds(c.FutureSeconds),
	}
}

// Load loads the dataset the config points at.
func (c Config) Load(log logrus.FieldLogger) (*Dataset, error) {
	return LoadDataset(c.Dataset, c.Task, c.Options(log)...)
}
