package datasets

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
dataset: data/t4
task: tracking3d
frame_tolerance_us: 50000
filtering:
  labels: [car, pedestrian]
  max_distance: 80
  min_num_points: 3
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "data/t4", cfg.Dataset)
	assert.Equal(t, TaskTracking3D, cfg.Task)
	assert.Equal(t, int64(50_000), cfg.FrameTolerance)
	assert.Equal(t, DefaultFutureSeconds, cfg.FutureSeconds)
	assert.Equal(t, []string{"car", "pedestrian"}, cfg.Filtering.Labels)
	assert.Equal(t, 80.0, cfg.Filtering.MaxDistance)
	assert.Equal(t, 3, cfg.Filtering.MinNumPoints)
	assert.True(t, math.IsInf(cfg.Filtering.MaxSpeed, 1), "unset keys keep their default")
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "dataset": "data/t4",
  "task": "prediction3d",
  "future_seconds": 3,
  "filtering": {"uuids": ["i1"], "min_speed": 0.5}
}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, TaskPrediction3D, cfg.Task)
	assert.Equal(t, 3.0, cfg.FutureSeconds)
	assert.Equal(t, DefaultFrameTolerance, cfg.FrameTolerance)
	assert.Equal(t, []string{"i1"}, cfg.Filtering.UUIDs)
	assert.Equal(t, 0.5, cfg.Filtering.MinSpeed)
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"bad.yaml":       "dataset: x\ntask: detection4d\n",
		"bad.json":       `{"dataset": "x", "task": "detection4d"}`,
		"range.json":     `{"dataset": "x", "task": "detection3d", "filtering": {"min_distance": 10, "max_distance": 5}}`,
		"future.yml":     "task: prediction3d\nfuture_seconds: -1\n",
		"malformed.json": `{"dataset": `,
	}
	for name, content := range cases {
		_, err := LoadConfig(writeConfig(t, name, content))
		assert.Error(t, err, name)
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigLoad(t *testing.T) {
	dir := newScene3D().write(t)
	cfg := DefaultConfig()
	cfg.Dataset = dir
	cfg.Task = TaskPrediction3D
	cfg.FutureSeconds = 0.6
	cfg.Filtering.Labels = []string{"car"}
	require.NoError(t, cfg.Validate())

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	ds, err := cfg.Load(logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"sa1"}, objectTokens(ds.Frames[0]))
	assert.Equal(t, 1, ds.Frames[0].Objects3D[0].Box.Future.Len())
	assert.NotEmpty(t, hook.AllEntries())
}
