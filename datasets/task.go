package datasets

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNotImplemented is returned for tasks that are valid but have no
	// frame assembly yet.
	ErrNotImplemented = errors.New("task not implemented")
	// ErrInvalidTask is returned for strings that name no task.
	ErrInvalidTask = errors.New("invalid evaluation task")
)

// Task selects the shape of the frames LoadDataset assembles. Its value is
// the name used in configuration files, so a Task compares equal to a plain
// string constant.
type Task string

const (
	TaskDetection3D    Task = "detection3d"
	TaskTracking3D     Task = "tracking3d"
	TaskPrediction3D   Task = "prediction3d"
	TaskSegmentation3D Task = "segmentation3d"
	TaskDetection2D    Task = "detection2d"
	TaskTracking2D     Task = "tracking2d"
	TaskSegmentation2D Task = "segmentation2d"
)

var allTasks = []Task{
	TaskDetection3D,
	TaskTracking3D,
	TaskPrediction3D,
	TaskSegmentation3D,
	TaskDetection2D,
	TaskTracking2D,
	TaskSegmentation2D,
}

// Tasks lists every task, supported or not.
func Tasks() []Task { return slices.Clone(allTasks) }

// ParseTask returns the task named s.
func ParseTask(s string) (Task, error) {
	t := Task(s)
	if !slices.Contains(allTasks, t) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTask, s)
	}
	return t, nil
}

func (t Task) String() string { return string(t) }

func (t Task) Is3D() bool {
	return t == TaskDetection3D || t == TaskTracking3D || t == TaskPrediction3D || t == TaskSegmentation3D
}

func (t Task) Is2D() bool {
	return t == TaskDetection2D || t == TaskTracking2D || t == TaskSegmentation2D
}

func (t Task) IsSegmentation() bool {
	return t == TaskSegmentation3D || t == TaskSegmentation2D
}

// Supported reports whether LoadDataset can assemble frames for t.
func (t Task) Supported() bool {
	return slices.Contains(allTasks, t) && !t.IsSegmentation()
}

// tracksInstances reports whether t follows objects across frames, which
// requires consistent instance annotation chains.
func (t Task) tracksInstances() bool {
	return t == TaskTracking3D || t == TaskPrediction3D
}

// UnmarshalText lets config decoders reject unknown task names.
func (t *Task) UnmarshalText(b []byte) error {
	parsed, err := ParseTask(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Task) MarshalText() ([]byte, error) {
	return []byte(t), nil
}
