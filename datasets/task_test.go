package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTask(t *testing.T) {
	for _, task := range Tasks() {
		s := string(task)
		parsed, err := ParseTask(s)
		require.NoError(t, err)
		assert.Equal(t, task, parsed)
		assert.Equal(t, s, parsed.String())
	}

	assert.True(t, TaskDetection3D == "detection3d")

	for _, bad := range []string{"", "Detection3D", "detection", "segmentation"} {
		_, err := ParseTask(bad)
		assert.ErrorIs(t, err, ErrInvalidTask, "input %q", bad)
	}
}

func TestTaskKinds(t *testing.T) {
	cases := []struct {
		task                   Task
		is3D, is2D, supported bool
	}{
		{TaskDetection3D, true, false, true},
		{TaskTracking3D, true, false, true},
		{TaskPrediction3D, true, false, true},
		{TaskSegmentation3D, true, false, false},
		{TaskDetection2D, false, true, true},
		{TaskTracking2D, false, true, true},
		{TaskSegmentation2D, false, true, false},
	}
	require.Len(t, Tasks(), len(cases))
	for _, tc := range cases {
		assert.Equal(t, tc.is3D, tc.task.Is3D(), "%s", tc.task)
		assert.Equal(t, tc.is2D, tc.task.Is2D(), "%s", tc.task)
		assert.Equal(t, tc.supported, tc.task.Supported(), "%s", tc.task)
		assert.Equal(t, !tc.supported, tc.task.IsSegmentation(), "%s", tc.task)
	}
	assert.False(t, Task("bogus").Supported())
}

func TestTaskUnmarshalText(t *testing.T) {
	var task Task
	require.NoError(t, task.UnmarshalText([]byte("prediction3d")))
	assert.Equal(t, TaskPrediction3D, task)

	assert.ErrorIs(t, task.UnmarshalText([]byte("prediction4d")), ErrInvalidTask)
	assert.Equal(t, TaskPrediction3D, task, "failed decode keeps the old value")
}

func TestTaskTables(t *testing.T) {
	required, optional := TaskDetection3D.Tables()
	assert.Len(t, required, 2)
	assert.Len(t, optional, 8)

	required, optional = TaskTracking2D.Tables()
	assert.Len(t, required, 5)
	assert.Len(t, optional, 5)

	required, optional = Task("bogus").Tables()
	assert.Empty(t, required)
	assert.Empty(t, optional)
}
