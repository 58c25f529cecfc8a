package datasets

import (
	"testing"

	"github.com/Noofbiz/t4devkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeBoxBatchFlat(t *testing.T) {
	batch, err := MakeBoxBatchFlat([][]float32{{1, 2, 3}, {4, 5, 6}}, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.Rows)
	assert.Equal(t, 3, batch.Dim)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, batch.Data)

	_, err = MakeBoxBatchFlat([][]float32{{1, 2, 3}, {4, 5}}, 3)
	assert.Error(t, err)

	_, err = MakeBoxBatchFlat([][]float32{{1, 2}}, 3)
	assert.Error(t, err)

	_, err = MakeBoxBatchFlat(nil, 0)
	assert.Error(t, err)

	empty, err := MakeBoxBatchFlat(nil, BoxDim)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Rows)
	assert.Equal(t, BoxDim, empty.Dim)

	tensor, err := empty.ToGomlxTensor()
	require.NoError(t, err)
	assert.Equal(t, []int{0, BoxDim}, tensor.Shape().Dimensions)
}

func TestBoxVector(t *testing.T) {
	dir := newScene3D().write(t)
	ds, err := LoadDataset(dir, TaskDetection3D)
	require.NoError(t, err)

	v := ds.Frames[0].Objects3D[0].Box.Vector()
	assert.Equal(t, []float32{10, 0, 0, 2, 4.5, 1.5, 1, 0, 0, 0}, v)
}

func TestBoxTensorShapes(t *testing.T) {
	dir := newScene3D().write(t)
	ds, err := LoadDataset(dir, TaskDetection3D)
	require.NoError(t, err)

	boxes, err := ds.Frames[0].BoxTensor()
	require.NoError(t, err)
	assert.Equal(t, []int{2, BoxDim}, boxes.Shape().Dimensions)

	boxes, err = ds.Frames[1].BoxTensor()
	require.NoError(t, err)
	assert.Equal(t, []int{1, BoxDim}, boxes.Shape().Dimensions)

	poses, err := ds.EgoPoseTensor()
	require.NoError(t, err)
	assert.Equal(t, []int{3, EgoPoseDim}, poses.Shape().Dimensions)
}

func TestRoiTensorShape(t *testing.T) {
	ds, err := LoadDataset(writeScene2D(t), TaskDetection2D)
	require.NoError(t, err)

	rois, err := ds.Frames[0].RoiTensor()
	require.NoError(t, err)
	assert.Equal(t, []int{1, RoiDim}, rois.Shape().Dimensions)
	assert.Equal(t, []float32{10, 20, 110, 220}, ds.Frames[0].Objects2D[0].Box.Vector())
}

// writeBareScene writes one sample with its ego pose and no annotations.
func writeBareScene(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeRecords(t, dir, schema.Sample{Token: "s1", Timestamp: 1_000_000, SceneToken: "sc1"})
	writeRecords(t, dir, schema.EgoPose{Token: "e1", Timestamp: 1_000_000, Rotation: schema.Identity})
	return dir
}

func TestEmptyFrameTensors(t *testing.T) {
	ds, err := LoadDataset(writeBareScene(t), TaskDetection3D)
	require.NoError(t, err)
	require.Len(t, ds.Frames, 1)

	boxes, err := ds.Frames[0].BoxTensor()
	require.NoError(t, err)
	assert.Equal(t, []int{0, BoxDim}, boxes.Shape().Dimensions)

	rois, err := ds.Frames[0].RoiTensor()
	require.NoError(t, err)
	assert.Equal(t, []int{0, RoiDim}, rois.Shape().Dimensions)

	poses, err := ds.EgoPoseTensor()
	require.NoError(t, err)
	assert.Equal(t, []int{1, EgoPoseDim}, poses.Shape().Dimensions)

	_, inputs, labels, err := NewFrameSource(ds).Yield()
	require.NoError(t, err)
	assert.Equal(t, []int{1, EgoPoseDim}, inputs[0].Shape().Dimensions)
	assert.Equal(t, []int{0, BoxDim}, labels[0].Shape().Dimensions)
}

func TestEmptyDatasetEgoPoseTensor(t *testing.T) {
	ds := newDataset("", TaskDetection3D, &Tables{}, nil)
	poses, err := ds.EgoPoseTensor()
	require.NoError(t, err)
	assert.Equal(t, []int{0, EgoPoseDim}, poses.Shape().Dimensions)
}

func TestEmpty2DFrameRoiTensor(t *testing.T) {
	dir := writeScene2D(t)
	require.NoError(t, removeTable(dir, schema.NameObjectAnn))
	ds, err := LoadDataset(dir, TaskDetection2D)
	require.NoError(t, err)

	rois, err := ds.Frames[0].RoiTensor()
	require.NoError(t, err)
	assert.Equal(t, []int{0, RoiDim}, rois.Shape().Dimensions)
}
