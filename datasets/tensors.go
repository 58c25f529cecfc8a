package datasets

import (
	"fmt"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

const (
	// BoxDim is the width of a row of Frame.BoxTensor.
	BoxDim = 10
	// RoiDim is the width of a row of Frame.RoiTensor.
	RoiDim = 4
	// EgoPoseDim is the width of a row of Dataset.EgoPoseTensor.
	EgoPoseDim = 7
)

// BoxBatchFlat holds rows of equal width in one contiguous float32 buffer,
// ready to be handed to gomlx.
type BoxBatchFlat struct {
	Data []float32
	Rows int
	Dim  int
}

// MakeBoxBatchFlat packs rows of width dim into a BoxBatchFlat. An empty
// batch keeps dim so that it still converts to a [0, dim] tensor.
func MakeBoxBatchFlat(rows [][]float32, dim int) (*BoxBatchFlat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("row dimension must be positive, got %d", dim)
	}

	n := len(rows)
	flat := make([]float32, n*dim)
	for i := range n {
		if len(rows[i]) != dim {
			return nil, fmt.Errorf("inconsistent row dimensions at row %d: expected %d, got %d",
				i, dim, len(rows[i]))
		}
		copy(flat[i*dim:], rows[i])
	}

	return &BoxBatchFlat{Data: flat, Rows: n, Dim: dim}, nil
}

// ToGomlxTensor converts the batch into a [Rows, Dim] float32 tensor.
func (b *BoxBatchFlat) ToGomlxTensor() (*tensors.Tensor, error) {
	if len(b.Data) != b.Rows*b.Dim {
		return nil, fmt.Errorf("batch holds %d values, expected %d x %d", len(b.Data), b.Rows, b.Dim)
	}
	return tensors.FromFlatDataAndDimensions(b.Data, b.Rows, b.Dim), nil
}

// BoxTensor returns the 3D boxes of the frame as an [N, 10] tensor with rows
// (x, y, z, width, length, height, qw, qx, qy, qz).
func (f *Frame) BoxTensor() (*tensors.Tensor, error) {
	rows := make([][]float32, 0, len(f.Objects3D))
	for _, o := range f.Objects3D {
		rows = append(rows, o.Box.Vector())
	}
	batch, err := MakeBoxBatchFlat(rows, BoxDim)
	if err != nil {
		return nil, err
	}
	return batch.ToGomlxTensor()
}

// RoiTensor returns the 2D boxes of the frame as an [N, 4] tensor with rows
// (xmin, ymin, xmax, ymax).
func (f *Frame) RoiTensor() (*tensors.Tensor, error) {
	rows := make([][]float32, 0, len(f.Objects2D))
	for _, o := range f.Objects2D {
		rows = append(rows, o.Box.Vector())
	}
	batch, err := MakeBoxBatchFlat(rows, RoiDim)
	if err != nil {
		return nil, err
	}
	return batch.ToGomlxTensor()
}

// EgoPoseTensor returns the ego pose of every frame as an [F, 7] tensor with
// rows (x, y, z, qw, qx, qy, qz).
func (d *Dataset) EgoPoseTensor() (*tensors.Tensor, error) {
	rows := make([][]float32, 0, len(d.Frames))
	for _, f := range d.Frames {
		rows = append(rows, f.egoPoseRow())
	}
	batch, err := MakeBoxBatchFlat(rows, EgoPoseDim)
	if err != nil {
		return nil, err
	}
	return batch.ToGomlxTensor()
}

func (f *Frame) egoPoseRow() []float32 {
	t, q := f.EgoPose.Translation, f.EgoPose.Rotation
	return []float32{
		float32(t[0]), float32(t[1]), float32(t[2]),
		float32(q[0]), float32(q[1]), float32(q[2]), float32(q[3]),
	}
}
