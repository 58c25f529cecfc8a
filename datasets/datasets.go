package datasets

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// FrameSource walks the frames of a loaded dataset one at a time and hands
// them out as gomlx tensors, following the Yield/Restart contract of gomlx's
// train.Dataset.
//
// Each Yield returns the *Frame as spec, the ego pose as a [1, 7] input and
// the 3D boxes as an [N, 10] label. Once every frame has been yielded it
// returns io.EOF until Restart is called.
type FrameSource struct {
	ds    *Dataset
	order []int
	pos   int
	rand  *rand.Rand
}

// NewFrameSource returns a source yielding the frames of ds in order.
func NewFrameSource(ds *Dataset) *FrameSource {
	order := make([]int, ds.Len())
	for i := range order {
		order[i] = i
	}
	return &FrameSource{ds: ds, order: order, rand: rand.New(rand.NewSource(1))}
}

// Name returns the name of the dataset
func (s *FrameSource) Name() string {
	return fmt.Sprintf("t4:%s", s.ds.Task)
}

// Len returns the number of frames.
func (s *FrameSource) Len() int { return len(s.order) }

// Shuffle permutes the frame order and restarts the source.
func (s *FrameSource) Shuffle(seed int64) {
	s.rand.Seed(seed)
	s.rand.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
	s.pos = 0
}

// Yield returns the next frame.
func (s *FrameSource) Yield() (spec any, inputs []*tensors.Tensor, labels []*tensors.Tensor, err error) {
	if s.pos >= len(s.order) {
		return nil, nil, nil, io.EOF
	}
	f := &s.ds.Frames[s.order[s.pos]]
	s.pos++

	pose, err := MakeBoxBatchFlat([][]float32{f.egoPoseRow()}, EgoPoseDim)
	if err != nil {
		return nil, nil, nil, err
	}
	in, err := pose.ToGomlxTensor()
	if err != nil {
		return nil, nil, nil, err
	}
	boxes, err := f.BoxTensor()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("frame %d: %w", f.Index, err)
	}
	return f, []*tensors.Tensor{in}, []*tensors.Tensor{boxes}, nil
}

// Restart resets the dataset for a new epoch
func (s *FrameSource) Restart() error {
	s.pos = 0
	return nil
}
