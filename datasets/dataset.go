package datasets

import (
	"sort"

	"github.com/Noofbiz/t4devkit/schema"
)

// Frame is one sample joined with its ego pose and annotations.
type Frame struct {
	// Index is the position of the sample in sample.json.
	Index    int
	UnixTime int64
	Sample   schema.Sample
	EgoPose  schema.EgoPose

	// Objects3D is filled for 3D tasks, Objects2D and Surfaces for 2D tasks.
	Objects3D []Object3D
	Objects2D []Object2D
	Surfaces  []Surface
}

// Boxes3D returns the 3D boxes of the frame.
func (f *Frame) Boxes3D() []Box3D {
	boxes := make([]Box3D, len(f.Objects3D))
	for i, o := range f.Objects3D {
		boxes[i] = o.Box
	}
	return boxes
}

// Boxes2D returns the 2D boxes of the frame.
func (f *Frame) Boxes2D() []Box2D {
	boxes := make([]Box2D, len(f.Objects2D))
	for i, o := range f.Objects2D {
		boxes[i] = o.Box
	}
	return boxes
}

// NumObjects returns the number of annotations in the frame.
func (f *Frame) NumObjects() int {
	return len(f.Objects3D) + len(f.Objects2D)
}

// Tables holds the table stores a dataset was assembled from. Tables the
// task does not read are nil; optional tables missing on disk are empty.
type Tables struct {
	Sample           *schema.Table[schema.Sample]
	EgoPose          *schema.Table[schema.EgoPose]
	SampleData       *schema.Table[schema.SampleData]
	SampleAnnotation *schema.Table[schema.SampleAnnotation]
	ObjectAnn        *schema.Table[schema.ObjectAnn]
	SurfaceAnn       *schema.Table[schema.SurfaceAnn]
	Instance         *schema.Table[schema.Instance]
	Category         *schema.Table[schema.Category]
	Attribute        *schema.Table[schema.Attribute]
	Visibility       *schema.Table[schema.Visibility]
	CalibratedSensor *schema.Table[schema.CalibratedSensor]
	Sensor           *schema.Table[schema.Sensor]
}

// Stores returns the loaded tables keyed by name.
func (t *Tables) Stores() map[schema.Name]schema.Store {
	out := map[schema.Name]schema.Store{}
	add := func(s schema.Store, loaded bool) {
		if loaded {
			out[s.Name()] = s
		}
	}
	add(t.Sample, t.Sample != nil)
	add(t.EgoPose, t.EgoPose != nil)
	add(t.SampleData, t.SampleData != nil)
	add(t.SampleAnnotation, t.SampleAnnotation != nil)
	add(t.ObjectAnn, t.ObjectAnn != nil)
	add(t.SurfaceAnn, t.SurfaceAnn != nil)
	add(t.Instance, t.Instance != nil)
	add(t.Category, t.Category != nil)
	add(t.Attribute, t.Attribute != nil)
	add(t.Visibility, t.Visibility != nil)
	add(t.CalibratedSensor, t.CalibratedSensor != nil)
	add(t.Sensor, t.Sensor != nil)
	return out
}

// Dataset is the read-only result of LoadDataset.
type Dataset struct {
	Root   string
	Task   Task
	Frames []Frame

	tables *Tables
	// frame indices sorted by UnixTime
	byTime []int
}

func newDataset(root string, task Task, tables *Tables, frames []Frame) *Dataset {
	d := &Dataset{Root: root, Task: task, Frames: frames, tables: tables}
	d.byTime = make([]int, len(frames))
	for i := range frames {
		d.byTime[i] = i
	}
	sort.SliceStable(d.byTime, func(a, b int) bool {
		return frames[d.byTime[a]].UnixTime < frames[d.byTime[b]].UnixTime
	})
	return d
}

func (d *Dataset) Len() int { return len(d.Frames) }

// Tables returns the stores the dataset was built from.
func (d *Dataset) Tables() *Tables { return d.tables }

// LookupFrame returns the frame closest in time to unixTime, provided the
// difference is at most tolerance microseconds. Ties go to the earlier frame.
func (d *Dataset) LookupFrame(unixTime, tolerance int64) (*Frame, bool) {
	if len(d.byTime) == 0 {
		return nil, false
	}
	i := sort.Search(len(d.byTime), func(i int) bool {
		return d.Frames[d.byTime[i]].UnixTime >= unixTime
	})

	best := -1
	var bestDiff int64
	for _, j := range []int{i - 1, i} {
		if j < 0 || j >= len(d.byTime) {
			continue
		}
		diff := d.Frames[d.byTime[j]].UnixTime - unixTime
		if diff < 0 {
			diff = -diff
		}
		if best < 0 || diff < bestDiff {
			best, bestDiff = j, diff
		}
	}
	if bestDiff > tolerance {
		return nil, false
	}
	return &d.Frames[d.byTime[best]], true
}
