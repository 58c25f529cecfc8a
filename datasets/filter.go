package datasets

import (
	"math"
	"slices"

	"github.com/Noofbiz/t4devkit/schema"
)

// FilterParams selects the ground truth boxes kept in each frame. Ranges are
// inclusive. Distances and positions are measured in the ego frame of the
// sample. Criteria that do not apply to a box (distance for a 2D box, speed
// for a box without velocity) let it through.
type FilterParams struct {
	// Labels keeps boxes whose category name is listed. Empty keeps all.
	Labels []string `json:"labels" yaml:"labels"`
	// UUIDs keeps boxes whose instance token is listed. Empty keeps all.
	UUIDs []string `json:"uuids" yaml:"uuids"`

	MinDistance  float64    `json:"min_distance" yaml:"min_distance"`
	MaxDistance  float64    `json:"max_distance" yaml:"max_distance"`
	MinXY        [2]float64 `json:"min_xy" yaml:"min_xy"`
	MaxXY        [2]float64 `json:"max_xy" yaml:"max_xy"`
	MinSpeed     float64    `json:"min_speed" yaml:"min_speed"`
	MaxSpeed     float64    `json:"max_speed" yaml:"max_speed"`
	MinNumPoints int        `json:"min_num_points" yaml:"min_num_points"`
}

// DefaultFilterParams returns parameters that keep every box.
func DefaultFilterParams() FilterParams {
	inf := math.Inf(1)
	return FilterParams{
		MaxDistance: inf,
		MinXY:       [2]float64{-inf, -inf},
		MaxXY:       [2]float64{inf, inf},
		MaxSpeed:    inf,
	}
}

type boxFilter func(b Box3D, ego schema.EgoPose) bool

func (p FilterParams) filters3D() []boxFilter {
	return []boxFilter{
		func(b Box3D, _ schema.EgoPose) bool { return p.keepLabel(b.Label) },
		func(b Box3D, _ schema.EgoPose) bool { return p.keepUUID(b.UUID) },
		func(b Box3D, ego schema.EgoPose) bool {
			d := norm(sub(b.Position, ego.Translation))
			return p.MinDistance <= d && d <= p.MaxDistance
		},
		func(b Box3D, ego schema.EgoPose) bool {
			local := toEgo(ego, b.Position)
			return p.MinXY[0] <= local[0] && local[0] <= p.MaxXY[0] &&
				p.MinXY[1] <= local[1] && local[1] <= p.MaxXY[1]
		},
		func(b Box3D, _ schema.EgoPose) bool {
			if !b.HasVelocity() {
				return true
			}
			s := b.Speed()
			return p.MinSpeed <= s && s <= p.MaxSpeed
		},
		func(b Box3D, _ schema.EgoPose) bool { return b.NumPoints >= p.MinNumPoints },
	}
}

func (p FilterParams) keepLabel(l SemanticLabel) bool {
	return len(p.Labels) == 0 || slices.Contains(p.Labels, l.Name)
}

func (p FilterParams) keepUUID(uuid string) bool {
	return len(p.UUIDs) == 0 || slices.Contains(p.UUIDs, uuid)
}

// Keep3D reports whether b passes every filter for a sample at pose ego.
func (p FilterParams) Keep3D(b Box3D, ego schema.EgoPose) bool {
	for _, f := range p.filters3D() {
		if !f(b, ego) {
			return false
		}
	}
	return true
}

// Keep2D reports whether b passes the label and uuid filters, the only ones
// that apply to image boxes.
func (p FilterParams) Keep2D(b Box2D) bool {
	return p.keepLabel(b.Label) && p.keepUUID(b.UUID)
}

// apply drops the objects of f that fail the filters.
func (p FilterParams) apply(f *Frame) {
	f.Objects3D = slices.DeleteFunc(f.Objects3D, func(o Object3D) bool {
		return !p.Keep3D(o.Box, f.EgoPose)
	})
	f.Objects2D = slices.DeleteFunc(f.Objects2D, func(o Object2D) bool {
		return !p.Keep2D(o.Box)
	})
}
