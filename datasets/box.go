package datasets

import (
	"strings"

	"github.com/Noofbiz/t4devkit/schema"
)

// MapFrame is the frame id of boxes expressed in map coordinates.
const MapFrame = "map"

// SemanticLabel is the category name of an object with its attribute names.
type SemanticLabel struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
}

func (l SemanticLabel) String() string {
	if len(l.Attributes) == 0 {
		return l.Name
	}
	return l.Name + "[" + strings.Join(l.Attributes, ",") + "]"
}

// Trajectory is a sequence of future positions of an object.
type Trajectory struct {
	Timestamps []int64          `json:"timestamps"`
	Waypoints  []schema.Vector3 `json:"waypoints"`
}

func (t *Trajectory) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Waypoints)
}

// Box3D is a ground truth 3D bounding box in the map frame.
type Box3D struct {
	UnixTime int64             `json:"unix_time"`
	FrameID  string            `json:"frame_id"`
	Label    SemanticLabel     `json:"semantic_label"`
	Position schema.Vector3    `json:"position"`
	Rotation schema.Quaternion `json:"rotation"`
	// Size is (width, length, height).
	Size schema.Vector3 `json:"size"`
	// Velocity is NaN in every component when it is neither annotated nor
	// estimable.
	Velocity   schema.Vector3 `json:"-"`
	Confidence float64        `json:"confidence"`
	UUID       string         `json:"uuid"`
	NumPoints  int            `json:"num_points"`

	Visibility schema.VisibilityLevel `json:"visibility"`
	Future     *Trajectory            `json:"future,omitempty"`
}

// HasVelocity reports whether Velocity holds a value.
func (b Box3D) HasVelocity() bool { return !isNaNVector(b.Velocity) }

// Speed returns the norm of the velocity, NaN if unknown.
func (b Box3D) Speed() float64 { return norm(b.Velocity) }

// Vector returns (x, y, z, width, length, height, qw, qx, qy, qz).
func (b Box3D) Vector() []float32 {
	return []float32{
		float32(b.Position[0]), float32(b.Position[1]), float32(b.Position[2]),
		float32(b.Size[0]), float32(b.Size[1]), float32(b.Size[2]),
		float32(b.Rotation[0]), float32(b.Rotation[1]), float32(b.Rotation[2]), float32(b.Rotation[3]),
	}
}

// Box2D is a ground truth box on a camera image.
type Box2D struct {
	UnixTime   int64         `json:"unix_time"`
	FrameID    string        `json:"frame_id"`
	Label      SemanticLabel `json:"semantic_label"`
	Roi        schema.Roi    `json:"roi"`
	Confidence float64       `json:"confidence"`
	UUID       string        `json:"uuid"`
}

// Vector returns (xmin, ymin, xmax, ymax).
func (b Box2D) Vector() []float32 {
	return []float32{float32(b.Roi[0]), float32(b.Roi[1]), float32(b.Roi[2]), float32(b.Roi[3])}
}

// Object3D is a sample annotation joined with the records it refers to.
type Object3D struct {
	Annotation schema.SampleAnnotation
	Instance   schema.Instance
	Category   schema.Category
	Attributes []schema.Attribute
	Visibility schema.VisibilityLevel
	Box        Box3D
}

// Object2D is an object annotation joined with the records it refers to.
type Object2D struct {
	Annotation schema.ObjectAnn
	SampleData schema.SampleData
	Sensor     schema.Sensor
	// Instance is the zero value when the annotation has no instance.
	Instance   schema.Instance
	Category   schema.Category
	Attributes []schema.Attribute
	Box        Box2D
}

// Surface is a surface annotation of a camera image.
type Surface struct {
	Annotation schema.SurfaceAnn
	SampleData schema.SampleData
	Category   schema.Category
	FrameID    string
	Label      SemanticLabel
}

func semanticLabel(category schema.Category, attributes []schema.Attribute) SemanticLabel {
	names := make([]string, 0, len(attributes))
	for _, a := range attributes {
		names = append(names, a.Name)
	}
	return SemanticLabel{Name: category.Name, Attributes: names}
}
