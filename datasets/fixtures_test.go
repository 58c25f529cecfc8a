package datasets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Noofbiz/t4devkit/schema"
	"github.com/stretchr/testify/require"
)

// writeRecords writes records as the table file of their type under dir.
func writeRecords[T schema.Record](t *testing.T, dir string, records ...T) {
	t.Helper()
	var zero T
	path := filepath.Join(dir, zero.Table().Filename())
	require.NoError(t, schema.SaveTable(path, records))
}

// writeRaw writes content verbatim as the file of table name.
func writeRaw(t *testing.T, dir string, name schema.Name, content string) {
	t.Helper()
	path := filepath.Join(dir, name.Filename())
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func vec(x, y, z float64) *schema.Vector3 {
	return &schema.Vector3{x, y, z}
}

// scene3D describes three samples 0.5 s apart. A car (i1) drives along x at
// 2 m/s and is annotated in every sample; a pedestrian (i2) is annotated in
// the first sample only, with an explicit velocity.
type scene3D struct {
	samples     []schema.Sample
	egoPoses    []schema.EgoPose
	annotations []schema.SampleAnnotation
	instances   []schema.Instance
	categories  []schema.Category
	attributes  []schema.Attribute
	visibility  []schema.Visibility
}

func newScene3D() *scene3D {
	return &scene3D{
		samples: []schema.Sample{
			{Token: "s1", Timestamp: 0, SceneToken: "sc1", Next: "s2"},
			{Token: "s2", Timestamp: 500_000, SceneToken: "sc1", Prev: "s1", Next: "s3"},
			{Token: "s3", Timestamp: 1_000_000, SceneToken: "sc1", Prev: "s2"},
		},
		egoPoses: []schema.EgoPose{
			{Token: "e1", Timestamp: 0, Translation: schema.Vector3{0, 0, 0}, Rotation: schema.Identity},
			{Token: "e2", Timestamp: 500_000, Translation: schema.Vector3{1, 0, 0}, Rotation: schema.Identity},
			{Token: "e3", Timestamp: 1_000_000, Translation: schema.Vector3{2, 0, 0}, Rotation: schema.Identity},
		},
		annotations: []schema.SampleAnnotation{
			{
				Token: "sa1", SampleToken: "s1", InstanceToken: "i1", AttributeTokens: schema.Tokens{"at1"},
				VisibilityToken: "v1", Translation: schema.Vector3{10, 0, 0}, Size: schema.Vector3{2, 4.5, 1.5},
				Rotation: schema.Identity, NumLidarPts: 10, Next: "sa2",
			},
			{
				Token: "sa2", SampleToken: "s2", InstanceToken: "i1", AttributeTokens: schema.Tokens{"at1"},
				VisibilityToken: "v1", Translation: schema.Vector3{11, 0, 0}, Size: schema.Vector3{2, 4.5, 1.5},
				Rotation: schema.Identity, NumLidarPts: 10, Prev: "sa1", Next: "sa3",
			},
			{
				Token: "sa3", SampleToken: "s3", InstanceToken: "i1", AttributeTokens: schema.Tokens{"at1"},
				VisibilityToken: "v1", Translation: schema.Vector3{12, 0, 0}, Size: schema.Vector3{2, 4.5, 1.5},
				Rotation: schema.Identity, NumLidarPts: 10, Prev: "sa2",
			},
			{
				Token: "sa4", SampleToken: "s1", InstanceToken: "i2", AttributeTokens: schema.Tokens{},
				VisibilityToken: "", Translation: schema.Vector3{0, 5, 0}, Size: schema.Vector3{0.6, 0.6, 1.7},
				Rotation: schema.Identity, NumLidarPts: 2, Velocity: vec(0, 1, 0),
			},
		},
		instances: []schema.Instance{
			{Token: "i1", CategoryToken: "c1", InstanceName: "car:1", NbrAnnotations: 3, FirstAnnotationToken: "sa1", LastAnnotationToken: "sa3"},
			{Token: "i2", CategoryToken: "c2", InstanceName: "pedestrian:1", NbrAnnotations: 1, FirstAnnotationToken: "sa4", LastAnnotationToken: "sa4"},
		},
		categories: []schema.Category{
			{Token: "c1", Name: "car"},
			{Token: "c2", Name: "pedestrian"},
		},
		attributes: []schema.Attribute{
			{Token: "at1", Name: "vehicle_state.moving"},
		},
		visibility: []schema.Visibility{
			{Token: "v1", Level: "v80-100"},
		},
	}
}

func (s *scene3D) write(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeRecords(t, dir, s.samples...)
	writeRecords(t, dir, s.egoPoses...)
	writeRecords(t, dir, s.annotations...)
	writeRecords(t, dir, s.instances...)
	writeRecords(t, dir, s.categories...)
	writeRecords(t, dir, s.attributes...)
	writeRecords(t, dir, s.visibility...)
	return dir
}

// scene2D is a single sample with one camera image carrying one object and
// one surface annotation.
func writeScene2D(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeRecords(t, dir, schema.Sample{Token: "s1", Timestamp: 100, SceneToken: "sc1"})
	writeRecords(t, dir, schema.EgoPose{Token: "e1", Timestamp: 90, Rotation: schema.Identity})
	writeRecords(t, dir, schema.Sensor{Token: "se1", Channel: "CAM_FRONT", Modality: schema.ModalityCamera})
	writeRecords(t, dir, schema.CalibratedSensor{Token: "cs1", SensorToken: "se1", Rotation: schema.Identity})
	writeRecords(t, dir, schema.SampleData{
		Token: "sd1", SampleToken: "s1", EgoPoseToken: "e1", CalibratedSensorToken: "cs1",
		Filename: "data/CAM_FRONT/0.jpg", FileFormat: schema.FileFormatJPG, Width: 1920, Height: 1080,
		Timestamp: 95, IsKeyFrame: true,
	})
	writeRecords(t, dir,
		schema.Category{Token: "c1", Name: "car"},
		schema.Category{Token: "c2", Name: "road"},
	)
	writeRecords(t, dir, schema.Attribute{Token: "at1", Name: "occlusion_state.none"})
	writeRecords(t, dir, schema.Instance{Token: "i1", CategoryToken: "c1", InstanceName: "car:1"})
	writeRecords(t, dir, schema.ObjectAnn{
		Token: "o1", SampleDataToken: "sd1", InstanceToken: "i1", CategoryToken: "c1",
		AttributeTokens: schema.Tokens{"at1"}, Bbox: schema.Roi{10, 20, 110, 220},
		Mask: schema.RLEMask{Size: []int{1920, 1080}, Counts: "AAA="},
	})
	writeRecords(t, dir, schema.SurfaceAnn{
		Token: "su1", SampleDataToken: "sd1", CategoryToken: "c2",
		Mask: schema.RLEMask{Size: []int{1920, 1080}, Counts: "BBB="},
	})
	return dir
}

func removeTable(dir string, name schema.Name) error {
	return os.Remove(filepath.Join(dir, name.Filename()))
}
