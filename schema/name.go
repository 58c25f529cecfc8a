package schema

import "fmt"

// Name identifies one table of the dataset. Its value is also the base name
// of the table file.
type Name string

const (
	NameAttribute        Name = "attribute"
	NameCalibratedSensor Name = "calibrated_sensor"
	NameCategory         Name = "category"
	NameEgoPose          Name = "ego_pose"
	NameInstance         Name = "instance"
	NameLog              Name = "log"
	NameMap              Name = "map"
	NameObjectAnn        Name = "object_ann"
	NameSample           Name = "sample"
	NameSampleAnnotation Name = "sample_annotation"
	NameSampleData       Name = "sample_data"
	NameScene            Name = "scene"
	NameSensor           Name = "sensor"
	NameSurfaceAnn       Name = "surface_ann"
	NameVisibility       Name = "visibility"
)

// Names lists every known table in a stable order.
func Names() []Name {
	return []Name{
		NameAttribute,
		NameCalibratedSensor,
		NameCategory,
		NameEgoPose,
		NameInstance,
		NameLog,
		NameMap,
		NameObjectAnn,
		NameSample,
		NameSampleAnnotation,
		NameSampleData,
		NameScene,
		NameSensor,
		NameSurfaceAnn,
		NameVisibility,
	}
}

// ParseName returns the table name matching s.
func ParseName(s string) (Name, error) {
	n := Name(s)
	if _, ok := registry[n]; !ok {
		return "", fmt.Errorf("unknown table %q", s)
	}
	return n, nil
}

// Filename returns the file holding the table, e.g. "sample.json".
func (n Name) Filename() string { return string(n) + ".json" }

func (n Name) String() string { return string(n) }
