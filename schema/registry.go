package schema

import (
	"fmt"
	"path/filepath"
)

type entry struct {
	load   func(path string) (Store, error)
	decode func(m map[string]any) (Record, error)
	empty  func() Store
}

func register[T Record]() entry {
	return entry{
		load: func(path string) (Store, error) {
			t, err := LoadTable[T](path)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
		decode: func(m map[string]any) (Record, error) {
			r, err := FromDict[T](m)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
		empty: func() Store {
			t, _ := NewTable[T](nil)
			return t
		},
	}
}

var registry = map[Name]entry{
	NameAttribute:        register[Attribute](),
	NameCalibratedSensor: register[CalibratedSensor](),
	NameCategory:         register[Category](),
	NameEgoPose:          register[EgoPose](),
	NameInstance:         register[Instance](),
	NameLog:              register[Log](),
	NameMap:              register[Map](),
	NameObjectAnn:        register[ObjectAnn](),
	NameSample:           register[Sample](),
	NameSampleAnnotation: register[SampleAnnotation](),
	NameSampleData:       register[SampleData](),
	NameScene:            register[Scene](),
	NameSensor:           register[Sensor](),
	NameSurfaceAnn:       register[SurfaceAnn](),
	NameVisibility:       register[Visibility](),
}

func lookup(name Name) (entry, error) {
	e, ok := registry[name]
	if !ok {
		return entry{}, fmt.Errorf("unknown table %q", name)
	}
	return e, nil
}

// Load reads the table file at path as table name.
func Load(name Name, path string) (Store, error) {
	e, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return e.load(path)
}

// LoadDir reads <root>/<name>.json.
func LoadDir(root string, name Name) (Store, error) {
	return Load(name, filepath.Join(root, name.Filename()))
}

// Empty returns a table of the given name with no records.
func Empty(name Name) (Store, error) {
	e, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return e.empty(), nil
}

// Decode builds a record of table name from a decoded JSON object.
func Decode(name Name, m map[string]any) (Record, error) {
	e, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return e.decode(m)
}
