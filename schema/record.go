// Package schema models the tables of a T4 dataset.
//
// A dataset is a directory of JSON files, one per table, where each file is
// an array of flat objects. Every object carries a "token" that identifies it
// within its table; other tables refer to it by storing that token in a
// foreign-key field (e.g. Sample.SceneToken, Instance.CategoryToken).
//
// Layout and intended usage:
//
//   - Each table is a Go struct implementing Record. Fields map 1:1 to the
//     snake_case JSON keys; optional keys are pointer fields tagged omitempty.
//   - FromDict builds a record from a decoded JSON object, rejecting missing
//     keys, unknown keys and values of the wrong shape. ToDict is its inverse.
//   - New builds a record from an object without a token, generating one.
//   - Table is an in-memory, token-indexed store of one table's records that
//     keeps the file order for iteration. References between tables are
//     token lookups into these stores, never pointers.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Record is implemented by every table row type.
type Record interface {
	// Table returns the name of the table the record belongs to.
	Table() Name
	// GetToken returns the record's primary key.
	GetToken() string
	// Validate checks value constraints that the JSON shape alone cannot
	// express, such as non-empty tokens and enum membership.
	Validate() error
}

type fieldSpec struct {
	name     string
	index    int
	optional bool
}

// fieldsOf lists the JSON fields declared by a record struct.
func fieldsOf(t reflect.Type) []fieldSpec {
	specs := make([]fieldSpec, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		specs = append(specs, fieldSpec{
			name:     name,
			index:    i,
			optional: strings.Contains(opts, "omitempty"),
		})
	}
	return specs
}

// FieldNames returns the JSON keys accepted by record type T, required keys
// first in declaration order, then optional keys.
func FieldNames[T Record]() (required, optional []string) {
	var zero T
	for _, f := range fieldsOf(reflect.TypeOf(zero)) {
		if f.optional {
			optional = append(optional, f.name)
		} else {
			required = append(required, f.name)
		}
	}
	return required, optional
}

// FromDict constructs a record of type T from a decoded JSON object. Every
// key must be a declared field and every required field must be present.
// All problems found are reported together.
func FromDict[T Record](m map[string]any) (T, error) {
	var zero, rec T
	if m == nil {
		return zero, validationErrorf("", "expected a JSON object, got null")
	}

	v := reflect.ValueOf(&rec).Elem()
	specs := fieldsOf(v.Type())
	known := make(map[string]bool, len(specs))

	var errs []error
	for _, f := range specs {
		known[f.name] = true
		raw, ok := m[f.name]
		if !ok {
			if !f.optional {
				errs = append(errs, validationErrorf(f.name, "required field is missing"))
			}
			continue
		}
		if err := decodeField(raw, v.Field(f.index).Addr().Interface()); err != nil {
			errs = append(errs, validationErrorf(f.name, "%v", err))
		}
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if !known[k] {
			errs = append(errs, validationErrorf(k, "unknown field for table %s", rec.Table()))
		}
	}
	if len(errs) > 0 {
		return zero, joinErrors(errs)
	}

	if err := rec.Validate(); err != nil {
		return zero, err
	}
	return rec, nil
}

func decodeField(raw any, dst any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// FromJSON reads a single JSON object from path and builds a record from it.
func FromJSON[T Record](path string) (T, error) {
	var zero T
	var m map[string]any
	if err := LoadJSON(path, &m); err != nil {
		return zero, err
	}
	return FromDict[T](m)
}

// New builds a record from m with a freshly generated token. A "token" key
// in m is ignored; m itself is not modified.
func New[T Record](m map[string]any) (T, error) {
	return NewWith[T](defaultTokenGenerator, m)
}

// NewWith is New with an explicit token generator.
func NewWith[T Record](gen TokenGenerator, m map[string]any) (T, error) {
	data := make(map[string]any, len(m)+1)
	for k, v := range m {
		if k == "token" {
			continue
		}
		data[k] = v
	}
	data["token"] = gen.NewToken()
	return FromDict[T](data)
}

// ToDict serializes r into the generic JSON object form accepted by FromDict.
func ToDict(r Record) (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s record: %w", r.Table(), err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode %s record: %w", r.Table(), err)
	}
	return m, nil
}

func nonEmpty(field, value string) error {
	if value == "" {
		return validationErrorf(field, "must not be empty")
	}
	return nil
}

// collect joins the non-nil errors.
func collect(errs ...error) error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return joinErrors(out)
}
