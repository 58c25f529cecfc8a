package schema

import (
	"encoding/json"
	"fmt"
)

// Vector3 is an [x, y, z] triple.
type Vector3 [3]float64

// Vector6 holds linear and angular components, e.g. (vx, vy, vz, yaw_rate,
// pitch_rate, roll_rate).
type Vector6 [6]float64

// Quaternion is a rotation given as [w, x, y, z].
type Quaternion [4]float64

// Roi is an image region given as [xmin, ymin, xmax, ymax] in pixels.
type Roi [4]float64

// encoding/json pads or truncates fixed-size arrays silently, so the tuple
// types check the element count themselves.

func (v *Vector3) UnmarshalJSON(b []byte) error    { return decodeTuple(b, v[:]) }
func (v *Vector6) UnmarshalJSON(b []byte) error    { return decodeTuple(b, v[:]) }
func (q *Quaternion) UnmarshalJSON(b []byte) error { return decodeTuple(b, q[:]) }
func (r *Roi) UnmarshalJSON(b []byte) error        { return decodeTuple(b, r[:]) }

func decodeTuple(b []byte, dst []float64) error {
	var xs []float64
	if err := json.Unmarshal(b, &xs); err != nil {
		return fmt.Errorf("expected a list of %d numbers: %w", len(dst), err)
	}
	if xs == nil {
		return fmt.Errorf("expected a list of %d numbers, got null", len(dst))
	}
	if len(xs) != len(dst) {
		return fmt.Errorf("expected %d elements, got %d", len(dst), len(xs))
	}
	copy(dst, xs)
	return nil
}

// Identity is the unit quaternion.
var Identity = Quaternion{1, 0, 0, 0}

// Width returns xmax - xmin.
func (r Roi) Width() float64 { return r[2] - r[0] }

// Height returns ymax - ymin.
func (r Roi) Height() float64 { return r[3] - r[1] }

// Tokens is a list of foreign keys. It always encodes as an array, never as
// null.
type Tokens []string

func (t Tokens) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// CameraIntrinsic is a 3x3 camera matrix, or empty for non-camera sensors.
type CameraIntrinsic [][]float64

func (c CameraIntrinsic) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([][]float64(c))
}

func (c CameraIntrinsic) validate() error {
	if len(c) == 0 {
		return nil
	}
	if len(c) != 3 {
		return validationErrorf("camera_intrinsic", "expected 3 rows or none, got %d", len(c))
	}
	for i, row := range c {
		if len(row) != 3 {
			return validationErrorf("camera_intrinsic", "row %d: expected 3 columns, got %d", i, len(row))
		}
	}
	return nil
}

// CameraDistortion holds the distortion coefficients, or nothing for
// non-camera sensors.
type CameraDistortion []float64

func (c CameraDistortion) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]float64(c))
}

// RLEMask is a COCO run-length encoded segmentation mask.
type RLEMask struct {
	// Size is (width, height) in pixels.
	Size   []int  `json:"size"`
	Counts string `json:"counts"`
}

func (m RLEMask) validate() error {
	if len(m.Size) != 2 {
		return validationErrorf("mask", "size: expected [width, height], got %d elements", len(m.Size))
	}
	return nil
}

func (m RLEMask) Width() int  { return m.Size[0] }
func (m RLEMask) Height() int { return m.Size[1] }
