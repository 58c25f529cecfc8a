package datasets

import (
	"math"

	"github.com/Noofbiz/t4devkit/schema"
)

func sub(a, b schema.Vector3) schema.Vector3 {
	return schema.Vector3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scale(v schema.Vector3, s float64) schema.Vector3 {
	return schema.Vector3{v[0] * s, v[1] * s, v[2] * s}
}

func norm(v schema.Vector3) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func isNaNVector(v schema.Vector3) bool {
	return math.IsNaN(v[0]) || math.IsNaN(v[1]) || math.IsNaN(v[2])
}

func nanVector() schema.Vector3 {
	nan := math.NaN()
	return schema.Vector3{nan, nan, nan}
}

func conjugate(q schema.Quaternion) schema.Quaternion {
	return schema.Quaternion{q[0], -q[1], -q[2], -q[3]}
}

// rotate applies the rotation q (w, x, y, z) to v. q need not be normalized.
func rotate(q schema.Quaternion, v schema.Vector3) schema.Vector3 {
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n == 0 {
		return v
	}
	w, x, y, z := q[0]/n, q[1]/n, q[2]/n, q[3]/n

	// v' = v + 2w(u x v) + 2(u x (u x v)), u = (x, y, z)
	cx := y*v[2] - z*v[1]
	cy := z*v[0] - x*v[2]
	cz := x*v[1] - y*v[0]
	ccx := y*cz - z*cy
	ccy := z*cx - x*cz
	ccz := x*cy - y*cx
	return schema.Vector3{
		v[0] + 2*(w*cx+ccx),
		v[1] + 2*(w*cy+ccy),
		v[2] + 2*(w*cz+ccz),
	}
}

// toEgo expresses the map frame point p in the frame of the ego pose.
func toEgo(ego schema.EgoPose, p schema.Vector3) schema.Vector3 {
	return rotate(conjugate(ego.Rotation), sub(p, ego.Translation))
}
