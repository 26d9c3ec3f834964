package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CmpEpsilon is the tolerance used when a vector length is compared to zero.
const CmpEpsilon = 1e-5

// IsZero reports whether v is exactly the zero vector.
func IsZero(v mgl64.Vec2) bool {
	return v[0] == 0 && v[1] == 0
}

// Normalized returns v scaled to unit length, or the zero vector when v is
// too short to normalize.
func Normalized(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l < CmpEpsilon {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}

// Slide removes the component of v along the unit normal n.
func Slide(v, n mgl64.Vec2) mgl64.Vec2 {
	return v.Sub(n.Mul(v.Dot(n)))
}

// Project returns the component of v along the unit direction n.
func Project(v, n mgl64.Vec2) mgl64.Vec2 {
	return n.Mul(v.Dot(n))
}

// AngleBetween returns the angle in radians between two unit vectors. The
// dot product is clamped so rounding never produces NaN.
func AngleBetween(a, b mgl64.Vec2) float64 {
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}

// Rotate rotates v counter-clockwise by angle radians.
func Rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	if angle == 0 {
		return v
	}
	return mgl64.Rotate2D(angle).Mul2x1(v)
}

// Perp returns v rotated by 90 degrees.
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[1], v[0]}
}
