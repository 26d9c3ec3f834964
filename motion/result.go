package motion

import (
	"math"

	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// ColliderID identifies a collision object in the physics space. The zero
// value means no collider.
type ColliderID uint64

// NoCollider is the zero ColliderID.
const NoCollider ColliderID = 0

// Transform is the global placement of a body.
type Transform struct {
	Origin   mgl64.Vec2
	Rotation float64
}

// Translated returns t moved by offset.
func (t Transform) Translated(offset mgl64.Vec2) Transform {
	t.Origin = t.Origin.Add(offset)
	return t
}

// Result describes the outcome of one motion query. A Result is a value:
// the store keeps its own copy.
type Result struct {
	// Motion is the safe displacement actually taken, including any
	// recovery out of penetration.
	Motion mgl64.Vec2
	// Remainder is the requested motion that could not be applied.
	Remainder mgl64.Vec2

	Point  mgl64.Vec2
	Normal mgl64.Vec2
	Depth  float64

	SafeFraction   float64
	UnsafeFraction float64

	LocalShape       int
	Collider         ColliderID
	ColliderShape    int
	ColliderVelocity mgl64.Vec2
}

// Position returns the contact point in global coordinates.
func (r Result) Position() mgl64.Vec2 { return r.Point }

// Travel returns the distance vector moved before the contact.
func (r Result) Travel() mgl64.Vec2 { return r.Motion }

// TravelDistance returns the length of Travel.
func (r Result) TravelDistance() float64 { return r.Motion.Len() }

// RemainderLength returns the length of the unapplied motion.
func (r Result) RemainderLength() float64 { return r.Remainder.Len() }

// Angle returns the angle between the contact normal and up. It returns 0
// when up is the zero vector.
func (r Result) Angle(up mgl64.Vec2) float64 {
	if gamemath.IsZero(up) {
		return 0
	}
	return gamemath.AngleBetween(r.Normal, up)
}

// HasCollider reports whether the contact names a collider.
func (r Result) HasCollider() bool { return r.Collider != NoCollider }

func (r Result) finite() bool {
	for _, v := range [...]float64{r.Motion[0], r.Motion[1], r.Normal[0], r.Normal[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
