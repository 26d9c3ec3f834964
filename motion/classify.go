package motion

import (
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// FloorAngleThreshold is added to the floor angle so that a slope of exactly
// the configured angle is not lost to rounding.
const FloorAngleThreshold = 0.01

// Classification is the kind of surface a contact normal describes.
type Classification uint8

const (
	Wall Classification = iota
	Floor
	Ceiling
)

func (c Classification) String() string {
	switch c {
	case Floor:
		return "floor"
	case Ceiling:
		return "ceiling"
	default:
		return "wall"
	}
}

// Classify maps a unit contact normal to floor, ceiling or wall relative to
// up. A zero up direction makes every contact a wall.
func Classify(normal, up mgl64.Vec2, floorMaxAngle float64) Classification {
	if gamemath.IsZero(up) {
		return Wall
	}
	limit := floorMaxAngle + FloorAngleThreshold
	if gamemath.AngleBetween(normal, up) <= limit {
		return Floor
	}
	if gamemath.AngleBetween(normal, up.Mul(-1)) <= limit {
		return Ceiling
	}
	return Wall
}

// classify sets the contact flags of s from r alone; the last contact of a
// call decides them. Floor and wall contacts both remember the collider so a
// platform can carry the body along either.
func classify(s *State, r Result, cfg Config) Classification {
	s.OnFloor = false
	s.OnWall = false
	s.OnCeiling = false

	if gamemath.IsZero(cfg.UpDirection) {
		s.OnWall = true
		return Wall
	}

	c := Classify(r.Normal, cfg.UpDirection, cfg.FloorMaxAngle)
	switch c {
	case Floor:
		s.OnFloor = true
		s.FloorNormal = r.Normal
		s.FloorBody = r.Collider
		s.FloorVelocity = r.ColliderVelocity
	case Ceiling:
		s.OnCeiling = true
	default:
		s.OnWall = true
		s.FloorBody = r.Collider
		s.FloorVelocity = r.ColliderVelocity
	}
	return c
}
