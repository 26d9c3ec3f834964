package resolvspace

import (
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// Kind is how a collider takes part in motion queries.
type Kind uint8

const (
	// Static colliders never move: level solids and ramps.
	Static Kind = iota
	// Kinematic colliders are moved by code and report a velocity, like
	// moving platforms.
	Kinematic
	// Dynamic colliders are skipped by queries with infinite inertia.
	Dynamic
	// Character colliders are bodies driven by the motion resolver.
	Character
)

// Resolv tags attached to collider objects.
const (
	TagCollider  = "collider"
	TagSolid     = "solid"
	TagPlatform  = "platform"
	TagDynamic   = "dynamic"
	TagCharacter = "character"
	TagRamp      = "ramp"
)

func (k Kind) String() string {
	switch k {
	case Kinematic:
		return TagPlatform
	case Dynamic:
		return TagDynamic
	case Character:
		return TagCharacter
	default:
		return TagSolid
	}
}

// Ray is a separation ray in the collider's local space, cast from From to
// To.
type Ray struct {
	From mgl64.Vec2
	To   mgl64.Vec2
}

// Length returns the ray length.
func (r Ray) Length() float64 { return r.To.Sub(r.From).Len() }

// Collider is a set of convex shapes placed in the space. Shapes and Rays
// are in local space; Transform places them.
type Collider struct {
	ID        motion.ColliderID
	Kind      Kind
	Shapes    []gamemath.Polygon
	Rays      []Ray
	Transform motion.Transform
	Velocity  mgl64.Vec2
	// Tags are extra resolv tags, such as TagRamp.
	Tags []string
	// Data is free for the owner, typically the ECS entry.
	Data any

	// Object is the broadphase proxy covering the collider's bounds.
	Object *resolv.Object

	world []gamemath.Polygon
}

// WorldShapes returns the shapes at the collider's transform.
func (c *Collider) WorldShapes() []gamemath.Polygon { return c.world }

func (c *Collider) place() {
	if cap(c.world) < len(c.Shapes) {
		c.world = make([]gamemath.Polygon, len(c.Shapes))
	}
	c.world = c.world[:len(c.Shapes)]
	for i, sh := range c.Shapes {
		c.world[i] = sh.Transformed(c.world[i], c.Transform.Origin, c.Transform.Rotation)
	}
	if c.Object == nil {
		return
	}
	lo, hi := c.bounds()
	c.Object.X, c.Object.Y = lo[0], lo[1]
	c.Object.W, c.Object.H = max(hi[0]-lo[0], 1), max(hi[1]-lo[1], 1)
}

func (c *Collider) bounds() (lo, hi mgl64.Vec2) {
	for i, sh := range c.world {
		l, h := sh.Bounds()
		if i == 0 {
			lo, hi = l, h
			continue
		}
		lo = mgl64.Vec2{min(lo[0], l[0]), min(lo[1], l[1])}
		hi = mgl64.Vec2{max(hi[0], h[0]), max(hi[1], h[1])}
	}
	return lo, hi
}
