package components

import (
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/physics"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// ColliderData mirrors what an entity placed in the physics space.
type ColliderData struct {
	ID        motion.ColliderID
	Kind      physics.Kind
	Shapes    []gamemath.Polygon
	Transform motion.Transform
	// Slope is the ramp type for ramp solids.
	Slope string
}

// Bounds returns the world AABB of the collider's shapes.
func (c *ColliderData) Bounds() (lo, hi mgl64.Vec2) {
	var dst gamemath.Polygon
	for i, sh := range c.Shapes {
		dst = sh.Transformed(dst, c.Transform.Origin, c.Transform.Rotation)
		l, h := dst.Bounds()
		if i == 0 {
			lo, hi = l, h
			continue
		}
		lo = mgl64.Vec2{min(lo[0], l[0]), min(lo[1], l[1])}
		hi = mgl64.Vec2{max(hi[0], h[0]), max(hi[1], h[1])}
	}
	return lo, hi
}

var Collider = donburi.NewComponentType[ColliderData]()
