package factory

import (
	"github.com/automoto/slide2d/archetypes"
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/physics"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSolid creates a static box with its top-left corner at (x, y).
func CreateSolid(ecs *ecs.ECS, x, y, w, h float64) (*donburi.Entry, error) {
	solid := archetypes.Solid.Spawn(ecs)
	err := addCollider(ecs, solid, physics.Collider{
		Kind:      physics.Static,
		Shapes:    []gamemath.Polygon{gamemath.Rect(0, 0, w, h)},
		Transform: motion.Transform{Origin: mgl64.Vec2{x, y}},
	}, gamemath.SlopeNone)
	return solid, err
}

// CreateRamp creates a 45 degree ramp tile. The collider is the actual
// triangle, so the slide algorithm sees the sloped normal.
func CreateRamp(ecs *ecs.ECS, x, y, w, h float64, slopeType string) (*donburi.Entry, error) {
	ramp := archetypes.Ramp.Spawn(ecs)
	err := addCollider(ecs, ramp, physics.Collider{
		Kind:      physics.Static,
		Shapes:    []gamemath.Polygon{gamemath.RampPolygon(w, h, slopeType)},
		Tags:      []string{slopeType},
		Transform: motion.Transform{Origin: mgl64.Vec2{x, y}},
	}, slopeType)
	return ramp, err
}
