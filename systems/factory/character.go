package factory

import (
	"github.com/automoto/slide2d/archetypes"
	"github.com/automoto/slide2d/components"
	cfg "github.com/automoto/slide2d/config"
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/physics"
	"github.com/automoto/slide2d/scripting"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CharacterShape returns the local box of a character. The origin is the
// middle of the feet.
func CharacterShape(c cfg.CharacterConfig) gamemath.Polygon {
	return gamemath.Rect(-c.Width/2, -c.Height, c.Width, c.Height)
}

// CharacterRays returns the two foot rays, from mid-height down to the
// feet.
func CharacterRays(c cfg.CharacterConfig) [][2]mgl64.Vec2 {
	x := c.Width / 4
	return [][2]mgl64.Vec2{
		{{-x, -c.Height / 2}, {-x, 0}},
		{{x, -c.Height / 2}, {x, 0}},
	}
}

// CreateCharacter spawns a body at (x, y) driven by the walker settings, or
// by script when it is not nil.
func CreateCharacter(ecs *ecs.ECS, x, y float64, walker cfg.CharacterConfig, settings motion.Config, script *scripting.Controller) (*donburi.Entry, error) {
	character := archetypes.Character.Spawn(ecs)
	transform := motion.Transform{Origin: mgl64.Vec2{x, y}}

	c := physics.Collider{
		Kind:      physics.Character,
		Shapes:    []gamemath.Polygon{CharacterShape(walker)},
		Transform: transform,
	}
	if walker.Rays {
		c.Rays = CharacterRays(walker)
	}
	if err := addCollider(ecs, character, c, gamemath.SlopeNone); err != nil {
		return character, err
	}

	body := motion.NewCharacter(ColliderID(character.Entity()))
	body.Transform = transform
	if err := body.SetConfig(settings); err != nil {
		return character, err
	}
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		body.Attach(components.Space.Get(spaceEntry).Resolver)
	}
	components.Body.SetValue(character, components.BodyData{Character: body})

	if script != nil {
		script = script.Clone()
	}
	components.Controller.SetValue(character, components.ControllerData{
		Walker: walker,
		Snap:   settings.Snap,
		Script: script,
	})

	return character, nil
}
