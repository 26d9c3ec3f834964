package factory

import (
	"github.com/automoto/slide2d/archetypes"
	"github.com/automoto/slide2d/components"
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/physics"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/automoto/slide2d/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePlatform creates a kinematic box that travels by (MoveX, MoveY)
// and back.
func CreatePlatform(ecs *ecs.ECS, p leveldata.Platform, fn ease.TweenFunc) (*donburi.Entry, error) {
	platform := archetypes.Platform.Spawn(ecs)
	origin := mgl64.Vec2{p.X, p.Y}

	err := addCollider(ecs, platform, physics.Collider{
		Kind:      physics.Kinematic,
		Shapes:    []gamemath.Polygon{gamemath.Rect(0, 0, p.W, p.H)},
		Transform: motion.Transform{Origin: origin},
	}, gamemath.SlopeNone)

	// One tween out and one back; UpdatePlatforms restarts the sequence.
	seq := gween.NewSequence()
	seq.Add(
		gween.New(0, 1, float32(p.Duration), fn),
		gween.New(1, 0, float32(p.Duration), fn),
	)
	components.Platform.SetValue(platform, components.PlatformData{
		Seq:    seq,
		Origin: origin,
		Path:   mgl64.Vec2{p.MoveX, p.MoveY},
	})

	return platform, err
}
