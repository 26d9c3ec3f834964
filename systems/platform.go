package systems

import (
	"github.com/automoto/slide2d/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlatforms advances every platform tween, moves its collider and
// publishes the velocity it moved at so riders inherit it.
func UpdatePlatforms(ecs *ecs.ECS) {
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)
	dt := space.Delta
	if dt <= 0 {
		return
	}

	components.Platform.Each(ecs.World, func(e *donburi.Entry) {
		platform := components.Platform.Get(e)
		collider := components.Collider.Get(e)

		value, _, done := platform.Seq.Update(float32(dt))
		if done {
			platform.Seq.Reset()
		}

		pos := platform.At(float64(value))
		platform.Velocity = pos.Sub(collider.Transform.Origin).Mul(1 / dt)
		collider.Transform.Origin = pos

		space.Space.SetTransform(collider.ID, collider.Transform)
		space.Space.SetVelocity(collider.ID, platform.Velocity)
	})
}
