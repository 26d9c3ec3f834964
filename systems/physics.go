package systems

import (
	"github.com/automoto/slide2d/components"
	"github.com/automoto/slide2d/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCharacters resolves the motion of every character and moves its
// collider to the result.
func UpdateCharacters(ecs *ecs.ECS) {
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)

	tags.Character.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		collider := components.Collider.Get(e)

		if err := body.MoveAndSlide(space.Delta); err != nil {
			// The resolver already logged it; the body stays where it was.
			return
		}

		collider.Transform = body.Transform
		space.Space.SetTransform(collider.ID, body.Transform)
		space.Space.SetVelocity(collider.ID, body.LinearVelocity())
	})
}
