package factory

import (
	"io"

	"github.com/automoto/slide2d/archetypes"
	"github.com/automoto/slide2d/components"
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/physics"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSpace spawns the singleton holding the physics space. bodies
// resolves floor colliders to their live velocity.
func CreateSpace(ecs *ecs.ECS, space physics.Space, bodies motion.Bodies, delta float64, log logrus.FieldLogger) *donburi.Entry {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	entry := archetypes.Space.Spawn(ecs)
	components.Space.SetValue(entry, components.SpaceData{
		Space:    space,
		Resolver: motion.NewResolver(space, bodies, log),
		Log:      log,
		Delta:    delta,
	})
	return entry
}

// ColliderID returns the id an entity's collider is registered under.
func ColliderID(e donburi.Entity) motion.ColliderID {
	return motion.ColliderID(e)
}

// addCollider registers the entry's collider in the space under the entity
// identity and mirrors it in the Collider component.
func addCollider(ecs *ecs.ECS, entry *donburi.Entry, c physics.Collider, slope string) error {
	c.ID = ColliderID(entry.Entity())
	components.Collider.SetValue(entry, components.ColliderData{
		ID:        c.ID,
		Kind:      c.Kind,
		Shapes:    c.Shapes,
		Transform: c.Transform,
		Slope:     slope,
	})

	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Space.Get(spaceEntry).Space.Add(c)
}

// Destroy removes an entity and its collider.
func Destroy(ecs *ecs.ECS, entry *donburi.Entry) {
	if !entry.Valid() {
		return
	}
	if entry.HasComponent(components.Collider) {
		if spaceEntry, ok := components.Space.First(ecs.World); ok {
			components.Space.Get(spaceEntry).Space.Remove(components.Collider.Get(entry).ID)
		}
	}
	ecs.World.Remove(entry.Entity())
}
