package archetypes

import (
	"github.com/automoto/slide2d/components"
	cfg "github.com/automoto/slide2d/config"
	"github.com/automoto/slide2d/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Solid = newArchetype(
		tags.Solid,
		components.Collider,
	)
	Ramp = newArchetype(
		tags.Solid,
		tags.Ramp,
		components.Collider,
	)
	Platform = newArchetype(
		tags.Platform,
		components.Collider,
		components.Platform,
	)
	Character = newArchetype(
		tags.Character,
		components.Collider,
		components.Body,
		components.Controller,
		components.Input,
	)
	Space = newArchetype(
		components.Space,
	)
	Level = newArchetype(
		components.Level,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
