package factory

import (
	"errors"
	"fmt"

	"github.com/automoto/slide2d/archetypes"
	"github.com/automoto/slide2d/components"
	cfg "github.com/automoto/slide2d/config"
	"github.com/automoto/slide2d/scripting"
	"github.com/automoto/slide2d/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var ErrNoSpawns = errors.New("factory: level has no spawn points")

// CreateLevel spawns the level entity, every solid, ramp and platform, and
// one character per spawn point. The space singleton must exist.
func CreateLevel(ecs *ecs.ECS, name string, data *leveldata.CollisionData, script *scripting.Controller) (*donburi.Entry, error) {
	if len(data.SpawnPoints) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSpawns, name)
	}

	level := archetypes.Level.Spawn(ecs)
	components.Level.SetValue(level, components.LevelData{Name: name, CollisionData: data})

	for _, r := range data.SolidRects {
		var err error
		if r.SlopeType != "" {
			_, err = CreateRamp(ecs, r.X, r.Y, r.W, r.H, r.SlopeType)
		} else {
			_, err = CreateSolid(ecs, r.X, r.Y, r.W, r.H)
		}
		if err != nil {
			return level, fmt.Errorf("factory: %s solid at %v,%v: %w", name, r.X, r.Y, err)
		}
	}

	fn, err := cfg.Platform.EaseFunc()
	if err != nil {
		return level, err
	}
	for _, p := range data.Platforms {
		if _, err := CreatePlatform(ecs, p, fn); err != nil {
			return level, fmt.Errorf("factory: %s platform at %v,%v: %w", name, p.X, p.Y, err)
		}
	}

	settings := cfg.Motion.Config()
	for _, sp := range data.SpawnPoints {
		if _, err := CreateCharacter(ecs, sp.X, sp.Y, cfg.Character, settings, script); err != nil {
			return level, fmt.Errorf("factory: %s spawn %d: %w", name, sp.Index, err)
		}
	}

	return level, nil
}
