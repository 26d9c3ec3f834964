// Package sim runs the headless simulation: a donburi world holding one
// level, stepped at a fixed rate.
package sim

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/automoto/slide2d/components"
	cfg "github.com/automoto/slide2d/config"
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/physics"
	"github.com/automoto/slide2d/scripting"
	"github.com/automoto/slide2d/shared/leveldata"
	"github.com/automoto/slide2d/systems"
	"github.com/automoto/slide2d/systems/factory"
	"github.com/automoto/slide2d/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/zeebo/xxh3"
)

// Options configures a World. Zero fields take their value from the config
// package.
type Options struct {
	Backend  string
	CellSize int
	Delta    float64
	Script   *scripting.Controller
	Log      logrus.FieldLogger
}

// World owns the ECS, the physics space and the level. It implements
// motion.Bodies by entity identity: a collider id is the entity it belongs
// to, so a destroyed entity reads as gone.
type World struct {
	ECS   *ecs.ECS
	Space physics.Space
	Log   logrus.FieldLogger

	Name  string
	Level *leveldata.CollisionData

	space *donburi.Entry
}

var _ motion.Bodies = (*World)(nil)

// NewWorld builds the world for one level.
func NewWorld(name string, level *leveldata.CollisionData, opts Options) (*World, error) {
	if opts.Backend == "" {
		opts.Backend = cfg.Sim.Backend
	}
	if opts.CellSize <= 0 {
		opts.CellSize = cfg.Sim.CellSize
	}
	if opts.Delta <= 0 {
		opts.Delta = cfg.Sim.Delta()
	}
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = l
	}
	log := opts.Log.WithFields(logrus.Fields{"level": name, "backend": opts.Backend})

	space, err := physics.New(opts.Backend, physics.Bounds{
		Width:    level.MapWidth,
		Height:   level.MapHeight,
		CellSize: opts.CellSize,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("sim: %s: %w", name, err)
	}

	w := &World{
		ECS:   ecs.NewECS(donburi.NewWorld()),
		Space: space,
		Log:   log,
		Name:  name,
		Level: level,
	}

	w.ECS.AddSystem(systems.UpdatePlatforms)
	w.ECS.AddSystem(systems.UpdateControllers)
	w.ECS.AddSystem(systems.UpdateCharacters)

	w.space = factory.CreateSpace(w.ECS, space, w, opts.Delta, log)
	if _, err := factory.CreateLevel(w.ECS, name, level, opts.Script); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	log.WithFields(logrus.Fields{
		"colliders":  space.Len(),
		"characters": len(w.Characters()),
	}).Info("sim: world ready")
	return w, nil
}

// ColliderVelocity implements motion.Bodies.
func (w *World) ColliderVelocity(id motion.ColliderID) (mgl64.Vec2, bool) {
	e := donburi.Entity(id)
	if !w.ECS.World.Valid(e) {
		return mgl64.Vec2{}, false
	}
	entry := w.ECS.World.Entry(e)
	switch {
	case entry.HasComponent(components.Platform):
		return components.Platform.Get(entry).Velocity, true
	case entry.HasComponent(components.Body):
		return components.Body.Get(entry).LinearVelocity(), true
	}
	return mgl64.Vec2{}, true
}

// Step advances the simulation by one fixed tick.
func (w *World) Step() {
	w.ECS.Update()
	components.Space.Get(w.space).Tick++
}

// Tick returns the number of steps taken.
func (w *World) Tick() uint64 { return components.Space.Get(w.space).Tick }

// Delta returns the fixed step in seconds.
func (w *World) Delta() float64 { return components.Space.Get(w.space).Delta }

// Characters returns the character entries in spawn order.
func (w *World) Characters() []*donburi.Entry {
	var out []*donburi.Entry
	tags.Character.Each(w.ECS.World, func(e *donburi.Entry) {
		out = append(out, e)
	})
	return out
}

// Body returns the i-th character body.
func (w *World) Body(i int) (*motion.Character, bool) {
	chars := w.Characters()
	if i < 0 || i >= len(chars) {
		return nil, false
	}
	return components.Body.Get(chars[i]).Character, true
}

// SetInput sets the intent of the i-th character for the next steps.
func (w *World) SetInput(i int, left, right, jump bool) bool {
	chars := w.Characters()
	if i < 0 || i >= len(chars) {
		return false
	}
	in := components.Input.Get(chars[i])
	in.Left, in.Right, in.Jump = left, right, jump
	return true
}

// ApplyMotion replaces the motion settings of every character. Invalid
// settings are rejected as a whole.
func (w *World) ApplyMotion(settings motion.Config) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	for _, e := range w.Characters() {
		body := components.Body.Get(e)
		if err := body.SetConfig(settings); err != nil {
			return err
		}
		components.Controller.Get(e).Snap = settings.Snap
	}
	w.Log.WithField("max_slides", settings.MaxSlides).Info("sim: motion settings applied")
	return nil
}

// SetScript replaces the controller of every character. nil restores the
// walker.
func (w *World) SetScript(script *scripting.Controller) {
	for _, e := range w.Characters() {
		controller := components.Controller.Get(e)
		if script == nil {
			controller.Script = nil
			continue
		}
		controller.Script = script.Clone()
	}
}

// Destroy removes the entity a collider belongs to.
func (w *World) Destroy(id motion.ColliderID) bool {
	e := donburi.Entity(id)
	if !w.ECS.World.Valid(e) {
		return false
	}
	factory.Destroy(w.ECS, w.ECS.World.Entry(e))
	return true
}

// Digest hashes the position, velocity and contact flags of every
// character. Two runs of the same level and inputs give the same digest.
func (w *World) Digest() uint64 {
	h := xxh3.New()
	var buf [8]byte
	put := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}

	for _, e := range w.Characters() {
		body := components.Body.Get(e)
		state := body.State()
		put(body.Transform.Origin[0])
		put(body.Transform.Origin[1])
		put(state.LinearVelocity[0])
		put(state.LinearVelocity[1])

		var flags byte
		if state.OnFloor {
			flags |= 1
		}
		if state.OnWall {
			flags |= 2
		}
		if state.OnCeiling {
			flags |= 4
		}
		_, _ = h.Write([]byte{flags})
	}
	return h.Sum64()
}
