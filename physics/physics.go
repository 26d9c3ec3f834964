// Package physics puts the resolv and Chipmunk backends behind one
// interface so the scene can pick either at startup.
package physics

import (
	"errors"
	"fmt"

	"github.com/automoto/slide2d/backend/cpspace"
	"github.com/automoto/slide2d/backend/resolvspace"
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// Backend names accepted by New.
const (
	Resolv   = "resolv"
	Chipmunk = "cp"
)

var ErrUnknownBackend = errors.New("physics: unknown backend")

// Kind is how a collider takes part in motion queries.
type Kind uint8

const (
	Static Kind = iota
	Kinematic
	Dynamic
	Character
)

// Collider is a backend-neutral description of a collision object. Shapes
// and Rays are in local space.
type Collider struct {
	ID        motion.ColliderID
	Kind      Kind
	Shapes    []gamemath.Polygon
	Rays      [][2]mgl64.Vec2
	Tags      []string
	Transform motion.Transform
	Velocity  mgl64.Vec2
}

// Space is a motion query primitive that also stores colliders.
type Space interface {
	motion.Query
	motion.Bodies

	Add(c Collider) error
	Remove(id motion.ColliderID) bool
	SetTransform(id motion.ColliderID, t motion.Transform) bool
	SetVelocity(id motion.ColliderID, v mgl64.Vec2) bool
	Len() int
	Backend() string
}

// Bounds sizes the resolv spatial hash. Chipmunk ignores it.
type Bounds struct {
	Width, Height int
	CellSize      int
}

// New creates an empty space on the named backend.
func New(backend string, b Bounds, log logrus.FieldLogger) (Space, error) {
	switch backend {
	case Resolv, "":
		s := resolvspace.New(b.Width, b.Height, b.CellSize, b.CellSize)
		s.Log = log
		return &resolvBackend{Space: s}, nil
	case Chipmunk:
		s := cpspace.New()
		s.Log = log
		return &cpBackend{Space: s}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

type resolvBackend struct {
	*resolvspace.Space
}

func (b *resolvBackend) Add(c Collider) error {
	rays := make([]resolvspace.Ray, len(c.Rays))
	for i, r := range c.Rays {
		rays[i] = resolvspace.Ray{From: r[0], To: r[1]}
	}
	return b.Space.Add(&resolvspace.Collider{
		ID:        c.ID,
		Kind:      resolvspace.Kind(c.Kind),
		Shapes:    c.Shapes,
		Rays:      rays,
		Tags:      c.Tags,
		Transform: c.Transform,
		Velocity:  c.Velocity,
	})
}

func (b *resolvBackend) Backend() string { return Resolv }

type cpBackend struct {
	*cpspace.Space
}

func (b *cpBackend) Add(c Collider) error {
	return b.Space.Add(cpspace.Collider{
		ID:        c.ID,
		Dynamic:   c.Kind == Dynamic,
		Shapes:    c.Shapes,
		Rays:      c.Rays,
		Transform: c.Transform,
		Velocity:  c.Velocity,
	})
}

func (b *cpBackend) Backend() string { return Chipmunk }
