// Package resolvspace implements motion queries over a resolv spatial hash.
// Shapes are convex polygons; resolv objects only serve as the broadphase.
package resolvspace

import (
	"errors"
	"fmt"
	"io"

	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/solarlune/resolv"
)

var (
	ErrDuplicateID = errors.New("resolvspace: duplicate collider id")
	ErrNoShapes    = errors.New("resolvspace: collider has no shapes")
	ErrNoID        = errors.New("resolvspace: collider id is zero")
)

const probeTag = "probe"

// Space holds the colliders and answers motion queries. It is not safe for
// concurrent use.
type Space struct {
	Log logrus.FieldLogger

	space     *resolv.Space
	probe     *resolv.Object
	colliders map[motion.ColliderID]*Collider

	found []*Collider
	body  bodyShapes
}

// New creates a space covering width x height world units, hashed into
// cells of cellWidth x cellHeight. Colliders outside the area are never
// found by queries.
func New(width, height, cellWidth, cellHeight int) *Space {
	s := &Space{
		space:     resolv.NewSpace(width, height, cellWidth, cellHeight),
		probe:     resolv.NewObject(0, 0, 1, 1, probeTag),
		colliders: make(map[motion.ColliderID]*Collider),
	}
	s.space.Add(s.probe)
	return s
}

func (s *Space) logger() logrus.FieldLogger {
	if s.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.Log = l
	}
	return s.Log
}

// Add places c in the space and creates its broadphase object.
func (s *Space) Add(c *Collider) error {
	if c.ID == motion.NoCollider {
		return ErrNoID
	}
	if _, ok := s.colliders[c.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, c.ID)
	}
	if len(c.Shapes) == 0 && len(c.Rays) == 0 {
		return fmt.Errorf("%w: %d", ErrNoShapes, c.ID)
	}

	tags := append([]string{TagCollider, c.Kind.String()}, c.Tags...)
	c.Object = resolv.NewObject(0, 0, 1, 1, tags...)
	c.Object.Data = c
	c.place()
	s.space.Add(c.Object)
	c.Object.Update()
	s.colliders[c.ID] = c

	s.logger().WithFields(logrus.Fields{"collider": c.ID, "kind": c.Kind.String()}).Debug("resolvspace: collider added")
	return nil
}

// Remove takes the collider out of the space. It reports whether it was
// present.
func (s *Space) Remove(id motion.ColliderID) bool {
	c, ok := s.colliders[id]
	if !ok {
		return false
	}
	s.space.Remove(c.Object)
	delete(s.colliders, id)
	return true
}

// Collider returns the collider with the given id.
func (s *Space) Collider(id motion.ColliderID) (*Collider, bool) {
	c, ok := s.colliders[id]
	return c, ok
}

// Len returns the number of colliders.
func (s *Space) Len() int { return len(s.colliders) }

// SetTransform moves a collider and refreshes its broadphase cells.
func (s *Space) SetTransform(id motion.ColliderID, t motion.Transform) bool {
	c, ok := s.colliders[id]
	if !ok {
		return false
	}
	c.Transform = t
	c.place()
	c.Object.Update()
	return true
}

// SetVelocity sets the velocity reported to bodies touching the collider.
func (s *Space) SetVelocity(id motion.ColliderID, v mgl64.Vec2) bool {
	c, ok := s.colliders[id]
	if !ok {
		return false
	}
	c.Velocity = v
	return true
}

// ColliderVelocity implements motion.Bodies.
func (s *Space) ColliderVelocity(id motion.ColliderID) (mgl64.Vec2, bool) {
	c, ok := s.colliders[id]
	if !ok {
		return mgl64.Vec2{}, false
	}
	return c.Velocity, true
}

type filter struct {
	self            motion.ColliderID
	exclude         []motion.ColliderID
	infiniteInertia bool
}

func (f filter) skip(c *Collider) bool {
	if c.ID == f.self || len(c.Shapes) == 0 {
		return true
	}
	if f.infiniteInertia && c.Kind == Dynamic {
		return true
	}
	for _, id := range f.exclude {
		if id == c.ID {
			return true
		}
	}
	return false
}

// candidates returns the colliders whose cells touch the box lo..hi.
func (s *Space) candidates(lo, hi mgl64.Vec2, f filter) []*Collider {
	s.found = s.found[:0]

	s.probe.X, s.probe.Y = lo[0]-1, lo[1]-1
	s.probe.W, s.probe.H = hi[0]-lo[0]+2, hi[1]-lo[1]+2
	s.probe.Update()

	check := s.probe.Check(0, 0, TagCollider)
	if check == nil {
		return s.found
	}
	for _, o := range check.Objects {
		c, ok := o.Data.(*Collider)
		if !ok || f.skip(c) {
			continue
		}
		s.found = append(s.found, c)
	}
	return s.found
}

// bodyShapes is scratch space for the moving body's shapes.
type bodyShapes struct {
	local  []gamemath.Polygon
	placed []gamemath.Polygon
	moved  []gamemath.Polygon
}

// load places c's shapes at t, adding its rays as segments when withRays is
// set.
func (b *bodyShapes) load(c *Collider, t motion.Transform, withRays bool) {
	b.local = append(b.local[:0], c.Shapes...)
	if withRays {
		for _, r := range c.Rays {
			b.local = append(b.local, gamemath.Polygon{r.From, r.To})
		}
	}
	b.placed = resize(b.placed, len(b.local))
	for i, sh := range b.local {
		b.placed[i] = sh.Transformed(b.placed[i], t.Origin, t.Rotation)
	}
	b.moved = resize(b.moved, len(b.local))
}

// at returns the body shapes moved by offset.
func (b *bodyShapes) at(offset mgl64.Vec2) []gamemath.Polygon {
	for i, sh := range b.placed {
		b.moved[i] = sh.Translated(b.moved[i], offset)
	}
	return b.moved
}

func (b *bodyShapes) bounds(offset mgl64.Vec2) (lo, hi mgl64.Vec2) {
	for i, sh := range b.placed {
		l, h := sh.Bounds()
		if i == 0 {
			lo, hi = l, h
			continue
		}
		lo = mgl64.Vec2{min(lo[0], l[0]), min(lo[1], l[1])}
		hi = mgl64.Vec2{max(hi[0], h[0]), max(hi[1], h[1])}
	}
	return lo.Add(offset), hi.Add(offset)
}

func resize(p []gamemath.Polygon, n int) []gamemath.Polygon {
	if cap(p) < n {
		grown := make([]gamemath.Polygon, n)
		copy(grown, p)
		return grown
	}
	return p[:n]
}
