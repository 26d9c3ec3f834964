// Package cpspace implements motion queries on a Chipmunk space. Every
// collider is a kinematic body; queries probe with margin-rounded copies of
// the moving body's shapes.
package cpspace

import (
	"errors"
	"fmt"
	"io"

	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
)

var (
	ErrDuplicateID = errors.New("cpspace: duplicate collider id")
	ErrNoShapes    = errors.New("cpspace: collider has no shapes")
	ErrNoID        = errors.New("cpspace: collider id is zero")
)

// Collider describes a body to add. Shapes are convex polygons in local
// space; Rays are local segments used by the separation pass.
type Collider struct {
	ID        motion.ColliderID
	Dynamic   bool
	Shapes    []gamemath.Polygon
	Rays      [][2]mgl64.Vec2
	Transform motion.Transform
	Velocity  mgl64.Vec2
}

type entry struct {
	Collider
	body   *cp.Body
	shapes []*cp.Shape

	probe       []*cp.Shape
	probeRadius float64
}

// Space is not safe for concurrent use.
type Space struct {
	Log logrus.FieldLogger

	space     *cp.Space
	probeBody *cp.Body
	colliders map[motion.ColliderID]*entry
	byShape   map[*cp.Shape]*entry
}

// New returns an empty space.
func New() *Space {
	return &Space{
		space:     cp.NewSpace(),
		probeBody: cp.NewKinematicBody(),
		colliders: make(map[motion.ColliderID]*entry),
		byShape:   make(map[*cp.Shape]*entry),
	}
}

func (s *Space) logger() logrus.FieldLogger {
	if s.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.Log = l
	}
	return s.Log
}

func vec(v mgl64.Vec2) cp.Vector { return cp.Vector{X: v[0], Y: v[1]} }

func fromVec(v cp.Vector) mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

// filterFor puts all shapes of one collider in the same group so a probe
// never hits the body it was made from.
func filterFor(id motion.ColliderID) cp.ShapeFilter {
	return cp.ShapeFilter{Group: uint(id), Categories: cp.ALL_CATEGORIES, Mask: cp.ALL_CATEGORIES}
}

func polyShape(body *cp.Body, p gamemath.Polygon, radius float64) *cp.Shape {
	hull := gamemath.ConvexHull(append(gamemath.Polygon(nil), p...))
	verts := make([]cp.Vector, len(hull))
	for i, v := range hull {
		verts[i] = vec(v)
	}
	return cp.NewPolyShapeRaw(body, len(verts), verts, radius)
}

// Add creates the collider's body and shapes.
func (s *Space) Add(c Collider) error {
	if c.ID == motion.NoCollider {
		return ErrNoID
	}
	if _, ok := s.colliders[c.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, c.ID)
	}
	if len(c.Shapes) == 0 {
		return fmt.Errorf("%w: %d", ErrNoShapes, c.ID)
	}

	e := &entry{Collider: c, body: cp.NewKinematicBody()}
	e.body.SetPosition(vec(c.Transform.Origin))
	e.body.SetAngle(c.Transform.Rotation)
	s.space.AddBody(e.body)
	for _, p := range c.Shapes {
		sh := polyShape(e.body, p, 0)
		sh.SetFilter(filterFor(c.ID))
		s.space.AddShape(sh)
		s.byShape[sh] = e
		e.shapes = append(e.shapes, sh)
	}
	s.colliders[c.ID] = e

	s.logger().WithField("collider", c.ID).Debug("cpspace: collider added")
	return nil
}

// Remove deletes a collider. It reports whether it was present.
func (s *Space) Remove(id motion.ColliderID) bool {
	e, ok := s.colliders[id]
	if !ok {
		return false
	}
	for _, sh := range e.shapes {
		s.space.RemoveShape(sh)
		delete(s.byShape, sh)
	}
	s.space.RemoveBody(e.body)
	delete(s.colliders, id)
	return true
}

// Len returns the number of colliders.
func (s *Space) Len() int { return len(s.colliders) }

// SetTransform moves a collider.
func (s *Space) SetTransform(id motion.ColliderID, t motion.Transform) bool {
	e, ok := s.colliders[id]
	if !ok {
		return false
	}
	e.Transform = t
	e.body.SetPosition(vec(t.Origin))
	e.body.SetAngle(t.Rotation)
	s.space.ReindexShapesForBody(e.body)
	return true
}

// SetVelocity sets the velocity reported to bodies touching the collider.
func (s *Space) SetVelocity(id motion.ColliderID, v mgl64.Vec2) bool {
	e, ok := s.colliders[id]
	if !ok {
		return false
	}
	e.Velocity = v
	return true
}

// ColliderVelocity implements motion.Bodies.
func (s *Space) ColliderVelocity(id motion.ColliderID) (mgl64.Vec2, bool) {
	e, ok := s.colliders[id]
	if !ok {
		return mgl64.Vec2{}, false
	}
	return e.Velocity, true
}
