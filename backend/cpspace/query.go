package cpspace

import (
	"math"

	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	recoveryPasses = 4
	contactEpsilon = 1e-6
	// restEpsilon rounds probes slightly past the margin so bodies resting
	// exactly at the margin are still reported.
	restEpsilon = 1e-4
	// castStep is the longest distance between two overlap samples.
	castStep     = 4.0
	maxCastSteps = 64
	bisections   = 8
)

var _ motion.Query = (*Space)(nil)

type contact struct {
	depth  float64
	normal mgl64.Vec2
	point  mgl64.Vec2
	local  int
	other  *entry
	shape  int
}

type query struct {
	s      *Space
	self   *entry
	origin motion.Transform
	margin float64
	skip   func(*entry) bool
}

// deepest places the probe at origin+offset and returns the deepest contact
// into the margin, relative to the margin: depth is margin minus distance.
func (q *query) deepest(offset mgl64.Vec2) (contact, bool) {
	q.s.probeBody.SetPosition(vec(q.origin.Origin.Add(offset)))
	q.s.probeBody.SetAngle(q.origin.Rotation)

	var best contact
	found := false
	for i, probe := range q.self.probe {
		q.s.space.ShapeQuery(probe, func(shape *cp.Shape, points *cp.ContactPointSet) {
			other, ok := q.s.byShape[shape]
			if !ok || q.skip(other) {
				return
			}
			for j := 0; j < points.Count; j++ {
				depth := -points.Points[j].Distance - restEpsilon
				if found && depth <= best.depth {
					continue
				}
				best = contact{
					depth:  depth,
					normal: fromVec(points.Normal).Mul(-1),
					point:  fromVec(points.Points[j].PointB),
					local:  i,
					other:  other,
					shape:  shapeIndex(other, shape),
				}
				found = true
			}
		})
	}
	return best, found
}

func shapeIndex(e *entry, sh *cp.Shape) int {
	for i, s := range e.shapes {
		if s == sh {
			return i
		}
	}
	return -1
}

func (q *query) blocked(offset mgl64.Vec2) bool {
	c, ok := q.deepest(offset)
	return ok && c.depth > contactEpsilon
}

// TestMotion implements motion.Query.
func (s *Space) TestMotion(self motion.ColliderID, p motion.QueryParams) (motion.Result, bool) {
	e, ok := s.colliders[self]
	if !ok {
		return motion.Result{Motion: p.Motion, SafeFraction: 1, UnsafeFraction: 1}, false
	}
	s.ensureProbe(e, p.Margin)

	q := &query{
		s:      s,
		self:   e,
		origin: p.From,
		margin: p.Margin,
		skip: func(other *entry) bool {
			return (p.InfiniteInertia && other.Dynamic) || p.Excludes(other.ID)
		},
	}

	var recovery mgl64.Vec2
	recovered := false
	for pass := 0; pass < recoveryPasses; pass++ {
		c, ok := q.deepest(recovery)
		if !ok || c.depth <= contactEpsilon {
			break
		}
		recovery = recovery.Add(c.normal.Mul(c.depth))
		recovered = true
	}

	safe, unsafe := q.cast(recovery, p.Motion)
	res := motion.Result{
		Motion:         recovery.Add(p.Motion.Mul(safe)),
		Remainder:      p.Motion.Mul(1 - safe),
		SafeFraction:   safe,
		UnsafeFraction: unsafe,
	}
	if !recovered && unsafe >= 1 {
		res.Remainder = mgl64.Vec2{}
		return res, false
	}

	c, ok := q.deepest(recovery.Add(p.Motion.Mul(unsafe)))
	if !ok {
		if unsafe >= 1 {
			res.Remainder = mgl64.Vec2{}
		}
		return res, false
	}
	res.Point = c.point
	res.Normal = gamemath.Normalized(c.normal)
	res.Depth = max(c.depth, 0)
	res.LocalShape = c.local
	res.Collider = c.other.ID
	res.ColliderShape = c.shape
	res.ColliderVelocity = c.other.Velocity
	return res, true
}

// cast samples the motion for the first blocked position and refines it by
// bisection. It returns 1, 1 when the whole motion is free.
func (q *query) cast(from, m mgl64.Vec2) (safe, unsafe float64) {
	length := m.Len()
	if length == 0 {
		return 1, 1
	}
	if q.blocked(from) {
		return 0, 0
	}
	steps := min(max(int(math.Ceil(length/castStep)), 1), maxCastSteps)

	lo := 0.0
	hi := -1.0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if q.blocked(from.Add(m.Mul(t))) {
			hi = t
			break
		}
		lo = t
	}
	if hi < 0 {
		return 1, 1
	}

	for i := 0; i < bisections; i++ {
		mid := (lo + hi) / 2
		if q.blocked(from.Add(m.Mul(mid))) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo, hi
}

// ensureProbe builds margin-rounded copies of the collider's shapes and
// rays on the shared probe body.
func (s *Space) ensureProbe(e *entry, margin float64) {
	radius := margin + restEpsilon
	if e.probe != nil && e.probeRadius == radius {
		return
	}
	e.probe = e.probe[:0]
	for _, p := range e.Shapes {
		sh := polyShape(s.probeBody, p, radius)
		sh.SetFilter(filterFor(e.ID))
		e.probe = append(e.probe, sh)
	}
	e.probeRadius = radius
}

// SeparateRays implements motion.Query with segment queries. Rays take part
// only in this pass, never in TestMotion casts.
func (s *Space) SeparateRays(self motion.ColliderID, p motion.SeparationParams, out *motion.SeparationBuffer) (mgl64.Vec2, int) {
	e, ok := s.colliders[self]
	if !ok {
		return mgl64.Vec2{}, 0
	}

	var push mgl64.Vec2
	deepest := 0.0
	hits := 0
	for i, r := range e.Rays {
		if hits == motion.MaxSeparationResults {
			break
		}
		from := gamemath.Rotate(r[0], p.From.Rotation).Add(p.From.Origin)
		to := gamemath.Rotate(r[1], p.From.Rotation).Add(p.From.Origin)
		dir := gamemath.Normalized(to.Sub(from))
		if gamemath.IsZero(dir) {
			continue
		}
		reach := r[1].Sub(r[0]).Len() + p.Margin
		tip := from.Add(dir.Mul(reach))

		info := s.space.SegmentQueryFirst(vec(from), vec(tip), 0, filterFor(self))
		if info.Shape == nil {
			continue
		}
		other, ok := s.byShape[info.Shape]
		if !ok || (p.InfiniteInertia && other.Dynamic) {
			continue
		}

		depth := reach * (1 - info.Alpha)
		if depth <= 0 {
			continue
		}
		out[hits] = motion.SeparationResult{
			Depth:            depth,
			Point:            fromVec(info.Point),
			Normal:           dir.Mul(-1),
			LocalShape:       len(e.Shapes) + i,
			Collider:         other.ID,
			ColliderShape:    shapeIndex(other, info.Shape),
			ColliderVelocity: other.Velocity,
		}
		hits++
		if depth > deepest {
			deepest = depth
			push = dir.Mul(-depth)
		}
	}
	return push, hits
}
