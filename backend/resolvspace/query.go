package resolvspace

import (
	"math"

	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// recoveryPasses bounds how often a body is pushed out of penetration
	// before casting.
	recoveryPasses = 4
	// contactEpsilon is how far inside the margin a shape has to get before
	// it counts as a contact.
	contactEpsilon = 1e-6
	// restEpsilon widens the rest contact search past the margin.
	restEpsilon = 1e-4
	// parallelEpsilon is the smallest axis speed treated as moving.
	parallelEpsilon = 1e-12
)

var _ motion.Query = (*Space)(nil)

// TestMotion implements motion.Query. It never moves the body.
func (s *Space) TestMotion(self motion.ColliderID, p motion.QueryParams) (motion.Result, bool) {
	c, ok := s.colliders[self]
	if !ok || len(c.Shapes) == 0 {
		return motion.Result{Motion: p.Motion, SafeFraction: 1, UnsafeFraction: 1}, false
	}
	f := filter{self: self, exclude: p.Exclude, infiniteInertia: p.InfiniteInertia}
	s.body.load(c, p.From, !p.ExcludeRaycastShapes)

	recovery, recovered := s.recover(p.Margin, f)

	lo, hi := s.body.bounds(recovery)
	m := p.Motion
	lo = mgl64.Vec2{min(lo[0], lo[0]+m[0]), min(lo[1], lo[1]+m[1])}
	hi = mgl64.Vec2{max(hi[0], hi[0]+m[0]), max(hi[1], hi[1]+m[1])}
	lo = lo.Sub(mgl64.Vec2{p.Margin, p.Margin})
	hi = hi.Add(mgl64.Vec2{p.Margin, p.Margin})
	found := s.candidates(lo, hi, f)

	safe, unsafe := 1.0, 1.0
	if !gamemath.IsZero(p.Motion) {
		shapes := s.body.at(recovery)
		for _, other := range found {
			for _, obstacle := range other.world {
				for _, sh := range shapes {
					sf, uf, hit := sweep(sh, obstacle, p.Motion, p.Margin)
					if !hit {
						continue
					}
					safe = math.Min(safe, sf)
					unsafe = math.Min(unsafe, uf)
				}
			}
		}
	}

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

	rest, ok := s.rest(recovery.Add(p.Motion.Mul(unsafe)), p.Margin, found)
	if !ok {
		if unsafe >= 1 {
			res.Remainder = mgl64.Vec2{}
		}
		return res, false
	}
	res.Point = rest.point
	res.Normal = rest.normal
	res.Depth = rest.depth
	res.LocalShape = rest.local
	res.Collider = rest.collider.ID
	res.ColliderShape = rest.shape
	res.ColliderVelocity = rest.collider.Velocity
	return res, true
}

// recover pushes the body out of every shape it is closer to than margin,
// deepest first.
func (s *Space) recover(margin float64, f filter) (mgl64.Vec2, bool) {
	var recovery mgl64.Vec2
	recovered := false

	lo, hi := s.body.bounds(recovery)
	lo = lo.Sub(mgl64.Vec2{margin, margin})
	hi = hi.Add(mgl64.Vec2{margin, margin})
	found := s.candidates(lo, hi, f)

	for pass := 0; pass < recoveryPasses; pass++ {
		shapes := s.body.at(recovery)
		var (
			push  mgl64.Vec2
			worst float64
		)
		for _, other := range found {
			for _, obstacle := range other.world {
				for _, sh := range shapes {
					n, d := gamemath.Separation(sh, obstacle)
					if gap := margin - d; d < margin-contactEpsilon && gap > worst {
						worst, push = gap, n.Mul(gap)
					}
				}
			}
		}
		if worst == 0 {
			break
		}
		recovery = recovery.Add(push)
		recovered = true
	}
	return recovery, recovered
}

type restInfo struct {
	point    mgl64.Vec2
	normal   mgl64.Vec2
	depth    float64
	local    int
	shape    int
	collider *Collider
}

// rest finds the deepest contact within margin with the body at offset.
func (s *Space) rest(offset mgl64.Vec2, margin float64, found []*Collider) (restInfo, bool) {
	var best restInfo
	ok := false

	shapes := s.body.at(offset)
	for _, other := range found {
		for j, obstacle := range other.world {
			for i, sh := range shapes {
				n, d := gamemath.Separation(sh, obstacle)
				if d >= margin+restEpsilon || gamemath.IsZero(n) {
					continue
				}
				depth := max(margin-d, 0)
				if ok && depth <= best.depth {
					continue
				}
				best = restInfo{
					point:    sh.Support(n.Mul(-1)).Sub(n.Mul(d)),
					normal:   n,
					depth:    depth,
					local:    i,
					shape:    j,
					collider: other,
				}
				ok = true
			}
		}
	}
	return best, ok
}

// sweep finds the fractions of motion at which body, moving linearly, comes
// within margin of obstacle (safe) and gets just inside it (unsafe).
func sweep(body, obstacle gamemath.Polygon, motion mgl64.Vec2, margin float64) (safe, unsafe float64, hit bool) {
	in, out := window(body, obstacle, motion, margin-contactEpsilon)
	if in > out {
		return 1, 1, false
	}
	safe, _ = window(body, obstacle, motion, margin)
	return math.Min(safe, in), in, true
}

// window returns the range of fractions in [0, 1] over which the separating
// axis distance between body+motion*t and obstacle is below limit. The range
// is empty when in > out.
func window(body, obstacle gamemath.Polygon, motion mgl64.Vec2, limit float64) (in, out float64) {
	in, out = 0, 1

	// Along every axis the gap is linear in t; the distance is their max.
	bound := func(gap, speed float64) {
		switch {
		case math.Abs(speed) < parallelEpsilon:
			if gap >= limit {
				in, out = 1, 0
			}
		case speed < 0:
			in = math.Max(in, (limit-gap)/speed)
		default:
			out = math.Min(out, (limit-gap)/speed)
		}
	}
	axes := func(edges gamemath.Polygon) {
		for i := range edges {
			axis := gamemath.Normalized(gamemath.Perp(edges[(i+1)%len(edges)].Sub(edges[i])))
			if gamemath.IsZero(axis) {
				continue
			}
			bLo, bHi := body.Project(axis)
			oLo, oHi := obstacle.Project(axis)
			speed := motion.Dot(axis)
			bound(bLo-oHi, speed)
			bound(oLo-bHi, -speed)
		}
	}
	axes(body)
	axes(obstacle)
	return in, out
}
