package resolvspace

import (
	"math"

	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// SeparateRays implements motion.Query. Every ray of the body is cast
// against the space; a ray that reaches a shape within its length plus
// margin reports how far its tip is buried. The returned recovery moves the
// body back along the deepest ray.
func (s *Space) SeparateRays(self motion.ColliderID, p motion.SeparationParams, out *motion.SeparationBuffer) (mgl64.Vec2, int) {
	c, ok := s.colliders[self]
	if !ok || len(c.Rays) == 0 {
		return mgl64.Vec2{}, 0
	}
	f := filter{self: self, infiniteInertia: p.InfiniteInertia}

	var lo, hi mgl64.Vec2
	type castRay struct {
		from, dir mgl64.Vec2
		reach     float64
	}
	var rays [motion.MaxSeparationResults]castRay
	n := min(len(c.Rays), motion.MaxSeparationResults)
	for i, r := range c.Rays[:n] {
		from := gamemath.Rotate(r.From, p.From.Rotation).Add(p.From.Origin)
		to := gamemath.Rotate(r.To, p.From.Rotation).Add(p.From.Origin)
		dir := gamemath.Normalized(to.Sub(from))
		reach := r.Length() + p.Margin
		rays[i] = castRay{from: from, dir: dir, reach: reach}

		tip := from.Add(dir.Mul(reach))
		if i == 0 {
			lo, hi = from, from
		}
		for _, v := range [...]mgl64.Vec2{from, tip} {
			lo = mgl64.Vec2{math.Min(lo[0], v[0]), math.Min(lo[1], v[1])}
			hi = mgl64.Vec2{math.Max(hi[0], v[0]), math.Max(hi[1], v[1])}
		}
	}
	found := s.candidates(lo, hi, f)

	var push mgl64.Vec2
	deepest := 0.0
	hits := 0
	for i, r := range rays[:n] {
		if gamemath.IsZero(r.dir) {
			continue
		}
		tip := r.from.Add(r.dir.Mul(r.reach))

		best := math.Inf(1)
		var hit motion.SeparationResult
		for _, other := range found {
			for j, obstacle := range other.world {
				t, _, ok := gamemath.SegmentIntersection(r.from, tip, obstacle)
				if !ok || t*r.reach >= best {
					continue
				}
				best = t * r.reach
				hit = motion.SeparationResult{
					Depth:            r.reach - best,
					Point:            r.from.Add(r.dir.Mul(best)),
					Normal:           r.dir.Mul(-1),
					LocalShape:       len(c.Shapes) + i,
					Collider:         other.ID,
					ColliderShape:    j,
					ColliderVelocity: other.Velocity,
				}
			}
		}
		if math.IsInf(best, 1) || hit.Depth <= 0 {
			continue
		}

		out[hits] = hit
		hits++
		if hit.Depth > deepest {
			deepest = hit.Depth
			push = hit.Normal.Mul(hit.Depth)
		}
	}
	return push, hits
}
