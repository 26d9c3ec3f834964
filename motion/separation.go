package motion

import "github.com/go-gl/mathgl/mgl64"

// separateRays pushes the body's ray shapes out of whatever they penetrate
// and reports the deepest hit as a contact.
func (s *slider) separateRays() (Result, bool) {
	s.frame.Queries++
	tr := &s.frame.Transform

	push, hits := s.r.Query.SeparateRays(s.self, SeparationParams{
		From:            *tr,
		Margin:          s.cfg.Margin,
		InfiniteInertia: s.cfg.InfiniteInertia,
	}, &s.sep)
	hits = min(max(hits, 0), MaxSeparationResults)

	deepest := -1
	for i := 0; i < hits; i++ {
		if deepest == -1 || s.sep[i].Depth > s.sep[deepest].Depth {
			deepest = i
		}
	}

	tr.Origin = tr.Origin.Add(push)
	if deepest == -1 {
		return Result{}, false
	}

	hit := s.sep[deepest]
	return Result{
		Motion:           push,
		Remainder:        mgl64.Vec2{},
		Point:            hit.Point,
		Normal:           hit.Normal,
		Depth:            hit.Depth,
		LocalShape:       hit.LocalShape,
		Collider:         hit.Collider,
		ColliderShape:    hit.ColliderShape,
		ColliderVelocity: hit.ColliderVelocity,
	}, true
}
