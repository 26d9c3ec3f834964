package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const testEps = 1e-9

// halfPlane is solid where p.Dot(n) < d.
type halfPlane struct {
	id  ColliderID
	n   mgl64.Vec2
	d   float64
	vel mgl64.Vec2
}

// planeWorld is a point body moving among half planes.
type planeWorld struct {
	planes  []halfPlane
	queries []QueryParams

	rays     []SeparationResult
	rayPush  mgl64.Vec2
	rayCalls int
}

func (w *planeWorld) TestMotion(_ ColliderID, p QueryParams) (Result, bool) {
	w.queries = append(w.queries, p)

	start := p.From.Origin
	var recovery mgl64.Vec2
	for _, pl := range w.planes {
		if p.Excludes(pl.id) {
			continue
		}
		if gap := start.Dot(pl.n) - pl.d - p.Margin; gap < -testEps {
			recovery = recovery.Add(pl.n.Mul(-gap))
		}
	}
	start = start.Add(recovery)

	best := -1
	bestT := 1.0
	for i, pl := range w.planes {
		if p.Excludes(pl.id) {
			continue
		}
		dn := p.Motion.Dot(pl.n)
		if dn > -testEps {
			continue
		}
		gap := math.Max(start.Dot(pl.n)-pl.d-p.Margin, 0)
		t := gap / -dn
		if t < bestT || (best == -1 && t <= 1) {
			best, bestT = i, t
		}
	}
	if best == -1 {
		return Result{Motion: recovery.Add(p.Motion), SafeFraction: 1, UnsafeFraction: 1}, false
	}

	pl := w.planes[best]
	safe := p.Motion.Mul(bestT)
	return Result{
		Motion:           recovery.Add(safe),
		Remainder:        p.Motion.Sub(safe),
		Point:            start.Add(safe).Sub(pl.n.Mul(p.Margin)),
		Normal:           pl.n,
		SafeFraction:     bestT,
		UnsafeFraction:   bestT,
		Collider:         pl.id,
		ColliderVelocity: pl.vel,
	}, true
}

func (w *planeWorld) SeparateRays(_ ColliderID, _ SeparationParams, out *SeparationBuffer) (mgl64.Vec2, int) {
	w.rayCalls++
	n := copy(out[:], w.rays)
	return w.rayPush, n
}

// bodies is a velocity registry keyed by collider.
type bodies map[ColliderID]mgl64.Vec2

func (b bodies) ColliderVelocity(id ColliderID) (mgl64.Vec2, bool) {
	v, ok := b[id]
	return v, ok
}

// stubborn collides with every query and never lets the motion shrink.
type stubborn struct {
	calls int
}

func (s *stubborn) TestMotion(_ ColliderID, p QueryParams) (Result, bool) {
	s.calls++
	normal := mgl64.Vec2{1, 0}
	if s.calls%2 == 0 {
		normal = mgl64.Vec2{0, 1}
	}
	return Result{Remainder: mgl64.Vec2{3, 4}, Normal: normal, Collider: 9}, true
}

func (s *stubborn) SeparateRays(_ ColliderID, _ SeparationParams, out *SeparationBuffer) (mgl64.Vec2, int) {
	s.calls++
	out[0] = SeparationResult{Depth: 1, Normal: mgl64.Vec2{-1, 0}, Collider: 9}
	return mgl64.Vec2{}, 100
}

func floorPlane(id ColliderID, y float64) halfPlane {
	return halfPlane{id: id, n: mgl64.Vec2{0, -1}, d: -y}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func vecNear(a, b mgl64.Vec2) bool {
	return near(a[0], b[0]) && near(a[1], b[1])
}

// scripted answers queries with results in order, then reports free
// motion.
type scripted struct {
	results []Result
	calls   int
}

func (s *scripted) TestMotion(_ ColliderID, p QueryParams) (Result, bool) {
	s.calls++
	if s.calls <= len(s.results) {
		return s.results[s.calls-1], true
	}
	return Result{Motion: p.Motion, SafeFraction: 1, UnsafeFraction: 1}, false
}

func (s *scripted) SeparateRays(_ ColliderID, _ SeparationParams, _ *SeparationBuffer) (mgl64.Vec2, int) {
	return mgl64.Vec2{}, 0
}
