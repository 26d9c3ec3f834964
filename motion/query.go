package motion

import "github.com/go-gl/mathgl/mgl64"

// MaxSeparationResults is the most ray hits one separation pass reports.
const MaxSeparationResults = 8

// QueryParams is the input of one motion query.
type QueryParams struct {
	From   Transform
	Motion mgl64.Vec2
	Margin float64
	// InfiniteInertia ignores dynamic obstacles, which get pushed instead.
	InfiniteInertia bool
	// ExcludeRaycastShapes leaves the body's ray shapes out of the cast.
	ExcludeRaycastShapes bool
	// Exclude lists colliders to ignore for this query.
	Exclude []ColliderID
}

// Excludes reports whether id is in the exclusion list.
func (p QueryParams) Excludes(id ColliderID) bool {
	for _, e := range p.Exclude {
		if e == id {
			return true
		}
	}
	return false
}

// SeparationParams is the input of one ray separation query.
type SeparationParams struct {
	From            Transform
	Margin          float64
	InfiniteInertia bool
}

// SeparationResult is one ray shape's penetration.
type SeparationResult struct {
	Depth            float64
	Point            mgl64.Vec2
	Normal           mgl64.Vec2
	LocalShape       int
	Collider         ColliderID
	ColliderShape    int
	ColliderVelocity mgl64.Vec2
}

// SeparationBuffer holds the hits of one separation pass without
// allocating.
type SeparationBuffer [MaxSeparationResults]SeparationResult

// Query is the physics primitive the resolver is built on: attempt a motion
// and report the first contact. Implementations must not move the body;
// the resolver commits motion itself. Calls are synchronous.
type Query interface {
	// TestMotion sweeps the shapes of self from p.From along p.Motion. The
	// returned Result has Motion set even when nothing was hit.
	TestMotion(self ColliderID, p QueryParams) (Result, bool)
	// SeparateRays casts the ray shapes of self and writes up to
	// MaxSeparationResults hits into out. It returns the displacement that
	// pushes the rays out of what they hit.
	SeparateRays(self ColliderID, p SeparationParams, out *SeparationBuffer) (recover mgl64.Vec2, hits int)
}

// Bodies looks up colliders by identity. ColliderVelocity returns false for
// unknown or destroyed colliders.
type Bodies interface {
	ColliderVelocity(id ColliderID) (mgl64.Vec2, bool)
}
