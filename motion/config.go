package motion

import (
	"fmt"
	"math"

	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// Default motion settings.
const (
	DefaultMargin    = 0.08
	DefaultMaxSlides = 4
)

// DefaultFloorMaxAngle is 45 degrees.
var DefaultFloorMaxAngle = mgl64.DegToRad(45)

// Config holds the per-body settings of the slide algorithm.
type Config struct {
	// Margin is the gap kept between shapes so they never rest at exactly
	// zero distance.
	Margin float64
	// MaxSlides caps the slide iterations of one call. Must be > 0.
	MaxSlides int
	// FloorMaxAngle is the steepest slope, in radians, still treated as
	// floor.
	FloorMaxAngle float64
	// UpDirection is a unit vector. The zero vector turns every contact into
	// a wall.
	UpDirection mgl64.Vec2
	// Snap is probed after sliding to keep the body on the ground. Zero
	// disables snapping.
	Snap mgl64.Vec2

	StopOnSlope     bool
	InfiniteInertia bool
	// SeparateRays enables the ray separation pass after each slide query.
	SeparateRays bool
}

// DefaultConfig returns the settings new bodies start with.
func DefaultConfig() Config {
	return Config{
		Margin:          DefaultMargin,
		MaxSlides:       DefaultMaxSlides,
		FloorMaxAngle:   DefaultFloorMaxAngle,
		UpDirection:     mgl64.Vec2{0, -1},
		StopOnSlope:     false,
		InfiniteInertia: true,
	}
}

// Validate reports the first configuration error in c.
func (c Config) Validate() error {
	if c.MaxSlides <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxSlides, c.MaxSlides)
	}
	if !(c.Margin > 0) || math.IsInf(c.Margin, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidMargin, c.Margin)
	}
	if !(c.FloorMaxAngle >= 0 && c.FloorMaxAngle <= math.Pi) {
		return fmt.Errorf("%w: got %v", ErrInvalidFloorAngle, c.FloorMaxAngle)
	}
	return nil
}

// WithUpDirection returns c with up normalized. A zero vector stays zero.
func (c Config) WithUpDirection(up mgl64.Vec2) Config {
	c.UpDirection = gamemath.Normalized(up)
	return c
}

// State is the motion state a body carries between frames.
type State struct {
	LinearVelocity mgl64.Vec2

	OnFloor   bool
	OnWall    bool
	OnCeiling bool

	FloorNormal   mgl64.Vec2
	FloorVelocity mgl64.Vec2
	// FloorBody is the collider last classified as floor or wall. It is
	// resolved through Bodies every frame and may have been destroyed.
	FloorBody ColliderID
}

// Reset clears everything but the velocity, as done when a body enters a
// scene.
func (s *State) Reset() {
	s.OnFloor = false
	s.OnWall = false
	s.OnCeiling = false
	s.FloorNormal = mgl64.Vec2{}
	s.FloorVelocity = mgl64.Vec2{}
	s.FloorBody = NoCollider
}
