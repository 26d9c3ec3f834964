package motion

import (
	"fmt"

	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// Character is a kinematic body that keeps its transform, motion state and
// settings between frames and resolves its motion through a Resolver.
type Character struct {
	ID        ColliderID
	Transform Transform

	state    State
	config   Config
	frame    Frame
	resolver *Resolver
}

// NewCharacter returns a body with the given id and default settings. It is
// detached until Attach is called.
func NewCharacter(id ColliderID) *Character {
	return &Character{ID: id, config: DefaultConfig()}
}

// Attach binds the body to a resolver and resets its per-frame state, as
// when a body enters a scene.
func (c *Character) Attach(r *Resolver) {
	c.resolver = r
	c.Reset()
}

// Detach unbinds the body. MoveAndSlide is a no-op until it is attached
// again.
func (c *Character) Detach() {
	c.resolver = nil
}

// Attached reports whether the body has a resolver.
func (c *Character) Attached() bool {
	return c.resolver != nil && c.resolver.Query != nil
}

// Reset clears contact flags, the floor body and recorded contacts.
func (c *Character) Reset() {
	c.state.Reset()
	c.frame.Collisions.reset()
}

// MoveAndSlide resolves this frame's motion.
func (c *Character) MoveAndSlide(delta float64) error {
	frame, err := c.resolver.MoveAndSlide(Input{
		Self:       c.ID,
		Transform:  c.Transform,
		State:      c.state,
		Config:     c.config,
		Delta:      delta,
		Collisions: c.frame.Collisions,
	})
	if err != nil {
		return err
	}
	c.Transform = frame.Transform
	c.state = frame.State
	c.frame = frame
	return nil
}

// MoveAndCollide moves the body along motion until the first contact. With
// testOnly the transform is left untouched.
func (c *Character) MoveAndCollide(motion mgl64.Vec2, testOnly bool) (Result, bool, error) {
	if !c.Attached() {
		c.resolver.logger().WithField("body", c.ID).Warn("motion: move and collide on a detached body")
		return Result{}, false, ErrDetached
	}
	frame := Frame{Transform: c.Transform, State: c.state}
	s := slider{r: c.resolver, self: c.ID, cfg: c.config, frame: &frame}
	res, ok := s.moveAndCollide(motion, true, testOnly, false, nil)
	c.Transform = frame.Transform
	return res, ok, nil
}

// TestMove reports whether moving from along motion would collide, without
// moving the body.
func (c *Character) TestMove(from Transform, motion mgl64.Vec2) (Result, bool, error) {
	if !c.Attached() {
		return Result{}, false, ErrDetached
	}
	res, ok := c.resolver.Query.TestMotion(c.ID, QueryParams{
		From:                 from,
		Motion:               motion,
		Margin:               c.config.Margin,
		InfiniteInertia:      c.config.InfiniteInertia,
		ExcludeRaycastShapes: true,
	})
	return res, ok, nil
}

// State returns a copy of the motion state.
func (c *Character) State() State { return c.state }

// LastFrame returns the outcome of the last successful MoveAndSlide. Its
// contacts are a copy and stay valid after later calls.
func (c *Character) LastFrame() Frame {
	f := c.frame
	f.Collisions = f.Collisions.clone()
	return f
}

func (c *Character) LinearVelocity() mgl64.Vec2 { return c.state.LinearVelocity }

func (c *Character) SetLinearVelocity(v mgl64.Vec2) { c.state.LinearVelocity = v }

func (c *Character) IsOnFloor() bool   { return c.state.OnFloor }
func (c *Character) IsOnWall() bool    { return c.state.OnWall }
func (c *Character) IsOnCeiling() bool { return c.state.OnCeiling }

func (c *Character) FloorNormal() mgl64.Vec2   { return c.state.FloorNormal }
func (c *Character) FloorVelocity() mgl64.Vec2 { return c.state.FloorVelocity }
func (c *Character) FloorBody() ColliderID     { return c.state.FloorBody }

// SlideCount returns the number of contacts of the last frame.
func (c *Character) SlideCount() int { return c.frame.Collisions.Count() }

// SlideCollision returns the i-th contact of the last frame.
func (c *Character) SlideCollision(i int) (Result, error) {
	r, err := c.frame.Collisions.At(i)
	if err != nil {
		c.resolver.logger().WithFields(logrus.Fields{
			"body":  c.ID,
			"index": i,
			"count": c.frame.Collisions.Count(),
		}).Warn("motion: slide collision out of range")
	}
	return r, err
}

// Config returns the body's settings.
func (c *Character) Config() Config { return c.config }

// SetConfig replaces all settings. An invalid config is rejected and the
// previous one kept.
func (c *Character) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		c.resolver.logger().WithField("body", c.ID).WithError(err).Warn("motion: config rejected")
		return err
	}
	cfg.UpDirection = gamemath.Normalized(cfg.UpDirection)
	c.config = cfg
	return nil
}

func (c *Character) SetSafeMargin(margin float64) error {
	cfg := c.config
	cfg.Margin = margin
	return c.SetConfig(cfg)
}

// SetMaxSlides sets the slide iteration cap. Non-positive values are
// rejected.
func (c *Character) SetMaxSlides(n int) error {
	cfg := c.config
	cfg.MaxSlides = n
	if err := c.SetConfig(cfg); err != nil {
		return fmt.Errorf("set max slides: %w", err)
	}
	return nil
}

func (c *Character) SetFloorMaxAngle(radians float64) error {
	cfg := c.config
	cfg.FloorMaxAngle = radians
	return c.SetConfig(cfg)
}

// SetUpDirection sets up, normalized. A zero vector disables floor and
// ceiling detection.
func (c *Character) SetUpDirection(up mgl64.Vec2) {
	c.config.UpDirection = gamemath.Normalized(up)
}

func (c *Character) SetSnap(snap mgl64.Vec2)        { c.config.Snap = snap }
func (c *Character) SetStopOnSlope(enabled bool)     { c.config.StopOnSlope = enabled }
func (c *Character) SetInfiniteInertia(enabled bool) { c.config.InfiniteInertia = enabled }
func (c *Character) SetSeparateRays(enabled bool)    { c.config.SeparateRays = enabled }
