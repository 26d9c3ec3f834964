// Package motion resolves kinematic body motion against a physics space:
// the iterative move-and-slide loop, floor/wall/ceiling classification,
// moving platform velocity inheritance and ground snapping.
package motion

import (
	"io"
	"math"

	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// stopOnSlopeTolerance is how close the normalized velocity has to be to
// straight down for the stop-on-slope fast path.
const stopOnSlopeTolerance = 0.01

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// Resolver runs MoveAndSlide against a Query. Bodies is optional; without it
// the floor velocity cached from the last frame is used as is.
type Resolver struct {
	Query  Query
	Bodies Bodies
	Log    logrus.FieldLogger
}

// NewResolver returns a Resolver over q and bodies.
func NewResolver(q Query, bodies Bodies, log logrus.FieldLogger) *Resolver {
	return &Resolver{Query: q, Bodies: bodies, Log: log}
}

func (r *Resolver) logger() logrus.FieldLogger {
	if r == nil || r.Log == nil {
		return discardLogger
	}
	return r.Log
}

// Input is everything one MoveAndSlide call reads.
type Input struct {
	Self      ColliderID
	Transform Transform
	State     State
	Config    Config
	Delta     float64

	// Collisions is an optional store to reuse. It is cleared before use
	// and handed back in the Frame, which then shares its storage: a later
	// call given the same store overwrites those contacts.
	Collisions Collisions
}

// Frame is the outcome of one MoveAndSlide call.
type Frame struct {
	Transform  Transform
	State      State
	Collisions Collisions
	// Queries counts the motion queries issued.
	Queries int
}

// MoveAndSlide moves the body by its linear velocity over delta, sliding
// along whatever it hits. On error the input transform and state are
// returned unchanged.
func (r *Resolver) MoveAndSlide(in Input) (Frame, error) {
	frame := Frame{Transform: in.Transform, State: in.State, Collisions: in.Collisions}

	if r == nil || r.Query == nil {
		r.logger().WithField("body", in.Self).Warn("motion: move and slide on a detached body")
		return frame, ErrDetached
	}
	if err := in.Config.Validate(); err != nil {
		r.logger().WithFields(logrus.Fields{
			"body":       in.Self,
			"max_slides": in.Config.MaxSlides,
			"margin":     in.Config.Margin,
		}).WithError(err).Warn("motion: invalid config")
		return frame, err
	}
	if in.Delta < 0 || math.IsNaN(in.Delta) || math.IsInf(in.Delta, 0) {
		r.logger().WithFields(logrus.Fields{"body": in.Self, "delta": in.Delta}).Warn("motion: invalid delta")
		return frame, ErrInvalidDelta
	}

	s := slider{
		r:     r,
		self:  in.Self,
		cfg:   in.Config,
		frame: &frame,
	}
	s.moveAndSlide(in.Delta)
	return frame, nil
}

// slider carries the working state of one MoveAndSlide call.
type slider struct {
	r     *Resolver
	self  ColliderID
	cfg   Config
	frame *Frame
	sep   SeparationBuffer
}

func (s *slider) moveAndSlide(delta float64) {
	cfg := s.cfg
	st := &s.frame.State

	bodyVelocityNormal := gamemath.Normalized(st.LinearVelocity)
	wasOnFloor := st.OnFloor
	currentFloorVelocity := s.liveFloorVelocity()

	s.frame.Collisions.reset()
	floorBody := st.FloorBody
	st.OnFloor = false
	st.OnCeiling = false
	st.OnWall = false
	st.FloorNormal = mgl64.Vec2{}
	st.FloorVelocity = mgl64.Vec2{}

	// Let the platform carry the body first so it can push it into
	// something before the body's own motion is applied.
	if !gamemath.IsZero(currentFloorVelocity) {
		exclude := [1]ColliderID{floorBody}
		if res, ok := s.moveAndCollide(currentFloorVelocity.Mul(delta), false, false, false, exclude[:]); ok {
			s.record(res)
		}
	}

	st.FloorBody = NoCollider
	motion := st.LinearVelocity.Mul(delta)

	// No sliding on the first attempt keeps floor motion stable when stop on
	// slope is enabled.
	slidingEnabled := !cfg.StopOnSlope

	for iteration := 0; iteration < cfg.MaxSlides; iteration++ {
		foundCollision := false

		for pass := 0; pass < 2; pass++ {
			var (
				res      Result
				collided bool
			)
			if pass == 0 {
				res, collided = s.moveAndCollide(motion, true, false, !slidingEnabled, nil)
				if !collided {
					motion = mgl64.Vec2{}
				}
			} else if cfg.SeparateRays {
				res, collided = s.separateRays()
				if collided {
					res.Remainder = motion
					res.Motion = mgl64.Vec2{}
				}
			}

			if collided {
				foundCollision = true
				class := s.record(res)

				if class == Floor && cfg.StopOnSlope && bodyVelocityNormal.Add(cfg.UpDirection).Len() < stopOnSlopeTolerance {
					// Falling straight onto floor: keep only the motion along
					// up so the body does not creep down the slope.
					tr := &s.frame.Transform
					if res.Motion.Len() > cfg.Margin {
						tr.Origin = tr.Origin.Sub(gamemath.Slide(res.Motion, cfg.UpDirection))
					} else {
						tr.Origin = tr.Origin.Sub(res.Motion)
					}
					st.LinearVelocity = mgl64.Vec2{}
					return
				}

				if slidingEnabled || !st.OnFloor {
					motion = gamemath.Slide(res.Remainder, res.Normal)
					st.LinearVelocity = gamemath.Slide(st.LinearVelocity, res.Normal)
				} else {
					motion = res.Remainder
				}
			}

			slidingEnabled = true
		}

		if !foundCollision || gamemath.IsZero(motion) {
			break
		}
	}

	if !st.OnFloor && !st.OnWall {
		// Keep the platform's momentum when the body just left it.
		st.LinearVelocity = st.LinearVelocity.Add(currentFloorVelocity)
	}

	if !wasOnFloor || gamemath.IsZero(cfg.Snap) {
		return
	}
	s.snap()
}

// liveFloorVelocity returns the velocity of the body stood on last frame,
// read from the live registry when possible. A floor body that no longer
// exists contributes nothing.
func (s *slider) liveFloorVelocity() mgl64.Vec2 {
	st := s.frame.State
	if !(st.OnFloor || st.OnWall) || st.FloorBody == NoCollider || s.r.Bodies == nil {
		return st.FloorVelocity
	}
	v, ok := s.r.Bodies.ColliderVelocity(st.FloorBody)
	if !ok {
		s.r.logger().WithFields(logrus.Fields{
			"body":  s.self,
			"floor": st.FloorBody,
		}).Debug("motion: floor body is gone")
		return mgl64.Vec2{}
	}
	return v
}

func (s *slider) record(res Result) Classification {
	s.frame.Collisions.add(res)
	return classify(&s.frame.State, res, s.cfg)
}

// moveAndCollide issues one motion query from the current transform and
// commits its motion unless testOnly is set.
func (s *slider) moveAndCollide(motion mgl64.Vec2, excludeRaycast, testOnly, cancelSliding bool, exclude []ColliderID) (Result, bool) {
	s.frame.Queries++
	tr := &s.frame.Transform
	margin := s.cfg.Margin

	res, colliding := s.r.Query.TestMotion(s.self, QueryParams{
		From:                 *tr,
		Motion:               motion,
		Margin:               margin,
		InfiniteInertia:      s.cfg.InfiniteInertia,
		ExcludeRaycastShapes: excludeRaycast,
		Exclude:              exclude,
	})
	if !res.finite() {
		s.r.logger().WithField("body", s.self).Warn("motion: query returned a non-finite result")
		return Result{}, false
	}

	// Keep the motion along its requested direction so recovery alone does
	// not make the body slide, unless the contact is deep enough that doing
	// so could tunnel.
	if cancelSliding {
		motionLength := motion.Len()
		precision := 0.001

		if colliding {
			// Depth is measured at the unsafe position, so even a resting
			// contact can be slightly deeper than the margin.
			precision += motionLength * (res.UnsafeFraction - res.SafeFraction)
			if res.Depth > margin+precision {
				cancelSliding = false
			}
		}

		if cancelSliding {
			var motionNormal mgl64.Vec2
			if motionLength > gamemath.CmpEpsilon {
				motionNormal = motion.Mul(1 / motionLength)
			}

			projectedLength := res.Motion.Dot(motionNormal)
			recovery := res.Motion.Sub(motionNormal.Mul(projectedLength))
			if recovery.Len() < margin+precision {
				res.Motion = motionNormal.Mul(projectedLength)
				res.Remainder = motion.Sub(res.Motion)
			}
		}
	}

	if !testOnly {
		tr.Origin = tr.Origin.Add(res.Motion)
	}
	return res, colliding
}
