package motion

import (
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// snap probes along the snap vector after sliding and, when it lands on
// floor, moves the body down onto it.
func (s *slider) snap() {
	cfg := s.cfg
	st := &s.frame.State

	res, collided := s.moveAndCollide(cfg.Snap, false, true, false, nil)
	if !collided {
		return
	}

	if !gamemath.IsZero(cfg.UpDirection) {
		if Classify(res.Normal, cfg.UpDirection, cfg.FloorMaxAngle) != Floor {
			return
		}
		st.OnFloor = true
		st.FloorNormal = res.Normal
		st.FloorBody = res.Collider
		st.FloorVelocity = res.ColliderVelocity

		if cfg.StopOnSlope {
			// Recovery may push the body sideways; only follow the floor
			// direction.
			if res.Motion.Len() > cfg.Margin {
				res.Motion = gamemath.Project(res.Motion, cfg.UpDirection)
			} else {
				res.Motion = mgl64.Vec2{}
			}
		}
	}

	tr := &s.frame.Transform
	tr.Origin = tr.Origin.Add(res.Motion)
}
