package systems

import (
	"math"

	"github.com/automoto/slide2d/components"
	cfg "github.com/automoto/slide2d/config"
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/scripting"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/automoto/slide2d/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateControllers sets each character's velocity for this tick, from its
// script or from the built-in walker. Must run before UpdateCharacters.
func UpdateControllers(ecs *ecs.ECS) {
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)

	tags.Character.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		controller := components.Controller.Get(e)
		input := components.Input.Get(e)

		if controller.Script != nil {
			err := controller.Script.Update(body.Character, scripting.Input{
				Left:        input.Left,
				Right:       input.Right,
				Jump:        input.Jump,
				JumpPressed: input.JumpPressed(),
			}, space.Delta)
			if err != nil {
				space.Log.WithError(err).WithField("body", body.ID).Warn("systems: controller script failed")
			}
		} else {
			walk(body.Character, input, controller.Walker, controller.Snap, space.Delta)
		}

		input.JumpWasPressed = input.Jump
	})
}

// walk is the default controller: accelerate toward the walk speed, brake
// with friction on the ground, jump off floors, fall with gravity.
func walk(body *motion.Character, input *components.InputData, w cfg.CharacterConfig, snap mgl64.Vec2, dt float64) {
	v := body.LinearVelocity()

	if dir := input.Direction(); dir != 0 {
		v[0] = gamemath.Approach(v[0], dir*w.WalkSpeed, w.Acceleration*dt)
	} else if body.IsOnFloor() {
		v[0] = gamemath.ApplyFriction(v[0], w.Friction*dt)
	}
	v[0] = gamemath.ClampSpeed(v[0], w.WalkSpeed)

	// Snapping would pull the body straight back onto the floor it jumps
	// off.
	body.SetSnap(snap)
	if input.JumpPressed() && body.IsOnFloor() {
		v[1] = -w.JumpSpeed
		body.SetSnap(mgl64.Vec2{})
	}

	v[1] = math.Min(v[1]+w.Gravity*dt, w.MaxFallSpeed)
	body.SetLinearVelocity(v)
}
