package components

import (
	"github.com/automoto/slide2d/config"
	"github.com/automoto/slide2d/scripting"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// ControllerData sets a character's velocity before it moves. Script, when
// set, replaces the built-in walker.
type ControllerData struct {
	Walker config.CharacterConfig
	Snap   mgl64.Vec2
	Script *scripting.Controller
}

var Controller = donburi.NewComponentType[ControllerData]()
