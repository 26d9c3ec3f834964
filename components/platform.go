package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// PlatformData moves a kinematic collider along Path and back. The tween
// runs from 0 to 1 and back to 0.
type PlatformData struct {
	Seq      *gween.Sequence
	Origin   mgl64.Vec2
	Path     mgl64.Vec2
	Velocity mgl64.Vec2
}

// At returns the platform position for tween value t.
func (p *PlatformData) At(t float64) mgl64.Vec2 {
	return p.Origin.Add(p.Path.Mul(t))
}

var Platform = donburi.NewComponentType[PlatformData]()
