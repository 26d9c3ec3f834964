package main

import (
	"fmt"
	"image/color"

	"github.com/automoto/slide2d/components"
	cfg "github.com/automoto/slide2d/config"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/automoto/slide2d/sim"
	"github.com/automoto/slide2d/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
)

var (
	solidColor     = color.RGBA{100, 100, 100, 255}
	rampColor      = color.RGBA{160, 120, 60, 255}
	platformColor  = color.RGBA{0, 255, 255, 255}
	characterColor = color.RGBA{0, 0, 255, 255}
	floorColor     = color.RGBA{0, 255, 0, 255}
	normalColor    = color.RGBA{255, 0, 0, 255}
)

var scratch gamemath.Polygon

// camera centers the view on the first character, kept inside the level.
func camera(world *sim.World, width, height int) mgl64.Vec2 {
	var focus mgl64.Vec2
	if body, ok := world.Body(0); ok {
		focus = body.Transform.Origin
	}
	w, h := float64(width), float64(height)
	x := gamemath.ClampFloat(focus[0]-w/2, 0, max(0, float64(world.Level.MapWidth)-w))
	y := gamemath.ClampFloat(focus[1]-h/2, 0, max(0, float64(world.Level.MapHeight)-h))
	return mgl64.Vec2{-x, -y}
}

func drawWorld(world *sim.World, screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	offset := camera(world, width, height)
	viewLo := offset.Mul(-1)
	viewHi := viewLo.Add(mgl64.Vec2{float64(width), float64(height)})

	components.Collider.Each(world.ECS.World, func(e *donburi.Entry) {
		collider := components.Collider.Get(e)
		lo, hi := collider.Bounds()
		if hi[0] < viewLo[0] || lo[0] > viewHi[0] || hi[1] < viewLo[1] || lo[1] > viewHi[1] {
			return
		}

		c := solidColor
		switch {
		case e.HasComponent(tags.Character):
			c = characterColor
			if body := components.Body.Get(e); body.IsOnFloor() {
				c = floorColor
			}
		case e.HasComponent(tags.Platform):
			c = platformColor
		case e.HasComponent(tags.Ramp):
			c = rampColor
		}

		for _, shape := range collider.Shapes {
			scratch = shape.Transformed(scratch, collider.Transform.Origin.Add(offset), collider.Transform.Rotation)
			strokePolygon(screen, scratch, c)
		}
	})

	// Contact normals of the last move.
	tags.Character.Each(world.ECS.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		for i := range body.SlideCount() {
			r, err := body.SlideCollision(i)
			if err != nil {
				return
			}
			p := r.Position().Add(offset)
			n := p.Add(r.Normal.Mul(8))
			vector.StrokeLine(screen, float32(p[0]), float32(p[1]), float32(n[0]), float32(n[1]), 1, normalColor, false)
		}
	})
}

func strokePolygon(screen *ebiten.Image, p gamemath.Polygon, c color.Color) {
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), 1, c, false)
	}
}

func drawHUD(world *sim.World, screen *ebiten.Image, paused bool) {
	text := fmt.Sprintf("TPS %0.1f  tick %d  backend %s\n", ebiten.ActualTPS(), world.Tick(), world.Space.Backend())
	if body, ok := world.Body(0); ok {
		s := body.State()
		text += fmt.Sprintf("pos %.2f,%.2f  vel %.1f,%.1f\nfloor %v  wall %v  ceiling %v  slides %d\n",
			body.Transform.Origin[0], body.Transform.Origin[1],
			s.LinearVelocity[0], s.LinearVelocity[1],
			s.OnFloor, s.OnWall, s.OnCeiling, body.SlideCount())
	}
	m := cfg.Motion
	text += fmt.Sprintf("F1 stop on slope %v  F2 snap %v  F3 inertia %v  F4 rays %v",
		m.StopOnSlope, m.Snap != [2]float64{}, m.InfiniteInertia, m.SeparateRays)
	if paused {
		text += "\nPAUSED  N step"
	}
	ebitenutil.DebugPrint(screen, text)
}
