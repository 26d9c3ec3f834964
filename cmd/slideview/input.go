package main

import (
	cfg "github.com/automoto/slide2d/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// updateInput drives the first character from the keyboard and handles the
// settings toggles.
func (g *Game) updateInput() {
	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	g.world.SetInput(0, left, right, jump)

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.world.Step()
	}

	m := cfg.Motion
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		m.StopOnSlope = !m.StopOnSlope
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		if m.Snap == [2]float64{} {
			m.Snap = cfg.Defaults().Motion.Snap
		} else {
			m.Snap = [2]float64{}
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		m.InfiniteInertia = !m.InfiniteInertia
	case inpututil.IsKeyJustPressed(ebiten.KeyF4):
		m.SeparateRays = !m.SeparateRays
	default:
		return
	}
	g.applyMotion(m)
}

func (g *Game) applyMotion(m cfg.MotionConfig) {
	if err := g.world.ApplyMotion(m.Config()); err != nil {
		g.log.WithError(err).Warn("slideview: settings rejected")
		return
	}
	cfg.Motion = m
	if g.store == nil {
		return
	}
	if err := g.store.SaveMotion(m); err != nil {
		g.log.WithError(err).Warn("slideview: could not save settings")
	}
}
