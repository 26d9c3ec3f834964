package main

import (
	"flag"
	"image"

	"github.com/automoto/slide2d/assets"
	cfg "github.com/automoto/slide2d/config"
	"github.com/automoto/slide2d/persistence"
	"github.com/automoto/slide2d/scripting"
	"github.com/automoto/slide2d/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

const (
	screenWidth  = 480
	screenHeight = 270
)

type Game struct {
	bounds image.Rectangle
	world  *sim.World
	store  *persistence.Store
	log    *logrus.Logger
	paused bool
}

func NewGame(world *sim.World, store *persistence.Store, log *logrus.Logger) *Game {
	return &Game{world: world, store: store, log: log}
}

func (g *Game) Update() error {
	g.updateInput()
	if !g.paused {
		g.world.Step()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(g.world, screen)
	drawHUD(g.world, screen, g.paused)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, screenWidth, screenHeight)
	return screenWidth, screenHeight
}

func main() {
	level := flag.String("level", "demo", "bundled level name")
	backend := flag.String("backend", "", "physics backend: resolv or cp")
	script := flag.String("script", "", "bundled controller script, e.g. walker")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	store, err := persistence.Open("slide2d", log)
	if err != nil {
		log.WithError(err).Warn("slideview: settings will not be saved")
	} else if saved, ok, err := store.LoadMotion(); err != nil {
		log.WithError(err).Warn("slideview: could not load saved settings")
	} else if ok {
		cfg.Motion = saved
	}

	levels, names, err := assets.LoadLevels()
	if err != nil {
		log.WithError(err).Fatal("slideview: load levels")
	}
	data, ok := levels[*level]
	if !ok {
		log.WithField("levels", names).Fatalf("slideview: no level %q", *level)
	}

	var controller *scripting.Controller
	if *script != "" {
		if controller, err = assets.LoadScript(*script); err != nil {
			log.WithError(err).Fatal("slideview: load script")
		}
	}

	world, err := sim.NewWorld(*level, data, sim.Options{Backend: *backend, Script: controller, Log: log})
	if err != nil {
		log.WithError(err).Fatal("slideview: create world")
	}

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("slide2d")
	ebiten.SetTPS(cfg.Sim.TickRate)

	if err := ebiten.RunGame(NewGame(world, store, log)); err != nil {
		log.Fatal(err)
	}
}
