package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/automoto/slide2d/assets"
	cfg "github.com/automoto/slide2d/config"
	"github.com/automoto/slide2d/scripting"
	"github.com/automoto/slide2d/shared/leveldata"
	"github.com/automoto/slide2d/sim"
	"github.com/sirupsen/logrus"
)

type options struct {
	level      string
	configPath string
	ticks      uint64
	backend    string
	scriptPath string
	hold       string
	watch      bool
	realtime   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "demo", "bundled level name, or path to a .tmx file")
	flag.StringVar(&opts.configPath, "config", "", "YAML settings file")
	flag.Uint64Var(&opts.ticks, "ticks", 600, "ticks to run, 0 runs until interrupted")
	flag.StringVar(&opts.backend, "backend", "", "physics backend: resolv or cp (overrides the settings file)")
	flag.StringVar(&opts.scriptPath, "script", "", "tengo controller script for every character")
	flag.StringVar(&opts.hold, "hold", "", "direction every character holds: left, right, jump")
	flag.BoolVar(&opts.watch, "watch", false, "reload -config and -script when they change")
	flag.BoolVar(&opts.realtime, "realtime", false, "step at the tick rate instead of as fast as possible")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(opts, log); err != nil {
		log.WithError(err).Fatal("slidesim: failed")
	}
}

func run(opts options, log *logrus.Logger) error {
	if opts.configPath != "" {
		f, err := cfg.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg.Apply(f)
	}
	if opts.backend != "" {
		cfg.Sim.Backend = opts.backend
	}

	name, level, err := loadLevel(opts.level)
	if err != nil {
		return err
	}

	var script *scripting.Controller
	if opts.scriptPath != "" {
		if script, err = scripting.Load(opts.scriptPath); err != nil {
			return err
		}
	}

	world, err := sim.NewWorld(name, level, sim.Options{Script: script, Log: log})
	if err != nil {
		return err
	}
	if err := hold(world, opts.hold); err != nil {
		return err
	}

	if !opts.realtime && !opts.watch && opts.ticks > 0 {
		for world.Tick() < opts.ticks {
			world.Step()
		}
		report(world, log)
		return nil
	}

	loop := sim.NewLoop(world, cfg.Sim.TickRate, opts.ticks)

	if opts.watch {
		stop, err := watch(loop, opts, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			log.Info("slidesim: shutting down")
			loop.Stop()
		case <-loop.Done():
		}
	}()

	loop.Run()
	report(world, log)
	return nil
}

func loadLevel(level string) (string, *leveldata.CollisionData, error) {
	if filepath.Ext(level) == ".tmx" {
		data, err := leveldata.LoadCollisionData(os.DirFS(filepath.Dir(level)), filepath.Base(level))
		if err != nil {
			return "", nil, err
		}
		return level, data, nil
	}

	levels, names, err := assets.LoadLevels()
	if err != nil {
		return "", nil, err
	}
	data, ok := levels[level]
	if !ok {
		return "", nil, fmt.Errorf("slidesim: no level %q, have %v", level, names)
	}
	return level, data, nil
}

func hold(world *sim.World, dir string) error {
	var left, right, jump bool
	switch dir {
	case "":
		return nil
	case "left":
		left = true
	case "right":
		right = true
	case "jump":
		jump = true
	default:
		return fmt.Errorf("slidesim: unknown -hold %q", dir)
	}
	for i := range world.Characters() {
		world.SetInput(i, left, right, jump)
	}
	return nil
}

// watch reloads the settings file and the script on change. Reloads run on
// the loop goroutine.
func watch(loop *sim.Loop, opts options, log *logrus.Logger) (func(), error) {
	var dirs []string
	for _, p := range []string{opts.configPath, opts.scriptPath} {
		if p != "" {
			dirs = append(dirs, filepath.Dir(p))
		}
	}
	if len(dirs) == 0 {
		return func() {}, nil
	}

	w, err := cfg.NewWatcher(dirs...)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				reload(loop, opts, path, log)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("slidesim: watch error")
			}
		}
	}()

	return func() { _ = w.Close() }, nil
}

func reload(loop *sim.Loop, opts options, path string, log *logrus.Logger) {
	switch {
	case opts.configPath != "" && sameFile(path, opts.configPath):
		f, err := cfg.Load(opts.configPath)
		if err != nil {
			log.WithError(err).Warn("slidesim: keeping previous settings")
			return
		}
		loop.Do(func(w *sim.World) {
			if err := w.ApplyMotion(f.Motion.Config()); err != nil {
				log.WithError(err).Warn("slidesim: motion settings rejected")
			}
		})
	case opts.scriptPath != "" && sameFile(path, opts.scriptPath):
		script, err := scripting.Load(opts.scriptPath)
		if err != nil {
			log.WithError(err).Warn("slidesim: keeping previous script")
			return
		}
		loop.Do(func(w *sim.World) { w.SetScript(script) })
		log.WithField("script", opts.scriptPath).Info("slidesim: script reloaded")
	}
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

func report(world *sim.World, log *logrus.Logger) {
	for i := range world.Characters() {
		body, _ := world.Body(i)
		state := body.State()
		log.WithFields(logrus.Fields{
			"body":       body.ID,
			"position":   body.Transform.Origin,
			"velocity":   state.LinearVelocity,
			"on_floor":   state.OnFloor,
			"on_wall":    state.OnWall,
			"on_ceiling": state.OnCeiling,
			"contacts":   body.SlideCount(),
		}).Info("slidesim: body")
	}
	log.WithFields(logrus.Fields{
		"tick":   world.Tick(),
		"digest": fmt.Sprintf("%016x", world.Digest()),
	}).Info("slidesim: done")
}
