package main

import (
	"io"
	"testing"

	"github.com/automoto/slide2d/sim"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoadLevel(t *testing.T) {
	name, data, err := loadLevel("demo")
	if err != nil {
		t.Fatalf("loadLevel: %v", err)
	}
	if name != "demo" || len(data.SpawnPoints) == 0 {
		t.Errorf("got %q with %d spawns", name, len(data.SpawnPoints))
	}

	if _, _, err := loadLevel("missing"); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, _, err := loadLevel("nowhere/missing.tmx"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHold(t *testing.T) {
	_, data, err := loadLevel("demo")
	if err != nil {
		t.Fatal(err)
	}
	world, err := sim.NewWorld("demo", data, sim.Options{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		dir     string
		wantErr bool
	}{
		{"", false},
		{"left", false},
		{"right", false},
		{"jump", false},
		{"up", true},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			err := hold(world, tt.dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("hold(%q) = %v", tt.dir, err)
			}
		})
	}
}

func TestRunFixedTicks(t *testing.T) {
	err := run(options{level: "demo", ticks: 30, hold: "right"}, quietLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	err = run(options{level: "demo", ticks: 1, configPath: "missing.yaml"}, quietLogger())
	if err == nil {
		t.Error("expected error for missing settings file")
	}
}
