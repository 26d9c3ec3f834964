package motion

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "zero max slides", modify: func(c *Config) { c.MaxSlides = 0 }, want: ErrInvalidMaxSlides},
		{name: "negative max slides", modify: func(c *Config) { c.MaxSlides = -3 }, want: ErrInvalidMaxSlides},
		{name: "zero margin", modify: func(c *Config) { c.Margin = 0 }, want: ErrInvalidMargin},
		{name: "nan margin", modify: func(c *Config) { c.Margin = math.NaN() }, want: ErrInvalidMargin},
		{name: "negative floor angle", modify: func(c *Config) { c.FloorMaxAngle = -0.1 }, want: ErrInvalidFloorAngle},
		{name: "floor angle above pi", modify: func(c *Config) { c.FloorMaxAngle = 4 }, want: ErrInvalidFloorAngle},
		{name: "zero up is allowed", modify: func(c *Config) { c.UpDirection = mgl64.Vec2{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfigWithUpDirection(t *testing.T) {
	cfg := DefaultConfig().WithUpDirection(mgl64.Vec2{0, 5})
	if cfg.UpDirection != (mgl64.Vec2{0, 1}) {
		t.Errorf("up: got %v, want (0, 1)", cfg.UpDirection)
	}
}

func TestStateReset(t *testing.T) {
	s := State{
		LinearVelocity: mgl64.Vec2{1, 2},
		OnFloor:        true,
		OnWall:         true,
		OnCeiling:      true,
		FloorNormal:    mgl64.Vec2{0, -1},
		FloorVelocity:  mgl64.Vec2{4, 0},
		FloorBody:      3,
	}
	s.Reset()
	if s != (State{LinearVelocity: mgl64.Vec2{1, 2}}) {
		t.Errorf("Reset: got %+v", s)
	}
}
