package config

import (
	"fmt"

	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// Default is the only ECS layer the simulation uses.
const Default ecs.LayerID = iota

// MotionConfig holds the per-body slide settings. Angles are in degrees so
// the YAML stays readable.
type MotionConfig struct {
	Margin          float64    `yaml:"margin"`
	MaxSlides       int        `yaml:"max_slides"`
	FloorMaxAngle   float64    `yaml:"floor_max_angle"`
	UpDirection     [2]float64 `yaml:"up_direction"`
	Snap            [2]float64 `yaml:"snap"`
	StopOnSlope     bool       `yaml:"stop_on_slope"`
	InfiniteInertia bool       `yaml:"infinite_inertia"`
	SeparateRays    bool       `yaml:"separate_rays"`
}

// Config converts the settings to what the resolver reads. The up
// direction is normalized; a zero vector stays zero.
func (m MotionConfig) Config() motion.Config {
	return motion.Config{
		Margin:          m.Margin,
		MaxSlides:       m.MaxSlides,
		FloorMaxAngle:   mgl64.DegToRad(m.FloorMaxAngle),
		UpDirection:     gamemath.Normalized(mgl64.Vec2(m.UpDirection)),
		Snap:            mgl64.Vec2(m.Snap),
		StopOnSlope:     m.StopOnSlope,
		InfiniteInertia: m.InfiniteInertia,
		SeparateRays:    m.SeparateRays,
	}
}

// SimConfig contains the headless simulation settings.
type SimConfig struct {
	TickRate  int    `yaml:"tick_rate"`
	Backend   string `yaml:"backend"`
	CellSize  int    `yaml:"cell_size"`
	LevelsDir string `yaml:"levels_dir"`
	Script    string `yaml:"script"`
}

// Delta returns the fixed time step in seconds.
func (s SimConfig) Delta() float64 {
	return 1 / float64(s.TickRate)
}

// CharacterConfig contains the walker controller tuning. Speeds are in
// units per second, accelerations in units per second squared.
type CharacterConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	WalkSpeed    float64 `yaml:"walk_speed"`
	Acceleration float64 `yaml:"acceleration"`
	Friction     float64 `yaml:"friction"`
	Gravity      float64 `yaml:"gravity"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	// Rays adds two foot rays used by the separation pass.
	Rays bool `yaml:"rays"`
}

// PlatformConfig holds moving platform settings shared by every level.
type PlatformConfig struct {
	Ease string `yaml:"ease"`
}

var eases = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inOutQuad":  ease.InOutQuad,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
}

// EaseFunc returns the tween function named by Ease.
func (p PlatformConfig) EaseFunc() (ease.TweenFunc, error) {
	fn, ok := eases[p.Ease]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEase, p.Ease)
	}
	return fn, nil
}

var (
	Motion    MotionConfig
	Sim       SimConfig
	Character CharacterConfig
	Platform  PlatformConfig
)

func init() {
	Apply(Defaults())
}

// Defaults returns the built-in settings.
func Defaults() File {
	return File{
		Motion: MotionConfig{
			Margin:          motion.DefaultMargin,
			MaxSlides:       motion.DefaultMaxSlides,
			FloorMaxAngle:   45,
			UpDirection:     [2]float64{0, -1},
			Snap:            [2]float64{0, 8},
			StopOnSlope:     true,
			InfiniteInertia: true,
		},
		Sim: SimConfig{
			TickRate:  60,
			Backend:   "resolv",
			CellSize:  16,
			LevelsDir: "levels",
		},
		// Per-tick values of 0.75 gravity, 15 jump speed and 6 max speed
		// at 60 ticks per second.
		Character: CharacterConfig{
			Width:        16,
			Height:       32,
			WalkSpeed:    360,
			Acceleration: 2700,
			Friction:     1800,
			Gravity:      2700,
			JumpSpeed:    900,
			MaxFallSpeed: 600,
		},
		Platform: PlatformConfig{
			Ease: "linear",
		},
	}
}

// Apply replaces the package-level settings with f.
func Apply(f File) {
	Motion = f.Motion
	Sim = f.Sim
	Character = f.Character
	Platform = f.Platform
}

// Current returns the package-level settings as a File.
func Current() File {
	return File{Motion: Motion, Sim: Sim, Character: Character, Platform: Platform}
}
