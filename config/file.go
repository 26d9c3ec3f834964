package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidTickRate = errors.New("config: tick rate must be positive")
	ErrInvalidCellSize = errors.New("config: cell size must be positive")
	ErrInvalidBackend  = errors.New("config: unknown physics backend")
	ErrInvalidSize     = errors.New("config: character size must be positive")
	ErrInvalidEase     = errors.New("config: unknown platform ease")
)

// File is the layout of a YAML settings file. Missing keys keep their
// default values.
type File struct {
	Motion    MotionConfig    `yaml:"motion"`
	Sim       SimConfig       `yaml:"sim"`
	Character CharacterConfig `yaml:"character"`
	Platform  PlatformConfig  `yaml:"platform"`
}

// Load reads a settings file over the defaults and validates it.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML settings over the defaults. name is only used in
// errors.
func Parse(data []byte, name string) (File, error) {
	f := Defaults()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("config: unmarshal %s: %w", name, err)
	}
	if err := f.Validate(); err != nil {
		return File{}, fmt.Errorf("config: %s: %w", name, err)
	}
	return f, nil
}

// Validate reports the first invalid setting.
func (f File) Validate() error {
	if err := f.Motion.Config().Validate(); err != nil {
		return err
	}
	if f.Sim.TickRate <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTickRate, f.Sim.TickRate)
	}
	if f.Sim.CellSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCellSize, f.Sim.CellSize)
	}
	switch f.Sim.Backend {
	case "resolv", "cp":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, f.Sim.Backend)
	}
	if !(f.Character.Width > 0 && f.Character.Height > 0) || math.IsInf(f.Character.Width+f.Character.Height, 0) {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidSize, f.Character.Width, f.Character.Height)
	}
	if _, err := f.Platform.EaseFunc(); err != nil {
		return err
	}
	return nil
}

// Marshal encodes f as YAML.
func (f File) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}
