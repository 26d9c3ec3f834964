package motion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestClassify(t *testing.T) {
	up := mgl64.Vec2{0, -1}
	at := func(deg float64) mgl64.Vec2 {
		r := mgl64.DegToRad(deg)
		return mgl64.Vec2{math.Sin(r), -math.Cos(r)}
	}

	tests := []struct {
		name   string
		normal mgl64.Vec2
		up     mgl64.Vec2
		max    float64
		want   Classification
	}{
		{name: "flat floor", normal: up, up: up, max: DefaultFloorMaxAngle, want: Floor},
		{name: "30 degree slope", normal: at(30), up: up, max: DefaultFloorMaxAngle, want: Floor},
		{name: "exactly max angle", normal: at(45), up: up, max: DefaultFloorMaxAngle, want: Floor},
		{name: "within threshold", normal: at(45.5), up: up, max: DefaultFloorMaxAngle, want: Floor},
		{name: "steep slope", normal: at(50), up: up, max: DefaultFloorMaxAngle, want: Wall},
		{name: "vertical wall", normal: mgl64.Vec2{1, 0}, up: up, max: DefaultFloorMaxAngle, want: Wall},
		{name: "ceiling", normal: mgl64.Vec2{0, 1}, up: up, max: DefaultFloorMaxAngle, want: Ceiling},
		{name: "sloped ceiling", normal: at(160), up: up, max: DefaultFloorMaxAngle, want: Ceiling},
		{name: "zero up", normal: up, up: mgl64.Vec2{}, max: DefaultFloorMaxAngle, want: Wall},
		{name: "sideways up", normal: mgl64.Vec2{1, 0}, up: mgl64.Vec2{1, 0}, max: 0, want: Floor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.normal, tt.up, tt.max); got != tt.want {
				t.Errorf("Classify(%v, %v): got %v, want %v", tt.normal, tt.up, got, tt.want)
			}
		})
	}
}

func TestClassifyState(t *testing.T) {
	cfg := DefaultConfig()
	platform := mgl64.Vec2{3, 0}

	tests := []struct {
		name      string
		normal    mgl64.Vec2
		wantFloor bool
		wantWall  bool
		wantCeil  bool
		wantBody  ColliderID
	}{
		{name: "floor", normal: mgl64.Vec2{0, -1}, wantFloor: true, wantBody: 7},
		{name: "wall", normal: mgl64.Vec2{-1, 0}, wantWall: true, wantBody: 7},
		{name: "ceiling", normal: mgl64.Vec2{0, 1}, wantCeil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			classify(&s, Result{Normal: tt.normal, Collider: 7, ColliderVelocity: platform}, cfg)

			if s.OnFloor != tt.wantFloor || s.OnWall != tt.wantWall || s.OnCeiling != tt.wantCeil {
				t.Errorf("flags: got %+v", s)
			}
			if s.FloorBody != tt.wantBody {
				t.Errorf("floor body: got %d, want %d", s.FloorBody, tt.wantBody)
			}
			if tt.wantBody != NoCollider && s.FloorVelocity != platform {
				t.Errorf("floor velocity: got %v, want %v", s.FloorVelocity, platform)
			}
		})
	}
}

func TestClassifyLastContactWins(t *testing.T) {
	cfg := DefaultConfig()
	zeroUp := cfg.WithUpDirection(mgl64.Vec2{})

	tests := []struct {
		name      string
		prev      State
		normal    mgl64.Vec2
		cfg       Config
		wantFloor bool
		wantWall  bool
		wantCeil  bool
	}{
		{name: "wall then floor", prev: State{OnWall: true}, normal: mgl64.Vec2{0, -1}, cfg: cfg, wantFloor: true},
		{name: "floor then wall", prev: State{OnFloor: true}, normal: mgl64.Vec2{-1, 0}, cfg: cfg, wantWall: true},
		{name: "floor then ceiling", prev: State{OnFloor: true, OnWall: true}, normal: mgl64.Vec2{0, 1}, cfg: cfg, wantCeil: true},
		{name: "zero up", prev: State{OnFloor: true, OnCeiling: true}, normal: mgl64.Vec2{0, -1}, cfg: zeroUp, wantWall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.prev
			classify(&s, Result{Normal: tt.normal, Collider: 3}, tt.cfg)

			if s.OnFloor != tt.wantFloor || s.OnWall != tt.wantWall || s.OnCeiling != tt.wantCeil {
				t.Errorf("flags: got %+v", s)
			}
		})
	}
}

func TestResultAngle(t *testing.T) {
	r := Result{Normal: mgl64.Vec2{1, 0}}
	if got := r.Angle(mgl64.Vec2{0, -1}); !near(got, math.Pi/2) {
		t.Errorf("Angle: got %v, want pi/2", got)
	}
	if got := r.Angle(mgl64.Vec2{}); got != 0 {
		t.Errorf("Angle with zero up: got %v, want 0", got)
	}
}
