package cpspace

import (
	"math"
	"testing"

	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

const margin = motion.DefaultMargin

func newTestSpace(t *testing.T) *Space {
	t.Helper()
	s := New()
	if err := s.Add(Collider{
		ID:        1,
		Shapes:    []gamemath.Polygon{gamemath.Rect(0, 0, 200, 16)},
		Transform: motion.Transform{Origin: mgl64.Vec2{0, 100}},
	}); err != nil {
		t.Fatalf("Add floor: %v", err)
	}
	if err := s.Add(Collider{
		ID:     2,
		Shapes: []gamemath.Polygon{gamemath.Rect(-8, -16, 16, 16)},
		Rays:   [][2]mgl64.Vec2{{{0, 0}, {0, 10}}},
	}); err != nil {
		t.Fatalf("Add body: %v", err)
	}
	return s
}

func TestTestMotion(t *testing.T) {
	tests := []struct {
		name    string
		from    mgl64.Vec2
		motion  mgl64.Vec2
		wantHit bool
	}{
		{name: "falls onto floor", from: mgl64.Vec2{50, 50}, motion: mgl64.Vec2{0, 100}, wantHit: true},
		{name: "free fall above floor", from: mgl64.Vec2{50, 50}, motion: mgl64.Vec2{0, 20}},
		{name: "moves away", from: mgl64.Vec2{50, 50}, motion: mgl64.Vec2{0, -20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSpace(t)
			res, ok := s.TestMotion(2, motion.QueryParams{
				From:   motion.Transform{Origin: tt.from},
				Motion: tt.motion,
				Margin: margin,
			})
			if ok != tt.wantHit {
				t.Fatalf("collided: got %v, want %v", ok, tt.wantHit)
			}
			if !ok {
				if res.Motion != tt.motion {
					t.Errorf("free motion: got %v, want %v", res.Motion, tt.motion)
				}
				return
			}
			if res.Collider != 1 {
				t.Errorf("collider: got %d, want 1", res.Collider)
			}
			if res.Normal[1] > -0.99 {
				t.Errorf("normal should point up: %v", res.Normal)
			}
			end := tt.from[1] + res.Motion[1]
			if end > 100-margin+1e-6 || end < 100-margin-1 {
				t.Errorf("stopped at y=%v, want just above %v", end, 100-margin)
			}
		})
	}
}

func TestTestMotionExclude(t *testing.T) {
	s := newTestSpace(t)
	_, ok := s.TestMotion(2, motion.QueryParams{
		From:    motion.Transform{Origin: mgl64.Vec2{50, 50}},
		Motion:  mgl64.Vec2{0, 100},
		Margin:  margin,
		Exclude: []motion.ColliderID{1},
	})
	if ok {
		t.Error("excluded floor was hit")
	}
}

func TestSeparateRays(t *testing.T) {
	s := newTestSpace(t)

	var buf motion.SeparationBuffer
	push, hits := s.SeparateRays(2, motion.SeparationParams{
		From:   motion.Transform{Origin: mgl64.Vec2{50, 95}},
		Margin: margin,
	}, &buf)
	if hits != 1 {
		t.Fatalf("hits: got %d, want 1", hits)
	}
	want := 10 + margin - 5
	if math.Abs(buf[0].Depth-want) > 1e-6 || math.Abs(push[1]+want) > 1e-6 {
		t.Errorf("depth %v push %v, want %v", buf[0].Depth, push, want)
	}
	if buf[0].Collider != 1 {
		t.Errorf("collider: got %d, want 1", buf[0].Collider)
	}
}

func TestBookkeeping(t *testing.T) {
	s := newTestSpace(t)
	if err := s.Add(Collider{ID: 1, Shapes: []gamemath.Polygon{gamemath.Rect(0, 0, 1, 1)}}); err == nil {
		t.Error("duplicate id accepted")
	}
	if !s.SetVelocity(1, mgl64.Vec2{2, 0}) {
		t.Fatal("SetVelocity failed")
	}
	if v, ok := s.ColliderVelocity(1); !ok || v != (mgl64.Vec2{2, 0}) {
		t.Errorf("ColliderVelocity: %v %v", v, ok)
	}
	if !s.Remove(1) {
		t.Fatal("Remove failed")
	}
	if _, ok := s.ColliderVelocity(1); ok {
		t.Error("removed collider still known")
	}
}
