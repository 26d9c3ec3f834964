package gamemath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSlopeSurfaceY(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		slope string
		want  float64
	}{
		{name: "up right left edge", x: 100, slope: SlopeUpRight, want: 216},
		{name: "up right middle", x: 108, slope: SlopeUpRight, want: 208},
		{name: "up right clamped", x: 130, slope: SlopeUpRight, want: 200},
		{name: "up left left edge", x: 100, slope: SlopeUpLeft, want: 200},
		{name: "up left right edge", x: 116, slope: SlopeUpLeft, want: 216},
		{name: "flat", x: 108, slope: SlopeNone, want: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlopeSurfaceY(tt.x, 100, 200, 16, 16, tt.slope); got != tt.want {
				t.Errorf("SlopeSurfaceY: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSurfaceNormal(t *testing.T) {
	up := mgl64.Vec2{0, -1}
	for _, slope := range []string{SlopeUpRight, SlopeUpLeft} {
		n := SurfaceNormal(16, 16, slope)
		if !near(n.Len(), 1) {
			t.Errorf("%s: normal %v is not unit", slope, n)
		}
		if got := AngleBetween(n, up); !near(got, mgl64.DegToRad(45)) {
			t.Errorf("%s: angle to up %v, want 45 degrees", slope, got)
		}
	}
	if SurfaceNormal(16, 16, SlopeUpRight)[0] >= 0 {
		t.Error("up-right ramp normal should lean left")
	}
	if SurfaceNormal(16, 16, SlopeUpLeft)[0] <= 0 {
		t.Error("up-left ramp normal should lean right")
	}
}
