package gamemath

import "github.com/go-gl/mathgl/mgl64"

// Slope type tags, matching the Tiled tile property values.
const (
	SlopeNone    = ""
	SlopeUpRight = "45_up_right"
	SlopeUpLeft  = "45_up_left"
)

// RampPolygon returns the local-space triangle of a w x h ramp tile. The
// origin is the tile's top-left corner and Y grows downward.
func RampPolygon(w, h float64, slope string) Polygon {
	switch slope {
	case SlopeUpRight:
		// Surface rises from bottom-left to top-right.
		return Polygon{{0, h}, {w, 0}, {w, h}}
	case SlopeUpLeft:
		// Surface falls from top-left to bottom-right.
		return Polygon{{0, 0}, {w, h}, {0, h}}
	default:
		return Rect(0, 0, w, h)
	}
}

// SlopeSurfaceY calculates the ramp surface Y at world X for a ramp whose
// top-left corner is (rampX, rampY).
func SlopeSurfaceY(x, rampX, rampY, rampW, rampH float64, slope string) float64 {
	relativeX := ClampFloat(x-rampX, 0, rampW)
	t := relativeX / rampW

	switch slope {
	case SlopeUpRight:
		return rampY + rampH*(1-t)
	case SlopeUpLeft:
		return rampY + rampH*t
	default:
		return rampY
	}
}

// SurfaceNormal returns the outward unit normal of a ramp's sloped face.
func SurfaceNormal(w, h float64, slope string) mgl64.Vec2 {
	switch slope {
	case SlopeUpRight:
		return Normalized(mgl64.Vec2{-h, -w})
	case SlopeUpLeft:
		return Normalized(mgl64.Vec2{h, -w})
	default:
		return mgl64.Vec2{0, -1}
	}
}

// ClampFloat constrains a value to the range [min, max].
func ClampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
