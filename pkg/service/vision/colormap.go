package vision

import (
	"image/color"
	"math"
)

// Contrast stretch bounds applied after min/max normalization.
const (
	StretchMin = 0.3
	StretchMax = 0.7
)

// Jet maps v in [0,1] through blue, cyan, green, yellow and red.
// Values outside the range are clamped.
func Jet(v float64) color.NRGBA {
	v = clamp01(v)
	var r, g, b float64
	switch {
	case v < 0.25:
		r, g, b = 0, 4*v*255, 255
	case v < 0.5:
		r, g, b = 0, 255, 255-4*(v-0.25)*255
	case v < 0.75:
		r, g, b = 4*(v-0.5)*255, 255, 0
	default:
		r, g, b = 255, 255-4*(v-0.75)*255, 0
	}
	return color.NRGBA{
		R: uint8(math.Round(r)),
		G: uint8(math.Round(g)),
		B: uint8(math.Round(b)),
		A: 255,
	}
}

// Alpha is fully transparent at 0 and ramps linearly from 100 to 255.
func Alpha(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	return uint8(math.Round(100 + 155*clamp01(v)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
