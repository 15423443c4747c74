package common

import "math"

// Gravity is the downward acceleration applied to falling debris, in world
// units per second squared.
const Gravity = 9.81

const epsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// InverseLerp maps v from [a, b] to [0, 1], clamped. A degenerate range
// returns 0.
func InverseLerp(a, b, v float64) float64 {
	if math.Abs(b-a) < epsilon {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
