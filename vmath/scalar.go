package vmath

import "math"

// Clamp bounds v to [lo, hi]; NaN collapses to lo
func Clamp(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ClampTime bounds an authored activation time to one loop [0, 1)
func ClampTime(t float64) float64 {
	return Clamp(t, 0, MaxNormalizedTime)
}

// Fraction reduces a host normalized time (which keeps growing across loops) to [0, 1)
func Fraction(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	f := t - math.Floor(t)
	// Tiny negative inputs round up to exactly 1
	if f >= 1 {
		return 0
	}
	return f
}
