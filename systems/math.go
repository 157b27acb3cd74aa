package systems

import "math"

// Clamp functions for common value ranges

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// lerp interpolates between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// inverseLerp returns where v sits between a and b, unclamped.
func inverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

// roundHalfUp rounds to the nearest integer, with .5 going up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
