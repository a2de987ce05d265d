package utils

import "golang.org/x/exp/constraints"

// Clamp limits t to the interval [min, max]. The bounds may be given in either order.
func Clamp[T constraints.Ordered](t, min, max T) T {
	if min > max {
		min, max = max, min
	}
	if t < min {
		return min
	}
	if t > max {
		return max
	}
	return t
}

// ToUnitClamp scales t from the interval [rMin,rMax] to the unit interval ([0,1]). If the result falls outside
// [0,1], it is clamped to 0 or 1. An empty interval always maps to 0.
func ToUnitClamp(t, rMin, rMax float64) float64 {
	if rMax == rMin {
		return 0
	}
	return Clamp((t-rMin)/(rMax-rMin), 0, 1)
}
