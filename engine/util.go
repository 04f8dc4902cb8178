package engine

import "golang.org/x/exp/constraints"

// Clamp bounds v to [low, high].
func Clamp[T constraints.Integer](v, low, high T) T {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// roundDiv divides by d rounding half away from zero.
func roundDiv(v, d int) int {
	switch {
	case v > 0:
		v += d / 2
	case v < 0:
		v -= d / 2
	}
	return v / d
}
