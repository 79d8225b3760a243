package mathutil

import "math"

// IntMin returns the smaller of two ints (search: int-math).
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints (search: int-math).
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp bounds x to [lo, hi] (search: int-math).
func IntClamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FloatClamp bounds x to [lo, hi].
func FloatClamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// FloorAtLeastOne floors v and never returns less than 1. Every damage stage
// re-floors through this.
func FloorAtLeastOne(v float64) int {
	return IntMax(1, int(math.Floor(v)))
}

// Percent returns value*pct/100 using integer math, floored.
func Percent(value, pct int) int {
	return value * pct / 100
}
