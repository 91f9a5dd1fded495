package seocheck

import "math"

// Partial credit is linear everywhere: a check computes a ratio in
// [0, 1], the score is ratio * maxScore rounded half-up. A ratio of 1
// is a pass, [0.5, 1) a warning, below 0.5 a fail.

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// linearScore interpolates between a fail floor and a pass ceiling.
func linearScore(value, floor, ceiling float64) float64 {
	if ceiling <= floor {
		return 1
	}
	return clamp01((value - floor) / (ceiling - floor))
}

// bandRatio is 1 inside [lo, hi] and decays proportionally to how far
// the value sits outside the nearer edge.
func bandRatio(value, lo, hi float64) float64 {
	switch {
	case value <= 0:
		return 0
	case value < lo:
		return clamp01(value / lo)
	case value > hi:
		return clamp01(hi / value)
	default:
		return 1
	}
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func statusFor(ratio float64) Status {
	switch {
	case ratio >= 1:
		return StatusPass
	case ratio >= 0.5:
		return StatusWarning
	default:
		return StatusFail
	}
}
