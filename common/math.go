package common

const (
	TileSize = 16

	// DisplayWidth and DisplayHeight are the logical resolution everything is
	// simulated and drawn at before being scaled to the window.
	DisplayWidth  = 320
	DisplayHeight = 240

	TPS = 60
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves v toward target by at most step.
func Approach(v, target, step float64) float64 {
	if v > target {
		return max(v-step, target)
	}
	if v < target {
		return min(v+step, target)
	}
	return v
}

// FloorDiv divides rounding toward negative infinity, which is what tile
// lookups need for positions left of or above the origin.
func FloorDiv(v float64, size int) int {
	q := int(v) / size
	if v < 0 && float64(q*size) != v {
		q--
	}
	return q
}
