package terrain

import (
	"math"
	"math/rand"
)

const (
	// Generated profiles keep the surface inside this band of the world
	// height so tanks always have headroom and ground beneath them.
	minSurfaceFraction = 0.35
	maxSurfaceFraction = 0.9

	walkStepMax = 1.6
)

// Generate builds a rolling hill profile from a seed. The profile layers two
// sine waves with seeded phases over a bounded random walk, which yields
// valleys and ridges without single-column spikes.
func Generate(width, height int, seed int64) *Terrain {
	rng := rand.New(rand.NewSource(seed))

	base := float64(height) * 0.65
	t := New(width, height, base)

	amp1 := float64(height) * (0.06 + rng.Float64()*0.08)
	amp2 := float64(height) * (0.02 + rng.Float64()*0.04)
	freq1 := (0.5 + rng.Float64()) * 2 * math.Pi / float64(width)
	freq2 := (2 + rng.Float64()*2) * 2 * math.Pi / float64(width)
	phase1 := rng.Float64() * 2 * math.Pi
	phase2 := rng.Float64() * 2 * math.Pi

	lower := float64(height) * minSurfaceFraction
	upper := float64(height) * maxSurfaceFraction

	walk := 0.0
	for col := 0; col < width; col++ {
		walk += (rng.Float64() - 0.5) * walkStepMax
		x := float64(col)
		surface := base +
			amp1*math.Sin(freq1*x+phase1) +
			amp2*math.Sin(freq2*x+phase2) +
			walk
		t.surface[col] = clamp(surface, lower, upper)
	}

	// Generation is not a deformation; start with a clean patch set.
	t.dirty = make(map[int]struct{})
	return t
}
