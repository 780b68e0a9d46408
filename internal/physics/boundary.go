package physics

// BoundaryOutcome is the resolved position and velocity after applying the
// configured wall/ceiling policy, plus whether the projectile was absorbed.
type BoundaryOutcome struct {
	X, Y     float64
	VX, VY   float64
	Absorbed bool
}

// ResolveBoundary applies the configured edge policies to a state that may
// have crossed a side wall or the ceiling. It returns the outcome and
// whether any edge rule fired; when none did the input passes through
// unchanged. The floor is deliberately not handled here.
func ResolveBoundary(x, y, vx, vy float64, cfg Config) (BoundaryOutcome, bool) {
	out := BoundaryOutcome{X: x, Y: y, VX: vx, VY: vy}
	crossed := false

	if cfg.Walls != EdgeModeNone {
		switch {
		case out.X < 0:
			crossed = true
			switch cfg.Walls {
			case EdgeModeBounce:
				out.X = 0
				out.VX = -out.VX * bounceRestitution
			case EdgeModeWrap:
				out.X = cfg.WorldWidth
			case EdgeModeAbsorb:
				out.Absorbed = true
			}
		case out.X > cfg.WorldWidth:
			crossed = true
			switch cfg.Walls {
			case EdgeModeBounce:
				out.X = cfg.WorldWidth
				out.VX = -out.VX * bounceRestitution
			case EdgeModeWrap:
				out.X = 0
			case EdgeModeAbsorb:
				out.Absorbed = true
			}
		}
	}

	if out.Absorbed {
		return out, crossed
	}

	if cfg.Ceiling != EdgeModeNone && out.Y < 0 {
		crossed = true
		switch cfg.Ceiling {
		case EdgeModeBounce:
			out.Y = 0
			out.VY = -out.VY * bounceRestitution
		case EdgeModeWrap:
			out.Y = cfg.WorldHeight
			// Halve the fall speed and force it non-negative so a
			// wrapped projectile cannot loop through the ceiling
			// indefinitely.
			out.VY = out.VY / 2
			if out.VY < 0 {
				out.VY = -out.VY
			}
		case EdgeModeAbsorb:
			out.Absorbed = true
		}
	}

	return out, crossed
}
