package physics

// EdgeMode selects how the boundary layer treats a projectile crossing a
// side wall or the ceiling. The floor is never resolved here; falling past
// the bottom edge is handled by the hard out-of-bounds rule in Integrate.
type EdgeMode string

const (
	// EdgeModeNone disables the boundary layer for that edge.
	EdgeModeNone EdgeMode = "none"
	// EdgeModeBounce reflects the crossing velocity component with fixed
	// restitution and clamps the position back onto the edge.
	EdgeModeBounce EdgeMode = "bounce"
	// EdgeModeWrap teleports the projectile to the opposite edge.
	EdgeModeWrap EdgeMode = "wrap"
	// EdgeModeAbsorb terminates the projectile with no explosion.
	EdgeModeAbsorb EdgeMode = "absorb"
)

const (
	// DefaultGravity is the per-step downward acceleration in pixels.
	DefaultGravity = 0.15
	// DefaultMaxVelocity is the launch speed at power 100, pixels per step.
	DefaultMaxVelocity = 15.0
	// DefaultWorldWidth and DefaultWorldHeight bound the playfield.
	DefaultWorldWidth  = 1200.0
	DefaultWorldHeight = 700.0

	// bounceRestitution is the fixed energy retention on a wall bounce.
	bounceRestitution = 0.8
)

// Config carries the ambient parameters for one simulation. It is an
// immutable value passed into every integration call so concurrent
// simulations (live shot vs. trajectory preview) cannot cross-talk.
type Config struct {
	Gravity     float64
	Wind        float64
	MaxVelocity float64
	WorldWidth  float64
	WorldHeight float64
	Walls       EdgeMode
	Ceiling     EdgeMode
}

// DefaultConfig returns a playable parameter set with the boundary layer
// disabled, matching the base game mode.
func DefaultConfig() Config {
	return Config{
		Gravity:     DefaultGravity,
		MaxVelocity: DefaultMaxVelocity,
		WorldWidth:  DefaultWorldWidth,
		WorldHeight: DefaultWorldHeight,
		Walls:       EdgeModeNone,
		Ceiling:     EdgeModeNone,
	}
}

// WithWind returns a copy of the config with the given wind acceleration.
func (c Config) WithWind(wind float64) Config {
	c.Wind = wind
	return c
}
