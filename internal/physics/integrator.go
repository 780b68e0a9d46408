package physics

import "math"

// State is the kinematic state of one ballistic body. Y grows downward in
// screen coordinates, so upward motion has negative VY.
type State struct {
	X, Y   float64
	VX, VY float64

	// prevVY is the vertical velocity before the most recent step; apex
	// detection compares it against the updated VY.
	prevVY float64
}

// Edge identifies which world boundary a projectile left through.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeBottom Edge = "bottom"
)

// StepResult reports what one integration step observed.
type StepResult struct {
	// Apex is true on exactly the step where vertical velocity flipped
	// from upward to downward or zero.
	Apex bool
	// OutOfBounds is true when the new position left the world through a
	// side or the bottom. The top edge is intentionally open: projectiles
	// may arc above the screen and fall back in.
	OutOfBounds bool
	Edge        Edge
}

// LaunchVelocity converts a fire command's angle and power into an initial
// velocity. Angle is measured in degrees counter-clockwise from +X with 90
// pointing up; power is clamped to [0, 100] and scales MaxVelocity linearly.
func LaunchVelocity(angleDeg, power float64, cfg Config) (vx, vy float64) {
	if power < 0 {
		power = 0
	}
	if power > 100 {
		power = 100
	}
	speed := power / 100 * cfg.MaxVelocity
	radians := angleDeg * math.Pi / 180
	return math.Cos(radians) * speed, -math.Sin(radians) * speed
}

// Integrate advances the state by one step using semi-implicit Euler:
// velocity first (wind then gravity), then position from the new velocity.
func Integrate(s *State, cfg Config) StepResult {
	if s == nil {
		return StepResult{}
	}

	s.prevVY = s.VY
	s.VX += cfg.Wind
	s.VY += cfg.Gravity
	s.X += s.VX
	s.Y += s.VY

	result := StepResult{
		Apex: s.prevVY < 0 && s.VY >= 0,
	}

	switch {
	case s.X < 0:
		result.OutOfBounds = true
		result.Edge = EdgeLeft
	case s.X > cfg.WorldWidth:
		result.OutOfBounds = true
		result.Edge = EdgeRight
	case s.Y > cfg.WorldHeight:
		result.OutOfBounds = true
		result.Edge = EdgeBottom
	}
	return result
}

// Speed returns the current velocity magnitude.
func (s *State) Speed() float64 {
	return math.Hypot(s.VX, s.VY)
}

// Heading returns the travel direction in radians, atan2 convention.
func (s *State) Heading() float64 {
	return math.Atan2(s.VY, s.VX)
}
