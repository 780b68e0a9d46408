package sim

import (
	"context"
	"math"

	"barrage/server/internal/combat"
)

const (
	// minRollSpeed is the slowest a roller moves while still making
	// progress; below it on rising ground the roller is stuck.
	minRollSpeed = 0.5
	maxRollSpeed = 8.0
	// rollGravityEffect scales how strongly slope feeds roll speed.
	rollGravityEffect = 0.3
	// rollLookahead is how far ahead the slope is sampled, in pixels.
	rollLookahead = 3.0
	// valleyThreshold is the uphill rise ahead that counts as a wall of a
	// depression when the roller has stalled.
	valleyThreshold = 0.5
)

// enterRoll converts a terrain impact into surface-following motion. The
// roller keeps the impact's horizontal direction, sheds its vertical speed,
// and starts at half its horizontal impact speed.
func (s *Simulation) enterRoll(p *Projectile) {
	direction := 1.0
	if p.State.VX < 0 {
		direction = -1
	}

	speed := 0.5 * math.Abs(p.State.VX)
	if speed < minRollSpeed {
		speed = minRollSpeed
	}
	if speed > maxRollSpeed {
		speed = maxRollSpeed
	}

	p.Phase = PhaseRolling
	p.roll = rollState{direction: direction, startedAt: s.now()}
	p.State.VX = speed * direction
	p.State.VY = 0
	if s.terrain != nil {
		p.State.Y = s.terrain.HeightAt(p.State.X)
	}
	p.recordTrail()
}

// stepRoll moves a roller one step along the terrain contour. Slope feeds or
// bleeds speed; the roller detonates on its timeout, against a tank, at a
// world edge, or when it stalls against rising ground.
func (s *Simulation) stepRoll(ctx context.Context, p *Projectile, out *StepOutput) {
	if s.now().Sub(p.roll.startedAt) >= p.Weapon.RollTimeout() {
		s.explode(ctx, p, p.State.X, p.State.Y, EndTimeout, nil, out)
		return
	}

	direction := p.roll.direction

	// Positive heightDiff means the ground ahead is lower (y grows down).
	var heightDiff float64
	if s.terrain != nil {
		ahead := s.terrain.HeightAt(p.State.X + rollLookahead*direction)
		heightDiff = ahead - s.terrain.HeightAt(p.State.X)
	}

	slope := math.Atan2(heightDiff, rollLookahead)
	p.State.VX += math.Sin(slope) * rollGravityEffect * direction

	speed := math.Abs(p.State.VX)
	if speed < minRollSpeed && heightDiff < -valleyThreshold {
		// Stalled against rising ground: the roller has settled into a
		// valley floor.
		s.explode(ctx, p, p.State.X, p.State.Y, EndValley, nil, out)
		return
	}
	if speed < minRollSpeed {
		speed = minRollSpeed
	}
	if speed > maxRollSpeed {
		speed = maxRollSpeed
	}
	p.State.VX = speed * direction

	next := p.State.X + p.State.VX
	if next < 0 || next > s.cfg.WorldWidth {
		edge := clampFloat(next, 0, s.cfg.WorldWidth)
		s.explode(ctx, p, edge, p.State.Y, EndWall, nil, out)
		return
	}

	p.State.X = next
	if s.terrain != nil {
		p.State.Y = s.terrain.HeightAt(p.State.X)
	}
	p.recordTrail()

	if hit := combat.TankHit(p.State.X, p.State.Y, s.tanks); hit != nil {
		direct := hit.Tank
		if !hit.DirectHit {
			direct = nil
		}
		s.explode(ctx, p, p.State.X, p.State.Y, EndImpact, direct, out)
	}
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
