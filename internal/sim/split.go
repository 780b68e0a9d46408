package sim

import (
	"context"
	"fmt"
	"math"

	"barrage/server/internal/physics"
	"barrage/server/logging"
	combatlog "barrage/server/logging/combat"
)

const (
	// minChildSpeed keeps apex children from stalling when the parent
	// arrives at the apex almost vertically.
	minChildSpeed = 5.0
	// minChildDescent forces every child at least slightly downward so the
	// cohort cannot climb back out of the world.
	minChildDescent = 1.0
)

// splitOffsets spreads count directions evenly across a total angle. A
// single child flies straight; three children at 25 degrees come out at
// -12.5, 0 and +12.5 relative to the parent heading.
func splitOffsets(count int, spreadDeg float64) []float64 {
	if count < 1 {
		return nil
	}
	offsets := make([]float64, count)
	if count == 1 {
		return offsets
	}
	step := spreadDeg / float64(count-1)
	for i := range offsets {
		offsets[i] = -spreadDeg/2 + step*float64(i)
	}
	return offsets
}

// split retires the parent at its apex and buffers one child per offset.
// Children inherit a fraction of the parent's speed, never split again, and
// join the active set on the next step.
func (s *Simulation) split(ctx context.Context, p *Projectile) {
	p.hasSplit = true

	count, spreadDeg := p.Weapon.SplitParams()
	heading := p.State.Heading()
	speed := math.Max(minChildSpeed, math.Max(0.8*math.Abs(p.State.VX), 0.8*p.State.Speed()))

	childIDs := make([]string, 0, count)
	for _, offsetDeg := range splitOffsets(count, spreadDeg) {
		angle := heading + offsetDeg*math.Pi/180
		vx := math.Cos(angle) * speed
		vy := math.Sin(angle) * speed
		if vy < minChildDescent {
			vy = minChildDescent
		}

		s.seq++
		child := &Projectile{
			ID:     fmt.Sprintf("proj-%d", s.seq),
			Owner:  p.Owner,
			Weapon: p.Weapon,
			Child:  true,
			Phase:  PhaseFlying,
			State:  physics.State{X: p.State.X, Y: p.State.Y, VX: vx, VY: vy},
		}
		child.recordTrail()
		s.spawned = append(s.spawned, child)
		childIDs = append(childIDs, child.ID)
	}

	combatlog.ProjectileSplit(ctx, s.pub, s.tick, logging.ProjectileRef(p.ID), combatlog.SplitPayload{
		Weapon:   p.Weapon.ID,
		Children: childIDs,
	})

	// The parent disperses rather than detonating; no explosion here.
	p.deactivate(EndSplit)
}
