package sim

import (
	"context"

	"barrage/server/arsenal/contract"
	"barrage/server/internal/combat"
	"barrage/server/internal/physics"
)

// stepFlight advances one ballistic step and resolves whatever the new
// position ran into. Checks run in a fixed order: boundaries, apex split,
// tank hulls, then terrain — so a split fires even when the apex position
// overlaps a hull, and a hull hit wins over the ground behind it.
func (s *Simulation) stepFlight(ctx context.Context, p *Projectile, out *StepOutput) {
	result := physics.Integrate(&p.State, s.cfg)
	p.recordTrail()

	if resolved, crossed := physics.ResolveBoundary(p.State.X, p.State.Y, p.State.VX, p.State.VY, s.cfg); crossed {
		if resolved.Absorbed {
			p.deactivate(EndAbsorbed)
			return
		}
		p.State.X = resolved.X
		p.State.Y = resolved.Y
		p.State.VX = resolved.VX
		p.State.VY = resolved.VY
	} else if result.OutOfBounds {
		p.deactivate(EndBounds)
		return
	}

	if result.Apex && p.Weapon.Kind == contract.KindSplitting && !p.Child && !p.hasSplit {
		s.split(ctx, p)
		return
	}

	if hit := combat.TankHit(p.State.X, p.State.Y, s.tanks); hit != nil {
		direct := hit.Tank
		if !hit.DirectHit {
			direct = nil
		}
		s.explode(ctx, p, p.State.X, p.State.Y, EndImpact, direct, out)
		return
	}

	if combat.TerrainHit(s.terrainCollider(), p.State.X, p.State.Y) {
		switch p.Weapon.Kind {
		case contract.KindRolling:
			s.enterRoll(p)
		case contract.KindDigging:
			s.enterTunnel(p)
		default:
			s.explode(ctx, p, p.State.X, p.State.Y, EndImpact, nil, out)
		}
	}
}

// terrainCollider adapts the terrain field for the collision helpers; a nil
// interface value stays nil rather than becoming a typed non-nil.
func (s *Simulation) terrainCollider() combat.TerrainCollider {
	if s.terrain == nil {
		return nil
	}
	return s.terrain
}
