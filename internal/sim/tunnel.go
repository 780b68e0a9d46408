package sim

import (
	"context"
	"math"

	"barrage/server/arsenal/contract"
	"barrage/server/internal/combat"
)

// tunnelMinSpeed keeps a near-stalled impact digging at a usable pace.
const tunnelMinSpeed = 3.0

// enterTunnel locks the digger onto its impact direction. The carve line is
// straight: gravity and wind stop applying underground.
func (s *Simulation) enterTunnel(p *Projectile) {
	distance, radius := p.Weapon.TunnelParams()

	speed := p.State.Speed()
	if speed < tunnelMinSpeed {
		speed = tunnelMinSpeed
	}

	heading := p.State.Heading()
	dirX := math.Cos(heading)
	dirY := math.Sin(heading)

	p.Phase = PhaseTunneling
	p.tunnel = tunnelState{dirX: dirX, dirY: dirY, remaining: distance, radius: radius}
	p.State.VX = dirX * speed
	p.State.VY = dirY * speed
	p.recordTrail()
}

// stepTunnel advances the digger along its line, carving as it goes. It
// detonates on a tank, on breaking back out of the ground, or when the
// distance budget runs out, and fizzles at a world edge.
func (s *Simulation) stepTunnel(ctx context.Context, p *Projectile, out *StepOutput) {
	speed := p.State.Speed()
	step := math.Min(speed, p.tunnel.remaining)

	p.State.X += p.tunnel.dirX * step
	p.State.Y += p.tunnel.dirY * step
	p.tunnel.remaining -= step
	p.recordTrail()

	// Sample the ground before carving, so the passage the digger opens
	// behind itself does not read as breaking out.
	exited := !combat.TerrainHit(s.terrainCollider(), p.State.X, p.State.Y)

	if s.terrain != nil && p.tunnel.radius > 0 {
		s.terrain.Deform(p.State.X, p.State.Y, p.tunnel.radius, contract.TerrainOpTunnel)
	}

	if p.State.X < 0 || p.State.X > s.cfg.WorldWidth || p.State.Y > s.cfg.WorldHeight {
		p.deactivate(EndBounds)
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

	if exited {
		// Broke out of the far side.
		s.explode(ctx, p, p.State.X, p.State.Y, EndImpact, nil, out)
		return
	}

	if p.tunnel.remaining <= 0 {
		s.explode(ctx, p, p.State.X, p.State.Y, EndImpact, nil, out)
	}
}
