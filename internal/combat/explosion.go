package combat

import (
	"math"

	"barrage/server/arsenal/contract"
	"barrage/server/internal/tank"
)

// TerrainDeformer receives the terrain operation an explosion requests.
type TerrainDeformer interface {
	Deform(x, y, radius float64, op contract.TerrainOp)
}

// ExplosionConfig bundles everything needed to resolve one detonation. The
// resolver deforms terrain, mutates tank health, and reports the damage it
// applied; reward attribution stays with the caller.
type ExplosionConfig struct {
	X, Y   float64
	Radius float64
	Damage int

	// Multiplier overrides falloff for the DirectHit tank; zero selects
	// the contract default.
	Multiplier float64
	DirectHit  *tank.Tank

	Op      contract.TerrainOp
	Terrain TerrainDeformer
	Tanks   []*tank.Tank
}

// DamageEvent records one tank's share of an explosion.
type DamageEvent struct {
	Tank      *tank.Tank
	Damage    int
	DirectHit bool
}

// ResolveExplosion applies a detonation: one terrain deformation at the
// epicenter, then linear-falloff damage against every live tank whose hull
// edge is inside the radius. The directly hit tank bypasses falloff and
// takes full weapon damage times the direct-hit multiplier. Self-damage is
// not special-cased; the owner's own tank is just another entry in Tanks.
func ResolveExplosion(cfg ExplosionConfig) []DamageEvent {
	if cfg.Terrain != nil && cfg.Radius > 0 {
		op := cfg.Op
		if op == "" {
			op = contract.TerrainOpCrater
		}
		cfg.Terrain.Deform(cfg.X, cfg.Y, cfg.Radius, op)
	}

	if cfg.Damage <= 0 || len(cfg.Tanks) == 0 {
		return nil
	}

	multiplier := cfg.Multiplier
	if multiplier <= 0 {
		multiplier = contract.DefaultDirectHitMultiplier
	}

	events := make([]DamageEvent, 0, 2)
	for _, target := range cfg.Tanks {
		if target.Destroyed() {
			continue
		}

		if target == cfg.DirectHit {
			damage := int(math.Round(float64(cfg.Damage) * multiplier))
			target.ApplyDamage(damage)
			events = append(events, DamageEvent{Tank: target, Damage: damage, DirectHit: true})
			continue
		}

		if cfg.Radius <= 0 {
			continue
		}
		dist := rectEdgeDistance(cfg.X, cfg.Y, target.Bounds())
		if dist >= cfg.Radius {
			continue
		}
		factor := 1 - dist/cfg.Radius
		damage := int(math.Round(float64(cfg.Damage) * factor))
		if damage < 1 {
			// Inside the radius always costs at least one point.
			damage = 1
		}
		target.ApplyDamage(damage)
		events = append(events, DamageEvent{Tank: target, Damage: damage})
	}
	return events
}
