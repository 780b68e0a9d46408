package sim

import (
	"context"
	"time"

	"barrage/server/arsenal/contract"
	"barrage/server/internal/combat"
	"barrage/server/internal/physics"
	"barrage/server/internal/tank"
	"barrage/server/logging"
	combatlog "barrage/server/logging/combat"
)

// Terrain is the destructible surface the simulation steps against.
type Terrain interface {
	CheckCollision(x, y float64) bool
	HeightAt(x float64) float64
	Deform(x, y, radius float64, op contract.TerrainOp)
}

// Simulation owns the active projectile set and resolves it step by step
// until the turn completes. It is not safe for concurrent use; the game loop
// is the single writer.
type Simulation struct {
	cfg     physics.Config
	catalog Catalog
	terrain Terrain
	tanks   []*tank.Tank

	pub logging.Publisher
	now func() time.Time

	tick        uint64
	seq         uint64
	projectiles []*Projectile
	spawned     []*Projectile
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithPublisher routes combat events to the given publisher.
func WithPublisher(pub logging.Publisher) Option {
	return func(s *Simulation) { s.pub = pub }
}

// WithClock overrides the wall clock, for deterministic roll timeouts in
// tests.
func WithClock(now func() time.Time) Option {
	return func(s *Simulation) { s.now = now }
}

// New builds a simulation over the given world. Terrain and tanks may be
// nil/empty for dry-run trajectory previews.
func New(cfg physics.Config, catalog Catalog, terrain Terrain, tanks []*tank.Tank, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:     cfg,
		catalog: catalog,
		terrain: terrain,
		tanks:   tanks,
		pub:     logging.NopPublisher(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the physics parameters the simulation steps with.
func (s *Simulation) Config() physics.Config {
	return s.cfg
}

// SetWind updates the wind for subsequent steps. Call between turns, not
// while projectiles are in flight.
func (s *Simulation) SetWind(wind float64) {
	s.cfg.Wind = wind
}

// SetTanks replaces the collision/damage target set. The slice order is the
// tie-break order for overlapping hulls, so callers should keep it stable.
func (s *Simulation) SetTanks(tanks []*tank.Tank) {
	s.tanks = tanks
}

// Projectiles returns the live projectile set in spawn order.
func (s *Simulation) Projectiles() []*Projectile {
	out := make([]*Projectile, len(s.projectiles))
	copy(out, s.projectiles)
	return out
}

// ActiveCount reports how many projectiles are still resolving.
func (s *Simulation) ActiveCount() int {
	return len(s.projectiles)
}

// Tick reports how many steps the simulation has resolved.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Reset drops every projectile without resolving it.
func (s *Simulation) Reset() {
	s.projectiles = nil
	s.spawned = nil
}

// ExplosionEvent reports one detonation resolved during a step.
type ExplosionEvent struct {
	ProjectileID string
	Owner        string
	Weapon       string
	X, Y         float64
	Radius       float64
	Reason       string
	Visual       contract.VisualFlags
}

// DamageRecord reports one tank's share of a detonation, with the projectile
// owner attached so the caller can attribute rewards.
type DamageRecord struct {
	Owner     string
	TankID    string
	Damage    int
	DirectHit bool
	Destroyed bool
}

// EndedEvent reports a projectile leaving the active set and why.
type EndedEvent struct {
	ProjectileID string
	Reason       string
}

// StepOutput is everything one step produced.
type StepOutput struct {
	Explosions []ExplosionEvent
	Damage     []DamageRecord
	Ended      []EndedEvent

	// TurnComplete is true on exactly the step where the last active
	// projectile finished.
	TurnComplete bool
}

// Step advances every active projectile once. Children spawned mid-step are
// buffered and join the set afterwards, so a child is never stepped on the
// tick that created it.
func (s *Simulation) Step(ctx context.Context) StepOutput {
	s.tick++

	var out StepOutput
	hadActive := len(s.projectiles) > 0

	for _, p := range s.projectiles {
		if !p.Active() {
			continue
		}
		switch p.Phase {
		case PhaseFlying:
			s.stepFlight(ctx, p, &out)
		case PhaseRolling:
			s.stepRoll(ctx, p, &out)
		case PhaseTunneling:
			s.stepTunnel(ctx, p, &out)
		}
		if !p.Active() {
			out.Ended = append(out.Ended, EndedEvent{ProjectileID: p.ID, Reason: p.EndReason})
		}
	}

	if len(s.spawned) > 0 {
		s.projectiles = append(s.projectiles, s.spawned...)
		s.spawned = nil
	}

	live := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.Active() {
			live = append(live, p)
		}
	}
	s.projectiles = live

	out.TurnComplete = hadActive && len(s.projectiles) == 0
	return out
}

// explode resolves a detonation at (x, y) with the projectile's weapon stats
// and retires the projectile.
func (s *Simulation) explode(ctx context.Context, p *Projectile, x, y float64, reason string, direct *tank.Tank, out *StepOutput) {
	def := p.Weapon

	events := combat.ResolveExplosion(combat.ExplosionConfig{
		X:          x,
		Y:          y,
		Radius:     def.BlastRadius,
		Damage:     def.Damage,
		Multiplier: def.HitMultiplier(),
		DirectHit:  direct,
		Op:         def.Op(),
		Terrain:    s.terrain,
		Tanks:      s.tanks,
	})

	out.Explosions = append(out.Explosions, ExplosionEvent{
		ProjectileID: p.ID,
		Owner:        p.Owner,
		Weapon:       def.ID,
		X:            x,
		Y:            y,
		Radius:       def.BlastRadius,
		Reason:       reason,
		Visual:       def.Visual,
	})
	combatlog.Explosion(ctx, s.pub, s.tick, logging.ProjectileRef(p.ID), combatlog.ExplosionPayload{
		Weapon: def.ID,
		X:      x,
		Y:      y,
		Radius: def.BlastRadius,
		Reason: reason,
	})

	for _, ev := range events {
		destroyed := ev.Tank.Destroyed()
		out.Damage = append(out.Damage, DamageRecord{
			Owner:     p.Owner,
			TankID:    ev.Tank.ID,
			Damage:    ev.Damage,
			DirectHit: ev.DirectHit,
			Destroyed: destroyed,
		})
		combatlog.TankDamaged(ctx, s.pub, s.tick, logging.TankRef(p.Owner), logging.TankRef(ev.Tank.ID), combatlog.TankDamagedPayload{
			Weapon:       def.ID,
			Amount:       ev.Damage,
			TargetHealth: ev.Tank.Health,
			DirectHit:    ev.DirectHit,
		})
		if destroyed {
			combatlog.TankDestroyed(ctx, s.pub, s.tick, logging.TankRef(p.Owner), logging.TankRef(ev.Tank.ID))
		}
	}

	p.deactivate(reason)
}
