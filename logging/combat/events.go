package combat

import (
	"context"

	"barrage/server/logging"
)

const (
	// EventWeaponFired is emitted when a tank launches a projectile.
	EventWeaponFired logging.EventType = "combat.weapon_fired"
	// EventProjectileSplit is emitted when a warhead splits at its apex.
	EventProjectileSplit logging.EventType = "combat.projectile_split"
	// EventExplosion is emitted for every detonation.
	EventExplosion logging.EventType = "combat.explosion"
	// EventTankDamaged is emitted per tank per explosion.
	EventTankDamaged logging.EventType = "combat.tank_damaged"
	// EventTankDestroyed is emitted when damage eliminates a tank.
	EventTankDestroyed logging.EventType = "combat.tank_destroyed"
)

// WeaponFiredPayload records the fire command parameters.
type WeaponFiredPayload struct {
	Weapon   string  `json:"weapon"`
	AngleDeg float64 `json:"angleDeg"`
	Power    float64 `json:"power"`
	Wind     float64 `json:"wind"`
}

// SplitPayload records an apex split.
type SplitPayload struct {
	Weapon   string   `json:"weapon"`
	Children []string `json:"children"`
}

// ExplosionPayload records a detonation's geometry and cause.
type ExplosionPayload struct {
	Weapon string  `json:"weapon"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Reason string  `json:"reason"`
}

// TankDamagedPayload records one tank's share of an explosion.
type TankDamagedPayload struct {
	Weapon       string `json:"weapon"`
	Amount       int    `json:"amount"`
	TargetHealth int    `json:"targetHealth"`
	DirectHit    bool   `json:"directHit,omitempty"`
}

// WeaponFired publishes a fire event for the acting tank.
func WeaponFired(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload WeaponFiredPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventWeaponFired,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// ProjectileSplit publishes an apex split event.
func ProjectileSplit(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SplitPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventProjectileSplit,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// Explosion publishes a detonation event.
func Explosion(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ExplosionPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventExplosion,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// TankDamaged publishes a damage event against a single tank.
func TankDamaged(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload TankDamagedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTankDamaged,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// TankDestroyed publishes an elimination event.
func TankDestroyed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTankDestroyed,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
	})
}
