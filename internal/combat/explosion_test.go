package combat

import (
	"math"
	"testing"

	"barrage/server/arsenal/contract"
	"barrage/server/internal/tank"
)

type recordingTerrain struct {
	calls []deformCall
}

type deformCall struct {
	x, y, radius float64
	op           contract.TerrainOp
}

func (r *recordingTerrain) Deform(x, y, radius float64, op contract.TerrainOp) {
	r.calls = append(r.calls, deformCall{x, y, radius, op})
}

// tankWithEdgeAt places a tank so the nearest hull edge sits exactly dist
// pixels right of the epicenter.
func tankWithEdgeAt(id string, epicenterX, epicenterY, dist float64) *tank.Tank {
	tk := tank.New(id, 0, 0)
	tk.X = epicenterX + dist + tk.Width/2
	tk.Y = epicenterY + tk.Height/2
	return tk
}

func TestExplosionAlwaysDeformsTerrain(t *testing.T) {
	terrain := &recordingTerrain{}
	ResolveExplosion(ExplosionConfig{X: 50, Y: 60, Radius: 30, Damage: 0, Terrain: terrain})

	if len(terrain.calls) != 1 {
		t.Fatalf("expected exactly one deformation, got %d", len(terrain.calls))
	}
	call := terrain.calls[0]
	if call.x != 50 || call.y != 60 || call.radius != 30 {
		t.Fatalf("unexpected deformation geometry %+v", call)
	}
	if call.op != contract.TerrainOpCrater {
		t.Fatalf("expected crater by default, got %q", call.op)
	}
}

func TestExplosionForwardsWeaponTerrainOp(t *testing.T) {
	terrain := &recordingTerrain{}
	ResolveExplosion(ExplosionConfig{X: 0, Y: 0, Radius: 10, Op: contract.TerrainOpDirt, Terrain: terrain})
	if terrain.calls[0].op != contract.TerrainOpDirt {
		t.Fatalf("expected dirt op forwarded, got %q", terrain.calls[0].op)
	}
}

func TestLinearFalloffBoundaries(t *testing.T) {
	const weaponDamage = 100
	const radius = 40.0

	// Hull overlapping the epicenter takes the full factor.
	atEpicenter := tank.New("zero", 0, 10)
	events := ResolveExplosion(ExplosionConfig{X: 0, Y: 0, Radius: radius, Damage: weaponDamage, Tanks: []*tank.Tank{atEpicenter}})
	if len(events) != 1 || events[0].Damage != weaponDamage {
		t.Fatalf("expected full damage at distance 0, got %+v", events)
	}

	// Hull edge 20px away takes half: round(100 * (1 - 20/40)) = 50.
	half := tankWithEdgeAt("half", 0, 0, 20)
	events = ResolveExplosion(ExplosionConfig{X: 0, Y: 0, Radius: radius, Damage: weaponDamage, Tanks: []*tank.Tank{half}})
	if len(events) != 1 || events[0].Damage != 50 {
		t.Fatalf("expected 50 damage at half radius, got %+v", events)
	}
	if half.Health != tank.DefaultMaxHealth-50 {
		t.Fatalf("expected damage applied to health, got %d", half.Health)
	}

	// Hull edge at the radius takes nothing and produces no event.
	outside := tankWithEdgeAt("outside", 0, 0, radius)
	events = ResolveExplosion(ExplosionConfig{X: 0, Y: 0, Radius: radius, Damage: weaponDamage, Tanks: []*tank.Tank{outside}})
	if len(events) != 0 {
		t.Fatalf("expected no event at the radius boundary, got %+v", events)
	}
	if outside.Health != tank.DefaultMaxHealth {
		t.Fatalf("expected no damage at the radius boundary, got %d", outside.Health)
	}
}

func TestFalloffIsNonIncreasing(t *testing.T) {
	previous := math.MaxInt
	for dist := 0.0; dist < 40; dist += 2.5 {
		target := tankWithEdgeAt("probe", 0, 0, dist)
		events := ResolveExplosion(ExplosionConfig{X: 0, Y: 0, Radius: 40, Damage: 80, Tanks: []*tank.Tank{target}})
		if len(events) != 1 {
			t.Fatalf("distance %v: expected one event", dist)
		}
		if events[0].Damage > previous {
			t.Fatalf("distance %v: damage increased from %d to %d", dist, previous, events[0].Damage)
		}
		previous = events[0].Damage
	}
}

func TestMinimumOnePointInsideRadius(t *testing.T) {
	// Edge just inside the radius: factor is tiny but non-zero.
	target := tankWithEdgeAt("grazed", 0, 0, 39.9)
	events := ResolveExplosion(ExplosionConfig{X: 0, Y: 0, Radius: 40, Damage: 10, Tanks: []*tank.Tank{target}})
	if len(events) != 1 || events[0].Damage != 1 {
		t.Fatalf("expected the one-point minimum, got %+v", events)
	}
}

func TestDirectHitBypassesFalloff(t *testing.T) {
	target := tankWithEdgeAt("direct", 0, 0, 30)
	events := ResolveExplosion(ExplosionConfig{
		X: 0, Y: 0, Radius: 40, Damage: 100,
		DirectHit: target,
		Tanks:     []*tank.Tank{target},
	})
	if len(events) != 1 {
		t.Fatalf("expected one event, got %+v", events)
	}
	if !events[0].DirectHit {
		t.Fatalf("expected the event flagged as a direct hit")
	}
	if events[0].Damage != 150 {
		t.Fatalf("expected round(100*1.5)=150, got %d", events[0].Damage)
	}
}

func TestDirectHitHonorsWeaponMultiplier(t *testing.T) {
	target := tank.New("direct", 0, 10)
	events := ResolveExplosion(ExplosionConfig{
		X: 0, Y: 0, Radius: 40, Damage: 60,
		Multiplier: 2.0,
		DirectHit:  target,
		Tanks:      []*tank.Tank{target},
	})
	if len(events) != 1 || events[0].Damage != 120 {
		t.Fatalf("expected round(60*2)=120, got %+v", events)
	}
}

func TestSelfDamageUsesSameRules(t *testing.T) {
	shooter := tank.New("self", 0, 10)
	events := ResolveExplosion(ExplosionConfig{X: 0, Y: 0, Radius: 40, Damage: 50, Tanks: []*tank.Tank{shooter}})
	if len(events) != 1 || events[0].Tank != shooter {
		t.Fatalf("expected the shooter's own tank to take splash, got %+v", events)
	}
}

func TestExplosionToleratesMissingCollaborators(t *testing.T) {
	events := ResolveExplosion(ExplosionConfig{X: 0, Y: 0, Radius: 40, Damage: 50})
	if len(events) != 0 {
		t.Fatalf("expected no events without tanks, got %+v", events)
	}
	events = ResolveExplosion(ExplosionConfig{X: 0, Y: 0, Radius: 0, Damage: 50, Tanks: []*tank.Tank{tank.New("far", 500, 500)}})
	if len(events) != 0 {
		t.Fatalf("expected no events with zero radius, got %+v", events)
	}
}
