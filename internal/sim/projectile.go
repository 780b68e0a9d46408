package sim

import (
	"time"

	"barrage/server/arsenal/contract"
	"barrage/server/internal/physics"
)

// Phase tracks which movement regime a projectile is in.
type Phase uint8

const (
	PhaseFlying Phase = iota
	PhaseRolling
	PhaseTunneling
	PhaseInactive
)

func (p Phase) String() string {
	switch p {
	case PhaseFlying:
		return "flying"
	case PhaseRolling:
		return "rolling"
	case PhaseTunneling:
		return "tunneling"
	case PhaseInactive:
		return "inactive"
	}
	return "unknown"
}

// End reasons reported when a projectile leaves the active set.
const (
	EndImpact   = "impact"
	EndBounds   = "bounds"
	EndAbsorbed = "absorbed"
	EndTimeout  = "timeout"
	EndWall     = "wall"
	EndValley   = "valley"
	EndSplit    = "split"
)

const trailCap = 12

type rollState struct {
	direction float64
	startedAt time.Time
}

type tunnelState struct {
	dirX      float64
	dirY      float64
	remaining float64
	radius    float64
}

// TrailPoint is one sampled past position, oldest first.
type TrailPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Projectile is a single in-flight warhead. Child projectiles spawned by
// splitting weapons never split again.
type Projectile struct {
	ID     string
	Owner  string
	Weapon contract.Definition
	Child  bool

	Phase Phase
	State physics.State

	// EndReason is set when Phase becomes PhaseInactive.
	EndReason string

	hasSplit bool
	roll     rollState
	tunnel   tunnelState

	trail []TrailPoint
}

// Active reports whether the projectile still participates in stepping.
func (p *Projectile) Active() bool {
	return p.Phase != PhaseInactive
}

func (p *Projectile) recordTrail() {
	p.trail = append(p.trail, TrailPoint{X: p.State.X, Y: p.State.Y})
	if len(p.trail) > trailCap {
		p.trail = p.trail[len(p.trail)-trailCap:]
	}
}

// Trail returns a copy of the recent position history, oldest first.
func (p *Projectile) Trail() []TrailPoint {
	out := make([]TrailPoint, len(p.trail))
	copy(out, p.trail)
	return out
}

func (p *Projectile) deactivate(reason string) {
	p.Phase = PhaseInactive
	p.EndReason = reason
}
