package sim

import (
	"fmt"

	"barrage/server/arsenal/contract"
	"barrage/server/internal/physics"
)

// Catalog resolves weapon ids to definitions.
type Catalog interface {
	Weapon(id string) (contract.Definition, bool)
}

// FireCommand launches one projectile from a muzzle position.
type FireCommand struct {
	X        float64
	Y        float64
	AngleDeg float64
	Power    float64
	WeaponID string
	Owner    string
}

// Fire spawns a projectile for cmd. Unknown weapon ids fall back to the
// standard shell rather than failing the shot.
func (s *Simulation) Fire(cmd FireCommand) *Projectile {
	def, ok := contract.Definition{}, false
	if s.catalog != nil {
		def, ok = s.catalog.Weapon(cmd.WeaponID)
	}
	if !ok {
		def = contract.Fallback()
	}

	vx, vy := physics.LaunchVelocity(cmd.AngleDeg, cmd.Power, s.cfg)

	s.seq++
	p := &Projectile{
		ID:     fmt.Sprintf("proj-%d", s.seq),
		Owner:  cmd.Owner,
		Weapon: def,
		Phase:  PhaseFlying,
		State:  physics.State{X: cmd.X, Y: cmd.Y, VX: vx, VY: vy},
	}
	p.recordTrail()
	s.projectiles = append(s.projectiles, p)
	return p
}
