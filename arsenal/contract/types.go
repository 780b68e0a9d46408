package contract

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind enumerates the closed set of projectile behavior modes. Each kind
// carries its mode-specific parameters in a dedicated spec struct so the
// fields required by a mode are visible in the type rather than implied by
// ad-hoc lookups.
type Kind uint8

const (
	// KindStandard explodes on first terrain or tank contact.
	KindStandard Kind = iota
	// KindSplitting spawns child warheads at the apex of its arc.
	KindSplitting
	// KindRolling follows the terrain contour after impact until it times
	// out, stalls, or reaches a world edge.
	KindRolling
	// KindDigging tunnels through terrain on a straight line until its
	// distance budget runs out.
	KindDigging
	// KindNuclear behaves like KindStandard with larger magnitudes and
	// presentation flags; there is no physics difference.
	KindNuclear
)

var kindNames = map[Kind]string{
	KindStandard:  "standard",
	KindSplitting: "splitting",
	KindRolling:   "rolling",
	KindDigging:   "digging",
	KindNuclear:   "nuclear",
}

var kindValues = map[string]Kind{
	"standard":  KindStandard,
	"splitting": KindSplitting,
	"rolling":   KindRolling,
	"digging":   KindDigging,
	"nuclear":   KindNuclear,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "standard"
}

// MarshalJSON encodes the kind as its designer-facing name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a designer-facing kind name, rejecting unknown values
// so catalog typos surface at load time instead of as silent standard shells.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	value, ok := kindValues[name]
	if !ok {
		return fmt.Errorf("contract: unknown weapon kind %q", name)
	}
	*k = value
	return nil
}

// TerrainOp selects the terrain-side effect an explosion requests.
type TerrainOp string

const (
	// TerrainOpCrater removes ground around the epicenter.
	TerrainOpCrater TerrainOp = "crater"
	// TerrainOpDirt deposits ground instead of removing it.
	TerrainOpDirt TerrainOp = "dirt"
	// TerrainOpTunnel carves a narrow passage; used while digging.
	TerrainOpTunnel TerrainOp = "tunnel"
	// TerrainOpBurn leaves the surface shape untouched (cosmetic scorch).
	TerrainOpBurn TerrainOp = "burn"
)

// SplitSpec configures KindSplitting weapons.
type SplitSpec struct {
	Count    int     `json:"count" jsonschema:"minimum=1,description=Number of child warheads spawned at the apex"`
	AngleDeg float64 `json:"angleDeg" jsonschema:"minimum=0,description=Total angular spread of the children in degrees"`
}

// RollSpec configures KindRolling weapons.
type RollSpec struct {
	TimeoutMillis int64 `json:"timeoutMillis" jsonschema:"minimum=0,description=Maximum rolling time before the warhead detonates"`
}

// TunnelSpec configures KindDigging weapons.
type TunnelSpec struct {
	Distance float64 `json:"distance" jsonschema:"minimum=0,description=Maximum tunnel length in pixels"`
	Radius   float64 `json:"radius" jsonschema:"minimum=0,description=Radius of the carved passage in pixels"`
}

// VisualFlags are forwarded untouched to the presentation layer.
type VisualFlags struct {
	ScreenShake   bool `json:"screenShake,omitempty" jsonschema:"description=Request a camera shake on detonation"`
	Flash         bool `json:"flash,omitempty" jsonschema:"description=Request a full-screen flash on detonation"`
	MushroomCloud bool `json:"mushroomCloud,omitempty" jsonschema:"description=Request the mushroom cloud effect on detonation"`
}

// Defaults applied when a definition omits mode parameters. Each accessor on
// Definition falls back to these instead of failing, per the configuration
// error policy.
const (
	DefaultRollTimeout         = 3000 * time.Millisecond
	DefaultSplitCount          = 3
	DefaultSplitAngleDeg       = 25.0
	DefaultTunnelDistance      = 80.0
	DefaultTunnelRadius        = 10.0
	DefaultDirectHitMultiplier = 1.5
)

// Definition is the immutable stat block for one weapon. Instances are value
// types; the simulation never mutates them after lookup.
type Definition struct {
	ID                  string      `json:"id" jsonschema:"title=Weapon id,pattern=^[a-z0-9-]+$,description=Stable identifier referenced by fire commands and inventories"`
	Name                string      `json:"name" jsonschema:"description=Display name shown in the shop and HUD"`
	Kind                Kind        `json:"kind" jsonschema:"description=Projectile behavior mode"`
	Damage              int         `json:"damage" jsonschema:"minimum=0,description=Maximum damage at the epicenter"`
	BlastRadius         float64     `json:"blastRadius" jsonschema:"minimum=0,description=Explosion radius in pixels"`
	DirectHitMultiplier float64     `json:"directHitMultiplier,omitempty" jsonschema:"minimum=0,description=Damage multiplier applied on a direct hit; 0 selects the default 1.5"`
	Split               *SplitSpec  `json:"split,omitempty" jsonschema:"description=Split parameters; only meaningful for splitting weapons"`
	Roll                *RollSpec   `json:"roll,omitempty" jsonschema:"description=Roll parameters; only meaningful for rolling weapons"`
	Tunnel              *TunnelSpec `json:"tunnel,omitempty" jsonschema:"description=Tunnel parameters; only meaningful for digging weapons"`
	TerrainOp           TerrainOp   `json:"terrainOp,omitempty" jsonschema:"enum=crater,enum=dirt,enum=tunnel,enum=burn,description=Terrain deformation requested on detonation; empty selects crater"`
	Visual              VisualFlags `json:"visual,omitempty" jsonschema:"description=Presentation flags forwarded to clients"`
	Cost                int         `json:"cost,omitempty" jsonschema:"minimum=0,description=Shop price per shot"`
}

// HitMultiplier returns the direct-hit multiplier, falling back to the
// documented default when the definition leaves it unset.
func (d Definition) HitMultiplier() float64 {
	if d.DirectHitMultiplier > 0 {
		return d.DirectHitMultiplier
	}
	return DefaultDirectHitMultiplier
}

// RollTimeout returns the rolling detonation deadline, defaulting when the
// spec block is missing or zero.
func (d Definition) RollTimeout() time.Duration {
	if d.Roll != nil && d.Roll.TimeoutMillis > 0 {
		return time.Duration(d.Roll.TimeoutMillis) * time.Millisecond
	}
	return DefaultRollTimeout
}

// SplitParams returns the child count and spread, defaulting missing fields.
func (d Definition) SplitParams() (count int, angleDeg float64) {
	count = DefaultSplitCount
	angleDeg = DefaultSplitAngleDeg
	if d.Split != nil {
		if d.Split.Count > 0 {
			count = d.Split.Count
		}
		if d.Split.AngleDeg > 0 {
			angleDeg = d.Split.AngleDeg
		}
	}
	return count, angleDeg
}

// TunnelParams returns the dig budget and carve radius, defaulting missing
// fields.
func (d Definition) TunnelParams() (distance, radius float64) {
	distance = DefaultTunnelDistance
	radius = DefaultTunnelRadius
	if d.Tunnel != nil {
		if d.Tunnel.Distance > 0 {
			distance = d.Tunnel.Distance
		}
		if d.Tunnel.Radius > 0 {
			radius = d.Tunnel.Radius
		}
	}
	return distance, radius
}

// Op returns the terrain deformation requested on detonation.
func (d Definition) Op() TerrainOp {
	switch d.TerrainOp {
	case TerrainOpDirt, TerrainOpTunnel, TerrainOpBurn:
		return d.TerrainOp
	default:
		return TerrainOpCrater
	}
}
