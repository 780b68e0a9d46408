package net

import (
	"barrage/server/internal/sim"
	"barrage/server/internal/terrain"
)

const ProtocolVersion = 1

type clientMessage struct {
	Ver      int     `json:"ver,omitempty"`
	Type     string  `json:"type"`
	AngleDeg float64 `json:"angleDeg"`
	Power    float64 `json:"power"`
	Weapon   string  `json:"weapon"`
	SentAt   int64   `json:"sentAt"`
}

type fireAckMessage struct {
	Ver          int    `json:"ver"`
	Type         string `json:"type"`
	ProjectileID string `json:"projectileId"`
}

type fireRejectMessage struct {
	Ver    int    `json:"ver"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type heartbeatMessage struct {
	Ver        int    `json:"ver"`
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}

// Fire rejection reasons sent back to clients.
const (
	RejectUnknownPlayer = "unknown_player"
	RejectNotYourTurn   = "not_your_turn"
	RejectResolving     = "turn_resolving"
	RejectDestroyed     = "tank_destroyed"
)

type tankSnapshot struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
	Money     int     `json:"money"`
}

type projectileSnapshot struct {
	ID     string           `json:"id"`
	Owner  string           `json:"owner"`
	Weapon string           `json:"weapon"`
	X      float64          `json:"x"`
	Y      float64          `json:"y"`
	Phase  string           `json:"phase"`
	Trail  []sim.TrailPoint `json:"trail,omitempty"`
}

type explosionSnapshot struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Radius        float64 `json:"radius"`
	Weapon        string  `json:"weapon"`
	Reason        string  `json:"reason"`
	ScreenShake   bool    `json:"screenShake,omitempty"`
	Flash         bool    `json:"flash,omitempty"`
	MushroomCloud bool    `json:"mushroomCloud,omitempty"`
}

type damageSnapshot struct {
	TankID    string `json:"tankId"`
	By        string `json:"by"`
	Amount    int    `json:"amount"`
	DirectHit bool   `json:"directHit,omitempty"`
	Destroyed bool   `json:"destroyed,omitempty"`
}

type stateMessage struct {
	Ver            int                   `json:"ver"`
	Type           string                `json:"type"`
	Round          int                   `json:"round"`
	Turn           string                `json:"turn"`
	Resolving      bool                  `json:"resolving"`
	Wind           float64               `json:"wind"`
	Tanks          []tankSnapshot        `json:"tanks"`
	Projectiles    []projectileSnapshot  `json:"projectiles,omitempty"`
	Explosions     []explosionSnapshot   `json:"explosions,omitempty"`
	Damage         []damageSnapshot      `json:"damage,omitempty"`
	TerrainPatches []terrain.ColumnPatch `json:"terrainPatches,omitempty"`
	// Surface carries the full profile only on round restarts; incremental
	// changes ride on TerrainPatches.
	Surface    []float64 `json:"surface,omitempty"`
	ServerTime int64     `json:"serverTime"`
}

type joinResponse struct {
	Ver     int            `json:"ver"`
	ID      string         `json:"id"`
	Round   int            `json:"round"`
	Turn    string         `json:"turn"`
	Wind    float64        `json:"wind"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Surface []float64      `json:"surface"`
	Tanks   []tankSnapshot `json:"tanks"`
	Weapons []string       `json:"weapons"`
}

type diagnosticsPlayer struct {
	ID            string `json:"id"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rtt"`
}
