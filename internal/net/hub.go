package net

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"barrage/server/arsenal/contract"
	"barrage/server/internal/physics"
	"barrage/server/internal/sim"
	"barrage/server/internal/tank"
	"barrage/server/internal/telemetry"
	"barrage/server/internal/terrain"
	"barrage/server/logging"
	combatlog "barrage/server/logging/combat"
)

// rewardPerDamage is the cash credited to the shooter per point of damage
// dealt to someone else's tank.
const rewardPerDamage = 10

const startingMoney = 1000

const writeWait = 5 * time.Second

// Arsenal is the weapon lookup the hub shares with the simulation plus the
// listing used in join payloads.
type Arsenal interface {
	sim.Catalog
	IDs() []string
}

// HubConfig carries the tunables the hub needs from the configuration tree.
type HubConfig struct {
	Physics     physics.Config
	TickRate    int
	Heartbeat   time.Duration
	MaxPlayers  int
	MaxWind     float64
	TerrainSeed int64
}

// Hub owns the lobby: tanks, live socket subscribers, the destructible
// terrain, and the turn state machine. One shot resolves at a time; fire
// commands outside the shooter's turn are rejected at the door.
type Hub struct {
	mu sync.Mutex

	cfg     HubConfig
	terrain *terrain.Terrain
	arsenal Arsenal
	sim     *sim.Simulation

	tanks map[string]*tank.Tank
	order []string

	round     int
	turnIdx   int
	resolving bool
	wind      float64
	rng       *rand.Rand

	subscribers map[string]*subscriber
	heartbeats  map[string]*heartbeatState
	nextID      atomic.Uint64

	pub     logging.Publisher
	metrics telemetry.Metrics
	logger  telemetry.Logger
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

type heartbeatState struct {
	last time.Time
	rtt  time.Duration
}

// NewHub builds a hub with freshly generated terrain and an empty lobby.
func NewHub(cfg HubConfig, arsenal Arsenal, pub logging.Publisher, metrics telemetry.Metrics, logger telemetry.Logger) *Hub {
	if cfg.TickRate < 1 {
		cfg.TickRate = 30
	}
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = 20 * time.Second
	}
	if cfg.MaxPlayers < 1 {
		cfg.MaxPlayers = 8
	}
	if pub == nil {
		pub = logging.NopPublisher()
	}
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	if logger == nil {
		logger = telemetry.NopLogger()
	}

	seed := cfg.TerrainSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ground := terrain.Generate(int(cfg.Physics.WorldWidth), int(cfg.Physics.WorldHeight), seed)

	h := &Hub{
		cfg:         cfg,
		terrain:     ground,
		arsenal:     arsenal,
		tanks:       make(map[string]*tank.Tank),
		round:       1,
		rng:         rand.New(rand.NewSource(seed)),
		subscribers: make(map[string]*subscriber),
		heartbeats:  make(map[string]*heartbeatState),
		pub:         pub,
		metrics:     metrics,
		logger:      logger,
	}
	h.wind = h.rollWind()
	h.sim = sim.New(cfg.Physics.WithWind(h.wind), arsenal, ground, nil, sim.WithPublisher(pub))
	return h
}

func (h *Hub) rollWind() float64 {
	if h.cfg.MaxWind <= 0 {
		return 0
	}
	return (h.rng.Float64()*2 - 1) * h.cfg.MaxWind
}

// Join registers a new tank on the terrain surface and returns the snapshot
// the client needs to render the match.
func (h *Hub) Join() (joinResponse, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.order) >= h.cfg.MaxPlayers {
		return joinResponse{}, false
	}

	id := fmt.Sprintf("tank-%d", h.nextID.Add(1))

	slot := len(h.order)
	spacing := h.cfg.Physics.WorldWidth / float64(h.cfg.MaxPlayers+1)
	x := spacing * float64(slot+1)

	t := &tank.Tank{
		ID:        id,
		X:         x,
		Y:         h.terrain.HeightAt(x),
		Width:     tank.DefaultWidth,
		Height:    tank.DefaultHeight,
		Health:    tank.DefaultMaxHealth,
		MaxHealth: tank.DefaultMaxHealth,
		Money:     startingMoney,
	}
	h.tanks[id] = t
	h.order = append(h.order, id)
	h.heartbeats[id] = &heartbeatState{last: time.Now()}
	h.sim.SetTanks(h.tankListLocked())

	h.metrics.Add("players_joined", 1)

	return joinResponse{
		Ver:     ProtocolVersion,
		ID:      id,
		Round:   h.round,
		Turn:    h.currentTurnLocked(),
		Wind:    h.wind,
		Width:   h.terrain.Width(),
		Height:  h.terrain.Height(),
		Surface: h.terrain.Snapshot(),
		Tanks:   h.tankSnapshotsLocked(),
		Weapons: h.arsenal.IDs(),
	}, true
}

// Subscribe associates a socket with an existing tank, replacing any stale
// connection for the same id.
func (h *Hub) Subscribe(playerID string, conn *websocket.Conn) (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.tanks[playerID]; !ok {
		return nil, false
	}
	if hb, ok := h.heartbeats[playerID]; ok {
		hb.last = time.Now()
	}
	if existing, ok := h.subscribers[playerID]; ok {
		existing.conn.Close()
	}
	sub := &subscriber{conn: conn}
	h.subscribers[playerID] = sub
	return sub, true
}

// Disconnect removes a tank from the lobby and closes its socket. A
// mid-resolution disconnect leaves the in-flight shot running; the owner
// simply is not there to collect the reward.
func (h *Hub) Disconnect(playerID string) bool {
	h.mu.Lock()
	sub, subOK := h.subscribers[playerID]
	if subOK {
		delete(h.subscribers, playerID)
	}
	_, playerOK := h.tanks[playerID]
	if playerOK {
		delete(h.tanks, playerID)
		delete(h.heartbeats, playerID)
		for i, id := range h.order {
			if id == playerID {
				h.order = append(h.order[:i], h.order[i+1:]...)
				if h.turnIdx > i {
					h.turnIdx--
				}
				break
			}
		}
		if len(h.order) > 0 {
			h.turnIdx = h.turnIdx % len(h.order)
		} else {
			h.turnIdx = 0
		}
		h.sim.SetTanks(h.tankListLocked())
	}
	h.mu.Unlock()

	if subOK {
		sub.conn.Close()
	}
	return playerOK
}

// Fire validates and launches a shot for the given player. It is rejected
// unless it is that player's turn and no shot is currently resolving.
func (h *Hub) Fire(playerID string, angleDeg, power float64, weaponID string) (string, bool, string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	shooter, ok := h.tanks[playerID]
	if !ok {
		return "", false, RejectUnknownPlayer
	}
	if shooter.Destroyed() {
		return "", false, RejectDestroyed
	}
	if h.resolving {
		return "", false, RejectResolving
	}
	if h.currentTurnLocked() != playerID {
		return "", false, RejectNotYourTurn
	}

	// Launch from just above the hull so the shot cannot collide with the
	// shooter on its first step.
	p := h.sim.Fire(sim.FireCommand{
		X:        shooter.X,
		Y:        shooter.Y - shooter.Height - 2,
		AngleDeg: angleDeg,
		Power:    power,
		WeaponID: weaponID,
		Owner:    playerID,
	})
	h.resolving = true

	combatlog.WeaponFired(context.Background(), h.pub, h.sim.Tick(), logging.TankRef(playerID), combatlog.WeaponFiredPayload{
		Weapon:   p.Weapon.ID,
		AngleDeg: angleDeg,
		Power:    power,
		Wind:     h.wind,
	})
	h.metrics.Add("shots_fired", 1)

	return p.ID, true, ""
}

// UpdateHeartbeat records a heartbeat and returns the round-trip estimate.
func (h *Hub) UpdateHeartbeat(playerID string, receivedAt time.Time, clientSent int64) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	hb, ok := h.heartbeats[playerID]
	if !ok {
		return 0, false
	}
	hb.last = receivedAt
	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			hb.rtt = rtt
		}
	}
	return hb.rtt, true
}

// CurrentTurn reports whose turn it is.
func (h *Hub) CurrentTurn() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.currentTurnLocked()
}

// Resolving reports whether a shot is currently in flight.
func (h *Hub) Resolving() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resolving
}

// DiagnosticsSnapshot exposes heartbeat data for the diagnostics endpoint.
func (h *Hub) DiagnosticsSnapshot() []diagnosticsPlayer {
	h.mu.Lock()
	defer h.mu.Unlock()

	players := make([]diagnosticsPlayer, 0, len(h.order))
	for _, id := range h.order {
		hb := h.heartbeats[id]
		if hb == nil {
			continue
		}
		players = append(players, diagnosticsPlayer{
			ID:            id,
			LastHeartbeat: hb.last.UnixMilli(),
			RTTMillis:     hb.rtt.Milliseconds(),
		})
	}
	return players
}

// TelemetrySnapshot exposes the counter store for the diagnostics endpoint.
func (h *Hub) TelemetrySnapshot() map[string]uint64 {
	return h.metrics.Snapshot()
}

// WeaponCatalog lists the purchasable weapons.
func (h *Hub) WeaponCatalog() []contract.Definition {
	type lister interface {
		Definitions() []contract.Definition
	}
	if l, ok := h.arsenal.(lister); ok {
		return l.Definitions()
	}
	return nil
}

func (h *Hub) currentTurnLocked() string {
	if len(h.order) == 0 {
		return ""
	}
	return h.order[h.turnIdx%len(h.order)]
}

// nextTurnLocked advances to the next live tank. When fewer than two tanks
// survive a multiplayer round, a fresh round starts instead.
func (h *Hub) nextTurnLocked() {
	if len(h.order) == 0 {
		return
	}

	alive := 0
	for _, id := range h.order {
		if !h.tanks[id].Destroyed() {
			alive++
		}
	}
	if alive <= 1 && len(h.order) >= 2 {
		h.startRoundLocked()
		return
	}
	if alive == 0 {
		return
	}

	for i := 0; i < len(h.order); i++ {
		h.turnIdx = (h.turnIdx + 1) % len(h.order)
		if !h.tanks[h.currentTurnLocked()].Destroyed() {
			return
		}
	}
}

// startRoundLocked regenerates the battlefield and revives every tank.
func (h *Hub) startRoundLocked() {
	h.round++
	seed := h.cfg.TerrainSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += int64(h.round)
	}
	h.terrain = terrain.Generate(int(h.cfg.Physics.WorldWidth), int(h.cfg.Physics.WorldHeight), seed)

	spacing := h.cfg.Physics.WorldWidth / float64(h.cfg.MaxPlayers+1)
	for i, id := range h.order {
		t := h.tanks[id]
		t.Health = t.MaxHealth
		t.X = spacing * float64(i+1)
		t.Y = h.terrain.HeightAt(t.X)
	}

	h.turnIdx = h.rng.Intn(len(h.order))
	h.wind = h.rollWind()

	h.sim = sim.New(h.cfg.Physics.WithWind(h.wind), h.arsenal, h.terrain, h.tankListLocked(), sim.WithPublisher(h.pub))
	h.resolving = false

	h.pub.Publish(context.Background(), logging.Event{
		Type:     "simulation.round_started",
		Actor:    logging.WorldRef(),
		Severity: logging.SeverityInfo,
		Category: logging.CategorySimulation,
		Payload:  map[string]any{"round": h.round, "wind": h.wind},
	})
}

func (h *Hub) tankListLocked() []*tank.Tank {
	list := make([]*tank.Tank, 0, len(h.order))
	for _, id := range h.order {
		list = append(list, h.tanks[id])
	}
	return list
}

func (h *Hub) tankSnapshotsLocked() []tankSnapshot {
	snapshots := make([]tankSnapshot, 0, len(h.order))
	for _, id := range h.order {
		t := h.tanks[id]
		snapshots = append(snapshots, tankSnapshot{
			ID:        t.ID,
			X:         t.X,
			Y:         t.Y,
			Health:    t.Health,
			MaxHealth: t.MaxHealth,
			Money:     t.Money,
		})
	}
	return snapshots
}
