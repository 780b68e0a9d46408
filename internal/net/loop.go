package net

import (
	"context"
	"encoding/json"
	"time"
)

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes. Every tick advances any in-flight shot and broadcasts the world
// snapshot to all subscribers.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			msg, toClose := h.advance(now)
			for _, sub := range toClose {
				sub.conn.Close()
			}
			h.broadcast(msg)
		}
	}
}

// advance runs one tick: prune dead connections, step the active shot, pay
// out rewards, settle tanks onto deformed ground, and assemble the state
// broadcast.
func (h *Hub) advance(now time.Time) (stateMessage, []*subscriber) {
	h.mu.Lock()

	disconnectAfter := 2 * h.cfg.Heartbeat
	toClose := make([]*subscriber, 0)
	for _, id := range append([]string(nil), h.order...) {
		hb := h.heartbeats[id]
		if hb == nil || now.Sub(hb.last) <= disconnectAfter {
			continue
		}
		h.logger.Printf("disconnecting %s due to heartbeat timeout", id)
		if sub, ok := h.subscribers[id]; ok {
			toClose = append(toClose, sub)
			delete(h.subscribers, id)
		}
		h.removeTankLocked(id)
	}

	roundBefore := h.round
	msg := stateMessage{
		Ver:       ProtocolVersion,
		Type:      "state",
		Round:     h.round,
		Wind:      h.wind,
		Resolving: h.resolving,
	}

	if h.resolving {
		out := h.sim.Step(context.Background())

		for _, record := range out.Damage {
			// Hurting yourself pays nothing.
			if record.Owner != record.TankID {
				if shooter, ok := h.tanks[record.Owner]; ok && !shooter.Destroyed() {
					shooter.AddMoney(record.Damage * rewardPerDamage)
				}
			}
			msg.Damage = append(msg.Damage, damageSnapshot{
				TankID:    record.TankID,
				By:        record.Owner,
				Amount:    record.Damage,
				DirectHit: record.DirectHit,
				Destroyed: record.Destroyed,
			})
		}

		for _, explosion := range out.Explosions {
			msg.Explosions = append(msg.Explosions, explosionSnapshot{
				X:             explosion.X,
				Y:             explosion.Y,
				Radius:        explosion.Radius,
				Weapon:        explosion.Weapon,
				Reason:        explosion.Reason,
				ScreenShake:   explosion.Visual.ScreenShake,
				Flash:         explosion.Visual.Flash,
				MushroomCloud: explosion.Visual.MushroomCloud,
			})
			h.metrics.Add("explosions", 1)
		}

		// Ground under a tank may have been blasted away; let it settle.
		for _, t := range h.tanks {
			if surface := h.terrain.HeightAt(t.X); surface > t.Y {
				t.Y = surface
			}
		}

		for _, p := range h.sim.Projectiles() {
			msg.Projectiles = append(msg.Projectiles, projectileSnapshot{
				ID:     p.ID,
				Owner:  p.Owner,
				Weapon: p.Weapon.ID,
				X:      p.State.X,
				Y:      p.State.Y,
				Phase:  p.Phase.String(),
				Trail:  p.Trail(),
			})
		}

		if out.TurnComplete {
			h.resolving = false
			h.wind = h.rollWind()
			h.sim.SetWind(h.wind)
			h.nextTurnLocked()
		}
	}

	msg.TerrainPatches = h.terrain.DrainPatches()
	if h.round != roundBefore {
		// A new round replaced the terrain wholesale.
		msg.Surface = h.terrain.Snapshot()
		msg.TerrainPatches = nil
	}

	msg.Round = h.round
	msg.Wind = h.wind
	msg.Resolving = h.resolving
	msg.Turn = h.currentTurnLocked()
	msg.Tanks = h.tankSnapshotsLocked()
	msg.ServerTime = now.UnixMilli()

	h.mu.Unlock()
	return msg, toClose
}

// removeTankLocked drops a tank from the lobby without touching its socket.
func (h *Hub) removeTankLocked(id string) {
	if _, ok := h.tanks[id]; !ok {
		return
	}
	delete(h.tanks, id)
	delete(h.heartbeats, id)
	for i, existing := range h.order {
		if existing == id {
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

// broadcast sends the snapshot to every subscriber, disconnecting the ones
// whose sockets fail.
func (h *Hub) broadcast(msg stateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Printf("failed to marshal state message: %v", err)
		return
	}

	h.mu.Lock()
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.write(data); err != nil {
			h.logger.Printf("failed to send update to %s: %v", id, err)
			h.Disconnect(id)
		}
	}
	h.metrics.Add("broadcasts", 1)
	h.metrics.Store("broadcast_bytes", uint64(len(data)))
}
