package net

import (
	"encoding/json"
	"log"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

type HTTPHandlerConfig struct {
	ClientDir string
	// AllowedOrigins restricts WebSocket upgrades when non-empty. Empty means
	// any origin, which suits same-host deployments serving the client dir.
	AllowedOrigins []string
	Logger         *log.Logger
}

// NewHTTPHandler wires the lobby endpoints and the WebSocket entry point
// onto a mux. The hub must already be running its simulation loop.
func NewHTTPHandler(hub *Hub, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := struct {
			Status     string `json:"status"`
			ServerTime int64  `json:"serverTime"`
			Players    any    `json:"players"`
			TickRate   int    `json:"tickRate"`
			Heartbeat  int64  `json:"heartbeatMillis"`
			Telemetry  any    `json:"telemetry"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
			Players:    hub.DiagnosticsSnapshot(),
			TickRate:   hub.cfg.TickRate,
			Heartbeat:  hub.cfg.Heartbeat.Milliseconds(),
			Telemetry:  hub.TelemetrySnapshot(),
		}

		data, err := json.Marshal(payload)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/join", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		join, ok := hub.Join()
		if !ok {
			httpError(w, "lobby full", nethttp.StatusServiceUnavailable)
			return
		}
		data, err := json.Marshal(join)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/weapons/catalog", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		catalog := hub.WeaponCatalog()
		payload := struct {
			Weapons any `json:"weapons"`
		}{Weapons: catalog}
		if catalog == nil {
			payload.Weapons = []any{}
		}

		data, err := json.Marshal(payload)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			if len(cfg.AllowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range cfg.AllowedOrigins {
				if strings.EqualFold(origin, allowed) {
					return true
				}
			}
			return false
		},
	}

	mux.HandleFunc("/ws", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		playerID := r.URL.Query().Get("id")
		if playerID == "" {
			httpError(w, "missing id", nethttp.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Printf("upgrade failed for %s: %v", playerID, err)
			return
		}

		sub, ok := hub.Subscribe(playerID, conn)
		if !ok {
			message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown player")
			conn.WriteMessage(websocket.CloseMessage, message)
			conn.Close()
			return
		}

		writeJSON := func(payload any) bool {
			data, err := json.Marshal(payload)
			if err != nil {
				logger.Printf("failed to marshal response for %s: %v", playerID, err)
				return true
			}
			if err := sub.write(data); err != nil {
				hub.Disconnect(playerID)
				return false
			}
			return true
		}

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				hub.Disconnect(playerID)
				return
			}

			var msg clientMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				logger.Printf("discarding malformed message from %s: %v", playerID, err)
				continue
			}

			switch msg.Type {
			case "fire":
				projectileID, ok, reason := hub.Fire(playerID, msg.AngleDeg, msg.Power, msg.Weapon)
				if !ok {
					reject := fireRejectMessage{Ver: ProtocolVersion, Type: "fireReject", Reason: reason}
					if !writeJSON(reject) {
						return
					}
					continue
				}
				ack := fireAckMessage{Ver: ProtocolVersion, Type: "fireAck", ProjectileID: projectileID}
				if !writeJSON(ack) {
					return
				}
			case "heartbeat":
				receivedAt := time.Now()
				rtt, ok := hub.UpdateHeartbeat(playerID, receivedAt, msg.SentAt)
				if !ok {
					logger.Printf("heartbeat ignored for unknown player %s", playerID)
					continue
				}
				response := heartbeatMessage{
					Ver:        ProtocolVersion,
					Type:       "heartbeat",
					ServerTime: receivedAt.UnixMilli(),
					ClientTime: msg.SentAt,
					RTTMillis:  rtt.Milliseconds(),
				}
				if !writeJSON(response) {
					return
				}
			default:
				logger.Printf("ignoring unknown message type %q from %s", msg.Type, playerID)
			}
		}
	})

	if cfg.ClientDir != "" {
		mux.Handle("/", nethttp.FileServer(nethttp.Dir(cfg.ClientDir)))
	}

	return mux
}

func httpError(w nethttp.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
