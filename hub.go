package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yafetgetachew/battleoftheshapes-sub001/logging"
	"github.com/yafetgetachew/battleoftheshapes-sub001/protocol"
)

// Hub owns the authoritative world and the websocket subscribers mirroring
// it. Within a tick the loop is strictly capture-then-send: the world steps,
// the snapshot bundle is captured under the lock, and the marshaled bytes go
// out afterwards, so no subscriber ever sees a half-updated tick.
type Hub struct {
	mu          sync.Mutex
	world       *World
	subscribers map[string]*subscriber
	seats       [maxSeats + 1]string // index 1..maxSeats to player ID
	queued      []Command
	currentTick uint64

	publisher logging.Publisher
	telemetry *telemetryCounters
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newHub(cfg worldConfig, publisher logging.Publisher) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}
	cfg.Role = RoleHost
	return &Hub{
		world:       newWorld(cfg, publisher),
		subscribers: make(map[string]*subscriber),
		publisher:   publisher,
		telemetry:   newTelemetryCounters(),
	}
}

// Join assigns the lowest free seat and registers a new player. Seats are
// finite and a full arena refuses the join.
func (h *Hub) Join() (protocol.JoinResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	seat := 0
	for i := 1; i <= maxSeats; i++ {
		if h.seats[i] == "" {
			seat = i
			break
		}
	}
	if seat == 0 {
		return protocol.JoinResponse{}, fmt.Errorf("join: %s", protocol.ReasonServerFull)
	}

	playerID := uuid.NewString()
	h.seats[seat] = playerID

	spawnX := wallLeft + (wallRight-wallLeft)*float64(seat)/(maxSeats+1)
	state := newPlayerState(playerID, seat, spawnX, groundY-playerHalfHeight)
	state.lastHeartbeat = time.Now()
	h.world.AddPlayer(state)

	h.publisher.Publish(context.Background(), logging.Event{
		Type:     "network.player_joined",
		Tick:     h.currentTick,
		Actor:    logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
		Payload:  map[string]any{"seat": seat},
	})

	snapshot := h.world.Snapshot(time.Now())
	return protocol.JoinResponse{
		Ver:       protocol.ProtocolVersion,
		ID:        playerID,
		Seat:      seat,
		Players:   snapshot.Players,
		Platforms: snapshot.Platforms,
		Lightning: snapshot.Lightning,
		Seed:      h.world.seed,
	}, nil
}

// Subscribe associates a websocket connection with an existing player.
func (h *Hub) Subscribe(playerID string, conn *websocket.Conn) (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.world.HasPlayer(playerID) {
		return nil, false
	}
	if existing, ok := h.subscribers[playerID]; ok {
		existing.conn.Close()
	}
	sub := &subscriber{conn: conn}
	h.subscribers[playerID] = sub
	if player, ok := h.world.players[playerID]; ok {
		player.lastHeartbeat = time.Now()
	}
	return sub, true
}

// Disconnect removes a player, frees its seat, and closes any connection.
func (h *Hub) Disconnect(playerID string) {
	h.mu.Lock()
	sub, subOK := h.subscribers[playerID]
	delete(h.subscribers, playerID)
	removed := h.world.RemovePlayer(playerID)
	if removed {
		h.freeSeatLocked(playerID)
	}
	tick := h.currentTick
	h.mu.Unlock()

	if subOK {
		sub.conn.Close()
	}
	if removed {
		h.publisher.Publish(context.Background(), logging.Event{
			Type:     "network.player_disconnected",
			Tick:     tick,
			Actor:    logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
			Severity: logging.SeverityInfo,
			Category: logging.CategoryNetwork,
		})
	}
}

func (h *Hub) freeSeatLocked(playerID string) {
	for i := 1; i <= maxSeats; i++ {
		if h.seats[i] == playerID {
			h.seats[i] = ""
			return
		}
	}
}

// QueueCommand stages an intent for processing on the next tick.
func (h *Hub) QueueCommand(cmd Command) {
	h.mu.Lock()
	h.queued = append(h.queued, cmd)
	h.mu.Unlock()
}

// HandleClientMessage translates a decoded client message into a command.
func (h *Hub) HandleClientMessage(playerID string, msg protocol.ClientMessage, receivedAt time.Time) {
	switch msg.Type {
	case protocol.MessagePose:
		h.QueueCommand(Command{
			ActorID: playerID,
			Type:    CommandPose,
			Pose:    &PoseCommand{X: msg.X, Y: msg.Y},
		})
	case protocol.MessageCast:
		h.QueueCommand(Command{
			ActorID: playerID,
			Type:    CommandCast,
			Cast:    &CastCommand{Ability: msg.Ability, TargetID: msg.TargetID},
		})
	case protocol.MessageHeartbeat:
		var rtt time.Duration
		if msg.SentAt > 0 {
			clientTime := time.UnixMilli(msg.SentAt)
			if clientTime.Before(receivedAt.Add(5 * time.Second)) {
				rtt = receivedAt.Sub(clientTime)
				if rtt < 0 {
					rtt = 0
				}
			}
		}
		h.QueueCommand(Command{
			ActorID:   playerID,
			Type:      CommandHeartbeat,
			Heartbeat: &HeartbeatCommand{ReceivedAt: receivedAt, ClientSent: msg.SentAt, RTT: rtt},
		})
		h.sendHeartbeatAck(playerID, protocol.HeartbeatMessage{
			Type:       protocol.MessageHeartbeat,
			ServerTime: receivedAt.UnixMilli(),
			ClientTime: msg.SentAt,
			RTTMillis:  rtt.Milliseconds(),
		})
	}
}

// sendHeartbeatAck echoes the computed timing back on the sender's connection.
func (h *Hub) sendHeartbeatAck(playerID string, ack protocol.HeartbeatMessage) {
	h.mu.Lock()
	sub, ok := h.subscribers[playerID]
	h.mu.Unlock()
	if !ok {
		return
	}

	data, err := json.Marshal(ack)
	if err != nil {
		log.Printf("failed to marshal heartbeat ack for %s: %v", playerID, err)
		return
	}

	sub.mu.Lock()
	sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
	err = sub.conn.WriteMessage(websocket.TextMessage, data)
	sub.mu.Unlock()
	if err != nil {
		log.Printf("failed to send heartbeat ack to %s: %v", playerID, err)
		h.Disconnect(playerID)
	}
}

// advance runs one simulation step and returns the captured snapshot plus
// subscribers that timed out.
func (h *Hub) advance(now time.Time, dt float64) (protocol.StateMessage, []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	commands := h.queued
	h.queued = nil
	h.currentTick++

	h.world.Step(h.currentTick, now, dt, commands)

	cutoff := now.Add(-disconnectAfter)
	stale := make([]string, 0)
	for id, player := range h.world.players {
		if player.lastHeartbeat.IsZero() {
			continue
		}
		if player.lastHeartbeat.Before(cutoff) {
			stale = append(stale, id)
		}
	}

	return h.world.Snapshot(now), stale
}

// RunSimulation drives the fixed-rate tick loop until the context ends.
func (h *Hub) RunSimulation(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(tickRate)
			}
			last = now

			started := time.Now()
			snapshot, stale := h.advance(now, dt)
			h.telemetry.RecordTickDuration(time.Since(started))

			for _, id := range stale {
				log.Printf("disconnecting %s due to heartbeat timeout", id)
				h.Disconnect(id)
			}
			h.broadcastSnapshot(snapshot)
		}
	}
}

// broadcastSnapshot marshals once and fans the bytes out to every subscriber.
func (h *Hub) broadcastSnapshot(snapshot protocol.StateMessage) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}
	h.telemetry.RecordBroadcast(len(data), len(snapshot.Players)+len(snapshot.Lightning.Strikes)+len(snapshot.Lightning.Warnings))

	h.mu.Lock()
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("failed to send update to %s: %v", id, err)
			h.Disconnect(id)
		}
	}
}

// ResetRound clears hazards and projectiles for a fresh round.
func (h *Hub) ResetRound() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.world.ResetRound()
}

// AddObserver registers a combat observer on the hosted world.
func (h *Hub) AddObserver(o CombatObserver) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.world.AddObserver(o)
}

type diagnosticsPlayer struct {
	Ver           int    `json:"ver"`
	ID            string `json:"id"`
	Seat          int    `json:"seat"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rttMillis"`
}

// DiagnosticsSnapshot exposes heartbeat data for the diagnostics endpoint.
func (h *Hub) DiagnosticsSnapshot() []diagnosticsPlayer {
	h.mu.Lock()
	defer h.mu.Unlock()

	players := make([]diagnosticsPlayer, 0, len(h.world.players))
	for _, target := range h.world.roster() {
		state := target.(*playerState)
		players = append(players, diagnosticsPlayer{
			Ver:           protocol.ProtocolVersion,
			ID:            state.ID,
			Seat:          state.Seat,
			LastHeartbeat: state.lastHeartbeat.UnixMilli(),
			RTTMillis:     state.lastRTT.Milliseconds(),
		})
	}
	return players
}
