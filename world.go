package main

import (
	"sort"
	"time"

	"github.com/yafetgetachew/battleoftheshapes-sub001/logging"
	"github.com/yafetgetachew/battleoftheshapes-sub001/protocol"
)

// CommandType enumerates the supported simulation commands.
type CommandType string

const (
	CommandPose      CommandType = "Pose"
	CommandCast      CommandType = "Cast"
	CommandHeartbeat CommandType = "Heartbeat"
)

// Command represents an intent captured for processing on the next tick.
type Command struct {
	ActorID   string
	Type      CommandType
	Pose      *PoseCommand
	Cast      *CastCommand
	Heartbeat *HeartbeatCommand
}

// PoseCommand carries a peer-simulated position update.
type PoseCommand struct {
	X float64
	Y float64
}

// CastCommand requests an ability against an intended target.
type CastCommand struct {
	Ability  string
	TargetID string
}

// HeartbeatCommand updates connectivity metadata for a player.
type HeartbeatCommand struct {
	ReceivedAt time.Time
	ClientSent int64
	RTT        time.Duration
}

const abilityFireball = "fireball"

// World owns the combat simulation state for one match. A host-role world
// advances the hazard and projectile engines and captures snapshots; a
// client-role world mirrors replicated state and only advances the
// deterministic terrain animator and cosmetic projectile visuals.
type World struct {
	role        WorldRole
	players     map[string]*playerState
	lightning   *LightningEngine
	fireballs   *FireballEngine
	terrain     *TerrainAnimator
	observers   *observerList
	config      worldConfig
	seed        string
	publisher   logging.Publisher
	currentTick uint64
}

// newWorld constructs a world with per-subsystem deterministic RNG streams.
func newWorld(cfg worldConfig, publisher logging.Publisher) *World {
	normalized := cfg.normalized()
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}

	w := &World{
		role:      normalized.Role,
		players:   make(map[string]*playerState),
		observers: &observerList{},
		config:    normalized,
		seed:      normalized.Seed,
		publisher: publisher,
	}
	tick := func() uint64 { return w.currentTick }
	w.lightning = newLightningEngine(w.subsystemRNG("lightning"), w.observers, publisher, tick)
	w.fireballs = newFireballEngine(w.subsystemRNG("fireballs"), normalized.Role == RoleHost, w.observers, publisher, tick)
	w.terrain = newTerrainAnimator(defaultPlatformLayout())
	return w
}

// AddObserver registers a fire-and-forget combat observer.
func (w *World) AddObserver(o CombatObserver) {
	w.observers.Add(o)
}

// HasPlayer reports whether the world currently tracks the given player.
func (w *World) HasPlayer(id string) bool {
	_, ok := w.players[id]
	return ok
}

// AddPlayer registers a player state with the world.
func (w *World) AddPlayer(state *playerState) {
	if state == nil {
		return
	}
	w.players[state.ID] = state
}

// RemovePlayer drops a player and reports whether it was present.
func (w *World) RemovePlayer(id string) bool {
	if _, ok := w.players[id]; !ok {
		return false
	}
	delete(w.players, id)
	return true
}

// roster returns the combat targets in a stable order so collision outcomes
// are reproducible for a given player set.
func (w *World) roster() []CombatTarget {
	ids := make([]string, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	targets := make([]CombatTarget, 0, len(ids))
	for _, id := range ids {
		targets = append(targets, w.players[id])
	}
	return targets
}

// Step advances the simulation by a single tick applying all staged commands.
// Engines run in a fixed order so a tick is reproducible: commands, hazard,
// projectiles, terrain, cosmetic timers.
func (w *World) Step(tick uint64, now time.Time, dt float64, commands []Command) {
	if dt <= 0 {
		dt = 1.0 / float64(tickRate)
	}
	w.currentTick = tick

	for _, cmd := range commands {
		switch cmd.Type {
		case CommandPose:
			if cmd.Pose == nil {
				continue
			}
			if player, ok := w.players[cmd.ActorID]; ok {
				player.X = cmd.Pose.X
				player.Y = cmd.Pose.Y
			}
		case CommandCast:
			if cmd.Cast == nil || cmd.Cast.Ability != abilityFireball {
				continue
			}
			if w.role != RoleHost {
				continue
			}
			caster, ok := w.players[cmd.ActorID]
			if !ok {
				continue
			}
			target, ok := w.players[cmd.Cast.TargetID]
			if !ok || target.ID == caster.ID {
				continue
			}
			if caster.cooldowns == nil {
				caster.cooldowns = make(map[string]time.Time)
			}
			if last, ok := caster.cooldowns[abilityFireball]; ok {
				if now.Sub(last) < fireballCooldown {
					continue
				}
			}
			if w.fireballs.SpawnFireball(caster, target) {
				caster.cooldowns[abilityFireball] = now
			}
		case CommandHeartbeat:
			if cmd.Heartbeat == nil {
				continue
			}
			if player, ok := w.players[cmd.ActorID]; ok {
				player.lastHeartbeat = cmd.Heartbeat.ReceivedAt
				player.lastRTT = cmd.Heartbeat.RTT
			}
		}
	}

	targets := w.roster()
	if w.role == RoleHost && w.config.Lightning {
		w.lightning.Update(dt, targets)
	}
	w.fireballs.Update(dt, targets)
	if w.config.Platforms {
		w.terrain.Advance(dt)
	}
	for _, player := range w.players {
		player.decayHitFlash(dt)
	}
}

// Snapshot captures the broadcast bundle for the current tick. The capture
// happens before sending within the same tick, never concurrently with a
// simulation step, so a bundle can never mix two ticks' lists.
func (w *World) Snapshot(now time.Time) protocol.StateMessage {
	players := make([]protocol.Player, 0, len(w.players))
	for _, target := range w.roster() {
		players = append(players, target.(*playerState).snapshot())
	}
	return protocol.StateMessage{
		Ver:        protocol.ProtocolVersion,
		Type:       protocol.MessageState,
		Tick:       w.currentTick,
		ServerTime: now.UnixMilli(),
		Players:    players,
		Platforms:  w.terrain.Platforms(),
		Lightning:  w.lightning.State(),
	}
}

// ResetRound clears every engine for a fresh round: hazards re-armed,
// projectiles and effects dropped, terrain back to base positions.
func (w *World) ResetRound() {
	w.lightning.Reset()
	w.fireballs.Clear()
	w.terrain.Reset()
}
