package main

import (
	"fmt"

	"github.com/yafetgetachew/battleoftheshapes-sub001/protocol"
)

// StateReplicator is the uniform contract a stateful engine implements to
// participate in host-to-client replication: capture the volatile state on the
// host, overwrite the local mirror on a client.
type StateReplicator interface {
	State() protocol.LightningState
	ApplyState(protocol.LightningState)
}

// ApplySnapshot overwrites a client world's mirror state with a replicated
// bundle. Every list is replaced wholesale; there is no field-by-field merge,
// so the mirror can never mix two different ticks. Unknown players in the
// bundle are added, players missing from it are dropped.
func (w *World) ApplySnapshot(msg protocol.StateMessage) error {
	if msg.Ver != protocol.ProtocolVersion {
		return fmt.Errorf("apply snapshot: protocol version %d, want %d", msg.Ver, protocol.ProtocolVersion)
	}
	if w.role != RoleClient {
		return fmt.Errorf("apply snapshot: world role %q is not a client", w.role)
	}
	if msg.Tick < w.currentTick {
		// Stale bundle from before the last applied tick; the simulation
		// stands at the last applied state.
		return nil
	}
	w.currentTick = msg.Tick

	seen := make(map[string]struct{}, len(msg.Players))
	for _, snap := range msg.Players {
		seen[snap.ID] = struct{}{}
		state, ok := w.players[snap.ID]
		if !ok {
			state = newPlayerState(snap.ID, snap.Seat, snap.X, snap.Y)
			w.players[snap.ID] = state
		}
		state.Player = snap
	}
	for id := range w.players {
		if _, ok := seen[id]; !ok {
			delete(w.players, id)
		}
	}

	w.lightning.ApplyState(msg.Lightning)
	return nil
}

// Lightning exposes the hazard engine, primarily for replication wiring.
func (w *World) Lightning() *LightningEngine { return w.lightning }

// Fireballs exposes the projectile engine for ability input wiring.
func (w *World) Fireballs() *FireballEngine { return w.fireballs }

// Terrain exposes the platform animator for the physics collaborator.
func (w *World) Terrain() *TerrainAnimator { return w.terrain }
