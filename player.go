package main

import (
	"time"

	"github.com/yafetgetachew/battleoftheshapes-sub001/protocol"
)

// playerState wraps the broadcast-facing protocol.Player with bookkeeping the
// hub needs: heartbeats, RTT, and per-ability cooldowns. Locomotion lives in
// the external player subsystem; the hub only overwrites the pose it reports.
type playerState struct {
	protocol.Player
	lastHeartbeat time.Time
	lastRTT       time.Duration
	cooldowns     map[string]time.Time
}

func newPlayerState(id string, seat int, x, y float64) *playerState {
	return &playerState{
		Player: protocol.Player{
			ID:    id,
			Seat:  seat,
			X:     x,
			Y:     y,
			Life:  playerMaxLife,
			Will:  playerMaxWill,
			Armor: 0,
		},
		cooldowns: make(map[string]time.Time),
	}
}

func (s *playerState) snapshot() protocol.Player {
	return s.Player
}

// CombatTarget implementation.

func (s *playerState) TargetID() string { return s.ID }

func (s *playerState) Position() (float64, float64) { return s.X, s.Y }

func (s *playerState) HalfExtents() (float64, float64) {
	return playerHalfWidth, playerHalfHeight
}

func (s *playerState) Life() float64 { return s.Player.Life }

func (s *playerState) Will() float64 { return s.Player.Will }

func (s *playerState) Armor() float64 { return s.Player.Armor }

// Invulnerability is not granted by any current game mode; round intros set it
// through the external player subsystem when needed.
func (s *playerState) Invulnerable() bool { return false }

func (s *playerState) SetLife(life float64) {
	if life < 0 {
		life = 0
	}
	s.Player.Life = life
}

func (s *playerState) SetArmor(armor float64) {
	if armor < 0 {
		armor = 0
	}
	s.Player.Armor = armor
}

func (s *playerState) SpendWill(amount float64) bool {
	if amount < 0 || s.Player.Will < amount {
		return false
	}
	s.Player.Will -= amount
	return true
}

func (s *playerState) SetHitFlash(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	s.Player.HitFlash = seconds
}

// decayHitFlash burns down the cosmetic flash timer each tick.
func (s *playerState) decayHitFlash(dt float64) {
	if s.Player.HitFlash <= 0 {
		return
	}
	s.Player.HitFlash -= dt
	if s.Player.HitFlash < 0 {
		s.Player.HitFlash = 0
	}
}
