package main

import "time"

const (
	writeWait         = 10 * time.Second
	tickRate          = 30 // simulation and broadcast ticks per second
	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval

	maxSeats = 3

	// Arena geometry shared with the external physics collaborator.
	wallLeft  = 0.0
	wallRight = 800.0
	groundY   = 560.0

	playerHalfWidth  = 14.0
	playerHalfHeight = 20.0
	playerMaxLife    = 100.0
	playerMaxWill    = 50.0

	hitFlashDuration = 0.25 // seconds of cosmetic flash after taking a hit

	// Lightning hazard tuning.
	lightningDamage        = 20.0
	strikeRadius           = 50.0 // horizontal damage radius, boundary inclusive
	minStrikeInterval      = 4.0
	maxStrikeInterval      = 10.0
	warningDuration        = 1.0
	flashDuration          = 0.5
	strikeWallInset        = 60.0 // keeps strikes off the walls
	boltStepBase           = 30.0
	boltStepJitter         = 20.0
	boltHorizontalJitter   = 60.0 // total spread per step, centered on the path
	defaultStrikeCountdown = 5.0  // applied when a snapshot omits the timer

	// Fireball tuning.
	fireballCooldown = 650 * time.Millisecond
	fireballCost     = 10.0
	fireballDamage   = 30.0
	fireballSpeed    = 320.0
	fireballRadius   = 12.0
	fireballSpawnGap = 6.0
	offscreenMargin  = 100.0
	trailParticleMin = 0.1 // seconds
	trailParticleMax = 0.25

	hitEffectDuration = 0.6
	hitEffectSparks   = 16
)
