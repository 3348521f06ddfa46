package main

import (
	"context"
	"math"
	"math/rand"

	"github.com/yafetgetachew/battleoftheshapes-sub001/logging"
	loggingcombat "github.com/yafetgetachew/battleoftheshapes-sub001/logging/combat"
	"github.com/yafetgetachew/battleoftheshapes-sub001/protocol"
)

// LightningEngine owns the warning-to-strike lifecycle for randomized lightning
// hazards. Each warning ages for warningDuration, then resolves into exactly
// one strike: damage is applied at that instant and the bolt remains visible
// for flashDuration. The countdown to the next warning re-arms on every spawn
// with a uniform draw from [minStrikeInterval, maxStrikeInterval].
//
// Strike geometry is generated from the engine's own random stream and is
// part of the replicated state; clients apply the realized segments instead
// of re-rolling them, so every screen shows the same bolt.
type LightningEngine struct {
	rng       *rand.Rand
	warnings  []protocol.Warning
	strikes   []protocol.Strike
	countdown float64

	observers *observerList
	publisher logging.Publisher
	tick      func() uint64
}

func newLightningEngine(rng *rand.Rand, observers *observerList, publisher logging.Publisher, tick func() uint64) *LightningEngine {
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}
	if observers == nil {
		observers = &observerList{}
	}
	if tick == nil {
		tick = func() uint64 { return 0 }
	}
	e := &LightningEngine{
		rng:       rng,
		observers: observers,
		publisher: publisher,
		tick:      tick,
	}
	e.Reset()
	return e
}

// Reset clears all warnings and strikes and redraws the next-strike
// countdown. Called at round start.
func (e *LightningEngine) Reset() {
	e.warnings = e.warnings[:0]
	e.strikes = e.strikes[:0]
	e.countdown = randomRange(e.rng, minStrikeInterval, maxStrikeInterval)
}

// Update advances the hazard by dt seconds against the given roster.
func (e *LightningEngine) Update(dt float64, targets []CombatTarget) {
	e.countdown -= dt
	if e.countdown <= 0 {
		e.spawnWarning()
		e.countdown = randomRange(e.rng, minStrikeInterval, maxStrikeInterval)
	}

	kept := e.warnings[:0]
	for i := range e.warnings {
		w := e.warnings[i]
		w.Age += dt
		if w.Age >= warningDuration {
			e.resolveStrike(w.X, targets)
			continue
		}
		kept = append(kept, w)
	}
	e.warnings = kept

	keptStrikes := e.strikes[:0]
	for i := range e.strikes {
		s := e.strikes[i]
		s.Age += dt
		if s.Age >= flashDuration {
			continue
		}
		keptStrikes = append(keptStrikes, s)
	}
	e.strikes = keptStrikes
}

// spawnWarning telegraphs a strike at a random x inside the walls, inset so
// bolts never land flush against a wall.
func (e *LightningEngine) spawnWarning() {
	x := randomRange(e.rng, wallLeft+strikeWallInset, wallRight-strikeWallInset)
	e.warnings = append(e.warnings, protocol.Warning{X: x})
	e.observers.hazardWarningStarted(x)
	loggingcombat.HazardWarning(context.Background(), e.publisher, e.tick(), loggingcombat.HazardWarningPayload{
		X:         x,
		Countdown: e.countdown,
	})
}

// resolveStrike realizes the bolt geometry and applies area damage once.
// Dead and invulnerable targets are skipped; the radius check is inclusive.
func (e *LightningEngine) resolveStrike(x float64, targets []CombatTarget) {
	strike := protocol.Strike{X: x, Segments: e.generateBoltSegments(x)}
	e.strikes = append(e.strikes, strike)
	e.observers.hazardStrikeLanded(x)

	hit := make([]logging.EntityRef, 0, len(targets))
	for _, target := range targets {
		if target.Life() <= 0 || target.Invulnerable() {
			continue
		}
		tx, ty := target.Position()
		if math.Abs(tx-x) > strikeRadius {
			continue
		}
		result := applyDamage(target, lightningDamage)
		target.SetHitFlash(hitFlashDuration)
		if result.Applied > 0 {
			e.observers.targetDamaged(tx, ty, result.Applied)
			hit = append(hit, logging.EntityRef{ID: target.TargetID(), Kind: logging.EntityKindPlayer})
			loggingcombat.Damage(context.Background(), e.publisher, e.tick(),
				logging.EntityRef{ID: "lightning", Kind: logging.EntityKindHazard},
				logging.EntityRef{ID: target.TargetID(), Kind: logging.EntityKindPlayer},
				loggingcombat.DamagePayload{
					Source:     "lightning",
					Base:       lightningDamage,
					Absorbed:   result.Absorbed,
					Applied:    result.Applied,
					TargetLife: result.Life,
				})
		}
	}

	loggingcombat.HazardStrike(context.Background(), e.publisher, e.tick(), hit, loggingcombat.HazardStrikePayload{
		X:        x,
		Segments: len(strike.Segments),
		Hits:     len(hit),
	})
}

// generateBoltSegments walks from the sky to the ground with bounded
// horizontal jitter per vertical step.
func (e *LightningEngine) generateBoltSegments(x float64) []protocol.BoltSegment {
	segments := make([]protocol.BoltSegment, 0, 16)
	y := 0.0
	cx := x
	for y < groundY {
		nx := cx + (e.rng.Float64()-0.5)*boltHorizontalJitter
		ny := math.Min(y+boltStepBase+e.rng.Float64()*boltStepJitter, groundY)
		segments = append(segments, protocol.BoltSegment{X1: cx, Y1: y, X2: nx, Y2: ny})
		cx = nx
		y = ny
	}
	return segments
}

// State captures the full replicable snapshot: warnings, strikes with their
// realized segments, and the countdown to the next warning.
func (e *LightningEngine) State() protocol.LightningState {
	countdown := e.countdown
	state := protocol.LightningState{
		Warnings:   append([]protocol.Warning(nil), e.warnings...),
		Strikes:    make([]protocol.Strike, 0, len(e.strikes)),
		NextStrike: &countdown,
	}
	for _, s := range e.strikes {
		cloned := s
		cloned.Segments = append([]protocol.BoltSegment(nil), s.Segments...)
		state.Strikes = append(state.Strikes, cloned)
	}
	return state
}

// ApplyState replaces the engine's lists wholesale with the replicated
// snapshot. A net increase in strike count means a strike just landed on the
// host, so the local edge fires once for screen shake and audio; a client
// never runs its own strike resolution. A missing countdown falls back to
// the documented 5 second default.
func (e *LightningEngine) ApplyState(state protocol.LightningState) {
	previousStrikes := len(e.strikes)

	e.warnings = append(e.warnings[:0], state.Warnings...)
	e.strikes = e.strikes[:0]
	for _, s := range state.Strikes {
		cloned := s
		cloned.Segments = append([]protocol.BoltSegment(nil), s.Segments...)
		e.strikes = append(e.strikes, cloned)
	}

	if state.NextStrike != nil {
		e.countdown = *state.NextStrike
	} else {
		e.countdown = defaultStrikeCountdown
	}

	if len(e.strikes) > previousStrikes {
		newest := e.strikes[len(e.strikes)-1]
		e.observers.hazardStrikeLanded(newest.X)
	}
}

// Warnings exposes the active telegraphs for rendering.
func (e *LightningEngine) Warnings() []protocol.Warning { return e.warnings }

// Strikes exposes the active bolts for rendering.
func (e *LightningEngine) Strikes() []protocol.Strike { return e.strikes }

// Countdown reports the seconds until the next warning spawns.
func (e *LightningEngine) Countdown() float64 { return e.countdown }
