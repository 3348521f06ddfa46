package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/yafetgetachew/battleoftheshapes-sub001/logging"
	loggingcombat "github.com/yafetgetachew/battleoftheshapes-sub001/logging/combat"
)

// Particle is a short-lived cosmetic point used for fireball trails and hit
// sparks. It carries no damage decision and is never replicated.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Life   float64
}

// Fireball is an active projectile. Velocity is horizontal only: the sign is
// chosen toward the intended target's position at spawn time and never
// steered afterwards.
type Fireball struct {
	ID     string
	Owner  string
	Target string
	X, Y   float64
	VX     float64
	Radius float64
	Age    float64
	Trail  []Particle
}

// HitEffect is the spark burst spawned when a fireball connects. The effect
// expires at a fixed age regardless of how long its particles live, so a
// pathological particle-life roll cannot leak effects.
type HitEffect struct {
	X, Y   float64
	Age    float64
	Sparks []Particle
}

// FireballEngine owns projectile spawning, motion, collision, and hit
// effects. Hit resolution mutates targets only on the host; a client-role
// engine still integrates motion and particles for display, while life and
// will changes arrive through the replicated player fields.
type FireballEngine struct {
	rng           *rand.Rand
	authoritative bool
	projectiles   []*Fireball
	effects       []*HitEffect
	nextID        uint64

	observers *observerList
	publisher logging.Publisher
	tick      func() uint64
}

func newFireballEngine(rng *rand.Rand, authoritative bool, observers *observerList, publisher logging.Publisher, tick func() uint64) *FireballEngine {
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}
	if observers == nil {
		observers = &observerList{}
	}
	if tick == nil {
		tick = func() uint64 { return 0 }
	}
	return &FireballEngine{
		rng:           rng,
		authoritative: authoritative,
		observers:     observers,
		publisher:     publisher,
		tick:          tick,
	}
}

// SpawnFireball creates a projectile if the caster can pay the will cost.
// It reports false and leaves all state untouched when will is insufficient;
// the ability-input layer must check the result before assuming the cast
// happened.
func (e *FireballEngine) SpawnFireball(caster, target CombatTarget) bool {
	if caster == nil || target == nil {
		return false
	}
	if caster.Will() < fireballCost {
		return false
	}
	if !caster.SpendWill(fireballCost) {
		return false
	}

	cx, cy := caster.Position()
	tx, _ := target.Position()
	dir := 1.0
	if tx < cx {
		dir = -1.0
	}

	halfW, _ := caster.HalfExtents()
	e.nextID++
	fireball := &Fireball{
		ID:     fmt.Sprintf("fireball-%d", e.nextID),
		Owner:  caster.TargetID(),
		Target: target.TargetID(),
		X:      cx + dir*(halfW+fireballSpawnGap+fireballRadius),
		Y:      cy,
		VX:     dir * fireballSpeed,
		Radius: fireballRadius,
	}
	e.projectiles = append(e.projectiles, fireball)

	e.observers.fireballCast(fireball.Owner, fireball.X, fireball.Y)
	loggingcombat.FireballCast(context.Background(), e.publisher, e.tick(),
		logging.EntityRef{ID: fireball.Owner, Kind: logging.EntityKindPlayer},
		loggingcombat.FireballCastPayload{
			TargetID: fireball.Target,
			Cost:     fireballCost,
			X:        fireball.X,
			Y:        fireball.Y,
		})
	return true
}

// Update integrates projectile motion, emits trail particles, resolves
// collisions, and ages hit effects.
func (e *FireballEngine) Update(dt float64, targets []CombatTarget) {
	kept := e.projectiles[:0]
	for _, fb := range e.projectiles {
		fb.Age += dt
		fb.X += fb.VX * dt
		e.emitTrail(fb, dt)

		if fb.X < wallLeft-offscreenMargin || fb.X > wallRight+offscreenMargin ||
			fb.Y > groundY+offscreenMargin || fb.Y < -offscreenMargin*4 {
			continue
		}

		if e.resolveHit(fb, targets) {
			continue
		}
		kept = append(kept, fb)
	}
	e.projectiles = kept

	keptEffects := e.effects[:0]
	for _, effect := range e.effects {
		effect.Age += dt
		if effect.Age >= hitEffectDuration {
			continue
		}
		advanceParticles(&effect.Sparks, dt)
		keptEffects = append(keptEffects, effect)
	}
	e.effects = keptEffects
}

// Clear drops every active projectile and effect. Used on round reset; no
// partial clear is supported.
func (e *FireballEngine) Clear() {
	e.projectiles = e.projectiles[:0]
	e.effects = e.effects[:0]
}

// resolveHit tests the projectile circle against every target's bounding box
// in roster order and reports whether the projectile was consumed. Touching
// the box counts as a hit.
func (e *FireballEngine) resolveHit(fb *Fireball, targets []CombatTarget) bool {
	for _, target := range targets {
		if target.TargetID() == fb.Owner {
			continue
		}
		tx, ty := target.Position()
		halfW, halfH := target.HalfExtents()
		closestX := clamp(fb.X, tx-halfW, tx+halfW)
		closestY := clamp(fb.Y, ty-halfH, ty+halfH)
		dx := fb.X - closestX
		dy := fb.Y - closestY
		if dx*dx+dy*dy > fb.Radius*fb.Radius {
			continue
		}

		if e.authoritative {
			result := applyDamage(target, fireballDamage)
			target.SetHitFlash(hitFlashDuration)
			if result.Applied > 0 {
				e.observers.targetDamaged(tx, ty, result.Applied)
				loggingcombat.Damage(context.Background(), e.publisher, e.tick(),
					logging.EntityRef{ID: fb.Owner, Kind: logging.EntityKindPlayer},
					logging.EntityRef{ID: target.TargetID(), Kind: logging.EntityKindPlayer},
					loggingcombat.DamagePayload{
						Source:     "fireball",
						Base:       fireballDamage,
						Absorbed:   result.Absorbed,
						Applied:    result.Applied,
						TargetLife: result.Life,
					})
			}
		}

		e.spawnHitEffect(fb.X, fb.Y)
		e.observers.fireballHit(fb.X, fb.Y)
		return true
	}
	return false
}

// emitTrail drops 1-2 short-lived particles behind the projectile with a
// small jitter biased opposite to the direction of travel.
func (e *FireballEngine) emitTrail(fb *Fireball, dt float64) {
	count := 1 + e.rng.Intn(2)
	for i := 0; i < count; i++ {
		fb.Trail = append(fb.Trail, Particle{
			X:      fb.X + (e.rng.Float64()-0.5)*fb.Radius,
			Y:      fb.Y + (e.rng.Float64()-0.5)*fb.Radius,
			VX:     -fb.VX*0.1 + (e.rng.Float64()-0.5)*30,
			VY:     (e.rng.Float64() - 0.5) * 30,
			Radius: 1.5 + e.rng.Float64()*2,
			Life:   randomRange(e.rng, trailParticleMin, trailParticleMax),
		})
	}
	advanceParticles(&fb.Trail, dt)
}

func (e *FireballEngine) spawnHitEffect(x, y float64) {
	effect := &HitEffect{X: x, Y: y, Sparks: make([]Particle, 0, hitEffectSparks)}
	for i := 0; i < hitEffectSparks; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := 40 + e.rng.Float64()*120
		effect.Sparks = append(effect.Sparks, Particle{
			X:      x,
			Y:      y,
			VX:     math.Cos(angle) * speed,
			VY:     math.Sin(angle) * speed,
			Radius: 1 + e.rng.Float64()*2,
			Life:   0.2 + e.rng.Float64()*0.4,
		})
	}
	e.effects = append(e.effects, effect)
}

// Projectiles exposes the live projectile list for rendering.
func (e *FireballEngine) Projectiles() []*Fireball { return e.projectiles }

// Effects exposes the live hit-effect list for rendering.
func (e *FireballEngine) Effects() []*HitEffect { return e.effects }

func advanceParticles(particles *[]Particle, dt float64) {
	kept := (*particles)[:0]
	for _, p := range *particles {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		kept = append(kept, p)
	}
	*particles = kept
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
