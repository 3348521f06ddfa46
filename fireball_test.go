package main

import (
	"testing"

	"github.com/yafetgetachew/battleoftheshapes-sub001/logging"
)

func newTestFireballs(authoritative bool, observer *recordingObserver) *FireballEngine {
	observers := &observerList{}
	if observer != nil {
		observers.Add(observer)
	}
	return newFireballEngine(newDeterministicRNG("test", "fireballs"), authoritative, observers, logging.NopPublisher{}, nil)
}

func TestSpawnFireballRequiresWill(t *testing.T) {
	e := newTestFireballs(true, nil)
	caster := newStubTarget("caster", 100, 300)
	caster.will = 5
	target := newStubTarget("target", 500, 300)

	if e.SpawnFireball(caster, target) {
		t.Fatalf("spawn succeeded with insufficient will")
	}
	if caster.will != 5 {
		t.Fatalf("failed spawn changed will: %v", caster.will)
	}
	if len(e.Projectiles()) != 0 {
		t.Fatalf("failed spawn created a projectile")
	}
}

func TestSpawnFireballDeductsCostAndAimsAtTarget(t *testing.T) {
	observer := &recordingObserver{}
	e := newTestFireballs(true, observer)
	caster := newStubTarget("caster", 500, 300)
	target := newStubTarget("target", 100, 300)

	if !e.SpawnFireball(caster, target) {
		t.Fatalf("spawn failed with sufficient will")
	}
	if caster.will != playerMaxWill-fireballCost {
		t.Fatalf("will %v, want %v", caster.will, playerMaxWill-fireballCost)
	}
	if len(e.Projectiles()) != 1 {
		t.Fatalf("expected 1 projectile, got %d", len(e.Projectiles()))
	}

	fb := e.Projectiles()[0]
	if fb.VX >= 0 {
		t.Fatalf("projectile should travel toward the target (negative x), vx=%v", fb.VX)
	}
	if fb.VX != -fireballSpeed {
		t.Fatalf("speed magnitude %v, want %v", fb.VX, -fireballSpeed)
	}
	wantX := 500 - (playerHalfWidth + fireballSpawnGap + fireballRadius)
	if fb.X != wantX {
		t.Fatalf("spawn x %v, want %v (outside caster half-width)", fb.X, wantX)
	}
	if observer.casts != 1 {
		t.Fatalf("expected 1 cast notification, got %d", observer.casts)
	}
}

func TestFireballHitBoundaryIsInclusive(t *testing.T) {
	// Target box spans x in [86, 114]; a projectile centered at x=74 with
	// radius 12 touches the left edge exactly.
	target := newStubTarget("target", 100, 300)

	e := newTestFireballs(true, nil)
	e.projectiles = append(e.projectiles, &Fireball{
		ID: "fireball-test", Owner: "caster", X: 74, Y: 300, Radius: fireballRadius,
	})
	e.Update(1.0/tickRate, []CombatTarget{target})

	if len(e.Projectiles()) != 0 {
		t.Fatalf("touching projectile not consumed")
	}
	if target.life != playerMaxLife-fireballDamage {
		t.Fatalf("target life %v, want %v", target.life, playerMaxLife-fireballDamage)
	}
	if len(e.Effects()) != 1 {
		t.Fatalf("expected a hit effect, got %d", len(e.Effects()))
	}
}

func TestFireballOneUnitShortDoesNotHit(t *testing.T) {
	target := newStubTarget("target", 100, 300)

	e := newTestFireballs(true, nil)
	e.projectiles = append(e.projectiles, &Fireball{
		ID: "fireball-test", Owner: "caster", X: 73, Y: 300, Radius: fireballRadius,
	})
	e.Update(1.0/tickRate, []CombatTarget{target})

	if len(e.Projectiles()) != 1 {
		t.Fatalf("projectile one unit short was consumed")
	}
	if target.life != playerMaxLife {
		t.Fatalf("target damaged without contact: life %v", target.life)
	}
}

func TestFireballNeverHitsItsOwner(t *testing.T) {
	owner := newStubTarget("caster", 100, 300)

	e := newTestFireballs(true, nil)
	e.projectiles = append(e.projectiles, &Fireball{
		ID: "fireball-test", Owner: "caster", X: 100, Y: 300, Radius: fireballRadius,
	})
	e.Update(1.0/tickRate, []CombatTarget{owner})

	if len(e.Projectiles()) != 1 {
		t.Fatalf("projectile consumed by its own caster")
	}
	if owner.life != playerMaxLife {
		t.Fatalf("caster damaged by own projectile: life %v", owner.life)
	}
}

func TestFireballFirstTargetInOrderWins(t *testing.T) {
	first := newStubTarget("a", 100, 300)
	second := newStubTarget("b", 100, 300) // same spot, later in the roster

	e := newTestFireballs(true, nil)
	e.projectiles = append(e.projectiles, &Fireball{
		ID: "fireball-test", Owner: "caster", X: 100, Y: 300, Radius: fireballRadius,
	})
	e.Update(1.0/tickRate, []CombatTarget{first, second})

	if first.life != playerMaxLife-fireballDamage {
		t.Fatalf("first target untouched: life %v", first.life)
	}
	if second.life != playerMaxLife {
		t.Fatalf("projectile hit two targets")
	}
}

func TestFireballRemovedWhenOffscreen(t *testing.T) {
	e := newTestFireballs(true, nil)
	e.projectiles = append(e.projectiles, &Fireball{
		ID: "fireball-test", Owner: "caster", X: wallRight + offscreenMargin - 1, Y: 300,
		VX: fireballSpeed, Radius: fireballRadius,
	})

	e.Update(1.0, nil)

	if len(e.Projectiles()) != 0 {
		t.Fatalf("offscreen projectile survived")
	}
	if len(e.Effects()) != 0 {
		t.Fatalf("offscreen removal spawned a hit effect")
	}
}

func TestFireballEmitsTrailParticles(t *testing.T) {
	e := newTestFireballs(true, nil)
	e.projectiles = append(e.projectiles, &Fireball{
		ID: "fireball-test", Owner: "caster", X: 400, Y: 300, VX: fireballSpeed, Radius: fireballRadius,
	})

	e.Update(1.0/tickRate, nil)

	fb := e.Projectiles()[0]
	if len(fb.Trail) == 0 {
		t.Fatalf("no trail particles emitted")
	}
	if len(fb.Trail) > 2 {
		t.Fatalf("expected 1-2 trail particles per tick, got %d", len(fb.Trail))
	}
}

func TestHitEffectBurstAndExpiry(t *testing.T) {
	e := newTestFireballs(true, nil)
	e.spawnHitEffect(100, 200)

	if len(e.Effects()) != 1 {
		t.Fatalf("expected 1 effect, got %d", len(e.Effects()))
	}
	if len(e.Effects()[0].Sparks) != hitEffectSparks {
		t.Fatalf("expected %d sparks, got %d", hitEffectSparks, len(e.Effects()[0].Sparks))
	}

	e.Update(0.3, nil)
	if len(e.Effects()) != 1 {
		t.Fatalf("effect expired before its fixed duration")
	}
	e.Update(0.4, nil)
	if len(e.Effects()) != 0 {
		t.Fatalf("effect outlived its fixed duration")
	}
}

func TestClearDropsEverythingBeforeNextUpdate(t *testing.T) {
	target := newStubTarget("target", 100, 300)

	e := newTestFireballs(true, nil)
	e.projectiles = append(e.projectiles, &Fireball{
		ID: "fireball-test", Owner: "caster", X: 100, Y: 300, Radius: fireballRadius,
	})
	e.spawnHitEffect(100, 300)

	e.Clear()
	e.Update(1.0/tickRate, []CombatTarget{target})

	if target.life != playerMaxLife {
		t.Fatalf("cleared projectile still dealt damage: life %v", target.life)
	}
	if len(e.Projectiles()) != 0 || len(e.Effects()) != 0 {
		t.Fatalf("clear left %d projectiles, %d effects", len(e.Projectiles()), len(e.Effects()))
	}
}

func TestClientRoleEngineNeverMutatesTargets(t *testing.T) {
	observer := &recordingObserver{}
	target := newStubTarget("target", 100, 300)

	e := newTestFireballs(false, observer)
	e.projectiles = append(e.projectiles, &Fireball{
		ID: "fireball-test", Owner: "caster", X: 100, Y: 300, Radius: fireballRadius,
	})
	e.Update(1.0/tickRate, []CombatTarget{target})

	if target.life != playerMaxLife || target.armor != 0 || target.hitFlash != 0 {
		t.Fatalf("client engine mutated target: life=%v armor=%v flash=%v", target.life, target.armor, target.hitFlash)
	}
	if len(e.Projectiles()) != 0 {
		t.Fatalf("client engine should still consume the projectile visually")
	}
	if len(e.Effects()) != 1 {
		t.Fatalf("client engine should still show the hit effect")
	}
	if observer.hits != 1 {
		t.Fatalf("client engine should still notify the hit for effects")
	}
	if len(observer.damage) != 0 {
		t.Fatalf("client engine emitted a damage notification")
	}
}
