package main

import "testing"

// stubTarget is a minimal CombatTarget for exercising the engines without
// the hub's player bookkeeping.
type stubTarget struct {
	id           string
	x, y         float64
	halfW, halfH float64
	life         float64
	will         float64
	armor        float64
	invulnerable bool
	hitFlash     float64
}

func newStubTarget(id string, x, y float64) *stubTarget {
	return &stubTarget{
		id:    id,
		x:     x,
		y:     y,
		halfW: playerHalfWidth,
		halfH: playerHalfHeight,
		life:  playerMaxLife,
		will:  playerMaxWill,
	}
}

func (s *stubTarget) TargetID() string { return s.id }

func (s *stubTarget) Position() (float64, float64) { return s.x, s.y }

func (s *stubTarget) HalfExtents() (float64, float64) { return s.halfW, s.halfH }

func (s *stubTarget) Life() float64 { return s.life }

func (s *stubTarget) Will() float64 { return s.will }

func (s *stubTarget) Armor() float64 { return s.armor }

func (s *stubTarget) Invulnerable() bool { return s.invulnerable }

func (s *stubTarget) SetLife(life float64) {
	if life < 0 {
		life = 0
	}
	s.life = life
}

func (s *stubTarget) SetArmor(armor float64) {
	if armor < 0 {
		armor = 0
	}
	s.armor = armor
}

func (s *stubTarget) SpendWill(amount float64) bool {
	if amount < 0 || s.will < amount {
		return false
	}
	s.will -= amount
	return true
}

func (s *stubTarget) SetHitFlash(seconds float64) { s.hitFlash = seconds }

// recordingObserver captures every notification for assertions.
type recordingObserver struct {
	warnings []float64
	strikes  []float64
	damage   []float64
	casts    int
	hits     int
}

func (r *recordingObserver) HazardWarningStarted(x float64) { r.warnings = append(r.warnings, x) }
func (r *recordingObserver) HazardStrikeLanded(x float64)   { r.strikes = append(r.strikes, x) }
func (r *recordingObserver) TargetDamaged(x, y, damage float64) {
	r.damage = append(r.damage, damage)
}
func (r *recordingObserver) FireballCast(ownerID string, x, y float64) { r.casts++ }
func (r *recordingObserver) FireballHit(x, y float64)                 { r.hits++ }

func TestApplyDamageArmorAbsorbsBeforeLife(t *testing.T) {
	target := newStubTarget("p1", 0, 0)
	target.life = 100
	target.armor = 10

	result := applyDamage(target, 20)

	if target.armor != 0 {
		t.Fatalf("expected armor 0, got %v", target.armor)
	}
	if target.life != 90 {
		t.Fatalf("expected life 90, got %v", target.life)
	}
	if result.Absorbed != 10 {
		t.Fatalf("expected 10 absorbed, got %v", result.Absorbed)
	}
	if result.Applied != 10 {
		t.Fatalf("expected 10 applied, got %v", result.Applied)
	}
}

func TestApplyDamageTotalNeverExceedsBase(t *testing.T) {
	cases := []struct {
		name  string
		life  float64
		armor float64
		base  float64
	}{
		{"armor covers everything", 100, 50, 20},
		{"no armor", 100, 0, 20},
		{"armor partial", 100, 5, 20},
		{"life below damage", 3, 0, 20},
	}
	for _, tc := range cases {
		target := newStubTarget("p1", 0, 0)
		target.life = tc.life
		target.armor = tc.armor

		result := applyDamage(target, tc.base)

		armorLoss := tc.armor - target.armor
		lifeLoss := tc.life - target.life
		if armorLoss+lifeLoss > tc.base {
			t.Fatalf("%s: total loss %v exceeds base %v", tc.name, armorLoss+lifeLoss, tc.base)
		}
		if target.life < 0 || target.armor < 0 {
			t.Fatalf("%s: negative pools life=%v armor=%v", tc.name, target.life, target.armor)
		}
		if result.Applied != lifeLoss {
			t.Fatalf("%s: reported applied %v, actual life loss %v", tc.name, result.Applied, lifeLoss)
		}
	}
}

func TestApplyDamageFullAbsorbReportsZeroApplied(t *testing.T) {
	target := newStubTarget("p1", 0, 0)
	target.armor = 50

	result := applyDamage(target, 20)

	if result.Applied != 0 {
		t.Fatalf("expected zero applied damage, got %v", result.Applied)
	}
	if target.life != playerMaxLife {
		t.Fatalf("expected life untouched, got %v", target.life)
	}
	if target.armor != 30 {
		t.Fatalf("expected armor 30, got %v", target.armor)
	}
}
