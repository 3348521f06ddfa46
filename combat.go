package main

// CombatTarget is the minimal contract a player-like entity must satisfy to
// be damaged. The external player subsystem owns identity, geometry, and
// resource pools; this core reads them and writes life, armor, and hit flash
// as damage side effects.
type CombatTarget interface {
	TargetID() string
	Position() (x, y float64)
	HalfExtents() (halfW, halfH float64)
	Life() float64
	Will() float64
	Armor() float64
	Invulnerable() bool

	SetLife(life float64)
	SetArmor(armor float64)
	SpendWill(amount float64) bool
	SetHitFlash(seconds float64)
}

// damageResult reports how a base damage amount split across armor and life.
type damageResult struct {
	Absorbed float64
	Applied  float64
	Life     float64
}

// applyDamage runs the shared damage formula: armor absorbs up to its own
// value, the remainder reduces life, both clamped at zero. The returned
// Applied value is the life actually lost, which drives hit notifications.
func applyDamage(target CombatTarget, base float64) damageResult {
	if base <= 0 {
		return damageResult{Life: target.Life()}
	}

	absorbed := target.Armor()
	if absorbed > base {
		absorbed = base
	}
	if absorbed > 0 {
		target.SetArmor(target.Armor() - absorbed)
	}

	through := base - absorbed
	life := target.Life()
	applied := through
	if applied > life {
		applied = life
	}
	if applied > 0 {
		target.SetLife(life - applied)
	}

	return damageResult{Absorbed: absorbed, Applied: applied, Life: target.Life()}
}
