package main

// CombatObserver receives fire-and-forget notifications from the engines.
// The host application wires audio and screen-shake here; ordering across
// unrelated event kinds is not guaranteed.
type CombatObserver interface {
	// HazardWarningStarted fires when a strike telegraph appears.
	HazardWarningStarted(x float64)
	// HazardStrikeLanded fires once per strike, on the host when the strike
	// resolves and on a client when a replicated snapshot grows the strike
	// list. Drives the per-strike audio cue and screen shake.
	HazardStrikeLanded(x float64)
	// TargetDamaged fires once per damaging hit with the damage actually
	// applied after armor absorption.
	TargetDamaged(x, y, damage float64)
	// FireballCast fires when a spawn succeeds.
	FireballCast(ownerID string, x, y float64)
	// FireballHit fires when a projectile connects.
	FireballHit(x, y float64)
}

// observerList fans a notification out to every registered observer.
type observerList struct {
	observers []CombatObserver
}

func (l *observerList) Add(o CombatObserver) {
	if o == nil {
		return
	}
	l.observers = append(l.observers, o)
}

func (l *observerList) hazardWarningStarted(x float64) {
	for _, o := range l.observers {
		o.HazardWarningStarted(x)
	}
}

func (l *observerList) hazardStrikeLanded(x float64) {
	for _, o := range l.observers {
		o.HazardStrikeLanded(x)
	}
}

func (l *observerList) targetDamaged(x, y, damage float64) {
	for _, o := range l.observers {
		o.TargetDamaged(x, y, damage)
	}
}

func (l *observerList) fireballCast(ownerID string, x, y float64) {
	for _, o := range l.observers {
		o.FireballCast(ownerID, x, y)
	}
}

func (l *observerList) fireballHit(x, y float64) {
	for _, o := range l.observers {
		o.FireballHit(x, y)
	}
}
