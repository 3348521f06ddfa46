package combat

import (
	"context"

	"github.com/yafetgetachew/battleoftheshapes-sub001/logging"
)

const (
	// EventHazardWarning is emitted when a lightning warning telegraph appears.
	EventHazardWarning logging.EventType = "combat.hazard_warning"
	// EventHazardStrike is emitted when a warning resolves into a strike.
	EventHazardStrike logging.EventType = "combat.hazard_strike"
	// EventDamage is emitted when a hazard or projectile deals damage.
	EventDamage logging.EventType = "combat.damage"
	// EventFireballCast is emitted when a fireball spawn succeeds.
	EventFireballCast logging.EventType = "combat.fireball_cast"
)

// HazardWarningPayload records where the next strike will land.
type HazardWarningPayload struct {
	X         float64 `json:"x"`
	Countdown float64 `json:"countdown"`
}

// HazardStrikePayload records a resolved strike and how many targets it hit.
type HazardStrikePayload struct {
	X        float64 `json:"x"`
	Segments int     `json:"segments"`
	Hits     int     `json:"hits"`
}

// DamagePayload captures the amount actually applied after armor absorption.
type DamagePayload struct {
	Source     string  `json:"source"`
	Base       float64 `json:"base"`
	Absorbed   float64 `json:"absorbed"`
	Applied    float64 `json:"applied"`
	TargetLife float64 `json:"targetLife"`
}

// FireballCastPayload records a successful spawn and the will spent on it.
type FireballCastPayload struct {
	TargetID string  `json:"target"`
	Cost     float64 `json:"cost"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// HazardWarning publishes a telegraph event.
func HazardWarning(ctx context.Context, pub logging.Publisher, tick uint64, payload HazardWarningPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventHazardWarning,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "lightning", Kind: logging.EntityKindHazard},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// HazardStrike publishes a strike-resolution event.
func HazardStrike(ctx context.Context, pub logging.Publisher, tick uint64, targets []logging.EntityRef, payload HazardStrikePayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventHazardStrike,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "lightning", Kind: logging.EntityKindHazard},
		Targets:  targets,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// Damage publishes a damage event for a single target.
func Damage(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload DamagePayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDamage,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// FireballCast publishes a successful projectile spawn.
func FireballCast(ctx context.Context, pub logging.Publisher, tick uint64, owner logging.EntityRef, payload FireballCastPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventFireballCast,
		Tick:     tick,
		Actor:    owner,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}
