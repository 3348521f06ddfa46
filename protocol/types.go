package protocol

// ProtocolVersion tags every message so clients can reject incompatible hosts.
const ProtocolVersion = 1

// Player is the broadcast-facing view of a combatant. Position and facing are
// owned by the sending peer's locomotion; life, will, armor, and hit flash are
// authoritative on the host and overwrite the local mirror on apply.
type Player struct {
	ID       string  `json:"id"`
	Seat     int     `json:"seat"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Life     float64 `json:"life"`
	Will     float64 `json:"will"`
	Armor    float64 `json:"armor"`
	HitFlash float64 `json:"hitFlash,omitempty"`
}

// Warning is the telegraph phase of a lightning hazard.
type Warning struct {
	X   float64 `json:"x"`
	Age float64 `json:"age"`
}

// BoltSegment is one link of a strike's jagged path from the sky to the ground.
type BoltSegment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Strike is a resolved lightning hit. The segment walk is generated once on
// the host and replicated verbatim; regenerating it from local randomness
// would show every client a different bolt.
type Strike struct {
	X        float64       `json:"x"`
	Age      float64       `json:"age"`
	Segments []BoltSegment `json:"segments"`
}

// LightningState is the hazard engine's replicable snapshot. NextStrike is
// optional for backward compatibility; absent values fall back to 5 seconds.
type LightningState struct {
	Warnings   []Warning `json:"warnings"`
	Strikes    []Strike  `json:"strikes"`
	NextStrike *float64  `json:"nextStrike,omitempty"`
}

// Platform mirrors the oscillating terrain geometry. It is included in state
// messages for authoritative correction only; clients animate it locally.
type Platform struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
