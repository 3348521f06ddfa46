package protocol

// JoinResponse answers a join request with the assigned identity and the
// current world snapshot.
type JoinResponse struct {
	Ver       int            `json:"ver"`
	ID        string         `json:"id"`
	Seat      int            `json:"seat"`
	Players   []Player       `json:"players"`
	Platforms []Platform     `json:"platforms"`
	Lightning LightningState `json:"lightning"`
	Seed      string         `json:"seed"`
}

// StateMessage is the per-tick snapshot bundle the host ships to every
// subscriber. Lists are replaced wholesale on apply, never merged.
type StateMessage struct {
	Ver        int            `json:"ver"`
	Type       string         `json:"type"`
	Tick       uint64         `json:"t"`
	ServerTime int64          `json:"serverTime"`
	Players    []Player       `json:"players"`
	Platforms  []Platform     `json:"platforms,omitempty"`
	Lightning  LightningState `json:"lightning"`
}

// ClientMessage carries client-to-host traffic: pose updates from the
// locally simulated player, cast requests, and heartbeats.
type ClientMessage struct {
	Type     string  `json:"type"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Ability  string  `json:"ability,omitempty"`
	TargetID string  `json:"target,omitempty"`
	SentAt   int64   `json:"sentAt,omitempty"`
}

// HeartbeatMessage echoes timing data back to a client so it can display RTT.
type HeartbeatMessage struct {
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}

// ErrorMessage rejects a request, e.g. joining a full arena.
type ErrorMessage struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

const (
	MessageState     = "state"
	MessagePose      = "pose"
	MessageCast      = "cast"
	MessageHeartbeat = "heartbeat"
	MessageError     = "error"

	ReasonServerFull = "server_full"
)
