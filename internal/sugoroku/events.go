package sugoroku

// Event kinds published to the notifier.
const (
	EventGameStarted    = "game_started"
	EventActionResolved = "action_resolved"
)

// Notifier is the one-way sink for domain events. Publish must never
// block the caller or return an error into the engine; delivery is
// best-effort and the engine's correctness does not depend on it.
type Notifier interface {
	Publish(roomID uint, kind string, payload interface{})
}

// GameStartedPayload is broadcast when a room flips to busy.
type GameStartedPayload struct {
	RoomID       uint                 `json:"room_id"`
	Uname        string               `json:"uname"`
	Participants []OrderedParticipant `json:"participants"`
}

// OrderedParticipant is one entry of the fixed turn sequence.
type OrderedParticipant struct {
	UserID    uint   `json:"user_id"`
	Nickname  string `json:"nickname"`
	TurnOrder int    `json:"turn_order"`
	IsVirus   bool   `json:"is_virus"`
}

// ActionResolvedPayload is broadcast after every resolved turn.
type ActionResolvedPayload struct {
	RoomID    uint   `json:"room_id"`
	Uname     string `json:"uname"`
	UserID    uint   `json:"user_id"`
	Action    string `json:"action"`
	Effect    string `json:"effect"`
	EffectNum int    `json:"effect_num"`
	Position  int    `json:"position"`
	Finished  bool   `json:"finished"`
	GameEnded bool   `json:"game_ended"`
}

// noopNotifier lets the engine run without a wired sink.
type noopNotifier struct{}

func (noopNotifier) Publish(uint, string, interface{}) {}
