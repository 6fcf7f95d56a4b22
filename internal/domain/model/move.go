package model

// MoveEvent is the structured payload the reorder notifier delivers once per
// completed drag gesture: "player X moved to position P in tier T".
type MoveEvent struct {
	EventID  string `json:"event_id"` // unique id for idempotent delivery
	PlayerID string `json:"player_id"`
	FromTier string `json:"from_tier"`
	ToTier   string `json:"to_tier"`
	ToIndex  int    `json:"to_index"`
}
