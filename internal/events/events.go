package events

import (
	"encoding/json"
	"fmt"

	"github.com/abdu61/TicTacToe/internal/match"
)

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types
const (
	TypeRoundEnded = "round_ended"
	TypeMatchEnded = "match_ended"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// NewEvent wraps payload in an envelope of the given type.
func NewEvent(eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: data}, nil
}

// RoundEndedPayload is the payload for the "round_ended" event.
type RoundEndedPayload struct {
	RoomID  string        `json:"room_id"`
	Outcome match.Outcome `json:"outcome"`
	Score   match.Score   `json:"score"`
}

// MatchEndedPayload is the payload for the "match_ended" event.
type MatchEndedPayload struct {
	RoomID   string         `json:"room_id"`
	Opponent match.Opponent `json:"opponent"`
	Summary  match.Summary  `json:"summary"`
}
