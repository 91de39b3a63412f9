package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abdu61/TicTacToe/internal/game"
	"github.com/abdu61/TicTacToe/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event, err := NewEvent(TypeRoundEnded, RoundEndedPayload{
		RoomID:  "room-1",
		Outcome: match.Win(game.PlayerO),
		Score:   match.Score{Player: 1, Opponent: 1},
	})
	require.NoError(t, err)

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"event": "round_ended",
		"payload": {
			"room_id": "room-1",
			"outcome": {"result": "win", "winner": "O"},
			"score": {"player": 1, "opponent": 1}
		}
	}`, string(data))
}

func TestNewEvent_UnmarshalablePayload(t *testing.T) {
	_, err := NewEvent(TypeMatchEnded, make(chan int))

	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}

	assert.NoError(t, p.Publish(context.Background(), TypeMatchEnded, nil))
}
