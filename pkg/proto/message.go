package proto

import (
	"github.com/abdu61/TicTacToe/internal/game"
	"github.com/abdu61/TicTacToe/internal/match"
)

// Client message types
const (
	TypeMove     = "move"
	TypeConfig   = "config"
	TypeNewMatch = "new_match"
	TypeNewRound = "new_round"
)

// Server message types
const (
	TypeUpdate     = "update"
	TypeRoundEnded = "round_ended"
	TypeMatchEnded = "match_ended"
	TypeError      = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type   string        `json:"type" validate:"required,oneof=move config new_match new_round"`
	Index  *int          `json:"index,omitempty" validate:"required_if=Type move"`
	Config *match.Config `json:"config,omitempty" validate:"required_if=Type config"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type    string          `json:"type"`
	Reason  string          `json:"reason,omitempty"`
	Board   []string        `json:"board,omitempty"`
	Next    game.PlayerMark `json:"next,omitempty"`
	Round   int             `json:"round,omitempty"`
	Rounds  int             `json:"rounds,omitempty"`
	Score   *match.Score    `json:"score,omitempty"`
	Outcome *match.Outcome  `json:"outcome,omitempty"`
	Summary *match.Summary  `json:"summary,omitempty"`
}

// NewUpdate describes the board in state. Next is left out once the round
// is decided.
func NewUpdate(state match.Snapshot) *ServerToClientMessage {
	msg := &ServerToClientMessage{
		Type:   TypeUpdate,
		Board:  state.Board.Strings(),
		Round:  state.Round,
		Rounds: state.Rounds,
		Score:  &state.Score,
	}
	if state.Phase == match.PhaseAwaitingMove {
		msg.Next = state.Turn
	}
	return msg
}

func NewRoundEnded(outcome match.Outcome, score match.Score) *ServerToClientMessage {
	return &ServerToClientMessage{Type: TypeRoundEnded, Outcome: &outcome, Score: &score}
}

func NewMatchEnded(summary match.Summary) *ServerToClientMessage {
	score := summary.Score
	return &ServerToClientMessage{Type: TypeMatchEnded, Summary: &summary, Score: &score}
}

func NewError(reason string) *ServerToClientMessage {
	return &ServerToClientMessage{Type: TypeError, Reason: reason}
}
