package game

import (
	"errors"
	"fmt"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Board boundaries
	BorderMin = 0
	BorderMax = 8
)

// StartingMark moves first in every round.
const StartingMark = PlayerX

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrOutOfRange   = errors.New("index out of range")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrInvalidMark  = errors.New("invalid mark")
	ErrGameFinished = errors.New("game already finished")
)

// Game is a single round: one board and whose turn it is.
type Game struct {
	Board       Board
	CurrentTurn PlayerMark
	Winner      PlayerMark
	IsDraw      bool
}

// NewGame returns an empty round with first to move.
func NewGame(first PlayerMark) *Game {
	return &Game{
		CurrentTurn: first,
		Winner:      None,
	}
}

// Active reports whether moves are still accepted.
func (g *Game) Active() bool {
	return g.Winner == None && !g.IsDraw
}

// Move places the current turn's mark at index. After a winning or
// board-filling move the turn is not flipped.
func (g *Game) Move(index int) error {
	if !g.Active() {
		return fmt.Errorf("%w: %w", ErrInvalidMove, ErrGameFinished)
	}
	if err := g.Board.Place(index, g.CurrentTurn); err != nil {
		return err
	}

	switch {
	case g.Board.CheckWin(g.CurrentTurn):
		g.Winner = g.CurrentTurn
	case g.Board.IsFull():
		g.IsDraw = true
	default:
		g.CurrentTurn = Opponent(g.CurrentTurn)
	}
	return nil
}

// Opponent returns the other player's mark. None maps to None.
func Opponent(mark PlayerMark) PlayerMark {
	switch mark {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// Valid reports whether mark is X or O.
func (m PlayerMark) Valid() bool {
	return m == PlayerX || m == PlayerO
}
