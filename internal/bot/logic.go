package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abdu61/TicTacToe/internal/game"
)

// Difficulty selects the computer opponent's strategy.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the supported tiers from weakest to strongest.
var Difficulties = []Difficulty{Easy, Medium, Hard}

var (
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Strategy picks a cell index for mark on board. Implementations never
// modify the caller's board, and they refuse boards that are already won
// (game.ErrGameFinished) or full (ErrNoAvailableMoves).
type Strategy interface {
	SelectMove(board game.Board, mark game.PlayerMark) (int, error)
}

// ParseDifficulty accepts a tier name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// ForDifficulty builds the strategy for d. A nil rng falls back to the
// global random source.
func ForDifficulty(d Difficulty, rng *rand.Rand) (Strategy, error) {
	switch d {
	case Easy:
		return NewRandom(rng), nil
	case Medium:
		return NewHeuristic(rng), nil
	case Hard:
		return NewMinimax(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
}

// BotMoveCalculator answers one-off move requests by difficulty name.
type BotMoveCalculator struct{}

// CalculateNextMove calls the package-level function to satisfy the interface.
func (c *BotMoveCalculator) CalculateNextMove(board game.Board, mark game.PlayerMark, difficulty string) (int, error) {
	return CalculateNextMove(board, mark, difficulty)
}

// CalculateNextMove determines the bot's next move based on the specified difficulty.
func CalculateNextMove(board game.Board, mark game.PlayerMark, difficulty string) (int, error) {
	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return -1, err
	}
	s, err := ForDifficulty(d, nil)
	if err != nil {
		return -1, err
	}
	return s.SelectMove(board, mark)
}

// Random makes a completely random move.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random strategy. Pass a seeded rng for reproducible
// games; it is not safe for concurrent use, so give each caller its own.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) SelectMove(board game.Board, _ game.PlayerMark) (int, error) {
	if err := checkPlayable(board); err != nil {
		return -1, err
	}
	empty := board.EmptyIndices()
	return empty[r.intN(len(empty))], nil
}

// checkPlayable rejects boards with no move left to make: a won board
// wraps game.ErrGameFinished, a full one is ErrNoAvailableMoves.
func checkPlayable(board game.Board) error {
	if w := board.Winner(); w != game.None {
		return fmt.Errorf("%w: %s has won", game.ErrGameFinished, w)
	}
	if board.IsFull() {
		return ErrNoAvailableMoves
	}
	return nil
}

func (r *Random) intN(n int) int {
	if r.rng == nil {
		return rand.IntN(n)
	}
	return r.rng.IntN(n)
}

// Heuristic will win if it can, block if it must, otherwise move randomly.
type Heuristic struct {
	fallback *Random
}

func NewHeuristic(rng *rand.Rand) *Heuristic {
	return &Heuristic{fallback: NewRandom(rng)}
}

func (h *Heuristic) SelectMove(board game.Board, mark game.PlayerMark) (int, error) {
	if err := checkPlayable(board); err != nil {
		return -1, err
	}

	// 1. Win
	if idx, ok := findWinningMove(board, mark); ok {
		return idx, nil
	}

	// 2. Block
	if idx, ok := findWinningMove(board, game.Opponent(mark)); ok {
		return idx, nil
	}

	// 3. Random
	return h.fallback.SelectMove(board, mark)
}

// findWinningMove returns the lowest empty index that completes a line for mark.
func findWinningMove(board game.Board, mark game.PlayerMark) (int, bool) {
	for _, idx := range board.EmptyIndices() {
		board[idx] = mark
		won := board.CheckWin(mark)
		board[idx] = game.None
		if won {
			return idx, true
		}
	}
	return -1, false
}

const (
	winScore  = 10
	lossScore = -10
	drawScore = 0
)

// Minimax implements the optimal strategy by searching the whole game tree.
// Scores carry no depth discount, so a quick win and a slow win rank equal.
type Minimax struct{}

func NewMinimax() *Minimax {
	return &Minimax{}
}

func (m *Minimax) SelectMove(board game.Board, mark game.PlayerMark) (int, error) {
	if !mark.Valid() {
		return -1, fmt.Errorf("%w: %q", game.ErrInvalidMark, mark)
	}
	if err := checkPlayable(board); err != nil {
		return -1, err
	}
	idx, _ := minimax(&board, mark, mark)
	return idx, nil
}

// minimax scores board from maximizer's point of view with toMove to play.
// Children are visited in ascending index order and only a strictly better
// score replaces the current best.
func minimax(board *game.Board, toMove, maximizer game.PlayerMark) (int, int) {
	switch {
	case board.CheckWin(game.Opponent(maximizer)):
		return -1, lossScore
	case board.CheckWin(maximizer):
		return -1, winScore
	case board.IsFull():
		return -1, drawScore
	}

	maximizing := toMove == maximizer
	bestIdx := -1
	bestScore := 0
	for _, idx := range board.EmptyIndices() {
		board[idx] = toMove
		_, score := minimax(board, game.Opponent(toMove), maximizer)
		board[idx] = game.None

		if bestIdx == -1 || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestIdx, bestScore = idx, score
		}
	}
	return bestIdx, bestScore
}
