package match

import (
	"errors"
	"fmt"

	"github.com/abdu61/TicTacToe/internal/bot"
	"github.com/abdu61/TicTacToe/internal/validator"
)

// Opponent says who plays O.
type Opponent string

const (
	OpponentComputer Opponent = "computer"
	OpponentHuman    Opponent = "player"
)

const (
	DefaultRounds     = 1
	DefaultPlayerName = "player 2"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is supplied by the view layer and may change between moves.
type Config struct {
	Opponent   Opponent       `json:"opponent" validate:"required,oneof=computer player"`
	Difficulty bot.Difficulty `json:"difficulty" validate:"required,difficulty"`
	Rounds     int            `json:"rounds" validate:"gte=1"`
	PlayerName string         `json:"player_name" validate:"max=32"`
}

// DefaultConfig matches a fresh page: one round against a medium computer.
func DefaultConfig() Config {
	return Config{
		Opponent:   OpponentComputer,
		Difficulty: bot.Medium,
		Rounds:     DefaultRounds,
		PlayerName: DefaultPlayerName,
	}
}

// Normalize checks c and returns it with the difficulty in canonical form.
func (c Config) Normalize() (Config, error) {
	if err := validator.GetValidator().Struct(c); err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	d, err := bot.ParseDifficulty(string(c.Difficulty))
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.Difficulty = d
	return c, nil
}

// OpponentLabel is how the O side is shown on the scoreboard.
func (c Config) OpponentLabel() string {
	if c.Opponent == OpponentComputer {
		return "Computer"
	}
	if c.PlayerName == "" {
		return DefaultPlayerName
	}
	return c.PlayerName
}
