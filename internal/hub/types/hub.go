package types

import (
	"context"

	"github.com/abdu61/TicTacToe/internal/match"
	"github.com/abdu61/TicTacToe/internal/player"
)

// RegistrationRequest asks the hub to open a room for a newly connected player.
type RegistrationRequest struct {
	Player *player.Player
	Config match.Config
	Ctx    context.Context
}
