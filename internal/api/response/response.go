package response

import (
	"errors"
	"net/http"

	"github.com/abdu61/TicTacToe/internal/bot"
	"github.com/abdu61/TicTacToe/internal/game"
	"github.com/abdu61/TicTacToe/internal/match"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Response is the envelope every HTTP endpoint answers with.
type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

// Failure is the Extras payload of an error Response. Reason is a stable
// token clients can switch on; Message is for humans.
type Failure struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

const (
	ReasonBadRequest     = "bad_request"
	ReasonInvalidBoard   = "invalid_board"
	ReasonGameFinished   = "game_finished"
	ReasonNoMoves        = "no_available_moves"
	ReasonInvalidConfig  = "invalid_config"
	ReasonUnknownTier    = "unknown_difficulty"
	ReasonInternalServer = "internal"
)

// classify maps a domain error to its status and reason. Order matters: a
// rejected config may wrap ErrUnknownDifficulty, and a finished board also
// wraps ErrInvalidMove when it comes from game.Move.
func classify(err error) (int, string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, match.ErrInvalidConfig):
		return http.StatusBadRequest, ReasonInvalidConfig
	case errors.Is(err, game.ErrGameFinished):
		return http.StatusBadRequest, ReasonGameFinished
	case errors.Is(err, bot.ErrNoAvailableMoves):
		return http.StatusUnprocessableEntity, ReasonNoMoves
	case errors.Is(err, bot.ErrUnknownDifficulty):
		return http.StatusBadRequest, ReasonUnknownTier
	case errors.Is(err, game.ErrInvalidMove), errors.Is(err, game.ErrInvalidMark):
		return http.StatusBadRequest, ReasonInvalidBoard
	case errors.As(err, &verrs):
		return http.StatusBadRequest, ReasonBadRequest
	default:
		return http.StatusInternalServerError, ReasonInternalServer
	}
}

// StatusFor reports the HTTP status Error would answer err with.
func StatusFor(err error) int {
	code, _ := classify(err)
	return code
}

// SuccessResponse writes a 200 envelope around extras.
func SuccessResponse(c *gin.Context, extras any) {
	c.JSON(http.StatusOK, Response{Success: true, Code: http.StatusOK, Extras: extras})
}

// Error aborts the request with the status and reason classify picks for err.
func Error(c *gin.Context, err error) {
	code, reason := classify(err)
	abort(c, code, reason, err.Error())
}

// BadRequest aborts with 400 for input that never reached the domain, such
// as a body that is not JSON.
func BadRequest(c *gin.Context, err error) {
	abort(c, http.StatusBadRequest, ReasonBadRequest, err.Error())
}

func abort(c *gin.Context, code int, reason, message string) {
	c.AbortWithStatusJSON(code, Response{
		Success: false,
		Code:    code,
		Extras:  Failure{Reason: reason, Message: message},
	})
}
