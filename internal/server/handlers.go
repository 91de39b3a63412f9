package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/abdu61/TicTacToe/internal/api/response"
	"github.com/abdu61/TicTacToe/internal/bot"
	"github.com/abdu61/TicTacToe/internal/game"
	"github.com/abdu61/TicTacToe/internal/hub/types"
	"github.com/abdu61/TicTacToe/internal/match"
	"github.com/abdu61/TicTacToe/internal/player"
	"github.com/abdu61/TicTacToe/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type suggestMoveRequest struct {
	Board      []string `json:"board" validate:"len=9"`
	Mark       string   `json:"mark" validate:"required,mark"`
	Difficulty string   `json:"difficulty" validate:"omitempty,difficulty"`
}

type suggestMoveResponse struct {
	Index int `json:"index"`
}

func (s *Server) handleHealth(c *gin.Context) {
	response.SuccessResponse(c, gin.H{"status": "ok", "rooms": s.hub.RoomCount()})
}

func (s *Server) handleDifficulties(c *gin.Context) {
	response.SuccessResponse(c, gin.H{
		"difficulties": bot.Difficulties,
		"default":      s.defaults.Difficulty,
	})
}

// handleSuggestMove runs a strategy against a posted board without any
// session state.
func (s *Server) handleSuggestMove(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleSuggestMove")
	defer span.End()

	var req suggestMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := validator.GetValidator().Struct(req); err != nil {
		response.Error(c, err)
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = string(s.defaults.Difficulty)
	}
	span.SetAttributes(attribute.String("game.difficulty", req.Difficulty), attribute.String("game.mark", req.Mark))

	board, err := game.ParseBoard(req.Board)
	if err != nil {
		response.Error(c, err)
		return
	}

	index, err := s.calculator.CalculateNextMove(board, game.PlayerMark(req.Mark), req.Difficulty)
	if err != nil {
		if response.StatusFor(err) >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, "failed to calculate move", "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to calculate move")
		}
		response.Error(c, err)
		return
	}
	span.SetAttributes(attribute.Int("move.index", index))

	response.SuccessResponse(c, suggestMoveResponse{Index: index})
}

// configFromQuery overlays the opponent, difficulty, rounds and name query
// parameters on the server defaults.
func (s *Server) configFromQuery(c *gin.Context) (match.Config, error) {
	cfg := s.defaults
	if v := c.Query("opponent"); v != "" {
		cfg.Opponent = match.Opponent(v)
	}
	if v := c.Query("difficulty"); v != "" {
		cfg.Difficulty = bot.Difficulty(v)
	}
	if v := c.Query("rounds"); v != "" {
		rounds, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Join(match.ErrInvalidConfig, err)
		}
		cfg.Rounds = rounds
	}
	if v := c.Query("name"); v != "" {
		cfg.PlayerName = v
	}
	return cfg.Normalize()
}

// handleWebSocket's only responsibility is to check the requested match
// configuration, upgrade the connection and pass a registration request to
// the hub.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	cfg, err := s.configFromQuery(c)
	if err != nil {
		slog.WarnContext(ctx, "rejected session config", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid session config")
		response.Error(c, err)
		return
	}
	span.SetAttributes(
		attribute.String("game.opponent", string(cfg.Opponent)),
		attribute.String("game.difficulty", string(cfg.Difficulty)),
		attribute.Int("game.rounds", cfg.Rounds),
	)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already replied to the client.
		slog.WarnContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	playerID := c.Query("playerId")
	if playerID == "" {
		playerID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("player.id", playerID))

	p := player.NewPlayer(playerID, conn)
	req := &types.RegistrationRequest{
		Player: p,
		Config: cfg,
		Ctx:    ctx,
	}
	if !s.hub.Register(req) {
		slog.WarnContext(ctx, "hub stopped, dropping connection", "player.id", playerID)
		_ = conn.Close()
	}
}
