package server

import (
	"log/slog"
	"net/http"

	"github.com/abdu61/TicTacToe/internal/game"
	"github.com/abdu61/TicTacToe/internal/hub"
	"github.com/abdu61/TicTacToe/internal/match"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("server")

// MoveCalculator answers one-off move requests by difficulty name.
type MoveCalculator interface {
	CalculateNextMove(board game.Board, mark game.PlayerMark, difficulty string) (int, error)
}

type Server struct {
	hub        *hub.Hub
	upgrader   websocket.Upgrader
	defaults   match.Config
	calculator MoveCalculator
	engine     *gin.Engine
}

// NewServer wires the routes. defaults is the match configuration a new
// session starts with when the client does not override it.
func NewServer(h *hub.Hub, defaults match.Config, calculator MoveCalculator) *Server {
	s := &Server{
		hub:        h,
		defaults:   defaults,
		calculator: calculator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.registerHandlers()
	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerHandlers() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/ws", s.handleWebSocket)

	api := s.engine.Group("/api/v1")
	api.GET("/difficulties", s.handleDifficulties)
	api.POST("/moves/suggest", s.handleSuggestMove)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		slog.DebugContext(c.Request.Context(), "http request",
			"http.method", c.Request.Method,
			"http.path", c.FullPath(),
			"http.status", c.Writer.Status(),
		)
	}
}
