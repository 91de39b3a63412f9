package room

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abdu61/TicTacToe/internal/events"
	"github.com/abdu61/TicTacToe/internal/match"
	"github.com/abdu61/TicTacToe/internal/player"
	"github.com/abdu61/TicTacToe/internal/telemetry"
	"github.com/abdu61/TicTacToe/pkg/proto"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	heartbeatInterval = 10 * time.Second
)

var tracer = otel.Tracer("room")

// Room is one player's session: a websocket connection driving a single
// match controller.
type Room struct {
	ID     string
	Player *player.Player

	controller *match.Controller
	publisher  events.Publisher
	metrics    *telemetry.GameMetrics
	moveDelay  time.Duration
	rng        *rand.Rand

	Done      chan struct{}
	closeOnce sync.Once
}

type Option func(*Room)

// WithPublisher sets where round and match events go.
func WithPublisher(p events.Publisher) Option {
	return func(r *Room) { r.publisher = p }
}

func WithMetrics(m *telemetry.GameMetrics) Option {
	return func(r *Room) { r.metrics = m }
}

// WithMoveDelay defers computer replies so the player sees their own move first.
func WithMoveDelay(d time.Duration) Option {
	return func(r *Room) { r.moveDelay = d }
}

func WithRand(rng *rand.Rand) Option {
	return func(r *Room) { r.rng = rng }
}

// NewRoom creates a room for p playing a match configured by cfg.
func NewRoom(id string, p *player.Player, cfg match.Config, opts ...Option) (*Room, error) {
	r := &Room{
		ID:        id,
		Player:    p,
		publisher: events.NopPublisher{},
		Done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	controller, err := match.NewController(cfg,
		match.WithListener(r),
		match.WithMoveDelay(r.moveDelay),
		match.WithRand(r.rng),
		match.WithLogger(slog.Default().With("room.id", id)),
	)
	if err != nil {
		return nil, err
	}
	r.controller = controller
	return r, nil
}

// Start sends the opening board and begins the heartbeat.
func (r *Room) Start(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "room.Start")
	defer span.End()
	span.SetAttributes(attribute.String("room.id", r.ID), attribute.String("player.id", r.Player.ID))

	if r.metrics != nil {
		r.metrics.Sessions.Add(ctx, 1)
	}
	state := r.controller.State()
	r.send(ctx, proto.NewUpdate(state))
	go r.heartbeat()

	slog.InfoContext(ctx, "room started", "room.id", r.ID, "player.id", r.Player.ID,
		"opponent", state.Config.Opponent, "difficulty", state.Config.Difficulty, "rounds", state.Config.Rounds)
}

// State returns the hosted match's current state.
func (r *Room) State() match.Snapshot {
	return r.controller.State()
}

// Close stops the match and closes the connection. It is safe to call more
// than once.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		r.controller.Close()
		_ = r.Player.Conn.Close()
		close(r.Done)
		if r.metrics != nil {
			r.metrics.Sessions.Add(context.Background(), -1)
		}
		slog.Info("room closed", "room.id", r.ID, "player.id", r.Player.ID)
	})
}

func (r *Room) heartbeat() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Done:
			return
		case <-ticker.C:
			if err := r.Player.Send(websocket.PingMessage, nil); err != nil {
				slog.Warn("Failed to send ping to player, assuming disconnect", "player.id", r.Player.ID, "error", err)
				r.Close()
				return
			}
		}
	}
}

func (r *Room) gameAttrs(extra ...attribute.KeyValue) metric.MeasurementOption {
	cfg := r.controller.State().Config
	attrs := append([]attribute.KeyValue{
		attribute.String("game.opponent", string(cfg.Opponent)),
		attribute.String("game.difficulty", string(cfg.Difficulty)),
	}, extra...)
	return metric.WithAttributes(attrs...)
}
