package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"github.com/abdu61/TicTacToe/internal/hub/types"
	"github.com/abdu61/TicTacToe/internal/room"
	"github.com/abdu61/TicTacToe/pkg/proto"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hub")

// Hub manages all the rooms.
type Hub struct {
	rooms      map[string]*room.Room
	register   chan *types.RegistrationRequest
	unregister chan *room.Room
	roomOpts   []room.Option
	roomCount  atomic.Int64
	done       chan struct{}
}

// NewHub creates a new hub. opts are applied to every room it opens.
func NewHub(opts ...room.Option) *Hub {
	return &Hub{
		rooms:      make(map[string]*room.Room),
		register:   make(chan *types.RegistrationRequest),
		unregister: make(chan *room.Room),
		roomOpts:   opts,
		done:       make(chan struct{}),
	}
}

// Run owns the room registry until ctx is done, then closes every room.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for id, r := range h.rooms {
			r.Close()
			delete(h.rooms, id)
		}
		h.roomCount.Store(0)
		close(h.done)
		slog.InfoContext(ctx, "hub stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case req := <-h.register:
			h.openRoom(ctx, req)

		case r := <-h.unregister:
			if _, ok := h.rooms[r.ID]; ok {
				delete(h.rooms, r.ID)
				h.roomCount.Store(int64(len(h.rooms)))
				slog.InfoContext(ctx, "Room closed", "room.id", r.ID, "player.id", r.Player.ID)
			}
		}
	}
}

func (h *Hub) openRoom(ctx context.Context, req *types.RegistrationRequest) {
	reqCtx := req.Ctx
	if reqCtx == nil {
		reqCtx = ctx
	}
	roomID := uuid.New().String()
	reqCtx, span := tracer.Start(reqCtx, "hub.openRoom", trace.WithAttributes(
		attribute.String("room.id", roomID),
		attribute.String("player.id", req.Player.ID),
	))
	defer span.End()

	r, err := room.NewRoom(roomID, req.Player, req.Config, h.roomOpts...)
	if err != nil {
		slog.WarnContext(reqCtx, "failed to open room", "player.id", req.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to open room")
		if data, err := json.Marshal(proto.NewError(err.Error())); err == nil {
			_ = req.Player.Send(websocket.TextMessage, data)
		}
		_ = req.Player.Conn.Close()
		return
	}

	h.rooms[roomID] = r
	h.roomCount.Store(int64(len(h.rooms)))
	r.Start(reqCtx)

	go func() {
		r.ReadPump(ctx)
		select {
		case h.unregister <- r:
		case <-h.done:
		}
	}()
}

// Register hands a connected player to the hub. It reports false when the
// hub has stopped.
func (h *Hub) Register(req *types.RegistrationRequest) bool {
	select {
	case h.register <- req:
		return true
	case <-h.done:
		return false
	}
}

// RoomCount is the number of open rooms.
func (h *Hub) RoomCount() int {
	return int(h.roomCount.Load())
}
