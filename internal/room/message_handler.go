package room

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/abdu61/TicTacToe/internal/events"
	"github.com/abdu61/TicTacToe/internal/game"
	"github.com/abdu61/TicTacToe/internal/match"
	"github.com/abdu61/TicTacToe/internal/validator"
	"github.com/abdu61/TicTacToe/pkg/proto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HandleMessage handles a message from the player. It acts as a dispatcher.
func (r *Room) HandleMessage(ctx context.Context, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.WarnContext(ctx, "error unmarshalling message", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		r.send(ctx, proto.NewError("malformed message"))
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		r.send(ctx, proto.NewError("invalid message: "+err.Error()))
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	var err error
	switch message.Type {
	case proto.TypeMove:
		err = r.handleMove(ctx, *message.Index)
	case proto.TypeConfig:
		err = r.controller.UpdateConfig(*message.Config)
	case proto.TypeNewMatch:
		r.controller.NewMatch()
	case proto.TypeNewRound:
		err = r.controller.NewRound()
	}
	if err != nil {
		slog.WarnContext(ctx, "rejected player request", "player.id", r.Player.ID, "message.type", message.Type, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Rejected player request")
		r.send(ctx, proto.NewError(err.Error()))
	}
}

func (r *Room) handleMove(ctx context.Context, index int) error {
	ctx, span := tracer.Start(ctx, "room.handleMove", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Int("move.index", index),
	))
	defer span.End()

	err := r.controller.SelectCell(index)
	span.SetAttributes(attribute.Bool("move.valid", err == nil))
	if err != nil && !errors.Is(err, game.ErrInvalidMove) {
		slog.ErrorContext(ctx, "unexpected error applying move", "room.id", r.ID, "error", err)
	}
	return err
}

// BoardChanged implements match.Listener.
func (r *Room) BoardChanged(state match.Snapshot) {
	ctx := context.Background()
	if r.metrics != nil && state.Board.MarkCount() > 0 {
		r.metrics.Moves.Add(ctx, 1)
	}
	r.send(ctx, proto.NewUpdate(state))
}

// RoundEnded implements match.Listener.
func (r *Room) RoundEnded(outcome match.Outcome, score match.Score) {
	ctx, span := tracer.Start(context.Background(), "room.RoundEnded", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("round.outcome", outcome.String()),
	))
	defer span.End()

	if r.metrics != nil {
		r.metrics.Rounds.Add(ctx, 1, r.gameAttrs(attribute.String("round.result", string(outcome.Result))))
	}
	r.send(ctx, proto.NewRoundEnded(outcome, score))

	r.publish(ctx, span, events.TypeRoundEnded, events.RoundEndedPayload{
		RoomID:  r.ID,
		Outcome: outcome,
		Score:   score,
	})
}

// MatchEnded implements match.Listener.
func (r *Room) MatchEnded(summary match.Summary) {
	ctx, span := tracer.Start(context.Background(), "room.MatchEnded", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("match.outcome", string(summary.Outcome)),
	))
	defer span.End()

	state := r.controller.State()
	if r.metrics != nil {
		r.metrics.Matches.Add(ctx, 1, r.gameAttrs(attribute.String("match.outcome", string(summary.Outcome))))
	}
	r.send(ctx, proto.NewMatchEnded(summary))
	r.publish(ctx, span, events.TypeMatchEnded, events.MatchEndedPayload{
		RoomID:   r.ID,
		Opponent: state.Config.Opponent,
		Summary:  summary,
	})
	slog.InfoContext(ctx, "match ended", "room.id", r.ID, "match.outcome", summary.Outcome,
		"score.player", summary.Score.Player, "score.opponent", summary.Score.Opponent)
}

func (r *Room) publish(ctx context.Context, span trace.Span, eventType string, payload any) {
	if err := r.publisher.Publish(ctx, eventType, payload); err != nil {
		slog.ErrorContext(ctx, "failed to publish event", "room.id", r.ID, "event", eventType, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish "+eventType+" event")
	}
}
