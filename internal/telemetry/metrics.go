package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// GameMetrics holds the instruments recorded by game sessions.
type GameMetrics struct {
	Moves    metric.Int64Counter
	Rounds   metric.Int64Counter
	Matches  metric.Int64Counter
	Sessions metric.Int64UpDownCounter
}

func NewGameMetrics(meter metric.Meter) (*GameMetrics, error) {
	moves, err := meter.Int64Counter("ttt.moves",
		metric.WithDescription("Marks placed on a board, by either side."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create moves counter: %w", err)
	}
	rounds, err := meter.Int64Counter("ttt.rounds",
		metric.WithDescription("Rounds finished."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rounds counter: %w", err)
	}
	matches, err := meter.Int64Counter("ttt.matches",
		metric.WithDescription("Matches finished."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create matches counter: %w", err)
	}
	sessions, err := meter.Int64UpDownCounter("ttt.sessions.active",
		metric.WithDescription("Open websocket sessions."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions counter: %w", err)
	}

	return &GameMetrics{
		Moves:    moves,
		Rounds:   rounds,
		Matches:  matches,
		Sessions: sessions,
	}, nil
}
