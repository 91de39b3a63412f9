package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdu61/TicTacToe/internal/bot"
	"github.com/abdu61/TicTacToe/internal/config"
	"github.com/abdu61/TicTacToe/internal/db"
	"github.com/abdu61/TicTacToe/internal/events"
	"github.com/abdu61/TicTacToe/internal/hub"
	"github.com/abdu61/TicTacToe/internal/logger"
	"github.com/abdu61/TicTacToe/internal/match"
	"github.com/abdu61/TicTacToe/internal/room"
	"github.com/abdu61/TicTacToe/internal/server"
	"github.com/abdu61/TicTacToe/internal/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Init(level)

	metrics, err := telemetry.NewGameMetrics(otel.Meter("tic-tac-toe"))
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("failed to initialize redis: %v", err)
		}
		defer rdb.Close()
		publisher = events.NewRedisPublisher(rdb)
	} else {
		slog.Info("redis not configured, game events are not published")
	}

	defaults := match.DefaultConfig()
	defaults.Difficulty = bot.Difficulty(cfg.DefaultDifficulty)
	defaults.Rounds = cfg.DefaultRounds
	if defaults, err = defaults.Normalize(); err != nil {
		log.Fatalf("invalid default match config: %v", err)
	}

	// Create hub
	h := hub.NewHub(
		room.WithPublisher(publisher),
		room.WithMetrics(metrics),
		room.WithMoveDelay(cfg.ComputerMoveDelay),
	)
	go h.Run(ctx)

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewServer(h, defaults, &bot.BotMoveCalculator{})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "http.addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}
