package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/anoooon99999-netizen/online-button/internal/config"
	"github.com/anoooon99999-netizen/online-button/internal/http/http_server"
	"github.com/anoooon99999-netizen/online-button/internal/services/game"
	"github.com/anoooon99999-netizen/online-button/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. WebSockets hub: broadcast fan-out for the game core
	hub := ws.NewHub()

	// 4. Game service: state machine, sessions, rooms, scheduler
	gameService := game.NewGameService(hub, game.Options{
		CountdownStart:  cfg.CountdownStart,
		ButtonCount:     cfg.ButtonCount,
		ResetDelay:      time.Duration(cfg.ResetDelaySeconds) * time.Second,
		TickInterval:    time.Duration(cfg.TickIntervalMs) * time.Millisecond,
		DefaultMaxUsers: cfg.DefaultMaxUsers,
		MaxMessageLen:   cfg.MaxMessageLen,
	})

	// 5. Arm the first round; timers die with ctx
	gameService.Start(ctx)

	// 6. Initialize the WS server
	wsSrv := ws.NewWsServer(hub, gameService)

	// 7. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv, gameService)
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
