package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samirrijal/trainboard/internal/adapters/console"
	"github.com/samirrijal/trainboard/internal/adapters/http"
	natsadapter "github.com/samirrijal/trainboard/internal/adapters/nats"
	"github.com/samirrijal/trainboard/internal/adapters/valkey"
	"github.com/samirrijal/trainboard/internal/core/domain"
	"github.com/samirrijal/trainboard/internal/core/menu"
	"github.com/samirrijal/trainboard/internal/core/ports"
	"github.com/samirrijal/trainboard/internal/core/usecases"
	"github.com/samirrijal/trainboard/internal/pkg/config"
	"github.com/samirrijal/trainboard/internal/pkg/logging"
	"github.com/samirrijal/trainboard/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load("trainboard")
	if err != nil {
		log.Printf("load config: %v", err)
		return 1
	}

	// Structured logging; stdout belongs to the console
	logOut, closeLog, err := logging.Output(cfg.Log.Output)
	if err != nil {
		log.Printf("logging: %v", err)
		return 1
	}
	defer closeLog()
	logging.Setup(cfg.Log.Level, cfg.Log.Format, logOut)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	deps := &http.Dependencies{Version: version}

	// Board event feed
	var events ports.EventPublisher
	if cfg.NATS.URL != "" {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer pub.Close()
			events = pub
			deps.Events = pub
		}
	}

	// Display mirror
	var mirror ports.CacheService
	if cfg.Valkey.Addr != "" {
		cache, err := valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			defer cache.Close()
			mirror = cache
			deps.Mirror = cache
		}
	}

	// Status server
	if cfg.Metrics.Addr != "" {
		app := http.NewApp(deps)
		go func() {
			slog.Info("status server starting", "addr", cfg.Metrics.Addr)
			if err := app.Listen(cfg.Metrics.Addr); err != nil {
				slog.Error("status server stopped", "error", err)
			}
		}()
		defer func() {
			if err := app.ShutdownWithTimeout(3 * time.Second); err != nil {
				slog.Error("status server shutdown", "error", err)
			}
		}()
	}

	board := domain.NewBoard(domain.NewClockTime(cfg.Board.StartHour, cfg.Board.StartMinute))
	if cfg.Board.SeedDemo {
		seedDemo(board)
	}
	svc := usecases.NewBoardService(board, events, mirror, cfg.Valkey.TTLSeconds)
	svc.Mirror(ctx)

	ctl := menu.NewController(console.New(os.Stdin, os.Stdout), svc)
	if err := ctl.Run(ctx); err != nil {
		if errors.Is(err, domain.ErrInputClosed) || errors.Is(err, context.Canceled) {
			slog.Info("console closed", "reason", err)
		} else {
			slog.Error("board stopped", "error", err)
		}
		return 1
	}
	return 0
}

func seedDemo(b *domain.Board) {
	b.Append(domain.NewDeparture(domain.NewClockTime(16, 37), "L1", "Oslo S", 1))
	b.Append(domain.NewDeparture(domain.NewClockTime(18, 58), "L3", "Lillestrøm", 2))
}
