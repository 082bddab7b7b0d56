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

	"github.com/greenhollow/almanac/internal/bootstrap"
	"github.com/greenhollow/almanac/internal/command"
	"github.com/greenhollow/almanac/internal/config"
	"github.com/greenhollow/almanac/internal/event"
	"github.com/greenhollow/almanac/internal/handler"
	"github.com/greenhollow/almanac/internal/save"
	"github.com/greenhollow/almanac/internal/scheduler"
	"github.com/greenhollow/almanac/internal/server"
	"github.com/greenhollow/almanac/internal/session"
	"github.com/greenhollow/almanac/internal/species"
	"github.com/greenhollow/almanac/internal/sse"
	"github.com/greenhollow/almanac/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg, cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	frameInterval, err := time.ParseDuration(cfg.FrameInterval)
	if err != nil {
		slog.Error("Invalid frame interval", "value", cfg.FrameInterval, "error", err)
		os.Exit(1)
	}

	catalog, err := species.Load(cfg.SpeciesCatalogPath)
	if err != nil {
		slog.Error("Failed to load species catalog", "path", cfg.SpeciesCatalogPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Species catalog loaded", "species", catalog.Len())

	store, err := save.NewFileStore(cfg.SaveSlotPath)
	if err != nil {
		slog.Error("Failed to open save slot", "path", cfg.SaveSlotPath, "error", err)
		os.Exit(1)
	}

	bus := event.NewMemoryBus()
	bootstrap.RegisterEventHandlers(bus)

	hub := sse.NewHub()
	hub.Start()
	sse.AttachBus(hub, bus)

	sess := session.New(cfg.Clock, catalog, bus, store, nil)

	ctx := context.Background()
	if err := sess.Load(ctx); err != nil {
		slog.Error("Failed to load session from save slot", "error", err)
		os.Exit(1)
	}

	// One worker keeps frame updates strictly serialized.
	pool := worker.NewPool(1, 4)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(frameInterval, worker.NewUpdateJob(sess))

	autosave := worker.NewAutosaveWorker(sess, time.Duration(cfg.AutosaveMinutes)*time.Minute)
	autosave.Start()

	health := handler.HealthCheckerFunc(func(ctx context.Context) error {
		if catalog.Len() == 0 {
			return errors.New("species catalog is empty")
		}
		return nil
	})

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, server.Deps{
		Session:     sess,
		CommandSvc:  command.NewService(sess),
		Catalog:     catalog,
		Health:      health,
		EventHub:    hub,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:         srv,
		Scheduler:      sched,
		WorkerPool:     pool,
		AutosaveWorker: autosave,
		EventHub:       hub,
	})
}
