package bootstrap

import (
	"context"
	"log/slog"

	"github.com/greenhollow/almanac/internal/scheduler"
	"github.com/greenhollow/almanac/internal/server"
	"github.com/greenhollow/almanac/internal/sse"
	"github.com/greenhollow/almanac/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server         *server.Server
	Scheduler      *scheduler.Scheduler
	WorkerPool     *worker.Pool
	AutosaveWorker *worker.AutosaveWorker
	EventHub       *sse.Hub
}

// GracefulShutdown stops the application components in dependency order:
// the HTTP server stops accepting requests, the scheduler stops producing
// frame jobs, the pool drains, and the autosave worker runs its final save
// last so it captures whatever the remaining frames changed.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.AutosaveWorker != nil {
		if err := components.AutosaveWorker.Shutdown(ctx); err != nil {
			slog.Error("Autosave worker shutdown failed", "error", err)
		}
	}

	if components.EventHub != nil {
		components.EventHub.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
