package worker

import (
	"context"
	"sync"
	"time"

	"github.com/greenhollow/almanac/internal/logger"
	"github.com/greenhollow/almanac/internal/session"
)

// AutosaveWorker persists the session at a fixed real-time interval. Save
// failures are logged and retried on the next interval; they never stop the
// worker.
type AutosaveWorker struct {
	sess     *session.Session
	interval time.Duration
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewAutosaveWorker creates a new autosave worker.
func NewAutosaveWorker(sess *session.Session, interval time.Duration) *AutosaveWorker {
	return &AutosaveWorker{
		sess:     sess,
		interval: interval,
		shutdown: make(chan struct{}),
	}
}

// Start launches the autosave loop.
func (w *AutosaveWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.executeSave()
			case <-w.shutdown:
				return
			}
		}
	}()
}

// executeSave performs one save pass.
func (w *AutosaveWorker) executeSave() {
	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info(LogMsgAutosaveStarting)

	if err := w.sess.Save(ctx); err != nil {
		log.Error(LogMsgAutosaveFailed, "error", err)
		return
	}

	log.Info(LogMsgAutosaveCompleted)
}

// Shutdown stops the loop, then runs one final save so no progress since the
// last interval is lost.
func (w *AutosaveWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down autosave worker")

	select {
	case <-w.shutdown:
		// Already closed, nothing to do
	default:
		close(w.shutdown)
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn("Autosave worker shutdown timeout")
		return ctx.Err()
	}

	if err := w.sess.Save(ctx); err != nil {
		log.Error("Final save on shutdown failed", "error", err)
		return err
	}

	log.Info("Autosave worker shutdown complete")
	return nil
}
