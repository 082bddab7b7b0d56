// Package session wires exactly one clock, pause controller and garden
// registry into a running game session. Components are passed explicitly;
// there is no ambient global state.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/greenhollow/almanac/internal/clock"
	"github.com/greenhollow/almanac/internal/domain"
	"github.com/greenhollow/almanac/internal/event"
	"github.com/greenhollow/almanac/internal/garden"
	"github.com/greenhollow/almanac/internal/growth"
	"github.com/greenhollow/almanac/internal/logger"
	"github.com/greenhollow/almanac/internal/pause"
	"github.com/greenhollow/almanac/internal/save"
	"github.com/greenhollow/almanac/internal/species"
)

// Save-slot keys for the feature modules' persisted state.
const (
	SaveKeyClock  = "clock"
	SaveKeyGarden = "garden"
)

// DefaultRegion is the active region before the host selects one.
const DefaultRegion = "overworld"

// WallClock abstracts the real-time source for deterministic tests.
type WallClock interface {
	Now() time.Time
}

// SystemClock reads the system wall clock.
type SystemClock struct{}

// Now returns the current time using the system clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Session owns one game session's worth of engine state.
type Session struct {
	clk    *clock.Clock
	paused *pause.Controller
	plants *garden.Registry
	bus    event.Bus
	store  save.Store
	wall   WallClock

	mu           sync.Mutex
	activeRegion string
}

// New builds a fully wired session. The pause controller gates the clock,
// and every transition out of a paused state rebaselines the clock's wall
// sample so paused intervals never count as elapsed game time.
func New(cfg clock.Config, catalog *species.Catalog, bus event.Bus, store save.Store, wall WallClock) *Session {
	if wall == nil {
		wall = SystemClock{}
	}

	controller := pause.NewController()
	clk := clock.New(cfg, bus, controller)
	controller.OnResume(clk.Rebaseline)

	engine := growth.NewEngine(clk.Config().SeasonLengthDays)
	registry := garden.NewRegistry(catalog, engine, clk.Config(), bus)

	return &Session{
		clk:          clk,
		paused:       controller,
		plants:       registry,
		bus:          bus,
		store:        store,
		wall:         wall,
		activeRegion: DefaultRegion,
	}
}

// Clock returns the session's clock.
func (s *Session) Clock() *clock.Clock {
	return s.clk
}

// Pause returns the session's pause controller.
func (s *Session) Pause() *pause.Controller {
	return s.paused
}

// Garden returns the session's plant registry.
func (s *Session) Garden() *garden.Registry {
	return s.plants
}

// SetActiveRegion selects the region whose plants receive per-tick updates.
func (s *Session) SetActiveRegion(regionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeRegion = regionID
}

// ActiveRegion returns the currently active region id.
func (s *Session) ActiveRegion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeRegion
}

// Update runs one frame's update pass: the clock advances first, then one
// time snapshot is taken and handed to the whole region update, so every
// plant in the pass observes the same current time.
func (s *Session) Update(ctx context.Context) {
	s.clk.Tick(ctx, s.wall.Now().UnixMilli())
	now := s.clk.CurrentTime()
	s.plants.UpdateActiveRegion(ctx, s.ActiveRegion(), now)
}

// Sleep jumps the clock to the start of the next day, clears any explicit
// pause, and runs a full region update so plants observe the new date
// immediately. Contextual pause sources are left untouched.
func (s *Session) Sleep(ctx context.Context) domain.GameTime {
	t := s.clk.SleepUntilNextDayStart(ctx)
	s.paused.Resume()
	s.plants.UpdateActiveRegion(ctx, s.ActiveRegion(), t)
	return t
}

// Save persists the clock and garden state under their save-slot keys and
// flushes the store if it supports flushing. The explicit pause flag lives
// in the controller at runtime, so it is folded into the clock snapshot
// here; contextual pause sources are transient and never persisted.
func (s *Session) Save(ctx context.Context) error {
	snap := s.clk.Snapshot()
	snap.IsPaused = snap.IsPaused || s.paused.IsExplicitlyPaused()
	if err := s.store.Set(SaveKeyClock, snap); err != nil {
		return fmt.Errorf("failed to persist clock state: %w", err)
	}

	records := s.plants.Snapshot()
	if err := s.store.Set(SaveKeyGarden, records); err != nil {
		return fmt.Errorf("failed to persist garden state: %w", err)
	}

	if flusher, ok := s.store.(interface{ Flush() error }); ok {
		if err := flusher.Flush(); err != nil {
			return fmt.Errorf("failed to flush save slot: %w", err)
		}
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewSessionSavedEvent(snap.TotalMinutes, len(records))); err != nil {
			logger.FromContext(ctx).Error("Session saved event handler failed", "error", err)
		}
	}
	return nil
}

// Load restores clock and garden state from the save slot. Missing keys are
// a fresh start: the session keeps its zero-state and no error is raised.
func (s *Session) Load(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var clockState clock.State
	found, err := s.store.Get(SaveKeyClock, &clockState)
	if err != nil {
		return fmt.Errorf("failed to load clock state: %w", err)
	}
	if found {
		// Route the persisted pause through the controller, not the
		// clock's own flag: RESUME and the HTTP surface drive only the
		// controller, so a clock-side flag would be unclearable.
		wasPaused := clockState.IsPaused
		clockState.IsPaused = false
		s.clk.Restore(clockState)
		if wasPaused {
			s.paused.Pause()
		}
	} else {
		log.Info("No saved clock state, starting fresh")
	}

	var records []domain.PlantInstance
	found, err = s.store.Get(SaveKeyGarden, &records)
	if err != nil {
		return fmt.Errorf("failed to load garden state: %w", err)
	}
	if found {
		s.plants.Restore(records)
	} else {
		log.Info("No saved garden state, starting fresh")
	}

	return nil
}
