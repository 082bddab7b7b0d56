package clock

import (
	"context"
	"math"
	"sync"

	"github.com/greenhollow/almanac/internal/domain"
	"github.com/greenhollow/almanac/internal/event"
	"github.com/greenhollow/almanac/internal/logger"
)

// PauseGate reports whether some external condition (an open menu, an active
// battle) should currently stop the clock. Composed with the clock's own
// explicit pause flag.
type PauseGate interface {
	IsPaused() bool
}

// Clock owns the authoritative game-minute counter and derives the calendar
// from it. Advancement is gated by the explicit pause flag, the contextual
// pause gate, and the day-end cutoff; boundary crossings are published on
// the event bus in registration order.
//
// Events are published after the internal lock is released, so handlers may
// safely call back into the clock.
type Clock struct {
	mu   sync.Mutex
	cfg  Config
	bus  event.Bus
	gate PauseGate

	totalMinutes int64
	carry        float64 // fractional game-minute remainder, in [0,1)
	lastSampleMs int64
	hasSample    bool
	isPaused     bool
}

// State is the persisted portion of the clock's runtime state. Wall-clock
// samples and the fractional carry are never persisted; they are rebuilt on
// the first tick after a restore.
type State struct {
	TotalMinutes int64 `json:"total_minutes"`
	IsPaused     bool  `json:"is_paused"`
}

// New creates a clock at minute zero. The config is normalized before use,
// so malformed parameters never reach the tick path. gate may be nil.
func New(cfg Config, bus event.Bus, gate PauseGate) *Clock {
	return &Clock{
		cfg:  cfg.Normalize(),
		bus:  bus,
		gate: gate,
	}
}

// Config returns the normalized calendar configuration.
func (c *Clock) Config() Config {
	return c.cfg
}

// Tick advances the clock according to elapsed unpaused wall-clock time.
// Sub-second calls are ignored. While paused or at the day-end cutoff, the
// wall sample still advances so the idle interval is never credited later.
func (c *Clock) Tick(ctx context.Context, nowWallClockMs int64) {
	c.mu.Lock()

	if !c.hasSample {
		c.lastSampleMs = nowWallClockMs
		c.hasSample = true
		c.mu.Unlock()
		return
	}

	elapsedMs := nowWallClockMs - c.lastSampleMs
	if elapsedMs < 1000 {
		c.mu.Unlock()
		return
	}

	if c.paused() || c.atDayLimit() {
		c.lastSampleMs = nowWallClockMs
		c.mu.Unlock()
		return
	}

	c.lastSampleMs = nowWallClockMs
	c.carry += float64(elapsedMs) / 1000.0 * c.cfg.MinutesPerRealSecond()

	wholeMinutes := int64(math.Floor(c.carry))
	c.carry -= float64(wholeMinutes)

	var events []event.Event
	if wholeMinutes > 0 {
		events = c.advance(wholeMinutes)
	}

	t := c.cfg.TimeFromMinutes(c.totalMinutes)
	events = append(events, event.NewTimeUpdatedEvent(t, c.carry))
	c.mu.Unlock()

	c.publish(ctx, events)
}

// CurrentTime derives the calendar view of the current minute counter.
// Pure and side-effect-free; safe to call at any point between ticks.
func (c *Clock) CurrentTime() domain.GameTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.TimeFromMinutes(c.totalMinutes)
}

// Pause stops clock advancement until Resume is called.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isPaused = true
}

// Resume clears the explicit pause and discards the stale wall sample, so
// the paused interval is never converted into game minutes.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isPaused = false
	c.hasSample = false
}

// IsPaused reports whether the clock is currently gated, explicitly or
// contextually.
func (c *Clock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused()
}

// Rebaseline discards the current wall sample. Called on every transition
// out of a contextual pause so the next tick measures from "now".
func (c *Clock) Rebaseline() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasSample = false
}

// AtDayLimit reports whether the in-day hour has reached the day-end cutoff.
// While true, ticks do not advance time; only SleepUntilNextDayStart crosses
// the boundary.
func (c *Clock) AtDayLimit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.atDayLimit()
}

// SleepUntilNextDayStart jumps the counter to the configured start hour of
// the following day, bypassing the tick throttle. Resets the fractional
// carry, force-resumes, and raises the full boundary cascade just as a
// normal tick would.
func (c *Clock) SleepUntilNextDayStart(ctx context.Context) domain.GameTime {
	c.mu.Lock()

	minutesIntoDay := c.totalMinutes % domain.MinutesPerDay
	jump := (domain.MinutesPerDay - minutesIntoDay) + int64(c.cfg.DayStartHour)*60

	c.carry = 0
	c.hasSample = false
	c.isPaused = false
	events := c.advance(jump)

	t := c.cfg.TimeFromMinutes(c.totalMinutes)
	events = append(events, event.NewTimeUpdatedEvent(t, 0))
	c.mu.Unlock()

	c.publish(ctx, events)
	return t
}

// Snapshot returns the persistable clock state.
func (c *Clock) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{TotalMinutes: c.totalMinutes, IsPaused: c.isPaused}
}

// Restore replaces the runtime state with a previously persisted snapshot.
// This is the only path on which the minute counter may move backwards.
func (c *Clock) Restore(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := state.TotalMinutes
	if total < 0 {
		logger.FromContext(context.Background()).Error("Restored total_minutes negative, clamping to zero",
			"total_minutes", total)
		total = 0
	}

	c.totalMinutes = total
	c.isPaused = state.IsPaused
	c.carry = 0
	c.hasSample = false
}

func (c *Clock) paused() bool {
	if c.isPaused {
		return true
	}
	return c.gate != nil && c.gate.IsPaused()
}

func (c *Clock) atDayLimit() bool {
	minuteOfDay := c.totalMinutes % domain.MinutesPerDay
	return int(minuteOfDay/60) >= c.cfg.DayEndHour
}

// advance moves the counter forward and collects the day/season/year change
// events derived from the crossing. Callers hold the mutex.
func (c *Clock) advance(minutes int64) []event.Event {
	before := c.cfg.TimeFromMinutes(c.totalMinutes)
	c.totalMinutes += minutes
	after := c.cfg.TimeFromMinutes(c.totalMinutes)

	if before.Stamp() == after.Stamp() {
		return nil
	}

	events := []event.Event{event.NewDayChangedEvent(before.Stamp(), after.Stamp())}
	if before.Season != after.Season {
		events = append(events, event.NewSeasonChangedEvent(before.Season, after.Season, after.Year))
	}
	if before.Year != after.Year {
		events = append(events, event.NewYearChangedEvent(before.Year, after.Year))
	}
	return events
}

func (c *Clock) publish(ctx context.Context, events []event.Event) {
	if c.bus == nil {
		return
	}
	for _, evt := range events {
		if err := c.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Error("Clock event handler failed", "type", evt.Type, "error", err)
		}
	}
}
