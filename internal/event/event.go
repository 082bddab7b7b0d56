package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/greenhollow/almanac/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Calendar and garden event types
const (
	TimeUpdated   Type = "time.updated"
	DayChanged    Type = "day.changed"
	SeasonChanged Type = "season.changed"
	YearChanged   Type = "year.changed"

	PlantStageChanged Type = "plant.stage.changed"
	PlantHarvested    Type = "plant.harvested"
	PlantSpawned      Type = "plant.spawned"

	SessionSaved Type = "session.saved"
)

// Typed event payloads for type safety

// TimeUpdatedPayloadV1 carries the current visual time on every tick, including
// the sub-minute fraction so presentation layers can render smooth motion.
type TimeUpdatedPayloadV1 struct {
	Time           domain.GameTime `json:"time"`
	FractionMinute float64         `json:"fraction_minute"`
}

// DayChangedPayloadV1 is published once per crossed day boundary.
type DayChangedPayloadV1 struct {
	Previous domain.CalendarStamp `json:"previous"`
	Current  domain.CalendarStamp `json:"current"`
}

// SeasonChangedPayloadV1 is published when the day change crosses a season boundary.
type SeasonChangedPayloadV1 struct {
	Previous domain.Season `json:"previous"`
	Current  domain.Season `json:"current"`
	Year     int           `json:"year"`
}

// YearChangedPayloadV1 is published when the season change crosses a year boundary.
type YearChangedPayloadV1 struct {
	Previous int `json:"previous"`
	Current  int `json:"current"`
}

// PlantStageChangedPayloadV1 notifies the host that a plant advanced a stage.
type PlantStageChangedPayloadV1 struct {
	InstanceID uuid.UUID `json:"instance_id"`
	SpeciesID  string    `json:"species_id"`
	RegionID   string    `json:"region_id"`
	OldStage   int       `json:"old_stage"`
	NewStage   int       `json:"new_stage"`
}

// PlantHarvestedPayloadV1 carries the harvest outcome.
type PlantHarvestedPayloadV1 struct {
	Result    domain.HarvestResult `json:"result"`
	Destroyed bool                 `json:"destroyed"`
}

// SessionSavedPayloadV1 is published after a successful autosave or explicit save.
type SessionSavedPayloadV1 struct {
	TotalMinutes int64 `json:"total_minutes"`
	PlantCount   int   `json:"plant_count"`
}

// Type-safe event constructors

// NewTimeUpdatedEvent creates a time update event with type-safe payload
func NewTimeUpdatedEvent(t domain.GameTime, fraction float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TimeUpdated,
		Payload: TimeUpdatedPayloadV1{Time: t, FractionMinute: fraction},
	}
}

// NewDayChangedEvent creates a day change event
func NewDayChangedEvent(previous, current domain.CalendarStamp) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DayChanged,
		Payload: DayChangedPayloadV1{Previous: previous, Current: current},
	}
}

// NewSeasonChangedEvent creates a season change event
func NewSeasonChangedEvent(previous, current domain.Season, year int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SeasonChanged,
		Payload: SeasonChangedPayloadV1{Previous: previous, Current: current, Year: year},
	}
}

// NewYearChangedEvent creates a year change event
func NewYearChangedEvent(previous, current int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    YearChanged,
		Payload: YearChangedPayloadV1{Previous: previous, Current: current},
	}
}

// NewPlantStageChangedEvent creates a stage change event
func NewPlantStageChangedEvent(instance *domain.PlantInstance, oldStage int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlantStageChanged,
		Payload: PlantStageChangedPayloadV1{
			InstanceID: instance.InstanceID,
			SpeciesID:  instance.SpeciesID,
			RegionID:   instance.RegionID,
			OldStage:   oldStage,
			NewStage:   instance.GrowthStage,
		},
	}
}

// NewPlantHarvestedEvent creates a harvest event
func NewPlantHarvestedEvent(result domain.HarvestResult, destroyed bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlantHarvested,
		Payload: PlantHarvestedPayloadV1{Result: result, Destroyed: destroyed},
	}
}

// NewSessionSavedEvent creates a session saved event
func NewSessionSavedEvent(totalMinutes int64, plantCount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SessionSaved,
		Payload: SessionSavedPayloadV1{TotalMinutes: totalMinutes, PlantCount: plantCount},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus. Handlers run
// synchronously in registration order, which keeps dispatch deterministic
// for the clock's boundary-event cascade.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
