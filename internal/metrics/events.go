package metrics

import (
	"context"

	"github.com/greenhollow/almanac/internal/domain"
	"github.com/greenhollow/almanac/internal/event"
)

// EventMetricsCollector subscribes to engine events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types the collector tracks
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.TimeUpdated,
		event.DayChanged,
		event.SeasonChanged,
		event.PlantSpawned,
		event.PlantHarvested,
		event.SessionSaved,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	switch evt.Type {
	case event.TimeUpdated:
		ClockTicks.Inc()

	case event.DayChanged:
		GameDays.Inc()

	case event.SeasonChanged:
		GameSeasons.Inc()

	case event.PlantSpawned:
		if instance, ok := evt.Payload.(domain.PlantInstance); ok {
			PlantsSpawned.WithLabelValues(instance.SpeciesID).Inc()
		}

	case event.PlantHarvested:
		if payload, ok := evt.Payload.(event.PlantHarvestedPayloadV1); ok {
			Harvests.WithLabelValues(payload.Result.SpeciesID).Inc()
		}

	case event.SessionSaved:
		Autosaves.Inc()
	}

	return nil
}
