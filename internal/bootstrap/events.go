package bootstrap

import (
	"context"
	"log/slog"

	"github.com/greenhollow/almanac/internal/event"
	"github.com/greenhollow/almanac/internal/metrics"
)

// RegisterEventHandlers sets up the engine-wide event subscribers:
// the metrics collector, and an info-level log line per calendar boundary.
// Handlers run synchronously in registration order, so the log subscriber
// observes every boundary the clock publishes.
func RegisterEventHandlers(bus event.Bus) {
	metricsCollector := metrics.NewEventMetricsCollector()
	metricsCollector.Register(bus)
	slog.Info(LogMsgMetricsRegistered)

	bus.Subscribe(event.DayChanged, logDayChanged)
	bus.Subscribe(event.SeasonChanged, logSeasonChanged)
	bus.Subscribe(event.YearChanged, logYearChanged)
}

func logDayChanged(ctx context.Context, evt event.Event) error {
	if payload, ok := evt.Payload.(event.DayChangedPayloadV1); ok {
		slog.Info(LogMsgDayChanged, "date", payload.Current.String())
	}
	return nil
}

func logSeasonChanged(ctx context.Context, evt event.Event) error {
	if payload, ok := evt.Payload.(event.SeasonChangedPayloadV1); ok {
		slog.Info(LogMsgSeasonChanged, "season", payload.Current.String(), "year", payload.Year)
	}
	return nil
}

func logYearChanged(ctx context.Context, evt event.Event) error {
	if payload, ok := evt.Payload.(event.YearChangedPayloadV1); ok {
		slog.Info(LogMsgYearChanged, "year", payload.Current)
	}
	return nil
}
