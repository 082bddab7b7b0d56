package sse

import (
	"context"

	"github.com/greenhollow/almanac/internal/event"
)

// bridgedTypes is the set of bus event types relayed to SSE clients. The
// high-frequency time.updated stream is included deliberately: it carries the
// sub-minute fraction presentation layers need for smooth clock motion.
var bridgedTypes = []event.Type{
	event.TimeUpdated,
	event.DayChanged,
	event.SeasonChanged,
	event.YearChanged,
	event.PlantSpawned,
	event.PlantStageChanged,
	event.PlantHarvested,
	event.SessionSaved,
}

// AttachBus subscribes the hub to the engine's event bus so every bridged
// event is broadcast to connected SSE clients.
func AttachBus(hub *Hub, bus event.Bus) {
	for _, eventType := range bridgedTypes {
		t := eventType
		bus.Subscribe(t, func(ctx context.Context, evt event.Event) error {
			hub.Broadcast(string(t), evt.Payload)
			return nil
		})
	}
}
