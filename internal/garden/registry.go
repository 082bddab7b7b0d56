// Package garden owns the collection of live plant instances. It applies the
// growth engine to plants in the active region, relays boundary effects as
// events, and provides the flat-record serialization contract for the save
// collaborator.
package garden

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/greenhollow/almanac/internal/clock"
	"github.com/greenhollow/almanac/internal/domain"
	"github.com/greenhollow/almanac/internal/event"
	"github.com/greenhollow/almanac/internal/growth"
	"github.com/greenhollow/almanac/internal/logger"
	"github.com/greenhollow/almanac/internal/species"
)

// InitialWaterLevel is the water level a freshly planted instance starts at.
const InitialWaterLevel = 50

// Registry maps instance ids to plant instances and dispatches per-tick
// updates to plants in the active region only.
type Registry struct {
	mu       sync.Mutex
	catalog  *species.Catalog
	engine   *growth.Engine
	calendar clock.Config
	bus      event.Bus
	plants   map[uuid.UUID]*domain.PlantInstance
	statuses *statusCache
}

// NewRegistry creates an empty registry. The calendar config is used for
// day-granular bookkeeping (water decay is applied once per elapsed in-game
// day, not once per update tick).
func NewRegistry(catalog *species.Catalog, engine *growth.Engine, calendar clock.Config, bus event.Bus) *Registry {
	return &Registry{
		catalog:  catalog,
		engine:   engine,
		calendar: calendar,
		bus:      bus,
		plants:   make(map[uuid.UUID]*domain.PlantInstance),
		statuses: newStatusCache(),
	}
}

// Spawn creates a new plant instance in the given region, capturing the
// planting time once from the provided clock snapshot. Unknown species and
// out-of-season planting are reported as errors for the command surface to
// render; nothing is mutated in those cases.
func (r *Registry) Spawn(ctx context.Context, speciesID, regionID string, now domain.GameTime) (*domain.PlantInstance, error) {
	sp, ok := r.catalog.Get(speciesID)
	if !ok {
		return nil, domain.ErrSpeciesNotFound
	}
	if !sp.GrowsIn(now.Season) {
		return nil, domain.ErrOutOfSeason
	}

	instance := &domain.PlantInstance{
		InstanceID:   uuid.New(),
		SpeciesID:    sp.ID,
		RegionID:     regionID,
		PlantedAt:    now.Stamp(),
		WaterLevel:   InitialWaterLevel,
		Quality:      domain.QualityMin,
		LastDecayDay: int(r.calendar.AbsoluteDay(now.Stamp())),
	}

	r.mu.Lock()
	r.plants[instance.InstanceID] = instance
	snapshot := *instance
	r.mu.Unlock()

	r.publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.PlantSpawned,
		Payload: snapshot,
	})

	return &snapshot, nil
}

// Get returns a copy of the instance, or (nil, false) when unknown.
func (r *Registry) Get(instanceID uuid.UUID) (*domain.PlantInstance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	instance, ok := r.plants[instanceID]
	if !ok {
		return nil, false
	}
	snapshot := *instance
	return &snapshot, true
}

// List returns copies of all instances tagged with the region.
func (r *Registry) List(regionID string) []domain.PlantInstance {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PlantInstance
	for _, instance := range r.plants {
		if instance.RegionID == regionID {
			out = append(out, *instance)
		}
	}
	return out
}

// Count returns the number of live instances.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plants)
}

// Remove deletes an instance from the registry. Used after a single-harvest
// plant is consumed or when the underlying entity is removed by the host.
func (r *Registry) Remove(instanceID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plants[instanceID]; !ok {
		return false
	}
	delete(r.plants, instanceID)
	r.statuses.invalidate(instanceID)
	return true
}

// UpdateActiveRegion runs one update pass over every instance in the region:
// stage transition check, day-granular water decay, then readiness (derived
// on demand, nothing stored). All plants observe the same time snapshot.
func (r *Registry) UpdateActiveRegion(ctx context.Context, regionID string, now domain.GameTime) {
	var stageEvents []event.Event

	r.mu.Lock()
	today := int(r.calendar.AbsoluteDay(now.Stamp()))
	for _, instance := range r.plants {
		if instance.RegionID != regionID {
			continue
		}

		sp, ok := r.catalog.Get(instance.SpeciesID)
		if !ok {
			logger.FromContext(ctx).Warn("Plant references unknown species, skipping",
				"instance_id", instance.InstanceID, "species_id", instance.SpeciesID)
			continue
		}

		oldStage, newStage := r.engine.AdvanceStage(sp, instance, now.Stamp())
		if newStage != oldStage {
			stageEvents = append(stageEvents, event.NewPlantStageChangedEvent(instance, oldStage))
			r.statuses.invalidate(instance.InstanceID)
		}

		for instance.LastDecayDay < today {
			r.engine.ApplyDailyDecay(instance)
			instance.LastDecayDay++
			r.statuses.invalidate(instance.InstanceID)
		}
	}
	r.mu.Unlock()

	for _, evt := range stageEvents {
		r.publish(ctx, evt)
	}
}

// Water waters a plant. The boolean is false when the plant was already
// watered today; unknown ids are an error for the command surface.
func (r *Registry) Water(ctx context.Context, instanceID uuid.UUID) (bool, error) {
	return r.applyCare(instanceID, r.engine.Water)
}

// Fertilize fertilizes a plant. The boolean is false when fertilizer is
// already applied.
func (r *Registry) Fertilize(ctx context.Context, instanceID uuid.UUID) (bool, error) {
	return r.applyCare(instanceID, r.engine.Fertilize)
}

func (r *Registry) applyCare(instanceID uuid.UUID, care func(*domain.PlantInstance) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	instance, ok := r.plants[instanceID]
	if !ok {
		return false, domain.ErrPlantNotFound
	}
	applied := care(instance)
	if applied {
		r.statuses.invalidate(instanceID)
	}
	return applied, nil
}

// Harvest harvests a plant if it is ready. A nil result with a nil error
// means "not ready yet" - an ordinary gameplay outcome, not a failure.
// Single-harvest plants are removed from the registry on success.
func (r *Registry) Harvest(ctx context.Context, instanceID uuid.UUID, now domain.GameTime) (*domain.HarvestResult, error) {
	r.mu.Lock()
	instance, ok := r.plants[instanceID]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrPlantNotFound
	}

	sp, ok := r.catalog.Get(instance.SpeciesID)
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrSpeciesNotFound
	}

	result := r.engine.Harvest(sp, instance, now.Stamp())
	if result == nil {
		r.mu.Unlock()
		return nil, nil
	}

	destroyed := !sp.IsRecurringHarvest
	if destroyed {
		delete(r.plants, instanceID)
	}
	r.statuses.invalidate(instanceID)
	r.mu.Unlock()

	r.publish(ctx, event.NewPlantHarvestedEvent(*result, destroyed))
	return result, nil
}

// Snapshot returns the flat records the save collaborator persists. Every
// field needed to reconstruct state is included verbatim; nothing is
// re-derived from the clock on load.
func (r *Registry) Snapshot() []domain.PlantInstance {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := make([]domain.PlantInstance, 0, len(r.plants))
	for _, instance := range r.plants {
		records = append(records, *instance)
	}
	return records
}

// Restore replaces the registry contents with previously persisted records.
func (r *Registry) Restore(records []domain.PlantInstance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plants = make(map[uuid.UUID]*domain.PlantInstance, len(records))
	for i := range records {
		instance := records[i]
		r.plants[instance.InstanceID] = &instance
	}
	r.statuses.purge()
}

func (r *Registry) publish(ctx context.Context, evt event.Event) {
	if r.bus == nil {
		return
	}
	if err := r.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error("Garden event handler failed", "type", evt.Type, "error", err)
	}
}
