package garden_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/almanac/internal/clock"
	"github.com/greenhollow/almanac/internal/domain"
	"github.com/greenhollow/almanac/internal/event"
	"github.com/greenhollow/almanac/internal/garden"
	"github.com/greenhollow/almanac/internal/growth"
	"github.com/greenhollow/almanac/internal/species"
)

type recordingBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *recordingBus) Publish(ctx context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return nil
}

func (b *recordingBus) Subscribe(eventType event.Type, handler event.Handler) {}

func (b *recordingBus) byType(eventType event.Type) []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []event.Event
	for _, evt := range b.events {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

func newTestRegistry(t *testing.T) (*garden.Registry, clock.Config, *recordingBus) {
	t.Helper()
	catalog, err := species.NewCatalog(species.DefaultSpecies())
	require.NoError(t, err)

	cfg := clock.DefaultConfig()
	bus := &recordingBus{}
	return garden.NewRegistry(catalog, growth.NewEngine(cfg.SeasonLengthDays), cfg, bus), cfg, bus
}

func springDay(cfg clock.Config, day, hour int) domain.GameTime {
	return cfg.TimeFromMinutes(int64(day-1)*domain.MinutesPerDay + int64(hour)*60)
}

func TestRegistry_Spawn(t *testing.T) {
	reg, cfg, bus := newTestRegistry(t)
	now := springDay(cfg, 1, 8)

	instance, err := reg.Spawn(context.Background(), "turnip", "farm", now)
	require.NoError(t, err)

	assert.Equal(t, "turnip", instance.SpeciesID)
	assert.Equal(t, "farm", instance.RegionID)
	assert.Equal(t, now.Stamp(), instance.PlantedAt)
	assert.Equal(t, 0, instance.GrowthStage)
	assert.Equal(t, garden.InitialWaterLevel, instance.WaterLevel)
	assert.InDelta(t, domain.QualityMin, instance.Quality, 0.001)

	got, ok := reg.Get(instance.InstanceID)
	require.True(t, ok)
	assert.Equal(t, *instance, *got)

	spawned := bus.byType(event.PlantSpawned)
	require.Len(t, spawned, 1)
	payload, ok := spawned[0].Payload.(domain.PlantInstance)
	require.True(t, ok)
	assert.Equal(t, instance.InstanceID, payload.InstanceID)
}

func TestRegistry_SpawnUnknownSpecies(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)

	_, err := reg.Spawn(context.Background(), "mandrake", "farm", springDay(cfg, 1, 8))
	assert.ErrorIs(t, err, domain.ErrSpeciesNotFound)
	assert.Equal(t, 0, reg.Count())
}

func TestRegistry_SpawnOutOfSeason(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)

	// Pumpkins only grow in autumn; day 1 is spring.
	_, err := reg.Spawn(context.Background(), "pumpkin", "farm", springDay(cfg, 1, 8))
	assert.ErrorIs(t, err, domain.ErrOutOfSeason)
	assert.Equal(t, 0, reg.Count())
}

func TestRegistry_ListFiltersByRegion(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)
	now := springDay(cfg, 1, 8)

	_, err := reg.Spawn(context.Background(), "turnip", "farm", now)
	require.NoError(t, err)
	_, err = reg.Spawn(context.Background(), "potato", "farm", now)
	require.NoError(t, err)
	_, err = reg.Spawn(context.Background(), "turnip", "greenhouse", now)
	require.NoError(t, err)

	assert.Len(t, reg.List("farm"), 2)
	assert.Len(t, reg.List("greenhouse"), 1)
	assert.Empty(t, reg.List("cellar"))
	assert.Equal(t, 3, reg.Count())
}

func TestRegistry_UpdateAdvancesStageAndPublishes(t *testing.T) {
	reg, cfg, bus := newTestRegistry(t)

	instance, err := reg.Spawn(context.Background(), "turnip", "farm", springDay(cfg, 1, 8))
	require.NoError(t, err)

	// Two days later the turnip (2 days per stage) reaches stage 1.
	reg.UpdateActiveRegion(context.Background(), "farm", springDay(cfg, 3, 8))

	got, ok := reg.Get(instance.InstanceID)
	require.True(t, ok)
	assert.Equal(t, 1, got.GrowthStage)

	stageEvents := bus.byType(event.PlantStageChanged)
	require.Len(t, stageEvents, 1)
	payload, ok := stageEvents[0].Payload.(event.PlantStageChangedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, 0, payload.OldStage)
	assert.Equal(t, 1, payload.NewStage)
}

func TestRegistry_UpdateSkipsOtherRegions(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)

	instance, err := reg.Spawn(context.Background(), "turnip", "greenhouse", springDay(cfg, 1, 8))
	require.NoError(t, err)

	reg.UpdateActiveRegion(context.Background(), "farm", springDay(cfg, 10, 8))

	got, ok := reg.Get(instance.InstanceID)
	require.True(t, ok)
	assert.Equal(t, 0, got.GrowthStage)
	assert.Equal(t, garden.InitialWaterLevel, got.WaterLevel)
}

func TestRegistry_DecayOncePerElapsedDay(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)

	instance, err := reg.Spawn(context.Background(), "turnip", "farm", springDay(cfg, 1, 8))
	require.NoError(t, err)

	// Many ticks within the same game day apply no decay.
	for hour := 9; hour <= 20; hour++ {
		reg.UpdateActiveRegion(context.Background(), "farm", springDay(cfg, 1, hour))
	}
	got, _ := reg.Get(instance.InstanceID)
	assert.Equal(t, garden.InitialWaterLevel, got.WaterLevel)

	// One tick three days later applies three days of decay.
	reg.UpdateActiveRegion(context.Background(), "farm", springDay(cfg, 4, 8))
	got, _ = reg.Get(instance.InstanceID)
	assert.Equal(t, garden.InitialWaterLevel-3*domain.WaterDecayPerDay, got.WaterLevel)

	// The same day seen again applies nothing further.
	reg.UpdateActiveRegion(context.Background(), "farm", springDay(cfg, 4, 20))
	got, _ = reg.Get(instance.InstanceID)
	assert.Equal(t, garden.InitialWaterLevel-3*domain.WaterDecayPerDay, got.WaterLevel)
}

func TestRegistry_WateringBlocksDecayForThatDay(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)

	instance, err := reg.Spawn(context.Background(), "turnip", "farm", springDay(cfg, 1, 8))
	require.NoError(t, err)

	applied, err := reg.Water(context.Background(), instance.InstanceID)
	require.NoError(t, err)
	require.True(t, applied)

	reg.UpdateActiveRegion(context.Background(), "farm", springDay(cfg, 2, 8))

	got, _ := reg.Get(instance.InstanceID)
	assert.Equal(t, garden.InitialWaterLevel+domain.WaterPerCan, got.WaterLevel)
	assert.False(t, got.WateredToday, "watered flag resets at the day boundary")
}

func TestRegistry_CareOnUnknownPlant(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	_, err := reg.Water(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrPlantNotFound)

	_, err = reg.Fertilize(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrPlantNotFound)
}

func TestRegistry_HarvestSingleUseRemovesPlant(t *testing.T) {
	reg, cfg, bus := newTestRegistry(t)

	instance, err := reg.Spawn(context.Background(), "turnip", "farm", springDay(cfg, 1, 8))
	require.NoError(t, err)

	// Turnip: 3 stages at 2 days per stage, mature after 4 days.
	mature := springDay(cfg, 6, 8)
	reg.UpdateActiveRegion(context.Background(), "farm", mature)

	result, err := reg.Harvest(context.Background(), instance.InstanceID, mature)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Recurring)
	assert.Positive(t, result.Yield)

	_, ok := reg.Get(instance.InstanceID)
	assert.False(t, ok, "single-harvest plant should be removed")

	harvested := bus.byType(event.PlantHarvested)
	require.Len(t, harvested, 1)
	payload, ok := harvested[0].Payload.(event.PlantHarvestedPayloadV1)
	require.True(t, ok)
	assert.True(t, payload.Destroyed)
}

func TestRegistry_HarvestRecurringKeepsPlant(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)

	// Berry bush grows in spring: 5 stages at 2 days per stage.
	instance, err := reg.Spawn(context.Background(), "berry_bush", "farm", springDay(cfg, 1, 8))
	require.NoError(t, err)

	mature := springDay(cfg, 10, 8)
	reg.UpdateActiveRegion(context.Background(), "farm", mature)

	result, err := reg.Harvest(context.Background(), instance.InstanceID, mature)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Recurring)

	got, ok := reg.Get(instance.InstanceID)
	require.True(t, ok, "recurring plant should survive harvest")
	assert.Equal(t, 1, got.HarvestCount)

	// Immediately re-harvesting is "not ready", not an error.
	again, err := reg.Harvest(context.Background(), instance.InstanceID, mature)
	require.NoError(t, err)
	assert.Nil(t, again)

	// After the harvest interval (4 days) it is ready again.
	later := springDay(cfg, 14, 8)
	reg.UpdateActiveRegion(context.Background(), "farm", later)
	result, err = reg.Harvest(context.Background(), instance.InstanceID, later)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.HarvestCount)
}

func TestRegistry_HarvestNotReadyReturnsNilNil(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)

	instance, err := reg.Spawn(context.Background(), "turnip", "farm", springDay(cfg, 1, 8))
	require.NoError(t, err)

	result, err := reg.Harvest(context.Background(), instance.InstanceID, springDay(cfg, 2, 8))
	require.NoError(t, err)
	assert.Nil(t, result)

	_, ok := reg.Get(instance.InstanceID)
	assert.True(t, ok)
}

func TestRegistry_SnapshotRestoreRoundTrip(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)
	now := springDay(cfg, 1, 8)

	a, err := reg.Spawn(context.Background(), "turnip", "farm", now)
	require.NoError(t, err)
	b, err := reg.Spawn(context.Background(), "potato", "greenhouse", now)
	require.NoError(t, err)

	applied, err := reg.Water(context.Background(), a.InstanceID)
	require.NoError(t, err)
	require.True(t, applied)

	records := reg.Snapshot()
	require.Len(t, records, 2)

	other, _, _ := newTestRegistry(t)
	other.Restore(records)

	assert.Equal(t, 2, other.Count())
	gotA, ok := other.Get(a.InstanceID)
	require.True(t, ok)
	assert.Equal(t, garden.InitialWaterLevel+domain.WaterPerCan, gotA.WaterLevel)
	assert.True(t, gotA.WateredToday)

	gotB, ok := other.Get(b.InstanceID)
	require.True(t, ok)
	assert.Equal(t, "greenhouse", gotB.RegionID)
}

func TestRegistry_Status(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)

	instance, err := reg.Spawn(context.Background(), "turnip", "farm", springDay(cfg, 1, 8))
	require.NoError(t, err)

	now := springDay(cfg, 3, 8)
	reg.UpdateActiveRegion(context.Background(), "farm", now)

	status, err := reg.Status(instance.InstanceID, now)
	require.NoError(t, err)
	assert.Equal(t, "Turnip", status.SpeciesName)
	assert.Equal(t, 3, status.StageCount)
	assert.Equal(t, 2, status.DaysSincePlant)
	assert.Equal(t, 1, status.Instance.GrowthStage)
	assert.False(t, status.ReadyToHarvest)

	// A second readout at the same minute is served from cache and identical.
	cached, err := reg.Status(instance.InstanceID, now)
	require.NoError(t, err)
	assert.Equal(t, status, cached)
}

func TestRegistry_StatusUnknownPlant(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)

	_, err := reg.Status(uuid.New(), springDay(cfg, 1, 8))
	assert.ErrorIs(t, err, domain.ErrPlantNotFound)
}

func TestRegistry_Remove(t *testing.T) {
	reg, cfg, _ := newTestRegistry(t)

	instance, err := reg.Spawn(context.Background(), "turnip", "farm", springDay(cfg, 1, 8))
	require.NoError(t, err)

	assert.True(t, reg.Remove(instance.InstanceID))
	assert.False(t, reg.Remove(instance.InstanceID))
	assert.Equal(t, 0, reg.Count())
}
