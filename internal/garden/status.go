package garden

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/greenhollow/almanac/internal/domain"
)

// Status cache sizing. Status readouts are hammered by chat commands and the
// HTTP surface; entries are tiny and go stale within a couple of real
// seconds of game time anyway.
const (
	statusCacheSize = 512
	statusCacheTTL  = 2 * time.Second
)

// Status is the read-only per-plant readout relayed to presentation layers.
type Status struct {
	Instance       domain.PlantInstance `json:"instance"`
	SpeciesName    string               `json:"species_name"`
	StageCount     int                  `json:"stage_count"`
	DaysSincePlant int                  `json:"days_since_plant"`
	ReadyToHarvest bool                 `json:"ready_to_harvest"`
}

// cachedStatus wraps a status with the game minute it was computed at, so a
// hit from an older game minute is treated as a miss.
type cachedStatus struct {
	atMinute int64
	status   Status
}

type statusCache struct {
	lru *expirable.LRU[uuid.UUID, cachedStatus]
}

func newStatusCache() *statusCache {
	return &statusCache{
		lru: expirable.NewLRU[uuid.UUID, cachedStatus](statusCacheSize, nil, statusCacheTTL),
	}
}

func (c *statusCache) get(id uuid.UUID, atMinute int64) (Status, bool) {
	entry, ok := c.lru.Get(id)
	if !ok || entry.atMinute != atMinute {
		return Status{}, false
	}
	return entry.status, true
}

func (c *statusCache) set(id uuid.UUID, atMinute int64, status Status) {
	c.lru.Add(id, cachedStatus{atMinute: atMinute, status: status})
}

func (c *statusCache) invalidate(id uuid.UUID) {
	c.lru.Remove(id)
}

func (c *statusCache) purge() {
	c.lru.Purge()
}

// Status builds the readout for one plant at the given time snapshot.
func (r *Registry) Status(instanceID uuid.UUID, now domain.GameTime) (Status, error) {
	if status, ok := r.statuses.get(instanceID, now.TotalMinutes); ok {
		return status, nil
	}

	r.mu.Lock()
	instance, ok := r.plants[instanceID]
	if !ok {
		r.mu.Unlock()
		return Status{}, domain.ErrPlantNotFound
	}
	snapshot := *instance
	r.mu.Unlock()

	sp, ok := r.catalog.Get(snapshot.SpeciesID)
	if !ok {
		return Status{}, domain.ErrSpeciesNotFound
	}

	days := r.engine.DaysElapsed(snapshot.PlantedAt, now.Stamp())
	if days < 0 {
		days = 0
	}

	status := Status{
		Instance:       snapshot,
		SpeciesName:    sp.DisplayName,
		StageCount:     sp.GrowthStageCount,
		DaysSincePlant: days,
		ReadyToHarvest: r.engine.IsReadyToHarvest(sp, &snapshot, now.Stamp()),
	}
	r.statuses.set(instanceID, now.TotalMinutes, status)
	return status, nil
}
