package domain

import "github.com/google/uuid"

// Water, quality and yield tuning. These mirror the balance numbers the
// growth engine applies on care actions and harvests.
const (
	WaterLevelMax    = 100
	WaterPerCan      = 30
	WaterDecayPerDay = 10

	QualityMin     = 1.0
	QualityMax     = 3.0
	QualityPerCare = 0.5

	BaseYieldRecurring   = 1
	BaseYieldSingle      = 2
	FertilizerYieldBonus = 0.5
)

// PlantSpecies is immutable reference data describing how a species grows.
// Loaded once from the species catalog and shared read-only by every
// instance that references it.
type PlantSpecies struct {
	ID                  string   `json:"id" validate:"required"`
	DisplayName         string   `json:"display_name" validate:"required"`
	GrowthStageCount    int      `json:"growth_stage_count" validate:"min=1"`
	DaysPerStage        int      `json:"days_per_stage" validate:"min=1"`
	ValidSeasons        []Season `json:"valid_seasons" validate:"required,min=1,dive,min=0,max=3"`
	IsRecurringHarvest  bool     `json:"is_recurring_harvest"`
	HarvestIntervalDays int      `json:"harvest_interval_days" validate:"min=0"`
}

// GrowsIn reports whether the species can be planted in the given season.
func (s *PlantSpecies) GrowsIn(season Season) bool {
	for _, valid := range s.ValidSeasons {
		if valid == season {
			return true
		}
	}
	return false
}

// FinalStage is the index of the last growth stage.
func (s *PlantSpecies) FinalStage() int {
	return s.GrowthStageCount - 1
}

// BaseYield is the per-harvest base item count before bonuses.
func (s *PlantSpecies) BaseYield() int {
	if s.IsRecurringHarvest {
		return BaseYieldRecurring
	}
	return BaseYieldSingle
}

// PlantInstance is one planted entity. Owned by the garden registry; mutated
// only by care actions and the periodic region update.
type PlantInstance struct {
	InstanceID      uuid.UUID      `json:"instance_id"`
	SpeciesID       string         `json:"species_id"`
	RegionID        string         `json:"region_id"`
	PlantedAt       CalendarStamp  `json:"planted_at"`
	GrowthStage     int            `json:"growth_stage"`
	WaterLevel      int            `json:"water_level"`
	Quality         float64        `json:"quality"`
	WateredToday    bool           `json:"watered_today"`
	IsFertilized    bool           `json:"is_fertilized"`
	LastHarvestedAt *CalendarStamp `json:"last_harvested_at,omitempty"`
	HarvestCount    int            `json:"harvest_count"`

	// LastDecayDay is the absolute day index (days since clock epoch) on
	// which daily water decay was last applied. Decay is driven by elapsed
	// in-game days, not by update-tick frequency.
	LastDecayDay int `json:"last_decay_day"`
}

// HarvestResult describes the outcome of a successful harvest.
type HarvestResult struct {
	InstanceID   uuid.UUID     `json:"instance_id"`
	SpeciesID    string        `json:"species_id"`
	Yield        int           `json:"yield"`
	Quality      float64       `json:"quality"`
	HarvestCount int           `json:"harvest_count"`
	Recurring    bool          `json:"recurring"`
	HarvestedAt  CalendarStamp `json:"harvested_at"`
}
