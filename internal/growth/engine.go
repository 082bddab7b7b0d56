// Package growth derives a plant's growth stage and harvest readiness from
// elapsed game time. The engine is stateless: every computation is a pure
// function of (species, instance, current time), and mutation happens only
// in the explicit apply steps (Water, Fertilize, Harvest, ApplyDailyDecay).
package growth

import (
	"math"

	"github.com/greenhollow/almanac/internal/domain"
)

// Engine computes growth state. It carries only the calendar's season length,
// needed to convert calendar stamps into linear day counts.
type Engine struct {
	seasonLengthDays int
}

// NewEngine creates a growth engine for the given season length. Non-positive
// lengths are clamped to 1 so day arithmetic stays total.
func NewEngine(seasonLengthDays int) *Engine {
	if seasonLengthDays < 1 {
		seasonLengthDays = 1
	}
	return &Engine{seasonLengthDays: seasonLengthDays}
}

// DaysElapsed returns the number of in-game days between two calendar stamps
// under the linear four-season model. The result is negative when "to"
// precedes "from" in calendar order; callers treat that as "not yet grown".
func (e *Engine) DaysElapsed(from, to domain.CalendarStamp) int {
	return (to.Year-from.Year)*domain.SeasonsPerYear*e.seasonLengthDays +
		(int(to.Season)-int(from.Season))*e.seasonLengthDays +
		(to.Day - from.Day)
}

// ComputeStage maps elapsed days onto a growth stage. Monotonic
// non-decreasing in daysElapsed and capped at the species' final stage.
func (e *Engine) ComputeStage(species *domain.PlantSpecies, daysElapsed int) int {
	if daysElapsed < 0 {
		daysElapsed = 0
	}
	stage := daysElapsed / species.DaysPerStage
	if stage > species.FinalStage() {
		return species.FinalStage()
	}
	return stage
}

// AdvanceStage recomputes the stage from planting time and writes it back if
// it grew. Stages never regress; a stored stage ahead of the computed one
// (e.g. after a season-wraparound save edit) is left alone.
func (e *Engine) AdvanceStage(species *domain.PlantSpecies, instance *domain.PlantInstance, now domain.CalendarStamp) (oldStage, newStage int) {
	oldStage = instance.GrowthStage
	computed := e.ComputeStage(species, e.DaysElapsed(instance.PlantedAt, now))
	if computed > instance.GrowthStage {
		instance.GrowthStage = computed
	}
	return oldStage, instance.GrowthStage
}

// IsReadyToHarvest reports whether the plant can be harvested right now.
// Non-recurring species are ready unconditionally once at the final stage;
// recurring species additionally respect the cooldown since the last harvest.
func (e *Engine) IsReadyToHarvest(species *domain.PlantSpecies, instance *domain.PlantInstance, now domain.CalendarStamp) bool {
	if instance.GrowthStage != species.FinalStage() {
		return false
	}
	if !species.IsRecurringHarvest {
		return true
	}
	if instance.LastHarvestedAt == nil {
		return true
	}
	return e.DaysElapsed(*instance.LastHarvestedAt, now) >= species.HarvestIntervalDays
}

// ApplyDailyDecay applies one day's worth of water loss and clears the
// watered flag. Callers invoke this exactly once per elapsed in-game day;
// the garden registry tracks the last processed day per instance.
func (e *Engine) ApplyDailyDecay(instance *domain.PlantInstance) {
	if !instance.WateredToday {
		instance.WaterLevel -= domain.WaterDecayPerDay
		if instance.WaterLevel < 0 {
			instance.WaterLevel = 0
		}
	}
	instance.WateredToday = false
}

// Water waters the plant once per in-game day. Returns false without
// mutating anything when the plant was already watered today.
func (e *Engine) Water(instance *domain.PlantInstance) bool {
	if instance.WateredToday {
		return false
	}
	instance.WaterLevel += domain.WaterPerCan
	if instance.WaterLevel > domain.WaterLevelMax {
		instance.WaterLevel = domain.WaterLevelMax
	}
	instance.WateredToday = true
	bumpQuality(instance)
	return true
}

// Fertilize marks the plant fertilized. Returns false without mutating
// anything when fertilizer is already applied and not yet consumed by a
// harvest.
func (e *Engine) Fertilize(instance *domain.PlantInstance) bool {
	if instance.IsFertilized {
		return false
	}
	instance.IsFertilized = true
	bumpQuality(instance)
	return true
}

// Harvest collects the plant's yield if it is ready, recording the harvest
// time and count. Returns nil when the plant is not ready. For recurring
// species the fertilizer is consumed and the plant keeps growing; for
// single-harvest species the caller is responsible for removing the instance.
func (e *Engine) Harvest(species *domain.PlantSpecies, instance *domain.PlantInstance, now domain.CalendarStamp) *domain.HarvestResult {
	if !e.IsReadyToHarvest(species, instance, now) {
		return nil
	}

	multiplier := 1.0 + float64(instance.WaterLevel)/float64(domain.WaterLevelMax)
	if instance.IsFertilized {
		multiplier += domain.FertilizerYieldBonus
	}
	yield := int(math.Floor(float64(species.BaseYield()) * multiplier))

	harvestedAt := now
	instance.LastHarvestedAt = &harvestedAt
	instance.HarvestCount++
	if species.IsRecurringHarvest {
		instance.IsFertilized = false
	}

	return &domain.HarvestResult{
		InstanceID:   instance.InstanceID,
		SpeciesID:    instance.SpeciesID,
		Yield:        yield,
		Quality:      instance.Quality,
		HarvestCount: instance.HarvestCount,
		Recurring:    species.IsRecurringHarvest,
		HarvestedAt:  harvestedAt,
	}
}

func bumpQuality(instance *domain.PlantInstance) {
	instance.Quality += domain.QualityPerCare
	if instance.Quality > domain.QualityMax {
		instance.Quality = domain.QualityMax
	}
}
