// Package species owns the immutable plant species catalog. The catalog is
// loaded once at startup and shared read-only by every plant instance.
package species

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/greenhollow/almanac/internal/domain"
)

// Catalog is a read-only lookup of plant species by id.
type Catalog struct {
	byID map[string]*domain.PlantSpecies
}

// Load reads a species catalog from a JSON file. A missing file is not an
// error: the built-in default catalog is returned so a fresh install works
// without configuration.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCatalog(DefaultSpecies())
		}
		return nil, fmt.Errorf("failed to read species catalog: %w", err)
	}

	var records []domain.PlantSpecies
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse species catalog: %w", err)
	}

	return NewCatalog(records)
}

// NewCatalog validates the records and builds the lookup. Duplicate ids and
// invalid field values are rejected; a recurring species must declare a
// positive harvest interval.
func NewCatalog(records []domain.PlantSpecies) (*Catalog, error) {
	validate := validator.New()
	byID := make(map[string]*domain.PlantSpecies, len(records))

	for i := range records {
		sp := records[i]
		if err := validate.Struct(sp); err != nil {
			return nil, fmt.Errorf("invalid species %q: %w", sp.ID, err)
		}
		if sp.IsRecurringHarvest && sp.HarvestIntervalDays < 1 {
			return nil, fmt.Errorf("invalid species %q: recurring harvest requires a positive interval", sp.ID)
		}
		if _, exists := byID[sp.ID]; exists {
			return nil, fmt.Errorf("duplicate species id %q", sp.ID)
		}
		byID[sp.ID] = &records[i]
	}

	return &Catalog{byID: byID}, nil
}

// Get returns the species for an id, or (nil, false) when unknown.
func (c *Catalog) Get(id string) (*domain.PlantSpecies, bool) {
	sp, ok := c.byID[id]
	return sp, ok
}

// IDs returns all species ids in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns copies of all species, sorted by id.
func (c *Catalog) List() []domain.PlantSpecies {
	out := make([]domain.PlantSpecies, 0, len(c.byID))
	for _, id := range c.IDs() {
		out = append(out, *c.byID[id])
	}
	return out
}

// Len returns the number of species in the catalog.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// DefaultSpecies is the built-in catalog used when no catalog file exists.
func DefaultSpecies() []domain.PlantSpecies {
	return []domain.PlantSpecies{
		{
			ID:               "turnip",
			DisplayName:      "Turnip",
			GrowthStageCount: 3,
			DaysPerStage:     2,
			ValidSeasons:     []domain.Season{domain.SeasonSpring},
		},
		{
			ID:               "potato",
			DisplayName:      "Potato",
			GrowthStageCount: 4,
			DaysPerStage:     2,
			ValidSeasons:     []domain.Season{domain.SeasonSpring, domain.SeasonSummer},
		},
		{
			ID:                  "tomato",
			DisplayName:         "Tomato",
			GrowthStageCount:    4,
			DaysPerStage:        3,
			ValidSeasons:        []domain.Season{domain.SeasonSummer},
			IsRecurringHarvest:  true,
			HarvestIntervalDays: 3,
		},
		{
			ID:                  "berry_bush",
			DisplayName:         "Berry Bush",
			GrowthStageCount:    5,
			DaysPerStage:        2,
			ValidSeasons:        []domain.Season{domain.SeasonSpring, domain.SeasonSummer, domain.SeasonAutumn},
			IsRecurringHarvest:  true,
			HarvestIntervalDays: 4,
		},
		{
			ID:               "pumpkin",
			DisplayName:      "Pumpkin",
			GrowthStageCount: 5,
			DaysPerStage:     3,
			ValidSeasons:     []domain.Season{domain.SeasonAutumn},
		},
		{
			ID:               "frostleaf",
			DisplayName:      "Frostleaf",
			GrowthStageCount: 3,
			DaysPerStage:     4,
			ValidSeasons:     []domain.Season{domain.SeasonWinter},
		},
	}
}
