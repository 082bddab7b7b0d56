package clock

import (
	"log/slog"

	"github.com/greenhollow/almanac/internal/domain"
)

// Default calendar parameters, applied when configuration is missing or out
// of range. Clamping happens once at load time; clock operations themselves
// never fail on bad config.
const (
	DefaultRealSecondsPerGameDay = 900.0
	DefaultDayEndHour            = 23
	DefaultDayStartHour          = 6
	DefaultSeasonLengthDays      = 28
	DefaultStartingYear          = 1
)

// Config holds the immutable calendar parameters, loaded once at startup.
type Config struct {
	RealSecondsPerGameDay float64       `json:"real_seconds_per_game_day"`
	DayEndHour            int           `json:"day_end_hour"`
	DayStartHour          int           `json:"day_start_hour"`
	SeasonLengthDays      int           `json:"season_length_days"`
	StartingSeason        domain.Season `json:"starting_season"`
	StartingYear          int           `json:"starting_year"`
}

// DefaultConfig returns the safe default calendar parameters.
func DefaultConfig() Config {
	return Config{
		RealSecondsPerGameDay: DefaultRealSecondsPerGameDay,
		DayEndHour:            DefaultDayEndHour,
		DayStartHour:          DefaultDayStartHour,
		SeasonLengthDays:      DefaultSeasonLengthDays,
		StartingSeason:        domain.SeasonSpring,
		StartingYear:          DefaultStartingYear,
	}
}

// Normalize clamps out-of-range parameters to the documented defaults and
// returns the corrected config. Each correction is logged once; callers get
// a config that every clock operation can trust without re-checking.
func (c Config) Normalize() Config {
	log := slog.Default()

	if c.RealSecondsPerGameDay <= 0 {
		log.Warn("Invalid real_seconds_per_game_day, using default",
			"value", c.RealSecondsPerGameDay, "default", DefaultRealSecondsPerGameDay)
		c.RealSecondsPerGameDay = DefaultRealSecondsPerGameDay
	}
	if c.DayEndHour < 0 || c.DayEndHour > 23 {
		log.Warn("Invalid day_end_hour, using default", "value", c.DayEndHour, "default", DefaultDayEndHour)
		c.DayEndHour = DefaultDayEndHour
	}
	if c.DayStartHour < 0 || c.DayStartHour > 23 {
		log.Warn("Invalid day_start_hour, using default", "value", c.DayStartHour, "default", DefaultDayStartHour)
		c.DayStartHour = DefaultDayStartHour
	}
	if c.DayStartHour >= c.DayEndHour {
		log.Warn("day_start_hour not before day_end_hour, using defaults",
			"start", c.DayStartHour, "end", c.DayEndHour)
		c.DayStartHour = DefaultDayStartHour
		c.DayEndHour = DefaultDayEndHour
	}
	if c.SeasonLengthDays < 1 {
		log.Warn("Invalid season_length_days, using default",
			"value", c.SeasonLengthDays, "default", DefaultSeasonLengthDays)
		c.SeasonLengthDays = DefaultSeasonLengthDays
	}
	if !c.StartingSeason.Valid() {
		log.Warn("Invalid starting_season, using Spring", "value", int(c.StartingSeason))
		c.StartingSeason = domain.SeasonSpring
	}
	if c.StartingYear < 1 {
		log.Warn("Invalid starting_year, using default", "value", c.StartingYear, "default", DefaultStartingYear)
		c.StartingYear = DefaultStartingYear
	}

	return c
}

// MinutesPerRealSecond is the game-minute multiplier derived from the
// configured day length.
func (c Config) MinutesPerRealSecond() float64 {
	return float64(domain.MinutesPerDay) / c.RealSecondsPerGameDay
}
