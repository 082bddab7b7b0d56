package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/greenhollow/almanac/internal/clock"
	"github.com/greenhollow/almanac/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	// HTTP surface
	APIKey         string
	TrustedProxies []string

	// Engine timing
	FrameInterval   string // update loop interval, e.g. "250ms"
	AutosaveMinutes int

	// Data paths
	SaveSlotPath       string
	SpeciesCatalogPath string
	LogDir             string

	// Calendar
	Clock clock.Config
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		ServiceName:        getEnv("SERVICE_NAME", "almanac"),
		Version:            getEnv("SERVICE_VERSION", "dev"),
		Environment:        getEnv("ENVIRONMENT", "dev"),
		APIKey:             getEnv("API_KEY", ""),
		TrustedProxies:     splitList(getEnv("TRUSTED_PROXIES", "")),
		FrameInterval:      getEnv("FRAME_INTERVAL", DefaultFrameInterval),
		SaveSlotPath:       getEnv("SAVE_SLOT_PATH", DefaultSaveSlotPath),
		SpeciesCatalogPath: getEnv("SPECIES_CATALOG_PATH", DefaultSpeciesCatalogPath),
		LogDir:             getEnv("LOG_DIR", ""),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	autosave, err := strconv.Atoi(getEnv("AUTOSAVE_MINUTES", strconv.Itoa(DefaultAutosaveMinutes)))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTOSAVE_MINUTES value: %w", err)
	}
	cfg.AutosaveMinutes = autosave

	// Calendar parameters. Out-of-range values are clamped, not rejected:
	// the clock must come up with safe defaults rather than fail.
	cfg.Clock = clock.Config{
		RealSecondsPerGameDay: getEnvFloat("REAL_SECONDS_PER_GAME_DAY", clock.DefaultRealSecondsPerGameDay),
		DayEndHour:            getEnvInt("DAY_END_HOUR", clock.DefaultDayEndHour),
		DayStartHour:          getEnvInt("DAY_START_HOUR", clock.DefaultDayStartHour),
		SeasonLengthDays:      getEnvInt("SEASON_LENGTH_DAYS", clock.DefaultSeasonLengthDays),
		StartingSeason:        domain.Season(getEnvInt("STARTING_SEASON", int(domain.SeasonSpring))),
		StartingYear:          getEnvInt("STARTING_YEAR", clock.DefaultStartingYear),
	}.Normalize()

	return cfg, nil
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable, falling back to the
// default on absence or parse failure.
func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvFloat retrieves a float environment variable, falling back to the
// default on absence or parse failure.
func getEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
