package config

// Default service configuration
const (
	DefaultPort            = 8080
	DefaultFrameInterval   = "250ms"
	DefaultAutosaveMinutes = 5
)

// Default data paths
const (
	DefaultSaveSlotPath       = "data/slot1.json"
	DefaultSpeciesCatalogPath = "configs/species.json"
)
