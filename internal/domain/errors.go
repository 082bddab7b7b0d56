package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Lookup errors
	ErrMsgSpeciesNotFound = "species not found"
	ErrMsgPlantNotFound   = "plant not found"
	ErrMsgRegionNotFound  = "region not found"

	// Planting errors
	ErrMsgOutOfSeason = "species cannot be planted this season"

	// Command errors
	ErrMsgUnknownCommand = "unknown command"
	ErrMsgInvalidInput   = "invalid input"

	// Persistence errors
	ErrMsgSaveKeyNotFound = "save key not found"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Lookup errors
	ErrSpeciesNotFound = errors.New(ErrMsgSpeciesNotFound)
	ErrPlantNotFound   = errors.New(ErrMsgPlantNotFound)

	// Planting errors
	ErrOutOfSeason = errors.New(ErrMsgOutOfSeason)

	// Command errors
	ErrUnknownCommand = errors.New(ErrMsgUnknownCommand)
	ErrInvalidInput   = errors.New(ErrMsgInvalidInput)

	// Persistence errors
	ErrSaveKeyNotFound = errors.New(ErrMsgSaveKeyNotFound)
)
