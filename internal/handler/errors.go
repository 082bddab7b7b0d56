package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Path parameter error messages
	ErrMsgInvalidPlantID = "Invalid plant id"

	// Time operation error messages
	ErrMsgSleepFailed = "Failed to advance to next day"

	// Garden operation error messages
	ErrMsgSpawnFailed   = "Failed to plant"
	ErrMsgWaterFailed   = "Failed to water plant"
	ErrMsgFeedFailed    = "Failed to fertilize plant"
	ErrMsgHarvestFailed = "Failed to harvest plant"
	ErrMsgStatusFailed  = "Failed to read plant status"

	// Command error messages
	ErrMsgCommandFailed = "Failed to execute command"

	// Save error messages
	ErrMsgSaveFailed = "Failed to save session"
	ErrMsgLoadFailed = "Failed to load session"
)

// Success messages for API responses
const (
	MsgTimePaused   = "Time paused"
	MsgTimeResumed  = "Time resumed"
	MsgSessionSaved = "Session saved"
)
