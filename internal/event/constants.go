package event

// EventSchemaVersion is the current version of event payload schemas.
// Bump when a payload struct changes shape.
const EventSchemaVersion = "1.0"

// Log message formats
const (
	LogMsgHandlerErrorFormat = "%d handler(s) failed for event %s: %v"
)
