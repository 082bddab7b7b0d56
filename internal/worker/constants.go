package worker

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
)

// Log messages for the autosave worker
const (
	LogMsgAutosaveStarting  = "Autosave starting"
	LogMsgAutosaveCompleted = "Autosave completed"
	LogMsgAutosaveFailed    = "Autosave failed"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
