package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/greenhollow/almanac/internal/config"
	"github.com/greenhollow/almanac/internal/logger"
)

// SetupLogger initializes the application logger with stdout output, and
// additionally a timestamped session log file when logDir is non-empty.
// Returns the log file handle (caller must close; nil when logging to stdout
// only) and any error encountered.
func SetupLogger(cfg *config.Config, logDir string) (*os.File, error) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"
	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)

	if logDir == "" {
		logger.InitLogger(loggerConfig)
		return nil, nil
	}

	if err := os.MkdirAll(logDir, DirPermission); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	cleanupLogs(logDir)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(logDir, fmt.Sprintf(LogFileNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	mw := io.MultiWriter(os.Stdout, logFile)
	logger.InitLoggerWithWriter(loggerConfig, mw)

	return logFile, nil
}

// cleanupLogs removes old session logs, keeping the most recent ones.
func cleanupLogs(logDir string) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logs []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logs = append(logs, entry.Name())
		}
	}

	if len(logs) <= LogFileRetentionCount {
		return
	}

	// Timestamped names sort chronologically
	sort.Strings(logs)
	for _, name := range logs[:len(logs)-LogFileRetentionCount] {
		os.Remove(filepath.Join(logDir, name))
	}
}
