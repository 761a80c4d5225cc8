package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logFileName = "tictac.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a logger writing to dir/tictac.log when debug is set, or discarding otherwise
// The terminal owns stdout and stderr while the game runs, so the log never goes there
// The returned file is nil when logging is off
func setupLogging(dir string, debug bool) (*logrus.Logger, *os.File) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	if !debug {
		logger.SetOutput(io.Discard)
		logger.SetLevel(logrus.WarnLevel)
		return logger, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log dir %s: %v\n", dir, err)
		logger.SetOutput(io.Discard)
		return logger, nil
	}

	path := filepath.Join(dir, logFileName)
	rotateLog(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", path, err)
		logger.SetOutput(io.Discard)
		return logger, nil
	}

	logger.SetOutput(f)
	logger.SetLevel(logrus.DebugLevel)
	return logger, f
}

// rotateLog renames an oversized log to a timestamped sibling
func rotateLog(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	rotated := fmt.Sprintf("%s-%s.log", base, time.Now().Format("20060102-150405"))
	if err := os.Rename(path, rotated); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to rotate log: %v\n", err)
	}
}
