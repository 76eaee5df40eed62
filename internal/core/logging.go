package core

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const installLogName = "memsetup.log"

// NewLogger returns a logger appending to the install log under logsDir.
// The console is left to the reporter; the log file keeps the durable record
// of every step outcome. When the log file cannot be opened the logger
// silently discards, since logging must never block an install.
func NewLogger(logsDir string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(io.Discard)

	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return logger
	}
	f, err := os.OpenFile(filepath.Join(logsDir, installLogName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logger
	}
	logger.SetOutput(f)
	return logger
}
