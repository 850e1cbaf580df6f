package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// LogFlags are shared by every command
type LogFlags struct {
	Debug   bool   `help:"Enable debug logging"`
	LogFile string `type:"path" help:"Write logs to this file instead of stderr"`
}

// setupLogger returns a logger and a function that releases its output
func (f LogFlags) setupLogger(defaultLevel log.Level) (*log.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closer := func() {}

	if f.LogFile != "" {
		file, err := os.OpenFile(f.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = file
		closer = func() {
			if err := file.Close(); err != nil {
				log.Error("Failed to close log file", "error", err)
			}
		}
	}

	level := defaultLevel
	if f.Debug {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return logger, closer, nil
}
