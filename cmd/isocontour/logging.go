package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// setupLogging installs the process-wide logger from the persistent flags.
// The live view owns the terminal, so it logs nowhere unless --log-file is
// given.
func setupLogging(cmd *cobra.Command) error {
	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logSink = f
		w = f
	} else if cmd.Name() == "live" || cmd.Name() == "isocontour" {
		w = io.Discard
	}

	l, err := newLogger(w, logFormat, logLevel)
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(l)
	return nil
}

func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
}
