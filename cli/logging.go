package main

import (
	"io"
	"log/slog"
	"os"
)

// DebugEnv turns on debug logging without the --debug flag.
const DebugEnv = "IDFILTER_DEBUG"

// newLogger builds the diagnostic logger. Diagnostics always go to w
// (stderr) so that stdout carries nothing but tokens.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug || os.Getenv(DebugEnv) != "" {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove timestamp and level for cleaner output
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
