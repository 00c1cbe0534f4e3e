package scanner

import (
	"io"
	"log/slog"

	"github.com/opal-lang/idfilter/runtime/lexer"
)

// Option configures a Scanner.
type Option func(*Config)

// Config holds scanner configuration.
type Config struct {
	escapes   lexer.EscapePolicy
	telemetry bool
	debug     bool
	logger    *slog.Logger
}

// WithEscapePolicy selects how backslashes inside string and character
// literals are treated. The default is lexer.EscapeAbort.
func WithEscapePolicy(p lexer.EscapePolicy) Option {
	return func(c *Config) {
		c.escapes = p
	}
}

// WithTelemetry enables per-kind match counts (see Scanner.Telemetry).
func WithTelemetry() Option {
	return func(c *Config) {
		c.telemetry = true
	}
}

// WithDebug logs every matched span at debug level.
func WithDebug() Option {
	return func(c *Config) {
		c.debug = true
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
