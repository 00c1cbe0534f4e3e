// Package scanner extracts identifiers from C-like source text.
//
// A Scanner assembles one pattern tree,
//
//	Repetition(Alternation(block comment, line comment, string literal,
//	                       char literal, observed identifier, any char, epsilon))
//
// and runs it once over the whole input. Comments and literals are consumed
// as opaque spans, so identifiers inside them are never reported. Anything
// that matches no construct, including unterminated comments and literals,
// is consumed one byte at a time.
package scanner

import (
	"context"
	"log/slog"

	"github.com/opal-lang/idfilter/core/invariant"
	"github.com/opal-lang/idfilter/core/pattern"
	"github.com/opal-lang/idfilter/runtime/lexer"
)

// Scanner runs the identifier scan. It can be reused for any number of
// sequential scans but must not be shared by concurrent ones.
type Scanner struct {
	root pattern.Pattern

	// emit is the sink of the scan in progress.
	emit func(token string)

	escapes   lexer.EscapePolicy
	telemetry *[numKinds]KindTelemetry // nil when disabled
	debug     bool
	logger    *slog.Logger
}

// New builds a scanner and its pattern tree.
func New(opts ...Option) *Scanner {
	config := &Config{}
	for _, opt := range opts {
		opt(config)
	}

	s := &Scanner{
		escapes: config.escapes,
		debug:   config.debug,
		logger:  config.logger,
	}
	if s.logger == nil {
		s.logger = discardLogger
	}
	if config.telemetry {
		s.telemetry = &[numKinds]KindTelemetry{}
	}

	s.root = pattern.Many(s.alternatives())
	return s
}

// alternatives returns the scan alternation in priority order.
func (s *Scanner) alternatives() pattern.Alternation {
	branches := [numKinds]pattern.Pattern{
		KindBlockComment:  lexer.BlockComment,
		KindLineComment:   lexer.LineComment,
		KindStringLiteral: lexer.StringLiteral(s.escapes),
		KindCharLiteral:   lexer.CharLiteral(s.escapes),
		KindIdentifier:    pattern.Observe(lexer.Identifier, s.deliver),
		KindAnyChar:       pattern.AnyChar,
		KindEpsilon:       pattern.Epsilon,
	}

	alt := make(pattern.Alternation, 0, numKinds)
	for kind, p := range branches {
		if s.telemetry != nil || s.debug {
			p = &tracked{kind: Kind(kind), inner: p, s: s}
		}
		alt = append(alt, p)
	}
	return alt
}

func (s *Scanner) deliver(token string) {
	s.emit(token)
}

// Scan runs the pattern tree once over src, calling emit with every
// identifier outside comments and literals, in input order.
func (s *Scanner) Scan(src []byte, emit func(token string)) pattern.Result {
	invariant.NotNil(emit, "emit")

	if s.telemetry != nil {
		*s.telemetry = [numKinds]KindTelemetry{}
		for i := range s.telemetry {
			s.telemetry[i].Kind = Kind(i)
		}
	}

	tokens := 0
	s.emit = func(token string) {
		tokens++
		emit(token)
	}
	defer func() { s.emit = nil }()

	end := pattern.Position(len(src))
	r := s.root.Match(src, 0, end)

	invariant.Postcondition(r.Matched && r.Pos == end,
		"scan stopped at %s before end %d", r, end)
	if s.telemetry != nil {
		consumed := 0
		for _, stat := range s.telemetry {
			consumed += stat.Bytes
		}
		invariant.Postcondition(consumed == len(src),
			"scan consumed %d bytes of %d", consumed, len(src))
	}

	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "scan complete",
		slog.Int("bytes", len(src)),
		slog.Int("tokens", tokens),
		slog.String("escapes", s.escapes.String()))
	return r
}

// Tokens scans src and returns the identifiers in input order.
func (s *Scanner) Tokens(src []byte) []string {
	var tokens []string
	s.Scan(src, func(token string) {
		tokens = append(tokens, token)
	})
	return tokens
}

// Telemetry returns a copy of the per-kind statistics of the last scan,
// or nil when telemetry is disabled.
func (s *Scanner) Telemetry() map[Kind]KindTelemetry {
	if s.telemetry == nil {
		return nil
	}
	result := make(map[Kind]KindTelemetry, numKinds)
	for _, stat := range s.telemetry {
		result[stat.Kind] = stat
	}
	return result
}

// Tokens is a convenience that scans src with a default Scanner.
func Tokens(src []byte, opts ...Option) []string {
	return New(opts...).Tokens(src)
}
