package scanner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opal-lang/idfilter/core/pattern"
)

// Kind identifies one branch of the scan alternation.
type Kind int

const (
	KindBlockComment Kind = iota
	KindLineComment
	KindStringLiteral
	KindCharLiteral
	KindIdentifier
	KindAnyChar
	KindEpsilon

	numKinds
)

var kindNames = [numKinds]string{
	KindBlockComment:  "block_comment",
	KindLineComment:   "line_comment",
	KindStringLiteral: "string_literal",
	KindCharLiteral:   "char_literal",
	KindIdentifier:    "identifier",
	KindAnyChar:       "any_char",
	KindEpsilon:       "epsilon",
}

func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every kind in alternation priority order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// KindTelemetry holds match statistics for one kind.
type KindTelemetry struct {
	Kind  Kind
	Count int // Successful matches
	Bytes int // Bytes consumed by those matches
}

// tracked records statistics and debug events for one alternation operand.
// It is only inserted into the tree when telemetry or debug is enabled.
type tracked struct {
	kind  Kind
	inner pattern.Pattern
	s     *Scanner
}

func (t *tracked) Match(src []byte, begin, end pattern.Position) pattern.Result {
	r := t.inner.Match(src, begin, end)
	if !r.Matched {
		return r
	}

	if t.s.telemetry != nil {
		stat := &t.s.telemetry[t.kind]
		stat.Count++
		stat.Bytes += int(r.Pos - begin)
	}
	if t.s.debug {
		t.s.logger.LogAttrs(context.Background(), slog.LevelDebug, "span",
			slog.String("kind", t.kind.String()),
			slog.Int("begin", int(begin)),
			slog.Int("end", int(r.Pos)))
	}
	return r
}
