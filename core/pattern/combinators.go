package pattern

import (
	"github.com/opal-lang/idfilter/core/invariant"
)

// Sequence matches its patterns one after another, each starting where the
// previous one ended. Any failure resets to the original start position, so a
// partial match is never observable. An empty Sequence matches at begin.
type Sequence []Pattern

// Match implements Pattern.
func (s Sequence) Match(src []byte, begin, end Position) Result {
	invariant.Span(int(begin), int(end), len(src))

	pos := begin
	for _, p := range s {
		r := p.Match(src, pos, end)
		if !r.Matched {
			return Miss(begin)
		}
		pos = r.Pos
	}
	return Hit(pos)
}

// Alternation tries each pattern at the same start position and returns the
// first success. Operand order is priority order. When every operand fails
// the result is a miss at begin, whatever position the operands reported.
type Alternation []Pattern

// Match implements Pattern.
func (a Alternation) Match(src []byte, begin, end Position) Result {
	invariant.Span(int(begin), int(end), len(src))

	for _, p := range a {
		if r := p.Match(src, begin, end); r.Matched {
			return r
		}
	}
	return Miss(begin)
}

// Repetition applies Inner greedily, zero or more times, and always matches.
//
// The loop stops when Inner fails, when the position reaches end, or when
// Inner succeeds without consuming anything. The last case keeps zero-width
// operands such as Epsilon from looping forever.
type Repetition struct {
	Inner Pattern
}

// Many returns a Repetition of p.
func Many(p Pattern) Repetition {
	invariant.NotNil(p, "repeated pattern")
	return Repetition{Inner: p}
}

// Match implements Pattern.
func (r Repetition) Match(src []byte, begin, end Position) Result {
	invariant.Span(int(begin), int(end), len(src))

	pos := begin
	for pos < end {
		next := r.Inner.Match(src, pos, end)
		if !next.Matched {
			break
		}
		invariant.Invariant(next.Pos >= pos && next.Pos <= end,
			"repeated pattern moved from %d to %d (end %d)", pos, next.Pos, end)
		if next.Pos == pos {
			break
		}
		pos = next.Pos
	}
	return Hit(pos)
}
