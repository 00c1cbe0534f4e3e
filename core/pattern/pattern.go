// Package pattern is a small parser-combinator engine over byte buffers.
//
// A Pattern attempts to recognize a span of the input that starts at a given
// position. Leaves are plain functions adapted with RecognizerFunc; the
// combinators Sequence, Alternation and Repetition compose them, and Observe
// attaches a side-effecting callback to a successful match.
//
// Every attempt honours the same contract:
//
//   - it reads only src[begin:end]
//   - a successful Result has begin <= Pos <= end
//   - a failed Result has Pos == begin, so failure never implies movement
//
// Pattern trees are built once and never mutated; they may be shared by any
// number of sequential attempts.
package pattern

import (
	"fmt"

	"github.com/opal-lang/idfilter/core/invariant"
)

// Position is a byte offset into the input buffer, valid in [0, len(src)].
type Position int

// Result is the outcome of one pattern attempt.
type Result struct {
	Matched bool
	Pos     Position // Position just past the consumed span, or the start position on failure
}

// String renders the result for test failures and debug logs.
func (r Result) String() string {
	if r.Matched {
		return fmt.Sprintf("match(%d)", r.Pos)
	}
	return fmt.Sprintf("nomatch(%d)", r.Pos)
}

// Miss is the failed result for an attempt that started at begin.
func Miss(begin Position) Result {
	return Result{Matched: false, Pos: begin}
}

// Hit is the successful result for an attempt that ended at pos.
func Hit(pos Position) Result {
	return Result{Matched: true, Pos: pos}
}

// Pattern is the capability shared by leaves and combinators.
type Pattern interface {
	// Match attempts to recognize a span of src starting at begin.
	// The caller guarantees 0 <= begin <= end <= len(src).
	Match(src []byte, begin, end Position) Result
}

// RecognizerFunc adapts an ordinary function to the Pattern interface.
// The adapter checks the attempt contract around every call, so leaf
// implementations can stay plain state machines.
type RecognizerFunc func(src []byte, begin, end Position) Result

// Match calls f(src, begin, end).
func (f RecognizerFunc) Match(src []byte, begin, end Position) Result {
	invariant.Span(int(begin), int(end), len(src))

	r := f(src, begin, end)

	invariant.Postcondition(r.Pos >= begin && r.Pos <= end,
		"recognizer result %s outside [%d, %d]", r, begin, end)
	invariant.Postcondition(r.Matched || r.Pos == begin,
		"failed recognizer moved from %d to %d", begin, r.Pos)
	return r
}

// Epsilon always matches and consumes nothing.
var Epsilon Pattern = RecognizerFunc(func(_ []byte, begin, _ Position) Result {
	return Hit(begin)
})

// AnyChar matches exactly one byte and fails only at the end of input.
var AnyChar Pattern = RecognizerFunc(func(_ []byte, begin, end Position) Result {
	if begin == end {
		return Miss(begin)
	}
	return Hit(begin + 1)
})
