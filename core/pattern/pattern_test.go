package pattern

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lit matches the exact byte string s.
func lit(s string) Pattern {
	return RecognizerFunc(func(src []byte, begin, end Position) Result {
		if bytes.HasPrefix(src[begin:end], []byte(s)) {
			return Hit(begin + Position(len(s)))
		}
		return Miss(begin)
	})
}

// leaky fails but reports a position past begin, like a careless recognizer
// that bypasses RecognizerFunc.
type leaky struct{}

func (leaky) Match(_ []byte, begin, end Position) Result {
	if begin < end {
		return Result{Matched: false, Pos: begin + 1}
	}
	return Miss(begin)
}

// counting records how many times it was attempted.
type counting struct {
	Pattern
	calls int
}

func (c *counting) Match(src []byte, begin, end Position) Result {
	c.calls++
	return c.Pattern.Match(src, begin, end)
}

func TestEpsilon(t *testing.T) {
	src := []byte("abc")
	assert.Equal(t, Hit(0), Epsilon.Match(src, 0, 3))
	assert.Equal(t, Hit(3), Epsilon.Match(src, 3, 3))
	assert.Equal(t, Hit(0), Epsilon.Match(nil, 0, 0))
}

func TestAnyChar(t *testing.T) {
	src := []byte("ab")
	assert.Equal(t, Hit(1), AnyChar.Match(src, 0, 2))
	assert.Equal(t, Hit(2), AnyChar.Match(src, 1, 2))
	assert.Equal(t, Miss(2), AnyChar.Match(src, 2, 2))
	assert.Equal(t, Miss(0), AnyChar.Match(nil, 0, 0))
	// end bounds the attempt even when the buffer goes on
	assert.Equal(t, Miss(1), AnyChar.Match(src, 1, 1))
}

func TestSequence(t *testing.T) {
	src := []byte("/*x")

	tests := []struct {
		name string
		seq  Sequence
		want Result
	}{
		{"empty", Sequence{}, Hit(0)},
		{"single", Sequence{lit("/")}, Hit(1)},
		{"chained", Sequence{lit("/"), lit("*"), AnyChar}, Hit(3)},
		{"failure resets", Sequence{lit("/"), lit("*"), lit("y")}, Miss(0)},
		{"first fails", Sequence{lit("*")}, Miss(0)},
		{"runs out of input", Sequence{lit("/*x"), AnyChar}, Miss(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.seq.Match(src, 0, Position(len(src))))
		})
	}
}

func TestSequenceStopsAtFirstFailure(t *testing.T) {
	after := &counting{Pattern: AnyChar}
	seq := Sequence{lit("q"), after}

	assert.Equal(t, Miss(0), seq.Match([]byte("abc"), 0, 3))
	assert.Zero(t, after.calls, "operands after a failure must not run")
}

func TestAlternation(t *testing.T) {
	src := []byte("abc")

	tests := []struct {
		name string
		alt  Alternation
		want Result
	}{
		{"empty", Alternation{}, Miss(0)},
		{"first wins", Alternation{lit("ab"), lit("abc")}, Hit(2)},
		{"later wins", Alternation{lit("x"), lit("abc")}, Hit(3)},
		{"all fail", Alternation{lit("x"), lit("y")}, Miss(0)},
		{"leaked failure normalized", Alternation{lit("x"), leaky{}}, Miss(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.alt.Match(src, 0, 3))
		})
	}
}

func TestAlternationShortCircuits(t *testing.T) {
	second := &counting{Pattern: AnyChar}
	alt := Alternation{lit("a"), second}

	assert.Equal(t, Hit(1), alt.Match([]byte("a"), 0, 1))
	assert.Zero(t, second.calls)
}

func TestAlternationTriesEachOperandAtBegin(t *testing.T) {
	// "b" only matches if the second operand starts at begin rather than
	// where the first operand stopped.
	alt := Alternation{Sequence{lit("a"), lit("x")}, lit("ab")}
	assert.Equal(t, Hit(2), alt.Match([]byte("ab"), 0, 2))
}

func TestRepetition(t *testing.T) {
	tests := []struct {
		name  string
		input string
		inner Pattern
		want  Result
	}{
		{"zero matches", "xyz", lit("a"), Hit(0)},
		{"greedy", "aaab", lit("a"), Hit(3)},
		{"until end", "aaaa", lit("a"), Hit(4)},
		{"empty input", "", AnyChar, Hit(0)},
		{"whole input", "hello", AnyChar, Hit(5)},
		{"zero-width inner terminates", "abc", Epsilon, Hit(0)},
		{"zero-width after progress", "aab", Alternation{lit("a"), Epsilon}, Hit(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := []byte(tt.input)
			got := Many(tt.inner).Match(src, 0, Position(len(src)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepetitionRespectsBegin(t *testing.T) {
	src := []byte("xxaaa")
	assert.Equal(t, Hit(5), Many(lit("a")).Match(src, 2, 5))
	assert.Equal(t, Hit(4), Many(lit("a")).Match(src, 2, 4))
}

func TestRepetitionStopsAtEnd(t *testing.T) {
	inner := &counting{Pattern: AnyChar}
	Many(inner).Match([]byte("abc"), 0, 3)
	assert.Equal(t, 3, inner.calls, "no attempt is made once the position reaches end")
}

func TestObserve(t *testing.T) {
	var spans []string
	word := Observe(Sequence{lit("ab"), Many(lit("c"))}, func(s string) {
		spans = append(spans, s)
	})

	src := []byte("abccd ab")
	assert.Equal(t, Hit(4), word.Match(src, 0, 8))
	assert.Equal(t, Miss(4), word.Match(src, 4, 8))
	assert.Equal(t, Hit(8), word.Match(src, 6, 8))

	if diff := cmp.Diff([]string{"abcc", "ab"}, spans); diff != "" {
		t.Errorf("observed spans mismatch (-want +got):\n%s", diff)
	}
}

func TestObserveCopiesSpan(t *testing.T) {
	var got string
	word := Observe(lit("ab"), func(s string) { got = s })

	src := []byte("ab")
	require.True(t, word.Match(src, 0, 2).Matched)
	src[0] = 'z'
	assert.Equal(t, "ab", got, "observed span must not alias the input buffer")
}

func TestObserveRejectsNilCallback(t *testing.T) {
	assert.Panics(t, func() { Observe(AnyChar, nil) })
}

func TestRecognizerFuncContract(t *testing.T) {
	src := []byte("abc")

	t.Run("begin after end", func(t *testing.T) {
		assert.Panics(t, func() { AnyChar.Match(src, 2, 1) })
	})
	t.Run("end past buffer", func(t *testing.T) {
		assert.Panics(t, func() { AnyChar.Match(src, 0, 4) })
	})
	t.Run("failed leaf moved", func(t *testing.T) {
		bad := RecognizerFunc(func(_ []byte, begin, _ Position) Result {
			return Result{Matched: false, Pos: begin + 1}
		})
		assert.Panics(t, func() { bad.Match(src, 0, 3) })
	})
	t.Run("overran end", func(t *testing.T) {
		bad := RecognizerFunc(func(_ []byte, _, end Position) Result {
			return Hit(end + 1)
		})
		assert.Panics(t, func() { bad.Match(src, 0, 2) })
	})
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "match(3)", Hit(3).String())
	assert.Equal(t, "nomatch(0)", Miss(0).String())
}
