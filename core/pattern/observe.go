package pattern

import (
	"github.com/opal-lang/idfilter/core/invariant"
)

// Observed decorates a pattern with a callback that receives every span the
// pattern accepts. Failed attempts are not reported.
type Observed struct {
	inner   Pattern
	onMatch func(span string)
}

// Observe wraps p so that onMatch is called with src[begin:pos] on each
// successful attempt, before the result is returned unchanged.
func Observe(p Pattern, onMatch func(span string)) *Observed {
	invariant.NotNil(p, "observed pattern")
	invariant.NotNil(onMatch, "match callback")
	return &Observed{inner: p, onMatch: onMatch}
}

// Match implements Pattern.
func (o *Observed) Match(src []byte, begin, end Position) Result {
	r := o.inner.Match(src, begin, end)
	if r.Matched {
		o.onMatch(string(src[begin:r.Pos]))
	}
	return r
}
