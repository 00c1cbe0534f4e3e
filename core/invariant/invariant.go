// Package invariant provides contract assertions for idfilter.
//
// Pattern code states its contracts with Precondition and Postcondition and
// checks loop progress with Invariant. A violation is a bug in the caller or
// in a recognizer, never bad user input, so every check panics.
package invariant

import (
	"fmt"
	"reflect"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func (r RecognizerFunc) Match(src []byte, begin, end Position) Result {
//	    invariant.Precondition(begin <= end, "begin %d after end %d", begin, end)
//	    ...
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
// Panics with POSTCONDITION VIOLATION if condition is false.
func Postcondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Example:
//
//	for pos < end {
//	    next := inner.Match(src, pos, end)
//	    invariant.Invariant(next.Pos <= end, "inner pattern overran end")
//	    ...
//	}
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if value is nil, including typed nils such as a nil func
// stored in an interface.
func NotNil(value interface{}, name string) {
	if isNilValue(value) {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

func isNilValue(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// Span panics unless 0 <= begin <= end <= length.
// This is the entry contract of every pattern attempt.
func Span(begin, end, length int) {
	if begin < 0 || begin > end || end > length {
		fail("PRECONDITION", "span [%d, %d) must lie within [0, %d]", begin, end, length)
	}
}

// ExpectNoError panics if err is not nil.
// Use it for operations on embedded data that cannot fail at runtime.
func ExpectNoError(err error, msg string) {
	if err != nil {
		fail("POSTCONDITION", "%s must not fail: %v", msg, err)
	}
}

// fail panics with a formatted message including the violating call site.
func fail(kind, format string, args ...interface{}) {
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]interface{}{kind}, args...)...)

	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
