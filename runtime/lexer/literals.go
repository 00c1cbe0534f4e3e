package lexer

import (
	"fmt"

	"github.com/opal-lang/idfilter/core/pattern"
)

// EscapePolicy decides what a backslash inside a string or character
// literal means.
type EscapePolicy int

const (
	// EscapeAbort gives up on the literal at the first backslash. The scanner
	// then falls back to scanning the region one byte at a time, so text after
	// an escaped quote may be reported as identifiers.
	EscapeAbort EscapePolicy = iota

	// EscapeSkip treats a backslash as an escape introducer: it and the byte
	// after it belong to the literal.
	EscapeSkip
)

// String returns the flag spelling of the policy.
func (p EscapePolicy) String() string {
	switch p {
	case EscapeAbort:
		return "abort"
	case EscapeSkip:
		return "skip"
	default:
		return fmt.Sprintf("EscapePolicy(%d)", int(p))
	}
}

// ParseEscapePolicy parses the flag spelling produced by String.
func ParseEscapePolicy(s string) (EscapePolicy, error) {
	switch s {
	case "abort":
		return EscapeAbort, nil
	case "skip":
		return EscapeSkip, nil
	}
	return EscapeAbort, fmt.Errorf("unknown escape policy %q (want abort or skip)", s)
}

type literalState int

const (
	literalOpen    literalState = iota // expecting the opening quote
	literalBody                        // inside the literal
	literalEscaped                     // the previous byte was a backslash
)

// StringLiteral returns a recognizer for "..." under the given policy.
func StringLiteral(policy EscapePolicy) pattern.Pattern {
	return quoted('"', policy)
}

// CharLiteral returns a recognizer for '...' under the given policy. Length
// is not checked: 'ab' is accepted like any other quoted span.
func CharLiteral(policy EscapePolicy) pattern.Pattern {
	return quoted('\'', policy)
}

func quoted(quote byte, policy EscapePolicy) pattern.Pattern {
	return pattern.RecognizerFunc(func(src []byte, begin, end pattern.Position) pattern.Result {
		state := literalOpen
		for i := begin; i < end; i++ {
			ch := src[i]
			switch state {
			case literalOpen:
				if ch != quote {
					return pattern.Miss(begin)
				}
				state = literalBody
			case literalBody:
				switch ch {
				case quote:
					return pattern.Hit(i + 1)
				case '\\':
					if policy == EscapeAbort {
						return pattern.Miss(begin)
					}
					state = literalEscaped
				}
			case literalEscaped:
				state = literalBody
			}
		}
		return pattern.Miss(begin)
	})
}
