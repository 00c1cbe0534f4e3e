// Package lexer holds the character-level recognizers of C-like source text.
//
// Each recognizer is a small state machine driven left to right from the
// attempt's start position. They only decide whether a span is a comment,
// a literal or an identifier; composing them into a scan is the job of the
// scanner package.
package lexer

import (
	"github.com/opal-lang/idfilter/core/pattern"
)

// blockState tracks progress through /* ... */.
type blockState int

const (
	blockOpenSlash blockState = iota // expecting '/'
	blockOpenStar                    // expecting '*'
	blockBody                        // inside the comment
	blockStar                        // saw one or more '*' inside the comment
)

// BlockComment matches /* ... */ including newlines. A run of '*' before the
// closing '/' ends the comment. Unterminated comments do not match.
var BlockComment pattern.Pattern = pattern.RecognizerFunc(matchBlockComment)

func matchBlockComment(src []byte, begin, end pattern.Position) pattern.Result {
	state := blockOpenSlash
	for i := begin; i < end; i++ {
		ch := src[i]
		switch state {
		case blockOpenSlash:
			if ch != '/' {
				return pattern.Miss(begin)
			}
			state = blockOpenStar
		case blockOpenStar:
			if ch != '*' {
				return pattern.Miss(begin)
			}
			state = blockBody
		case blockBody:
			if ch == '*' {
				state = blockStar
			}
		case blockStar:
			switch ch {
			case '/':
				return pattern.Hit(i + 1)
			case '*':
				// still a candidate closer
			default:
				state = blockBody
			}
		}
	}
	return pattern.Miss(begin)
}

// lineState tracks progress through // ... \n.
type lineState int

const (
	lineFirstSlash lineState = iota
	lineSecondSlash
	lineBody
)

// LineComment matches // through the next '\n' inclusive. A comment that
// reaches end without a newline still matches, ending at end.
var LineComment pattern.Pattern = pattern.RecognizerFunc(matchLineComment)

func matchLineComment(src []byte, begin, end pattern.Position) pattern.Result {
	state := lineFirstSlash
	for i := begin; i < end; i++ {
		ch := src[i]
		switch state {
		case lineFirstSlash:
			if ch != '/' {
				return pattern.Miss(begin)
			}
			state = lineSecondSlash
		case lineSecondSlash:
			if ch != '/' {
				return pattern.Miss(begin)
			}
			state = lineBody
		case lineBody:
			if ch == '\n' {
				return pattern.Hit(i + 1)
			}
		}
	}
	if state == lineBody {
		return pattern.Hit(end)
	}
	return pattern.Miss(begin)
}

// Identifier matches [A-Za-z_][A-Za-z0-9_]*.
var Identifier pattern.Pattern = pattern.RecognizerFunc(matchIdentifier)

func matchIdentifier(src []byte, begin, end pattern.Position) pattern.Result {
	if begin == end || !identStart(src[begin]) {
		return pattern.Miss(begin)
	}
	i := begin + 1
	for i < end && identPart(src[i]) {
		i++
	}
	return pattern.Hit(i)
}
