package lexer

// ASCII character lookup tables for identifier classification.
//
// Use inline bounds-checked lookups:
//
//	if ch < 128 && isIdentStart[ch] { ... }
//
// Bytes >= 128 never start or continue an identifier.
var (
	isLetter     [128]bool // a-z, A-Z
	isDigit      [128]bool // 0-9
	isIdentStart [128]bool // Letter or _
	isIdentPart  [128]bool // Letter, digit or _
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)

		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isDigit[i] = '0' <= ch && ch <= '9'

		isIdentStart[i] = isLetter[i] || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
	}
}

// Identifiers: [A-Za-z_][A-Za-z0-9_]*
//
// ASCII only. UTF-8 sequences are opaque bytes to the scanner and fall
// through to the single-byte wildcard.

func identStart(ch byte) bool {
	return ch < 128 && isIdentStart[ch]
}

func identPart(ch byte) bool {
	return ch < 128 && isIdentPart[ch]
}

// IsIdentifier reports whether s is exactly one identifier.
func IsIdentifier(s string) bool {
	if s == "" || !identStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !identPart(s[i]) {
			return false
		}
	}
	return true
}
