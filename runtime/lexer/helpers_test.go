package lexer

import (
	"testing"

	"github.com/opal-lang/idfilter/core/pattern"
)

// recognizerCase is one row of a recognizer table test.
type recognizerCase struct {
	name    string
	input   string
	matched bool
	pos     int // expected end position; ignored and taken as 0 when matched is false
}

// runRecognizerCases attempts p over the whole of each input.
func runRecognizerCases(t *testing.T, p pattern.Pattern, cases []recognizerCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			src := []byte(tt.input)
			got := p.Match(src, 0, pattern.Position(len(src)))

			want := pattern.Miss(0)
			if tt.matched {
				want = pattern.Hit(pattern.Position(tt.pos))
			}
			if got != want {
				t.Errorf("Match(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}
