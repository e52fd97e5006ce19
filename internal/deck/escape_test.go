package deck_test

import (
	"testing"

	"leetdeck/internal/deck"
)

func TestDecodeEscapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "print(1)", "print(1)"},
		{"newline and tab", `a\n\tb`, "a\n\tb"},
		{"quotes", `s = \"x\" + \'y\'`, `s = "x" + 'y'`},
		{"backslash", `a\\n`, `a\n`},
		{"hex and unicode", `\x41é`, "Aé"},
		{"unknown kept", `\q`, `\q`},
		{"trailing backslash", `end\`, `end\`},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deck.DecodeEscapes(tc.in); got != tc.want {
				t.Fatalf("DecodeEscapes(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
