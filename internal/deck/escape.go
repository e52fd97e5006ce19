package deck

import (
	"strconv"
	"strings"
)

// DecodeEscapes replaces backslash escape sequences (\n, \t, \", \\, \xHH,
// \uHHHH, \UHHHHHHHH, three-digit octal) with the characters they encode.
// Unknown or malformed sequences are kept literally.
func DecodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.IndexByte(s, '\\')
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i:]

		if len(s) >= 2 && (s[1] == '\'' || s[1] == '"') {
			b.WriteByte(s[1])
			s = s[2:]
			continue
		}
		value, _, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			b.WriteByte('\\')
			s = s[1:]
			continue
		}
		b.WriteRune(value)
		s = tail
	}
}
