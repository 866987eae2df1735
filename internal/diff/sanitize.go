package diff

import (
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

// sanitize makes s safe to print in a terminal:
//   - \t, \n and \r are kept.
//   - Other C0 controls, DEL, and C1 controls (U+0080..U+009F) are replaced with "\xXX" (ex: ESC becomes `\x1B`).
//   - Invalid UTF-8 is replaced by U+FFFD.
//
// Renderers sanitize operation text so input can't inject escape sequences of its own.
func sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r == utf8.RuneError || needsEscape(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size == 1:
			b.WriteRune('\uFFFD')
		case needsEscape(r):
			b.WriteString(`\x`)
			b.WriteByte(hexDigits[byte(r)>>4])
			b.WriteByte(hexDigits[byte(r)&0x0F])
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsEscape(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return r < 0x20 || (r >= 0x7F && r <= 0x9F)
}
