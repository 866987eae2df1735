package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "plain text", want: "plain text"},
		{in: "tab\tnew\nline\r", want: "tab\tnew\nline\r"},
		{in: "\x1b[31mred", want: `\x1B[31mred`},
		{in: "bell\x07 del\x7f", want: `bell\x07 del\x7F`},
		{in: "csi\u009b", want: `csi\x9B`},
		{in: "vt\x0bff\x0c", want: `vt\x0Bff\x0C`},
		{in: "bad\xffutf8", want: "bad�utf8"},
		{in: "日本語 é", want: "日本語 é"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, sanitize(tc.in), "input %q", tc.in)
	}
}

func TestRenderers_EscapeControlCharacters(t *testing.T) {
	ops := DiffText("safe \x1b[2Jtext", "safe text")
	assert.Equal(t, `safe [-\x1B[2Jtext-]{+text+}`, RenderInline(ops, RenderOptions{}))
	assert.NotContains(t, RenderSideBySide(ops, RenderOptions{Width: 60}), "\x1b")

	// The operations themselves keep the raw text.
	assert.Equal(t, "safe \x1b[2Jtext", OriginalText(ops))
}
