package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/codalotl/redline/internal/config"
	"github.com/codalotl/redline/internal/diff"
	qcli "github.com/codalotl/redline/internal/q/cli"
	"github.com/spf13/pflag"
)

// Output formats for `redline diff`.
const (
	formatInline = "inline"
	formatSide   = "side"
	formatJSON   = "json"
	formatViews  = "views"
)

// renderFlags are the flags shared by the commands that render a diff.
type renderFlags struct {
	patches *string
	format  *string
	color   *string
	chars   *bool
	width   *int
}

func addRenderFlags(fs *pflag.FlagSet, formatUsage string) *renderFlags {
	return &renderFlags{
		patches: fs.StringP("patches", "p", "", "JSON file of patches (before/after records) used to align the diff"),
		format:  fs.StringP("format", "f", formatInline, formatUsage),
		color:   fs.String("color", "", "Colorize output: auto, always, never (default from config, else auto)"),
		chars:   fs.Bool("chars", false, "Highlight changed characters within a replaced word"),
		width:   fs.IntP("width", "w", 0, "Output width for side-by-side output (default: terminal width)"),
	}
}

// options resolves the render flags over cfg. Flags that were not set keep the configured values.
func (f *renderFlags) options(c *qcli.Context, cfg *config.Config) (diff.RenderOptions, error) {
	mode := cfg.Render.Color
	if c.Flags.Changed("color") {
		mode = config.ColorMode(*f.color)
		if !mode.IsValid() {
			return diff.RenderOptions{}, qcli.Usagef("invalid --color %q; valid values: auto, always, never", *f.color)
		}
	}
	width := cfg.Render.Width
	if c.Flags.Changed("width") {
		width = *f.width
	}
	if width <= 0 {
		width = terminalWidth(c.Out)
	}
	return diff.RenderOptions{
		Color:     useColor(mode, c.Out),
		CharLevel: cfg.Render.CharLevel || *f.chars,
		Width:     width,
	}, nil
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return qcli.Usagef("invalid --format %q; valid values: %v", format, allowed)
}

func writeDiff(w io.Writer, format string, ops []diff.Operation, opts diff.RenderOptions) error {
	switch format {
	case formatInline:
		return writeStringln(w, diff.RenderInline(ops, opts))
	case formatSide:
		return writeStringln(w, diff.RenderSideBySide(ops, opts))
	case formatJSON:
		return writeJSON(w, ops)
	case formatViews:
		return writeJSON(w, diff.NewViews(ops))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeStats(w io.Writer, s diff.Stats) error {
	_, err := fmt.Fprintf(w, "%d unchanged, %d inserted, %d deleted\n", s.Equal, s.Inserted, s.Deleted)
	return err
}

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeStringln(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
