package diff

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mark is the visual marker a Segment carries.
type Mark int

// Marks. MarkRemoved only appears in original views and MarkAdded only in corrected views.
const (
	MarkNone Mark = iota
	MarkRemoved
	MarkAdded
)

func (m Mark) String() string {
	switch m {
	case MarkNone:
		return "none"
	case MarkRemoved:
		return "removed"
	case MarkAdded:
		return "added"
	}
	return fmt.Sprintf("Mark(%d)", int(m))
}

// MarshalJSON encodes m as its name.
func (m Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Segment is a piece of text in one side's view of a diff.
type Segment struct {
	Text string `json:"text"`
	Mark Mark   `json:"mark"`
}

// OriginalView returns the original side of ops: one Segment per OpEqual or OpDelete operation, in order, with deletions marked MarkRemoved.
func OriginalView(ops []Operation) []Segment {
	segs := make([]Segment, 0, len(ops))
	for _, o := range ops {
		switch o.Op {
		case OpEqual:
			segs = append(segs, Segment{Text: o.Text, Mark: MarkNone})
		case OpDelete:
			segs = append(segs, Segment{Text: o.Text, Mark: MarkRemoved})
		case OpInsert:
			// Not part of the original.
		}
	}
	return segs
}

// CorrectedView returns the corrected side of ops: one Segment per OpEqual or OpInsert operation, in order, with insertions marked MarkAdded.
func CorrectedView(ops []Operation) []Segment {
	segs := make([]Segment, 0, len(ops))
	for _, o := range ops {
		switch o.Op {
		case OpEqual:
			segs = append(segs, Segment{Text: o.Text, Mark: MarkNone})
		case OpInsert:
			segs = append(segs, Segment{Text: o.Text, Mark: MarkAdded})
		case OpDelete:
			// Not part of the corrected text.
		}
	}
	return segs
}

// Coalesce merges neighbouring segments with the same Mark. Concatenated text is unchanged.
func Coalesce(segs []Segment) []Segment {
	var out []Segment
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Mark == s.Mark {
			out[len(out)-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// Views holds both coalesced projections of a diff, ready for display by API clients.
type Views struct {
	Original  []Segment `json:"original"`
	Corrected []Segment `json:"corrected"`
}

// NewViews returns the coalesced original and corrected views of ops.
func NewViews(ops []Operation) Views {
	return Views{
		Original:  Coalesce(OriginalView(ops)),
		Corrected: Coalesce(CorrectedView(ops)),
	}
}

// RenderOptions controls RenderInline and RenderSideBySide.
type RenderOptions struct {
	Color     bool // Emit ANSI 256-color highlighting instead of [-...-] / {+...+} markers.
	CharLevel bool // RenderInline only: highlight changed characters when a single word is replaced by a single word.
	Width     int  // RenderSideBySide only: total width in terminal cells. <= 0 means DefaultWidth.
}

// DefaultWidth is the side-by-side width used when RenderOptions.Width is unset.
const DefaultWidth = 100

// Colors (ANSI) for pretty output.
const (
	reset     = "\x1b[0m"
	blackFG   = "\x1b[30m"
	pinkSpan  = "\x1b[48;5;217m" // deleted text
	greenSpan = "\x1b[48;5;114m" // inserted text
	dimFG     = "\x1b[2m"
)

// Plain-text markers (wdiff convention).
const (
	delOpen  = "[-"
	delClose = "-]"
	insOpen  = "{+"
	insClose = "+}"
)

// RenderInline renders ops as one stream of text. Unchanged text is copied as is, except that control characters are escaped.
//
// Each run of changes between unchanged tokens is shown as its deleted text followed by its inserted text: "[-old-]{+new+}" without
// color, or highlighted spans with color.
//
// With CharLevel, a run that replaces exactly one word with one word is refined to the characters that changed (ex: "colo[-u-]r").
func RenderInline(ops []Operation, opts RenderOptions) string {
	var b strings.Builder
	for i := 0; i < len(ops); {
		if ops[i].Op == OpEqual {
			b.WriteString(sanitize(ops[i].Text))
			i++
			continue
		}

		// Collect a run of non-equal ops until next equal or end.
		j := i
		var del, ins strings.Builder
		for j < len(ops) && ops[j].Op != OpEqual {
			switch ops[j].Op {
			case OpDelete:
				del.WriteString(ops[j].Text)
			case OpInsert:
				ins.WriteString(ops[j].Text)
			}
			j++
		}
		i = j

		if opts.CharLevel && isWord(del.String()) && isWord(ins.String()) {
			for _, r := range Refine(del.String(), ins.String()) {
				writeChange(&b, r.Op, r.Text, opts.Color)
			}
			continue
		}
		writeChange(&b, OpDelete, del.String(), opts.Color)
		writeChange(&b, OpInsert, ins.String(), opts.Color)
	}
	return b.String()
}

func writeChange(b *strings.Builder, op Op, text string, color bool) {
	if text == "" {
		return
	}
	text = sanitize(text)
	switch op {
	case OpEqual:
		b.WriteString(text)
	case OpDelete:
		if color {
			b.WriteString(blackFG + pinkSpan + text + reset)
		} else {
			b.WriteString(delOpen + text + delClose)
		}
	case OpInsert:
		if color {
			b.WriteString(blackFG + greenSpan + text + reset)
		} else {
			b.WriteString(insOpen + text + insClose)
		}
	}
}
