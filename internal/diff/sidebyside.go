package diff

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

const (
	columnSeparator = " │ "
	separatorWidth  = 3 // cells; the box-drawing bar is narrow outside East Asian locales
	minColumnWidth  = 8
	tabWidth        = 4
)

// RenderSideBySide renders the original view in a left column and the corrected view in a right column, each wrapped to half of opts.Width. Widths
// are measured in terminal cells per grapheme cluster, so wide (ex: CJK) characters are never split. Newlines in the text start a new row.
//
// Rows are paired by position: the columns are wrapped independently, so a long deletion on one side does not pad the other.
func RenderSideBySide(ops []Operation, opts RenderOptions) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	col := (width - separatorWidth) / 2
	if col < minColumnWidth {
		col = minColumnWidth
	}

	left := wrapSegments(Coalesce(OriginalView(ops)), col, opts.Color)
	right := wrapSegments(Coalesce(CorrectedView(ops)), col, opts.Color)

	sep := columnSeparator
	if opts.Color {
		sep = dimFG + columnSeparator + reset
	}

	n := max(len(left), len(right))
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var l, r wrappedRow
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		lines = append(lines, l.text+strings.Repeat(" ", col-l.width)+sep+r.text)
	}
	return strings.Join(lines, "\n")
}

// wrappedRow is one row of a wrapped column. width is its visible width in cells (ANSI codes excluded).
type wrappedRow struct {
	text  string
	width int
}

// wrapSegments lays segs out in rows at most col cells wide. Without color, marked text is bracketed with the inline markers.
func wrapSegments(segs []Segment, col int, color bool) []wrappedRow {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	var rows []wrappedRow
	var cur strings.Builder
	curWidth := 0
	active := MarkNone // style currently open in cur (color only)

	flush := func() {
		if active != MarkNone {
			cur.WriteString(reset)
			active = MarkNone
		}
		rows = append(rows, wrappedRow{text: cur.String(), width: curWidth})
		cur.Reset()
		curWidth = 0
	}

	put := func(unit string, w int, mark Mark) {
		if curWidth+w > col && curWidth > 0 {
			flush()
		}
		if color && mark != active {
			if active != MarkNone {
				cur.WriteString(reset)
			}
			if mark != MarkNone {
				cur.WriteString(markStyle(mark))
			}
			active = mark
		}
		cur.WriteString(unit)
		curWidth += w
	}

	for _, s := range segs {
		if !color && s.Mark != MarkNone {
			open, _ := markers(s.Mark)
			put(open, len(open), MarkNone)
		}
		iter := graphemes.FromString(sanitize(s.Text))
		for iter.Next() {
			g := iter.Value()
			switch g {
			case "\n", "\r\n", "\r":
				flush()
				continue
			case "\t":
				put(strings.Repeat(" ", tabWidth), tabWidth, s.Mark)
				continue
			}
			put(g, cond.StringWidth(g), s.Mark)
		}
		if !color && s.Mark != MarkNone {
			_, closing := markers(s.Mark)
			put(closing, len(closing), MarkNone)
		}
	}
	if cur.Len() > 0 || len(rows) == 0 {
		flush()
	}
	return rows
}

func markStyle(m Mark) string {
	switch m {
	case MarkRemoved:
		return blackFG + pinkSpan
	case MarkAdded:
		return blackFG + greenSpan
	}
	return ""
}

func markers(m Mark) (string, string) {
	switch m {
	case MarkRemoved:
		return delOpen, delClose
	case MarkAdded:
		return insOpen, insClose
	}
	return "", ""
}
