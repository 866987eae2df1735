package diff

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Op is an operation from original text to corrected text.
type Op int

// Operations from original text to corrected text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// String returns the wire name of op ("equal", "insert", "delete").
func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// MarshalJSON encodes op as its wire name.
func (op Op) MarshalJSON() ([]byte, error) {
	switch op {
	case OpEqual, OpInsert, OpDelete:
		return json.Marshal(op.String())
	}
	return nil, fmt.Errorf("diff: cannot marshal %v", op)
}

// UnmarshalJSON decodes a wire name into op.
func (op *Op) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "equal":
		*op = OpEqual
	case "insert":
		*op = OpInsert
	case "delete":
		*op = OpDelete
	default:
		return fmt.Errorf("diff: unknown operation type %q", s)
	}
	return nil
}

// Operation is one token of a diff.
//
// Serialized as {"type": "equal"|"insert"|"delete", "text": "..."}.
type Operation struct {
	Op   Op     `json:"type"`
	Text string `json:"text"` // Token text. Never empty when produced by this package.
}

func (o Operation) String() string {
	return fmt.Sprintf("%v(%q)", o.Op, o.Text)
}

// OriginalText reconstructs the original side of ops (OpEqual and OpDelete texts).
func OriginalText(ops []Operation) string {
	var b strings.Builder
	for _, o := range ops {
		if o.Op != OpInsert {
			b.WriteString(o.Text)
		}
	}
	return b.String()
}

// CorrectedText reconstructs the corrected side of ops (OpEqual and OpInsert texts).
func CorrectedText(ops []Operation) string {
	var b strings.Builder
	for _, o := range ops {
		if o.Op != OpDelete {
			b.WriteString(o.Text)
		}
	}
	return b.String()
}

// Stats counts the non-whitespace tokens of a diff by kind.
type Stats struct {
	Equal    int `json:"equal"`
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// Changed reports whether any token was inserted or deleted.
func (s Stats) Changed() bool {
	return s.Inserted > 0 || s.Deleted > 0
}

// CountStats returns the Stats of ops. Whitespace-only operations are not counted.
func CountStats(ops []Operation) Stats {
	var s Stats
	for _, o := range ops {
		if strings.TrimSpace(o.Text) == "" {
			continue
		}
		switch o.Op {
		case OpEqual:
			s.Equal++
		case OpInsert:
			s.Inserted++
		case OpDelete:
			s.Deleted++
		}
	}
	return s
}
