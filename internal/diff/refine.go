package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Refine returns a character-level diff from before to after. It is meant for short texts, such as a single replaced word; use DiffText for anything
// longer.
//
// The result satisfies the same round-trip invariants as DiffText, but its operations carry character runs rather than tokens.
func Refine(before, after string) []Operation {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	ops := make([]Operation, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			ops = append(ops, Operation{Op: OpEqual, Text: d.Text})
		case diffmatchpatch.DiffDelete:
			ops = append(ops, Operation{Op: OpDelete, Text: d.Text})
		case diffmatchpatch.DiffInsert:
			ops = append(ops, Operation{Op: OpInsert, Text: d.Text})
		}
	}
	return ops
}
