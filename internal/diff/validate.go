package diff

import (
	"fmt"
	"strings"
)

// validate checks the invariants of ops against the texts they were computed from and returns an error on the first violation.
func validate(ops []Operation, original, corrected string) error {
	var origConcat, corrConcat strings.Builder
	for i, o := range ops {
		if o.Text == "" {
			return fmt.Errorf("op[%d]: empty %v", i, o.Op)
		}
		switch o.Op {
		case OpEqual:
			origConcat.WriteString(o.Text)
			corrConcat.WriteString(o.Text)
		case OpDelete:
			origConcat.WriteString(o.Text)
		case OpInsert:
			corrConcat.WriteString(o.Text)
		default:
			return fmt.Errorf("op[%d]: unknown %v", i, o.Op)
		}
	}

	if origConcat.String() != original {
		return fmt.Errorf("diff: operations do not reconstruct original")
	}
	if corrConcat.String() != corrected {
		return fmt.Errorf("diff: operations do not reconstruct corrected")
	}
	return nil
}
