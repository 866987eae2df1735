package diff

import "fmt"

// DiffText tokenizes original and corrected and returns their shortest edit script.
func DiffText(original, corrected string) []Operation {
	ops := DiffTokens(Tokenize(original), Tokenize(corrected))
	if err := validate(ops, original, corrected); err != nil {
		panic(fmt.Errorf("DiffText: validate failed with %v", err))
	}
	return ops
}

// DiffTokens returns a shortest edit script from a to b (Myers, 1986). Tokens match on exact string equality.
//
// The result never contains more than len(a)+len(b) operations. If a and b are both empty, the result is empty; if one is empty, the result is all
// OpInsert or all OpDelete.
//
// When several shortest scripts exist, the one chosen is determined by the search order: at each diagonal the predecessor with the furthest x wins,
// and ties go to the deletion.
func DiffTokens(a, b []string) []Operation {
	switch {
	case len(a) == 0 && len(b) == 0:
		return []Operation{}
	case len(a) == 0:
		return uniform(OpInsert, b)
	case len(b) == 0:
		return uniform(OpDelete, a)
	}
	return backtrack(a, b, shortestEdit(a, b))
}

func uniform(op Op, tokens []string) []Operation {
	ops := make([]Operation, len(tokens))
	for i, t := range tokens {
		ops[i] = Operation{Op: op, Text: t}
	}
	return ops
}

// shortestEdit runs the greedy forward search and returns its trace: trace[d][k+d] is the furthest x reached on diagonal k (x - y == k) using exactly
// d insertions and deletions. The last entry of the trace is the round that reached (len(a), len(b)).
func shortestEdit(a, b []string) [][]int {
	n, m := len(a), len(b)
	max := n + m

	// v[offset+k] is the furthest x on diagonal k. It has one slot of headroom on each side so that v[offset+1] can seed round 0.
	offset := max + 1
	v := make([]int, 2*max+3)

	var trace [][]int
	for d := 0; d <= max; d++ {
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1] // insertion: down from diagonal k+1
			} else {
				x = v[offset+k-1] + 1 // deletion: right from diagonal k-1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				trace = append(trace, snapshot(v, offset, d))
				return trace
			}
		}
		trace = append(trace, snapshot(v, offset, d))
	}

	// Unreachable: d == n+m always reaches the corner.
	return trace
}

// snapshot copies the diagonals -d..d of v.
func snapshot(v []int, offset, d int) []int {
	s := make([]int, 2*d+1)
	copy(s, v[offset-d:offset+d+1])
	return s
}

// backtrack walks trace from (len(a), len(b)) back to the origin, using the same predecessor rule as shortestEdit, and returns the operations in
// left-to-right order.
func backtrack(a, b []string, trace [][]int) []Operation {
	x, y := len(a), len(b)

	// Built in reverse, then flipped.
	var rev []Operation
	for d := len(trace) - 1; d > 0; d-- {
		prev := trace[d-1] // prev[k+d-1] is diagonal k after round d-1
		at := func(k int) int { return prev[k+d-1] }

		k := x - y
		var prevK int
		if k == -d || (k != d && at(k-1) < at(k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := at(prevK)
		prevY := prevX - prevK

		// The snake walked after the edit:
		for x > prevX+boolInt(prevK == k-1) && y > prevY+boolInt(prevK == k+1) {
			rev = append(rev, Operation{Op: OpEqual, Text: a[x-1]})
			x--
			y--
		}

		if prevK == k-1 {
			rev = append(rev, Operation{Op: OpDelete, Text: a[x-1]})
		} else {
			rev = append(rev, Operation{Op: OpInsert, Text: b[y-1]})
		}
		x, y = prevX, prevY
	}

	// Round 0 is a single snake from the origin.
	for x > 0 && y > 0 {
		rev = append(rev, Operation{Op: OpEqual, Text: a[x-1]})
		x--
		y--
	}

	ops := make([]Operation, len(rev))
	for i, o := range rev {
		ops[len(rev)-1-i] = o
	}
	return ops
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
