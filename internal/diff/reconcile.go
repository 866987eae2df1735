package diff

import "fmt"

// Reconcile diffs original against corrected so that the declared patches surface as explicit edits.
//
// A shortest edit script may align an agent's substitution differently (ex: keep a shared token as OpEqual and split the edit around it). Reconcile
// instead walks both token sequences with one cursor each and, at every position, checks in this order:
//  1. Substitution: some change's before-tokens start at the original cursor and its after-tokens start at the corrected cursor. Emits one OpDelete
//     per before-token, then one OpInsert per after-token.
//  2. Insertion: some change's after-tokens start at the corrected cursor but not at the original cursor. Emits OpInsert for each.
//  3. Deletion: some change's before-tokens start at the original cursor but not at the corrected cursor. Emits OpDelete for each.
//  4. Otherwise tokens are compared one at a time: equal tokens emit OpEqual; different tokens emit OpDelete then OpInsert; once one side is exhausted
//     the other side's tokens are emitted as insertions or deletions.
//
// Within each check, changes are tried in ChangeSet order and the first match wins. If no patch survives NewChangeSet, Reconcile returns
// DiffText(original, corrected).
//
// Matching is greedy and positional. Overlapping or out-of-order patches, and patches whose text recurs elsewhere in the document, can be matched at
// the wrong occurrence or not at all. The result always satisfies the round-trip invariants, but it is not guaranteed to be a shortest script.
func Reconcile(original, corrected string, patches []Patch) []Operation {
	cs := NewChangeSet(patches)
	if cs.Len() == 0 {
		return DiffText(original, corrected)
	}
	ops := reconcileTokens(Tokenize(original), Tokenize(corrected), cs)
	if err := validate(ops, original, corrected); err != nil {
		panic(fmt.Errorf("Reconcile: validate failed with %v", err))
	}
	return ops
}

func reconcileTokens(a, b []string, cs *ChangeSet) []Operation {
	ops := make([]Operation, 0, len(a)+len(b))
	i, j := 0, 0 // cursors into a (original) and b (corrected)

	emit := func(op Op, tokens []string) {
		for _, t := range tokens {
			ops = append(ops, Operation{Op: op, Text: t})
		}
	}

	for i < len(a) || j < len(b) {
		if c, ok := matchSubstitution(a, i, b, j, cs); ok {
			emit(OpDelete, c.BeforeTokens)
			emit(OpInsert, c.AfterTokens)
			i += len(c.BeforeTokens)
			j += len(c.AfterTokens)
			continue
		}
		if c, ok := matchInsertion(a, i, b, j, cs); ok {
			emit(OpInsert, c.AfterTokens)
			j += len(c.AfterTokens)
			continue
		}
		if c, ok := matchDeletion(a, i, b, j, cs); ok {
			emit(OpDelete, c.BeforeTokens)
			i += len(c.BeforeTokens)
			continue
		}

		switch {
		case i >= len(a):
			ops = append(ops, Operation{Op: OpInsert, Text: b[j]})
			j++
		case j >= len(b):
			ops = append(ops, Operation{Op: OpDelete, Text: a[i]})
			i++
		case a[i] == b[j]:
			ops = append(ops, Operation{Op: OpEqual, Text: a[i]})
			i++
			j++
		default:
			ops = append(ops, Operation{Op: OpDelete, Text: a[i]}, Operation{Op: OpInsert, Text: b[j]})
			i++
			j++
		}
	}
	return ops
}

// matchSubstitution returns the first change whose before-tokens start at a[i] and whose after-tokens start at b[j]. NewChangeSet guarantees at
// least one side is non-empty, so a match always advances a cursor.
func matchSubstitution(a []string, i int, b []string, j int, cs *ChangeSet) (Change, bool) {
	for _, c := range cs.changes {
		if hasTokensAt(a, i, c.BeforeTokens) && hasTokensAt(b, j, c.AfterTokens) {
			return c, true
		}
	}
	return Change{}, false
}

// matchInsertion returns the first non-empty change whose after-tokens start at b[j] but not at a[i].
func matchInsertion(a []string, i int, b []string, j int, cs *ChangeSet) (Change, bool) {
	for _, c := range cs.changes {
		if len(c.AfterTokens) > 0 && hasTokensAt(b, j, c.AfterTokens) && !hasTokensAt(a, i, c.AfterTokens) {
			return c, true
		}
	}
	return Change{}, false
}

// matchDeletion returns the first non-empty change whose before-tokens start at a[i] but not at b[j].
func matchDeletion(a []string, i int, b []string, j int, cs *ChangeSet) (Change, bool) {
	for _, c := range cs.changes {
		if len(c.BeforeTokens) > 0 && hasTokensAt(a, i, c.BeforeTokens) && !hasTokensAt(b, j, c.BeforeTokens) {
			return c, true
		}
	}
	return Change{}, false
}

// hasTokensAt reports whether want occurs in tokens starting at index at. An empty want matches anywhere, including at len(tokens).
func hasTokensAt(tokens []string, at int, want []string) bool {
	if at+len(want) > len(tokens) {
		return false
	}
	for k, w := range want {
		if tokens[at+k] != w {
			return false
		}
	}
	return true
}
