// Package diff computes word-level diffs between an original and a corrected version of a text field, optionally biased by a list of declared patches.
//
// Representation: a diff is an ordered []Operation. Each Operation has an Op and the token Text it carries:
//   - OpEqual: token present on both sides
//   - OpInsert: token present only in the corrected text
//   - OpDelete: token present only in the original text
//
// Invariants:
//   - concat(Text of OpEqual and OpDelete operations) == original
//   - concat(Text of OpEqual and OpInsert operations) == corrected
//
// Both hold for DiffTokens, DiffText and Reconcile. Consumers should rely on them rather than on any particular alignment.
//
// Tokens: Tokenize splits text into words, whitespace runs and single punctuation marks. Joining the tokens reconstructs the input.
//
// Getting a diff:
//
//	ops := diff.DiffText(original, corrected)
//	ops = diff.Reconcile(original, corrected, patches) // surfaces every declared patch it can align
//
// DiffTokens is a Myers shortest edit script: O((N+M)·D) time and space, where D is the edit distance. D approaches N+M for unrelated texts, so callers
// serving untrusted input should bound input size first (see CheckLimit).
//
// Rendering: OriginalView and CorrectedView project a diff onto each side. RenderInline and RenderSideBySide format those views for terminals.
//
// All functions are pure and safe for concurrent use.
package diff
