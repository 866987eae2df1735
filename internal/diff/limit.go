package diff

import (
	"errors"
	"fmt"
)

// ErrTooLarge is returned by CheckLimit and CheckPatches when an input is too large to diff safely.
var ErrTooLarge = errors.New("input too large to diff")

// CheckLimit returns an error wrapping ErrTooLarge if any of texts tokenizes to more than maxTokens tokens. maxTokens <= 0 disables the check.
//
// DiffTokens needs O((N+M)·D) memory and D can approach N+M, so request handlers should call this before diffing untrusted input.
func CheckLimit(maxTokens int, texts ...string) error {
	if maxTokens <= 0 {
		return nil
	}
	for i, t := range texts {
		// Cheap pre-check: every token is at least one byte.
		if len(t) <= maxTokens {
			continue
		}
		if n := len(Tokenize(t)); n > maxTokens {
			return fmt.Errorf("text %d has %d tokens (limit %d): %w", i, n, maxTokens, ErrTooLarge)
		}
	}
	return nil
}

// CheckPatches returns an error wrapping ErrTooLarge if there are more than maxPatches patches. maxPatches <= 0 disables the check.
//
// Reconcile tries every patch at each cursor step, so its cost grows with the patch count as well as the text length.
func CheckPatches(maxPatches int, patches []Patch) error {
	if maxPatches <= 0 || len(patches) <= maxPatches {
		return nil
	}
	return fmt.Errorf("%d patches (limit %d): %w", len(patches), maxPatches, ErrTooLarge)
}
