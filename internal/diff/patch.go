package diff

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Patch is a before/after substitution declared by an upstream correction agent.
//
// Agent, Path and Reason are metadata; only Before and After affect reconciliation.
type Patch struct {
	Agent  string `json:"agent,omitempty"`
	Path   string `json:"path,omitempty"`   // Field the patch applies to (ex: "body" or "/sections/0/text").
	Before string `json:"before"`           // Text in the original.
	After  string `json:"after"`            // Replacement text in the corrected version.
	Reason string `json:"reason,omitempty"` // Set on unapplied patches.
}

// wirePatch distinguishes absent before/after fields from empty ones.
type wirePatch struct {
	Agent  string  `json:"agent"`
	Path   string  `json:"path"`
	Before *string `json:"before"`
	After  *string `json:"after"`
	Reason string  `json:"reason"`
}

// DecodePatches decodes a JSON array of patch records from r. Records missing "before" or "after" (including unapplied patches that only carry a
// "reason") are dropped, so every returned Patch can be reconciled. A null or empty document yields no patches.
func DecodePatches(r io.Reader) ([]Patch, error) {
	var raw []wirePatch
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("diff: decode patches: %w", err)
	}
	return wellFormed(raw), nil
}

// UnmarshalPatches is DecodePatches over an already-read JSON value (ex: a field of a request body).
func UnmarshalPatches(data json.RawMessage) ([]Patch, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw []wirePatch
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("diff: decode patches: %w", err)
	}
	return wellFormed(raw), nil
}

func wellFormed(raw []wirePatch) []Patch {
	patches := make([]Patch, 0, len(raw))
	for _, w := range raw {
		if w.Before == nil || w.After == nil {
			continue
		}
		patches = append(patches, Patch{Agent: w.Agent, Path: w.Path, Before: *w.Before, After: *w.After, Reason: w.Reason})
	}
	return patches
}

// Change is one entry of a ChangeSet: trimmed before/after texts and their tokens.
type Change struct {
	Before       string
	After        string
	BeforeTokens []string
	AfterTokens  []string
}

// ChangeSet maps trimmed patch before-texts to trimmed after-texts. Iteration order is the order in which each before-text first appeared in the
// patch list; it is the priority order during reconciliation.
type ChangeSet struct {
	changes []Change
	index   map[string]int // before -> position in changes
}

// NewChangeSet builds a ChangeSet from patches. Patches whose trimmed before and after are equal carry no information and are discarded. When two
// patches share a before-text, the later after-text replaces the earlier one but the entry keeps its original position.
func NewChangeSet(patches []Patch) *ChangeSet {
	cs := &ChangeSet{index: make(map[string]int)}
	for _, p := range patches {
		before := strings.TrimSpace(p.Before)
		after := strings.TrimSpace(p.After)
		if before == after {
			continue
		}
		c := Change{Before: before, After: after, BeforeTokens: Tokenize(before), AfterTokens: Tokenize(after)}
		if i, ok := cs.index[before]; ok {
			cs.changes[i] = c
			continue
		}
		cs.index[before] = len(cs.changes)
		cs.changes = append(cs.changes, c)
	}
	return cs
}

// Len returns the number of entries.
func (cs *ChangeSet) Len() int {
	return len(cs.changes)
}

// Entries returns the entries in priority order. The caller must not modify them.
func (cs *ChangeSet) Entries() []Change {
	return cs.changes
}

// Lookup returns the after-text for a trimmed before-text.
func (cs *ChangeSet) Lookup(before string) (string, bool) {
	i, ok := cs.index[before]
	if !ok {
		return "", false
	}
	return cs.changes[i].After, true
}
