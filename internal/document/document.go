// Package document diffs two versions of a JSON record field by field.
//
// The changed fields are found with a JSON Patch comparison; each changed string field is then diffed word by word with diff.Reconcile, using the
// patches declared for that field.
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/codalotl/redline/internal/diff"
	"github.com/wI2L/jsondiff"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// FieldDiff is the word diff of one string field.
type FieldDiff struct {
	Path       string           `json:"path"` // JSON Pointer of the field
	Original   string           `json:"original"`
	Corrected  string           `json:"corrected"`
	Operations []diff.Operation `json:"operations"`
	Stats      diff.Stats       `json:"stats"`
}

// Result lists the changed string fields of a document, sorted by path.
type Result struct {
	Fields []FieldDiff `json:"fields"`
}

// Option configures Diff.
type Option func(*options)

type options struct {
	workers   int
	maxTokens int
}

// WithWorkers sets how many fields are diffed concurrently. Default: 4.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithMaxTokens rejects fields whose text has more than n tokens (see diff.CheckLimit). Default: no limit.
func WithMaxTokens(n int) Option {
	return func(o *options) {
		o.maxTokens = n
	}
}

// Diff compares two JSON documents and word-diffs every string field whose value changed. A field added or removed on one side is diffed against the
// empty string. Non-string values are ignored.
//
// A patch applies to a field when its Path is empty or names the field, either as a JSON Pointer ("/sections/0/text") or dotted ("sections.0.text").
//
// Diff returns an error if either document is not valid JSON, if a field exceeds WithMaxTokens, or if ctx is canceled.
func Diff(ctx context.Context, original, corrected []byte, patches []diff.Patch, opts ...Option) (*Result, error) {
	o := options{workers: defaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}

	var src, dst any
	if err := json.Unmarshal(original, &src); err != nil {
		return nil, fmt.Errorf("document: decode original: %w", err)
	}
	if err := json.Unmarshal(corrected, &dst); err != nil {
		return nil, fmt.Errorf("document: decode corrected: %w", err)
	}

	jp, err := jsondiff.CompareJSON(original, corrected)
	if err != nil {
		return nil, fmt.Errorf("document: compare: %w", err)
	}

	fields := changedFields(src, dst, jp)
	slog.Debug("document compared", "json_patch_ops", len(jp), "changed_fields", len(fields))

	byPath := patchesByPath(patches)

	results := make([]FieldDiff, len(fields))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, f := range fields {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := diff.CheckLimit(o.maxTokens, f.Original, f.Corrected); err != nil {
				return fmt.Errorf("document: field %q: %w", f.Path, err)
			}
			ops := diff.Reconcile(f.Original, f.Corrected, slices.Concat(byPath[""], byPath[f.Path]))
			f.Operations = ops
			f.Stats = diff.CountStats(ops)
			results[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{Fields: results}, nil
}

// changedFields returns the string fields below the paths touched by jp whose values differ, sorted by path.
func changedFields(src, dst any, jp jsondiff.Patch) []FieldDiff {
	before := make(map[string]string)
	after := make(map[string]string)
	collect := func(ptr string) {
		// Appends to an array are addressed with "-"; diff the whole array instead.
		if parent, ok := strings.CutSuffix(ptr, "/-"); ok {
			ptr = parent
		}
		if v, ok := lookup(src, ptr); ok {
			stringLeaves(v, ptr, before)
		}
		if v, ok := lookup(dst, ptr); ok {
			stringLeaves(v, ptr, after)
		}
	}
	for _, op := range jp {
		switch op.Type {
		case jsondiff.OperationTest:
			continue
		case jsondiff.OperationMove, jsondiff.OperationCopy:
			collect(op.From)
		}
		collect(op.Path)
	}

	paths := make(map[string]struct{}, len(before)+len(after))
	for p := range before {
		paths[p] = struct{}{}
	}
	for p := range after {
		paths[p] = struct{}{}
	}

	var fields []FieldDiff
	for p := range paths {
		if before[p] == after[p] {
			continue
		}
		fields = append(fields, FieldDiff{Path: p, Original: before[p], Corrected: after[p]})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Path < fields[j].Path })
	return fields
}

// patchesByPath groups patches by normalized path, keeping their order. Patches without a path are under "".
func patchesByPath(patches []diff.Patch) map[string][]diff.Patch {
	m := make(map[string][]diff.Patch)
	for _, p := range patches {
		key := normalizePath(p.Path)
		m[key] = append(m[key], p)
	}
	return m
}
