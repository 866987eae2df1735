package document

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/codalotl/redline/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	original := `{"title": "The cat sat", "body": "Hello world", "n": 1}`
	corrected := `{"title": "The dog sat", "body": "Hello world", "n": 2}`

	res, err := Diff(context.Background(), []byte(original), []byte(corrected), []diff.Patch{{Path: "title", Before: "cat", After: "dog"}})
	require.NoError(t, err)
	require.Len(t, res.Fields, 1)

	f := res.Fields[0]
	assert.Equal(t, "/title", f.Path)
	assert.Equal(t, "The cat sat", f.Original)
	assert.Equal(t, "The dog sat", f.Corrected)
	assert.Equal(t, diff.Reconcile("The cat sat", "The dog sat", []diff.Patch{{Before: "cat", After: "dog"}}), f.Operations)
	assert.Equal(t, diff.Stats{Equal: 2, Inserted: 1, Deleted: 1}, f.Stats)
}

func TestDiff_NestedAddedAndRemoved(t *testing.T) {
	original := `{"sections": [{"text": "a b"}, {"text": "same"}], "old": "gone away"}`
	corrected := `{"sections": [{"text": "a c"}, {"text": "same"}], "extra": "brand new"}`

	res, err := Diff(context.Background(), []byte(original), []byte(corrected), nil, WithWorkers(1))
	require.NoError(t, err)

	var paths []string
	for _, f := range res.Fields {
		paths = append(paths, f.Path)
		assert.Equal(t, f.Original, diff.OriginalText(f.Operations))
		assert.Equal(t, f.Corrected, diff.CorrectedText(f.Operations))
	}
	assert.Equal(t, []string{"/extra", "/old", "/sections/0/text"}, paths)

	assert.Equal(t, "", res.Fields[0].Original)
	assert.Equal(t, "", res.Fields[1].Corrected)
}

func TestDiff_PatchPaths(t *testing.T) {
	original := `{"body": "the big cat"}`
	corrected := `{"body": "the cat"}`
	grouped := diff.Reconcile("the big cat", "the cat", []diff.Patch{{Before: "big cat", After: "cat"}})
	plain := diff.DiffText("the big cat", "the cat")
	require.NotEqual(t, grouped, plain)

	tests := []struct {
		path string
		want []diff.Operation
	}{
		{path: "", want: grouped},
		{path: "body", want: grouped},
		{path: "/body", want: grouped},
		{path: "title", want: plain},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			patches := []diff.Patch{{Path: tc.path, Before: "big cat", After: "cat"}}
			res, err := Diff(context.Background(), []byte(original), []byte(corrected), patches)
			require.NoError(t, err)
			require.Len(t, res.Fields, 1)
			assert.Equal(t, tc.want, res.Fields[0].Operations)
		})
	}
}

func TestDiff_FieldPatchesStayScoped(t *testing.T) {
	const fields = 40
	originalDoc := make(map[string]string, fields)
	correctedDoc := make(map[string]string, fields)
	for i := range fields {
		originalDoc[fmt.Sprintf("f%d", i)] = "x big cat"
		correctedDoc[fmt.Sprintf("f%d", i)] = "x cat"
	}
	original, err := json.Marshal(originalDoc)
	require.NoError(t, err)
	corrected, err := json.Marshal(correctedDoc)
	require.NoError(t, err)

	// Three path-less patches leave spare capacity in their shared slice.
	var patches []diff.Patch
	for i := range 3 {
		patches = append(patches, diff.Patch{Before: fmt.Sprintf("zz%d", i), After: fmt.Sprintf("yy%d", i)})
	}
	global := append([]diff.Patch(nil), patches...)
	scoped := diff.Patch{Path: "f0", Before: "big cat", After: "cat"}
	patches = append(patches, scoped)

	grouped := diff.Reconcile("x big cat", "x cat", append(global, scoped))
	plain := diff.Reconcile("x big cat", "x cat", global)
	require.NotEqual(t, grouped, plain)

	for range 20 {
		res, err := Diff(context.Background(), original, corrected, patches, WithWorkers(8))
		require.NoError(t, err)
		require.Len(t, res.Fields, fields)
		for _, f := range res.Fields {
			if f.Path == "/f0" {
				assert.Equal(t, grouped, f.Operations, "field %s", f.Path)
			} else {
				assert.Equal(t, plain, f.Operations, "field %s", f.Path)
			}
		}
	}
}

func TestDiff_NoChanges(t *testing.T) {
	doc := []byte(`{"a": "x", "b": [1, 2]}`)
	res, err := Diff(context.Background(), doc, doc, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Fields)
}

func TestDiff_Errors(t *testing.T) {
	_, err := Diff(context.Background(), []byte(`{`), []byte(`{}`), nil)
	assert.ErrorContains(t, err, "document: decode original")

	_, err = Diff(context.Background(), []byte(`{}`), []byte(`nope`), nil)
	assert.ErrorContains(t, err, "document: decode corrected")

	_, err = Diff(context.Background(), []byte(`{"a": "x"}`), []byte(`{"a": "x y z"}`), nil, WithMaxTokens(3))
	assert.ErrorIs(t, err, diff.ErrTooLarge)
	assert.ErrorContains(t, err, `field "/a"`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Diff(ctx, []byte(`{"a": "x"}`), []byte(`{"a": "y"}`), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPointers(t *testing.T) {
	assert.Nil(t, splitPointer(""))
	assert.Equal(t, []string{"a/b", "c~d", "0"}, splitPointer("/a~1b/c~0d/0"))

	assert.Equal(t, "", normalizePath(""))
	assert.Equal(t, "/sections/0/text", normalizePath("sections.0.text"))
	assert.Equal(t, "/x", normalizePath("/x"))

	doc := map[string]any{"a/b": []any{"zero", map[string]any{"k": "v"}}}
	v, ok := lookup(doc, "/a~1b/1/k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	_, ok = lookup(doc, "/a~1b/7")
	assert.False(t, ok)

	leaves := make(map[string]string)
	stringLeaves(doc, "", leaves)
	assert.Equal(t, map[string]string{"/a~1b/0": "zero", "/a~1b/1/k": "v"}, leaves)
}
