package diff

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eq(s string) Operation  { return Operation{Op: OpEqual, Text: s} }
func ins(s string) Operation { return Operation{Op: OpInsert, Text: s} }
func del(s string) Operation { return Operation{Op: OpDelete, Text: s} }

func TestReconcile(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		corrected string
		patches   []Patch
		want      []Operation
	}{
		{
			name:      "substitution surfaces as delete then insert",
			original:  "The cat sat",
			corrected: "The dog sat",
			patches:   []Patch{{Before: "cat", After: "dog"}},
			want:      []Operation{eq("The"), eq(" "), del("cat"), ins("dog"), eq(" "), eq("sat")},
		},
		{
			name:      "multi-token patch is not split around shared tokens",
			original:  "the big cat",
			corrected: "the cat",
			patches:   []Patch{{Before: "big cat", After: "cat"}},
			want:      []Operation{eq("the"), eq(" "), del("big"), del(" "), del("cat"), ins("cat")},
		},
		{
			name:      "insertion only",
			original:  "Stop now",
			corrected: "Stop! now",
			patches:   []Patch{{Before: "ouch", After: "!"}},
			want:      []Operation{eq("Stop"), ins("!"), eq(" "), eq("now")},
		},
		{
			name:      "deletion only",
			original:  "Stop! now",
			corrected: "Stop now",
			patches:   []Patch{{Before: "!", After: "?"}},
			want:      []Operation{eq("Stop"), del("!"), eq(" "), eq("now")},
		},
		{
			name:      "empty before inserts",
			original:  "Hello world",
			corrected: "Hello, world",
			patches:   []Patch{{Before: "", After: ","}},
			want:      []Operation{eq("Hello"), ins(","), eq(" "), eq("world")},
		},
		{
			name:      "patch texts are trimmed",
			original:  "The cat sat",
			corrected: "The dog sat",
			patches:   []Patch{{Before: " cat\n", After: "dog "}},
			want:      []Operation{eq("The"), eq(" "), del("cat"), ins("dog"), eq(" "), eq("sat")},
		},
		{
			name:      "unmatched tokens fall back to pairwise replacement",
			original:  "a b",
			corrected: "a c",
			patches:   []Patch{{Before: "x", After: "y"}},
			want:      []Operation{eq("a"), eq(" "), del("b"), ins("c")},
		},
		{
			name:      "trailing original tokens are deleted",
			original:  "a b c",
			corrected: "a",
			patches:   []Patch{{Before: "x", After: "y"}},
			want:      []Operation{eq("a"), del(" "), del("b"), del(" "), del("c")},
		},
		{
			name:      "trailing corrected tokens are inserted",
			original:  "a",
			corrected: "a b",
			patches:   []Patch{{Before: "x", After: "y"}},
			want:      []Operation{eq("a"), ins(" "), ins("b")},
		},
		{
			name:      "earlier occurrence that is unchanged is kept",
			original:  "cat and cat",
			corrected: "cat and dog",
			patches:   []Patch{{Before: "cat", After: "dog"}},
			want:      []Operation{eq("cat"), eq(" "), eq("and"), eq(" "), del("cat"), ins("dog")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Reconcile(tc.original, tc.corrected, tc.patches)
			require.NoError(t, validate(got, tc.original, tc.corrected))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReconcile_FirstMatchWins(t *testing.T) {
	original, corrected := "The cat sat", "The dog stood"
	short := Patch{Before: "cat", After: "dog"}
	long := Patch{Before: "cat sat", After: "dog stood"}

	got := Reconcile(original, corrected, []Patch{short, long})
	assert.Equal(t, []Operation{eq("The"), eq(" "), del("cat"), ins("dog"), eq(" "), del("sat"), ins("stood")}, got)

	got = Reconcile(original, corrected, []Patch{long, short})
	assert.Equal(t, []Operation{eq("The"), eq(" "), del("cat"), del(" "), del("sat"), ins("dog"), ins(" "), ins("stood")}, got)
}

func TestReconcile_SubstitutionBeatsEarlierInsertion(t *testing.T) {
	// The first patch matches "dog" as an insertion-only change; the second matches "cat" -> "dog" as a full substitution.
	patches := []Patch{
		{Before: "x", After: "dog"},
		{Before: "cat", After: "dog"},
	}
	got := Reconcile("A cat", "A dog", patches)
	assert.Equal(t, []Operation{eq("A"), eq(" "), del("cat"), ins("dog")}, got)
}

func TestReconcile_NoOpPatchesMatchPlainDiff(t *testing.T) {
	original, corrected := "the big cat sat", "the cat stood"
	patches := []Patch{
		{Before: "cat", After: "cat"},
		{Before: " big ", After: "big"},
		{Before: "", After: "  "},
	}
	assert.Equal(t, DiffText(original, corrected), Reconcile(original, corrected, patches))
	assert.Equal(t, DiffText(original, corrected), Reconcile(original, corrected, nil))
}

func TestReconcile_RoundTripProperty(t *testing.T) {
	texts := randomTexts(40)
	rng := rand.New(rand.NewPCG(3, 4))
	pick := func() string {
		toks := Tokenize(texts[rng.IntN(len(texts))])
		if len(toks) == 0 {
			return ""
		}
		start := rng.IntN(len(toks))
		end := start + 1 + rng.IntN(min(3, len(toks)-start))
		var s string
		for _, tok := range toks[start:end] {
			s += tok
		}
		return s
	}

	for i, a := range texts {
		for _, b := range texts[i:] {
			var patches []Patch
			for k := rng.IntN(4); k > 0; k-- {
				patches = append(patches, Patch{Before: pick(), After: pick()})
			}
			ops := Reconcile(a, b, patches)
			require.Equal(t, a, OriginalText(ops), "patches=%v", patches)
			require.Equal(t, b, CorrectedText(ops), "patches=%v", patches)
		}
	}
}

func TestNewChangeSet(t *testing.T) {
	cs := NewChangeSet([]Patch{
		{Agent: "spelling", Before: "teh", After: "the"},
		{Agent: "noop", Before: "same ", After: " same"},
		{Agent: "style", Before: "cat", After: "dog"},
		{Agent: "style2", Before: " cat", After: "cow"},
	})
	require.Equal(t, 2, cs.Len())

	entries := cs.Entries()
	assert.Equal(t, "teh", entries[0].Before)
	assert.Equal(t, "cat", entries[1].Before)
	assert.Equal(t, []string{"cow"}, entries[1].AfterTokens)

	after, ok := cs.Lookup("cat")
	assert.True(t, ok)
	assert.Equal(t, "cow", after)

	_, ok = cs.Lookup("same")
	assert.False(t, ok)
}
