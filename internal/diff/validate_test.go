package diff

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	ops := []Operation{eq("The"), eq(" "), del("cat"), ins("dog")}
	require.NoError(t, validate(ops, "The cat", "The dog"))

	assert.ErrorContains(t, validate(ops, "The cow", "The dog"), "reconstruct original")
	assert.ErrorContains(t, validate(ops, "The cat", "The cow"), "reconstruct corrected")
	assert.ErrorContains(t, validate([]Operation{eq("")}, "", ""), "op[0]: empty equal")
	assert.ErrorContains(t, validate([]Operation{{Op: Op(5), Text: "x"}}, "x", "x"), "unknown")
}

func TestCheckPatches(t *testing.T) {
	patches := []Patch{{Before: "a", After: "b"}, {Before: "c", After: "d"}}
	require.NoError(t, CheckPatches(0, patches))
	require.NoError(t, CheckPatches(2, patches))
	require.NoError(t, CheckPatches(1, nil))

	err := CheckPatches(1, patches)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Contains(t, err.Error(), "2 patches (limit 1)")
}

func TestCountStats(t *testing.T) {
	ops := Reconcile("The cat sat on the mat.", "The dog sat on a mat!", []Patch{{Before: "cat", After: "dog"}})
	s := CountStats(ops)
	assert.Equal(t, Stats{Equal: 4, Inserted: 3, Deleted: 3}, s)
	assert.True(t, s.Changed())
	assert.False(t, CountStats(DiffText("same", "same")).Changed())
}

func TestCheckLimit(t *testing.T) {
	require.NoError(t, CheckLimit(0, strings.Repeat("a ", 1000)))
	require.NoError(t, CheckLimit(5, "a b c"))
	require.NoError(t, CheckLimit(3, "abcdefgh")) // one token

	err := CheckLimit(4, "short", "a b c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooLarge))
	assert.Contains(t, err.Error(), "text 1 has 5 tokens (limit 4)")
}
