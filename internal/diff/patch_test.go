package diff

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePatches(t *testing.T) {
	input := `[
		{"agent": "spelling", "path": "body", "before": "teh", "after": "the"},
		{"agent": "style", "path": "title", "before": "Big", "reason": "ambiguous"},
		{"agent": "style", "after": "orphan"},
		{"agent": "grammar", "path": "body", "before": "", "after": ","}
	]`

	patches, err := DecodePatches(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Patch{
		{Agent: "spelling", Path: "body", Before: "teh", After: "the"},
		{Agent: "grammar", Path: "body", Before: "", After: ","},
	}, patches)
}

func TestDecodePatches_Empty(t *testing.T) {
	patches, err := DecodePatches(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, patches)

	patches, err = DecodePatches(strings.NewReader("null"))
	require.NoError(t, err)
	assert.Empty(t, patches)
}

func TestDecodePatches_Invalid(t *testing.T) {
	_, err := DecodePatches(strings.NewReader(`{"before": "a"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diff: decode patches")
}

func TestUnmarshalPatches(t *testing.T) {
	patches, err := UnmarshalPatches(json.RawMessage(`[{"before": "a", "after": "b"}, {"before": "c"}]`))
	require.NoError(t, err)
	assert.Equal(t, []Patch{{Before: "a", After: "b"}}, patches)

	patches, err = UnmarshalPatches(nil)
	require.NoError(t, err)
	assert.Nil(t, patches)
}

func TestOperationJSON(t *testing.T) {
	ops := []Operation{eq("The"), del("cat"), ins("dog")}
	data, err := json.Marshal(ops)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"equal","text":"The"},{"type":"delete","text":"cat"},{"type":"insert","text":"dog"}]`, string(data))

	var decoded []Operation
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ops, decoded)

	err = json.Unmarshal([]byte(`[{"type":"replace","text":"x"}]`), &decoded)
	assert.Error(t, err)

	_, err = json.Marshal(Operation{Op: Op(7), Text: "x"})
	assert.Error(t, err)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "equal", OpEqual.String())
	assert.Equal(t, "insert", OpInsert.String())
	assert.Equal(t, "delete", OpDelete.String())
	assert.Equal(t, "Op(9)", Op(9).String())
	assert.Equal(t, `delete("cat")`, del("cat").String())
}
