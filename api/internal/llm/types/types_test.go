package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePracticeListArray(t *testing.T) {
	raw := []byte(`[{"text":"Solve 3x = 9","difficulty":"basic","variation_type":"same_structure","solution":"x = 3"}]`)

	got, err := DecodePracticeList(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Solve 3x = 9", got[0].Text)
	assert.Equal(t, "same_structure", got[0].VariationType)
}

func TestDecodePracticeListEnvelope(t *testing.T) {
	raw := []byte(`{"problems":[{"text":"a","difficulty":"basic","variation_type":"multi_step"},{"text":"b","difficulty":"advanced","variation_type":"format_change"}]}`)

	got, err := DecodePracticeList(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].Text)
}

func TestDecodePracticeListUnrecognizedObject(t *testing.T) {
	got, err := DecodePracticeList([]byte(`{"items":[{"text":"a"}]}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodePracticeListGarbage(t *testing.T) {
	_, err := DecodePracticeList([]byte(`"not even close"`))
	assert.Error(t, err)
}
