package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_DirectParse(t *testing.T) {
	rec, ok := JSON(`{"full_name": "Jane Smith", "variations": ["J. Smith"], "age": 41}`)
	require.True(t, ok)

	assert.Equal(t, "Jane Smith", rec.Str("full_name"))
	assert.Equal(t, []string{"J. Smith"}, rec.Strings("variations"))
	assert.Equal(t, "41", rec.Str("age"))
}

func TestJSON_FencedBlock(t *testing.T) {
	text := "Here is the profile you asked for:\n```json\n{\"full_name\": \"Jane Smith\"}\n```\nLet me know if you need more."
	rec, ok := JSON(text)
	require.True(t, ok)
	assert.Equal(t, "Jane Smith", rec.Str("full_name"))
}

func TestJSON_FencedBlockWithoutLanguage(t *testing.T) {
	text := "```\n{\"sector\": \"Finance\"}\n```"
	rec, ok := JSON(text)
	require.True(t, ok)
	assert.Equal(t, "Finance", rec.Str("sector"))
}

func TestJSON_BraceScan(t *testing.T) {
	text := `The model replied: sure thing {"has_negative_news": true, "risk_score": 6.5} hope that helps`
	rec, ok := JSON(text)
	require.True(t, ok)
	assert.True(t, rec.Bool("has_negative_news"))
	assert.Equal(t, "6.5", rec.Str("risk_score"))
}

func TestJSON_BraceScanSkipsUnparseable(t *testing.T) {
	text := `{not json} but later {"type": "Fraud"} appears`
	rec, ok := JSON(text)
	require.True(t, ok)
	assert.Equal(t, "Fraud", rec.Str("type"))
}

func TestJSON_NestedBracesAndStrings(t *testing.T) {
	text := `prefix {"findings": [{"type": "Litigation", "description": "uses } inside \"quotes\""}]} suffix`
	rec, ok := JSON(text)
	require.True(t, ok)

	findings := rec.Records("findings")
	require.Len(t, findings, 1)
	assert.Equal(t, "Litigation", findings[0].Str("type"))
}

func TestJSON_GarbageReturnsEmpty(t *testing.T) {
	for _, text := range []string{"", "no structure here", "][", "{{{{"} {
		rec, ok := JSON(text)
		assert.False(t, ok, "input %q", text)
		assert.Nil(t, rec)
	}
}

// Recovering from a clean payload returns exactly that structure.
func TestJSON_Idempotent(t *testing.T) {
	rec, ok := JSON(`{"a": "b", "n": 2}`)
	require.True(t, ok)
	assert.Equal(t, Record{"a": "b", "n": float64(2)}, rec)
}

func TestRecord_StringsCoercion(t *testing.T) {
	rec := Record{"bare": "single", "list": []any{"a", "b"}, "num": float64(3)}

	assert.Equal(t, []string{"single"}, rec.Strings("bare"))
	assert.Equal(t, []string{"a", "b"}, rec.Strings("list"))
	assert.Empty(t, rec.Strings("num"))
	assert.Empty(t, rec.Strings("missing"))
}

func TestRecord_IntDefaults(t *testing.T) {
	rec := Record{"sev": float64(7), "conf": "6", "bad": "x"}

	assert.Equal(t, 7, rec.Int("sev", 5))
	assert.Equal(t, 6, rec.Int("conf", 5))
	assert.Equal(t, 5, rec.Int("bad", 5))
	assert.Equal(t, 5, rec.Int("missing", 5))
}
