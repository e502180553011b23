package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"negscreen/internal/extract"
	"negscreen/internal/model"
)

func TestSupportsJSONResponse(t *testing.T) {
	cases := map[string]bool{
		"gpt-4o":                true,
		"gpt-4o-mini":           true,
		"GPT-4-Turbo":           true,
		"gpt-4-turbo-2024-04-09": true,
		"gpt-3.5-turbo-1106":    true,
		"gpt-4":                 false,
		"gpt-3.5-turbo":         false,
		"llama3":                false,
	}
	for mdl, want := range cases {
		assert.Equal(t, want, SupportsJSONResponse(mdl), mdl)
	}
}

func TestInstructJSON_AppendsToSystemAndUser(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "You are an analyst."},
		{Role: RoleUser, Content: "Classify this."},
	}

	out := instructJSON(messages)

	require.Len(t, out, 2)
	assert.Contains(t, out[0].Content, "valid JSON only")
	assert.Contains(t, out[1].Content, "valid JSON only")
	// Input untouched.
	assert.Equal(t, "You are an analyst.", messages[0].Content)
}

func TestInstructJSON_InsertsSystemMessage(t *testing.T) {
	out := instructJSON([]Message{{Role: RoleUser, Content: "Classify this."}})

	require.Len(t, out, 2)
	assert.Equal(t, RoleSystem, out[0].Role)
	assert.Contains(t, out[0].Content, "valid JSON only")
}

func TestMockClient_StageFixtures(t *testing.T) {
	client := NewMockClient()
	ctx := context.Background()

	resp, err := client.Complete(ctx, Request{Messages: []Message{
		{Role: RoleUser, Content: "create a detailed entity profile for negative news screening"},
	}})
	require.NoError(t, err)
	rec, ok := extract.JSON(resp)
	require.True(t, ok)
	// The fixture must not invent an identity.
	assert.Empty(t, rec.Str("full_name"))

	resp, err = client.Complete(ctx, Request{Messages: []Message{
		{Role: RoleUser, Content: "Analyze this text for negative news about Jane Smith:\n\nallegations of misconduct were reported"},
	}})
	require.NoError(t, err)
	rec, ok = extract.JSON(resp)
	require.True(t, ok)
	assert.True(t, rec.Bool("contains_negative_news"))
	assert.NotEmpty(t, rec.Records("findings"))

	resp, err = client.Complete(ctx, Request{Messages: []Message{
		{Role: RoleUser, Content: "Analyze this text for negative news about Jane Smith:\n\nthe weather was pleasant"},
	}})
	require.NoError(t, err)
	rec, ok = extract.JSON(resp)
	require.True(t, ok)
	assert.False(t, rec.Bool("contains_negative_news"))
	assert.Empty(t, rec.Records("findings"))
}

func TestNewClient_FallsBackWithoutCredential(t *testing.T) {
	client := NewClient(model.LLMConfig{}, zap.NewNop())
	assert.Equal(t, "mock", client.Name())

	client = NewClient(model.LLMConfig{APIKey: "sk-test"}, zap.NewNop())
	assert.Equal(t, "openai", client.Name())
}
