package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

func testSchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"greeting": {Type: jsonschema.String},
		},
		Required:             []string{"greeting"},
		AdditionalProperties: false,
	}
}

func newTestOpenAIProvider(baseURL string) *OpenAIProvider {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = baseURL + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), name: "openai"}
}

func TestChatRequestWithoutSchema(t *testing.T) {
	req := chatRequest(GenerateRequest{Model: "gpt-4.1", Prompt: "hi", MaxTokens: 10})
	require.Len(t, req.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)
	assert.Nil(t, req.ResponseFormat)
}

func TestChatRequestWithSchema(t *testing.T) {
	req := chatRequest(GenerateRequest{Model: "gpt-4.1", System: "sys", Prompt: "hi", Schema: testSchema()})
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONSchema, req.ResponseFormat.Type)
	assert.Equal(t, "response", req.ResponseFormat.JSONSchema.Name)
	assert.True(t, req.ResponseFormat.JSONSchema.Strict)
}

func TestOpenAIProviderGenerate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4.1",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"greeting\":\"hi\"}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 7, "total_tokens": 19}
		}`))
	}))
	defer srv.Close()

	p := newTestOpenAIProvider(srv.URL)
	resp, err := p.Generate(context.Background(), GenerateRequest{
		Model:      "gpt-4.1",
		Prompt:     "Say hi",
		MaxTokens:  50,
		Schema:     testSchema(),
		SchemaName: "greeting",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"greeting":"hi"}`, resp.Content)
	assert.Equal(t, 12, resp.InputTokens)
	assert.Equal(t, 7, resp.OutputTokens)
	assert.Equal(t, "stop", resp.FinishReason)

	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok, "response_format should be sent")
	assert.Equal(t, "json_schema", format["type"])
	js, ok := format["json_schema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "greeting", js["name"])
	assert.Equal(t, true, js["strict"])
}

func TestOpenAIProviderErrorIsClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests", "code": "rate_limit_exceeded"}}`))
	}))
	defer srv.Close()

	p := newTestOpenAIProvider(srv.URL)
	_, err := p.Generate(context.Background(), GenerateRequest{Model: "gpt-4.1", Prompt: "hi"})
	require.Error(t, err)
	assert.Equal(t, "rate_limit", ClassifyError(err))
}

func TestProviderNames(t *testing.T) {
	assert.Equal(t, "openai", NewOpenAIProvider("k").Name())
	assert.Equal(t, "ollama", NewOllamaProvider("http://localhost:11434").Name())
	assert.Equal(t, "google", NewGoogleProvider("k").Name())
	assert.Equal(t, "anthropic", NewAnthropicProvider("k").Name())
}
