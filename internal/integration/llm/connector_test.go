package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/futig/lifestory-backend/internal/config"
	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "  Once upon a time.  "}
  }],
  "usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func newTestConnector(url string) *Connector {
	return NewConnector(config.LLMConnectorConfig{
		APIKey:  "sk-test",
		BaseURL: url,
		Model:   "gpt-4o",
	}, zap.NewNop())
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}
		assert.Equal(t, "gpt-4o", body["model"])
		assert.InDelta(t, 0.7, body["temperature"], 0.0001)
		assert.InDelta(t, 400, body["max_tokens"], 0.0001)
		assert.NotContains(t, body, "response_format")

		messages := body["messages"].([]any)
		if assert.Len(t, messages, 2) {
			assert.Equal(t, "system", messages[0].(map[string]any)["role"])
			assert.Equal(t, "user", messages[1].(map[string]any)["role"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	out, err := newTestConnector(srv.URL).Generate(context.Background(), &entity.GenerationRequest{
		Instructions:     "system",
		Input:            "user",
		Temperature:      0.7,
		MaxTokens:        400,
		PresencePenalty:  0.1,
		FrequencyPenalty: 0.1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Once upon a time.", out)
}

func TestGenerateSendsSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}
		format, ok := body["response_format"].(map[string]any)
		if assert.True(t, ok) {
			assert.Equal(t, "json_schema", format["type"])
			schema := format["json_schema"].(map[string]any)
			assert.Equal(t, "chapters", schema["name"])
			assert.Equal(t, true, schema["strict"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	_, err := newTestConnector(srv.URL).Generate(context.Background(), &entity.GenerationRequest{
		Instructions: "system",
		Input:        "user",
		Schema: &entity.ResponseSchema{
			Name:        "chapters",
			Description: "chapter outline",
			Schema:      map[string]any{"type": "object"},
		},
	})
	require.NoError(t, err)
}

func TestGenerateDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	_, err := newTestConnector(srv.URL).Generate(context.Background(), &entity.GenerationRequest{Input: "x"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMockConnectorEchoesAnswers(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	out, err := m.Generate(context.Background(), &entity.GenerationRequest{
		Input: "Please create a story\n\nQ: Where were you born?\nA: In Lisbon.\n\nQ: First job?\nA: Baker.",
	})
	require.NoError(t, err)
	assert.Equal(t, "In Lisbon.\n\nBaker.", out)

	structured, err := m.Generate(context.Background(), &entity.GenerationRequest{
		Schema: &entity.ResponseSchema{Name: "chapters"},
	})
	require.NoError(t, err)

	var s entity.ChapterSuggestions
	require.NoError(t, json.Unmarshal([]byte(structured), &s))
	assert.Len(t, s.Chapters, 4)
}

func TestGenerateLogsThroughConnectorLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	c := NewConnector(config.LLMConnectorConfig{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-4o"}, zap.New(core))

	_, err := c.Generate(context.Background(), &entity.GenerationRequest{Instructions: "system", Input: "user"})
	require.NoError(t, err)

	entries := logs.FilterMessage("chat completion received").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 15, entries[0].ContextMap()["total_tokens"])
}
