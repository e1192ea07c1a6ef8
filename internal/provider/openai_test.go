package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestServer(t *testing.T, status int, body string, payload *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if payload != nil {
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, payload))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAICompleteSuccess(t *testing.T) {
	var payload map[string]any
	server := newOpenAITestServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1,
		"model": "gpt-4o-mini",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "print('hi')"}}]
	}`, &payload)

	p, err := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	text, err := p.Complete(context.Background(), "say hi", Options{Temperature: 0.5, MaxOutputTokens: 256})
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", text)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, openAIDefaultModel, p.Model())

	assert.Equal(t, openAIDefaultModel, payload["model"])
	assert.InDelta(t, 0.5, payload["temperature"], 0.0001)
	assert.EqualValues(t, 256, payload["max_completion_tokens"])
	messages, ok := payload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, "say hi", messages[0].(map[string]any)["content"])
}

func TestOpenAICompleteQuota(t *testing.T) {
	server := newOpenAITestServer(t, http.StatusTooManyRequests,
		`{"error": {"message": "Rate limit reached", "type": "requests", "code": "rate_limit_exceeded"}}`, nil)

	p, err := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "x", Options{})
	assert.True(t, errors.Is(err, ErrQuotaExceeded), "got %v", err)
}

func TestOpenAICompleteContentFilter(t *testing.T) {
	server := newOpenAITestServer(t, http.StatusOK, `{
		"id": "chatcmpl-2",
		"object": "chat.completion",
		"created": 1,
		"model": "gpt-4o-mini",
		"choices": [{"index": 0, "finish_reason": "content_filter", "message": {"role": "assistant", "content": ""}}]
	}`, nil)

	p, err := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "x", Options{})
	assert.True(t, errors.Is(err, ErrSafetyBlocked), "got %v", err)
}

func TestOpenAICompleteServerError(t *testing.T) {
	server := newOpenAITestServer(t, http.StatusInternalServerError,
		`{"error": {"message": "boom", "type": "server_error"}}`, nil)

	p, err := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "x", Options{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrQuotaExceeded))
	assert.False(t, errors.Is(err, ErrSafetyBlocked))
	assert.Contains(t, err.Error(), "boom")
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	_, err := NewOpenAI(OpenAIConfig{})
	assert.Error(t, err)
}
