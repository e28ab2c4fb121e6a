package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerateReturnsResponseText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var req ollamaGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Prompt)
		_ = json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "int add(int a, int b) { return a + b; }", Done: true})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "qwen2.5-coder")
	resp, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Contains(t, resp, "return a + b")
}

func TestOllamaGenerateClassifiesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("model not loaded"))
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "")
	_, err := client.Generate(context.Background(), "hello")
	require.Error(t, err)
	var llmErr *Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, KindUnavailable, llmErr.Kind)
}

func TestOllamaIsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "")
	assert.True(t, client.IsAvailable(context.Background()))
}

func TestOllamaIsAvailableFalseWhenUnreachable(t *testing.T) {
	client := NewOllamaClient("http://127.0.0.1:1", "")
	assert.False(t, client.IsAvailable(context.Background()))
}

func TestNewOllamaClientDefaults(t *testing.T) {
	client := NewOllamaClient("", "")
	assert.Equal(t, "http://localhost:11434", client.endpoint)
	assert.Equal(t, "qwen2.5-coder", client.model)
}
