package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"jwright/internal/logging"
)

// chatMessage is the common OpenAI-compatible chat message shape shared by
// every non-Ollama provider below.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// chatClient implements the shared HTTP mechanics for OpenAI-compatible
// chat-completions providers: bearer auth, 600ms request spacing, a
// structured request/response body, and status-code classification.
// Provider-specific clients embed it and vary only endpoint/model/header.
type chatClient struct {
	apiKey      string
	baseURL     string
	model       string
	authHeader  string // e.g. "Authorization" or "x-api-key"
	authPrefix  string // e.g. "Bearer "
	httpClient  *http.Client
	mu          sync.Mutex
	lastRequest time.Time
}

func newChatClient(apiKey, baseURL, model, authHeader, authPrefix string, timeout time.Duration) *chatClient {
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &chatClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		authHeader: authHeader,
		authPrefix: authPrefix,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *chatClient) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < 600*time.Millisecond {
		time.Sleep(600*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
}

func (c *chatClient) generate(ctx context.Context, path string, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", newError(KindUnavailable, "API key not configured", nil)
	}

	c.throttle()

	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   4096,
		Temperature: 0.1,
	})
	if err != nil {
		return "", newError(KindUnknown, "failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", newError(KindUnknown, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.authHeader, c.authPrefix+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyHTTPError(err, 0, "")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(KindUnavailable, "failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPError(nil, resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", newError(KindInvalidResponse, "failed to parse response", err)
	}
	if parsed.Error != nil {
		return "", newError(KindUnknown, parsed.Error.Message, nil)
	}
	if len(parsed.Choices) == 0 {
		return "", newError(KindInvalidResponse, "no completion returned", nil)
	}

	logging.LLMDebug("chat completion: %d bytes returned", len(parsed.Choices[0].Message.Content))
	return parsed.Choices[0].Message.Content, nil
}

func (c *chatClient) isAvailable(ctx context.Context, probePath string) bool {
	if c.apiKey == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+probePath, nil)
	if err != nil {
		return false
	}
	req.Header.Set(c.authHeader, c.authPrefix+c.apiKey)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}
