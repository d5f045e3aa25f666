package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const requestTimeout = 30 * time.Second

// ErrMissingAPIKey is returned before any network call when the client was
// constructed without a key. Callers resolve it the same way as a failed
// invocation: with a local fallback.
var ErrMissingAPIKey = errors.New("groq API key is not configured")

// SamplingParams controls the remote model's output randomness and length.
type SamplingParams struct {
	Temperature float64
	MaxTokens   int
	TopP        *float64
}

// InvocationError covers transport failures, auth failures and model-side
// errors from the inference API.
type InvocationError struct {
	StatusCode int // 0 when the request never reached the server
	Message    string
	Err        error
}

func (e *InvocationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("groq API returned %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Invoker sends a prompt to a text-generation model and returns raw text.
// Satisfied by *Client; tests substitute a fake.
type Invoker interface {
	Generate(ctx context.Context, model, prompt string, params SamplingParams) (string, error)
}

// Client is a chat-completions client for the Groq OpenAI-compatible API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Groq client. The API key is injected here and nowhere
// else; an empty key makes every Generate call fail with ErrMissingAPIKey.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Generate makes a single chat-completions call. One attempt only: a failure
// is terminal for this invocation and the caller falls back locally, so
// retrying here buys latency and nothing else.
func (c *Client) Generate(ctx context.Context, model, prompt string, params SamplingParams) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  params.MaxTokens,
		"temperature": params.Temperature,
		"stream":      false,
	}
	if params.TopP != nil {
		payload["top_p"] = *params.TopP
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &InvocationError{Message: fmt.Sprintf("marshal request: %v", err), Err: err}
	}

	url := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", &InvocationError{Message: fmt.Sprintf("create request: %v", err), Err: err}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &InvocationError{Message: fmt.Sprintf("call model at %s: %v", url, err), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &InvocationError{Message: fmt.Sprintf("read response: %v", err), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &InvocationError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s (model: %s)", strings.TrimSpace(string(respBody)), model),
		}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &InvocationError{Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}

	if len(result.Choices) == 0 {
		return "", &InvocationError{Message: "no choices in response"}
	}

	return result.Choices[0].Message.Content, nil
}
