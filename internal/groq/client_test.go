package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateSuccess(t *testing.T) {
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"generated text"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	topP := 0.9

	text, err := client.Generate(context.Background(), "llama-3.1-8b-instant", "hello", SamplingParams{
		Temperature: 0.7,
		MaxTokens:   512,
		TopP:        &topP,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "generated text" {
		t.Errorf("unexpected text: %q", text)
	}

	if gotPayload["model"] != "llama-3.1-8b-instant" {
		t.Errorf("unexpected model in payload: %v", gotPayload["model"])
	}
	if gotPayload["temperature"] != 0.7 {
		t.Errorf("unexpected temperature: %v", gotPayload["temperature"])
	}
	if gotPayload["max_tokens"] != float64(512) {
		t.Errorf("unexpected max_tokens: %v", gotPayload["max_tokens"])
	}
	if gotPayload["top_p"] != 0.9 {
		t.Errorf("unexpected top_p: %v", gotPayload["top_p"])
	}
}

func TestGenerateOmitsTopPWhenUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		if _, present := payload["top_p"]; present {
			t.Error("top_p should be omitted when unset")
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	if _, err := client.Generate(context.Background(), "m", "p", SamplingParams{Temperature: 0.7, MaxTokens: 800}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
}

func TestGenerateMissingAPIKey(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "")

	_, err := client.Generate(context.Background(), "m", "p", SamplingParams{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestGenerateServerErrorNoRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	_, err := client.Generate(context.Background(), "m", "p", SamplingParams{})
	if err == nil {
		t.Fatal("expected error for 503 response")
	}

	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected InvocationError, got %T", err)
	}
	if invErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("unexpected status code: %d", invErr.StatusCode)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", calls)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	_, err := client.Generate(context.Background(), "m", "p", SamplingParams{})
	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected InvocationError for empty choices, got %v", err)
	}
}

func TestGenerateTransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key")

	_, err := client.Generate(context.Background(), "m", "p", SamplingParams{})
	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected InvocationError for transport failure, got %v", err)
	}
	if invErr.StatusCode != 0 {
		t.Errorf("transport failures should carry no HTTP status, got %d", invErr.StatusCode)
	}
}
