package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDeepSeekGenerateResponse(t *testing.T) {
	var gotAuth string
	var gotBody DeepSeekRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"All clear."}}]}`)
	}))
	defer srv.Close()

	p := &DeepSeekProvider{}
	out, err := p.GenerateResponse(context.Background(), "how are the ratios?", "", map[string]interface{}{
		"api_key":  "test-key",
		"base_url": srv.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "All clear." {
		t.Errorf("content = %q, expected \"All clear.\"", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody.Model != "deepseek-chat" {
		t.Errorf("model = %q, expected default deepseek-chat", gotBody.Model)
	}
	if gotBody.Temperature != 0.7 {
		t.Errorf("temperature = %v, expected 0.7", gotBody.Temperature)
	}
	if gotBody.Stream {
		t.Error("stream must be off")
	}
	// No system prompt was given, so only the user message goes out.
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Errorf("messages = %+v, expected a single user message", gotBody.Messages)
	}
}

func TestDeepSeekAPIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exhausted"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := &DeepSeekProvider{}
	_, err := p.GenerateResponse(context.Background(), "hi", "", map[string]interface{}{
		"api_key":  "test-key",
		"base_url": srv.URL,
	})
	if err == nil {
		t.Fatal("expected an error on 429")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error %T is not a *GenerationError", err)
	}
	if genErr.Provider != "deepseek" {
		t.Errorf("Provider = %q, expected deepseek", genErr.Provider)
	}
	if !strings.Contains(err.Error(), "status=429") {
		t.Errorf("error should carry the status code, got %q", err.Error())
	}
}

func TestOpenAIGenerateResponse(t *testing.T) {
	var gotPath string
	var gotBody openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"Board approved."}}]}`)
	}))
	defer srv.Close()

	p := &OpenAIProvider{}
	out, err := p.GenerateResponse(context.Background(), "summarize", "You are terse.", map[string]interface{}{
		"api_key":  "test-key",
		"base_url": srv.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Board approved." {
		t.Errorf("content = %q", out)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, expected /chat/completions", gotPath)
	}
	if gotBody.Model != "gpt-4o" {
		t.Errorf("model = %q, expected default gpt-4o", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Errorf("messages = %+v, expected system then user", gotBody.Messages)
	}
}

func TestOpenAIErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"error":{"message":"invalid model","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	p := &OpenAIProvider{}
	_, err := p.GenerateResponse(context.Background(), "hi", "", map[string]interface{}{
		"api_key":  "test-key",
		"base_url": srv.URL,
	})
	if err == nil {
		t.Fatal("expected an error from the error payload")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error %T is not a *GenerationError", err)
	}
	if !strings.Contains(err.Error(), "invalid model") {
		t.Errorf("error should carry the API message, got %q", err.Error())
	}
}

func TestOllamaGenerateResponse(t *testing.T) {
	var gotPath string
	var gotBody ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response":"Local wisdom."}`)
	}))
	defer srv.Close()

	p := &OllamaProvider{}
	out, err := p.GenerateResponse(context.Background(), "analyze this", "", map[string]interface{}{
		"base_url": srv.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Local wisdom." {
		t.Errorf("content = %q", out)
	}
	if gotPath != "/api/generate" {
		t.Errorf("path = %q, expected /api/generate", gotPath)
	}
	if gotBody.Model != "mistral" {
		t.Errorf("model = %q, expected default mistral", gotBody.Model)
	}
	if gotBody.Stream {
		t.Error("stream must be off")
	}
}

func TestOllamaUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens here anymore

	p := &OllamaProvider{}
	_, err := p.GenerateResponse(context.Background(), "hi", "", map[string]interface{}{
		"base_url": srv.URL,
	})
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError for a dead daemon, got %T: %v", err, err)
	}
	if genErr.Provider != "ollama" {
		t.Errorf("Provider = %q, expected ollama", genErr.Provider)
	}
}

func TestMissingKeysReturnGenerationError(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY", "")

	tests := []struct {
		name     string
		provider Provider
	}{
		{"gemini", &GeminiProvider{}},
		{"openai", &OpenAIProvider{}},
		{"deepseek", &DeepSeekProvider{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.provider.GenerateResponse(context.Background(), "hi", "", nil)
			if err == nil {
				t.Fatal("expected a missing-key error")
			}
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("error %T is not a *GenerationError", err)
			}
			if genErr.Provider != tt.name {
				t.Errorf("Provider = %q, expected %q", genErr.Provider, tt.name)
			}
		})
	}
}

func TestGenerationErrorUnwrap(t *testing.T) {
	inner := errors.New("socket closed")
	genErr := &GenerationError{Provider: "openai", Err: inner}
	wrapped := fmt.Errorf("cfo briefing failed: %w", genErr)

	var target *GenerationError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As failed through the wrapping chain")
	}
	if target.Provider != "openai" {
		t.Errorf("Provider = %q", target.Provider)
	}
	if !errors.Is(wrapped, inner) {
		t.Error("errors.Is should reach the innermost cause")
	}
}
