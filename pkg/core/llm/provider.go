// Package llm contains the text generation backends. Every backend
// implements Provider and reports its failures as *GenerationError, so
// callers can separate a collaborator fault from a local one with
// errors.As.
package llm

import (
	"context"
	"fmt"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

// GenerationError wraps a failure inside a generation backend: missing
// credentials, an unreachable endpoint, a non-200 status, or a malformed
// response body.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func generationErr(provider, format string, args ...interface{}) error {
	return &GenerationError{Provider: provider, Err: fmt.Errorf(format, args...)}
}
