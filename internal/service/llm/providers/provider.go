// Package providers implements the remote completion capability behind a
// common interface. Each provider makes exactly one network attempt per call
// and surfaces failures verbatim; retry policy, if any, belongs to callers.
package providers

import (
	"context"
	"errors"
)

// Remote-call failure kinds. Providers translate their transport-specific
// errors into these so callers can react without knowing the provider.
var (
	ErrAuthFailure      = errors.New("authentication failed")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrTransportFailure = errors.New("transport failure")
	ErrEmptyResponse    = errors.New("no content returned")
)

// CompletionRequest is one bounded completion call.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// CompletionResult carries the raw generated text plus reported token usage.
type CompletionResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Provider defines the interface all completion providers implement.
type Provider interface {
	// Complete sends one completion request and returns the raw text.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)

	// Name returns the provider name.
	Name() string

	// Close releases any resources held by the provider.
	Close() error
}

// Logger is the minimal logging interface providers accept. It matches the
// llm service logger so the same implementation serves both.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}
