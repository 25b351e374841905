// Package llm routes completion requests to a registered provider. The
// service applies transport policy (rate limiting, usage accounting) around
// exactly one provider call per request: generation is never retried and
// never cached, so a failure here is the failure the caller sees.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"seoforge/internal/service/llm/providers"
	"seoforge/internal/service/llm/tokens"
)

// Logger interface for service logging.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ErrInvalidProvider is returned when no provider is registered under the
// requested name.
var ErrInvalidProvider = errors.New("invalid LLM provider specified")

// DefaultLogger provides a basic implementation of the Logger interface.
type DefaultLogger struct{}

func (l *DefaultLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.Printf("[DEBUG] %s %v", msg, keysAndValues)
}

func (l *DefaultLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Printf("[INFO] %s %v", msg, keysAndValues)
}

func (l *DefaultLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Printf("[ERROR] %s %v", msg, keysAndValues)
}

// Service dispatches completion requests to providers.
type Service struct {
	providers       map[string]providers.Provider
	defaultProvider string
	limiter         *rate.Limiter
	tracker         *tokens.UsageTracker
	mutex           sync.RWMutex
	logger          Logger
}

// ServiceOptions contains configuration for the LLM service.
type ServiceOptions struct {
	DefaultProvider string
	RateLimit       rate.Limit
	RateBurst       int
	Tracker         *tokens.UsageTracker
	Logger          Logger
}

// NewService creates a new LLM service with the specified options.
func NewService(opts ServiceOptions) *Service {
	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Limit(2) // 2 requests per second by default
	}
	if opts.RateBurst == 0 {
		opts.RateBurst = 1
	}
	if opts.Logger == nil {
		opts.Logger = &DefaultLogger{}
	}

	return &Service{
		providers:       make(map[string]providers.Provider),
		defaultProvider: opts.DefaultProvider,
		limiter:         rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		tracker:         opts.Tracker,
		logger:          opts.Logger,
	}
}

// RegisterProvider registers a completion provider with the service.
func (s *Service) RegisterProvider(provider providers.Provider) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	name := provider.Name()
	s.providers[name] = provider

	if s.defaultProvider == "" {
		s.defaultProvider = name
	}

	s.logger.Info("Registered LLM provider", "provider", name)
}

// GetProvider returns a provider by name, using the default if name is empty.
func (s *Service) GetProvider(name string) (providers.Provider, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if name == "" {
		name = s.defaultProvider
	}

	provider, exists := s.providers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProvider, name)
	}

	return provider, nil
}

// Complete sends one completion request to the named provider. There is
// exactly one network attempt; failures are surfaced verbatim to the caller.
func (s *Service) Complete(ctx context.Context, providerName, requestID, contentType string, req providers.CompletionRequest) (*providers.CompletionResult, error) {
	provider, err := s.GetProvider(providerName)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrRateLimited, err)
	}

	s.logger.Debug("Dispatching completion",
		"provider", provider.Name(),
		"model", req.Model,
		"prompt_tokens_est", tokens.EstimateTokens(req.Prompt),
		"max_tokens", req.MaxTokens)

	startTime := time.Now()
	result, err := provider.Complete(ctx, req)
	if err != nil {
		s.logger.Error("LLM API request failed",
			"error", err,
			"provider", provider.Name(),
			"model", req.Model)
		return nil, err
	}

	s.logger.Info("Completion succeeded",
		"provider", provider.Name(),
		"model", req.Model,
		"prompt_tokens", result.PromptTokens,
		"completion_tokens", result.CompletionTokens,
		"time", time.Since(startTime))

	if s.tracker != nil {
		entry := tokens.UsageEntry{
			Timestamp:        startTime,
			RequestID:        requestID,
			Model:            req.Model,
			Provider:         provider.Name(),
			ContentType:      contentType,
			PromptTokens:     result.PromptTokens,
			CompletionTokens: result.CompletionTokens,
		}
		if err := s.tracker.Record(ctx, entry); err != nil {
			s.logger.Error("Failed to record token usage", "error", err)
		}
	}

	return result, nil
}

// Close closes every registered provider.
func (s *Service) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var firstErr error
	for _, p := range s.providers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
