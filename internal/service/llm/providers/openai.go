package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	openAICompletionsURL = "https://api.openai.com/v1/chat/completions"
	defaultTimeout       = 120 * time.Second
)

// OpenAIProvider implements the Provider interface against OpenAI's chat
// completions API.
type OpenAIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// OpenAIMessage represents a message in the OpenAI chat API.
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIRequest represents a request to OpenAI's chat completions API.
type OpenAIRequest struct {
	Model       string          `json:"model"`
	Messages    []OpenAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

// OpenAIResponse represents the response from OpenAI's chat completions API.
type OpenAIResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string, logger Logger) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	return &OpenAIProvider{
		apiKey:     apiKey,
		baseURL:    openAICompletionsURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete implements the Provider interface with a single network attempt.
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	messages := []OpenAIMessage{}
	if req.System != "" {
		messages = append(messages, OpenAIMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, OpenAIMessage{Role: "user", Content: req.Prompt})

	apiRequest := OpenAIRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	apiResponse, err := p.makeRequest(ctx, apiRequest)
	if err != nil {
		return nil, err
	}

	if len(apiResponse.Choices) == 0 || apiResponse.Choices[0].Message.Content == "" {
		return nil, ErrEmptyResponse
	}

	return &CompletionResult{
		Text:             apiResponse.Choices[0].Message.Content,
		PromptTokens:     apiResponse.Usage.PromptTokens,
		CompletionTokens: apiResponse.Usage.CompletionTokens,
	}, nil
}

// makeRequest sends one request to the OpenAI API and maps HTTP failures
// onto the shared error kinds.
func (p *OpenAIProvider) makeRequest(ctx context.Context, request OpenAIRequest) (*OpenAIResponse, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrTransportFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrAuthFailure, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, resp.Status)
	case resp.StatusCode != http.StatusOK:
		p.logger.Error("OpenAI API error",
			"status", resp.Status,
			"body", string(body))
		return nil, fmt.Errorf("%w: API error: %s", ErrTransportFailure, resp.Status)
	}

	var apiResponse OpenAIResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling response: %v", ErrTransportFailure, err)
	}

	return &apiResponse, nil
}

// Close implements the Provider interface.
func (p *OpenAIProvider) Close() error {
	// Nothing to close for HTTP client
	return nil
}
