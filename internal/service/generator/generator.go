// Package generator orchestrates one generation request end to end: budget
// selection, prompt construction, a single completion call, and parsing. The
// flow is linear with no branch back; any stage failure is terminal and
// carries the stage name so callers can decide whether to re-invoke manually.
package generator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"seoforge/internal/seo"
	"seoforge/internal/service/llm"
	"seoforge/internal/service/llm/providers"
	"seoforge/internal/service/llm/prompts"
	"seoforge/internal/service/llm/tokens"
	"seoforge/internal/service/llm/validation"
)

// Stage names one step of the request state machine.
type Stage string

const (
	StageReceived       Stage = "received"
	StageBudgetSelected Stage = "budget_selected"
	StagePromptBuilt    Stage = "prompt_built"
	StageInvoked        Stage = "invoked"
	StageParsed         Stage = "parsed"
	StageValidated      Stage = "validated"
	StageFailed         Stage = "failed"
)

// StageError is a terminal failure annotated with the stage that produced
// it. Raw carries the completion text for parse failures.
type StageError struct {
	Stage Stage
	Err   error
	Raw   string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("generation failed at stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// keywordWordsPerEntry approximates the words one keyword entry contributes,
// used to size the output budget of keyword requests.
const keywordWordsPerEntry = 4

// ArticleResult is a validated article plus generation metadata.
type ArticleResult struct {
	RequestID        string               `json:"request_id"`
	Record           *seo.ArticleRecord   `json:"record"`
	Warnings         []validation.Warning `json:"warnings,omitempty"`
	Model            string               `json:"model"`
	Provider         string               `json:"provider"`
	PromptTokens     int                  `json:"prompt_tokens"`
	CompletionTokens int                  `json:"completion_tokens"`
}

// KeywordResult is a validated keyword set plus generation metadata.
type KeywordResult struct {
	RequestID        string               `json:"request_id"`
	Record           *seo.KeywordRecord   `json:"record"`
	Warnings         []validation.Warning `json:"warnings,omitempty"`
	Model            string               `json:"model"`
	Provider         string               `json:"provider"`
	PromptTokens     int                  `json:"prompt_tokens"`
	CompletionTokens int                  `json:"completion_tokens"`
}

// Generator runs generation requests against the completion service.
type Generator struct {
	service      *llm.Service
	prompts      *prompts.Generator
	provider     string
	defaultModel string
	temperature  float64
	logger       llm.Logger
}

// Options configures a Generator.
type Options struct {
	Service *llm.Service

	// Provider restricts automatic model selection to one provider's
	// models. Empty means any registered model may be picked.
	Provider string

	// DefaultModel, when set, pins requests that carry no explicit
	// model override.
	DefaultModel string

	Temperature float64
	Logger      llm.Logger
}

// New creates a Generator.
func New(opts Options) *Generator {
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	if opts.Logger == nil {
		opts.Logger = &llm.DefaultLogger{}
	}
	return &Generator{
		service:      opts.Service,
		prompts:      prompts.NewGenerator(),
		provider:     opts.Provider,
		defaultModel: opts.DefaultModel,
		temperature:  opts.Temperature,
		logger:       opts.Logger,
	}
}

// GenerateArticle runs the article flow:
// received -> budget selected -> prompt built -> invoked -> parsed -> validated.
func (g *Generator) GenerateArticle(ctx context.Context, req *seo.ArticleRequest) (*ArticleResult, error) {
	requestID := uuid.NewString()

	if err := req.Validate(); err != nil {
		return nil, &StageError{Stage: StageReceived, Err: err}
	}

	override := req.Model
	if override == "" {
		override = g.defaultModel
	}
	profile, err := tokens.SelectModel(req.WordCount, override, g.provider)
	if err != nil {
		return nil, &StageError{Stage: StageBudgetSelected, Err: err}
	}

	prompt := g.prompts.ArticlePrompt(req)

	g.logger.Info("Generating article",
		"request_id", requestID,
		"topic", req.Topic,
		"word_count", req.WordCount,
		"model", profile.ID)

	result, err := g.service.Complete(ctx, profile.Provider, requestID, "article", providers.CompletionRequest{
		Model:       profile.ID,
		System:      prompts.ArticleSystemPrompt,
		Prompt:      prompt,
		Temperature: g.temperature,
		MaxTokens:   tokens.MaxCompletionTokens(profile, req.WordCount),
	})
	if err != nil {
		return nil, &StageError{Stage: StageInvoked, Err: err}
	}

	record, warnings, err := validation.ParseArticle(result.Text, req)
	if err != nil {
		return nil, &StageError{Stage: StageParsed, Err: err, Raw: result.Text}
	}

	for _, w := range warnings {
		g.logger.Info("Validation warning", "request_id", requestID, "kind", w.Kind, "message", w.Message)
	}

	return &ArticleResult{
		RequestID:        requestID,
		Record:           record,
		Warnings:         warnings,
		Model:            profile.ID,
		Provider:         profile.Provider,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
	}, nil
}

// GenerateKeywords runs the keyword flow through the same state machine.
func (g *Generator) GenerateKeywords(ctx context.Context, req *seo.KeywordRequest) (*KeywordResult, error) {
	requestID := uuid.NewString()

	if err := req.Validate(); err != nil {
		return nil, &StageError{Stage: StageReceived, Err: err}
	}

	// Unknown categories fail here, before any budget or remote work.
	prompt, err := g.prompts.KeywordPrompt(req)
	if err != nil {
		return nil, &StageError{Stage: StagePromptBuilt, Err: err}
	}

	wordEstimate := req.Count * keywordWordsPerEntry
	profile, err := tokens.SelectModel(wordEstimate, g.defaultModel, g.provider)
	if err != nil {
		return nil, &StageError{Stage: StageBudgetSelected, Err: err}
	}

	g.logger.Info("Generating keywords",
		"request_id", requestID,
		"topic", req.Topic,
		"count", req.Count,
		"model", profile.ID)

	result, err := g.service.Complete(ctx, profile.Provider, requestID, "keywords", providers.CompletionRequest{
		Model:       profile.ID,
		System:      prompts.KeywordSystemPrompt,
		Prompt:      prompt,
		Temperature: g.temperature,
		MaxTokens:   tokens.MaxCompletionTokens(profile, wordEstimate),
	})
	if err != nil {
		return nil, &StageError{Stage: StageInvoked, Err: err}
	}

	record, warnings, err := validation.ParseKeywords(result.Text, req)
	if err != nil {
		return nil, &StageError{Stage: StageParsed, Err: err, Raw: result.Text}
	}

	for _, w := range warnings {
		g.logger.Info("Validation warning", "request_id", requestID, "kind", w.Kind, "message", w.Message)
	}

	return &KeywordResult{
		RequestID:        requestID,
		Record:           record,
		Warnings:         warnings,
		Model:            profile.ID,
		Provider:         profile.Provider,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
	}, nil
}
