package generator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"seoforge/internal/seo"
	"seoforge/internal/service/llm"
	"seoforge/internal/service/llm/prompts"
	"seoforge/internal/service/llm/providers"
	"seoforge/internal/service/llm/validation"
)

type mockProvider struct {
	name    string
	result  *providers.CompletionResult
	err     error
	calls   int
	lastReq providers.CompletionRequest
}

func (m *mockProvider) Complete(ctx context.Context, req providers.CompletionRequest) (*providers.CompletionResult, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockProvider) Name() string { return m.name }
func (m *mockProvider) Close() error { return nil }

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestGenerator(t *testing.T, mock *mockProvider) *Generator {
	t.Helper()
	service := llm.NewService(llm.ServiceOptions{
		RateLimit: rate.Limit(1000),
		RateBurst: 100,
		Logger:    nopLogger{},
	})
	service.RegisterProvider(mock)
	return New(Options{
		Service:  service,
		Provider: mock.name,
		Logger:   nopLogger{},
	})
}

func articleResponse(t *testing.T) (string, int) {
	t.Helper()
	record := seo.ArticleRecord{
		MetaTitle:       "Home Coffee Roasting Guide",
		MetaDescription: "Learn to roast coffee at home.",
		ArticleTitle:    "Roasting Coffee at Home",
		TargetKeyword:   "home coffee roasting",
		Sections: []seo.Section{
			{Heading: "Getting Started", Content: "Buy green beans and a small drum roaster to begin."},
		},
		FAQ: []seo.FAQEntry{
			{Question: "Is it hard?", Answer: "Not after a few tries."},
		},
		SEOTips: []string{"use the keyword in headings"},
	}
	data, err := json.Marshal(record)
	require.NoError(t, err)
	return string(data), record.TotalWordCount()
}

func TestGenerateArticle(t *testing.T) {
	raw, words := articleResponse(t)
	mock := &mockProvider{
		name:   "openai",
		result: &providers.CompletionResult{Text: raw, PromptTokens: 420, CompletionTokens: 350},
	}
	g := newTestGenerator(t, mock)

	result, err := g.GenerateArticle(context.Background(), &seo.ArticleRequest{
		Topic:       "home coffee roasting",
		Tone:        seo.ToneInformal,
		WordCount:   words,
		ArticleType: seo.TypeGuide,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, mock.calls)
	assert.NotEmpty(t, result.RequestID)
	assert.Equal(t, "gpt-4", result.Model)
	assert.Equal(t, "openai", result.Provider)
	assert.Equal(t, 420, result.PromptTokens)
	assert.Equal(t, 350, result.CompletionTokens)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, words, result.Record.WordCount)

	assert.Equal(t, "gpt-4", mock.lastReq.Model)
	assert.Equal(t, prompts.ArticleSystemPrompt, mock.lastReq.System)
	assert.Greater(t, mock.lastReq.MaxTokens, 0)
}

func TestGenerateArticleInvalidRequestSkipsProvider(t *testing.T) {
	mock := &mockProvider{name: "openai"}
	g := newTestGenerator(t, mock)

	_, err := g.GenerateArticle(context.Background(), &seo.ArticleRequest{
		Topic:       "coffee",
		Tone:        "sarcastic",
		WordCount:   800,
		ArticleType: seo.TypeGuide,
	})

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageReceived, stageErr.Stage)
	assert.Zero(t, mock.calls)
}

func TestGenerateArticleOversizedRequestSkipsProvider(t *testing.T) {
	mock := &mockProvider{name: "openai"}
	g := newTestGenerator(t, mock)

	_, err := g.GenerateArticle(context.Background(), &seo.ArticleRequest{
		Topic:       "coffee",
		Tone:        seo.ToneInformal,
		WordCount:   50000,
		ArticleType: seo.TypeGuide,
	})

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageBudgetSelected, stageErr.Stage)
	assert.Zero(t, mock.calls)
}

func TestGenerateArticleProviderFailure(t *testing.T) {
	mock := &mockProvider{name: "openai", err: providers.ErrRateLimited}
	g := newTestGenerator(t, mock)

	_, err := g.GenerateArticle(context.Background(), &seo.ArticleRequest{
		Topic:       "coffee",
		Tone:        seo.ToneInformal,
		WordCount:   800,
		ArticleType: seo.TypeGuide,
	})

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageInvoked, stageErr.Stage)
	assert.ErrorIs(t, err, providers.ErrRateLimited)
	assert.Equal(t, 1, mock.calls)
}

func TestGenerateArticleMalformedResponseRetainsRaw(t *testing.T) {
	mock := &mockProvider{
		name:   "openai",
		result: &providers.CompletionResult{Text: "not json at all"},
	}
	g := newTestGenerator(t, mock)

	_, err := g.GenerateArticle(context.Background(), &seo.ArticleRequest{
		Topic:       "coffee",
		Tone:        seo.ToneInformal,
		WordCount:   800,
		ArticleType: seo.TypeGuide,
	})

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageParsed, stageErr.Stage)
	assert.Equal(t, "not json at all", stageErr.Raw)

	var malformed *validation.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestGenerateArticleModelOverride(t *testing.T) {
	raw, words := articleResponse(t)
	mock := &mockProvider{
		name:   "openai",
		result: &providers.CompletionResult{Text: raw},
	}
	g := newTestGenerator(t, mock)

	result, err := g.GenerateArticle(context.Background(), &seo.ArticleRequest{
		Topic:       "coffee",
		Tone:        seo.ToneInformal,
		WordCount:   words,
		ArticleType: seo.TypeGuide,
		Model:       "gpt-4-turbo",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4-turbo", result.Model)
	assert.Equal(t, "gpt-4-turbo", mock.lastReq.Model)
}

func TestGenerateKeywords(t *testing.T) {
	record := seo.KeywordRecord{
		Keywords: map[seo.KeywordCategory][]string{
			seo.CategoryPrimary:  {"coffee roasting", "roast coffee"},
			seo.CategoryQuestion: {"how to roast coffee"},
		},
		Insights: seo.KeywordInsights{
			SearchVolume:     "medium",
			Competition:      "low",
			RecommendedFocus: "primary keywords first",
		},
	}
	data, err := json.Marshal(record)
	require.NoError(t, err)

	mock := &mockProvider{
		name:   "openai",
		result: &providers.CompletionResult{Text: string(data), PromptTokens: 200, CompletionTokens: 90},
	}
	g := newTestGenerator(t, mock)

	result, err := g.GenerateKeywords(context.Background(), &seo.KeywordRequest{
		Topic:      "home coffee roasting",
		Count:      3,
		Categories: []seo.KeywordCategory{seo.CategoryPrimary, seo.CategoryQuestion},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, mock.calls)
	assert.Equal(t, 3, result.Record.TotalKeywords)
	assert.Equal(t, "home coffee roasting", result.Record.Topic)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, prompts.KeywordSystemPrompt, mock.lastReq.System)
}

func TestGenerateKeywordsUnknownCategorySkipsProvider(t *testing.T) {
	mock := &mockProvider{name: "openai"}
	g := newTestGenerator(t, mock)

	_, err := g.GenerateKeywords(context.Background(), &seo.KeywordRequest{
		Topic:      "coffee",
		Count:      10,
		Categories: []seo.KeywordCategory{"brand_keywords"},
	})

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StagePromptBuilt, stageErr.Stage)
	assert.ErrorIs(t, err, prompts.ErrUnknownKeywordCategory)
	assert.Zero(t, mock.calls)
}

func TestStageErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &StageError{Stage: StageInvoked, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "invoked")
}
