// Package tokens holds the static model registry, the output-token budget
// selector, and usage accounting for completed requests.
package tokens

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Budgeting constants. The overhead covers the JSON scaffolding, schema keys
// and instruction echo a structured response carries on top of the article
// text itself.
const (
	// ScaffoldingOverheadTokens is added to every output budget estimate.
	ScaffoldingOverheadTokens = 600

	// defaultWordsPerToken matches the rough 4-characters-per-token rule:
	// English prose averages about 0.75 words per token.
	defaultWordsPerToken = 0.75
)

// Selection errors.
var (
	ErrUnsupportedModel        = errors.New("unsupported model")
	ErrRequestExceedsAllModels = errors.New("requested word count exceeds every registered model")
)

// ModelProfile describes a generation model's limits and pricing. Profiles
// are static and read-only.
type ModelProfile struct {
	ID               string  // model identifier sent to the provider
	Provider         string  // provider name the id belongs to
	MaxContextTokens int     // total context window
	MaxOutputTokens  int     // approximate completion ceiling
	WordsPerToken    float64 // rough words-per-token ratio used for budgeting

	// Pricing, dollars per 1K tokens, used only for usage accounting.
	PromptCostPer1K     float64
	CompletionCostPer1K float64
}

// registry lists supported models in selection order: ascending by output
// ceiling and by context window together, so walking it front to back is
// deterministic and never downgrades to a smaller-context model as the
// requested word count grows.
var registry = []ModelProfile{
	{
		ID:                  "gpt-4",
		Provider:            "openai",
		MaxContextTokens:    8192,
		MaxOutputTokens:     4096,
		WordsPerToken:       defaultWordsPerToken,
		PromptCostPer1K:     0.03,
		CompletionCostPer1K: 0.06,
	},
	{
		ID:                  "gpt-3.5-turbo",
		Provider:            "openai",
		MaxContextTokens:    16385,
		MaxOutputTokens:     4096,
		WordsPerToken:       defaultWordsPerToken,
		PromptCostPer1K:     0.0015,
		CompletionCostPer1K: 0.002,
	},
	{
		ID:                  "gpt-4-turbo",
		Provider:            "openai",
		MaxContextTokens:    128000,
		MaxOutputTokens:     4096,
		WordsPerToken:       defaultWordsPerToken,
		PromptCostPer1K:     0.01,
		CompletionCostPer1K: 0.03,
	},
	{
		ID:                  "gemini-1.5-flash",
		Provider:            "gemini",
		MaxContextTokens:    1000000,
		MaxOutputTokens:     8192,
		WordsPerToken:       defaultWordsPerToken,
		PromptCostPer1K:     0.00035,
		CompletionCostPer1K: 0.00035,
	},
	{
		ID:                  "gemini-1.5-pro",
		Provider:            "gemini",
		MaxContextTokens:    1000000,
		MaxOutputTokens:     8192,
		WordsPerToken:       defaultWordsPerToken,
		PromptCostPer1K:     0.00175,
		CompletionCostPer1K: 0.00175,
	},
}

// Profiles returns a copy of the registry in selection order.
func Profiles() []ModelProfile {
	out := make([]ModelProfile, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the profile for an exact model id.
func Lookup(id string) (ModelProfile, error) {
	for _, p := range registry {
		if p.ID == id {
			return p, nil
		}
	}
	return ModelProfile{}, fmt.Errorf("%w: %q", ErrUnsupportedModel, id)
}

// OutputBudget estimates the completion tokens needed for a target word
// count, including the structural scaffolding overhead.
func OutputBudget(wordCount int, wordsPerToken float64) int {
	if wordsPerToken <= 0 {
		wordsPerToken = defaultWordsPerToken
	}
	return int(float64(wordCount)/wordsPerToken) + ScaffoldingOverheadTokens
}

// SelectModel picks a profile for the requested word count. An explicit
// override must name a registered model; otherwise the smallest model whose
// output ceiling covers the estimated budget wins. A non-empty provider
// restricts automatic selection to that provider's models. When nothing fits
// the request fails rather than silently truncating.
func SelectModel(wordCount int, override, provider string) (ModelProfile, error) {
	if override != "" {
		return Lookup(override)
	}
	for _, p := range registry {
		if provider != "" && p.Provider != provider {
			continue
		}
		if OutputBudget(wordCount, p.WordsPerToken) <= p.MaxOutputTokens {
			return p, nil
		}
	}
	return ModelProfile{}, fmt.Errorf("%w: %d words", ErrRequestExceedsAllModels, wordCount)
}

// MaxCompletionTokens computes the per-request output ceiling handed to the
// provider: the estimated budget, capped at the model's own ceiling.
func MaxCompletionTokens(p ModelProfile, wordCount int) int {
	budget := OutputBudget(wordCount, p.WordsPerToken)
	if budget > p.MaxOutputTokens {
		return p.MaxOutputTokens
	}
	return budget
}

// EstimateTokens estimates the number of tokens in a string. This is a very
// rough approximation; different models tokenize differently.
func EstimateTokens(text string) int {
	// Roughly 4 characters per token for English text.
	return utf8.RuneCountInString(text) / 4
}
