package tokens

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputBudget(t *testing.T) {
	// 1200 words / 0.75 words per token = 1600 tokens, plus scaffolding.
	assert.Equal(t, 1600+ScaffoldingOverheadTokens, OutputBudget(1200, defaultWordsPerToken))

	// Non-positive ratio falls back to the default.
	assert.Equal(t, OutputBudget(1200, defaultWordsPerToken), OutputBudget(1200, 0))
}

func TestSelectModelSmallestFit(t *testing.T) {
	profile, err := SelectModel(1200, "", "")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", profile.ID)

	// Same input, same answer.
	again, err := SelectModel(1200, "", "")
	require.NoError(t, err)
	assert.Equal(t, profile, again)
}

func TestSelectModelLargeRequestUpgrades(t *testing.T) {
	// 4000 words needs ~5933 output tokens, beyond every 4096-token model.
	profile, err := SelectModel(4000, "", "")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", profile.ID)
}

func TestSelectModelMonotonicContext(t *testing.T) {
	prevContext := 0
	for _, words := range []int{100, 500, 1200, 2000, 2600, 3000, 4000, 5000} {
		profile, err := SelectModel(words, "", "")
		require.NoError(t, err, "word count %d", words)
		assert.GreaterOrEqual(t, profile.MaxContextTokens, prevContext,
			"context window shrank at %d words", words)
		prevContext = profile.MaxContextTokens
	}
}

func TestSelectModelExceedsAllModels(t *testing.T) {
	_, err := SelectModel(10000, "", "")
	require.ErrorIs(t, err, ErrRequestExceedsAllModels)
}

func TestSelectModelProviderFilter(t *testing.T) {
	profile, err := SelectModel(100, "", "gemini")
	require.NoError(t, err)
	assert.Equal(t, "gemini", profile.Provider)

	// OpenAI models top out at 4096 output tokens.
	_, err = SelectModel(4000, "", "openai")
	require.ErrorIs(t, err, ErrRequestExceedsAllModels)
}

func TestSelectModelOverride(t *testing.T) {
	profile, err := SelectModel(100, "gemini-1.5-pro", "")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-pro", profile.ID)

	_, err = SelectModel(100, "gpt-99", "")
	require.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestMaxCompletionTokensCapped(t *testing.T) {
	profile, err := Lookup("gpt-4")
	require.NoError(t, err)

	assert.Equal(t, OutputBudget(1200, profile.WordsPerToken), MaxCompletionTokens(profile, 1200))
	assert.Equal(t, profile.MaxOutputTokens, MaxCompletionTokens(profile, 100000))
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("word", 25)))
}

func TestCost(t *testing.T) {
	prompt, completion, total := Cost("gpt-4", 1000, 2000)
	assert.InDelta(t, 0.03, prompt, 1e-9)
	assert.InDelta(t, 0.12, completion, 1e-9)
	assert.InDelta(t, 0.15, total, 1e-9)

	_, _, total = Cost("no-such-model", 1000, 1000)
	assert.Zero(t, total)
}

func TestUsageTrackerAggregatesInMemory(t *testing.T) {
	tracker := NewUsageTracker(nil, 0.10)

	err := tracker.Record(context.Background(), UsageEntry{
		RequestID:        "req-1",
		Model:            "gpt-4",
		Provider:         "openai",
		ContentType:      "article",
		PromptTokens:     1000,
		CompletionTokens: 1000,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.09, tracker.DailyUsage(), 1e-9)
	assert.False(t, tracker.BudgetExceeded())

	require.NoError(t, tracker.Record(context.Background(), UsageEntry{
		RequestID:        "req-2",
		Model:            "gpt-4",
		Provider:         "openai",
		ContentType:      "keywords",
		PromptTokens:     1000,
		CompletionTokens: 1000,
	}))
	assert.True(t, tracker.BudgetExceeded())
}
