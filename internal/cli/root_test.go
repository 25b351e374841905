package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoforge/internal/service/llm/prompts"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestModelsCommand(t *testing.T) {
	out, _, err := execute(t, "models")
	require.NoError(t, err)

	assert.Contains(t, out, "Supported models")
	assert.Contains(t, out, "gpt-4")
	assert.Contains(t, out, "gemini-1.5-pro")
}

func TestArticleCommandRequiresTopic(t *testing.T) {
	_, _, err := execute(t, "article")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic")
}

func TestKeywordsCommandRequiresTopic(t *testing.T) {
	_, _, err := execute(t, "keywords")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic")
}

func TestKeywordsCommandUnknownCategory(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OUTPUT_DIR", t.TempDir())

	_, _, err := execute(t, "keywords", "-t", "coffee", "-y", "brand_keywords")
	require.Error(t, err)
	assert.ErrorIs(t, err, prompts.ErrUnknownKeywordCategory)
}

func TestFormatLog(t *testing.T) {
	got := formatLog("Generating article", []interface{}{"topic", "coffee", "word_count", 1200})
	assert.Equal(t, "Generating article topic=coffee word_count=1200", got)
}
