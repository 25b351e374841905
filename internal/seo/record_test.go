package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Home Coffee Roasting", "home-coffee-roasting"},
		{"seo tips / tricks", "seo-tips-tricks"},
		{"  Spaces  everywhere  ", "spaces-everywhere"},
		{"Ünïcode & symbols!", "ncode-symbols"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestTotalWordCount(t *testing.T) {
	record := ArticleRecord{
		ArticleTitle: "Four word article title",
		Sections: []Section{
			{Heading: "First heading", Content: "one two three four five"},
			{Heading: "Second heading", Content: "six seven eight"},
		},
		FAQ: []FAQEntry{
			{Question: "why is that", Answer: "because of this"},
		},
		SEOTips: []string{"tip one", "tip two"},
	}

	// 4 + (2+5) + (2+3) + (3+3) + (2+2) = 26
	assert.Equal(t, 26, record.TotalWordCount())
}

func TestTotalWordCountEmptyRecord(t *testing.T) {
	var record ArticleRecord
	assert.Equal(t, 0, record.TotalWordCount())
}

func TestArticleRequestValidate(t *testing.T) {
	valid := ArticleRequest{
		Topic:       "coffee",
		Tone:        ToneInformal,
		WordCount:   1200,
		ArticleType: TypeGuide,
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.WordCount = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Tone = "sarcastic"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.ArticleType = "rant"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Topic = "   "
	assert.Error(t, bad.Validate())
}

func TestKeywordRequestEffectiveCategories(t *testing.T) {
	req := KeywordRequest{Topic: "coffee", Count: 15}
	assert.Equal(t, KeywordCategories, req.EffectiveCategories())

	req.Categories = []KeywordCategory{CategoryPrimary}
	assert.Equal(t, []KeywordCategory{CategoryPrimary}, req.EffectiveCategories())
}

func TestFlatKeywordsFixedOrder(t *testing.T) {
	record := KeywordRecord{
		Keywords: map[KeywordCategory][]string{
			CategoryRelated: {"related one"},
			CategoryPrimary: {"primary one", "primary two"},
		},
	}
	assert.Equal(t, []string{"primary one", "primary two", "related one"}, record.FlatKeywords())
}
