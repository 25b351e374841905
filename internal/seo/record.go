package seo

import (
	"regexp"
	"strings"
)

// Section is one H2 section of a generated article.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// FAQEntry is one question/answer pair of the FAQ block.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ArticleRecord is a validated, generated article. Records are created once
// from parsed model output and never mutated afterwards.
type ArticleRecord struct {
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	ArticleTitle    string     `json:"article_title"`
	TargetKeyword   string     `json:"target_keyword"`
	WordCount       int        `json:"word_count"`
	Sections        []Section  `json:"article_sections"`
	FAQ             []FAQEntry `json:"faq"`
	SEOTips         []string   `json:"seo_tips"`
}

// TotalWordCount recomputes the article's word count by splitting every
// textual field on whitespace, in the fixed order: title, sections, FAQ
// entries, SEO tips.
func (a *ArticleRecord) TotalWordCount() int {
	total := countWords(a.ArticleTitle)
	for _, s := range a.Sections {
		total += countWords(s.Heading)
		total += countWords(s.Content)
	}
	for _, f := range a.FAQ {
		total += countWords(f.Question)
		total += countWords(f.Answer)
	}
	for _, tip := range a.SEOTips {
		total += countWords(tip)
	}
	return total
}

// KeywordInsights summarizes estimated search volume and competition tiers
// for a generated keyword set.
type KeywordInsights struct {
	SearchVolume     string `json:"search_volume_estimate"`
	Competition      string `json:"competition_level"`
	RecommendedFocus string `json:"recommended_focus"`
}

// KeywordRecord is a validated, generated keyword set grouped by category.
type KeywordRecord struct {
	Topic         string                       `json:"topic"`
	TotalKeywords int                          `json:"total_keywords"`
	Keywords      map[KeywordCategory][]string `json:"keywords"`
	Insights      KeywordInsights              `json:"seo_insights"`
}

// CountKeywords returns the number of keywords across all categories.
func (k *KeywordRecord) CountKeywords() int {
	n := 0
	for _, list := range k.Keywords {
		n += len(list)
	}
	return n
}

// FlatKeywords returns every keyword across all categories in the fixed
// category order, suitable for feeding into an article request.
func (k *KeywordRecord) FlatKeywords() []string {
	var flat []string
	for _, cat := range KeywordCategories {
		flat = append(flat, k.Keywords[cat]...)
	}
	return flat
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9-]+`)

// Slugify turns a topic into a slug-safe file name fragment: lowercased,
// spaces and slashes replaced with hyphens, everything else stripped.
func Slugify(topic string) string {
	s := strings.ToLower(strings.TrimSpace(topic))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = slugUnsafe.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}
