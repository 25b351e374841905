// Package prompts builds the instruction payloads sent to the completion
// providers. Generation is pure: the same request and profile always yield
// byte-identical prompt text, so every structural constraint the model must
// honor is encoded here rather than negotiated over multiple turns.
package prompts

import (
	"errors"
	"fmt"
	"strings"

	"seoforge/internal/seo"
)

// ErrUnknownKeywordCategory is returned before any remote call when a
// request names a category outside the fixed enumeration.
var ErrUnknownKeywordCategory = errors.New("unknown keyword category")

// System prompts handed to the providers alongside the task prompt.
const (
	ArticleSystemPrompt = "You are an expert SEO content writer. You write original, engaging content that provides genuine value to readers while being optimized for search engines."
	KeywordSystemPrompt = "You are an expert SEO specialist who generates high-quality, searchable keywords for content optimization."
)

// categoryDescriptions explains each keyword category to the model.
var categoryDescriptions = map[seo.KeywordCategory]string{
	seo.CategoryPrimary:  "main target keywords (1-3 words)",
	seo.CategoryLongTail: "longer, more specific phrases (4+ words)",
	seo.CategoryQuestion: "keywords that start with what, how, why, when, where, etc.",
	seo.CategoryLocal:    "keywords with location modifiers",
	seo.CategoryRelated:  "semantically related terms and synonyms",
}

// structureNotes states the structural expectation each article type implies.
var structureNotes = map[seo.ArticleType]string{
	seo.TypeGuide:      "Structure the article as a comprehensive guide with sections that build on each other logically.",
	seo.TypeReview:     "Structure the article as a review: cover features, strengths, weaknesses, and end with a clear verdict section.",
	seo.TypeHowTo:      "Structure the article as ordered step sections: each section heading is a numbered step in sequence (Step 1, Step 2, ...).",
	seo.TypeList:       "Structure the article as a listicle: each section heading is a numbered list item.",
	seo.TypeComparison: "Structure the article as a comparison: present the alternatives section by section and finish with a recommendation section.",
}

// Generator creates prompts for the generation pipeline.
type Generator struct{}

// NewGenerator creates a new prompt generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// ArticlePrompt builds the full instruction payload for an article request.
// The payload pins the exact target word count, the counting rule, the tone,
// the article type's structure, and the required JSON schema. The model is
// told to self-check its word count and answer exactly once; there is no
// regenerate-on-mismatch loop to fall back on.
func (g *Generator) ArticlePrompt(req *seo.ArticleRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Create a comprehensive, SEO-optimized %s article targeting the keyword: %q.\n\n", req.ArticleType, req.Topic))

	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("- Target word count: exactly %d words\n", req.WordCount))
	sb.WriteString("- Counting rule: count every word in every textual field: title, all section bodies, all FAQ questions and answers, all SEO tips\n")
	sb.WriteString(fmt.Sprintf("- Tone: %s\n", req.Tone))
	sb.WriteString("- Include the target keyword naturally throughout the content\n")
	if len(req.Keywords) > 0 {
		quoted := make([]string, len(req.Keywords))
		for i, kw := range req.Keywords {
			quoted[i] = fmt.Sprintf("%q", kw)
		}
		sb.WriteString(fmt.Sprintf("- Use ALL of the following keywords naturally throughout the article: %s\n", strings.Join(quoted, ", ")))
	}
	sb.WriteString("- Create engaging, informative content that provides real value\n")
	sb.WriteString("- Include relevant subheadings for better structure\n")
	sb.WriteString("- Add a FAQ section with common questions about the topic\n\n")

	sb.WriteString(structureNotes[req.ArticleType])
	sb.WriteString("\n\n")

	sb.WriteString("Return the result as a single valid JSON object with exactly this structure:\n\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"meta_title\": \"SEO-optimized title (50-60 characters)\",\n")
	sb.WriteString("  \"meta_description\": \"Compelling description (150-160 characters)\",\n")
	sb.WriteString("  \"article_title\": \"Engaging main title\",\n")
	sb.WriteString(fmt.Sprintf("  \"target_keyword\": %q,\n", req.Topic))
	sb.WriteString(fmt.Sprintf("  \"word_count\": %d,\n", req.WordCount))
	sb.WriteString("  \"article_sections\": [\n")
	sb.WriteString("    {\n")
	sb.WriteString("      \"heading\": \"H2 heading\",\n")
	sb.WriteString("      \"content\": \"Well-written content with natural keyword usage...\"\n")
	sb.WriteString("    }\n")
	sb.WriteString("  ],\n")
	sb.WriteString("  \"faq\": [\n")
	sb.WriteString("    {\n")
	sb.WriteString("      \"question\": \"Common question about the topic\",\n")
	sb.WriteString("      \"answer\": \"Clear, helpful answer\"\n")
	sb.WriteString("    }\n")
	sb.WriteString("  ],\n")
	sb.WriteString("  \"seo_tips\": [\n")
	sb.WriteString("    \"SEO optimization tip 1\",\n")
	sb.WriteString("    \"SEO optimization tip 2\"\n")
	sb.WriteString("  ]\n")
	sb.WriteString("}\n\n")

	sb.WriteString(fmt.Sprintf("Before responding, count the words across all textual fields using the counting rule above and adjust the content until the total matches %d words. ", req.WordCount))
	sb.WriteString("Produce exactly one response containing only the JSON object, with no explanations and no markdown fences.")

	return sb.String()
}

// KeywordPrompt builds the instruction payload for a keyword request. It
// fails with ErrUnknownKeywordCategory before any remote interaction when
// the request names a category outside the fixed set.
func (g *Generator) KeywordPrompt(req *seo.KeywordRequest) (string, error) {
	categories := req.EffectiveCategories()
	for _, cat := range categories {
		if !cat.Valid() {
			return "", fmt.Errorf("%w: %q", ErrUnknownKeywordCategory, cat)
		}
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate SEO keywords for the topic: %q\n\n", req.Topic))

	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("- Generate %d keywords total\n", req.Count))
	sb.WriteString("- Focus on high-search-volume, low-competition keywords\n")
	sb.WriteString("- Include a mix of different keyword types\n")
	sb.WriteString("- Keywords should be relevant and valuable for SEO\n\n")

	sb.WriteString("Keyword categories to include:\n")
	for _, cat := range categories {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", cat, categoryDescriptions[cat]))
	}
	sb.WriteString("\n")

	sb.WriteString("Return the result as a single valid JSON object with exactly this structure:\n\n")
	sb.WriteString("{\n")
	sb.WriteString(fmt.Sprintf("  \"topic\": %q,\n", req.Topic))
	sb.WriteString(fmt.Sprintf("  \"total_keywords\": %d,\n", req.Count))
	sb.WriteString("  \"keywords\": {\n")
	for i, cat := range categories {
		sb.WriteString(fmt.Sprintf("    %q: [\"keyword 1\", \"keyword 2\"]", string(cat)))
		if i < len(categories)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  },\n")
	sb.WriteString("  \"seo_insights\": {\n")
	sb.WriteString("    \"search_volume_estimate\": \"high/medium/low\",\n")
	sb.WriteString("    \"competition_level\": \"high/medium/low\",\n")
	sb.WriteString("    \"recommended_focus\": \"primary keywords to target first\"\n")
	sb.WriteString("  }\n")
	sb.WriteString("}\n\n")

	sb.WriteString("Only populate the categories listed above. Do not repeat a keyword within a category. ")
	sb.WriteString("Produce exactly one response containing only the JSON object, with no explanations and no markdown fences.")

	return sb.String(), nil
}
