// Package seo defines the domain types shared by the generation pipeline:
// requests, the fixed enumerations they draw from, and the validated records
// produced from model output.
package seo

import (
	"fmt"
	"strings"
)

// Tone controls the writing style requested from the model.
type Tone string

const (
	ToneFormal         Tone = "formal"
	ToneInformal       Tone = "informal"
	ToneConversational Tone = "conversational"
	ToneProfessional   Tone = "professional"
)

// Tones lists every supported tone in a fixed order.
var Tones = []Tone{ToneFormal, ToneInformal, ToneConversational, ToneProfessional}

// Valid reports whether the tone is one of the supported values.
func (t Tone) Valid() bool {
	switch t {
	case ToneFormal, ToneInformal, ToneConversational, ToneProfessional:
		return true
	}
	return false
}

// ArticleType selects the structural template an article should follow.
type ArticleType string

const (
	TypeGuide      ArticleType = "guide"
	TypeReview     ArticleType = "review"
	TypeHowTo      ArticleType = "how-to"
	TypeList       ArticleType = "list"
	TypeComparison ArticleType = "comparison"
)

// ArticleTypes lists every supported article type in a fixed order.
var ArticleTypes = []ArticleType{TypeGuide, TypeReview, TypeHowTo, TypeList, TypeComparison}

// Valid reports whether the article type is one of the supported values.
func (a ArticleType) Valid() bool {
	switch a {
	case TypeGuide, TypeReview, TypeHowTo, TypeList, TypeComparison:
		return true
	}
	return false
}

// KeywordCategory names one of the five fixed keyword buckets.
type KeywordCategory string

const (
	CategoryPrimary  KeywordCategory = "primary_keywords"
	CategoryLongTail KeywordCategory = "long_tail_keywords"
	CategoryQuestion KeywordCategory = "question_keywords"
	CategoryLocal    KeywordCategory = "local_keywords"
	CategoryRelated  KeywordCategory = "related_keywords"
)

// KeywordCategories lists the five fixed categories in a fixed order.
var KeywordCategories = []KeywordCategory{
	CategoryPrimary,
	CategoryLongTail,
	CategoryQuestion,
	CategoryLocal,
	CategoryRelated,
}

// Valid reports whether the category is one of the five fixed values.
func (c KeywordCategory) Valid() bool {
	switch c {
	case CategoryPrimary, CategoryLongTail, CategoryQuestion, CategoryLocal, CategoryRelated:
		return true
	}
	return false
}

// ArticleRequest describes a single article generation request.
type ArticleRequest struct {
	Topic       string
	Tone        Tone
	WordCount   int
	ArticleType ArticleType

	// Model optionally pins a specific model id instead of letting the
	// budget selector choose one.
	Model string

	// Keywords, when non-empty, is a flat list the article must weave in
	// naturally. Typically the output of a prior keyword generation.
	Keywords []string
}

// Validate checks the request invariants before any work is done.
func (r *ArticleRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("topic is required")
	}
	if !r.Tone.Valid() {
		return fmt.Errorf("unknown tone %q", r.Tone)
	}
	if r.WordCount <= 0 {
		return fmt.Errorf("word count must be positive, got %d", r.WordCount)
	}
	if !r.ArticleType.Valid() {
		return fmt.Errorf("unknown article type %q", r.ArticleType)
	}
	return nil
}

// KeywordRequest describes a single keyword generation request.
type KeywordRequest struct {
	Topic string
	Count int

	// Categories restricts generation to a subset of the fixed categories.
	// Empty means all five.
	Categories []KeywordCategory
}

// Validate checks the request invariants. Unknown categories are caught
// later, before any remote call, so callers get the dedicated error kind.
func (r *KeywordRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("topic is required")
	}
	if r.Count <= 0 {
		return fmt.Errorf("keyword count must be positive, got %d", r.Count)
	}
	return nil
}

// EffectiveCategories returns the requested categories, defaulting to all
// five when none were specified.
func (r *KeywordRequest) EffectiveCategories() []KeywordCategory {
	if len(r.Categories) == 0 {
		return KeywordCategories
	}
	return r.Categories
}
