// Package validation parses raw completion text into validated records.
// Parsing and schema mismatches are hard failures that retain the raw text
// for diagnostics; metric deviations (word count, keyword count, duplicates)
// become warnings on an otherwise-usable record, because the single-attempt
// generation policy leaves no regeneration loop to correct them. The
// validator never calls back into the completion service.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"seoforge/internal/seo"
)

// Tolerance bands for soft validation. Deviations inside the band pass
// silently; outside it they are attached as warnings, never hard failures.
const (
	// WordCountTolerance is the fractional band around the requested
	// article word count.
	WordCountTolerance = 0.10

	// KeywordCountTolerance is the fractional band around the requested
	// total keyword count.
	KeywordCountTolerance = 0.20
)

// WarningKind names a soft validation deviation.
type WarningKind string

const (
	WarnWordCountMismatch    WarningKind = "word_count_mismatch"
	WarnKeywordCountMismatch WarningKind = "keyword_count_mismatch"
	WarnDuplicateKeyword     WarningKind = "duplicate_keyword"
)

// Warning is a detected deviation that does not invalidate the record.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// MalformedResponseError reports raw text that is not valid structured data.
// The raw text is retained for diagnostic surfacing.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaError reports a required field that is missing or of the wrong shape.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch on field %q: %s", e.Field, e.Reason)
}

// jsonBlob matches the outermost JSON object embedded in free-form text, so
// responses wrapped in prose or markdown fences still parse.
var jsonBlob = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON pulls the JSON object out of raw completion text.
func extractJSON(raw string) (string, error) {
	if blob := jsonBlob.FindString(raw); blob != "" {
		return blob, nil
	}
	return "", fmt.Errorf("no JSON object found in response")
}

// decodeFields splits the top-level object into raw fields, failing with a
// MalformedResponseError that keeps the original text.
func decodeFields(raw string) (map[string]json.RawMessage, error) {
	blob, err := extractJSON(raw)
	if err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal([]byte(blob), &fields); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}
	return fields, nil
}

// requireField decodes one required field into dst, naming the field in the
// failure.
func requireField(fields map[string]json.RawMessage, name string, dst interface{}) error {
	raw, ok := fields[name]
	if !ok {
		return &SchemaError{Field: name, Reason: "missing"}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &SchemaError{Field: name, Reason: fmt.Sprintf("unexpected shape: %v", err)}
	}
	return nil
}

// optionalField decodes a field when present, still enforcing its shape.
func optionalField(fields map[string]json.RawMessage, name string, dst interface{}) error {
	raw, ok := fields[name]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &SchemaError{Field: name, Reason: fmt.Sprintf("unexpected shape: %v", err)}
	}
	return nil
}

// ParseArticle validates raw completion text against the article schema and
// recomputes the total word count against the requested target.
func ParseArticle(raw string, req *seo.ArticleRequest) (*seo.ArticleRecord, []Warning, error) {
	fields, err := decodeFields(raw)
	if err != nil {
		return nil, nil, err
	}

	var record seo.ArticleRecord
	required := []struct {
		name string
		dst  interface{}
	}{
		{"meta_title", &record.MetaTitle},
		{"meta_description", &record.MetaDescription},
		{"article_title", &record.ArticleTitle},
		{"article_sections", &record.Sections},
		{"faq", &record.FAQ},
		{"seo_tips", &record.SEOTips},
	}
	for _, f := range required {
		if err := requireField(fields, f.name, f.dst); err != nil {
			return nil, nil, err
		}
	}
	if err := optionalField(fields, "target_keyword", &record.TargetKeyword); err != nil {
		return nil, nil, err
	}
	if err := optionalField(fields, "word_count", &record.WordCount); err != nil {
		return nil, nil, err
	}
	if len(record.Sections) == 0 {
		return nil, nil, &SchemaError{Field: "article_sections", Reason: "empty"}
	}
	if record.TargetKeyword == "" {
		record.TargetKeyword = req.Topic
	}

	var warnings []Warning
	total := record.TotalWordCount()
	record.WordCount = total
	if outsideTolerance(total, req.WordCount, WordCountTolerance) {
		warnings = append(warnings, Warning{
			Kind: WarnWordCountMismatch,
			Message: fmt.Sprintf("recomputed word count %d deviates from target %d by more than %.0f%%",
				total, req.WordCount, WordCountTolerance*100),
		})
	}

	return &record, warnings, nil
}

// ParseKeywords validates raw completion text against the keyword schema.
// Category names outside the request's set are hard failures; duplicate
// keywords and count deviations are warnings.
func ParseKeywords(raw string, req *seo.KeywordRequest) (*seo.KeywordRecord, []Warning, error) {
	fields, err := decodeFields(raw)
	if err != nil {
		return nil, nil, err
	}

	var record seo.KeywordRecord
	if err := requireField(fields, "keywords", &record.Keywords); err != nil {
		return nil, nil, err
	}
	if err := requireField(fields, "seo_insights", &record.Insights); err != nil {
		return nil, nil, err
	}
	if err := optionalField(fields, "topic", &record.Topic); err != nil {
		return nil, nil, err
	}
	if record.Topic == "" {
		record.Topic = req.Topic
	}

	requested := make(map[seo.KeywordCategory]bool)
	for _, cat := range req.EffectiveCategories() {
		requested[cat] = true
	}

	for cat := range record.Keywords {
		if !cat.Valid() || !requested[cat] {
			return nil, nil, &SchemaError{Field: "keywords." + string(cat), Reason: "category not in requested set"}
		}
	}

	var warnings []Warning
	for _, cat := range seo.KeywordCategories {
		list := record.Keywords[cat]
		seen := make(map[string]bool, len(list))
		for _, kw := range list {
			folded := strings.ToLower(strings.TrimSpace(kw))
			if seen[folded] {
				warnings = append(warnings, Warning{
					Kind:    WarnDuplicateKeyword,
					Message: fmt.Sprintf("duplicate keyword %q in category %s", kw, cat),
				})
				continue
			}
			seen[folded] = true
		}
	}

	total := record.CountKeywords()
	record.TotalKeywords = total
	if outsideTolerance(total, req.Count, KeywordCountTolerance) {
		warnings = append(warnings, Warning{
			Kind: WarnKeywordCountMismatch,
			Message: fmt.Sprintf("returned %d keywords, requested %d (tolerance %.0f%%)",
				total, req.Count, KeywordCountTolerance*100),
		})
	}

	return &record, warnings, nil
}

// outsideTolerance reports whether got deviates from want by more than the
// fractional band.
func outsideTolerance(got, want int, tolerance float64) bool {
	if want <= 0 {
		return false
	}
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) > float64(want)*tolerance
}
