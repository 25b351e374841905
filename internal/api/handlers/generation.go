// Package handlers contains the HTTP handlers for the generation API.
package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"seoforge/internal/seo"
	"seoforge/internal/service/generator"
	"seoforge/internal/service/llm/prompts"
	"seoforge/internal/service/llm/providers"
	"seoforge/internal/service/llm/tokens"
	"seoforge/internal/service/llm/validation"
	"seoforge/internal/writer"
)

// GenerationHandler handles article and keyword generation requests.
type GenerationHandler struct {
	Generator *generator.Generator
	Writer    *writer.Writer
}

// NewGenerationHandler creates a new generation handler.
func NewGenerationHandler(gen *generator.Generator, w *writer.Writer) *GenerationHandler {
	return &GenerationHandler{Generator: gen, Writer: w}
}

// ArticleRequest is the JSON body of POST /api/articles.
type ArticleRequest struct {
	Topic       string   `json:"topic"`
	Tone        string   `json:"tone"`
	WordCount   int      `json:"word_count"`
	ArticleType string   `json:"article_type"`
	Model       string   `json:"model,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// KeywordRequest is the JSON body of POST /api/keywords.
type KeywordRequest struct {
	Topic      string   `json:"topic"`
	Count      int      `json:"count"`
	Categories []string `json:"categories,omitempty"`
}

// ErrorResponse is the standard error payload. Raw carries the unparseable
// completion text when a response failed validation.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Stage   string `json:"stage,omitempty"`
	Raw     string `json:"raw,omitempty"`
}

// GenerateArticle handles POST /api/articles.
func (h *GenerationHandler) GenerateArticle(c *fiber.Ctx) error {
	var body ArticleRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body: " + err.Error()})
	}

	req := &seo.ArticleRequest{
		Topic:       body.Topic,
		Tone:        seo.Tone(body.Tone),
		WordCount:   body.WordCount,
		ArticleType: seo.ArticleType(body.ArticleType),
		Model:       body.Model,
		Keywords:    body.Keywords,
	}
	if req.Tone == "" {
		req.Tone = seo.ToneInformal
	}
	if req.ArticleType == "" {
		req.ArticleType = seo.TypeGuide
	}

	result, err := h.Generator.GenerateArticle(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	paths, err := h.Writer.WriteArticle(req.Topic, result.Record)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
		"files": fiber.Map{
			"json":     paths.JSON,
			"markdown": paths.Markdown,
			"html":     paths.HTML,
		},
	})
}

// GenerateKeywords handles POST /api/keywords.
func (h *GenerationHandler) GenerateKeywords(c *fiber.Ctx) error {
	var body KeywordRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body: " + err.Error()})
	}

	req := &seo.KeywordRequest{
		Topic: body.Topic,
		Count: body.Count,
	}
	for _, cat := range body.Categories {
		req.Categories = append(req.Categories, seo.KeywordCategory(cat))
	}
	if req.Count == 0 {
		req.Count = 15
	}

	result, err := h.Generator.GenerateKeywords(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	path, err := h.Writer.WriteKeywords(req.Topic, result.Record)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
		"files":   fiber.Map{"json": path},
	})
}

// ListModels handles GET /api/models.
func (h *GenerationHandler) ListModels(c *fiber.Ctx) error {
	profiles := tokens.Profiles()
	models := make([]fiber.Map, 0, len(profiles))
	for _, p := range profiles {
		models = append(models, fiber.Map{
			"id":                 p.ID,
			"provider":           p.Provider,
			"max_context_tokens": p.MaxContextTokens,
			"max_output_tokens":  p.MaxOutputTokens,
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": models})
}

// writeError maps pipeline failures onto HTTP statuses: pre-flight problems
// are the caller's fault, remote and parse failures are upstream problems.
func writeError(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{Error: err.Error()}

	var stageErr *generator.StageError
	if errors.As(err, &stageErr) {
		resp.Stage = string(stageErr.Stage)
		resp.Raw = stageErr.Raw
	}

	status := fiber.StatusInternalServerError
	var malformed *validation.MalformedResponseError
	var schemaErr *validation.SchemaError
	switch {
	case errors.Is(err, tokens.ErrUnsupportedModel),
		errors.Is(err, tokens.ErrRequestExceedsAllModels),
		errors.Is(err, prompts.ErrUnknownKeywordCategory):
		status = fiber.StatusBadRequest
	case errors.Is(err, context.Canceled):
		status = fiber.StatusBadRequest
	case errors.Is(err, providers.ErrRateLimited):
		status = fiber.StatusTooManyRequests
	case errors.Is(err, providers.ErrAuthFailure),
		errors.Is(err, providers.ErrEmptyResponse),
		errors.As(err, &malformed),
		errors.As(err, &schemaErr):
		status = fiber.StatusBadGateway
	case errors.Is(err, providers.ErrTransportFailure),
		errors.Is(err, context.DeadlineExceeded):
		status = fiber.StatusGatewayTimeout
	default:
		if stageErr != nil && stageErr.Stage == generator.StageReceived {
			status = fiber.StatusBadRequest
		}
	}

	return c.Status(status).JSON(resp)
}
