// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"sagacms/internal/models"
)

// Prompt names looked up in the saved prompt library. Editors can tune these
// at runtime; the built-in prompt below is the fallback when none is active.
const (
	GlobalPromptName = "Global SEO Generator"
	HubPromptName    = "City SEO Generator"
)

// metaDescriptionMax is the hard cap enforced on generated meta descriptions.
const metaDescriptionMax = 160

// TextGenerator is the slice of the AI provider registry the generator needs.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// PromptSource resolves active saved prompts by name. Returns (nil, nil)
// when no active prompt with that name exists.
type PromptSource interface {
	FindActiveByName(name string) (*models.AIPrompt, error)
}

// Generator produces SEO suggestions by rendering a prompt for the request
// and parsing the provider's JSON response.
type Generator struct {
	ai      TextGenerator
	prompts PromptSource
}

// NewGenerator creates a Generator. prompts may be nil, in which case only
// the built-in prompt is used.
func NewGenerator(ai TextGenerator, prompts PromptSource) *Generator {
	return &Generator{ai: ai, prompts: prompts}
}

// Generate builds the prompt for the request, calls the AI provider, and
// parses the response into Suggestions. The meta description is clamped to
// 160 characters regardless of what the model returned.
func (g *Generator) Generate(ctx context.Context, req *Request) (*Suggestions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userPrompt := g.buildPrompt(req)

	raw, err := g.ai.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("seo generate: %w", err)
	}

	s, err := ParseSuggestions(raw)
	if err != nil {
		slog.Warn("seo response was not valid JSON", "error", err)
		return nil, fmt.Errorf("seo parse: %w", err)
	}

	return s, nil
}

// buildPrompt renders the saved prompt for the request type, falling back to
// the built-in template. Hub requests use the city prompt.
func (g *Generator) buildPrompt(req *Request) string {
	values := map[string]string{
		"type":        string(req.Type),
		"title":       req.Title,
		"name":        req.Title,
		"description": req.Description,
		"content":     req.Snippet(),
	}

	name := GlobalPromptName
	if req.Type == KindHub {
		name = HubPromptName
	}

	if g.prompts != nil {
		saved, err := g.prompts.FindActiveByName(name)
		if err != nil {
			slog.Warn("saved prompt lookup failed, using built-in", "prompt", name, "error", err)
		} else if saved != nil {
			return saved.Render(values)
		}
	}

	return fmt.Sprintf(builtinPrompt, req.Type, req.Title, req.Description, req.Snippet())
}

// systemPrompt sets the model's role for every SEO generation call.
const systemPrompt = `You are an SEO expert for a startup ecosystem portal. You respond with raw JSON only — no markdown fences, no commentary.`

// builtinPrompt mirrors the default saved prompt and is used when the prompt
// library has no active "Global SEO Generator" entry.
const builtinPrompt = `Act as an SEO Expert. Analyze the following content for a %s named "%s".
Description: %s
Content Snippet: %s

Generate SEO Metadata in valid JSON format with these exact keys:
- meta_title (max 60 chars)
- meta_description (MUST BE EXACTLY 160 characters OR LESS. Do not exceed this limit.)
- keywords (comma separated)
- image_alt (max 100 chars, descriptive but concise alt text for the featured image)
- og_title
- og_description

Do not include markdown formatting. Just return the raw JSON string.`

// ParseSuggestions extracts a Suggestions value from a raw model response.
// It strips markdown code fences, locates the outermost JSON object, decodes
// it, and clamps the meta description to the 160-character cap.
func ParseSuggestions(raw string) (*Suggestions, error) {
	text := ExtractJSON(raw)
	if text == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var s Suggestions
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("unmarshal suggestions: %w", err)
	}

	s.MetaDescription = truncateRunes(s.MetaDescription, metaDescriptionMax)

	return &s, nil
}

// ExtractJSON strips markdown code fences from a model response and returns
// the substring spanning the first '{' to the last '}'. Returns "" when no
// object is present.
func ExtractJSON(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}
