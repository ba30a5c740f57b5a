// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PromptCategory groups saved AI prompts by what they generate.
type PromptCategory string

const (
	PromptCategoryStoryWrite PromptCategory = "story_write"
	PromptCategorySEOGen     PromptCategory = "seo_gen"
	PromptCategoryDescGen    PromptCategory = "desc_gen"
	PromptCategoryGeneral    PromptCategory = "general"
)

// AIPrompt is a saved, editable prompt template. Templates contain
// {placeholder} markers that are substituted with request values before
// being sent to the AI provider.
type AIPrompt struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	PromptText string         `json:"prompt_text"`
	Category   PromptCategory `json:"category"`
	IsActive   bool           `json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Render substitutes {key} placeholders in the prompt text with the given
// values. Both {key} and {{key}} forms are accepted, matching how saved
// prompts were written by editors over time. Unknown placeholders are left
// untouched.
func (p *AIPrompt) Render(values map[string]string) string {
	text := p.PromptText
	for key, val := range values {
		text = strings.ReplaceAll(text, "{{"+key+"}}", val)
		text = strings.ReplaceAll(text, "{"+key+"}", val)
	}
	return text
}
