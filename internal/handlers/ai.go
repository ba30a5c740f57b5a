// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"sagacms/internal/ai"
	"sagacms/internal/cache"
	"sagacms/internal/seo"
	"sagacms/internal/store"
)

// AI groups the AI-backed generation endpoints.
type AI struct {
	registry    *ai.Registry
	generator   *seo.Generator
	suggestions *cache.SuggestionCache
	promptStore *store.PromptStore
}

// NewAI creates the AI handler group. suggestions may be nil when Valkey
// is not configured; generation then always hits the provider.
func NewAI(registry *ai.Registry, generator *seo.Generator, suggestions *cache.SuggestionCache, promptStore *store.PromptStore) *AI {
	return &AI{
		registry:    registry,
		generator:   generator,
		suggestions: suggestions,
		promptStore: promptStore,
	}
}

// GenerateSEO produces SEO metadata suggestions for the posted form values.
// The response body is the flat suggestion object the edit-form widget
// copies into its meta fields. Identical requests are served from cache.
func (h *AI) GenerateSEO(w http.ResponseWriter, r *http.Request) {
	var req seo.Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	key := req.CacheKey()
	if h.suggestions != nil {
		if cached, ok := h.suggestions.Get(r.Context(), key); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	if mod, err := h.registry.CheckPrompt(r.Context(), req.Title+"\n"+req.Description); err == nil && !mod.Safe {
		slog.Warn("seo input flagged by moderation", "categories", mod.Categories)
		writeError(w, http.StatusUnprocessableEntity,
			"input rejected by content moderation: "+strings.Join(mod.Categories, ", "))
		return
	}

	suggestions, err := h.generator.Generate(r.Context(), &req)
	if err != nil {
		if errors.Is(err, seo.ErrTitleRequired) {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		slog.Error("seo generation failed", "type", req.Type, "error", err)
		writeError(w, http.StatusBadGateway, "generation failed, try again")
		return
	}

	if h.suggestions != nil {
		h.suggestions.Set(r.Context(), key, suggestions)
	}

	writeJSON(w, http.StatusOK, suggestions)
}

type contentRequest struct {
	Title string `json:"title"`
}

// GenerateContent writes a full story draft for a title using the saved
// "Story Content Generator" prompt.
func (h *AI) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if mod, err := h.registry.CheckPrompt(r.Context(), req.Title); err == nil && !mod.Safe {
		writeError(w, http.StatusUnprocessableEntity,
			"input rejected by content moderation: "+strings.Join(mod.Categories, ", "))
		return
	}

	prompt, err := h.promptStore.FindActiveByName("Story Content Generator")
	if err != nil {
		slog.Error("prompt lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if prompt == nil {
		writeError(w, http.StatusConflict, "no active story content prompt")
		return
	}

	text, err := h.registry.Generate(r.Context(),
		"You are a professional startup journalist writing in Markdown.",
		prompt.Render(map[string]string{"title": req.Title}),
	)
	if err != nil {
		slog.Error("content generation failed", "error", err)
		writeError(w, http.StatusBadGateway, "generation failed, try again")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": text})
}

// Providers lists configured AI providers and which one is active.
func (h *AI) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"active":    h.registry.ActiveName(),
		"available": h.registry.Available(),
	})
}

type setProviderRequest struct {
	Provider string `json:"provider"`
}

// SetProvider switches the active AI provider at runtime.
func (h *AI) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req setProviderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.registry.SetActive(req.Provider); err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	slog.Info("ai provider switched", "provider", req.Provider)
	writeJSON(w, http.StatusOK, map[string]string{"active": h.registry.ActiveName()})
}
