package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sagacms/internal/cache"
	"sagacms/internal/database"
	"sagacms/internal/models"
	"sagacms/internal/store"
)

// Prompts manages the saved AI prompt library. Admin only.
type Prompts struct {
	promptStore *store.PromptStore
	suggestions *cache.SuggestionCache
}

// NewPrompts creates the prompt management handler group.
func NewPrompts(promptStore *store.PromptStore, suggestions *cache.SuggestionCache) *Prompts {
	return &Prompts{promptStore: promptStore, suggestions: suggestions}
}

// List returns all saved prompts, optionally filtered by ?category=.
func (h *Prompts) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.AIPrompt
		err   error
	)
	if cat := r.URL.Query().Get("category"); cat != "" {
		items, err = h.promptStore.ListByCategory(models.PromptCategory(cat))
	} else {
		items, err = h.promptStore.List()
	}
	if err != nil {
		slog.Error("prompt list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"prompts": items})
}

// Get returns a single prompt by ID.
func (h *Prompts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prompt id")
		return
	}

	p, err := h.promptStore.FindByID(id)
	if err != nil {
		slog.Error("prompt lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "prompt not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type promptRequest struct {
	Name       string                `json:"name"`
	PromptText string                `json:"prompt_text"`
	Category   models.PromptCategory `json:"category"`
	IsActive   bool                  `json:"is_active"`
}

func (pr *promptRequest) validate() string {
	if pr.Name == "" {
		return "name is required"
	}
	if pr.PromptText == "" {
		return "prompt_text is required"
	}
	switch pr.Category {
	case models.PromptCategoryStoryWrite, models.PromptCategorySEOGen,
		models.PromptCategoryDescGen, models.PromptCategoryGeneral:
		return ""
	default:
		return "unknown category"
	}
}

// Create adds a new prompt to the library.
func (h *Prompts) Create(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.promptStore.Create(&models.AIPrompt{
		Name:       req.Name,
		PromptText: req.PromptText,
		Category:   req.Category,
		IsActive:   req.IsActive,
	})
	if err != nil {
		slog.Error("prompt create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update edits an existing prompt. Editing an SEO prompt invalidates all
// cached suggestions, since they were generated with the old template.
func (h *Prompts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prompt id")
		return
	}

	var req promptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.promptStore.Update(&models.AIPrompt{
		ID:         id,
		Name:       req.Name,
		PromptText: req.PromptText,
		Category:   req.Category,
		IsActive:   req.IsActive,
	})
	if err != nil {
		slog.Error("prompt update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "prompt not found")
		return
	}

	if updated.Category == models.PromptCategorySEOGen && h.suggestions != nil {
		h.suggestions.InvalidateAll(r.Context())
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a prompt from the library.
func (h *Prompts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prompt id")
		return
	}

	if err := h.promptStore.Delete(id); err != nil {
		slog.Error("prompt delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// RestoreDefaults resets every built-in prompt to its factory text and
// clears the suggestion cache.
func (h *Prompts) RestoreDefaults(w http.ResponseWriter, r *http.Request) {
	for _, p := range database.DefaultPrompts {
		if err := h.promptStore.RestoreDefault(p.Name, p.PromptText, p.Category); err != nil {
			slog.Error("prompt restore failed", "prompt", p.Name, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	if h.suggestions != nil {
		h.suggestions.InvalidateAll(r.Context())
	}

	slog.Info("prompt library restored to defaults")
	writeJSON(w, http.StatusOK, map[string]any{"restored": len(database.DefaultPrompts)})
}
