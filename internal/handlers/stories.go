// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sagacms/internal/markdown"
	"sagacms/internal/models"
	"sagacms/internal/slug"
	"sagacms/internal/store"
)

// Stories groups the story CRUD handlers. Story bodies are Markdown; the
// public read endpoints also return the rendered HTML.
type Stories struct {
	storyStore *store.StoryStore
}

// NewStories creates the story handler group.
func NewStories(storyStore *store.StoryStore) *Stories {
	return &Stories{storyStore: storyStore}
}

// storyResponse wraps a story with its rendered HTML body.
type storyResponse struct {
	models.Story
	ContentHTML string `json:"content_html,omitempty"`
}

func renderStory(st *models.Story) *storyResponse {
	resp := &storyResponse{Story: *st}
	html, err := markdown.ToHTML(st.Content)
	if err != nil {
		slog.Warn("story markdown render failed", "story", st.ID, "error", err)
		return resp
	}
	resp.ContentHTML = html
	return resp
}

// List returns all stories regardless of status. Editors only.
func (h *Stories) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := h.storyStore.List(limit, offset)
	if err != nil {
		slog.Error("story list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	total, _ := h.storyStore.Count()
	writeJSON(w, http.StatusOK, map[string]any{"stories": items, "total": total})
}

// ListPublished returns published stories for the public site.
func (h *Stories) ListPublished(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := h.storyStore.ListPublished(limit, offset)
	if err != nil {
		slog.Error("published story list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stories": items})
}

// Get returns a story by ID with rendered HTML. Editors only.
func (h *Stories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid story id")
		return
	}

	st, err := h.storyStore.FindByID(id)
	if err != nil {
		slog.Error("story lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if st == nil {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}
	writeJSON(w, http.StatusOK, renderStory(st))
}

// GetBySlug returns a published story for the public site and counts the
// view. The view counter is best-effort.
func (h *Stories) GetBySlug(w http.ResponseWriter, r *http.Request) {
	st, err := h.storyStore.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("story slug lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if st == nil {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}

	if err := h.storyStore.IncrementViewCount(st.ID); err != nil {
		slog.Warn("view count increment failed", "story", st.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, renderStory(st))
}

type storyRequest struct {
	Title      string             `json:"title"`
	Slug       string             `json:"slug"`
	Excerpt    *string            `json:"excerpt"`
	Content    string             `json:"content"`
	Author     string             `json:"author"`
	StartupID  *uuid.UUID         `json:"startup_id"`
	IsFeatured bool               `json:"is_featured"`
	Status     models.StoryStatus `json:"status"`
	SEO        models.SEOFields   `json:"seo"`
}

func (sr *storyRequest) validate() string {
	if sr.Title == "" {
		return "title is required"
	}
	if sr.Content == "" {
		return "content is required"
	}
	switch sr.Status {
	case models.StoryStatusDraft, models.StoryStatusPending,
		models.StoryStatusPublished, models.StoryStatusArchived:
		return ""
	default:
		return "unknown status"
	}
}

func (sr *storyRequest) toModel() *models.Story {
	s := sr.Slug
	if s == "" {
		s = slug.Generate(sr.Title)
	}
	return &models.Story{
		Title:      sr.Title,
		Slug:       s,
		Excerpt:    sr.Excerpt,
		Content:    sr.Content,
		Author:     sr.Author,
		StartupID:  sr.StartupID,
		IsFeatured: sr.IsFeatured,
		Status:     sr.Status,
		SEO:        sr.SEO,
	}
}

// Create inserts a new story.
func (h *Stories) Create(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.storyStore.Create(req.toModel())
	if err != nil {
		slog.Error("story create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces a story's fields, preserving the original publication
// timestamp on already-published stories.
func (h *Stories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid story id")
		return
	}

	var req storyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := h.storyStore.FindByID(id)
	if err != nil {
		slog.Error("story lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}

	m := req.toModel()
	m.ID = id
	m.PublishedAt = existing.PublishedAt
	updated, err := h.storyStore.Update(m)
	if err != nil {
		slog.Error("story update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UpdateSEO writes only the SEO metadata of a story.
func (h *Stories) UpdateSEO(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid story id")
		return
	}

	var seo models.SEOFields
	if err := decodeJSON(r, &seo); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.storyStore.UpdateSEO(id, seo); err != nil {
		if err == sql.ErrNoRows {
			writeError(w, http.StatusNotFound, "story not found")
			return
		}
		slog.Error("story seo update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

// Delete removes a story.
func (h *Stories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid story id")
		return
	}

	if err := h.storyStore.Delete(id); err != nil {
		slog.Error("story delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
