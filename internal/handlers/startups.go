// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sagacms/internal/models"
	"sagacms/internal/slug"
	"sagacms/internal/store"
)

// defaultPageSize bounds list endpoints when ?limit= is absent or invalid.
const defaultPageSize = 50

// Startups groups the startup profile CRUD handlers.
type Startups struct {
	startupStore *store.StartupStore
}

// NewStartups creates the startup handler group.
func NewStartups(startupStore *store.StartupStore) *Startups {
	return &Startups{startupStore: startupStore}
}

func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// List returns all startups regardless of status. Editors only.
func (h *Startups) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := h.startupStore.List(limit, offset)
	if err != nil {
		slog.Error("startup list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	total, _ := h.startupStore.Count()
	writeJSON(w, http.StatusOK, map[string]any{"startups": items, "total": total})
}

// ListPublished returns published startups for the public site, featured
// entries first.
func (h *Startups) ListPublished(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := h.startupStore.ListPublished(limit, offset)
	if err != nil {
		slog.Error("published startup list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"startups": items})
}

// Get returns a startup by ID. Editors only, so drafts are visible.
func (h *Startups) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startup id")
		return
	}

	st, err := h.startupStore.FindByID(id)
	if err != nil {
		slog.Error("startup lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if st == nil {
		writeError(w, http.StatusNotFound, "startup not found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// GetBySlug returns a published startup for the public site.
func (h *Startups) GetBySlug(w http.ResponseWriter, r *http.Request) {
	st, err := h.startupStore.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("startup slug lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if st == nil {
		writeError(w, http.StatusNotFound, "startup not found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type startupRequest struct {
	Name         string               `json:"name"`
	Slug         string               `json:"slug"`
	Tagline      *string              `json:"tagline"`
	Description  string               `json:"description"`
	WebsiteURL   *string              `json:"website_url"`
	FoundedYear  *int                 `json:"founded_year"`
	FundingStage *string              `json:"funding_stage"`
	IndustryTags []string             `json:"industry_tags"`
	Founders     []models.Founder     `json:"founders"`
	LogoMediaID  *uuid.UUID           `json:"logo_media_id"`
	IsFeatured   bool                 `json:"is_featured"`
	Status       models.StartupStatus `json:"status"`
	SEO          models.SEOFields     `json:"seo"`
}

func (sr *startupRequest) validate() string {
	if sr.Name == "" {
		return "name is required"
	}
	switch sr.Status {
	case models.StartupStatusDraft, models.StartupStatusPending,
		models.StartupStatusPublished, models.StartupStatusBlocked:
		return ""
	default:
		return "unknown status"
	}
}

func (sr *startupRequest) toModel() *models.Startup {
	s := sr.Slug
	if s == "" {
		s = slug.Generate(sr.Name)
	}
	return &models.Startup{
		Name:         sr.Name,
		Slug:         s,
		Tagline:      sr.Tagline,
		Description:  sr.Description,
		WebsiteURL:   sr.WebsiteURL,
		FoundedYear:  sr.FoundedYear,
		FundingStage: sr.FundingStage,
		IndustryTags: sr.IndustryTags,
		Founders:     sr.Founders,
		LogoMediaID:  sr.LogoMediaID,
		IsFeatured:   sr.IsFeatured,
		Status:       sr.Status,
		SEO:          sr.SEO,
	}
}

// Create inserts a new startup. The slug is derived from the name when
// not supplied.
func (h *Startups) Create(w http.ResponseWriter, r *http.Request) {
	var req startupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := h.startupStore.Create(req.toModel())
	if err != nil {
		slog.Error("startup create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces a startup's fields.
func (h *Startups) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startup id")
		return
	}

	var req startupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	m := req.toModel()
	m.ID = id
	updated, err := h.startupStore.Update(m)
	if err != nil {
		slog.Error("startup update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "startup not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UpdateSEO writes only the SEO metadata of a startup, leaving the profile
// itself untouched. This is what the edit form calls after the editor
// accepts generated suggestions.
func (h *Startups) UpdateSEO(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startup id")
		return
	}

	var seo models.SEOFields
	if err := decodeJSON(r, &seo); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.startupStore.UpdateSEO(id, seo); err != nil {
		if err == sql.ErrNoRows {
			writeError(w, http.StatusNotFound, "startup not found")
			return
		}
		slog.Error("startup seo update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

// Delete removes a startup.
func (h *Startups) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startup id")
		return
	}

	if err := h.startupStore.Delete(id); err != nil {
		slog.Error("startup delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
