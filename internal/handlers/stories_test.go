package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sagacms/internal/models"
)

func TestStoryCreateAndGetRendersHTML(t *testing.T) {
	env := newTestEnv(t)
	slug := "handler-markdown-story"
	t.Cleanup(func() { cleanStories(t, env.DB, slug) })

	body := `{"title":"Markdown Story","slug":"` + slug + `","content":"# Heading\n\nBody text.","author":"Jane","status":"draft"}`
	req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Stories.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var created models.Story
	json.Unmarshal(rec.Body.Bytes(), &created)

	req = httptest.NewRequest(http.MethodGet, "/api/stories/"+created.ID.String(), nil)
	req = withChiURLParam(req, "id", created.ID.String())
	rec = httptest.NewRecorder()
	env.Stories.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("get status: got %d", rec.Code)
	}

	var got struct {
		ContentHTML string `json:"content_html"`
	}
	json.Unmarshal(rec.Body.Bytes(), &got)
	if !strings.Contains(got.ContentHTML, "<h1") {
		t.Errorf("content_html missing rendered heading: %q", got.ContentHTML)
	}
}

func TestStoryGetBySlugCountsView(t *testing.T) {
	env := newTestEnv(t)
	slug := "handler-viewed-story"
	t.Cleanup(func() { cleanStories(t, env.DB, slug) })

	created, err := env.StoryStore.Create(&models.Story{
		Title: "Viewed", Slug: slug, Content: "x", Author: "A",
		Status: models.StoryStatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public/stories/"+slug, nil)
	req = withChiURLParam(req, "slug", slug)
	rec := httptest.NewRecorder()
	env.Stories.GetBySlug(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	got, _ := env.StoryStore.FindByID(created.ID)
	if got.ViewCount != 1 {
		t.Errorf("view_count: got %d, want 1", got.ViewCount)
	}
}

func TestStoryUpdatePreservesPublishedAt(t *testing.T) {
	env := newTestEnv(t)
	slug := "handler-published-story"
	t.Cleanup(func() { cleanStories(t, env.DB, slug) })

	created, err := env.StoryStore.Create(&models.Story{
		Title: "Published Once", Slug: slug, Content: "x", Author: "A",
		Status: models.StoryStatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	first := *created.PublishedAt

	body := `{"title":"Published Once, Edited","slug":"` + slug + `","content":"y","author":"A","status":"published"}`
	req := httptest.NewRequest(http.MethodPut, "/api/stories/"+created.ID.String(), strings.NewReader(body))
	req = withChiURLParam(req, "id", created.ID.String())
	rec := httptest.NewRecorder()
	env.Stories.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body: %s)", rec.Code, rec.Body.String())
	}

	got, _ := env.StoryStore.FindByID(created.ID)
	if got.PublishedAt == nil || !got.PublishedAt.Equal(first) {
		t.Errorf("published_at changed: got %v, want %v", got.PublishedAt, first)
	}
	if got.Title != "Published Once, Edited" {
		t.Errorf("title: got %q", got.Title)
	}
}

func TestStoryCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"content":"x","author":"A","status":"draft"}`},
		{"missing content", `{"title":"T","author":"A","status":"draft"}`},
		{"bad status", `{"title":"T","content":"x","author":"A","status":"live"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			env.Stories.Create(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
}
