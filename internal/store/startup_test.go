// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"sagacms/internal/models"
)

func strPtr(s string) *string { return &s }

func TestStartupStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewStartupStore(db)

	slug := "test-create-startup"
	t.Cleanup(func() { cleanStartups(t, db, slug) })

	created, err := s.Create(&models.Startup{
		Name:        "Acme",
		Slug:        slug,
		Tagline:     strPtr("We build widgets"),
		Description: "Acme builds widgets for everyone.",
		Status:      models.StartupStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.Name != "Acme" {
		t.Errorf("name: got %q, want %q", created.Name, "Acme")
	}
	if created.Status != models.StartupStatusDraft {
		t.Errorf("status: got %q, want draft", created.Status)
	}
	if created.SEO.MetaTitle != nil {
		t.Error("expected empty SEO fields on a new startup")
	}
}

func TestStartupStoreTagsAndFoundersRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewStartupStore(db)

	slug := "test-tags-founders"
	t.Cleanup(func() { cleanStartups(t, db, slug) })

	created, err := s.Create(&models.Startup{
		Name:         "Founded Co",
		Slug:         slug,
		Description:  "Has founders.",
		Status:       models.StartupStatusDraft,
		IndustryTags: []string{"fintech", "ai"},
		Founders: []models.Founder{
			{Name: "Priya Sharma", Role: "CEO", LinkedIn: "https://linkedin.com/in/priya"},
			{Name: "Ravi Kumar", Role: "CTO"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(got.IndustryTags) != 2 || got.IndustryTags[0] != "fintech" {
		t.Errorf("industry_tags round trip: %v", got.IndustryTags)
	}
	if len(got.Founders) != 2 || got.Founders[0].Name != "Priya Sharma" || got.Founders[1].Role != "CTO" {
		t.Errorf("founders round trip: %+v", got.Founders)
	}

	got.IndustryTags = []string{"fintech"}
	got.Founders = got.Founders[:1]
	updated, err := s.Update(got)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.IndustryTags) != 1 || len(updated.Founders) != 1 {
		t.Errorf("update did not replace JSON columns: tags=%v founders=%+v",
			updated.IndustryTags, updated.Founders)
	}
}

func TestStartupStoreNilTagsStoredAsEmptyArray(t *testing.T) {
	db := testDB(t)
	s := NewStartupStore(db)

	slug := "test-nil-tags"
	t.Cleanup(func() { cleanStartups(t, db, slug) })

	created, err := s.Create(&models.Startup{
		Name: "Bare Co", Slug: slug, Description: "d",
		Status: models.StartupStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.IndustryTags == nil || len(got.IndustryTags) != 0 {
		t.Errorf("expected empty (non-null) tags, got %v", got.IndustryTags)
	}
	if got.Founders == nil || len(got.Founders) != 0 {
		t.Errorf("expected empty (non-null) founders, got %+v", got.Founders)
	}
}

func TestStartupStoreFindBySlugPublishedOnly(t *testing.T) {
	db := testDB(t)
	s := NewStartupStore(db)

	slug := "test-slug-visibility"
	t.Cleanup(func() { cleanStartups(t, db, slug) })

	created, err := s.Create(&models.Startup{
		Name:        "Hidden Co",
		Slug:        slug,
		Description: "Still a draft.",
		Status:      models.StartupStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Draft must not be visible by slug.
	found, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug (draft): %v", err)
	}
	if found != nil {
		t.Error("expected draft startup to be hidden from slug lookup")
	}

	created.Status = models.StartupStatusPublished
	if _, err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err = s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug (published): %v", err)
	}
	if found == nil {
		t.Fatal("expected published startup to be found by slug")
	}
	if found.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", found.ID, created.ID)
	}
}

func TestStartupStoreUpdateSEO(t *testing.T) {
	db := testDB(t)
	s := NewStartupStore(db)

	slug := "test-update-seo"
	t.Cleanup(func() { cleanStartups(t, db, slug) })

	created, err := s.Create(&models.Startup{
		Name:        "SEO Target",
		Slug:        slug,
		Description: "Needs metadata.",
		Status:      models.StartupStatusPublished,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = s.UpdateSEO(created.ID, models.SEOFields{
		MetaTitle:       strPtr("SEO Target - Widgets"),
		MetaDescription: strPtr("SEO Target builds widgets."),
		MetaKeywords:    strPtr("widgets, startup"),
	})
	if err != nil {
		t.Fatalf("UpdateSEO: %v", err)
	}

	got, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.SEO.MetaTitle == nil || *got.SEO.MetaTitle != "SEO Target - Widgets" {
		t.Errorf("meta_title not written: %+v", got.SEO)
	}
	if got.SEO.MetaDescription == nil || *got.SEO.MetaDescription != "SEO Target builds widgets." {
		t.Errorf("meta_description not written: %+v", got.SEO)
	}
	// Name must be untouched by an SEO-only update.
	if got.Name != "SEO Target" {
		t.Errorf("name changed by UpdateSEO: %q", got.Name)
	}
}

func TestStartupStoreUpdateSEOMissing(t *testing.T) {
	db := testDB(t)
	s := NewStartupStore(db)

	err := s.UpdateSEO(uuid.New(), models.SEOFields{MetaTitle: strPtr("x")})
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows for unknown startup, got %v", err)
	}
}

func TestStartupStoreListPublishedFeaturedFirst(t *testing.T) {
	db := testDB(t)
	s := NewStartupStore(db)

	slugA := "test-listpub-plain"
	slugB := "test-listpub-featured"
	t.Cleanup(func() { cleanStartups(t, db, slugA, slugB) })

	if _, err := s.Create(&models.Startup{
		Name: "Plain", Slug: slugA, Description: "d",
		Status: models.StartupStatusPublished,
	}); err != nil {
		t.Fatalf("Create plain: %v", err)
	}
	if _, err := s.Create(&models.Startup{
		Name: "Featured", Slug: slugB, Description: "d",
		IsFeatured: true, Status: models.StartupStatusPublished,
	}); err != nil {
		t.Fatalf("Create featured: %v", err)
	}

	items, err := s.ListPublished(100, 0)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}

	posA, posB := -1, -1
	for i, st := range items {
		switch st.Slug {
		case slugA:
			posA = i
		case slugB:
			posB = i
		}
	}
	if posA == -1 || posB == -1 {
		t.Fatalf("expected both startups listed (a=%d, b=%d)", posA, posB)
	}
	if posB > posA {
		t.Errorf("featured startup should sort before plain: featured=%d, plain=%d", posB, posA)
	}
}

func TestStartupStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewStartupStore(db)

	slug := "test-delete-startup"
	t.Cleanup(func() { cleanStartups(t, db, slug) })

	created, err := s.Create(&models.Startup{
		Name: "Gone Soon", Slug: slug, Description: "d",
		Status: models.StartupStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if found != nil {
		t.Error("expected startup gone after delete")
	}
}
