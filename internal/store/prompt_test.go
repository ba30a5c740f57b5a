// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"sagacms/internal/models"
)

func TestPromptStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewPromptStore(db)

	name := "test-prompt-create"
	t.Cleanup(func() { cleanPrompts(t, db, name) })

	created, err := s.Create(&models.AIPrompt{
		Name:       name,
		PromptText: "Generate SEO metadata for {title}.",
		Category:   models.PromptCategorySEOGen,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected prompt, got nil")
	}
	if found.PromptText != created.PromptText {
		t.Errorf("prompt_text mismatch: %q", found.PromptText)
	}
}

func TestPromptStoreFindActiveByName(t *testing.T) {
	db := testDB(t)
	s := NewPromptStore(db)

	name := "test-prompt-active-lookup"
	t.Cleanup(func() { cleanPrompts(t, db, name) })

	created, err := s.Create(&models.AIPrompt{
		Name:       name,
		PromptText: "Active prompt body.",
		Category:   models.PromptCategorySEOGen,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindActiveByName(name)
	if err != nil {
		t.Fatalf("FindActiveByName: %v", err)
	}
	if found == nil {
		t.Fatal("expected active prompt found by name")
	}

	// Deactivated prompts are invisible to the name lookup.
	created.IsActive = false
	if _, err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}
	found, err = s.FindActiveByName(name)
	if err != nil {
		t.Fatalf("FindActiveByName (inactive): %v", err)
	}
	if found != nil {
		t.Error("expected inactive prompt hidden from name lookup")
	}
}

func TestPromptStoreListByCategory(t *testing.T) {
	db := testDB(t)
	s := NewPromptStore(db)

	seoName := "test-prompt-cat-seo"
	descName := "test-prompt-cat-desc"
	t.Cleanup(func() { cleanPrompts(t, db, seoName, descName) })

	if _, err := s.Create(&models.AIPrompt{
		Name: seoName, PromptText: "seo", Category: models.PromptCategorySEOGen, IsActive: true,
	}); err != nil {
		t.Fatalf("Create seo: %v", err)
	}
	if _, err := s.Create(&models.AIPrompt{
		Name: descName, PromptText: "desc", Category: models.PromptCategoryDescGen, IsActive: true,
	}); err != nil {
		t.Fatalf("Create desc: %v", err)
	}

	items, err := s.ListByCategory(models.PromptCategorySEOGen)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	for _, p := range items {
		if p.Category != models.PromptCategorySEOGen {
			t.Errorf("unexpected category %q for %q", p.Category, p.Name)
		}
		if p.Name == descName {
			t.Error("desc_gen prompt leaked into seo_gen listing")
		}
	}
}

func TestPromptStoreUpsertKeepsEdits(t *testing.T) {
	db := testDB(t)
	s := NewPromptStore(db)

	name := "test-prompt-upsert"
	t.Cleanup(func() { cleanPrompts(t, db, name) })

	created, err := s.Create(&models.AIPrompt{
		Name: name, PromptText: "edited by a human", Category: models.PromptCategorySEOGen, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Upsert with a default text must not clobber the edited version.
	err = s.Upsert(&models.AIPrompt{
		Name: name, PromptText: "factory default", Category: models.PromptCategorySEOGen, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	found, _ := s.FindByID(created.ID)
	if found.PromptText != "edited by a human" {
		t.Errorf("upsert clobbered edited prompt: %q", found.PromptText)
	}
}

func TestPromptStoreRestoreDefault(t *testing.T) {
	db := testDB(t)
	s := NewPromptStore(db)

	name := "test-prompt-restore"
	t.Cleanup(func() { cleanPrompts(t, db, name) })

	created, err := s.Create(&models.AIPrompt{
		Name: name, PromptText: "mangled beyond repair", Category: models.PromptCategorySEOGen, IsActive: false,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = s.RestoreDefault(name, "pristine default text", models.PromptCategorySEOGen)
	if err != nil {
		t.Fatalf("RestoreDefault: %v", err)
	}

	found, _ := s.FindByID(created.ID)
	if found.PromptText != "pristine default text" {
		t.Errorf("prompt_text: got %q, want restored default", found.PromptText)
	}
	if !found.IsActive {
		t.Error("expected restore to reactivate the prompt")
	}
}

func TestPromptStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewPromptStore(db)

	name := "test-prompt-delete"
	t.Cleanup(func() { cleanPrompts(t, db, name) })

	created, err := s.Create(&models.AIPrompt{
		Name: name, PromptText: "x", Category: models.PromptCategoryGeneral, IsActive: true,
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
		t.Error("expected prompt gone after delete")
	}
}
