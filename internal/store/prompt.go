// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"sagacms/internal/models"
)

// PromptStore handles saved AI prompt templates.
type PromptStore struct {
	db *sql.DB
}

// NewPromptStore creates a new PromptStore with the given database connection.
func NewPromptStore(db *sql.DB) *PromptStore {
	return &PromptStore{db: db}
}

const promptColumns = `id, name, prompt_text, category, is_active, created_at, updated_at`

func scanPrompt(scanner interface{ Scan(...any) error }) (*models.AIPrompt, error) {
	var p models.AIPrompt
	err := scanner.Scan(&p.ID, &p.Name, &p.PromptText, &p.Category, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all prompts ordered by category then name.
func (s *PromptStore) List() ([]models.AIPrompt, error) {
	rows, err := s.db.Query(`
		SELECT ` + promptColumns + ` FROM ai_prompts ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var items []models.AIPrompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListByCategory returns prompts in the given category.
func (s *PromptStore) ListByCategory(category models.PromptCategory) ([]models.AIPrompt, error) {
	rows, err := s.db.Query(`
		SELECT `+promptColumns+` FROM ai_prompts WHERE category = $1 ORDER BY name
	`, category)
	if err != nil {
		return nil, fmt.Errorf("list prompts by category: %w", err)
	}
	defer rows.Close()

	var items []models.AIPrompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a prompt by its UUID. Returns nil if not found.
func (s *PromptStore) FindByID(id uuid.UUID) (*models.AIPrompt, error) {
	row := s.db.QueryRow(`SELECT `+promptColumns+` FROM ai_prompts WHERE id = $1`, id)
	p, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find prompt by id: %w", err)
	}
	return p, nil
}

// FindActiveByName looks up an active prompt by its unique name. This is
// how the SEO generator resolves its system prompt at request time, so a
// deactivated prompt falls back to the built-in default.
func (s *PromptStore) FindActiveByName(name string) (*models.AIPrompt, error) {
	row := s.db.QueryRow(`
		SELECT `+promptColumns+` FROM ai_prompts WHERE name = $1 AND is_active = true
	`, name)
	p, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find prompt by name: %w", err)
	}
	return p, nil
}

// Create inserts a new prompt and returns it with the generated ID.
func (s *PromptStore) Create(p *models.AIPrompt) (*models.AIPrompt, error) {
	row := s.db.QueryRow(`
		INSERT INTO ai_prompts (name, prompt_text, category, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING `+promptColumns,
		p.Name, p.PromptText, p.Category, p.IsActive,
	)
	created, err := scanPrompt(row)
	if err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}
	return created, nil
}

// Update replaces the mutable fields of a prompt.
func (s *PromptStore) Update(p *models.AIPrompt) (*models.AIPrompt, error) {
	row := s.db.QueryRow(`
		UPDATE ai_prompts SET
			name = $1, prompt_text = $2, category = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+promptColumns,
		p.Name, p.PromptText, p.Category, p.IsActive, p.ID,
	)
	updated, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update prompt: %w", err)
	}
	return updated, nil
}

// Delete removes a prompt by ID.
func (s *PromptStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM ai_prompts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	return nil
}

// Upsert inserts a prompt by name or leaves an existing one untouched.
// Used by seeding so editor-modified prompts survive restarts.
func (s *PromptStore) Upsert(p *models.AIPrompt) error {
	_, err := s.db.Exec(`
		INSERT INTO ai_prompts (name, prompt_text, category, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`, p.Name, p.PromptText, p.Category, p.IsActive)
	if err != nil {
		return fmt.Errorf("upsert prompt: %w", err)
	}
	return nil
}

// RestoreDefault overwrites a prompt's text with the given default,
// reactivating it if it had been disabled.
func (s *PromptStore) RestoreDefault(name, promptText string, category models.PromptCategory) error {
	_, err := s.db.Exec(`
		INSERT INTO ai_prompts (name, prompt_text, category, is_active)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (name) DO UPDATE SET
			prompt_text = EXCLUDED.prompt_text,
			category = EXCLUDED.category,
			is_active = true,
			updated_at = NOW()
	`, name, promptText, category)
	if err != nil {
		return fmt.Errorf("restore default prompt: %w", err)
	}
	return nil
}
