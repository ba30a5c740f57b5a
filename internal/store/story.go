// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sagacms/internal/models"
)

// StoryStore handles all story-related database operations.
type StoryStore struct {
	db *sql.DB
}

// NewStoryStore creates a new StoryStore with the given database connection.
func NewStoryStore(db *sql.DB) *StoryStore {
	return &StoryStore{db: db}
}

// storyColumns lists the columns selected in story queries.
const storyColumns = `id, title, slug, excerpt, content, author, startup_id,
	is_featured, view_count, status,
	meta_title, meta_description, meta_keywords, image_alt, og_title, og_description,
	published_at, created_at, updated_at`

// scanStory scans a story row from the result set.
func scanStory(scanner interface{ Scan(...any) error }) (*models.Story, error) {
	var st models.Story
	err := scanner.Scan(
		&st.ID, &st.Title, &st.Slug, &st.Excerpt, &st.Content, &st.Author, &st.StartupID,
		&st.IsFeatured, &st.ViewCount, &st.Status,
		&st.SEO.MetaTitle, &st.SEO.MetaDescription, &st.SEO.MetaKeywords,
		&st.SEO.ImageAlt, &st.SEO.OGTitle, &st.SEO.OGDescription,
		&st.PublishedAt, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// List returns stories ordered by creation date descending, with pagination.
func (s *StoryStore) List(limit, offset int) ([]models.Story, error) {
	rows, err := s.db.Query(`
		SELECT `+storyColumns+`
		FROM stories
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer rows.Close()

	var items []models.Story
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		items = append(items, *st)
	}
	return items, rows.Err()
}

// ListPublished returns published stories ordered by publication date.
func (s *StoryStore) ListPublished(limit, offset int) ([]models.Story, error) {
	rows, err := s.db.Query(`
		SELECT `+storyColumns+`
		FROM stories
		WHERE status = 'published'
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list published stories: %w", err)
	}
	defer rows.Close()

	var items []models.Story
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		items = append(items, *st)
	}
	return items, rows.Err()
}

// FindByID retrieves a story by its UUID. Returns nil if not found.
func (s *StoryStore) FindByID(id uuid.UUID) (*models.Story, error) {
	row := s.db.QueryRow(`SELECT `+storyColumns+` FROM stories WHERE id = $1`, id)
	st, err := scanStory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find story by id: %w", err)
	}
	return st, nil
}

// FindBySlug retrieves a published story by its slug.
func (s *StoryStore) FindBySlug(slug string) (*models.Story, error) {
	row := s.db.QueryRow(`
		SELECT `+storyColumns+` FROM stories WHERE slug = $1 AND status = 'published'
	`, slug)
	st, err := scanStory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find story by slug: %w", err)
	}
	return st, nil
}

// Create inserts a new story and returns it with the generated ID.
// Publishing sets published_at if the caller did not.
func (s *StoryStore) Create(st *models.Story) (*models.Story, error) {
	if st.Status == models.StoryStatusPublished && st.PublishedAt == nil {
		now := time.Now()
		st.PublishedAt = &now
	}

	row := s.db.QueryRow(`
		INSERT INTO stories (title, slug, excerpt, content, author, startup_id,
			is_featured, status,
			meta_title, meta_description, meta_keywords, image_alt, og_title, og_description,
			published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+storyColumns,
		st.Title, st.Slug, st.Excerpt, st.Content, st.Author, st.StartupID,
		st.IsFeatured, st.Status,
		st.SEO.MetaTitle, st.SEO.MetaDescription, st.SEO.MetaKeywords,
		st.SEO.ImageAlt, st.SEO.OGTitle, st.SEO.OGDescription,
		st.PublishedAt,
	)
	created, err := scanStory(row)
	if err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	return created, nil
}

// Update replaces all mutable fields of a story. A draft moving to
// published gets its published_at stamped.
func (s *StoryStore) Update(st *models.Story) (*models.Story, error) {
	if st.Status == models.StoryStatusPublished && st.PublishedAt == nil {
		now := time.Now()
		st.PublishedAt = &now
	}

	row := s.db.QueryRow(`
		UPDATE stories SET
			title = $1, slug = $2, excerpt = $3, content = $4, author = $5,
			startup_id = $6, is_featured = $7, status = $8,
			meta_title = $9, meta_description = $10, meta_keywords = $11,
			image_alt = $12, og_title = $13, og_description = $14,
			published_at = $15, updated_at = NOW()
		WHERE id = $16
		RETURNING `+storyColumns,
		st.Title, st.Slug, st.Excerpt, st.Content, st.Author,
		st.StartupID, st.IsFeatured, st.Status,
		st.SEO.MetaTitle, st.SEO.MetaDescription, st.SEO.MetaKeywords,
		st.SEO.ImageAlt, st.SEO.OGTitle, st.SEO.OGDescription,
		st.PublishedAt, st.ID,
	)
	updated, err := scanStory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update story: %w", err)
	}
	return updated, nil
}

// UpdateSEO writes only the SEO columns of a story.
func (s *StoryStore) UpdateSEO(id uuid.UUID, seo models.SEOFields) error {
	res, err := s.db.Exec(`
		UPDATE stories SET
			meta_title = $1, meta_description = $2, meta_keywords = $3,
			image_alt = $4, og_title = $5, og_description = $6,
			updated_at = NOW()
		WHERE id = $7
	`, seo.MetaTitle, seo.MetaDescription, seo.MetaKeywords,
		seo.ImageAlt, seo.OGTitle, seo.OGDescription, id)
	if err != nil {
		return fmt.Errorf("update story seo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncrementViewCount bumps the public view counter for a story.
func (s *StoryStore) IncrementViewCount(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE stories SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment story views: %w", err)
	}
	return nil
}

// Delete removes a story by ID.
func (s *StoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	return nil
}

// Count returns the total number of stories.
func (s *StoryStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM stories`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return count, nil
}
