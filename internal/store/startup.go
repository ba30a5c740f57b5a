// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"sagacms/internal/models"
)

// StartupStore handles all startup-profile database operations.
type StartupStore struct {
	db *sql.DB
}

// NewStartupStore creates a new StartupStore with the given database connection.
func NewStartupStore(db *sql.DB) *StartupStore {
	return &StartupStore{db: db}
}

// startupColumns lists the columns selected in startup queries.
const startupColumns = `id, name, slug, tagline, description, website_url,
	founded_year, funding_stage, industry_tags, founders, logo_media_id, is_featured, status,
	meta_title, meta_description, meta_keywords, image_alt, og_title, og_description,
	created_at, updated_at`

// scanStartup scans a startup row from the result set. The industry_tags
// and founders JSONB columns are decoded into their slice fields.
func scanStartup(scanner interface{ Scan(...any) error }) (*models.Startup, error) {
	var st models.Startup
	var tags, founders []byte
	err := scanner.Scan(
		&st.ID, &st.Name, &st.Slug, &st.Tagline, &st.Description, &st.WebsiteURL,
		&st.FoundedYear, &st.FundingStage, &tags, &founders,
		&st.LogoMediaID, &st.IsFeatured, &st.Status,
		&st.SEO.MetaTitle, &st.SEO.MetaDescription, &st.SEO.MetaKeywords,
		&st.SEO.ImageAlt, &st.SEO.OGTitle, &st.SEO.OGDescription,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &st.IndustryTags); err != nil {
		return nil, fmt.Errorf("decode industry_tags: %w", err)
	}
	if err := json.Unmarshal(founders, &st.Founders); err != nil {
		return nil, fmt.Errorf("decode founders: %w", err)
	}
	return &st, nil
}

// jsonbArray marshals a slice for a JSONB column, writing an empty array
// for a nil slice so the column never holds JSON null.
func jsonbArray(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return []byte("[]")
	}
	return b
}

// List returns startups ordered by creation date descending, with pagination.
func (s *StartupStore) List(limit, offset int) ([]models.Startup, error) {
	rows, err := s.db.Query(`
		SELECT `+startupColumns+`
		FROM startups
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}
	defer rows.Close()

	var items []models.Startup
	for rows.Next() {
		st, err := scanStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan startup: %w", err)
		}
		items = append(items, *st)
	}
	return items, rows.Err()
}

// ListPublished returns published startups only, featured first.
func (s *StartupStore) ListPublished(limit, offset int) ([]models.Startup, error) {
	rows, err := s.db.Query(`
		SELECT `+startupColumns+`
		FROM startups
		WHERE status = 'published'
		ORDER BY is_featured DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list published startups: %w", err)
	}
	defer rows.Close()

	var items []models.Startup
	for rows.Next() {
		st, err := scanStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan startup: %w", err)
		}
		items = append(items, *st)
	}
	return items, rows.Err()
}

// FindByID retrieves a startup by its UUID. Returns nil if not found.
func (s *StartupStore) FindByID(id uuid.UUID) (*models.Startup, error) {
	row := s.db.QueryRow(`SELECT `+startupColumns+` FROM startups WHERE id = $1`, id)
	st, err := scanStartup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find startup by id: %w", err)
	}
	return st, nil
}

// FindBySlug retrieves a published startup by its slug.
func (s *StartupStore) FindBySlug(slug string) (*models.Startup, error) {
	row := s.db.QueryRow(`
		SELECT `+startupColumns+` FROM startups WHERE slug = $1 AND status = 'published'
	`, slug)
	st, err := scanStartup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find startup by slug: %w", err)
	}
	return st, nil
}

// Create inserts a new startup and returns it with the generated ID.
func (s *StartupStore) Create(st *models.Startup) (*models.Startup, error) {
	row := s.db.QueryRow(`
		INSERT INTO startups (name, slug, tagline, description, website_url,
			founded_year, funding_stage, industry_tags, founders,
			logo_media_id, is_featured, status,
			meta_title, meta_description, meta_keywords, image_alt, og_title, og_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+startupColumns,
		st.Name, st.Slug, st.Tagline, st.Description, st.WebsiteURL,
		st.FoundedYear, st.FundingStage, jsonbArray(st.IndustryTags), jsonbArray(st.Founders),
		st.LogoMediaID, st.IsFeatured, st.Status,
		st.SEO.MetaTitle, st.SEO.MetaDescription, st.SEO.MetaKeywords,
		st.SEO.ImageAlt, st.SEO.OGTitle, st.SEO.OGDescription,
	)
	created, err := scanStartup(row)
	if err != nil {
		return nil, fmt.Errorf("create startup: %w", err)
	}
	return created, nil
}

// Update replaces all mutable fields of a startup.
func (s *StartupStore) Update(st *models.Startup) (*models.Startup, error) {
	row := s.db.QueryRow(`
		UPDATE startups SET
			name = $1, slug = $2, tagline = $3, description = $4, website_url = $5,
			founded_year = $6, funding_stage = $7, industry_tags = $8, founders = $9,
			logo_media_id = $10, is_featured = $11, status = $12,
			meta_title = $13, meta_description = $14, meta_keywords = $15,
			image_alt = $16, og_title = $17, og_description = $18,
			updated_at = NOW()
		WHERE id = $19
		RETURNING `+startupColumns,
		st.Name, st.Slug, st.Tagline, st.Description, st.WebsiteURL,
		st.FoundedYear, st.FundingStage, jsonbArray(st.IndustryTags), jsonbArray(st.Founders),
		st.LogoMediaID, st.IsFeatured, st.Status,
		st.SEO.MetaTitle, st.SEO.MetaDescription, st.SEO.MetaKeywords,
		st.SEO.ImageAlt, st.SEO.OGTitle, st.SEO.OGDescription,
		st.ID,
	)
	updated, err := scanStartup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update startup: %w", err)
	}
	return updated, nil
}

// UpdateSEO writes only the SEO columns of a startup. Used when an editor
// accepts generated suggestions without touching the rest of the profile.
func (s *StartupStore) UpdateSEO(id uuid.UUID, seo models.SEOFields) error {
	res, err := s.db.Exec(`
		UPDATE startups SET
			meta_title = $1, meta_description = $2, meta_keywords = $3,
			image_alt = $4, og_title = $5, og_description = $6,
			updated_at = NOW()
		WHERE id = $7
	`, seo.MetaTitle, seo.MetaDescription, seo.MetaKeywords,
		seo.ImageAlt, seo.OGTitle, seo.OGDescription, id)
	if err != nil {
		return fmt.Errorf("update startup seo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a startup by ID.
func (s *StartupStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM startups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete startup: %w", err)
	}
	return nil
}

// Count returns the total number of startups.
func (s *StartupStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM startups`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count startups: %w", err)
	}
	return count, nil
}
