// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// StartupStatus represents the publishing state of a startup profile.
type StartupStatus string

const (
	StartupStatusDraft     StartupStatus = "draft"
	StartupStatusPending   StartupStatus = "pending"
	StartupStatusPublished StartupStatus = "published"
	StartupStatusBlocked   StartupStatus = "blocked"
)

// SEOFields holds the generated/editable SEO metadata shared by startups
// and stories. Columns are nullable; empty values mean "not set yet" and
// public rendering falls back to the entity's own title/description.
type SEOFields struct {
	MetaTitle       *string `json:"meta_title,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
	MetaKeywords    *string `json:"meta_keywords,omitempty"`
	ImageAlt        *string `json:"image_alt,omitempty"`
	OGTitle         *string `json:"og_title,omitempty"`
	OGDescription   *string `json:"og_description,omitempty"`
}

// Founder is one entry in a startup's founders list. The whole list is
// stored as a JSONB column.
type Founder struct {
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Startup represents a startup profile on the portal.
type Startup struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Tagline      *string       `json:"tagline,omitempty"`
	Description  string        `json:"description"`
	WebsiteURL   *string       `json:"website_url,omitempty"`
	FoundedYear  *int          `json:"founded_year,omitempty"`
	FundingStage *string       `json:"funding_stage,omitempty"`
	IndustryTags []string      `json:"industry_tags"`
	Founders     []Founder     `json:"founders"`
	LogoMediaID  *uuid.UUID    `json:"logo_media_id,omitempty"`
	IsFeatured   bool          `json:"is_featured"`
	Status       StartupStatus `json:"status"`
	SEO          SEOFields     `json:"seo"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// IsPublished returns true if the startup is visible on the public site.
func (s *Startup) IsPublished() bool {
	return s.Status == StartupStatusPublished
}
