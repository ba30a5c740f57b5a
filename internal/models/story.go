// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// StoryStatus represents the publishing state of a story.
type StoryStatus string

const (
	StoryStatusDraft     StoryStatus = "draft"
	StoryStatusPending   StoryStatus = "pending"
	StoryStatusPublished StoryStatus = "published"
	StoryStatusArchived  StoryStatus = "archived"
)

// Story represents an editorial startup story. Content is Markdown; the
// public API returns it rendered as HTML alongside the source.
type Story struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Excerpt     *string     `json:"excerpt,omitempty"`
	Content     string      `json:"content"`
	Author      string      `json:"author"`
	StartupID   *uuid.UUID  `json:"startup_id,omitempty"`
	IsFeatured  bool        `json:"is_featured"`
	ViewCount   int         `json:"view_count"`
	Status      StoryStatus `json:"status"`
	SEO         SEOFields   `json:"seo"`
	PublishedAt *time.Time  `json:"published_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsPublished returns true if the story is in published status.
func (s *Story) IsPublished() bool {
	return s.Status == StoryStatusPublished
}
