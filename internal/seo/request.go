// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo generates SEO metadata suggestions for CMS content using the
// configured AI provider. Prompts come from the saved prompt library, with
// built-in fallbacks, and provider responses are parsed from JSON with the
// usual LLM quirks (markdown fences, surrounding prose) tolerated.
package seo

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"unicode/utf8"
)

// ContentKind discriminates which form context a generation request came from.
type ContentKind string

const (
	KindStartup ContentKind = "startup"
	KindStory   ContentKind = "story"
	KindHub     ContentKind = "hub"
	KindPage    ContentKind = "page"
)

// ErrTitleRequired is returned when a request has no title. The widget
// blocks these before any network call; the server enforces the same rule.
var ErrTitleRequired = errors.New("seo: title is required")

// contentSnippetMax caps how much body content is interpolated into prompts.
const contentSnippetMax = 1000

// Request carries the source field values for a generation call.
// Description and Content are optional; absent fields are simply omitted
// from the prompt rather than causing failure.
type Request struct {
	Type        ContentKind `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Content     string      `json:"content,omitempty"`
}

// Validate checks the request invariants. Title is the only mandatory field.
func (r *Request) Validate() error {
	if r.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// Snippet returns the content truncated to the prompt interpolation cap.
func (r *Request) Snippet() string {
	return truncateRunes(r.Content, contentSnippetMax)
}

// truncateRunes caps s at max characters. Truncation happens on rune
// boundaries so a multibyte character at the cap is dropped whole rather
// than split into invalid UTF-8.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// CacheKey returns a stable hash of the request, used to key the suggestion
// cache in Valkey. Two identical requests produce identical keys.
func (r *Request) CacheKey() string {
	h := sha256.New()
	h.Write([]byte(string(r.Type)))
	h.Write([]byte{0})
	h.Write([]byte(r.Title))
	h.Write([]byte{0})
	h.Write([]byte(r.Description))
	h.Write([]byte{0})
	h.Write([]byte(r.Snippet()))
	return hex.EncodeToString(h.Sum(nil))
}

// Suggestions is the structured SEO metadata returned by generation.
// All fields are optional; consumers copy only what is present.
type Suggestions struct {
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	Keywords        string `json:"keywords,omitempty"`
	ImageAlt        string `json:"image_alt,omitempty"`
	OGTitle         string `json:"og_title,omitempty"`
	OGDescription   string `json:"og_description,omitempty"`
}

// Empty reports whether no suggestion field was produced.
func (s *Suggestions) Empty() bool {
	return s.MetaTitle == "" && s.MetaDescription == "" && s.Keywords == "" &&
		s.ImageAlt == "" && s.OGTitle == "" && s.OGDescription == ""
}
