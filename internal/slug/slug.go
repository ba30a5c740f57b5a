// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives the URL slugs for startup profiles and stories
// from their names and titles.
package slug

import (
	"regexp"
	"strings"
)

// maxSlugLen caps generated slugs. Longer names are cut at the last full
// word that fits so a slug never ends mid-word.
const maxSlugLen = 50

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug.
// Example: "Acme Robotics (Bengaluru)" → "acme-robotics-bengaluru"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > maxSlugLen {
		// Only ASCII survives the filter above, so byte slicing is safe.
		result = result[:maxSlugLen]
		if idx := strings.LastIndex(result, "-"); idx > 0 {
			result = result[:idx]
		}
		result = strings.Trim(result, "-")
	}
	return result
}
