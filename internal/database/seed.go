package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"sagacms/internal/models"
)

// DefaultPrompts is the built-in prompt library installed on first boot.
// Seeding never overwrites an existing prompt, so editor changes survive
// restarts; the restore-defaults endpoint resets individual entries to
// these texts.
var DefaultPrompts = []models.AIPrompt{
	{
		Name:       "Story Content Generator",
		Category:   models.PromptCategoryStoryWrite,
		PromptText: "Write an inspiring 800-word startup success story for: {title}. Include sections: The Problem, The Solution, Founder Journey, and Revenue Model. Use professional editorial tone.",
		IsActive:   true,
	},
	{
		Name:       "Story SEO Generator",
		Category:   models.PromptCategorySEOGen,
		PromptText: "Generate a compiled SEO meta title and meta description for a startup story titled \"{title}\".\nContent Snippet: {content}\n\nReturn strictly a JSON object with keys: \"meta_title\" and \"meta_description\".",
		IsActive:   true,
	},
	{
		Name:       "Story Alt Text Generator",
		Category:   models.PromptCategoryDescGen,
		PromptText: "Write a concise, descriptive alt text (max 15 words) for a cover image of a startup story titled \"{title}\". Focus on the subject matter or business context. Do not include \"image of\".",
		IsActive:   true,
	},
	{
		Name:       "Slug Generator",
		Category:   models.PromptCategoryGeneral,
		PromptText: "Generate a short, SEO-friendly URL slug (lowercase, hyphens only, max 5 words) for this title: \"{title}\". Return ONLY the slug, nothing else.",
		IsActive:   true,
	},
	{
		Name:       "City SEO Generator",
		Category:   models.PromptCategorySEOGen,
		PromptText: "Generate SEO metadata for a startup hub page for the city: {title}.\nDescription: {description}.\n\nReturn strictly a JSON object with keys: meta_title, meta_description, keywords.",
		IsActive:   true,
	},
	{
		Name:       "City Description",
		Category:   models.PromptCategoryDescGen,
		PromptText: "Rewrite and enhance this city description for a startup ecosystem portal: {name}.\nCurrent description: {description}\n\nMake it professional, engaging, and highlight why it's a great place for startups. Use about 150-200 words.",
		IsActive:   true,
	},
	{
		Name:       "City Alt Text",
		Category:   models.PromptCategoryDescGen,
		PromptText: "Write a professional alt text for a cover image representing the startup ecosystem of {name}. Focus on the city skyline or innovation vibe. Max 15 words.",
		IsActive:   true,
	},
	{
		Name:       "Global SEO Generator",
		Category:   models.PromptCategorySEOGen,
		PromptText: "Act as an SEO Expert. Analyze the following content for a {type} named \"{title}\".\nDescription: {description}\nContent Snippet: {content}\n\nGenerate SEO Metadata in valid JSON format with these exact keys: meta_title, meta_description, keywords, image_alt, og_title, og_description.\n\nThe meta_description MUST BE EXACTLY 160 characters OR LESS. Do not include markdown formatting.",
		IsActive:   true,
	},
}

// Seed populates the database with initial data: a default admin user if
// no users exist, and any missing built-in prompts. Safe to run on every
// startup.
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedPrompts(db)
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// 2FA is not enabled — the admin must set it up on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@sagacms.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@sagacms.local",
		"password", "admin",
	)
	return nil
}

func seedPrompts(db *sql.DB) error {
	for _, p := range DefaultPrompts {
		_, err := db.Exec(`
			INSERT INTO ai_prompts (name, prompt_text, category, is_active)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
		`, p.Name, p.PromptText, p.Category, p.IsActive)
		if err != nil {
			return fmt.Errorf("seed prompt %q: %w", p.Name, err)
		}
	}
	return nil
}

// DefaultPrompt returns the built-in template with the given name, or nil.
func DefaultPrompt(name string) *models.AIPrompt {
	for i := range DefaultPrompts {
		if DefaultPrompts[i].Name == name {
			return &DefaultPrompts[i]
		}
	}
	return nil
}
