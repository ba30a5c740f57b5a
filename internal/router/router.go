// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// SagaCMS API. Routes are grouped into public reads, auth endpoints, and
// the authenticated editorial API.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"sagacms/internal/handlers"
	"sagacms/internal/middleware"
	"sagacms/internal/session"
)

// Deps bundles the handler groups the router wires up.
type Deps struct {
	Sessions *session.Store
	Health   *handlers.Health
	Auth     *handlers.Auth
	AI       *handlers.AI
	Prompts  *handlers.Prompts
	Startups *handlers.Startups
	Stories  *handlers.Stories
	Media    *handlers.Media
	Users    *handlers.Users

	// Secure marks issued cookies Secure; on in production.
	Secure bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(d.Sessions))

	// Health check — no auth, no CSRF.
	r.Get("/health", d.Health.Check)

	// Public read API — anonymous, published content only.
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/startups", d.Startups.ListPublished)
		r.Get("/startups/{slug}", d.Startups.GetBySlug)
		r.Get("/stories", d.Stories.ListPublished)
		r.Get("/stories/{slug}", d.Stories.GetBySlug)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCSRF(d.Secure))

		// Login is rate limited per IP to slow credential stuffing.
		loginLimiter := middleware.NewRateLimiter(10, time.Minute)
		r.With(loginLimiter.Middleware).Post("/session-login", d.Auth.SessionLogin)
		r.Post("/logout", d.Auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", d.Auth.Me)
			r.Post("/2fa/setup", d.Auth.TOTPSetup)
			r.Post("/2fa/verify", d.Auth.TOTPVerify)
		})

		// Authenticated + 2FA-verified editorial API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			// Startup profiles
			r.Route("/startups", func(r chi.Router) {
				r.Get("/", d.Startups.List)
				r.Post("/", d.Startups.Create)
				r.Get("/{id}", d.Startups.Get)
				r.Put("/{id}", d.Startups.Update)
				r.Put("/{id}/seo", d.Startups.UpdateSEO)
				r.Delete("/{id}", d.Startups.Delete)
			})

			// Stories
			r.Route("/stories", func(r chi.Router) {
				r.Get("/", d.Stories.List)
				r.Post("/", d.Stories.Create)
				r.Get("/{id}", d.Stories.Get)
				r.Put("/{id}", d.Stories.Update)
				r.Put("/{id}/seo", d.Stories.UpdateSEO)
				r.Delete("/{id}", d.Stories.Delete)
			})

			// Media uploads
			r.Route("/media", func(r chi.Router) {
				r.Get("/", d.Media.List)
				r.Post("/", d.Media.Upload)
				r.Put("/{id}/alt-text", d.Media.UpdateAltText)
				r.Delete("/{id}", d.Media.Delete)
			})

			// AI generation — rate limited per IP, provider calls are slow
			// and metered.
			aiLimiter := middleware.NewRateLimiter(30, time.Minute)
			r.Route("/ai", func(r chi.Router) {
				r.Use(aiLimiter.Middleware)
				r.Post("/generate-seo", d.AI.GenerateSEO)
				r.Post("/generate-content", d.AI.GenerateContent)
				r.Get("/providers", d.AI.Providers)
			})

			// Admin only: prompt library, provider switching, users.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Put("/ai/provider", d.AI.SetProvider)

				r.Route("/prompts", func(r chi.Router) {
					r.Get("/", d.Prompts.List)
					r.Post("/", d.Prompts.Create)
					r.Post("/restore-defaults", d.Prompts.RestoreDefaults)
					r.Get("/{id}", d.Prompts.Get)
					r.Put("/{id}", d.Prompts.Update)
					r.Delete("/{id}", d.Prompts.Delete)
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", d.Users.List)
					r.Post("/", d.Users.Create)
					r.Post("/{id}/reset-2fa", d.Users.ResetTOTP)
					r.Delete("/{id}", d.Users.Delete)
				})
			})
		})
	})

	return r
}
