// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// showcase server. It organizes routes into the public JSON API, the
// revalidation endpoints and the admin form actions, each with its own
// middleware stack.
package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"showcase/internal/handlers"
	"showcase/internal/middleware"
)

// Handlers groups the handler sets mounted by New.
type Handlers struct {
	Health     *handlers.Health
	Public     *handlers.Public
	Admin      *handlers.Admin
	Revalidate *handlers.Revalidate
}

// AdminAccess configures the guard in front of the admin form actions.
// A nil Limiter disables rate limiting.
type AdminAccess struct {
	User         string
	PasswordHash string
	Limiter      *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h Handlers, access AdminAccess) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", h.Health.Check)

	r.Route("/api", func(r chi.Router) {
		r.Get("/home", h.Public.Home)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.Public.Projects)
			r.Get("/featured", h.Public.FeaturedProjects)
			r.Get("/{slug}", h.Public.Project)
			r.Get("/{slug}/related", h.Public.RelatedProjects)
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", h.Public.Testimonials)
			r.Get("/featured", h.Public.FeaturedTestimonials)
			r.Get("/featured/with-images", h.Public.FeaturedTestimonialsWithImages)
		})

		r.Get("/services", h.Public.Services)
		r.Get("/services/{slug}", h.Public.Service)
		r.Get("/faqs", h.Public.FAQs)
		r.Get("/process", h.Public.ProcessSteps)
		r.Get("/process/{id}", h.Public.ProcessStep)

		// Revalidation is authorized by a shared secret, not the admin login.
		r.Route("/revalidate", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Get("/", h.Revalidate.Revalidate)
			r.Post("/", h.Revalidate.Revalidate)
			r.Post("/all", h.Revalidate.All)
			r.Get("/log", h.Revalidate.Log)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NoStore)
		if access.Limiter != nil {
			r.Use(access.Limiter.Middleware)
		}
		r.Use(middleware.SameOrigin)
		r.Use(middleware.AdminAuth(access.User, access.PasswordHash))

		r.Post("/{type}", h.Admin.Create)
		r.Post("/{type}/{id}", h.Admin.Update)
		r.Post("/{type}/{id}/delete", h.Admin.Delete)
	})

	return r
}
