// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"showcase/internal/cache"
	"showcase/internal/models"
	"showcase/internal/revalidate"
	"showcase/internal/store"
)

// Default list sizes for the featured endpoints.
const (
	defaultFeaturedProjects     = 3
	defaultFeaturedTestimonials = 3
	defaultWithImages           = 5
	defaultRelated              = 3
)

// Public serves the read-only JSON API. Responses are looked up in the page
// cache first and stored on a miss, tagged with the content types they
// were built from.
type Public struct {
	stores Stores
	cache  cache.Store
}

// NewPublic creates a new Public handler group. A nil cache disables
// response caching.
func NewPublic(stores Stores, pageCache cache.Store) *Public {
	if pageCache == nil {
		pageCache = cache.Noop{}
	}
	return &Public{stores: stores, cache: pageCache}
}

// serve answers from the cache or from build. build reports false when the
// requested record does not exist; misses are not cached. Neither are
// responses built while a read fell back to its empty default.
func (p *Public) serve(w http.ResponseWriter, r *http.Request, tags []string, build func(ctx context.Context) (any, bool)) {
	ctx := r.Context()
	key := r.URL.RequestURI()

	if cached, ok := p.cache.Get(ctx, key); ok {
		w.Header().Set("X-Cache", "HIT")
		writeRaw(w, http.StatusOK, cached)
		return
	}

	buildCtx, failures := store.TrackFailures(ctx)
	v, found := build(buildCtx)
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if n := failures.Count(); n > 0 {
		slog.Warn("response not cached after failed reads", "path", r.URL.Path, "failures", n)
	} else {
		p.cache.Set(ctx, key, body, tags...)
	}
	w.Header().Set("X-Cache", "MISS")
	writeRaw(w, http.StatusOK, body)
}

type homePage struct {
	Projects     []models.Project     `json:"projects"`
	Testimonials []models.Testimonial `json:"testimonials"`
	Services     []models.Service     `json:"services"`
	Process      []models.ProcessStep `json:"process"`
	FAQs         []models.FAQ         `json:"faqs"`
}

// Home returns every section of the landing page in one response.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	tags := []string{
		revalidate.TagProjects, revalidate.TagTestimonials, revalidate.TagServices,
		revalidate.TagProcess, revalidate.TagFAQs,
	}
	p.serve(w, r, tags, func(ctx context.Context) (any, bool) {
		var out homePage
		// Each read is safe-default, so no goroutine ever reports an error.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			out.Projects = p.stores.Projects.ListFeatured(gctx, defaultFeaturedProjects)
			return nil
		})
		g.Go(func() error {
			out.Testimonials = p.stores.Testimonials.ListFeatured(gctx, defaultFeaturedTestimonials)
			return nil
		})
		g.Go(func() error {
			out.Services = p.stores.Services.List(gctx)
			return nil
		})
		g.Go(func() error {
			out.Process = p.stores.Process.List(gctx)
			return nil
		})
		g.Go(func() error {
			out.FAQs = p.stores.FAQs.ListByPage(gctx, "home")
			return nil
		})
		g.Wait()
		return out, true
	})
}

// --- Projects ---

func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, []string{revalidate.TagProjects}, func(ctx context.Context) (any, bool) {
		return p.stores.Projects.List(ctx), true
	})
}

func (p *Public) FeaturedProjects(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultFeaturedProjects)
	p.serve(w, r, []string{revalidate.TagProjects}, func(ctx context.Context) (any, bool) {
		return p.stores.Projects.ListFeatured(ctx, limit), true
	})
}

// Project returns one case study by slug, or 404.
func (p *Public) Project(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	p.serve(w, r, []string{revalidate.TagProjects}, func(ctx context.Context) (any, bool) {
		project := p.stores.Projects.FindBySlug(ctx, slugParam)
		return project, project != nil
	})
}

// RelatedProjects lists other projects to show under a case study.
func (p *Public) RelatedProjects(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	limit := queryInt(r, "limit", defaultRelated)
	p.serve(w, r, []string{revalidate.TagProjects}, func(ctx context.Context) (any, bool) {
		project := p.stores.Projects.FindBySlug(ctx, slugParam)
		if project == nil {
			return nil, false
		}
		return p.stores.Projects.ListRelated(ctx, project.ID, limit), true
	})
}

// --- Testimonials ---

// Testimonials lists testimonials; without a limit every row is returned.
func (p *Public) Testimonials(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	p.serve(w, r, []string{revalidate.TagTestimonials}, func(ctx context.Context) (any, bool) {
		return p.stores.Testimonials.List(ctx, limit), true
	})
}

func (p *Public) FeaturedTestimonials(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultFeaturedTestimonials)
	p.serve(w, r, []string{revalidate.TagTestimonials}, func(ctx context.Context) (any, bool) {
		return p.stores.Testimonials.ListFeatured(ctx, limit), true
	})
}

func (p *Public) FeaturedTestimonialsWithImages(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultWithImages)
	p.serve(w, r, []string{revalidate.TagTestimonials}, func(ctx context.Context) (any, bool) {
		return p.stores.Testimonials.ListFeaturedWithImages(ctx, limit), true
	})
}

// --- Services ---

func (p *Public) Services(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, []string{revalidate.TagServices}, func(ctx context.Context) (any, bool) {
		return p.stores.Services.List(ctx), true
	})
}

func (p *Public) Service(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	p.serve(w, r, []string{revalidate.TagServices}, func(ctx context.Context) (any, bool) {
		svc := p.stores.Services.FindBySlug(ctx, slugParam)
		return svc, svc != nil
	})
}

// --- FAQs ---

// FAQs lists FAQs, narrowed to one page or one category when asked.
func (p *Public) FAQs(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	category := r.URL.Query().Get("category")
	p.serve(w, r, []string{revalidate.TagFAQs}, func(ctx context.Context) (any, bool) {
		switch {
		case page != "":
			return p.stores.FAQs.ListByPage(ctx, page), true
		case category != "":
			return p.stores.FAQs.ListByCategory(ctx, category), true
		default:
			return p.stores.FAQs.List(ctx), true
		}
	})
}

// --- Process ---

func (p *Public) ProcessSteps(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, []string{revalidate.TagProcess}, func(ctx context.Context) (any, bool) {
		return p.stores.Process.List(ctx), true
	})
}

func (p *Public) ProcessStep(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p.serve(w, r, []string{revalidate.TagProcess}, func(ctx context.Context) (any, bool) {
		step := p.stores.Process.FindByID(ctx, id)
		return step, step != nil
	})
}
