// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"showcase/internal/backend"
	"showcase/internal/mapper"
	"showcase/internal/models"
	"showcase/internal/retry"
	"showcase/internal/revalidate"
	"showcase/internal/slug"
)

const tableProjects = "projects"

// DefaultSlugRetry is the retry policy for project slug lookups.
var DefaultSlugRetry = retry.Fixed(3, retry.DefaultDelay)

// ProjectStore handles case-study projects.
type ProjectStore struct {
	base
	slugRetry retry.Policy
}

// NewProjectStore creates a ProjectStore. Slug lookups retry transient
// backend errors according to slugRetry; a miss is never retried.
func NewProjectStore(db backend.Client, m *mapper.Mapper, pub revalidate.Publisher, slugRetry retry.Policy) *ProjectStore {
	return &ProjectStore{
		base:      newBase(db, m, pub),
		slugRetry: slugRetry.Only(transient),
	}
}

// transient reports whether a lookup error is worth another attempt.
func transient(err error) bool {
	return !errors.Is(err, backend.ErrNotFound)
}

// List returns all projects by display order, newest first within a rank.
func (s *ProjectStore) List(ctx context.Context) []models.Project {
	q := backend.From(tableProjects).
		Order("display_order", true).
		Order("created_at", false)
	return list(ctx, s.db, tableProjects, q, s.m.Project)
}

// ListFeatured returns featured projects, at most limit (no cap when limit <= 0).
func (s *ProjectStore) ListFeatured(ctx context.Context, limit int) []models.Project {
	q := backend.From(tableProjects).
		Eq("featured", true).
		Order("display_order", true).
		Order("created_at", false).
		Limit(limit)
	return list(ctx, s.db, tableProjects, q, s.m.Project)
}

// ListRelated returns up to limit other projects, newest first.
func (s *ProjectStore) ListRelated(ctx context.Context, id string, limit int) []models.Project {
	q := backend.From(tableProjects).
		Neq("id", id).
		Order("created_at", false).
		Limit(limit)
	return list(ctx, s.db, tableProjects, q, s.m.Project)
}

// FindByID returns a project or nil.
func (s *ProjectStore) FindByID(ctx context.Context, id string) *models.Project {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return one(ctx, s.db, tableProjects, id, backend.From(tableProjects).Eq("id", id), s.m.Project)
}

// FindBySlug returns the project for a case-study URL or nil. Backend
// errors are retried; the final one is logged with the attempt count.
func (s *ProjectStore) FindBySlug(ctx context.Context, slug string) *models.Project {
	if strings.TrimSpace(slug) == "" {
		return nil
	}
	q := backend.From(tableProjects).Eq("slug", slug)

	row, attempts, err := retry.Value(ctx, s.slugRetry, func(ctx context.Context, _ int) (backend.Row, error) {
		return single(ctx, s.db, q)
	})
	if errors.Is(err, backend.ErrNotFound) {
		slog.Debug("project not found", "slug", slug)
		return nil
	}
	if err != nil {
		slog.Error("failed to fetch project by slug",
			"slug", slug,
			"attempts", attempts,
			"error", err,
		)
		noteFailure(ctx)
		return nil
	}
	if attempts > 1 {
		slog.Info("project fetched after retry", "slug", slug, "attempts", attempts)
	}
	return mapOne(ctx, tableProjects, slug, row, s.m.Project)
}

// Create inserts a project. An empty slug is derived from the title.
func (s *ProjectStore) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	row, err := s.insert(ctx, tableProjects, projectValues(p))
	if err != nil {
		return nil, failed("create", "project", p.Slug, err)
	}
	out := s.m.Project(row)
	s.pub.Publish(ctx, revalidate.Event{
		Type:   models.ContentTypeProject,
		Action: revalidate.ActionCreate,
		ID:     out.ID,
		Slug:   out.Slug,
	})
	return &out, nil
}

// Update overwrites a project's editable fields.
func (s *ProjectStore) Update(ctx context.Context, id string, p *models.Project) (*models.Project, error) {
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	before := s.previous(ctx, tableProjects, id)
	row, err := s.update(ctx, tableProjects, id, projectValues(p))
	if err != nil {
		return nil, failed("update", "project", id, err)
	}
	out := s.m.Project(row)
	s.pub.Publish(ctx, revalidate.Event{
		Type:         models.ContentTypeProject,
		Action:       revalidate.ActionUpdate,
		ID:           out.ID,
		Slug:         out.Slug,
		PreviousSlug: mapper.Project(before).Slug,
	})
	return &out, nil
}

// Delete removes a project immediately.
func (s *ProjectStore) Delete(ctx context.Context, id string) (bool, error) {
	row, err := s.remove(ctx, tableProjects, id)
	if err != nil {
		return false, failed("delete", "project", id, err)
	}
	// Raw references, so media cleanup sees keys rather than resolved URLs.
	gone := mapper.Project(row)
	images := gone.Images
	if gone.ThumbnailURL != "" {
		images = append(images, gone.ThumbnailURL)
	}
	s.pub.Publish(ctx, revalidate.Event{
		Type:   models.ContentTypeProject,
		Action: revalidate.ActionDelete,
		ID:     id,
		Slug:   gone.Slug,
		Images: images,
	})
	return true, nil
}

func projectValues(p *models.Project) backend.Values {
	process := p.Process
	if process == nil {
		process = []models.ProjectPhase{}
	}
	phases, _ := json.Marshal(process)
	return backend.Values{
		"title":         p.Title,
		"description":   p.Description,
		"slug":          p.Slug,
		"client":        p.Client,
		"year":          p.Year,
		"role":          p.Role,
		"duration":      p.Duration,
		"challenge":     p.Challenge,
		"solution":      p.Solution,
		"outcomes":      nonNil(p.Outcomes),
		"process":       backend.JSON(phases),
		"images":        nonNil(p.Images),
		"tags":          nonNil(p.Tags),
		"tools":         nonNil(p.Tools),
		"categories":    nonNil(p.Categories),
		"featured":      p.Featured,
		"scheduled":     p.Scheduled,
		"thumbnail_url": p.ThumbnailURL,
		"external_url":  p.ExternalURL,
		"display_order": p.DisplayOrder,
	}
}
