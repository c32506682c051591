// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"strings"

	"showcase/internal/backend"
	"showcase/internal/mapper"
	"showcase/internal/models"
	"showcase/internal/revalidate"
)

const tableTestimonials = "testimonials"

// DefaultTestimonialOrder places new testimonials after curated ones.
const DefaultTestimonialOrder = 999

// TestimonialStore handles client testimonials.
type TestimonialStore struct {
	base
}

// NewTestimonialStore creates a TestimonialStore.
func NewTestimonialStore(db backend.Client, m *mapper.Mapper, pub revalidate.Publisher) *TestimonialStore {
	return &TestimonialStore{base: newBase(db, m, pub)}
}

func testimonialQuery() *backend.Query {
	return backend.From(tableTestimonials).
		Order("display_order", true).
		Order("created_at", false)
}

// List returns testimonials by display order, newest first within a rank,
// at most limit (no cap when limit <= 0).
func (s *TestimonialStore) List(ctx context.Context, limit int) []models.Testimonial {
	return list(ctx, s.db, tableTestimonials, testimonialQuery().Limit(limit), s.m.Testimonial)
}

// ListFeatured returns featured testimonials.
func (s *TestimonialStore) ListFeatured(ctx context.Context, limit int) []models.Testimonial {
	q := testimonialQuery().Eq("featured", true).Limit(limit)
	return list(ctx, s.db, tableTestimonials, q, s.m.Testimonial)
}

// ListFeaturedWithImages returns featured testimonials that have an image.
// The image can live in either column, so the limit is applied after
// filtering rather than in the query.
func (s *TestimonialStore) ListFeaturedWithImages(ctx context.Context, limit int) []models.Testimonial {
	all := list(ctx, s.db, tableTestimonials, testimonialQuery().Eq("featured", true), s.m.Testimonial)
	out := make([]models.Testimonial, 0, len(all))
	for _, t := range all {
		if !t.HasImage() {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// FindByID returns a testimonial or nil.
func (s *TestimonialStore) FindByID(ctx context.Context, id string) *models.Testimonial {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return one(ctx, s.db, tableTestimonials, id, backend.From(tableTestimonials).Eq("id", id), s.m.Testimonial)
}

// Create inserts a testimonial. An unset display order becomes
// DefaultTestimonialOrder.
func (s *TestimonialStore) Create(ctx context.Context, t *models.Testimonial) (*models.Testimonial, error) {
	if t.DisplayOrder == 0 {
		t.DisplayOrder = DefaultTestimonialOrder
	}
	row, err := s.insert(ctx, tableTestimonials, testimonialValues(t))
	if err != nil {
		return nil, failed("create", "testimonial", t.Author, err)
	}
	out := s.m.Testimonial(row)
	s.publish(ctx, revalidate.ActionCreate, out.ID)
	return &out, nil
}

// Update overwrites a testimonial's editable fields.
func (s *TestimonialStore) Update(ctx context.Context, id string, t *models.Testimonial) (*models.Testimonial, error) {
	row, err := s.update(ctx, tableTestimonials, id, testimonialValues(t))
	if err != nil {
		return nil, failed("update", "testimonial", id, err)
	}
	out := s.m.Testimonial(row)
	s.publish(ctx, revalidate.ActionUpdate, out.ID)
	return &out, nil
}

// Delete removes a testimonial immediately.
func (s *TestimonialStore) Delete(ctx context.Context, id string) (bool, error) {
	row, err := s.remove(ctx, tableTestimonials, id)
	if err != nil {
		return false, failed("delete", "testimonial", id, err)
	}
	gone := mapper.Testimonial(row)
	s.pub.Publish(ctx, revalidate.Event{
		Type:   models.ContentTypeTestimonial,
		Action: revalidate.ActionDelete,
		ID:     id,
		Images: nonEmpty(gone.Image),
	})
	return true, nil
}

func (s *TestimonialStore) publish(ctx context.Context, action revalidate.Action, id string) {
	s.pub.Publish(ctx, revalidate.Event{
		Type:   models.ContentTypeTestimonial,
		Action: action,
		ID:     id,
	})
}

// testimonialValues writes the image to both avatar_url and the older image
// column so a cleared avatar cannot fall back to a stale legacy value.
func testimonialValues(t *models.Testimonial) backend.Values {
	author := t.Author
	if author == "" {
		author = t.Name
	}
	image := t.Image
	if image == "" {
		image = t.AvatarURL
	}
	return backend.Values{
		"quote":         t.Quote,
		"author":        author,
		"title":         t.Title,
		"company":       t.Company,
		"avatar_url":    image,
		"image":         image,
		"featured":      t.Featured,
		"phase_tag":     t.PhaseTag,
		"display_order": t.DisplayOrder,
		"project":       t.Project,
	}
}

func nonEmpty(s ...string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
