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
	"showcase/internal/slug"
)

const tableServices = "services"

// ServiceStore handles the agency's service offerings.
type ServiceStore struct {
	base
}

// NewServiceStore creates a ServiceStore.
func NewServiceStore(db backend.Client, m *mapper.Mapper, pub revalidate.Publisher) *ServiceStore {
	return &ServiceStore{base: newBase(db, m, pub)}
}

// List returns services by display order, then title.
func (s *ServiceStore) List(ctx context.Context) []models.Service {
	q := backend.From(tableServices).
		Order("display_order", true).
		Order("title", true)
	return list(ctx, s.db, tableServices, q, s.m.Service)
}

// FindByID returns a service or nil.
func (s *ServiceStore) FindByID(ctx context.Context, id string) *models.Service {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return one(ctx, s.db, tableServices, id, backend.From(tableServices).Eq("id", id), s.m.Service)
}

// FindBySlug returns a service or nil.
func (s *ServiceStore) FindBySlug(ctx context.Context, slug string) *models.Service {
	if strings.TrimSpace(slug) == "" {
		return nil
	}
	return one(ctx, s.db, tableServices, slug, backend.From(tableServices).Eq("slug", slug), s.m.Service)
}

// Create inserts a service. An empty slug is derived from the title and an
// empty icon from the title keywords.
func (s *ServiceStore) Create(ctx context.Context, svc *models.Service) (*models.Service, error) {
	row, err := s.insert(ctx, tableServices, serviceValues(svc))
	if err != nil {
		return nil, failed("create", "service", svc.Title, err)
	}
	out := s.m.Service(row)
	s.pub.Publish(ctx, revalidate.Event{
		Type:   models.ContentTypeService,
		Action: revalidate.ActionCreate,
		ID:     out.ID,
		Slug:   out.Slug,
	})
	return &out, nil
}

// Update overwrites a service's editable fields.
func (s *ServiceStore) Update(ctx context.Context, id string, svc *models.Service) (*models.Service, error) {
	before := s.previous(ctx, tableServices, id)
	row, err := s.update(ctx, tableServices, id, serviceValues(svc))
	if err != nil {
		return nil, failed("update", "service", id, err)
	}
	out := s.m.Service(row)
	s.pub.Publish(ctx, revalidate.Event{
		Type:         models.ContentTypeService,
		Action:       revalidate.ActionUpdate,
		ID:           out.ID,
		Slug:         out.Slug,
		PreviousSlug: mapper.Service(before).Slug,
	})
	return &out, nil
}

// Delete removes a service immediately.
func (s *ServiceStore) Delete(ctx context.Context, id string) (bool, error) {
	row, err := s.remove(ctx, tableServices, id)
	if err != nil {
		return false, failed("delete", "service", id, err)
	}
	gone := mapper.Service(row)
	s.pub.Publish(ctx, revalidate.Event{
		Type:   models.ContentTypeService,
		Action: revalidate.ActionDelete,
		ID:     id,
		Slug:   gone.Slug,
		Images: nonEmpty(gone.Image),
	})
	return true, nil
}

func serviceValues(svc *models.Service) backend.Values {
	if svc.Slug == "" {
		svc.Slug = slug.Generate(svc.Title)
	}
	if svc.IconName == "" {
		svc.IconName = mapper.IconFor(svc.Title, svc.Description)
	}
	return backend.Values{
		"title":               svc.Title,
		"description":         svc.Description,
		"slug":                svc.Slug,
		"featured":            svc.Featured,
		"display_order":       svc.DisplayOrder,
		"icon_name":           svc.IconName,
		"deliverables":        nonNil(svc.Deliverables),
		"business_outcomes":   nonNil(svc.BusinessOutcomes),
		"business_stat_value": svc.BusinessStatValue,
		"business_stat_label": svc.BusinessStatLabel,
		"image_url":           svc.Image,
	}
}
