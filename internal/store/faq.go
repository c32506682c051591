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

const tableFAQs = "faqs"

// FAQStore handles frequently asked questions. An FAQ can be shown on
// several pages, listed in its page_slugs column.
type FAQStore struct {
	base
}

// NewFAQStore creates an FAQStore.
func NewFAQStore(db backend.Client, m *mapper.Mapper, pub revalidate.Publisher) *FAQStore {
	return &FAQStore{base: newBase(db, m, pub)}
}

func faqQuery() *backend.Query {
	return backend.From(tableFAQs).
		Order("display_order", true).
		Order("created_at", true)
}

// List returns every FAQ by display order.
func (s *FAQStore) List(ctx context.Context) []models.FAQ {
	return list(ctx, s.db, tableFAQs, faqQuery(), s.m.FAQ)
}

// ListByPage returns the FAQs shown on a page.
func (s *FAQStore) ListByPage(ctx context.Context, page string) []models.FAQ {
	page = strings.TrimSpace(page)
	if page == "" {
		return []models.FAQ{}
	}
	return list(ctx, s.db, tableFAQs, faqQuery().Contains("page_slugs", page), s.m.FAQ)
}

// ListByCategory returns the FAQs in a category.
func (s *FAQStore) ListByCategory(ctx context.Context, category string) []models.FAQ {
	category = strings.TrimSpace(category)
	if category == "" {
		return []models.FAQ{}
	}
	return list(ctx, s.db, tableFAQs, faqQuery().Eq("category", category), s.m.FAQ)
}

// FindByID returns an FAQ or nil.
func (s *FAQStore) FindByID(ctx context.Context, id string) *models.FAQ {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return one(ctx, s.db, tableFAQs, id, backend.From(tableFAQs).Eq("id", id), s.m.FAQ)
}

// Create inserts an FAQ.
func (s *FAQStore) Create(ctx context.Context, f *models.FAQ) (*models.FAQ, error) {
	row, err := s.insert(ctx, tableFAQs, faqValues(f))
	if err != nil {
		return nil, failed("create", "faq", f.Question, err)
	}
	out := s.m.FAQ(row)
	s.publish(ctx, revalidate.ActionCreate, out.ID, out.PageSlugs)
	return &out, nil
}

// Update overwrites an FAQ. Pages it was removed from are revalidated too.
func (s *FAQStore) Update(ctx context.Context, id string, f *models.FAQ) (*models.FAQ, error) {
	before := s.previous(ctx, tableFAQs, id)
	row, err := s.update(ctx, tableFAQs, id, faqValues(f))
	if err != nil {
		return nil, failed("update", "faq", id, err)
	}
	out := s.m.FAQ(row)
	s.publish(ctx, revalidate.ActionUpdate, out.ID, union(out.PageSlugs, mapper.FAQ(before).PageSlugs))
	return &out, nil
}

// Delete removes an FAQ immediately.
func (s *FAQStore) Delete(ctx context.Context, id string) (bool, error) {
	row, err := s.remove(ctx, tableFAQs, id)
	if err != nil {
		return false, failed("delete", "faq", id, err)
	}
	s.publish(ctx, revalidate.ActionDelete, id, mapper.FAQ(row).PageSlugs)
	return true, nil
}

func (s *FAQStore) publish(ctx context.Context, action revalidate.Action, id string, pages []string) {
	s.pub.Publish(ctx, revalidate.Event{
		Type:   models.ContentTypeFAQ,
		Action: action,
		ID:     id,
		Pages:  pages,
	})
}

func faqValues(f *models.FAQ) backend.Values {
	pages := make([]string, 0, len(f.PageSlugs))
	for _, p := range f.PageSlugs {
		if p = strings.Trim(strings.TrimSpace(p), "/"); p != "" {
			pages = append(pages, p)
		}
	}
	var category any
	if c := strings.TrimSpace(f.Category); c != "" {
		category = c
	}
	return backend.Values{
		"question":      f.Question,
		"answer":        f.Answer,
		"category":      category,
		"display_order": f.DisplayOrder,
		"page_slugs":    pages,
	}
}
