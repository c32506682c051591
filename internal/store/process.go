// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"strings"

	"showcase/internal/backend"
	"showcase/internal/mapper"
	"showcase/internal/models"
	"showcase/internal/revalidate"
)

const tableProcess = "process_steps"

// ProcessStore handles the phases of the design process page.
type ProcessStore struct {
	base
}

// NewProcessStore creates a ProcessStore.
func NewProcessStore(db backend.Client, m *mapper.Mapper, pub revalidate.Publisher) *ProcessStore {
	return &ProcessStore{base: newBase(db, m, pub)}
}

// List returns process steps by display order, then phase title.
func (s *ProcessStore) List(ctx context.Context) []models.ProcessStep {
	q := backend.From(tableProcess).
		Order("display_order", true).
		Order("phase_title", true)
	return list(ctx, s.db, tableProcess, q, s.m.ProcessStep)
}

// FindByID returns a process step or nil.
func (s *ProcessStore) FindByID(ctx context.Context, id string) *models.ProcessStep {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return one(ctx, s.db, tableProcess, id, backend.From(tableProcess).Eq("id", id), s.m.ProcessStep)
}

// Create inserts a process step.
func (s *ProcessStore) Create(ctx context.Context, p *models.ProcessStep) (*models.ProcessStep, error) {
	row, err := s.insert(ctx, tableProcess, processValues(p))
	if err != nil {
		return nil, failed("create", "process step", p.PhaseTitle, err)
	}
	out := s.m.ProcessStep(row)
	s.publish(ctx, revalidate.ActionCreate, out.ID)
	return &out, nil
}

// Update overwrites a process step.
func (s *ProcessStore) Update(ctx context.Context, id string, p *models.ProcessStep) (*models.ProcessStep, error) {
	row, err := s.update(ctx, tableProcess, id, processValues(p))
	if err != nil {
		return nil, failed("update", "process step", id, err)
	}
	out := s.m.ProcessStep(row)
	s.publish(ctx, revalidate.ActionUpdate, out.ID)
	return &out, nil
}

// Delete removes a process step immediately.
func (s *ProcessStore) Delete(ctx context.Context, id string) (bool, error) {
	row, err := s.remove(ctx, tableProcess, id)
	if err != nil {
		return false, failed("delete", "process step", id, err)
	}
	gone := mapper.ProcessStep(row)
	s.pub.Publish(ctx, revalidate.Event{
		Type:   models.ContentTypeProcess,
		Action: revalidate.ActionDelete,
		ID:     id,
		Images: nonEmpty(gone.ImageURL),
	})
	return true, nil
}

func (s *ProcessStore) publish(ctx context.Context, action revalidate.Action, id string) {
	s.pub.Publish(ctx, revalidate.Event{
		Type:   models.ContentTypeProcess,
		Action: action,
		ID:     id,
	})
}

func processValues(p *models.ProcessStep) backend.Values {
	steps := p.Steps
	if steps == nil {
		steps = []models.ProcessStepItem{}
	}
	encoded, _ := json.Marshal(steps)
	return backend.Values{
		"phase_title":       p.PhaseTitle,
		"phase_subtitle":    p.PhaseSubtitle,
		"phase_description": p.PhaseDescription,
		"display_order":     p.DisplayOrder,
		"image_url":         p.ImageURL,
		"quote_text":        p.QuoteText,
		"quote_author":      p.QuoteAuthor,
		"icon":              p.Icon,
		"steps":             backend.JSON(encoded),
		"outputs":           nonNil(p.Outputs),
		"key_results":       nonNil(p.KeyResults),
		"stat_value":        p.StatValue,
		"stat_label":        p.StatLabel,
	}
}
