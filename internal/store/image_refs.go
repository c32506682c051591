// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"showcase/internal/backend"
	"showcase/internal/mapper"
)

// ImageRefStore lists the image references held by every content table.
// It implements revalidate.Referencer so stored objects are only removed
// once no record points at them.
type ImageRefStore struct {
	db backend.Client
}

// NewImageRefStore creates a new ImageRefStore.
func NewImageRefStore(db backend.Client) *ImageRefStore {
	return &ImageRefStore{db: db}
}

// ImageRefs returns the raw image references of all stored records. Any
// failed read is returned as an error so callers can keep objects they
// cannot prove unused.
func (s *ImageRefStore) ImageRefs(ctx context.Context) ([]string, error) {
	var refs []string
	tables := []struct {
		name string
		refs func(backend.Row) []string
	}{
		{tableProjects, func(row backend.Row) []string {
			p := mapper.Project(row)
			return append(append([]string(nil), p.Images...), p.ThumbnailURL)
		}},
		{tableTestimonials, func(row backend.Row) []string {
			// Both columns, since image can still hold a legacy value.
			return []string{
				gjson.GetBytes(row, "avatar_url").String(),
				gjson.GetBytes(row, "image").String(),
			}
		}},
		{tableServices, func(row backend.Row) []string {
			return []string{mapper.Service(row).Image}
		}},
		{tableProcess, func(row backend.Row) []string {
			return []string{mapper.ProcessStep(row).ImageURL}
		}},
	}

	for _, t := range tables {
		var rows []backend.Row
		err := guard(func() error {
			var err error
			rows, err = s.db.Select(ctx, backend.From(t.name))
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("list %s images: %w", t.name, err)
		}
		for _, row := range rows {
			refs = append(refs, nonEmpty(t.refs(row)...)...)
		}
	}
	return refs, nil
}
