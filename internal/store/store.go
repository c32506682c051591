// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides the content accessors used by the HTTP layer.
//
// Reads never fail from the caller's point of view: a backend error, a
// panic or an unusable row is logged and the accessor returns an empty
// slice (lists) or nil (single items). Mutations return the backend error
// so the admin layer can show it, and publish a revalidate.Event only after
// the write has committed.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"showcase/internal/backend"
	"showcase/internal/mapper"
	"showcase/internal/revalidate"
)

// base is embedded by every content store.
type base struct {
	db  backend.Client
	m   *mapper.Mapper
	pub revalidate.Publisher
}

func newBase(db backend.Client, m *mapper.Mapper, pub revalidate.Publisher) base {
	if m == nil {
		m = mapper.New(nil)
	}
	if pub == nil {
		pub = revalidate.Discard
	}
	return base{db: db, m: m, pub: pub}
}

// guard runs fn and converts a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}

// usable reports whether a row carries an id; rows without one cannot be
// linked or edited and are skipped.
func usable(what string, row backend.Row) bool {
	if missing := mapper.Missing(row, "id"); len(missing) > 0 {
		slog.Warn("skipping content row", "content", what, "missing", missing)
		return false
	}
	return true
}

// list runs q and maps each usable row. Any failure yields an empty slice.
func list[T any](ctx context.Context, db backend.Client, what string, q *backend.Query, mapRow func([]byte) T) []T {
	var rows []backend.Row
	err := guard(func() error {
		var err error
		rows, err = db.Select(ctx, q)
		return err
	})
	if err != nil {
		slog.Error("failed to fetch content", "content", what, "error", err)
		noteFailure(ctx)
		return []T{}
	}

	out := make([]T, 0, len(rows))
	err = guard(func() error {
		for _, r := range rows {
			if usable(what, r) {
				out = append(out, mapRow(r))
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to map content", "content", what, "error", err)
		noteFailure(ctx)
		return []T{}
	}
	return out
}

// one runs a single-row lookup. Not found is expected and logged at debug;
// every other failure is logged as an error. Both yield nil.
func one[T any](ctx context.Context, db backend.Client, what, key string, q *backend.Query, mapRow func([]byte) T) *T {
	row, err := single(ctx, db, q)
	if errors.Is(err, backend.ErrNotFound) {
		slog.Debug("content not found", "content", what, "key", key)
		return nil
	}
	if err != nil {
		slog.Error("failed to fetch content", "content", what, "key", key, "error", err)
		noteFailure(ctx)
		return nil
	}
	return mapOne(ctx, what, key, row, mapRow)
}

func single(ctx context.Context, db backend.Client, q *backend.Query) (backend.Row, error) {
	var row backend.Row
	err := guard(func() error {
		var err error
		row, err = db.Single(ctx, q)
		return err
	})
	return row, err
}

func mapOne[T any](ctx context.Context, what, key string, row backend.Row, mapRow func([]byte) T) *T {
	if !usable(what, row) {
		return nil
	}
	var v T
	if err := guard(func() error { v = mapRow(row); return nil }); err != nil {
		slog.Error("failed to map content", "content", what, "key", key, "error", err)
		noteFailure(ctx)
		return nil
	}
	return &v
}

// --- mutations ---

func (b base) insert(ctx context.Context, table string, v backend.Values) (backend.Row, error) {
	var row backend.Row
	err := guard(func() error {
		var err error
		row, err = b.db.Insert(ctx, table, v)
		return err
	})
	return row, err
}

func (b base) update(ctx context.Context, table, id string, v backend.Values) (backend.Row, error) {
	v["updated_at"] = time.Now().UTC()
	var rows []backend.Row
	err := guard(func() error {
		var err error
		rows, err = b.db.Update(ctx, backend.From(table).Eq("id", id), v)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, backend.ErrNotFound
	}
	return rows[0], nil
}

func (b base) remove(ctx context.Context, table, id string) (backend.Row, error) {
	var rows []backend.Row
	err := guard(func() error {
		var err error
		rows, err = b.db.Delete(ctx, backend.From(table).Eq("id", id))
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, backend.ErrNotFound
	}
	return rows[0], nil
}

// previous fetches a row before it is overwritten so events can cover the
// old slug or pages. It is best-effort.
func (b base) previous(ctx context.Context, table, id string) backend.Row {
	row, err := single(ctx, b.db, backend.From(table).Eq("id", id))
	if err != nil {
		return nil
	}
	return row
}

// failed logs a mutation error and returns it wrapped with context.
func failed(op, what, id string, err error) error {
	slog.Error("content mutation failed", "op", op, "content", what, "id", id, "error", err)
	return fmt.Errorf("%s %s: %w", op, what, err)
}

// nonNil keeps text[] columns from being written as NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// union returns the distinct values of a followed by those of b.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string(nil), a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
