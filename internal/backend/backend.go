// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package backend is the content database client. Rows travel as raw JSON
// objects so that callers can tolerate schema drift (renamed, missing or
// extra columns) and normalize them at the boundary. Two implementations
// exist: Postgres for real deployments and Memory for development and tests.
package backend

import (
	"context"
	"errors"
)

// ErrNotFound is returned by single-row operations when no row matched.
// It is distinct from query failures so callers can skip retries and
// error-level logging for plain misses.
var ErrNotFound = errors.New("backend: no rows")

// ErrUnfiltered guards Update and Delete against touching a whole table.
var ErrUnfiltered = errors.New("backend: update or delete without filter")

// Row is one database row encoded as a JSON object.
type Row []byte

// JSON marks a value that must be stored verbatim as a JSON document
// (jsonb columns in Postgres, nested objects in Memory).
type JSON []byte

// Values maps column names to the values written by Insert and Update.
type Values map[string]any

// Client is the query interface consumed by the content stores. Every call
// returns data or an error, never both.
type Client interface {
	// Select returns every row matching q, ordered and limited as requested.
	Select(ctx context.Context, q *Query) ([]Row, error)
	// Single returns the first row matching q or ErrNotFound.
	Single(ctx context.Context, q *Query) (Row, error)
	// Insert writes one row into table and returns it as stored.
	Insert(ctx context.Context, table string, v Values) (Row, error)
	// Update applies v to every row matching q's filters and returns the
	// updated rows.
	Update(ctx context.Context, q *Query, v Values) ([]Row, error)
	// Delete removes every row matching q's filters and returns the
	// removed rows.
	Delete(ctx context.Context, q *Query) ([]Row, error)
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
