// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Memory is an in-process Client used for development and tests. It keeps
// rows as JSON objects per table and mirrors the Postgres semantics that the
// stores depend on: filter operators, null ordering, limits and generated
// id and timestamp columns.
type Memory struct {
	mu     sync.RWMutex
	tables map[string][]Row
	now    func() time.Time
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string][]Row), now: time.Now}
}

// Load replaces the contents of table with rows given as JSON objects.
// It is meant for fixtures.
func (m *Memory) Load(table string, rows ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, Row(r))
	}
	m.tables[table] = out
}

// Select returns all rows matching q.
func (m *Memory) Select(_ context.Context, q *Query) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Row
	for _, r := range m.tables[q.Table] {
		if matches(r, q.Filters) {
			out = append(out, cloneRow(r))
		}
	}
	if len(q.Orders) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i], out[j], q.Orders)
		})
	}
	if q.Max > 0 && len(out) > q.Max {
		out = out[:q.Max]
	}
	return out, nil
}

// Single returns the first row matching q.
func (m *Memory) Single(ctx context.Context, q *Query) (Row, error) {
	rows, err := m.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Insert adds a row, generating id, created_at and updated_at when absent.
func (m *Memory) Insert(_ context.Context, table string, v Values) (Row, error) {
	row, err := apply(Row("{}"), v)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	now := m.now().UTC().Format(time.RFC3339Nano)
	for col, def := range map[string]string{
		"id":         uuid.NewString(),
		"created_at": now,
		"updated_at": now,
	} {
		if gjson.GetBytes(row, col).Exists() {
			continue
		}
		if row, err = sjson.SetBytes(row, col, def); err != nil {
			return nil, fmt.Errorf("insert %s: %w", table, err)
		}
	}

	m.mu.Lock()
	m.tables[table] = append(m.tables[table], row)
	m.mu.Unlock()
	return cloneRow(row), nil
}

// Update applies v to the rows matching q's filters.
func (m *Memory) Update(_ context.Context, q *Query, v Values) ([]Row, error) {
	if len(q.Filters) == 0 {
		return nil, ErrUnfiltered
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Row
	rows := m.tables[q.Table]
	for i, r := range rows {
		if !matches(r, q.Filters) {
			continue
		}
		updated, err := apply(r, v)
		if err != nil {
			return nil, fmt.Errorf("update %s: %w", q.Table, err)
		}
		if _, set := v["updated_at"]; !set {
			updated, _ = sjson.SetBytes(updated, "updated_at", m.now().UTC().Format(time.RFC3339Nano))
		}
		rows[i] = updated
		out = append(out, cloneRow(updated))
	}
	return out, nil
}

// Delete removes the rows matching q's filters.
func (m *Memory) Delete(_ context.Context, q *Query) ([]Row, error) {
	if len(q.Filters) == 0 {
		return nil, ErrUnfiltered
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var kept, removed []Row
	for _, r := range m.tables[q.Table] {
		if matches(r, q.Filters) {
			removed = append(removed, r)
		} else {
			kept = append(kept, r)
		}
	}
	m.tables[q.Table] = kept
	return removed, nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// apply writes each value in v into row.
func apply(row Row, v Values) (Row, error) {
	out := []byte(cloneRow(row))
	for col, val := range v {
		var err error
		switch x := val.(type) {
		case JSON:
			if !json.Valid(x) {
				return nil, fmt.Errorf("column %s: invalid JSON", col)
			}
			out, err = sjson.SetRawBytes(out, gjsonPath(col), x)
		case time.Time:
			out, err = sjson.SetBytes(out, gjsonPath(col), x.UTC().Format(time.RFC3339Nano))
		default:
			out, err = sjson.SetBytes(out, gjsonPath(col), x)
		}
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
	}
	return out, nil
}

func matches(r Row, filters []Filter) bool {
	for _, f := range filters {
		got := gjson.GetBytes(r, gjsonPath(f.Column))
		switch f.Op {
		case OpNotNull:
			if !got.Exists() || got.Type == gjson.Null {
				return false
			}
		case OpContains:
			if !got.IsArray() {
				return false
			}
			found := false
			for _, el := range got.Array() {
				if equal(el, f.Value) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case OpNeq:
			if !got.Exists() || got.Type == gjson.Null || equal(got, f.Value) {
				return false
			}
		default:
			if !got.Exists() || got.Type == gjson.Null || !equal(got, f.Value) {
				return false
			}
		}
	}
	return true
}

// equal compares a stored JSON value with a Go filter value.
func equal(got gjson.Result, want any) bool {
	switch w := want.(type) {
	case bool:
		return (got.Type == gjson.True || got.Type == gjson.False) && got.Bool() == w
	case int:
		return got.Type == gjson.Number && got.Float() == float64(w)
	case int64:
		return got.Type == gjson.Number && got.Float() == float64(w)
	case float64:
		return got.Type == gjson.Number && got.Float() == w
	case string:
		return got.String() == w
	case fmt.Stringer:
		return got.String() == w.String()
	default:
		return got.String() == fmt.Sprint(w)
	}
}

// less orders rows by the given keys. Nulls sort last ascending and first
// descending, as Postgres does by default.
func less(a, b Row, orders []Order) bool {
	for _, o := range orders {
		x := gjson.GetBytes(a, gjsonPath(o.Column))
		y := gjson.GetBytes(b, gjsonPath(o.Column))
		c := compare(x, y)
		if c == 0 {
			continue
		}
		if o.Ascending {
			return c < 0
		}
		return c > 0
	}
	return false
}

// compare returns -1, 0 or 1. Null and missing values are greater than
// everything else. Timestamps compare chronologically, numbers numerically.
func compare(x, y gjson.Result) int {
	xNull := !x.Exists() || x.Type == gjson.Null
	yNull := !y.Exists() || y.Type == gjson.Null
	switch {
	case xNull && yNull:
		return 0
	case xNull:
		return 1
	case yNull:
		return -1
	}
	if x.Type == gjson.Number && y.Type == gjson.Number {
		switch {
		case x.Float() < y.Float():
			return -1
		case x.Float() > y.Float():
			return 1
		}
		return 0
	}
	xs, ys := x.String(), y.String()
	if xt, err := time.Parse(time.RFC3339Nano, xs); err == nil {
		if yt, err := time.Parse(time.RFC3339Nano, ys); err == nil {
			return xt.Compare(yt)
		}
	}
	switch {
	case xs < ys:
		return -1
	case xs > ys:
		return 1
	}
	return 0
}

// gjsonPath escapes characters gjson treats as path syntax so column names
// are always looked up literally.
func gjsonPath(col string) string {
	out := make([]byte, 0, len(col))
	for i := 0; i < len(col); i++ {
		switch c := col[i]; c {
		case '.', '*', '?', '|', '#', '@', '\\':
			out = append(out, '\\', c)
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

func cloneRow(r Row) Row {
	return append(Row(nil), r...)
}
