// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// invalidTextRepresentation is raised when a filter value cannot be cast to
// its column type, such as a malformed uuid.
const invalidTextRepresentation = "22P02"

// Postgres runs queries through a database/sql pool opened with the pgx
// driver. Rows are selected with row_to_json so columns the application does
// not know about, or has not caught up with, never break a scan.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Select returns all rows matching q. A filter value the column type cannot
// hold matches nothing, so it yields no rows rather than an error.
func (p *Postgres) Select(ctx context.Context, q *Query) ([]Row, error) {
	stmt, args := buildSelect(q)
	rows, err := p.query(ctx, stmt, args...)
	if isInvalidInput(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	return rows, nil
}

// Single returns the first row matching q.
func (p *Postgres) Single(ctx context.Context, q *Query) (Row, error) {
	limited := *q
	limited.Max = 1
	rows, err := p.Select(ctx, &limited)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Insert adds one row and returns it as stored (defaults applied).
func (p *Postgres) Insert(ctx context.Context, table string, v Values) (Row, error) {
	stmt, args := buildInsert(table, v)
	rows, err := p.query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert %s: no row returned", table)
	}
	return rows[0], nil
}

// Update applies v to the rows matching q's filters.
func (p *Postgres) Update(ctx context.Context, q *Query, v Values) ([]Row, error) {
	if len(q.Filters) == 0 {
		return nil, ErrUnfiltered
	}
	stmt, args := buildUpdate(q, v)
	rows, err := p.query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", q.Table, err)
	}
	return rows, nil
}

// Delete removes the rows matching q's filters.
func (p *Postgres) Delete(ctx context.Context, q *Query) ([]Row, error) {
	if len(q.Filters) == 0 {
		return nil, ErrUnfiltered
	}
	stmt, args := buildDelete(q)
	rows, err := p.query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", q.Table, err)
	}
	return rows, nil
}

// Ping verifies the connection pool can reach the server.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// query runs a statement whose single result column is a JSON object.
func (p *Postgres) query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	rows, err := p.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, Row(raw))
	}
	return out, rows.Err()
}

// isInvalidInput reports whether err is a server rejection of a value's
// text form.
func isInvalidInput(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

// --- SQL builders ---

// ident quotes a table or column name.
func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func buildSelect(q *Query) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT row_to_json(t) FROM ")
	b.WriteString(ident(q.Table))
	b.WriteString(" AS t")

	args := writeWhere(&b, q.Filters, nil)

	if len(q.Orders) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range q.Orders {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("t.")
			b.WriteString(ident(o.Column))
			if o.Ascending {
				b.WriteString(" ASC")
			} else {
				b.WriteString(" DESC")
			}
		}
	}
	if q.Max > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Max)
	}
	return b.String(), args
}

func buildInsert(table string, v Values) (string, []any) {
	cols := sortedColumns(v)

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(ident(table))
	b.WriteString(" AS t")

	args := make([]any, 0, len(cols))
	if len(cols) == 0 {
		b.WriteString(" DEFAULT VALUES")
	} else {
		b.WriteString(" (")
		for i, c := range cols {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ident(c))
		}
		b.WriteString(") VALUES (")
		for i, c := range cols {
			if i > 0 {
				b.WriteString(", ")
			}
			args = append(args, sqlValue(v[c]))
			fmt.Fprintf(&b, "$%d", len(args))
		}
		b.WriteString(")")
	}
	b.WriteString(" RETURNING row_to_json(t)")
	return b.String(), args
}

func buildUpdate(q *Query, v Values) (string, []any) {
	cols := sortedColumns(v)

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(ident(q.Table))
	b.WriteString(" AS t SET ")

	args := make([]any, 0, len(cols)+len(q.Filters))
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		args = append(args, sqlValue(v[c]))
		fmt.Fprintf(&b, "%s = $%d", ident(c), len(args))
	}
	args = writeWhere(&b, q.Filters, args)
	b.WriteString(" RETURNING row_to_json(t)")
	return b.String(), args
}

func buildDelete(q *Query) (string, []any) {
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(ident(q.Table))
	b.WriteString(" AS t")
	args := writeWhere(&b, q.Filters, nil)
	b.WriteString(" RETURNING row_to_json(t)")
	return b.String(), args
}

// writeWhere appends a WHERE clause for filters, numbering placeholders
// after the arguments already collected.
func writeWhere(b *strings.Builder, filters []Filter, args []any) []any {
	for i, f := range filters {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		col := "t." + ident(f.Column)
		switch f.Op {
		case OpNotNull:
			b.WriteString(col + " IS NOT NULL")
			continue
		case OpContains:
			args = append(args, sqlValue(f.Value))
			fmt.Fprintf(b, "$%d = ANY(%s)", len(args), col)
		case OpNeq:
			args = append(args, sqlValue(f.Value))
			fmt.Fprintf(b, "%s <> $%d", col, len(args))
		default:
			args = append(args, sqlValue(f.Value))
			fmt.Fprintf(b, "%s = $%d", col, len(args))
		}
	}
	return args
}

// sqlValue converts values the pgx driver cannot infer on its own.
func sqlValue(v any) any {
	switch x := v.(type) {
	case JSON:
		return string(x)
	case time.Time:
		return x.UTC()
	default:
		return v
	}
}

func sortedColumns(v Values) []string {
	cols := make([]string, 0, len(v))
	for c := range v {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
