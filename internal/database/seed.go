// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"showcase/internal/backend"
)

//go:embed seed.yaml
var seedYAML []byte

// seedTables lists the seeded tables in insertion order.
var seedTables = []string{"projects", "testimonials", "services", "faqs", "process_steps"}

// SeedData maps a table name to the rows to insert, each row keyed by column.
type SeedData map[string][]map[string]any

// DefaultSeed returns the embedded development content.
func DefaultSeed() (SeedData, error) {
	return ParseSeed(seedYAML)
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) (SeedData, error) {
	var sd SeedData
	if err := yaml.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for table := range sd {
		if !knownTable(table) {
			return nil, fmt.Errorf("parse seed: unknown table %q", table)
		}
	}
	return sd, nil
}

// Seed populates empty content tables with sd. A table that already holds
// rows is left alone, so Seed is safe to run on every start. It returns the
// number of rows inserted.
func Seed(ctx context.Context, db backend.Client, sd SeedData) (int, error) {
	inserted := 0
	for _, table := range seedTables {
		rows := sd[table]
		if len(rows) == 0 {
			continue
		}

		existing, err := db.Select(ctx, backend.From(table).Limit(1))
		if err != nil {
			return inserted, fmt.Errorf("seed check %s: %w", table, err)
		}
		if len(existing) > 0 {
			slog.Info("table already seeded, skipping", "table", table)
			continue
		}

		for i, row := range rows {
			v, err := seedValues(row)
			if err != nil {
				return inserted, fmt.Errorf("seed %s row %d: %w", table, i, err)
			}
			if _, err := db.Insert(ctx, table, v); err != nil {
				return inserted, fmt.Errorf("seed insert %s row %d: %w", table, i, err)
			}
			inserted++
		}
		slog.Info("table seeded", "table", table, "rows", len(rows))
	}
	return inserted, nil
}

func knownTable(name string) bool {
	for _, t := range seedTables {
		if t == name {
			return true
		}
	}
	return false
}

// seedValues converts decoded YAML into column values. Lists of scalars
// become text arrays and anything structured is stored as JSON.
func seedValues(row map[string]any) (backend.Values, error) {
	v := make(backend.Values, len(row))
	for col, val := range row {
		switch x := val.(type) {
		case []any:
			if len(x) == 0 {
				continue
			}
			if strs, ok := scalarList(x); ok {
				v[col] = strs
				continue
			}
			raw, err := json.Marshal(x)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col, err)
			}
			v[col] = backend.JSON(raw)
		case map[string]any:
			raw, err := json.Marshal(x)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col, err)
			}
			v[col] = backend.JSON(raw)
		default:
			v[col] = val
		}
	}
	return v, nil
}

func scalarList(items []any) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch x := it.(type) {
		case string:
			out = append(out, x)
		case int, float64, bool:
			out = append(out, fmt.Sprint(x))
		default:
			return nil, false
		}
	}
	return out, true
}
