// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"showcase/internal/backend"
	"showcase/internal/config"
	"showcase/internal/database"
)

// openBackend returns the content client selected by BACKEND. The memory
// backend starts out seeded with the bundled fixtures. A PostgreSQL schema
// is migrated first, and seeded too in development. The returned close
// function releases the connection pool.
func openBackend(ctx context.Context, c *config.Config) (backend.Client, func(), error) {
	if c.Backend == config.BackendMemory {
		mem := backend.NewMemory()
		sd, err := database.DefaultSeed()
		if err != nil {
			return nil, nil, err
		}
		n, err := database.Seed(ctx, mem, sd)
		if err != nil {
			return nil, nil, fmt.Errorf("seed memory backend: %w", err)
		}
		slog.Info("memory backend ready", "rows", n)
		return mem, func() {}, nil
	}

	db, err := database.Open(c.DSN())
	if err != nil {
		return nil, nil, err
	}
	client := backend.NewPostgres(db)
	if err := backend.WaitReady(ctx, client, 5, 500*time.Millisecond); err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := prepareSchema(ctx, db, c.IsDev()); err != nil {
		db.Close()
		return nil, nil, err
	}
	return client, func() { db.Close() }, nil
}

// openDB connects to PostgreSQL. Commands that only make sense against a
// real database call it directly.
func openDB(c *config.Config) (*sql.DB, error) {
	if c.Backend != config.BackendPostgres {
		return nil, fmt.Errorf("command requires BACKEND=%s, got %q", config.BackendPostgres, c.Backend)
	}
	db, err := database.Connect(c.DSN())
	if err != nil {
		return nil, err
	}
	slog.Info("database connected", "host", c.DBHost, "name", c.DBName)
	return db, nil
}

func prepareSchema(ctx context.Context, db *sql.DB, seed bool) error {
	if err := database.Migrate(db); err != nil {
		return err
	}
	if !seed {
		return nil
	}
	sd, err := database.DefaultSeed()
	if err != nil {
		return err
	}
	n, err := database.Seed(ctx, backend.NewPostgres(db), sd)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("development data seeded", "rows", n)
	}
	return nil
}
