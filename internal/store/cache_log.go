// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache_log.go records cache invalidations in the database for audit and
// debugging purposes. Each entry captures what was invalidated (a tag, a
// path or everything), when, and which mutation caused it.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tidwall/gjson"

	"showcase/internal/backend"
	"showcase/internal/revalidate"
)

const tableCacheLog = "cache_invalidation_log"

// CacheLogStore handles cache invalidation log operations. It implements
// revalidate.Recorder.
type CacheLogStore struct {
	db backend.Client
}

// NewCacheLogStore creates a new CacheLogStore.
func NewCacheLogStore(db backend.Client) *CacheLogStore {
	return &CacheLogStore{db: db}
}

// Record stores one invalidation.
func (s *CacheLogStore) Record(ctx context.Context, e revalidate.Entry) error {
	err := guard(func() error {
		_, err := s.db.Insert(ctx, tableCacheLog, backend.Values{
			"entity_type":    e.EntityType,
			"entity_id":      e.EntityID,
			"action":         e.Action,
			"scope":          string(e.Scope),
			"target":         e.Target,
			"invalidated_at": time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("record cache invalidation: %w", err)
	}
	slog.Debug("cache invalidation logged",
		"entity_type", e.EntityType,
		"entity_id", e.EntityID,
		"scope", e.Scope,
		"target", e.Target,
	)
	return nil
}

// Log records a manual invalidation (revalidation endpoint or CLI).
// Logging is best-effort.
func (s *CacheLogStore) Log(ctx context.Context, scope revalidate.Scope, target, source string) {
	err := s.Record(ctx, revalidate.Entry{
		EntityType: "manual",
		Action:     source,
		Scope:      scope,
		Target:     target,
	})
	if err != nil {
		slog.Warn("failed to log cache invalidation", "scope", scope, "target", target, "error", err)
	}
}

// RecentEntries returns the most recent invalidations, newest first.
func (s *CacheLogStore) RecentEntries(ctx context.Context, limit int) ([]CacheLogEntry, error) {
	rows, err := s.db.Select(ctx, backend.From(tableCacheLog).
		Order("invalidated_at", false).
		Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("query cache log: %w", err)
	}

	entries := make([]CacheLogEntry, 0, len(rows))
	for _, row := range rows {
		r := gjson.ParseBytes(row)
		at, _ := time.Parse(time.RFC3339Nano, r.Get("invalidated_at").String())
		entries = append(entries, CacheLogEntry{
			ID:            r.Get("id").String(),
			EntityType:    r.Get("entity_type").String(),
			EntityID:      r.Get("entity_id").String(),
			Action:        r.Get("action").String(),
			Scope:         r.Get("scope").String(),
			Target:        r.Get("target").String(),
			InvalidatedAt: at,
		})
	}
	return entries, nil
}

// CacheLogEntry represents a single cache invalidation event.
type CacheLogEntry struct {
	ID            string    `json:"id"`
	EntityType    string    `json:"entityType"`
	EntityID      string    `json:"entityId"`
	Action        string    `json:"action"`
	Scope         string    `json:"scope"`
	Target        string    `json:"target"`
	InvalidatedAt time.Time `json:"invalidatedAt"`
}
