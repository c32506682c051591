// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package revalidate

import (
	"context"
	"log/slog"
)

// Scope tells whether an audit entry invalidated a tag or a path.
type Scope string

const (
	ScopeTag  Scope = "tag"
	ScopePath Scope = "path"
	ScopeAll  Scope = "all"
)

// Entry is one invalidation as recorded in the audit log.
type Entry struct {
	EntityType string
	EntityID   string
	Action     string
	Scope      Scope
	Target     string
}

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// AuditListener records every invalidation routed for an event.
type AuditListener struct {
	rec Recorder
}

// NewAuditListener returns a listener writing to rec.
func NewAuditListener(rec Recorder) *AuditListener {
	return &AuditListener{rec: rec}
}

// Handle records one entry per tag and path. Recording is best-effort.
func (a *AuditListener) Handle(ctx context.Context, ev Event) {
	t := Routes(ev)
	entries := make([]Entry, 0, len(t.Tags)+len(t.Paths))
	for _, tag := range t.Tags {
		entries = append(entries, Entry{Scope: ScopeTag, Target: tag})
	}
	for _, path := range t.Paths {
		entries = append(entries, Entry{Scope: ScopePath, Target: path})
	}
	for _, e := range entries {
		e.EntityType = string(ev.Type)
		e.EntityID = ev.ID
		e.Action = string(ev.Action)
		if err := a.rec.Record(ctx, e); err != nil {
			slog.Warn("failed to record cache invalidation",
				"entity_type", e.EntityType,
				"entity_id", e.EntityID,
				"target", e.Target,
				"error", err,
			)
		}
	}
}
