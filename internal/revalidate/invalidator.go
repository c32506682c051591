// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package revalidate

import (
	"context"
	"log/slog"
)

// Revalidator drops cached responses. The page cache implements it.
type Revalidator interface {
	RevalidateTag(ctx context.Context, tag string) error
	RevalidatePath(ctx context.Context, path string) error
}

// Invalidator is the listener that turns events into revalidation calls.
// Failures are logged and swallowed: the write has already committed and
// stale entries expire with the cache TTL.
type Invalidator struct {
	r Revalidator
}

// NewInvalidator returns an invalidating listener for r.
func NewInvalidator(r Revalidator) *Invalidator {
	return &Invalidator{r: r}
}

// Handle invalidates every tag and path routed for ev.
func (i *Invalidator) Handle(ctx context.Context, ev Event) {
	t := Routes(ev)
	for _, tag := range t.Tags {
		if err := i.r.RevalidateTag(ctx, tag); err != nil {
			slog.Warn("revalidate tag failed", "tag", tag, "type", ev.Type, "id", ev.ID, "error", err)
		}
	}
	for _, path := range t.Paths {
		if err := i.r.RevalidatePath(ctx, path); err != nil {
			slog.Warn("revalidate path failed", "path", path, "type", ev.Type, "id", ev.ID, "error", err)
		}
	}
}
