// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package revalidate turns committed content mutations into cache
// invalidation. Stores publish an Event after a write succeeds; listeners
// subscribed to the Bus decide what to do with it (invalidate cached
// responses, audit, clean up stored images). A failed write publishes
// nothing.
package revalidate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"showcase/internal/models"
)

// Action is the kind of mutation that produced an event.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event describes one committed mutation.
type Event struct {
	Type   models.ContentType
	Action Action
	ID     string
	// Slug is the record's slug after the write (before it, for deletes).
	Slug string
	// PreviousSlug is set when an update changed the slug.
	PreviousSlug string
	// Pages lists the page slugs an FAQ is shown on.
	Pages []string
	// Images lists the image references a deleted record owned.
	Images []string
	At     time.Time
}

// Listener reacts to committed mutations. Handle must not block for long;
// it runs on the request path of the mutation.
type Listener interface {
	Handle(ctx context.Context, ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, ev Event)

// Handle calls f.
func (f ListenerFunc) Handle(ctx context.Context, ev Event) { f(ctx, ev) }

// Publisher is what stores depend on to announce writes.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Bus fans an event out to every subscribed listener, in subscription
// order. A panicking listener is logged and does not stop the others.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewBus returns a bus with the given listeners subscribed.
func NewBus(listeners ...Listener) *Bus {
	return &Bus{listeners: listeners}
}

// Subscribe adds a listener.
func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	b.listeners = append(b.listeners, l)
	b.mu.Unlock()
}

// Publish delivers ev synchronously to every listener.
func (b *Bus) Publish(ctx context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners...)
	b.mu.RUnlock()

	slog.Debug("content changed",
		"type", ev.Type,
		"action", ev.Action,
		"id", ev.ID,
		"listeners", len(listeners),
	)
	for _, l := range listeners {
		deliver(ctx, l, ev)
	}
}

func deliver(ctx context.Context, l Listener, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("revalidation listener panicked",
				"type", ev.Type,
				"action", ev.Action,
				"id", ev.ID,
				"panic", rec,
			)
		}
	}()
	l.Handle(ctx, ev)
}

// Discard is a Publisher that drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Event) {}
