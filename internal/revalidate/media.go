// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package revalidate

import (
	"context"
	"log/slog"
)

// ObjectStore is the part of object storage the media listener needs.
type ObjectStore interface {
	// ExtractKey returns the object key for a public URL or key, and false
	// when the reference does not belong to this store.
	ExtractKey(ref string) (string, bool)
	Delete(ctx context.Context, key string) error
}

// Referencer lists the image references still held by stored records.
type Referencer interface {
	ImageRefs(ctx context.Context) ([]string, error)
}

// MediaListener deletes the stored images of deleted records once no other
// record references them. References pointing elsewhere (external URLs,
// static assets) are left alone.
type MediaListener struct {
	objects ObjectStore
	refs    Referencer
}

// NewMediaListener returns a listener deleting from objects the keys that
// refs no longer reports.
func NewMediaListener(objects ObjectStore, refs Referencer) *MediaListener {
	return &MediaListener{objects: objects, refs: refs}
}

// Handle removes the unreferenced keys of ev.Images for delete events. When
// the remaining references cannot be listed nothing is deleted.
func (m *MediaListener) Handle(ctx context.Context, ev Event) {
	if ev.Action != ActionDelete {
		return
	}

	var keys []string
	seen := map[string]bool{}
	for _, ref := range ev.Images {
		key, ok := m.objects.ExtractKey(ref)
		if ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}

	inUse, err := m.inUse(ctx)
	if err != nil {
		slog.Warn("keeping images, references unavailable", "type", ev.Type, "id", ev.ID, "keys", keys, "error", err)
		return
	}

	for _, key := range keys {
		if inUse[key] {
			slog.Debug("image still referenced", "type", ev.Type, "id", ev.ID, "key", key)
			continue
		}
		if err := m.objects.Delete(ctx, key); err != nil {
			slog.Warn("failed to delete image", "type", ev.Type, "id", ev.ID, "key", key, "error", err)
			continue
		}
		slog.Info("image deleted", "type", ev.Type, "id", ev.ID, "key", key)
	}
}

// inUse returns the object keys referenced by the remaining records.
func (m *MediaListener) inUse(ctx context.Context) (map[string]bool, error) {
	refs, err := m.refs.ImageRefs(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if key, ok := m.objects.ExtractKey(ref); ok {
			out[key] = true
		}
	}
	return out, nil
}
