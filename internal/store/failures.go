// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"sync/atomic"
)

// Failures counts the reads that fell back to a safe default while serving
// one request. The accessors still return empty values; the count lets a
// caller avoid caching a response built from them.
type Failures struct {
	n atomic.Int64
}

type failuresKey struct{}

// TrackFailures returns a context that counts read failures into the
// returned Failures.
func TrackFailures(ctx context.Context) (context.Context, *Failures) {
	f := &Failures{}
	return context.WithValue(ctx, failuresKey{}, f), f
}

// Count returns the number of failed reads so far.
func (f *Failures) Count() int64 {
	if f == nil {
		return 0
	}
	return f.n.Load()
}

func noteFailure(ctx context.Context) {
	if f, ok := ctx.Value(failuresKey{}).(*Failures); ok {
		f.n.Add(1)
	}
}
