// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import "context"

// Noop is the Store used when Valkey is not configured. Every lookup
// misses and revalidation always succeeds.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool)     { return nil, false }
func (Noop) Set(context.Context, string, []byte, ...string) {}
func (Noop) RevalidateTag(context.Context, string) error    { return nil }
func (Noop) RevalidatePath(context.Context, string) error   { return nil }
func (Noop) RevalidateAll(context.Context) error            { return nil }
