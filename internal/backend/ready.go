// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"showcase/internal/retry"
)

// WaitReady pings c with exponential backoff until it answers or the
// attempt budget is spent. It is used at startup so the server does not
// accept traffic before the content database is reachable.
func WaitReady(ctx context.Context, c Client, attempts int, base time.Duration) error {
	n, err := retry.Exponential(attempts, base).Do(ctx, func(ctx context.Context, attempt int) error {
		return c.Ping(ctx)
	})
	if err != nil {
		return fmt.Errorf("backend not ready after %d attempts: %w", n, err)
	}
	if n > 1 {
		slog.Info("backend ready", "attempts", n)
	}
	return nil
}
