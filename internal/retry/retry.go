// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package retry provides a small bounded-retry combinator used by lookups
// that talk to the content backend. A Policy fixes the attempt budget, the
// delay between attempts and which errors are worth another try.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// DefaultDelay is the pause between attempts used by content lookups.
const DefaultDelay = time.Second

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	// Attempts is the total number of calls, including the first one.
	Attempts int
	// Delay is the pause between attempts. With Exponential set it is the
	// first pause and doubles after every failure.
	Delay       time.Duration
	Exponential bool
	// Retryable decides whether an error warrants another attempt. A nil
	// Retryable retries every error except context cancellation.
	Retryable func(error) bool
}

// Fixed returns a policy with a constant delay between attempts.
func Fixed(attempts int, delay time.Duration) Policy {
	return Policy{Attempts: attempts, Delay: delay}
}

// Exponential returns a policy whose delay doubles after each failure.
func Exponential(attempts int, base time.Duration) Policy {
	return Policy{Attempts: attempts, Delay: base, Exponential: true}
}

// Only returns a copy of p that retries only errors accepted by fn.
func (p Policy) Only(fn func(error) bool) Policy {
	p.Retryable = fn
	return p
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// attempt budget is spent. It returns the number of calls made and the last
// error seen (nil on success).
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) (int, error) {
	attempts := 0
	err := goretry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempts++
		err := fn(ctx, attempts)
		if err == nil {
			return nil
		}
		if !p.retryable(err) {
			return err
		}
		if attempts < p.attempts() {
			slog.Debug("attempt failed, retrying",
				"attempt", attempts,
				"max_attempts", p.attempts(),
				"delay", p.Delay.String(),
				"error", err,
			)
		}
		return goretry.RetryableError(err)
	})
	return attempts, err
}

// Value is Do for operations that produce a result. The result of the
// successful call is returned; on failure it is the zero value.
func Value[T any](ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) (T, error)) (T, int, error) {
	var out T
	n, err := p.Do(ctx, func(ctx context.Context, attempt int) error {
		v, err := fn(ctx, attempt)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, n, err
	}
	return out, n, nil
}

func (p Policy) attempts() int {
	if p.Attempts < 1 {
		return 1
	}
	return p.Attempts
}

func (p Policy) retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if p.Retryable == nil {
		return true
	}
	return p.Retryable(err)
}

// backoff builds the go-retry schedule. go-retry counts retries, not calls,
// so the budget is Attempts-1.
func (p Policy) backoff() goretry.Backoff {
	delay := p.Delay
	if delay <= 0 {
		delay = time.Nanosecond
	}
	var b goretry.Backoff
	if p.Exponential {
		b = goretry.NewExponential(delay)
	} else {
		b = goretry.NewConstant(delay)
	}
	return goretry.WithMaxRetries(uint64(p.attempts()-1), b)
}
