package backend

import (
	"context"
	"errors"
	"testing"
	"time"
)

type flakyPing struct {
	Memory
	failures int
	calls    int
}

func (f *flakyPing) Ping(context.Context) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitReadyRecovers(t *testing.T) {
	c := &flakyPing{failures: 2}
	if err := WaitReady(context.Background(), c, 3, time.Millisecond); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	if c.calls != 3 {
		t.Errorf("expected 3 pings, got %d", c.calls)
	}
}

func TestWaitReadyGivesUp(t *testing.T) {
	c := &flakyPing{failures: 10}
	err := WaitReady(context.Background(), c, 3, time.Millisecond)
	if err == nil {
		t.Fatal("expected error")
	}
	if c.calls != 3 {
		t.Errorf("expected 3 pings, got %d", c.calls)
	}
}
