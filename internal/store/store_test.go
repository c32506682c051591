// store_test.go provides the shared helpers for store tests: stub backends
// that fail or panic on demand, a recording publisher, and a PostgreSQL
// helper for integration tests (skipped if PostgreSQL is not available).
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"showcase/internal/backend"
	"showcase/internal/database"
	"showcase/internal/retry"
	"showcase/internal/revalidate"
)

// fastRetry keeps retry tests quick while preserving the attempt budget.
var fastRetry = retry.Fixed(3, 5*time.Millisecond)

var errBackendDown = errors.New("connection refused")

// flaky wraps a Memory backend and fails the first failures calls to Single.
type flaky struct {
	*backend.Memory
	mu       sync.Mutex
	failures int
	calls    int
}

func (f *flaky) Single(ctx context.Context, q *backend.Query) (backend.Row, error) {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()
	if fail {
		return nil, errBackendDown
	}
	return f.Memory.Single(ctx, q)
}

func (f *flaky) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// broken returns an error from every call.
type broken struct{}

func (broken) Select(context.Context, *backend.Query) ([]backend.Row, error) {
	return nil, errBackendDown
}
func (broken) Single(context.Context, *backend.Query) (backend.Row, error) {
	return nil, errBackendDown
}
func (broken) Insert(context.Context, string, backend.Values) (backend.Row, error) {
	return nil, errBackendDown
}
func (broken) Update(context.Context, *backend.Query, backend.Values) ([]backend.Row, error) {
	return nil, errBackendDown
}
func (broken) Delete(context.Context, *backend.Query) ([]backend.Row, error) {
	return nil, errBackendDown
}
func (broken) Ping(context.Context) error { return errBackendDown }

// panicky panics from every call.
type panicky struct{}

func (panicky) Select(context.Context, *backend.Query) ([]backend.Row, error) {
	panic("driver exploded")
}
func (panicky) Single(context.Context, *backend.Query) (backend.Row, error) {
	panic("driver exploded")
}
func (panicky) Insert(context.Context, string, backend.Values) (backend.Row, error) {
	panic("driver exploded")
}
func (panicky) Update(context.Context, *backend.Query, backend.Values) ([]backend.Row, error) {
	panic("driver exploded")
}
func (panicky) Delete(context.Context, *backend.Query) ([]backend.Row, error) {
	panic("driver exploded")
}
func (panicky) Ping(context.Context) error { panic("driver exploded") }

// events records published events.
type events struct {
	mu  sync.Mutex
	got []revalidate.Event
}

func (e *events) Publish(_ context.Context, ev revalidate.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.got = append(e.got, ev)
}

func (e *events) all() []revalidate.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]revalidate.Event(nil), e.got...)
}

// calls records revalidation requests.
type calls struct {
	mu    sync.Mutex
	tags  []string
	paths []string
}

func (c *calls) RevalidateTag(_ context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags = append(c.tags, tag)
	return nil
}

func (c *calls) RevalidatePath(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, path)
	return nil
}

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "showcase")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "showcase")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanRows removes test rows by id. Call in t.Cleanup().
func cleanRows(db *sql.DB, table string, ids ...string) {
	for _, id := range ids {
		db.Exec("DELETE FROM "+table+" WHERE id::text = $1", id)
	}
}

func fastRetryWith(delay time.Duration) retry.Policy {
	return retry.Fixed(3, delay)
}
