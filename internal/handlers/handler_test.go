// handler_test.go provides shared test infrastructure for handler tests:
// an in-memory backend seeded with fixtures, a map-backed page cache and
// helpers for chi URL parameters.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"showcase/internal/backend"
	"showcase/internal/cache"
	"showcase/internal/mapper"
	"showcase/internal/retry"
	"showcase/internal/revalidate"
	"showcase/internal/store"
	"showcase/internal/validation"
)

var errBackendDown = errors.New("connection refused")

// memCache is a map-backed cache.Store that also records invalidations.
type memCache struct {
	mu    sync.Mutex
	pages map[string][]byte
	tags  map[string][]string
	Tags  []string
	Paths []string
	All   int
}

var _ cache.Store = (*memCache)(nil)

func newMemCache() *memCache {
	return &memCache{pages: map[string][]byte{}, tags: map[string][]string{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.pages[key]
	return b, ok
}

func (c *memCache) Set(_ context.Context, key string, body []byte, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[key] = body
	for _, t := range tags {
		c.tags[t] = append(c.tags[t], key)
	}
}

func (c *memCache) RevalidateTag(_ context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Tags = append(c.Tags, tag)
	for _, k := range c.tags[tag] {
		delete(c.pages, k)
	}
	delete(c.tags, tag)
	return nil
}

func (c *memCache) RevalidatePath(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Paths = append(c.Paths, path)
	for k := range c.pages {
		if cache.PathOf(k) == path {
			delete(c.pages, k)
		}
	}
	return nil
}

func (c *memCache) RevalidateAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.All++
	c.pages = map[string][]byte{}
	c.tags = map[string][]string{}
	return nil
}

func (c *memCache) cached(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pages[key]
	return ok
}

// failingInserts rejects every write but reads normally.
type failingInserts struct {
	*backend.Memory
}

func (failingInserts) Insert(context.Context, string, backend.Values) (backend.Row, error) {
	return nil, errBackendDown
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	DB         *backend.Memory
	Cache      *memCache
	Stores     Stores
	CacheLog   *store.CacheLogStore
	Public     *Public
	Admin      *Admin
	Revalidate *Revalidate
}

const testSecret = "s3cret"

// newTestEnv wires handlers over a seeded Memory backend. Mutations flow
// through a bus into the page cache and the cache log, as in production.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, nil)
}

func newTestEnvWith(t *testing.T, client backend.Client) *testEnv {
	t.Helper()

	mem := backend.NewMemory()
	seed(mem)
	if client == nil {
		client = mem
	}

	pc := newMemCache()
	cacheLog := store.NewCacheLogStore(mem)
	bus := revalidate.NewBus(
		revalidate.NewInvalidator(pc),
		revalidate.NewAuditListener(cacheLog),
	)
	stores := NewStores(client, mapper.New(nil), bus, retry.Fixed(3, time.Millisecond))

	return &testEnv{
		DB:         mem,
		Cache:      pc,
		Stores:     stores,
		CacheLog:   cacheLog,
		Public:     NewPublic(stores, pc),
		Admin:      NewAdmin(stores, validation.New()),
		Revalidate: NewRevalidate(pc, testSecret, cacheLog),
	}
}

func seed(m *backend.Memory) {
	m.Load("projects",
		`{"id":"p1","title":"Alpha","slug":"alpha","featured":true,"display_order":1,"created_at":"2024-01-01T00:00:00Z","images":["/a1.png","/a2.png"]}`,
		`{"id":"p2","title":"Beta","slug":"beta","featured":false,"display_order":2,"created_at":"2024-02-01T00:00:00Z"}`,
		`{"id":"p3","title":"Gamma","slug":"gamma","featured":true,"display_order":2,"created_at":"2024-03-01T00:00:00Z"}`,
	)
	m.Load("testimonials",
		`{"id":"t1","quote":"Great","author":"Ana","featured":true,"display_order":1,"avatar_url":"/ana.png","created_at":"2024-01-01T00:00:00Z"}`,
		`{"id":"t2","quote":"Solid","author":"Bo","featured":true,"display_order":2,"created_at":"2024-01-02T00:00:00Z"}`,
		`{"id":"t3","quote":"Fine","name":"Cy","featured":true,"display_order":3,"image":"/cy.png","created_at":"2024-01-03T00:00:00Z"}`,
		`{"id":"t4","quote":"Okay","author":"Di","featured":true,"display_order":4,"created_at":"2024-01-04T00:00:00Z"}`,
		`{"id":"t5","quote":"Meh","author":"Ed","featured":false,"display_order":5,"created_at":"2024-01-05T00:00:00Z"}`,
	)
	m.Load("services",
		`{"id":"s1","title":"UX Research","slug":"ux-research","display_order":1}`,
		`{"id":"s2","title":"Product Strategy","slug":"product-strategy","display_order":2}`,
	)
	m.Load("faqs",
		`{"id":"f1","question":"Home?","answer":"**Yes**","display_order":1,"page_slugs":["home","faqs"],"category":"General"}`,
		`{"id":"f2","question":"Services?","answer":"Sure","display_order":2,"page_slugs":["services"]}`,
	)
	m.Load("process_steps",
		`{"id":"ps1","phase_title":"Discovery","display_order":1,"steps":[{"title":"Interviews","description":"Talk"}]}`,
		`{"id":"ps2","phase_title":"Design","display_order":2,"steps":["Prototype"]}`,
	)
}

// withChiURLParams adds chi URL parameters given as key/value pairs.
func withChiURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// formRequest builds a urlencoded POST.
func formRequest(target string, form url.Values) *http.Request {
	r, _ := http.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// redirectQuery parses the status and message of an admin redirect.
func redirectQuery(t *testing.T, location string) (path, status, message string) {
	t.Helper()
	u, err := url.Parse(location)
	if err != nil {
		t.Fatalf("parse Location %q: %v", location, err)
	}
	return u.Path, u.Query().Get("status"), u.Query().Get("message")
}

// failingReads returns an error from every call.
type failingReads struct{}

func (failingReads) Select(context.Context, *backend.Query) ([]backend.Row, error) {
	return nil, errBackendDown
}
func (failingReads) Single(context.Context, *backend.Query) (backend.Row, error) {
	return nil, errBackendDown
}
func (failingReads) Insert(context.Context, string, backend.Values) (backend.Row, error) {
	return nil, errBackendDown
}
func (failingReads) Update(context.Context, *backend.Query, backend.Values) ([]backend.Row, error) {
	return nil, errBackendDown
}
func (failingReads) Delete(context.Context, *backend.Query) ([]backend.Row, error) {
	return nil, errBackendDown
}
func (failingReads) Ping(context.Context) error { return errBackendDown }
