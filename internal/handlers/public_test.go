package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"showcase/internal/backend"
	"showcase/internal/models"
)

func get(t *testing.T, h http.HandlerFunc, target string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if len(params) > 0 {
		req = withChiURLParams(req, params...)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return v
}

func projectSlugs(ps []models.Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Slug)
	}
	return out
}

func TestProjectsOrdered(t *testing.T) {
	env := newTestEnv(t)

	rec := get(t, env.Public.Projects, "/api/projects")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}

	got := projectSlugs(decode[[]models.Project](t, rec))
	want := []string{"alpha", "gamma", "beta"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFeaturedProjectsLimit(t *testing.T) {
	env := newTestEnv(t)

	got := projectSlugs(decode[[]models.Project](t, get(t, env.Public.FeaturedProjects, "/api/projects/featured?limit=1")))
	if diff := cmp.Diff([]string{"alpha"}, got); diff != "" {
		t.Errorf("featured mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectBySlug(t *testing.T) {
	env := newTestEnv(t)

	rec := get(t, env.Public.Project, "/api/projects/alpha", "slug", "alpha")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	p := decode[models.Project](t, rec)
	if p.Title != "Alpha" {
		t.Errorf("title: got %q, want Alpha", p.Title)
	}
	if p.HeroImage() != "/a1.png" {
		t.Errorf("hero image: got %q, want /a1.png", p.HeroImage())
	}
}

func TestProjectBySlugNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := get(t, env.Public.Project, "/api/projects/missing", "slug", "missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
	if env.Cache.cached("/api/projects/missing") {
		t.Error("a 404 must not be cached")
	}
}

func TestRelatedProjectsExcludeCurrent(t *testing.T) {
	env := newTestEnv(t)

	got := projectSlugs(decode[[]models.Project](t, get(t, env.Public.RelatedProjects, "/api/projects/alpha/related", "slug", "alpha")))
	if diff := cmp.Diff([]string{"gamma", "beta"}, got); diff != "" {
		t.Errorf("related mismatch (-want +got):\n%s", diff)
	}

	rec := get(t, env.Public.RelatedProjects, "/api/projects/nope/related", "slug", "nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown slug: got %d, want 404", rec.Code)
	}
}

func TestTestimonialEndpoints(t *testing.T) {
	env := newTestEnv(t)

	all := decode[[]models.Testimonial](t, get(t, env.Public.Testimonials, "/api/testimonials"))
	if len(all) != 5 {
		t.Errorf("all testimonials: got %d, want 5", len(all))
	}

	featured := decode[[]models.Testimonial](t, get(t, env.Public.FeaturedTestimonials, "/api/testimonials/featured"))
	if len(featured) != 3 {
		t.Errorf("featured default limit: got %d, want 3", len(featured))
	}

	withImages := decode[[]models.Testimonial](t, get(t, env.Public.FeaturedTestimonialsWithImages, "/api/testimonials/featured/with-images"))
	var ids []string
	for _, tm := range withImages {
		ids = append(ids, tm.ID)
		if tm.Name != tm.Author {
			t.Errorf("%s: name %q differs from author %q", tm.ID, tm.Name, tm.Author)
		}
	}
	if diff := cmp.Diff([]string{"t1", "t3"}, ids); diff != "" {
		t.Errorf("with images mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceEndpoints(t *testing.T) {
	env := newTestEnv(t)

	list := decode[[]models.Service](t, get(t, env.Public.Services, "/api/services"))
	if len(list) != 2 {
		t.Fatalf("services: got %d, want 2", len(list))
	}
	if list[0].IconName == "" {
		t.Error("service icon should be derived when not stored")
	}

	rec := get(t, env.Public.Service, "/api/services/ux-research", "slug", "ux-research")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	rec = get(t, env.Public.Service, "/api/services/none", "slug", "none")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing service: got %d, want 404", rec.Code)
	}
}

func TestFAQFilters(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		target string
		want   []string
	}{
		{"/api/faqs", []string{"f1", "f2"}},
		{"/api/faqs?page=services", []string{"f2"}},
		{"/api/faqs?category=General", []string{"f1"}},
		{"/api/faqs?page=unknown", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			faqs := decode[[]models.FAQ](t, get(t, env.Public.FAQs, tt.target))
			got := []string{}
			for _, f := range faqs {
				got = append(got, f.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcessEndpoints(t *testing.T) {
	env := newTestEnv(t)

	steps := decode[[]models.ProcessStep](t, get(t, env.Public.ProcessSteps, "/api/process"))
	if len(steps) != 2 {
		t.Fatalf("process steps: got %d, want 2", len(steps))
	}
	if steps[1].Steps[0].Title != "Prototype" {
		t.Errorf("plain string step: got %+v", steps[1].Steps)
	}

	rec := get(t, env.Public.ProcessStep, "/api/process/ps1", "id", "ps1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if got := decode[models.ProcessStep](t, rec).PhaseTitle; got != "Discovery" {
		t.Errorf("phase title: got %q, want Discovery", got)
	}
}

func TestHomeAggregatesSections(t *testing.T) {
	env := newTestEnv(t)

	home := decode[homePage](t, get(t, env.Public.Home, "/api/home"))

	if diff := cmp.Diff([]string{"alpha", "gamma"}, projectSlugs(home.Projects)); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}
	if len(home.Testimonials) != 3 {
		t.Errorf("testimonials: got %d, want 3", len(home.Testimonials))
	}
	if len(home.Services) != 2 || len(home.Process) != 2 {
		t.Errorf("services/process: got %d/%d, want 2/2", len(home.Services), len(home.Process))
	}
	if len(home.FAQs) != 1 || home.FAQs[0].ID != "f1" {
		t.Errorf("home FAQs: got %+v", home.FAQs)
	}
}

func TestHomeSurvivesBrokenBackend(t *testing.T) {
	env := newTestEnvWith(t, failingReads{})

	rec := get(t, env.Public.Home, "/api/home")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	home := decode[homePage](t, rec)
	if home.Projects == nil || len(home.Projects) != 0 {
		t.Errorf("projects should be an empty list, got %#v", home.Projects)
	}
}

func TestFailedReadsAreNotCached(t *testing.T) {
	env := newTestEnvWith(t, failingReads{})

	for _, target := range []string{"/api/home", "/api/projects"} {
		h := env.Public.Home
		if target == "/api/projects" {
			h = env.Public.Projects
		}
		rec := get(t, h, target)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status: got %d, want 200", target, rec.Code)
		}
		if env.Cache.cached(target) {
			t.Errorf("%s: empty fallback was stored in the page cache", target)
		}
		if again := get(t, h, target); again.Header().Get("X-Cache") != "MISS" {
			t.Errorf("%s: second request X-Cache = %q, want MISS", target, again.Header().Get("X-Cache"))
		}
	}
}

func TestEmptyListsAreCached(t *testing.T) {
	env := newTestEnvWith(t, backend.NewMemory())

	get(t, env.Public.Projects, "/api/projects")
	if !env.Cache.cached("/api/projects") {
		t.Error("a genuinely empty list should still be cached")
	}
}

func TestResponsesAreCached(t *testing.T) {
	env := newTestEnv(t)

	first := get(t, env.Public.Services, "/api/services")
	if first.Header().Get("X-Cache") != "MISS" {
		t.Errorf("first request: X-Cache = %q, want MISS", first.Header().Get("X-Cache"))
	}
	second := get(t, env.Public.Services, "/api/services")
	if second.Header().Get("X-Cache") != "HIT" {
		t.Errorf("second request: X-Cache = %q, want HIT", second.Header().Get("X-Cache"))
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from original")
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		target string
		want   int
	}{
		{"/x", 7},
		{"/x?limit=3", 3},
		{"/x?limit=0", 7},
		{"/x?limit=-2", 7},
		{"/x?limit=abc", 7},
		{"/x?limit=%205%20", 5},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.target, nil)
		if got := queryInt(r, "limit", 7); got != tt.want {
			t.Errorf("queryInt(%q) = %d, want %d", tt.target, got, tt.want)
		}
	}
}
