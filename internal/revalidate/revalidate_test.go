package revalidate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"showcase/internal/models"
)

// recorder captures revalidation calls in order.
type recorder struct {
	mu    sync.Mutex
	calls []string
	fail  bool
}

func (r *recorder) RevalidateTag(_ context.Context, tag string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "tag:"+tag)
	if r.fail {
		return errors.New("cache down")
	}
	return nil
}

func (r *recorder) RevalidatePath(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "path:"+path)
	if r.fail {
		return errors.New("cache down")
	}
	return nil
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want Targets
	}{
		{
			name: "project with slug",
			ev:   Event{Type: models.ContentTypeProject, Slug: "health-track"},
			want: Targets{
				Tags:  []string{"projects"},
				Paths: []string{"/", "/work", "/api/projects", "/work/health-track", "/api/projects/health-track"},
			},
		},
		{
			name: "project without slug",
			ev:   Event{Type: models.ContentTypeProject},
			want: Targets{Tags: []string{"projects"}, Paths: []string{"/", "/work", "/api/projects"}},
		},
		{
			name: "project renamed",
			ev:   Event{Type: models.ContentTypeProject, Slug: "new", PreviousSlug: "old"},
			want: Targets{
				Tags:  []string{"projects"},
				Paths: []string{"/", "/work", "/api/projects", "/work/new", "/api/projects/new", "/work/old", "/api/projects/old"},
			},
		},
		{
			name: "testimonial",
			ev:   Event{Type: models.ContentTypeTestimonial, ID: "t1"},
			want: Targets{Tags: []string{"testimonials"}, Paths: []string{"/testimonials"}},
		},
		{
			name: "service",
			ev:   Event{Type: models.ContentTypeService, Slug: "ux-research"},
			want: Targets{Tags: []string{"services"}, Paths: []string{"/services", "/services/ux-research"}},
		},
		{
			name: "faq with pages",
			ev:   Event{Type: models.ContentTypeFAQ, Pages: []string{"home", " /services/ ", ""}},
			want: Targets{Tags: []string{"faqs"}, Paths: []string{"/faqs", "/home", "/services"}},
		},
		{
			name: "process",
			ev:   Event{Type: models.ContentTypeProcess},
			want: Targets{Tags: []string{"process"}, Paths: []string{"/process"}},
		},
		{
			name: "unknown type",
			ev:   Event{Type: "users"},
			want: Targets{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Routes(tt.ev)); diff != "" {
				t.Errorf("Routes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInvalidatorCallsTagsThenPaths(t *testing.T) {
	rec := &recorder{}
	NewInvalidator(rec).Handle(context.Background(), Event{
		Type:   models.ContentTypeTestimonial,
		Action: ActionCreate,
		ID:     "t1",
	})

	want := []string{"tag:testimonials", "path:/testimonials"}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidatorSwallowsFailures(t *testing.T) {
	rec := &recorder{fail: true}
	NewInvalidator(rec).Handle(context.Background(), Event{Type: models.ContentTypeService, Slug: "audit"})

	// Every target is still attempted after the first failure.
	if len(rec.calls) != 3 {
		t.Errorf("expected 3 attempted calls, got %v", rec.calls)
	}
}

func TestBusDeliversInOrderAndSurvivesPanics(t *testing.T) {
	var got []string
	bus := NewBus(
		ListenerFunc(func(_ context.Context, ev Event) { got = append(got, "first:"+ev.ID) }),
		ListenerFunc(func(context.Context, Event) { panic("boom") }),
	)
	bus.Subscribe(ListenerFunc(func(_ context.Context, ev Event) {
		got = append(got, "third:"+ev.ID)
		if ev.At.IsZero() {
			t.Error("expected event timestamp to be set")
		}
	}))

	bus.Publish(context.Background(), Event{Type: models.ContentTypeFAQ, ID: "f1"})

	if diff := cmp.Diff([]string{"first:f1", "third:f1"}, got); diff != "" {
		t.Errorf("delivery mismatch (-want +got):\n%s", diff)
	}
}

type memRecorder struct {
	entries []Entry
	err     error
}

func (m *memRecorder) Record(_ context.Context, e Entry) error {
	m.entries = append(m.entries, e)
	return m.err
}

func TestAuditListenerRecordsEachTarget(t *testing.T) {
	rec := &memRecorder{}
	NewAuditListener(rec).Handle(context.Background(), Event{
		Type:   models.ContentTypeProcess,
		Action: ActionUpdate,
		ID:     "p1",
	})

	want := []Entry{
		{EntityType: "process_steps", EntityID: "p1", Action: "update", Scope: ScopeTag, Target: "process"},
		{EntityType: "process_steps", EntityID: "p1", Action: "update", Scope: ScopePath, Target: "/process"},
	}
	if diff := cmp.Diff(want, rec.entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestAuditListenerContinuesOnError(t *testing.T) {
	rec := &memRecorder{err: errors.New("db down")}
	NewAuditListener(rec).Handle(context.Background(), Event{Type: models.ContentTypeTestimonial, ID: "t1"})
	if len(rec.entries) != 2 {
		t.Errorf("expected 2 attempts, got %d", len(rec.entries))
	}
}

type fakeObjects struct {
	deleted []string
}

func (f *fakeObjects) ExtractKey(ref string) (string, bool) {
	const base = "https://cdn.example/"
	if !strings.HasPrefix(ref, base) {
		return "", false
	}
	return strings.TrimPrefix(ref, base), true
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

// staticRefs reports a fixed set of live image references.
type staticRefs struct {
	refs []string
	err  error
}

func (r staticRefs) ImageRefs(context.Context) ([]string, error) { return r.refs, r.err }

func TestMediaListener(t *testing.T) {
	objs := &fakeObjects{}
	l := NewMediaListener(objs, staticRefs{})
	images := []string{"https://cdn.example/projects/a.png", "https://elsewhere.example/b.png", "/static/c.png", "https://cdn.example/projects/a.png"}

	l.Handle(context.Background(), Event{Type: models.ContentTypeProject, Action: ActionUpdate, Images: images})
	if len(objs.deleted) != 0 {
		t.Fatalf("update should not delete images, got %v", objs.deleted)
	}

	l.Handle(context.Background(), Event{Type: models.ContentTypeProject, Action: ActionDelete, Images: images})
	if diff := cmp.Diff([]string{"projects/a.png"}, objs.deleted); diff != "" {
		t.Errorf("deleted mismatch (-want +got):\n%s", diff)
	}
}

func TestMediaListenerKeepsSharedImages(t *testing.T) {
	objs := &fakeObjects{}
	l := NewMediaListener(objs, staticRefs{refs: []string{"https://cdn.example/team/shared.png"}})

	l.Handle(context.Background(), Event{
		Type:   models.ContentTypeTestimonial,
		Action: ActionDelete,
		Images: []string{"https://cdn.example/team/shared.png", "https://cdn.example/team/own.png"},
	})
	if diff := cmp.Diff([]string{"team/own.png"}, objs.deleted); diff != "" {
		t.Errorf("deleted mismatch (-want +got):\n%s", diff)
	}
}

func TestMediaListenerKeepsImagesWhenReferencesFail(t *testing.T) {
	objs := &fakeObjects{}
	l := NewMediaListener(objs, staticRefs{err: errors.New("db down")})

	l.Handle(context.Background(), Event{
		Type:   models.ContentTypeProject,
		Action: ActionDelete,
		Images: []string{"https://cdn.example/projects/a.png"},
	})
	if len(objs.deleted) != 0 {
		t.Errorf("nothing should be deleted without a reference list, got %v", objs.deleted)
	}
}

func TestDiscard(t *testing.T) {
	Discard.Publish(context.Background(), Event{Type: models.ContentTypeProject})
}
