package mapper

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"showcase/internal/models"
)

var malformed = []string{
	"",
	"null",
	"42",
	`"text"`,
	"[]",
	"[{}]",
	"{",
	`{"id":`,
	"{}",
	`{"id":{"nested":true},"title":[1,2],"images":{"a":1},"process":42,"steps":true}`,
	`{"display_order":"soon","featured":"maybe","created_at":"yesterday"}`,
	`{"tags":null,"outcomes":null,"page_slugs":null,"key_results":null}`,
	"\x00\xff\xfe",
}

func TestMappersAreTotal(t *testing.T) {
	for _, in := range malformed {
		row := []byte(in)

		p := Project(row)
		if p.Outcomes == nil || p.Process == nil || p.Images == nil || p.Tags == nil || p.Tools == nil || p.Categories == nil {
			t.Errorf("Project(%q) returned nil slices: %+v", in, p)
		}
		tm := Testimonial(row)
		if tm.Name != tm.Author {
			t.Errorf("Testimonial(%q): name %q != author %q", in, tm.Name, tm.Author)
		}
		s := Service(row)
		if s.Deliverables == nil || s.BusinessOutcomes == nil || s.IconName == "" {
			t.Errorf("Service(%q) not fully defaulted: %+v", in, s)
		}
		f := FAQ(row)
		if f.PageSlugs == nil {
			t.Errorf("FAQ(%q) returned nil page slugs", in)
		}
		ps := ProcessStep(row)
		if ps.Steps == nil || ps.Outputs == nil || ps.KeyResults == nil {
			t.Errorf("ProcessStep(%q) returned nil slices: %+v", in, ps)
		}
	}
}

func TestEmptyRowDefaults(t *testing.T) {
	got := Project([]byte(`{}`))
	want := models.Project{
		Outcomes:   []string{},
		Process:    []models.ProjectPhase{},
		Images:     []string{},
		Tags:       []string{},
		Tools:      []string{},
		Categories: []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Project({}) mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectFullRow(t *testing.T) {
	row := `{
		"id": "p1",
		"title": "HealthTrack Mobile App",
		"description": "Tracking health metrics.",
		"slug": "health-track-app",
		"client": "HealthTech Inc.",
		"year": 2023,
		"role": "Lead Designer",
		"duration": "4 months",
		"challenge": "Make **tracking** easy.",
		"solution": "A dashboard.",
		"outcomes": "Higher adherence",
		"process": {"phase": "Discovery", "description": "Interviews"},
		"images": ["/hero.png", "/discovery.png"],
		"tags": "{\"UX Research\",Mobile App}",
		"tools": "[\"Figma\", \"Maze\"]",
		"categories": "Healthcare, Mobile",
		"featured": "t",
		"scheduled": false,
		"thumbnailUrl": "/thumb.png",
		"external_url": "https://healthtrack.example",
		"display_order": "2",
		"created_at": "2026-03-01 10:00:00+00",
		"updated_at": "2026-03-02T10:00:00Z"
	}`

	got := Project([]byte(row))

	want := models.Project{
		ID:           "p1",
		Title:        "HealthTrack Mobile App",
		Description:  "Tracking health metrics.",
		Slug:         "health-track-app",
		Client:       "HealthTech Inc.",
		Year:         "2023",
		Role:         "Lead Designer",
		Duration:     "4 months",
		Challenge:    "Make **tracking** easy.",
		Solution:     "A dashboard.",
		Outcomes:     []string{"Higher adherence"},
		Process:      []models.ProjectPhase{{Phase: "Discovery", Description: "Interviews"}},
		Images:       []string{"/hero.png", "/discovery.png"},
		Tags:         []string{"UX Research", "Mobile App"},
		Tools:        []string{"Figma", "Maze"},
		Categories:   []string{"Healthcare", "Mobile"},
		Featured:     true,
		ThumbnailURL: "/thumb.png",
		ExternalURL:  "https://healthtrack.example",
		DisplayOrder: 2,
		CreatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	opts := cmpopts.IgnoreFields(models.Project{}, "ChallengeHTML", "SolutionHTML")
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("Project mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(got.ChallengeHTML, "<strong>tracking</strong>") {
		t.Errorf("ChallengeHTML = %q", got.ChallengeHTML)
	}
	if got.HeroImage() != "/hero.png" || got.PhaseImage(models.PhaseDiscovery) != "/discovery.png" || got.PhaseImage(models.PhaseDesign) != "" {
		t.Errorf("image helpers: hero=%q discovery=%q design=%q",
			got.HeroImage(), got.PhaseImage(models.PhaseDiscovery), got.PhaseImage(models.PhaseDesign))
	}
}

func TestTestimonialAliases(t *testing.T) {
	tests := []struct {
		name       string
		row        string
		wantImage  string
		wantAuthor string
	}{
		{
			name:       "avatar_url wins over image",
			row:        `{"author":"Ana","avatar_url":"/a.png","image":"/old.png"}`,
			wantImage:  "/a.png",
			wantAuthor: "Ana",
		},
		{
			name:       "image used when avatar_url empty",
			row:        `{"author":"Ana","avatar_url":"","image":"/old.png"}`,
			wantImage:  "/old.png",
			wantAuthor: "Ana",
		},
		{
			name:       "image used when avatar_url null",
			row:        `{"author":"Ana","avatar_url":null,"image":"/old.png"}`,
			wantImage:  "/old.png",
			wantAuthor: "Ana",
		},
		{
			name:       "name column when author missing",
			row:        `{"name":"Bo"}`,
			wantAuthor: "Bo",
		},
		{
			name:       "nothing set",
			row:        `{}`,
			wantImage:  "",
			wantAuthor: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Testimonial([]byte(tt.row))
			if got.Image != tt.wantImage {
				t.Errorf("Image = %q, want %q", got.Image, tt.wantImage)
			}
			if got.Author != tt.wantAuthor || got.Name != tt.wantAuthor {
				t.Errorf("Author/Name = %q/%q, want %q", got.Author, got.Name, tt.wantAuthor)
			}
			if got.HasImage() != (tt.wantImage != "") {
				t.Errorf("HasImage() = %v", got.HasImage())
			}
		})
	}
}

func TestCoercions(t *testing.T) {
	t.Run("display order", func(t *testing.T) {
		for row, want := range map[string]int{
			`{"display_order":3}`:     3,
			`{"display_order":"4"}`:   4,
			`{"display_order":"5.0"}`: 5,
			`{"displayOrder":6}`:      6,
			`{"sort_order":7}`:        7,
			`{"display_order":null}`:  0,
			`{"display_order":"x"}`:   0,
		} {
			if got := FAQ([]byte(row)).DisplayOrder; got != want {
				t.Errorf("%s: DisplayOrder = %d, want %d", row, got, want)
			}
		}
	})

	t.Run("booleans", func(t *testing.T) {
		for row, want := range map[string]bool{
			`{"featured":true}`:    true,
			`{"featured":"true"}`:  true,
			`{"featured":"t"}`:     true,
			`{"featured":1}`:       true,
			`{"featured":"1"}`:     true,
			`{"featured":false}`:   false,
			`{"featured":"false"}`: false,
			`{"featured":0}`:       false,
			`{"featured":null}`:    false,
		} {
			if got := Service([]byte(row)).Featured; got != want {
				t.Errorf("%s: Featured = %v, want %v", row, got, want)
			}
		}
	})

	t.Run("string lists", func(t *testing.T) {
		tests := []struct {
			row  string
			want []string
		}{
			{`{"key_results":["a","b"]}`, []string{"a", "b"}},
			{`{"key_results":"single"}`, []string{"single"}},
			{`{"key_results":"a, b ,c"}`, []string{"a", "b", "c"}},
			{`{"key_results":"[\"x\",\"y\"]"}`, []string{"x", "y"}},
			{`{"key_results":["a","",null,"  "]}`, []string{"a"}},
			{`{"key_results":""}`, []string{}},
			{`{"keyResults":["camel"]}`, []string{"camel"}},
		}
		for _, tt := range tests {
			got := ProcessStep([]byte(tt.row)).KeyResults
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%s (-want +got):\n%s", tt.row, diff)
			}
		}
	})
}

func TestProcessStepSteps(t *testing.T) {
	row := `{
		"phase_title": "Discovery",
		"steps": [
			{"title": "Stakeholder interviews", "description": "Align on goals"},
			"Competitive review",
			{},
			42
		]
	}`
	got := ProcessStep([]byte(row)).Steps
	want := []models.ProcessStepItem{
		{Title: "Stakeholder interviews", Description: "Align on goals"},
		{Title: "Competitive review"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestFAQRendersAnswer(t *testing.T) {
	got := FAQ([]byte(`{"question":"How long?","answer":"About *six* weeks.","page_slugs":["home","services"]}`))
	if !strings.Contains(got.AnswerHTML, "<em>six</em>") {
		t.Errorf("AnswerHTML = %q", got.AnswerHTML)
	}
	if !got.ShownOn("services") || got.ShownOn("process") {
		t.Errorf("ShownOn wrong for %v", got.PageSlugs)
	}
}

func TestIconFor(t *testing.T) {
	tests := []struct {
		title, description, want string
	}{
		{"Design System Audit", "", "layers"},
		{"Patient Portal Redesign", "", "layout"},
		{"Discovery Sprint", "", "search"},
		{"Consulting", "Deep user research", "search"},
		{"Product Strategy", "", "lineChart"},
		{"Design Workshops", "", "users"},
		{"Usability Testing", "", "microscope"},
		{"Telehealth Experience", "", "monitorSmartphone"},
		{"Mobile App Design", "", "smartphone"},
		{"Accessibility Review", "", "users"},
		{"Something Else", "", DefaultIcon},
	}
	for _, tt := range tests {
		if got := IconFor(tt.title, tt.description); got != tt.want {
			t.Errorf("IconFor(%q, %q) = %q, want %q", tt.title, tt.description, got, tt.want)
		}
	}
}

func TestServiceKeepsStoredIcon(t *testing.T) {
	got := Service([]byte(`{"title":"Design System","icon_name":"star"}`))
	if got.IconName != "star" {
		t.Errorf("IconName = %q, want star", got.IconName)
	}
}

func TestMissing(t *testing.T) {
	row := []byte(`{"id":"1","title":"  ","slug":null}`)
	got := Missing(row, "id", "title", "slug", "description")
	if diff := cmp.Diff([]string{"title", "slug", "description"}, got); diff != "" {
		t.Errorf("Missing (-want +got):\n%s", diff)
	}
	if got := Missing([]byte("{"), "id"); len(got) != 1 {
		t.Errorf("Missing on invalid JSON = %v", got)
	}
	if got := Missing(row, "id"); got != nil {
		t.Errorf("Missing = %v, want nil", got)
	}
}

type prefixResolver string

func (p prefixResolver) ResolveURL(ref string) string {
	if strings.HasPrefix(ref, "http") || strings.HasPrefix(ref, "/") {
		return ref
	}
	return string(p) + ref
}

func TestResolverAppliesToImageFields(t *testing.T) {
	m := New(prefixResolver("https://cdn.example/"))

	p := m.Project([]byte(`{"images":["projects/a.png","/static/b.png"],"thumbnail_url":"projects/t.png"}`))
	if diff := cmp.Diff([]string{"https://cdn.example/projects/a.png", "/static/b.png"}, p.Images); diff != "" {
		t.Errorf("Images (-want +got):\n%s", diff)
	}
	if p.ThumbnailURL != "https://cdn.example/projects/t.png" {
		t.Errorf("ThumbnailURL = %q", p.ThumbnailURL)
	}

	tm := m.Testimonial([]byte(`{"avatar_url":"avatars/ana.jpg"}`))
	if tm.Image != "https://cdn.example/avatars/ana.jpg" {
		t.Errorf("Image = %q", tm.Image)
	}
}
