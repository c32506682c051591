// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package revalidate

import (
	"strings"

	"showcase/internal/models"
)

// Targets is the set of cache tags and paths affected by a mutation.
type Targets struct {
	Tags  []string
	Paths []string
}

// Cache tags, one per content type.
const (
	TagProjects     = "projects"
	TagTestimonials = "testimonials"
	TagServices     = "services"
	TagFAQs         = "faqs"
	TagProcess      = "process"
)

// Routes returns what must be invalidated after ev. Detail paths are only
// included when the event carries a slug; a renamed record also clears its
// old detail paths.
func Routes(ev Event) Targets {
	switch ev.Type {
	case models.ContentTypeProject:
		t := Targets{Tags: []string{TagProjects}, Paths: []string{"/", "/work", "/api/projects"}}
		for _, slug := range slugs(ev) {
			t.Paths = append(t.Paths, "/work/"+slug, "/api/projects/"+slug)
		}
		return t
	case models.ContentTypeTestimonial:
		return Targets{Tags: []string{TagTestimonials}, Paths: []string{"/testimonials"}}
	case models.ContentTypeService:
		t := Targets{Tags: []string{TagServices}, Paths: []string{"/services"}}
		for _, slug := range slugs(ev) {
			t.Paths = append(t.Paths, "/services/"+slug)
		}
		return t
	case models.ContentTypeFAQ:
		t := Targets{Tags: []string{TagFAQs}, Paths: []string{"/faqs"}}
		for _, page := range ev.Pages {
			page = strings.Trim(strings.TrimSpace(page), "/")
			if page == "" {
				continue
			}
			t.Paths = append(t.Paths, "/"+page)
		}
		return t
	case models.ContentTypeProcess:
		return Targets{Tags: []string{TagProcess}, Paths: []string{"/process"}}
	}
	return Targets{}
}

// slugs returns the current slug and, when it changed, the previous one.
func slugs(ev Event) []string {
	var out []string
	if ev.Slug != "" {
		out = append(out, ev.Slug)
	}
	if ev.PreviousSlug != "" && ev.PreviousSlug != ev.Slug {
		out = append(out, ev.PreviousSlug)
	}
	return out
}
