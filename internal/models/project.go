// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the application-facing content records served to
// presentation code. Every field is always populated with a concrete value
// (empty string, empty slice, false or zero) so callers never need nil checks.
package models

import "time"

// ContentType names a content table and the cache tag that covers it.
type ContentType string

const (
	ContentTypeProject     ContentType = "projects"
	ContentTypeTestimonial ContentType = "testimonials"
	ContentTypeService     ContentType = "services"
	ContentTypeFAQ         ContentType = "faqs"
	ContentTypeProcess     ContentType = "process_steps"
)

// Phase slots used by case-study layouts. Images[0] is the hero image and
// Images[1..3] hold the discovery, design and delivery illustrations.
type Phase int

const (
	PhaseDiscovery Phase = iota + 1
	PhaseDesign
	PhaseDelivery
)

// ProjectPhase is one entry of a project's process narrative.
type ProjectPhase struct {
	Phase       string `json:"phase" yaml:"phase"`
	Description string `json:"description" yaml:"description"`
}

// Project is a case study shown on the work pages.
type Project struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Slug          string         `json:"slug"`
	Client        string         `json:"client"`
	Year          string         `json:"year"`
	Role          string         `json:"role"`
	Duration      string         `json:"duration"`
	Challenge     string         `json:"challenge"`
	ChallengeHTML string         `json:"challengeHtml"`
	Solution      string         `json:"solution"`
	SolutionHTML  string         `json:"solutionHtml"`
	Outcomes      []string       `json:"outcomes"`
	Process       []ProjectPhase `json:"process"`
	Images        []string       `json:"images"`
	Tags          []string       `json:"tags"`
	Tools         []string       `json:"tools"`
	Categories    []string       `json:"categories"`
	Featured      bool           `json:"featured"`
	Scheduled     bool           `json:"scheduled"`
	ThumbnailURL  string         `json:"thumbnailUrl"`
	ExternalURL   string         `json:"externalUrl"`
	DisplayOrder  int            `json:"displayOrder"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// HeroImage returns the first gallery image, falling back to the thumbnail.
func (p *Project) HeroImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return p.ThumbnailURL
}

// PhaseImage returns the image for a phase slot, or "" when the gallery is
// too short.
func (p *Project) PhaseImage(ph Phase) string {
	i := int(ph)
	if i < 1 || i >= len(p.Images) {
		return ""
	}
	return p.Images[i]
}
