// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mapper

import (
	"strings"

	"github.com/tidwall/gjson"

	"showcase/internal/models"
)

// Project maps a projects row.
func Project(row []byte) models.Project { return std.Project(row) }

// Testimonial maps a testimonials row.
func Testimonial(row []byte) models.Testimonial { return std.Testimonial(row) }

// Service maps a services row.
func Service(row []byte) models.Service { return std.Service(row) }

// FAQ maps a faqs row.
func FAQ(row []byte) models.FAQ { return std.FAQ(row) }

// ProcessStep maps a process_steps row.
func ProcessStep(row []byte) models.ProcessStep { return std.ProcessStep(row) }

// Project maps a projects row.
func (m *Mapper) Project(row []byte) models.Project {
	r := parse(row)
	p := models.Project{
		ID:           str(r, "id"),
		Title:        str(r, "title"),
		Description:  str(r, "description"),
		Slug:         str(r, "slug"),
		Client:       str(r, "client"),
		Year:         str(r, "year"),
		Role:         str(r, "role"),
		Duration:     str(r, "duration"),
		Challenge:    str(r, "challenge"),
		Solution:     str(r, "solution"),
		Outcomes:     strs(r, "outcomes"),
		Process:      phases(r),
		Images:       m.urls(strs(r, "images")),
		Tags:         strs(r, "tags"),
		Tools:        strs(r, "tools"),
		Categories:   strs(r, "categories"),
		Featured:     boolean(r, "featured"),
		Scheduled:    boolean(r, "scheduled"),
		ThumbnailURL: m.url(str(r, "thumbnail_url", "thumbnailUrl", "thumbnail")),
		ExternalURL:  str(r, "external_url", "externalUrl"),
		DisplayOrder: integer(r, "display_order", "displayOrder", "sort_order"),
		CreatedAt:    timestamp(r, "created_at", "createdAt"),
		UpdatedAt:    timestamp(r, "updated_at", "updatedAt"),
	}
	p.ChallengeHTML = m.html(p.Challenge)
	p.SolutionHTML = m.html(p.Solution)
	return p
}

// phases reads the project process column: an array of {phase, description}
// objects, a single such object, or plain strings used as descriptions.
func phases(r gjson.Result) []models.ProjectPhase {
	items := list(r, "process")
	out := make([]models.ProjectPhase, 0, len(items))
	for _, it := range items {
		var ph models.ProjectPhase
		switch {
		case it.IsObject():
			ph = models.ProjectPhase{
				Phase:       str(it, "phase", "title", "name"),
				Description: str(it, "description"),
			}
		case it.Type == gjson.String:
			ph.Description = strings.TrimSpace(it.Str)
		}
		if ph.Phase == "" && ph.Description == "" {
			continue
		}
		out = append(out, ph)
	}
	return out
}

// Testimonial maps a testimonials row. The image comes from avatar_url when
// set and falls back to image; Name always mirrors Author.
func (m *Mapper) Testimonial(row []byte) models.Testimonial {
	r := parse(row)
	author := str(r, "author", "name")
	avatar := m.url(str(r, "avatar_url", "avatarUrl"))
	image := avatar
	if image == "" {
		image = m.url(str(r, "image", "image_url"))
	}
	return models.Testimonial{
		ID:           str(r, "id"),
		Quote:        str(r, "quote", "content", "text"),
		Author:       author,
		Name:         author,
		Title:        str(r, "title", "role", "position"),
		Company:      str(r, "company"),
		Image:        image,
		AvatarURL:    avatar,
		Featured:     boolean(r, "featured"),
		PhaseTag:     str(r, "phase_tag", "phaseTag"),
		DisplayOrder: integer(r, "display_order", "displayOrder", "sort_order"),
		Project:      str(r, "project", "project_title"),
		CreatedAt:    timestamp(r, "created_at", "createdAt"),
		UpdatedAt:    timestamp(r, "updated_at", "updatedAt"),
	}
}

// Service maps a services row. A missing icon name is derived from the
// title and description.
func (m *Mapper) Service(row []byte) models.Service {
	r := parse(row)
	s := models.Service{
		ID:                str(r, "id"),
		Title:             str(r, "title"),
		Description:       str(r, "description"),
		Slug:              str(r, "slug"),
		Featured:          boolean(r, "featured"),
		DisplayOrder:      integer(r, "display_order", "displayOrder", "sort_order"),
		IconName:          str(r, "icon_name", "iconName", "icon"),
		Deliverables:      strs(r, "deliverables"),
		BusinessOutcomes:  strs(r, "business_outcomes", "businessOutcomes"),
		BusinessStatValue: str(r, "business_stat_value", "businessStatValue", "business_stat"),
		BusinessStatLabel: str(r, "business_stat_label", "businessStatLabel"),
		Image:             m.url(str(r, "image_url", "image", "imageUrl")),
	}
	if s.IconName == "" {
		s.IconName = IconFor(s.Title, s.Description)
	}
	return s
}

// FAQ maps a faqs row and renders the answer.
func (m *Mapper) FAQ(row []byte) models.FAQ {
	r := parse(row)
	f := models.FAQ{
		ID:           str(r, "id"),
		Question:     str(r, "question"),
		Answer:       str(r, "answer"),
		Category:     str(r, "category"),
		DisplayOrder: integer(r, "display_order", "displayOrder", "sort_order"),
		PageSlugs:    strs(r, "page_slugs", "pageSlugs", "pages"),
	}
	f.AnswerHTML = m.html(f.Answer)
	return f
}

// ProcessStep maps a process_steps row.
func (m *Mapper) ProcessStep(row []byte) models.ProcessStep {
	r := parse(row)
	return models.ProcessStep{
		ID:               str(r, "id"),
		PhaseTitle:       str(r, "phase_title", "phaseTitle"),
		PhaseSubtitle:    str(r, "phase_subtitle", "phaseSubtitle"),
		PhaseDescription: str(r, "phase_description", "phaseDescription"),
		DisplayOrder:     integer(r, "display_order", "displayOrder", "sort_order"),
		ImageURL:         m.url(str(r, "image_url", "imageUrl")),
		QuoteText:        str(r, "quote_text", "quoteText"),
		QuoteAuthor:      str(r, "quote_author", "quoteAuthor"),
		Icon:             str(r, "icon"),
		Steps:            stepItems(r),
		Outputs:          strs(r, "outputs"),
		KeyResults:       strs(r, "key_results", "keyResults"),
		StatValue:        str(r, "stat_value", "statValue"),
		StatLabel:        str(r, "stat_label", "statLabel"),
	}
}

// stepItems accepts {title, description} objects and plain strings.
func stepItems(r gjson.Result) []models.ProcessStepItem {
	items := list(r, "steps")
	out := make([]models.ProcessStepItem, 0, len(items))
	for _, it := range items {
		var st models.ProcessStepItem
		switch {
		case it.IsObject():
			st = models.ProcessStepItem{
				Title:       str(it, "title", "name"),
				Description: str(it, "description"),
			}
		case it.Type == gjson.String:
			st.Title = strings.TrimSpace(it.Str)
		}
		if st.Title == "" && st.Description == "" {
			continue
		}
		out = append(out, st)
	}
	return out
}
