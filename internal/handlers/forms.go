// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"showcase/internal/models"
)

// formError is a problem with the submitted form rather than the backend.
type formError struct {
	msg string
}

func (e *formError) Error() string { return e.msg }

func invalidForm(msg string) error { return &formError{msg: msg} }

type projectForm struct {
	Title        string `validate:"required,max=300"`
	Slug         string `validate:"max=300,slug"`
	Description  string `validate:"max=2000"`
	Client       string `validate:"max=200"`
	Year         string `validate:"max=20"`
	Role         string `validate:"max=200"`
	Duration     string `validate:"max=100"`
	Challenge    string `validate:"max=20000"`
	Solution     string `validate:"max=20000"`
	Outcomes     []string
	Process      []models.ProjectPhase
	Images       []string `validate:"dive,imageref"`
	Tags         []string
	Tools        []string
	Categories   []string
	Featured     bool
	Scheduled    bool
	ThumbnailURL string `validate:"imageref"`
	ExternalURL  string `validate:"omitempty,url"`
	DisplayOrder int    `validate:"gte=0"`
}

func parseProject(r *http.Request) (*projectForm, error) {
	f := &projectForm{
		Title:        formText(r, "title"),
		Slug:         formText(r, "slug"),
		Description:  formText(r, "description"),
		Client:       formText(r, "client"),
		Year:         formText(r, "year"),
		Role:         formText(r, "role"),
		Duration:     formText(r, "duration"),
		Challenge:    r.FormValue("challenge"),
		Solution:     r.FormValue("solution"),
		Outcomes:     splitLines(r.FormValue("outcomes")),
		Images:       splitLines(r.FormValue("images")),
		Tags:         splitComma(r.FormValue("tags")),
		Tools:        splitComma(r.FormValue("tools")),
		Categories:   splitComma(r.FormValue("categories")),
		Featured:     formBool(r, "featured"),
		Scheduled:    formBool(r, "scheduled"),
		ThumbnailURL: formText(r, "thumbnail_url"),
		ExternalURL:  formText(r, "external_url"),
		DisplayOrder: formInt(r, "display_order"),
	}
	if raw := strings.TrimSpace(r.FormValue("process")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &f.Process); err != nil {
			return nil, invalidForm("Invalid process data. Please check the JSON format.")
		}
	}
	return f, nil
}

func (f *projectForm) model() *models.Project {
	return &models.Project{
		Title:        f.Title,
		Slug:         f.Slug,
		Description:  f.Description,
		Client:       f.Client,
		Year:         f.Year,
		Role:         f.Role,
		Duration:     f.Duration,
		Challenge:    f.Challenge,
		Solution:     f.Solution,
		Outcomes:     f.Outcomes,
		Process:      f.Process,
		Images:       f.Images,
		Tags:         f.Tags,
		Tools:        f.Tools,
		Categories:   f.Categories,
		Featured:     f.Featured,
		Scheduled:    f.Scheduled,
		ThumbnailURL: f.ThumbnailURL,
		ExternalURL:  f.ExternalURL,
		DisplayOrder: f.DisplayOrder,
	}
}

type testimonialForm struct {
	Quote        string `validate:"required,max=5000"`
	Author       string `validate:"required,max=200"`
	Title        string `validate:"max=200"`
	Company      string `validate:"max=200"`
	Image        string `validate:"imageref"`
	Featured     bool
	PhaseTag     string `validate:"max=100"`
	DisplayOrder int    `validate:"gte=0"`
	Project      string `validate:"max=300"`
}

func parseTestimonial(r *http.Request) (*testimonialForm, error) {
	author := formText(r, "author")
	if author == "" {
		author = formText(r, "name")
	}
	image := formText(r, "avatar_url")
	if image == "" {
		image = formText(r, "image")
	}
	return &testimonialForm{
		Quote:        formText(r, "quote"),
		Author:       author,
		Title:        formText(r, "title"),
		Company:      formText(r, "company"),
		Image:        image,
		Featured:     formBool(r, "featured"),
		PhaseTag:     formText(r, "phase_tag"),
		DisplayOrder: formInt(r, "display_order"),
		Project:      formText(r, "project"),
	}, nil
}

func (f *testimonialForm) model() *models.Testimonial {
	return &models.Testimonial{
		Quote:        f.Quote,
		Author:       f.Author,
		Name:         f.Author,
		Title:        f.Title,
		Company:      f.Company,
		Image:        f.Image,
		AvatarURL:    f.Image,
		Featured:     f.Featured,
		PhaseTag:     f.PhaseTag,
		DisplayOrder: f.DisplayOrder,
		Project:      f.Project,
	}
}

type serviceForm struct {
	Title             string `validate:"required,max=200"`
	Slug              string `validate:"max=200,slug"`
	Description       string `validate:"max=2000"`
	Featured          bool
	DisplayOrder      int    `validate:"gte=0"`
	IconName          string `validate:"max=50"`
	Deliverables      []string
	BusinessOutcomes  []string
	BusinessStatValue string `validate:"max=50"`
	BusinessStatLabel string `validate:"max=200"`
	Image             string `validate:"imageref"`
}

func parseService(r *http.Request) (*serviceForm, error) {
	return &serviceForm{
		Title:             formText(r, "title"),
		Slug:              formText(r, "slug"),
		Description:       formText(r, "description"),
		Featured:          formBool(r, "featured"),
		DisplayOrder:      formInt(r, "display_order"),
		IconName:          formText(r, "icon_name"),
		Deliverables:      splitLines(r.FormValue("deliverables")),
		BusinessOutcomes:  splitLines(r.FormValue("business_outcomes")),
		BusinessStatValue: formText(r, "business_stat_value"),
		BusinessStatLabel: formText(r, "business_stat_label"),
		Image:             formText(r, "image_url"),
	}, nil
}

func (f *serviceForm) model() *models.Service {
	return &models.Service{
		Title:             f.Title,
		Slug:              f.Slug,
		Description:       f.Description,
		Featured:          f.Featured,
		DisplayOrder:      f.DisplayOrder,
		IconName:          f.IconName,
		Deliverables:      f.Deliverables,
		BusinessOutcomes:  f.BusinessOutcomes,
		BusinessStatValue: f.BusinessStatValue,
		BusinessStatLabel: f.BusinessStatLabel,
		Image:             f.Image,
	}
}

type faqForm struct {
	Question     string   `validate:"required,max=500"`
	Answer       string   `validate:"required,max=10000"`
	Category     string   `validate:"max=100"`
	DisplayOrder int      `validate:"gte=0"`
	PageSlugs    []string `validate:"dive,slug"`
}

func parseFAQ(r *http.Request) (*faqForm, error) {
	return &faqForm{
		Question:     formText(r, "question"),
		Answer:       r.FormValue("answer"),
		Category:     formText(r, "category"),
		DisplayOrder: formInt(r, "display_order"),
		PageSlugs:    splitComma(r.FormValue("page_slugs")),
	}, nil
}

func (f *faqForm) model() *models.FAQ {
	return &models.FAQ{
		Question:     f.Question,
		Answer:       f.Answer,
		Category:     f.Category,
		DisplayOrder: f.DisplayOrder,
		PageSlugs:    f.PageSlugs,
	}
}

type processForm struct {
	PhaseTitle       string `validate:"required,max=200"`
	PhaseSubtitle    string `validate:"max=300"`
	PhaseDescription string `validate:"max=5000"`
	DisplayOrder     int    `validate:"gte=0"`
	ImageURL         string `validate:"imageref"`
	QuoteText        string `validate:"max=2000"`
	QuoteAuthor      string `validate:"max=200"`
	Icon             string `validate:"max=50"`
	Steps            []models.ProcessStepItem
	Outputs          []string
	KeyResults       []string
	StatValue        string `validate:"max=50"`
	StatLabel        string `validate:"max=200"`
}

func parseProcess(r *http.Request) (*processForm, error) {
	f := &processForm{
		PhaseTitle:       formText(r, "phase_title"),
		PhaseSubtitle:    formText(r, "phase_subtitle"),
		PhaseDescription: formText(r, "phase_description"),
		DisplayOrder:     formInt(r, "display_order"),
		ImageURL:         formText(r, "image_url"),
		QuoteText:        formText(r, "quote_text"),
		QuoteAuthor:      formText(r, "quote_author"),
		Icon:             formText(r, "icon"),
		Outputs:          splitLines(r.FormValue("outputs")),
		KeyResults:       splitLines(r.FormValue("key_results")),
		StatValue:        formText(r, "stat_value"),
		StatLabel:        formText(r, "stat_label"),
	}
	if raw := strings.TrimSpace(r.FormValue("steps")); raw != "" {
		steps, err := decodeSteps([]byte(raw))
		if err != nil {
			return nil, invalidForm("Invalid steps data. Please check the JSON format.")
		}
		f.Steps = steps
	}
	return f, nil
}

func (f *processForm) model() *models.ProcessStep {
	return &models.ProcessStep{
		PhaseTitle:       f.PhaseTitle,
		PhaseSubtitle:    f.PhaseSubtitle,
		PhaseDescription: f.PhaseDescription,
		DisplayOrder:     f.DisplayOrder,
		ImageURL:         f.ImageURL,
		QuoteText:        f.QuoteText,
		QuoteAuthor:      f.QuoteAuthor,
		Icon:             f.Icon,
		Steps:            f.Steps,
		Outputs:          f.Outputs,
		KeyResults:       f.KeyResults,
		StatValue:        f.StatValue,
		StatLabel:        f.StatLabel,
	}
}

// decodeSteps accepts a JSON array of {title, description} objects or of
// plain strings.
func decodeSteps(raw []byte) ([]models.ProcessStepItem, error) {
	var items []models.ProcessStepItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}
	var titles []string
	if err := json.Unmarshal(raw, &titles); err != nil {
		return nil, err
	}
	items = make([]models.ProcessStepItem, 0, len(titles))
	for _, t := range titles {
		items = append(items, models.ProcessStepItem{Title: t})
	}
	return items, nil
}

// --- field helpers ---

func formText(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(formText(r, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// formInt reads an integer field; blank or unparsable input counts as 0.
func formInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(formText(r, key))
	if err != nil {
		return 0
	}
	return n
}

func splitLines(s string) []string {
	return splitOn(s, "\n")
}

func splitComma(s string) []string {
	return splitOn(s, ",")
}

func splitOn(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
