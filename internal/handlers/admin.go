// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"showcase/internal/models"
	"showcase/internal/validation"
)

// section wires one admin content type to its form parser and store.
type section struct {
	label  string
	create func(ctx context.Context, r *http.Request) error
	update func(ctx context.Context, id string, r *http.Request) error
	remove func(ctx context.Context, id string) error
}

// Admin handles the admin form actions. Every action answers with a 303
// redirect back to the section listing carrying a status and a message.
type Admin struct {
	validate *validation.Validator
	sections map[string]section
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(stores Stores, v *validation.Validator) *Admin {
	if v == nil {
		v = validation.New()
	}
	a := &Admin{validate: v}
	a.sections = map[string]section{
		"projects":     newSection[models.Project](a, "project", stores.Projects, parseProject),
		"testimonials": newSection[models.Testimonial](a, "testimonial", stores.Testimonials, parseTestimonial),
		"services":     newSection[models.Service](a, "service", stores.Services, parseService),
		"faqs":         newSection[models.FAQ](a, "FAQ", stores.FAQs, parseFAQ),
		"process":      newSection[models.ProcessStep](a, "process step", stores.Process, parseProcess),
	}
	return a
}

// Create handles POST /admin/{type}.
func (a *Admin) Create(w http.ResponseWriter, r *http.Request) {
	a.act(w, r, "create", func(sec section) error {
		return sec.create(r.Context(), r)
	})
}

// Update handles POST /admin/{type}/{id}.
func (a *Admin) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.act(w, r, "update", func(sec section) error {
		return sec.update(r.Context(), id, r)
	})
}

// Delete handles POST /admin/{type}/{id}/delete.
func (a *Admin) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.act(w, r, "delete", func(sec section) error {
		return sec.remove(r.Context(), id)
	})
}

func (a *Admin) act(w http.ResponseWriter, r *http.Request, op string, run func(section) error) {
	name := chi.URLParam(r, "type")
	sec, ok := a.sections[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		redirectStatus(w, r, name, "error", "Invalid form submission.")
		return
	}

	err := run(sec)
	if err == nil {
		redirectStatus(w, r, name, "success", fmt.Sprintf("%s %s successfully!", capitalize(sec.label), pastTense(op)))
		return
	}

	var fe *formError
	if errors.As(err, &fe) {
		slog.Info("admin form rejected", "section", name, "op", op, "reason", fe.msg)
		redirectStatus(w, r, name, "error", fe.msg)
		return
	}
	redirectStatus(w, r, name, "error", fmt.Sprintf("Failed to %s %s. %s", op, sec.label, rootCause(err)))
}

// check runs struct validation and turns failures into a form error.
func (a *Admin) check(form any) error {
	if err := a.validate.Struct(form); err != nil {
		return invalidForm("Validation failed. " + validation.Message(err))
	}
	return nil
}

// requireID rejects blank ids before they reach the store.
func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidForm("Missing record id.")
	}
	return nil
}

// mutator is the write side of a content store.
type mutator[T any] interface {
	Create(ctx context.Context, v *T) (*T, error)
	Update(ctx context.Context, id string, v *T) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// form is a parsed admin form that converts into a content record.
type form[T any] interface {
	model() *T
}

func newSection[T any, F form[T]](a *Admin, label string, s mutator[T], parse func(*http.Request) (F, error)) section {
	save := func(ctx context.Context, id string, r *http.Request) error {
		f, err := parse(r)
		if err != nil {
			return err
		}
		if err := a.check(f); err != nil {
			return err
		}
		if id == "" {
			_, err = s.Create(ctx, f.model())
		} else {
			_, err = s.Update(ctx, id, f.model())
		}
		return err
	}
	return section{
		label:  label,
		create: func(ctx context.Context, r *http.Request) error { return save(ctx, "", r) },
		update: func(ctx context.Context, id string, r *http.Request) error {
			if err := requireID(id); err != nil {
				return err
			}
			return save(ctx, id, r)
		},
		remove: func(ctx context.Context, id string) error {
			if err := requireID(id); err != nil {
				return err
			}
			_, err := s.Delete(ctx, id)
			return err
		},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func pastTense(op string) string {
	switch op {
	case "create":
		return "added"
	case "update":
		return "updated"
	case "delete":
		return "deleted"
	}
	return op + "d"
}
