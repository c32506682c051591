// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package validation wraps go-playground/validator with the custom rules
// used by admin form input.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"showcase/internal/slug"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return value == "" || slug.Valid(value)
	})

	// imageref accepts storage keys, site-relative paths and absolute URLs.
	mustRegister(v, "imageref", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return true
		}
		if strings.ContainsAny(value, " \t\n\"<>") {
			return false
		}
		if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
			u, err := url.Parse(value)
			return err == nil && u.Host != ""
		}
		return true
	})

	return &Validator{v: v}
}

// mustRegister panics when a rule cannot be registered.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

func (v *Validator) Struct(s any) error {
	return v.v.Struct(s)
}

func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// Details maps each failing field to the rule it broke.
func Details(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field()] = err.Tag()
	}
	return details
}

// Message renders validation errors as one sentence suitable for an admin
// status message, e.g. "Title is required. Slug is not a valid slug."
func Message(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		if err == nil {
			return ""
		}
		return err.Error()
	}

	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fieldMessage(fe))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more.", fe.Field(), fe.Param())
	case "slug":
		return fmt.Sprintf("%s is not a valid slug.", fe.Field())
	case "imageref", "url":
		return fmt.Sprintf("%s is not a valid image reference.", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s).", fe.Field(), fe.Tag())
	}
}
