// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug builds the URL slugs used by project and service pages.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonSlug matches anything that isn't a lowercase letter, digit or hyphen.
	nonSlug = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a slug from a title.
// Example: "UX Research & Testing / 2026" → "ux-research-and-testing-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = strings.NewReplacer("'", "", "’", "", "&", " and ", "/", " ").Replace(result)
	result = strings.Join(strings.Fields(result), "-")
	result = nonSlug.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return s != "" && Generate(s) == s
}
