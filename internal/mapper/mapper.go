// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mapper converts raw content rows into the application models.
//
// Rows are loosely typed: columns get renamed over time, optional columns
// may be missing, and the same field can hold an array, a JSON-encoded
// array string or a comma-separated list depending on who wrote it. Every
// function in this package is total. Whatever the input, the result is a
// fully populated value with empty strings, empty slices, zero numbers and
// false booleans standing in for anything absent or unreadable.
package mapper

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"showcase/internal/markdown"
)

// URLResolver turns a stored image reference into a public URL. Storage
// implements it so rows can hold bare object keys.
type URLResolver interface {
	ResolveURL(ref string) string
}

// Mapper holds the optional collaborators used while mapping.
type Mapper struct {
	// URLs resolves image fields. Nil leaves them as stored.
	URLs URLResolver
	// Render converts Markdown text fields to HTML. Nil skips rendering.
	Render func(string) string
}

// New returns a Mapper that renders Markdown and resolves image references
// through urls (which may be nil).
func New(urls URLResolver) *Mapper {
	return &Mapper{URLs: urls, Render: markdown.Render}
}

var std = New(nil)

// Missing returns the fields among required that are absent, null or blank
// in row. Invalid JSON reports every field as missing.
func Missing(row []byte, required ...string) []string {
	r := parse(row)
	var out []string
	for _, f := range required {
		if strings.TrimSpace(str(r, f)) == "" {
			out = append(out, f)
		}
	}
	return out
}

func (m *Mapper) url(ref string) string {
	if ref == "" || m.URLs == nil {
		return ref
	}
	return m.URLs.ResolveURL(ref)
}

func (m *Mapper) urls(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, m.url(ref))
	}
	return out
}

func (m *Mapper) html(src string) string {
	if m.Render == nil || src == "" {
		return ""
	}
	return m.Render(src)
}

// --- coercions ---

// parse returns the row as a gjson object, or an empty result when the
// bytes are not a JSON object.
func parse(row []byte) gjson.Result {
	if !gjson.ValidBytes(row) {
		return gjson.Result{}
	}
	r := gjson.ParseBytes(row)
	if !r.IsObject() {
		return gjson.Result{}
	}
	return r
}

// field returns the first key among keys that holds a non-null value.
func field(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		v := r.Get(escape(k))
		if v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// str reads a scalar as text. Objects and arrays read as "".
func str(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		v := r.Get(escape(k))
		switch v.Type {
		case gjson.String, gjson.Number, gjson.True, gjson.False:
			if s := strings.TrimSpace(v.String()); s != "" {
				return v.String()
			}
		}
	}
	return ""
}

func integer(r gjson.Result, keys ...string) int {
	v := field(r, keys...)
	switch v.Type {
	case gjson.Number:
		return int(v.Int())
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

func boolean(r gjson.Result, keys ...string) bool {
	v := field(r, keys...)
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num == 1
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "t", "1", "yes", "on":
			return true
		}
	}
	return false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func timestamp(r gjson.Result, keys ...string) time.Time {
	s := strings.TrimSpace(str(r, keys...))
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// list reads a field that should be an array. It accepts a JSON array, a
// string holding a JSON array, a comma-separated string or a lone scalar.
// The result is never nil.
func list(r gjson.Result, keys ...string) []gjson.Result {
	v := field(r, keys...)
	switch {
	case v.IsArray():
		return v.Array()
	case v.Type == gjson.String:
		s := strings.TrimSpace(v.Str)
		if strings.HasPrefix(s, "[") && gjson.Valid(s) {
			return gjson.Parse(s).Array()
		}
		if strings.HasPrefix(s, "{") && gjson.Valid(s) {
			return []gjson.Result{gjson.Parse(s)}
		}
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			// Postgres array literal, e.g. {"UX Research",Mobile}.
			s = s[1 : len(s)-1]
		}
		if s == "" {
			return []gjson.Result{}
		}
		parts := strings.Split(s, ",")
		out := make([]gjson.Result, 0, len(parts))
		for _, p := range parts {
			p = strings.Trim(strings.TrimSpace(p), `"`)
			out = append(out, gjson.Result{Type: gjson.String, Str: p})
		}
		return out
	case v.Exists():
		return []gjson.Result{v}
	}
	return []gjson.Result{}
}

// strs is list narrowed to non-blank scalar strings.
func strs(r gjson.Result, keys ...string) []string {
	items := list(r, keys...)
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch it.Type {
		case gjson.String, gjson.Number, gjson.True, gjson.False:
			if s := strings.TrimSpace(it.String()); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// escape quotes gjson path syntax so keys are looked up literally.
func escape(key string) string {
	if !strings.ContainsAny(key, `.*?|#@\`) {
		return key
	}
	var b strings.Builder
	for _, c := range key {
		if strings.ContainsRune(`.*?|#@\`, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
