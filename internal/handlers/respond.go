// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the showcase content
// service. Handlers are grouped by concern (public API, admin form actions,
// revalidation, health) and receive their dependencies through the handler
// struct.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"showcase/internal/backend"
	"showcase/internal/mapper"
	"showcase/internal/retry"
	"showcase/internal/revalidate"
	"showcase/internal/store"
)

// Stores bundles the content accessors the handlers read from and write to.
type Stores struct {
	Projects     *store.ProjectStore
	Testimonials *store.TestimonialStore
	Services     *store.ServiceStore
	FAQs         *store.FAQStore
	Process      *store.ProcessStore
}

// NewStores builds every content store over one backend client.
func NewStores(db backend.Client, m *mapper.Mapper, pub revalidate.Publisher, slugRetry retry.Policy) Stores {
	return Stores{
		Projects:     store.NewProjectStore(db, m, pub, slugRetry),
		Testimonials: store.NewTestimonialStore(db, m, pub),
		Services:     store.NewServiceStore(db, m, pub),
		FAQs:         store.NewFAQStore(db, m, pub),
		Process:      store.NewProcessStore(db, m, pub),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, body)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// queryInt reads a positive integer query parameter, falling back to def
// when it is absent or unusable.
func queryInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// redirectStatus sends the admin back to a listing with a status message.
func redirectStatus(w http.ResponseWriter, r *http.Request, section, status, message string) {
	q := url.Values{}
	q.Set("status", status)
	q.Set("message", message)
	http.Redirect(w, r, "/admin/"+section+"?"+q.Encode(), http.StatusSeeOther)
}

// rootCause returns the message of the innermost wrapped error, which is
// the backend's own description of what went wrong.
func rootCause(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
