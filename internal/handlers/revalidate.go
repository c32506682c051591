// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"showcase/internal/cache"
	"showcase/internal/revalidate"
	"showcase/internal/store"
)

// SecretHeader carries the revalidation secret.
const SecretHeader = "X-Revalidate-Secret"

// Revalidate exposes manual cache invalidation over HTTP.
type Revalidate struct {
	cache  cache.Store
	secret string
	log    *store.CacheLogStore
	now    func() time.Time
}

// NewRevalidate creates the revalidation handlers. An empty secret disables
// the endpoints; log may be nil.
func NewRevalidate(pageCache cache.Store, secret string, log *store.CacheLogStore) *Revalidate {
	if pageCache == nil {
		pageCache = cache.Noop{}
	}
	return &Revalidate{cache: pageCache, secret: secret, log: log, now: time.Now}
}

type revalidateResponse struct {
	Revalidated bool   `json:"revalidated"`
	Now         int64  `json:"now"`
	Message     string `json:"message,omitempty"`
}

// authorized checks the request secret and writes the rejection itself.
func (h *Revalidate) authorized(w http.ResponseWriter, r *http.Request) bool {
	if h.secret == "" {
		h.reply(w, http.StatusServiceUnavailable, false, "Revalidation is not configured")
		return false
	}
	got := r.Header.Get(SecretHeader)
	if got == "" {
		got = r.URL.Query().Get("secret")
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		slog.Warn("revalidation rejected", "remote", r.RemoteAddr)
		h.reply(w, http.StatusUnauthorized, false, "Invalid secret")
		return false
	}
	return true
}

func (h *Revalidate) reply(w http.ResponseWriter, status int, ok bool, msg string) {
	writeJSON(w, status, revalidateResponse{
		Revalidated: ok,
		Now:         h.now().UnixMilli(),
		Message:     msg,
	})
}

// Revalidate handles GET|POST /api/revalidate?tag=<name> (or ?path=<path>).
func (h *Revalidate) Revalidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	ctx := r.Context()
	tag := r.URL.Query().Get("tag")
	path := r.URL.Query().Get("path")

	var (
		scope  revalidate.Scope
		target string
		err    error
	)
	switch {
	case tag != "":
		scope, target = revalidate.ScopeTag, tag
		err = h.cache.RevalidateTag(ctx, tag)
	case path != "":
		scope, target = revalidate.ScopePath, path
		err = h.cache.RevalidatePath(ctx, path)
	default:
		h.reply(w, http.StatusBadRequest, false, "Missing tag or path")
		return
	}
	if err != nil {
		slog.Error("manual revalidation failed", "scope", scope, "target", target, "error", err)
		h.reply(w, http.StatusInternalServerError, false, "Revalidation failed")
		return
	}

	if h.log != nil {
		h.log.Log(ctx, scope, target, "api")
	}
	slog.Info("revalidated", "scope", scope, "target", target)
	h.reply(w, http.StatusOK, true, "")
}

// All handles POST /api/revalidate/all and drops every cached response.
func (h *Revalidate) All(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	ctx := r.Context()
	if err := h.cache.RevalidateAll(ctx); err != nil {
		slog.Error("full revalidation failed", "error", err)
		h.reply(w, http.StatusInternalServerError, false, "Revalidation failed")
		return
	}
	if h.log != nil {
		h.log.Log(ctx, revalidate.ScopeAll, "", "api")
	}
	slog.Info("revalidated everything")
	h.reply(w, http.StatusOK, true, "")
}

// Log handles GET /api/revalidate/log and lists recent invalidations.
func (h *Revalidate) Log(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	if h.log == nil {
		writeJSON(w, http.StatusOK, []store.CacheLogEntry{})
		return
	}
	entries, err := h.log.RecentEntries(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		slog.Error("list cache log failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
