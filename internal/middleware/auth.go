// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// AdminAuth guards the admin form actions with HTTP basic auth against a
// single user and a bcrypt password hash. Without a configured hash every
// request is refused with 503.
func AdminAuth(user, passwordHash string) func(http.Handler) http.Handler {
	hash := []byte(passwordHash)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(hash) == 0 {
				http.Error(w, "Admin access is not configured", http.StatusServiceUnavailable)
				return
			}

			u, p, ok := r.BasicAuth()
			if !ok {
				challenge(w)
				return
			}

			userOK := subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1
			// Always run bcrypt so a wrong user name costs the same time.
			passErr := bcrypt.CompareHashAndPassword(hash, []byte(p))
			if !userOK || passErr != nil {
				slog.Warn("admin login failed", "user", u, "remote", r.RemoteAddr)
				challenge(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func challenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="showcase admin", charset="UTF-8"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
