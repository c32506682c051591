// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Testimonial is a client quote. Name mirrors Author and Image is read from
// either the image or avatar_url column; both historical field names stay
// populated for older presentation code.
type Testimonial struct {
	ID           string    `json:"id"`
	Quote        string    `json:"quote"`
	Author       string    `json:"author"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Image        string    `json:"image"`
	AvatarURL    string    `json:"avatar_url"`
	Featured     bool      `json:"featured"`
	PhaseTag     string    `json:"phaseTag"`
	DisplayOrder int       `json:"displayOrder"`
	Project      string    `json:"project"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasImage reports whether the testimonial carries an avatar.
func (t *Testimonial) HasImage() bool {
	return t.Image != ""
}
