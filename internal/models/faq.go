// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// FAQ is a question/answer pair. PageSlugs lists the pages that display it.
type FAQ struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	AnswerHTML   string   `json:"answerHtml"`
	Category     string   `json:"category"`
	DisplayOrder int      `json:"displayOrder"`
	PageSlugs    []string `json:"pageSlugs"`
}

// ShownOn reports whether the FAQ is linked to the given page slug.
func (f *FAQ) ShownOn(page string) bool {
	for _, s := range f.PageSlugs {
		if s == page {
			return true
		}
	}
	return false
}
