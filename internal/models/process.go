// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ProcessStepItem is one activity inside a process phase. Older rows store
// plain strings, which map to Title with an empty Description.
type ProcessStepItem struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// ProcessStep is a phase of the studio's working process.
type ProcessStep struct {
	ID               string            `json:"id"`
	PhaseTitle       string            `json:"phaseTitle"`
	PhaseSubtitle    string            `json:"phaseSubtitle"`
	PhaseDescription string            `json:"phaseDescription"`
	DisplayOrder     int               `json:"displayOrder"`
	ImageURL         string            `json:"imageUrl"`
	QuoteText        string            `json:"quoteText"`
	QuoteAuthor      string            `json:"quoteAuthor"`
	Icon             string            `json:"icon"`
	Steps            []ProcessStepItem `json:"steps"`
	Outputs          []string          `json:"outputs"`
	KeyResults       []string          `json:"keyResults"`
	StatValue        string            `json:"statValue"`
	StatLabel        string            `json:"statLabel"`
}
