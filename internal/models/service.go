// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Service is an offering listed on the services page.
type Service struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Slug              string   `json:"slug"`
	Featured          bool     `json:"featured"`
	DisplayOrder      int      `json:"displayOrder"`
	IconName          string   `json:"iconName"`
	Deliverables      []string `json:"deliverables"`
	BusinessOutcomes  []string `json:"businessOutcomes"`
	BusinessStatValue string   `json:"businessStatValue"`
	BusinessStatLabel string   `json:"businessStatLabel"`
	Image             string   `json:"image"`
}
