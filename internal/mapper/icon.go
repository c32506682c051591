// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mapper

import "strings"

// DefaultIcon is used when no keyword matches.
const DefaultIcon = "lightbulb"

// iconRule maps keywords to an icon. Rules are checked in order and the
// first hit wins, so more specific phrases come first.
type iconRule struct {
	icon        string
	title       []string
	description []string
}

var iconRules = []iconRule{
	{icon: "layers", title: []string{"ui/ux design system", "design system"}},
	{icon: "penTool", title: []string{"interaction design"}, description: []string{"interaction"}},
	{icon: "layout", title: []string{"portal", "redesign"}},
	{icon: "search", title: []string{"research", "discovery"}, description: []string{"research"}},
	{icon: "lineChart", title: []string{"strategy", "roadmap"}},
	{icon: "users", title: []string{"workshop", "facilitation"}},
	{icon: "code", title: []string{"implementation", "development"}},
	{icon: "microscope", title: []string{"usability"}},
	{icon: "penTool", title: []string{"prototype"}},
	{icon: "gauge", title: []string{"assessment"}},
	{icon: "sparkles", title: []string{"workflow", "optimization"}},
	{icon: "monitorSmartphone", title: []string{"telehealth", "virtual care"}},
	{icon: "stethoscope", title: []string{"medical device"}},
	{icon: "smartphone", title: []string{"mobile", "app"}},
	{icon: "lineChart", title: []string{"analytics", "data"}},
	{icon: "users", title: []string{"accessibility"}},
	{icon: "microscope", title: []string{"audit"}},
}

// IconFor derives a service icon name from its title and description.
func IconFor(title, description string) string {
	title = strings.ToLower(title)
	description = strings.ToLower(description)
	for _, rule := range iconRules {
		for _, kw := range rule.title {
			if strings.Contains(title, kw) {
				return rule.icon
			}
		}
		for _, kw := range rule.description {
			if strings.Contains(description, kw) {
				return rule.icon
			}
		}
	}
	return DefaultIcon
}
