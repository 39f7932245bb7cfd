// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// Project is a portfolio project card.
type Project struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	DescriptionEN string   `json:"description_en"`
	DescriptionBN string   `json:"description_bn"`
	TechStack     []string `json:"tech_stack"`
	ImageURL      string   `json:"image_url"`
	ProjectURL    string   `json:"project_url"`
	GitHubURL     string   `json:"github_url"`
	Order         int      `json:"order"`
}

// NewProject returns the blank project created by the admin "add" action.
// order places it after the existing projects.
func NewProject(order int) Project {
	return Project{TechStack: []string{}, Order: order}
}

// ParseTechStack splits a comma separated list, trimming each entry.
// Empty entries are dropped and order is preserved.
func ParseTechStack(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinTechStack formats a tech stack for a single text input.
func JoinTechStack(stack []string) string {
	return strings.Join(stack, ", ")
}
