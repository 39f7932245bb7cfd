// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sohoj8245-gif/portfolio/internal/model"
)

// field returns the trimmed form value of key.
func field(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

// fieldAt returns the i-th value of a repeated form field, or "" when the
// row has no such value.
func fieldAt(form url.Values, key string, i int) string {
	values := form[key]
	if i >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[i])
}

func heroFromForm(form url.Values) model.Hero {
	return model.Hero{
		Name:      field(form, "name"),
		Title:     field(form, "title"),
		Tagline:   field(form, "tagline"),
		ImageURL:  field(form, "image_url"),
		ResumeURL: field(form, "resume_url"),
	}
}

// aboutFromForm keeps the text as typed; surrounding blank lines are
// part of the markdown.
func aboutFromForm(form url.Values) model.About {
	return model.About{
		TextEN: form.Get("text_en"),
		TextBN: form.Get("text_bn"),
	}
}

func contactFromForm(form url.Values) model.Contact {
	return model.Contact{
		Email:    field(form, "email"),
		Phone:    field(form, "phone"),
		Location: field(form, "location"),
		GitHub:   field(form, "github"),
		LinkedIn: field(form, "linkedin"),
		Twitter:  field(form, "twitter"),
	}
}

// skillRowsFromForm reads the skills form. Each row posts one value per
// field, so the i-th value of every field belongs to the i-th id. The
// category is passed through as posted; the backend rejects unknown ones.
func skillRowsFromForm(form url.Values) []model.Skill {
	ids := form["id"]
	rows := make([]model.Skill, 0, len(ids))
	for i, id := range ids {
		rows = append(rows, model.Skill{
			ID:       id,
			Name:     fieldAt(form, "name", i),
			Category: model.SkillCategory(fieldAt(form, "category", i)),
			Icon:     fieldAt(form, "icon", i),
		})
	}
	return rows
}

// projectRowsFromForm reads the projects form row by row. An order that
// does not parse keeps 0.
func projectRowsFromForm(form url.Values) []model.Project {
	ids := form["id"]
	rows := make([]model.Project, 0, len(ids))
	for i, id := range ids {
		order, _ := strconv.Atoi(fieldAt(form, "order", i))
		rows = append(rows, model.Project{
			ID:            id,
			Title:         fieldAt(form, "title", i),
			DescriptionEN: formValueAt(form, "description_en", i),
			DescriptionBN: formValueAt(form, "description_bn", i),
			TechStack:     model.ParseTechStack(fieldAt(form, "tech_stack", i)),
			ImageURL:      fieldAt(form, "image_url", i),
			ProjectURL:    fieldAt(form, "project_url", i),
			GitHubURL:     fieldAt(form, "github_url", i),
			Order:         order,
		})
	}
	return rows
}

// formValueAt is fieldAt without trimming.
func formValueAt(form url.Values, key string, i int) string {
	values := form[key]
	if i >= len(values) {
		return ""
	}
	return values[i]
}

func skillID(s model.Skill) string     { return s.ID }
func projectID(p model.Project) string { return p.ID }

// findRow returns the row whose id is id.
func findRow[T any](rows []T, id string, idOf func(T) string) (T, bool) {
	for _, row := range rows {
		if idOf(row) == id {
			return row, true
		}
	}
	var zero T
	return zero, false
}
