// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// SkillCategory groups skills on the public page.
type SkillCategory string

// Skill categories
const (
	CategoryFrontend SkillCategory = "Frontend"
	CategoryBackend  SkillCategory = "Backend"
	CategoryMobile   SkillCategory = "Mobile"
	CategoryDevOps   SkillCategory = "DevOps"
	CategoryDatabase SkillCategory = "Database"
	CategoryOther    SkillCategory = "Other"
)

// DefaultSkillCategory is assigned to newly added skills.
const DefaultSkillCategory = CategoryFrontend

var skillCategories = []SkillCategory{
	CategoryFrontend,
	CategoryBackend,
	CategoryMobile,
	CategoryDevOps,
	CategoryDatabase,
	CategoryOther,
}

// SkillCategories returns all valid categories in display order.
func SkillCategories() []SkillCategory {
	out := make([]SkillCategory, len(skillCategories))
	copy(out, skillCategories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c SkillCategory) Valid() bool {
	for _, known := range skillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Skill is a single entry in the skills section.
type Skill struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
	Icon     string        `json:"icon,omitempty"`
}

// NewSkill returns the blank skill created by the admin "add" action.
func NewSkill() Skill {
	return Skill{Category: DefaultSkillCategory}
}

// SkillGroup is one category bucket of the skills section.
type SkillGroup struct {
	Category SkillCategory
	Skills   []Skill
}

// GroupSkills buckets skills by category. Categories appear in the order
// they are first seen and skills keep their original relative order.
func GroupSkills(skills []Skill) []SkillGroup {
	var groups []SkillGroup
	index := make(map[SkillCategory]int)

	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}

	return groups
}
