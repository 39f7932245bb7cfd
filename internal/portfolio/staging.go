// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package portfolio

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sohoj8245-gif/portfolio/internal/model"
)

// pending is an insertion-ordered set of staged row edits keyed by id.
// Staging the same id again replaces the earlier edit.
type pending[T any] struct {
	order []string
	rows  map[string]T
}

func (p *pending[T]) put(id string, row T) {
	if p.rows == nil {
		p.rows = make(map[string]T)
	}
	if _, ok := p.rows[id]; !ok {
		p.order = append(p.order, id)
	}
	p.rows[id] = row
}

func (p *pending[T]) drop(id string) {
	if _, ok := p.rows[id]; !ok {
		return
	}
	delete(p.rows, id)
	p.order = slices.DeleteFunc(p.order, func(s string) bool { return s == id })
}

func (p *pending[T]) len() int { return len(p.rows) }

type stagedRow[T any] struct {
	id  string
	row T
}

func (p *pending[T]) snapshot() []stagedRow[T] {
	out := make([]stagedRow[T], 0, len(p.order))
	for _, id := range p.order {
		out = append(out, stagedRow[T]{id: id, row: p.rows[id]})
	}
	return out
}

// FlushResult counts the outcome of Flush.
type FlushResult struct {
	Saved  int
	Failed int
}

// StageSkill records an edit to an existing skill row without sending it.
func (e *Editor) StageSkill(skill model.Skill) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !slices.ContainsFunc(e.skills, func(s model.Skill) bool { return s.ID == skill.ID }) {
		return e.missingRow("skills", skill.ID)
	}
	e.pendingSkills.put(skill.ID, skill)
	return nil
}

// StageProject records an edit to an existing project row without sending it.
func (e *Editor) StageProject(project model.Project) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !slices.ContainsFunc(e.projects, func(p model.Project) bool { return p.ID == project.ID }) {
		return e.missingRow("projects", project.ID)
	}
	e.pendingProjects.put(project.ID, cloneProject(project))
	return nil
}

// StageChangedSkills stages the rows that differ from the local copy and
// returns how many were staged. Unknown ids are ignored.
func (e *Editor) StageChangedSkills(rows []model.Skill) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, row := range rows {
		i := slices.IndexFunc(e.skills, func(s model.Skill) bool { return s.ID == row.ID })
		if i < 0 || e.skills[i] == row {
			continue
		}
		e.pendingSkills.put(row.ID, row)
		n++
	}
	return n
}

// StageChangedProjects stages the rows that differ from the local copy and
// returns how many were staged. Unknown ids are ignored.
func (e *Editor) StageChangedProjects(rows []model.Project) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, row := range rows {
		i := slices.IndexFunc(e.projects, func(p model.Project) bool { return p.ID == row.ID })
		if i < 0 || projectsEqual(e.projects[i], row) {
			continue
		}
		e.pendingProjects.put(row.ID, cloneProject(row))
		n++
	}
	return n
}

// Pending reports how many rows are staged and not yet saved.
func (e *Editor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingSkills.len() + e.pendingProjects.len()
}

// Flush sends exactly one update per staged row. Rows that save are applied
// to the local copy; rows that fail stay staged for the next Flush.
func (e *Editor) Flush(ctx context.Context) (FlushResult, error) {
	e.mu.Lock()
	skills := e.pendingSkills.snapshot()
	projects := e.pendingProjects.snapshot()
	e.mu.Unlock()

	var (
		res  FlushResult
		errs []error
	)

	if len(skills)+len(projects) == 0 {
		e.succeed("No changes to save", "সেভ করার মতো কোনো পরিবর্তন নেই")
		return res, nil
	}

	for _, s := range skills {
		if err := e.gw.PutSkill(ctx, s.id, s.row); err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("skill %q: %w", s.id, err))
			continue
		}
		res.Saved++
		e.mu.Lock()
		e.replaceSkill(s.row)
		e.pendingSkills.drop(s.id)
		e.mu.Unlock()
	}

	for _, p := range projects {
		if err := e.gw.PutProject(ctx, p.id, p.row); err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("project %q: %w", p.id, err))
			continue
		}
		res.Saved++
		e.mu.Lock()
		e.replaceProject(p.row)
		e.pendingProjects.drop(p.id)
		e.mu.Unlock()
	}

	if err := errors.Join(errs...); err != nil {
		e.fail(err, "Error saving changes", "পরিবর্তন সেভ করতে এরর")
		return res, err
	}
	e.succeed("Changes saved!", "পরিবর্তন সেভ হয়েছে!")
	return res, nil
}

func projectsEqual(a, b model.Project) bool {
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.DescriptionEN == b.DescriptionEN &&
		a.DescriptionBN == b.DescriptionBN &&
		a.ImageURL == b.ImageURL &&
		a.ProjectURL == b.ProjectURL &&
		a.GitHubURL == b.GitHubURL &&
		a.Order == b.Order &&
		slices.Equal(a.TechStack, b.TechStack)
}
