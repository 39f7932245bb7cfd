// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package portfolio holds the view state behind the public portfolio page
// and the admin editor.
package portfolio

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sohoj8245-gif/portfolio/internal/model"
)

// Reader is the read half of the portfolio gateway.
type Reader interface {
	GetHero(ctx context.Context) (model.Hero, error)
	GetAbout(ctx context.Context) (model.About, error)
	GetSkills(ctx context.Context) ([]model.Skill, error)
	GetProjects(ctx context.Context) ([]model.Project, error)
	GetContact(ctx context.Context) (model.Contact, error)
}

// Writer is the write half of the portfolio gateway.
type Writer interface {
	PutHero(ctx context.Context, hero model.Hero) error
	PutAbout(ctx context.Context, about model.About) error
	PutContact(ctx context.Context, contact model.Contact) error
	PostSkill(ctx context.Context, skill model.Skill) (string, error)
	PutSkill(ctx context.Context, id string, skill model.Skill) error
	DeleteSkill(ctx context.Context, id string) error
	PostProject(ctx context.Context, project model.Project) (string, error)
	PutProject(ctx context.Context, id string, project model.Project) error
	DeleteProject(ctx context.Context, id string) error
}

// Gateway is everything the admin editor needs from the backend.
type Gateway interface {
	Reader
	Writer
}

// Translator picks the English or Bangla variant of a string.
type Translator interface {
	T(en, bn string) string
}

// Content is one snapshot of every portfolio section.
type Content struct {
	Hero     model.Hero
	About    model.About
	Skills   []model.Skill
	Projects []model.Project
	Contact  model.Contact
}

// SectionError reports a portfolio section that failed to load.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// failedSections lists the sections named by the SectionErrors in err.
func failedSections(err error) map[string]bool {
	failed := make(map[string]bool)
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		var se *SectionError
		if errors.As(err, &se) {
			failed[se.Section] = true
		}
		if j, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range j.Unwrap() {
				walk(e)
			}
		}
	}
	walk(err)
	return failed
}

// fetchAll reads the five sections concurrently and waits for all of them.
// Sections that load are filled in even when others fail; the returned
// error joins every failure.
func fetchAll(ctx context.Context, r Reader) (Content, error) {
	var (
		c    Content
		errs [5]error
		g    errgroup.Group
	)

	// Each goroutine owns one field of c and one slot of errs.
	g.Go(func() error {
		hero, err := r.GetHero(ctx)
		if err != nil {
			errs[0] = &SectionError{Section: "hero", Err: err}
			return nil
		}
		c.Hero = hero
		return nil
	})
	g.Go(func() error {
		about, err := r.GetAbout(ctx)
		if err != nil {
			errs[1] = &SectionError{Section: "about", Err: err}
			return nil
		}
		c.About = about
		return nil
	})
	g.Go(func() error {
		skills, err := r.GetSkills(ctx)
		if err != nil {
			errs[2] = &SectionError{Section: "skills", Err: err}
			return nil
		}
		c.Skills = skills
		return nil
	})
	g.Go(func() error {
		projects, err := r.GetProjects(ctx)
		if err != nil {
			errs[3] = &SectionError{Section: "projects", Err: err}
			return nil
		}
		c.Projects = projects
		return nil
	})
	g.Go(func() error {
		contact, err := r.GetContact(ctx)
		if err != nil {
			errs[4] = &SectionError{Section: "contact", Err: err}
			return nil
		}
		c.Contact = contact
		return nil
	})
	_ = g.Wait()

	return c, errors.Join(errs[:]...)
}
