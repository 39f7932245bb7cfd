// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/sohoj8245-gif/portfolio/internal/model"
)

var (
	// ErrRowNotFound is returned for an id that is not in the local copy.
	ErrRowNotFound = errors.New("row not found")
	// ErrNotLoaded is returned for a row edit in a section that failed to
	// load, so the local copy cannot say whether the row exists.
	ErrNotLoaded = errors.New("section not loaded")
)

// Tabs lists the admin panel panes in display order.
var Tabs = []string{"hero", "about", "skills", "projects", "contact"}

// DefaultTab is the pane shown when none is requested.
const DefaultTab = "hero"

// ValidTab reports whether tab names an admin panel pane.
func ValidTab(tab string) bool {
	return slices.Contains(Tabs, tab)
}

// Editor holds the admin's local copy of the portfolio. Every write goes to
// the gateway first; the local copy only changes once the write succeeds.
type Editor struct {
	mu     sync.Mutex
	gw     Gateway
	tr     Translator
	logger *slog.Logger
	now    func() time.Time

	hero     model.Hero
	about    model.About
	contact  model.Contact
	skills   []model.Skill
	projects []model.Project

	// failed names the sections that did not load. Set once by LoadEditor.
	failed map[string]bool

	pendingSkills   pending[model.Skill]
	pendingProjects pending[model.Project]

	message Message
}

// LoadEditor fetches every section into a new Editor. A failed section
// leaves the "Error loading data" message while the others still load.
func LoadEditor(ctx context.Context, gw Gateway, tr Translator, logger *slog.Logger) *Editor {
	e := &Editor{
		gw:     gw,
		tr:     tr,
		logger: logger,
		now:    time.Now,
	}

	content, err := fetchAll(ctx, gw)
	e.hero = content.Hero
	e.about = content.About
	e.contact = content.Contact
	e.skills = content.Skills
	e.projects = content.Projects

	e.failed = failedSections(err)

	if err != nil {
		logger.Error("error loading admin data", "error", err)
		e.setMessage("Error loading data", MessageError)
	}
	return e
}

// Loaded reports whether section ("skills", "projects", ...) loaded.
func (e *Editor) Loaded(section string) bool {
	return !e.failed[section]
}

// missingRow explains why id is not in the local copy of section.
func (e *Editor) missingRow(section, id string) error {
	if !e.Loaded(section) {
		return fmt.Errorf("%s %q: %w", section, id, ErrNotLoaded)
	}
	return fmt.Errorf("%s %q: %w", section, id, ErrRowNotFound)
}

// Message returns the latest status message, if any.
func (e *Editor) Message() (Message, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message, e.message.Text != ""
}

// Hero returns the local hero copy.
func (e *Editor) Hero() model.Hero {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hero
}

// About returns the local about copy.
func (e *Editor) About() model.About {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.about
}

// Contact returns the local contact copy.
func (e *Editor) Contact() model.Contact {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.contact
}

// Skills returns a copy of the local skill rows.
func (e *Editor) Skills() []model.Skill {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.skills)
}

// Projects returns a copy of the local project rows.
func (e *Editor) Projects() []model.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Project, len(e.projects))
	for i, p := range e.projects {
		out[i] = cloneProject(p)
	}
	return out
}

// SaveHero replaces the hero section.
func (e *Editor) SaveHero(ctx context.Context, hero model.Hero) error {
	if err := e.gw.PutHero(ctx, hero); err != nil {
		e.fail(err, "Error updating hero section", "হিরো সেকশন আপডেট এরর")
		return err
	}
	e.mu.Lock()
	e.hero = hero
	e.mu.Unlock()
	e.succeed("Hero section updated!", "হিরো সেকশন আপডেট হয়েছে!")
	return nil
}

// SaveAbout replaces the about section.
func (e *Editor) SaveAbout(ctx context.Context, about model.About) error {
	if err := e.gw.PutAbout(ctx, about); err != nil {
		e.fail(err, "Error updating about section", "আবাউট সেকশন আপডেট এরর")
		return err
	}
	e.mu.Lock()
	e.about = about
	e.mu.Unlock()
	e.succeed("About section updated!", "আবাউট সেকশন আপডেট হয়েছে!")
	return nil
}

// SaveContact replaces the contact section.
func (e *Editor) SaveContact(ctx context.Context, contact model.Contact) error {
	if err := e.gw.PutContact(ctx, contact); err != nil {
		e.fail(err, "Error updating contact info", "কনটাক্ট ইনফো আপডেট এরর")
		return err
	}
	e.mu.Lock()
	e.contact = contact
	e.mu.Unlock()
	e.succeed("Contact info updated!", "কনটাক্ট ইনফো আপডেট হয়েছে!")
	return nil
}

// AddSkill creates a default skill row on the server and appends it with
// the id the server assigned.
func (e *Editor) AddSkill(ctx context.Context) (model.Skill, error) {
	skill := model.NewSkill()
	id, err := e.gw.PostSkill(ctx, skill)
	if err != nil {
		e.fail(err, "Error adding skill", "স্কিল যুক্ত করতে এরর")
		return model.Skill{}, err
	}
	skill.ID = id

	e.mu.Lock()
	e.skills = append(e.skills, skill)
	e.mu.Unlock()
	e.succeed("Skill added!", "স্কিল যুক্ত হয়েছে!")
	return skill, nil
}

// UpdateSkill writes one skill row.
func (e *Editor) UpdateSkill(ctx context.Context, id string, skill model.Skill) error {
	if e.skillIndex(id) < 0 {
		return e.missingRow("skills", id)
	}
	skill.ID = id
	if err := e.gw.PutSkill(ctx, id, skill); err != nil {
		e.fail(err, "Error updating skill", "স্কিল আপডেট এরর")
		return err
	}
	e.mu.Lock()
	e.replaceSkill(skill)
	e.pendingSkills.drop(id)
	e.mu.Unlock()
	e.succeed("Skill updated!", "স্কিল আপডেট হয়েছে!")
	return nil
}

// DeleteSkill removes one skill row.
func (e *Editor) DeleteSkill(ctx context.Context, id string) error {
	if err := e.gw.DeleteSkill(ctx, id); err != nil {
		e.fail(err, "Error deleting skill", "স্কিল ডিলিট এরর")
		return err
	}
	e.mu.Lock()
	e.skills = slices.DeleteFunc(e.skills, func(s model.Skill) bool { return s.ID == id })
	e.pendingSkills.drop(id)
	e.mu.Unlock()
	e.succeed("Skill deleted!", "স্কিল ডিলিট হয়েছে!")
	return nil
}

// AddProject creates a default project row ordered after the existing ones.
func (e *Editor) AddProject(ctx context.Context) (model.Project, error) {
	e.mu.Lock()
	project := model.NewProject(len(e.projects))
	e.mu.Unlock()

	id, err := e.gw.PostProject(ctx, project)
	if err != nil {
		e.fail(err, "Error adding project", "প্রজেক্ট যুক্ত করতে এরর")
		return model.Project{}, err
	}
	project.ID = id

	e.mu.Lock()
	e.projects = append(e.projects, project)
	e.mu.Unlock()
	e.succeed("Project added!", "প্রজেক্ট যুক্ত হয়েছে!")
	return cloneProject(project), nil
}

// UpdateProject writes one project row.
func (e *Editor) UpdateProject(ctx context.Context, id string, project model.Project) error {
	if e.projectIndex(id) < 0 {
		return e.missingRow("projects", id)
	}
	project = cloneProject(project)
	project.ID = id
	if err := e.gw.PutProject(ctx, id, project); err != nil {
		e.fail(err, "Error updating project", "প্রজেক্ট আপডেট এরর")
		return err
	}
	e.mu.Lock()
	e.replaceProject(project)
	e.pendingProjects.drop(id)
	e.mu.Unlock()
	e.succeed("Project updated!", "প্রজেক্ট আপডেট হয়েছে!")
	return nil
}

// DeleteProject removes one project row.
func (e *Editor) DeleteProject(ctx context.Context, id string) error {
	if err := e.gw.DeleteProject(ctx, id); err != nil {
		e.fail(err, "Error deleting project", "প্রজেক্ট ডিলিট এরর")
		return err
	}
	e.mu.Lock()
	e.projects = slices.DeleteFunc(e.projects, func(p model.Project) bool { return p.ID == id })
	e.pendingProjects.drop(id)
	e.mu.Unlock()
	e.succeed("Project deleted!", "প্রজেক্ট ডিলিট হয়েছে!")
	return nil
}

func (e *Editor) succeed(en, bn string) {
	e.setMessage(e.tr.T(en, bn), MessageSuccess)
}

func (e *Editor) fail(err error, en, bn string) {
	e.logger.Error(en, "error", err)
	e.setMessage(e.tr.T(en, bn), MessageError)
}

func (e *Editor) setMessage(text string, kind MessageKind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.message = Message{Text: text, Kind: kind, CreatedAt: e.now()}
}

func (e *Editor) skillIndex(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.IndexFunc(e.skills, func(s model.Skill) bool { return s.ID == id })
}

func (e *Editor) projectIndex(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.IndexFunc(e.projects, func(p model.Project) bool { return p.ID == id })
}

// replaceSkill must be called with e.mu held.
func (e *Editor) replaceSkill(skill model.Skill) {
	if i := slices.IndexFunc(e.skills, func(s model.Skill) bool { return s.ID == skill.ID }); i >= 0 {
		e.skills[i] = skill
	}
}

// replaceProject must be called with e.mu held.
func (e *Editor) replaceProject(project model.Project) {
	if i := slices.IndexFunc(e.projects, func(p model.Project) bool { return p.ID == project.ID }); i >= 0 {
		e.projects[i] = project
	}
}

func cloneProject(p model.Project) model.Project {
	p.TechStack = slices.Clone(p.TechStack)
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return p
}
