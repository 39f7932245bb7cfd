// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package portfolio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/sohoj8245-gif/portfolio/internal/model"
)

var errBackend = errors.New("backend unavailable")

// fakeGateway is an in-memory backend. Methods named in fail return
// errBackend without touching state.
type fakeGateway struct {
	mu       sync.Mutex
	content  Content
	fail     map[string]bool
	calls    map[string]int
	nextID   int
	putSkill []string
	putProj  []string
}

func newFakeGateway(c Content) *fakeGateway {
	return &fakeGateway{content: c, fail: map[string]bool{}, calls: map[string]int{}}
}

func (f *fakeGateway) enter(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	if f.fail[name] {
		return errBackend
	}
	return nil
}

func (f *fakeGateway) setFail(name string, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[name] = v
}

func (f *fakeGateway) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeGateway) GetHero(context.Context) (model.Hero, error) {
	if err := f.enter("GetHero"); err != nil {
		return model.Hero{}, err
	}
	return f.content.Hero, nil
}

func (f *fakeGateway) GetAbout(context.Context) (model.About, error) {
	if err := f.enter("GetAbout"); err != nil {
		return model.About{}, err
	}
	return f.content.About, nil
}

func (f *fakeGateway) GetSkills(context.Context) ([]model.Skill, error) {
	if err := f.enter("GetSkills"); err != nil {
		return nil, err
	}
	return append([]model.Skill{}, f.content.Skills...), nil
}

func (f *fakeGateway) GetProjects(context.Context) ([]model.Project, error) {
	if err := f.enter("GetProjects"); err != nil {
		return nil, err
	}
	return append([]model.Project{}, f.content.Projects...), nil
}

func (f *fakeGateway) GetContact(context.Context) (model.Contact, error) {
	if err := f.enter("GetContact"); err != nil {
		return model.Contact{}, err
	}
	return f.content.Contact, nil
}

func (f *fakeGateway) PutHero(_ context.Context, h model.Hero) error {
	if err := f.enter("PutHero"); err != nil {
		return err
	}
	f.content.Hero = h
	return nil
}

func (f *fakeGateway) PutAbout(_ context.Context, a model.About) error {
	if err := f.enter("PutAbout"); err != nil {
		return err
	}
	f.content.About = a
	return nil
}

func (f *fakeGateway) PutContact(_ context.Context, c model.Contact) error {
	if err := f.enter("PutContact"); err != nil {
		return err
	}
	f.content.Contact = c
	return nil
}

func (f *fakeGateway) PostSkill(context.Context, model.Skill) (string, error) {
	if err := f.enter("PostSkill"); err != nil {
		return "", err
	}
	f.nextID++
	return fmt.Sprintf("s%d", f.nextID), nil
}

func (f *fakeGateway) PutSkill(_ context.Context, id string, _ model.Skill) error {
	if err := f.enter("PutSkill"); err != nil {
		return err
	}
	f.putSkill = append(f.putSkill, id)
	return nil
}

func (f *fakeGateway) DeleteSkill(context.Context, string) error {
	return f.enter("DeleteSkill")
}

func (f *fakeGateway) PostProject(context.Context, model.Project) (string, error) {
	if err := f.enter("PostProject"); err != nil {
		return "", err
	}
	f.nextID++
	return fmt.Sprintf("p%d", f.nextID), nil
}

func (f *fakeGateway) PutProject(_ context.Context, id string, _ model.Project) error {
	if err := f.enter("PutProject:" + id); err != nil {
		return err
	}
	if err := f.enter("PutProject"); err != nil {
		return err
	}
	f.putProj = append(f.putProj, id)
	return nil
}

func (f *fakeGateway) DeleteProject(context.Context, string) error {
	return f.enter("DeleteProject")
}

// english and bangla are fixed translators.
type english struct{}

func (english) T(en, _ string) string { return en }

type bangla struct{}

func (bangla) T(_, bn string) string { return bn }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
