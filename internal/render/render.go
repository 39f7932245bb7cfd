// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded HTML templates and renders pages with
// the visitor's language, theme, and flash message.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/sohoj8245-gif/portfolio/internal/i18n"
	"github.com/sohoj8245-gif/portfolio/internal/kv"
	"github.com/sohoj8245-gif/portfolio/internal/model"
	"github.com/sohoj8245-gif/portfolio/internal/portfolio"
	"github.com/sohoj8245-gif/portfolio/internal/theme"
)

const (
	baseLayout = "layouts/base.html"
	flashKey   = "flash"
)

// Renderer holds the parsed page templates.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	logger         *slog.Logger
	now            func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	Logger         *slog.Logger
}

// New parses every page under pages/ together with the base layout and
// the partials.
func New(cfg Config) (*Renderer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		logger:         logger,
		now:            time.Now,
	}
	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parseTemplates(fsys fs.FS) error {
	partials, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return fmt.Errorf("listing partials: %w", err)
	}
	pages, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return fmt.Errorf("listing pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates found")
	}

	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")

		files := append([]string{baseLayout}, partials...)
		files = append(files, page)

		tmpl, err := template.New("").Funcs(TemplateFuncs()).ParseFS(fsys, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return nil
}

// TemplateFuncs returns the functions available to every template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown":        Markdown,
		"joinTech":        model.JoinTechStack,
		"skillCategories": model.SkillCategories,
		"projectDescription": func(loc *i18n.Locale, p model.Project) string {
			return portfolio.ProjectDescription(loc, p)
		},
		"millis": func(d time.Duration) int64 {
			return d.Milliseconds()
		},
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title string
	// Path is the request path, used as the return address of the
	// language and theme toggles.
	Path   string
	Locale *i18n.Locale
	Theme  *theme.Store
	Data   any

	// Flash is the status message carried over from the previous request.
	Flash          *portfolio.Message
	FlashRemaining time.Duration
	CurrentYear    int
}

// T is the positional language selector for templates.
func (d TemplateData) T(en, bn string) string {
	if d.Locale == nil {
		return en
	}
	return d.Locale.T(en, bn)
}

// Pick chooses the light or dark style variant for templates.
func (d TemplateData) Pick(light, dark string) string {
	if d.Theme == nil {
		return light
	}
	return d.Theme.Pick(light, dark)
}

// Lang is the value of the html lang attribute.
func (d TemplateData) Lang() string {
	if d.Locale == nil {
		return string(i18n.DefaultLanguage)
	}
	return string(d.Locale.Language())
}

// Preferences returns the visitor's locale and theme stores, bound to the
// request's browser session.
func (r *Renderer) Preferences(req *http.Request) (*i18n.Locale, *theme.Store) {
	store := kv.NewSession(req.Context(), r.sessionManager)
	return i18n.NewLocale(store), theme.NewStore(store)
}

// Render renders the page template name with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders the page template name with the given status.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	now := r.now()
	data.CurrentYear = now.Year()
	data.Path = req.URL.Path
	if data.Locale == nil || data.Theme == nil {
		loc, th := r.Preferences(req)
		if data.Locale == nil {
			data.Locale = loc
		}
		if data.Theme == nil {
			data.Theme = th
		}
	}
	if data.Flash == nil {
		if msg, ok := r.PopFlash(req); ok && !msg.Expired(now) {
			data.Flash = &msg
		}
	}
	if data.Flash != nil {
		data.FlashRemaining = data.Flash.Remaining(now)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

// SetFlash stores msg for the next rendered page.
func (r *Renderer) SetFlash(req *http.Request, msg portfolio.Message) {
	if r.sessionManager == nil || msg.Text == "" {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.Warn("failed to encode flash message", "error", err)
		return
	}
	r.sessionManager.Put(req.Context(), flashKey, string(data))
}

// PopFlash removes and returns the pending flash message.
func (r *Renderer) PopFlash(req *http.Request) (portfolio.Message, bool) {
	if r.sessionManager == nil {
		return portfolio.Message{}, false
	}
	raw := r.sessionManager.PopString(req.Context(), flashKey)
	if raw == "" {
		return portfolio.Message{}, false
	}
	var msg portfolio.Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return portfolio.Message{}, false
	}
	return msg, true
}
