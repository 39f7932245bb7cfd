// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/sohoj8245-gif/portfolio/internal/client"
	"github.com/sohoj8245-gif/portfolio/internal/i18n"
	"github.com/sohoj8245-gif/portfolio/internal/kv"
	"github.com/sohoj8245-gif/portfolio/internal/portfolio"
	"github.com/sohoj8245-gif/portfolio/internal/render"
	"github.com/sohoj8245-gif/portfolio/internal/session"
)

// AdminHandler serves the admin panel and its form posts.
type AdminHandler struct {
	client         *client.Client
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	logger         *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(c *client.Client, renderer *render.Renderer, sm *scs.SessionManager, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		client:         c,
		renderer:       renderer,
		sessionManager: sm,
		logger:         logger,
	}
}

// AdminTab is one entry of the admin tab bar.
type AdminTab struct {
	Name  string
	Label string
}

// AdminData is the data behind the admin template.
type AdminData struct {
	Editor *portfolio.Editor
	Tab    string
	Tabs   []AdminTab
}

// adminRequest is the per-request state of an admin action.
type adminRequest struct {
	session *session.Store
	locale  *i18n.Locale
	editor  *portfolio.Editor
}

// load fetches the current portfolio into a new editor that sends the
// session's bearer token.
func (h *AdminHandler) load(r *http.Request) adminRequest {
	store := kv.NewSession(r.Context(), h.sessionManager)
	sess := session.NewStore(store, h.client, h.logger)
	loc := i18n.NewLocale(store)
	ed := portfolio.LoadEditor(r.Context(), h.client.WithTokens(sess), loc, h.logger)
	return adminRequest{session: sess, locale: loc, editor: ed}
}

func tabLabels(loc *i18n.Locale) []AdminTab {
	labels := map[string][2]string{
		"hero":     {"Hero", "হিরো"},
		"about":    {"About", "আবাউট"},
		"skills":   {"Skills", "স্কিলস"},
		"projects": {"Projects", "প্রজেক্টস"},
		"contact":  {"Contact", "কনটাক্ট"},
	}
	tabs := make([]AdminTab, 0, len(portfolio.Tabs))
	for _, name := range portfolio.Tabs {
		l := labels[name]
		tabs = append(tabs, AdminTab{Name: name, Label: loc.T(l[0], l[1])})
	}
	return tabs
}

// Dashboard renders the admin panel with every section loaded.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	req := h.load(r)

	tab := r.URL.Query().Get("tab")
	if !portfolio.ValidTab(tab) {
		tab = portfolio.DefaultTab
	}

	data := render.TemplateData{
		Title:  req.locale.T("Admin Panel", "অ্যাডমিন প্যানেল"),
		Locale: req.locale,
		Data: AdminData{
			Editor: req.editor,
			Tab:    tab,
			Tabs:   tabLabels(req.locale),
		},
	}

	// A load failure outranks the message carried over from the last write.
	if msg, ok := req.editor.Message(); ok {
		h.renderer.PopFlash(r)
		data.Flash = &msg
	} else if msg, ok := h.renderer.PopFlash(r); ok && !msg.Expired(time.Now()) {
		data.Flash = &msg
	}

	if err := h.renderer.Render(w, r, pageAdmin, data); err != nil {
		logAndInternalError(w, h.logger, "failed to render admin panel", "error", err)
	}
}

// finish reports the outcome of an editor action. A rejected token ends
// the admin session; everything else flashes the editor's message and
// returns to tab.
func (h *AdminHandler) finish(w http.ResponseWriter, r *http.Request, req adminRequest, tab string, err error) {
	if client.IsUnauthorized(err) {
		h.logger.Info("admin token rejected, logging out", "error", err)
		if lerr := req.session.Logout(); lerr != nil {
			h.logger.Warn("failed to clear session token", "error", lerr)
		}
		flashAndRedirect(w, r, h.renderer, RouteLogin, portfolio.NewMessage(
			req.locale.T("Session expired, please log in again", "সেশনের মেয়াদ শেষ, আবার লগইন করুন"),
			portfolio.MessageError))
		return
	}

	msg, ok := req.editor.Message()
	var apiErr *client.APIError
	switch {
	case errors.Is(err, portfolio.ErrNotLoaded):
		// The editor already carries the load error.
	case errors.Is(err, portfolio.ErrRowNotFound):
		msg = portfolio.NewMessage(req.locale.T("Item not found", "আইটেম পাওয়া যায়নি"), portfolio.MessageError)
	case !ok && err != nil:
		msg = portfolio.NewMessage(req.locale.T("Something went wrong", "কিছু একটা ভুল হয়েছে"), portfolio.MessageError)
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		msg.Text += ": " + apiErr.Detail
	}
	h.renderer.SetFlash(r, msg)
	http.Redirect(w, r, adminTabURL(tab), http.StatusSeeOther)
}

// SaveHero handles the hero form.
func (h *AdminHandler) SaveHero(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminTabURL("hero")) {
		return
	}
	req := h.load(r)
	h.finish(w, r, req, "hero", req.editor.SaveHero(r.Context(), heroFromForm(r.PostForm)))
}

// SaveAbout handles the about form.
func (h *AdminHandler) SaveAbout(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminTabURL("about")) {
		return
	}
	req := h.load(r)
	h.finish(w, r, req, "about", req.editor.SaveAbout(r.Context(), aboutFromForm(r.PostForm)))
}

// SaveContact handles the contact form.
func (h *AdminHandler) SaveContact(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminTabURL("contact")) {
		return
	}
	req := h.load(r)
	h.finish(w, r, req, "contact", req.editor.SaveContact(r.Context(), contactFromForm(r.PostForm)))
}

// AddSkill appends a blank skill row.
func (h *AdminHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	req := h.load(r)
	_, err := req.editor.AddSkill(r.Context())
	h.finish(w, r, req, "skills", err)
}

// UpdateSkill saves the row {id} of the skills form.
func (h *AdminHandler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminTabURL("skills")) {
		return
	}
	id := chi.URLParam(r, "id")
	req := h.load(r)
	row, ok := findRow(skillRowsFromForm(r.PostForm), id, skillID)
	if !ok {
		h.finish(w, r, req, "skills", portfolio.ErrRowNotFound)
		return
	}
	h.finish(w, r, req, "skills", req.editor.UpdateSkill(r.Context(), id, row))
}

// DeleteSkill removes the row {id}.
func (h *AdminHandler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	req := h.load(r)
	h.finish(w, r, req, "skills", req.editor.DeleteSkill(r.Context(), chi.URLParam(r, "id")))
}

// SaveSkills saves every edited skill row in one pass.
func (h *AdminHandler) SaveSkills(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminTabURL("skills")) {
		return
	}
	req := h.load(r)
	if !req.editor.Loaded("skills") {
		h.finish(w, r, req, "skills", portfolio.ErrNotLoaded)
		return
	}
	req.editor.StageChangedSkills(skillRowsFromForm(r.PostForm))
	_, err := req.editor.Flush(r.Context())
	h.finish(w, r, req, "skills", err)
}

// AddProject appends a blank project row.
func (h *AdminHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	req := h.load(r)
	_, err := req.editor.AddProject(r.Context())
	h.finish(w, r, req, "projects", err)
}

// UpdateProject saves the row {id} of the projects form.
func (h *AdminHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminTabURL("projects")) {
		return
	}
	id := chi.URLParam(r, "id")
	req := h.load(r)
	row, ok := findRow(projectRowsFromForm(r.PostForm), id, projectID)
	if !ok {
		h.finish(w, r, req, "projects", portfolio.ErrRowNotFound)
		return
	}
	h.finish(w, r, req, "projects", req.editor.UpdateProject(r.Context(), id, row))
}

// DeleteProject removes the row {id}.
func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	req := h.load(r)
	h.finish(w, r, req, "projects", req.editor.DeleteProject(r.Context(), chi.URLParam(r, "id")))
}

// SaveProjects saves every edited project row in one pass.
func (h *AdminHandler) SaveProjects(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminTabURL("projects")) {
		return
	}
	req := h.load(r)
	if !req.editor.Loaded("projects") {
		h.finish(w, r, req, "projects", portfolio.ErrNotLoaded)
		return
	}
	req.editor.StageChangedProjects(projectRowsFromForm(r.PostForm))
	_, err := req.editor.Flush(r.Context())
	h.finish(w, r, req, "projects", err)
}
