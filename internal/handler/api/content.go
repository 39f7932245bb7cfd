// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sohoj8245-gif/portfolio/internal/cache"
	"github.com/sohoj8245-gif/portfolio/internal/middleware"
	"github.com/sohoj8245-gif/portfolio/internal/model"
	"github.com/sohoj8245-gif/portfolio/internal/repository"
)

// emptyObject is the body of a singleton section that was never saved.
var emptyObject = struct{}{}

// getSection serves a singleton read through its cache.
func getSection[T any](h *Handler, w http.ResponseWriter, r *http.Request, tc *cache.TypedCache[section[T]], key string, load func(context.Context) (T, bool, error)) {
	s, err := tc.GetOrLoad(r.Context(), key, func(ctx context.Context) (section[T], error) {
		v, found, err := load(ctx)
		return section[T]{Value: v, Found: found}, err
	})
	if err != nil {
		h.writeInternalError(w, r, "failed to load "+strings.TrimPrefix(key, "section:"), err)
		return
	}
	if !s.Found {
		WriteJSON(w, http.StatusOK, emptyObject)
		return
	}
	WriteJSON(w, http.StatusOK, s.Value)
}

// putSection replaces a singleton and drops its cache entry.
func putSection[T any](h *Handler, w http.ResponseWriter, r *http.Request, key string, save func(context.Context, T) error, message string) {
	var v T
	if !decodeBody(w, r, &v) {
		return
	}
	if err := save(r.Context(), v); err != nil {
		h.writeInternalError(w, r, "failed to save "+strings.TrimPrefix(key, "section:"), err)
		return
	}
	h.invalidate(r.Context(), key)
	writeMessage(w, message)
}

// GetHero returns the hero section or {}.
func (h *Handler) GetHero(w http.ResponseWriter, r *http.Request) {
	getSection(h, w, r, h.hero, cache.KeyHero, h.store.Hero)
}

// PutHero replaces the hero section.
func (h *Handler) PutHero(w http.ResponseWriter, r *http.Request) {
	putSection(h, w, r, cache.KeyHero, h.store.SaveHero, "Hero section updated")
}

// GetAbout returns the about section or {}.
func (h *Handler) GetAbout(w http.ResponseWriter, r *http.Request) {
	getSection(h, w, r, h.about, cache.KeyAbout, h.store.About)
}

// PutAbout replaces the about section.
func (h *Handler) PutAbout(w http.ResponseWriter, r *http.Request) {
	putSection(h, w, r, cache.KeyAbout, h.store.SaveAbout, "About section updated")
}

// GetContact returns the contact section or {}.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	getSection(h, w, r, h.contact, cache.KeyContact, h.store.Contact)
}

// PutContact replaces the contact section.
func (h *Handler) PutContact(w http.ResponseWriter, r *http.Request) {
	putSection(h, w, r, cache.KeyContact, h.store.SaveContact, "Contact info updated")
}

// ListSkills returns every skill in insertion order.
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.skills.GetOrLoad(r.Context(), cache.KeySkills, h.store.Skills)
	if err != nil {
		h.writeInternalError(w, r, "failed to list skills", err)
		return
	}
	if skills == nil {
		skills = []model.Skill{}
	}
	WriteJSON(w, http.StatusOK, skills)
}

// decodeSkill reads a skill body and checks its category. An empty
// category takes the default.
func decodeSkill(w http.ResponseWriter, r *http.Request) (model.Skill, bool) {
	var s model.Skill
	if !decodeBody(w, r, &s) {
		return s, false
	}
	if s.Category == "" {
		s.Category = model.DefaultSkillCategory
	}
	if !s.Category.Valid() {
		middleware.WriteAPIError(w, http.StatusUnprocessableEntity, "Invalid skill category")
		return s, false
	}
	return s, true
}

// CreateSkill adds a skill under a server-assigned id.
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	s, ok := decodeSkill(w, r)
	if !ok {
		return
	}
	id, err := h.store.CreateSkill(r.Context(), s)
	if err != nil {
		h.writeInternalError(w, r, "failed to create skill", err)
		return
	}
	h.invalidate(r.Context(), cache.KeySkills)
	WriteJSON(w, http.StatusOK, messageResponse{Message: "Skill added", ID: id})
}

// UpdateSkill replaces skill {id}.
func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	s, ok := decodeSkill(w, r)
	if !ok {
		return
	}
	h.finishRowWrite(w, r, cache.KeySkills, "Skill",
		h.store.UpdateSkill(r.Context(), chi.URLParam(r, "id"), s), "Skill updated")
}

// DeleteSkill removes skill {id}.
func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	h.finishRowWrite(w, r, cache.KeySkills, "Skill",
		h.store.DeleteSkill(r.Context(), chi.URLParam(r, "id")), "Skill deleted")
}

// ListProjects returns every project sorted by order.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.GetOrLoad(r.Context(), cache.KeyProjects, h.store.Projects)
	if err != nil {
		h.writeInternalError(w, r, "failed to list projects", err)
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	WriteJSON(w, http.StatusOK, projects)
}

// CreateProject adds a project under a server-assigned id.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var p model.Project
	if !decodeBody(w, r, &p) {
		return
	}
	id, err := h.store.CreateProject(r.Context(), p)
	if err != nil {
		h.writeInternalError(w, r, "failed to create project", err)
		return
	}
	h.invalidate(r.Context(), cache.KeyProjects)
	WriteJSON(w, http.StatusOK, messageResponse{Message: "Project added", ID: id})
}

// UpdateProject replaces project {id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var p model.Project
	if !decodeBody(w, r, &p) {
		return
	}
	h.finishRowWrite(w, r, cache.KeyProjects, "Project",
		h.store.UpdateProject(r.Context(), chi.URLParam(r, "id"), p), "Project updated")
}

// DeleteProject removes project {id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	h.finishRowWrite(w, r, cache.KeyProjects, "Project",
		h.store.DeleteProject(r.Context(), chi.URLParam(r, "id")), "Project deleted")
}

// finishRowWrite maps the result of a per-row update or delete to a response.
func (h *Handler) finishRowWrite(w http.ResponseWriter, r *http.Request, key, entity string, err error, message string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		middleware.WriteAPIError(w, http.StatusNotFound, entity+" not found")
	case err != nil:
		h.writeInternalError(w, r, "failed to write "+strings.ToLower(entity), err)
	default:
		h.invalidate(r.Context(), key)
		writeMessage(w, message)
	}
}
