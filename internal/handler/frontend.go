// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/sohoj8245-gif/portfolio/internal/model"
	"github.com/sohoj8245-gif/portfolio/internal/portfolio"
	"github.com/sohoj8245-gif/portfolio/internal/render"
)

// FrontendHandler serves the public portfolio page.
type FrontendHandler struct {
	reader   portfolio.Reader
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(reader portfolio.Reader, renderer *render.Renderer, logger *slog.Logger) *FrontendHandler {
	return &FrontendHandler{
		reader:   reader,
		renderer: renderer,
		logger:   logger,
	}
}

// PortfolioData is the data behind the portfolio template.
type PortfolioData struct {
	Page       *portfolio.PublicPage
	Hero       model.Hero
	AboutText  string
	FooterName string
}

// Home renders the portfolio. Sections that fail to load are hidden
// instead of failing the page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	page := portfolio.LoadPublicPage(r.Context(), h.reader, h.logger)
	loc, th := h.renderer.Preferences(r)

	footer := page.Hero.Name
	if footer == "" {
		footer = loc.T("Portfolio", "পোর্টফোলিও")
	}

	data := render.TemplateData{
		Title:  page.DisplayHero(loc).Name,
		Locale: loc,
		Theme:  th,
		Data: PortfolioData{
			Page:       page,
			Hero:       page.DisplayHero(loc),
			AboutText:  page.AboutText(loc),
			FooterName: footer,
		},
	}
	if err := h.renderer.Render(w, r, pagePortfolio, data); err != nil {
		logAndInternalError(w, h.logger, "failed to render portfolio", "error", err)
	}
}
