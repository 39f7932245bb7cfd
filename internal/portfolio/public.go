// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package portfolio

import (
	"context"
	"log/slog"

	"github.com/sohoj8245-gif/portfolio/internal/model"
)

// PublicPage is the data behind the public portfolio view.
type PublicPage struct {
	Content
	SkillGroups []model.SkillGroup
}

// LoadPublicPage fetches every section and always returns a page ready to
// render. Sections that fail to load are logged and left empty.
func LoadPublicPage(ctx context.Context, r Reader, logger *slog.Logger) *PublicPage {
	content, err := fetchAll(ctx, r)
	if err != nil {
		logger.Error("error fetching portfolio data", "error", err)
	}
	return &PublicPage{
		Content:     content,
		SkillGroups: model.GroupSkills(content.Skills),
	}
}

// DisplayHero returns the hero with localized placeholders for missing text.
func (p *PublicPage) DisplayHero(tr Translator) model.Hero {
	h := p.Hero
	if h.Name == "" {
		h.Name = tr.T("Your Name", "আপনার নাম")
	}
	if h.Title == "" {
		h.Title = tr.T("Full Stack Developer", "ফুল স্ট্যাক ডেভেলপার")
	}
	if h.Tagline == "" {
		h.Tagline = tr.T("Building amazing web and mobile applications", "দুর্দান্ত ওয়েব এবং মোবাইল অ্যাপ্লিকেশন তৈরি করছি")
	}
	return h
}

// ShowAbout reports whether the about section has any text.
func (p *PublicPage) ShowAbout() bool { return !p.About.IsEmpty() }

// ShowSkills reports whether there is at least one skill.
func (p *PublicPage) ShowSkills() bool { return len(p.Skills) > 0 }

// ShowProjects reports whether there is at least one project.
func (p *PublicPage) ShowProjects() bool { return len(p.Projects) > 0 }

// ShowContact reports whether the contact section is rendered.
func (p *PublicPage) ShowContact() bool { return p.Contact.Visible() }

// AboutText is the about text in the current language.
func (p *PublicPage) AboutText(tr Translator) string {
	return tr.T(p.About.TextEN, p.About.TextBN)
}

// ProjectDescription is the project description in the current language.
func ProjectDescription(tr Translator, project model.Project) string {
	return tr.T(project.DescriptionEN, project.DescriptionBN)
}
