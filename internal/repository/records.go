// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repository

import (
	"time"

	"github.com/sohoj8245-gif/portfolio/internal/model"
)

// singletonID is the primary key of the hero, about and contact rows.
const singletonID = 1

// Admin is a user allowed to edit the portfolio.
type Admin struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type heroRecord struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	Title     string
	Tagline   string
	ImageURL  string
	ResumeURL string
	UpdatedAt time.Time
}

func (heroRecord) TableName() string { return "hero" }

type aboutRecord struct {
	ID        uint `gorm:"primaryKey"`
	TextEN    string
	TextBN    string
	UpdatedAt time.Time
}

func (aboutRecord) TableName() string { return "about" }

type contactRecord struct {
	ID        uint `gorm:"primaryKey"`
	Email     string
	Phone     string
	Location  string
	GitHub    string
	LinkedIn  string
	Twitter   string
	UpdatedAt time.Time
}

func (contactRecord) TableName() string { return "contact" }

type skillRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	Seq       int64  `gorm:"index"`
	Name      string `gorm:"not null"`
	Category  string `gorm:"not null"`
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (skillRecord) TableName() string { return "skills" }

type projectRecord struct {
	ID            string `gorm:"primaryKey;size:36"`
	Seq           int64  `gorm:"index"`
	Title         string
	DescriptionEN string
	DescriptionBN string
	TechStack     []string `gorm:"serializer:json"`
	ImageURL      string
	ProjectURL    string
	GitHubURL     string
	SortOrder     int `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (projectRecord) TableName() string { return "projects" }

func heroFromModel(h model.Hero) heroRecord {
	return heroRecord{
		ID:        singletonID,
		Name:      h.Name,
		Title:     h.Title,
		Tagline:   h.Tagline,
		ImageURL:  h.ImageURL,
		ResumeURL: h.ResumeURL,
	}
}

func (r heroRecord) model() model.Hero {
	return model.Hero{
		Name:      r.Name,
		Title:     r.Title,
		Tagline:   r.Tagline,
		ImageURL:  r.ImageURL,
		ResumeURL: r.ResumeURL,
	}
}

func aboutFromModel(a model.About) aboutRecord {
	return aboutRecord{ID: singletonID, TextEN: a.TextEN, TextBN: a.TextBN}
}

func (r aboutRecord) model() model.About {
	return model.About{TextEN: r.TextEN, TextBN: r.TextBN}
}

func contactFromModel(c model.Contact) contactRecord {
	return contactRecord{
		ID:       singletonID,
		Email:    c.Email,
		Phone:    c.Phone,
		Location: c.Location,
		GitHub:   c.GitHub,
		LinkedIn: c.LinkedIn,
		Twitter:  c.Twitter,
	}
}

func (r contactRecord) model() model.Contact {
	return model.Contact{
		Email:    r.Email,
		Phone:    r.Phone,
		Location: r.Location,
		GitHub:   r.GitHub,
		LinkedIn: r.LinkedIn,
		Twitter:  r.Twitter,
	}
}

func (r skillRecord) model() model.Skill {
	return model.Skill{
		ID:       r.ID,
		Name:     r.Name,
		Category: model.SkillCategory(r.Category),
		Icon:     r.Icon,
	}
}

func (r projectRecord) model() model.Project {
	tech := r.TechStack
	if tech == nil {
		tech = []string{}
	}
	return model.Project{
		ID:            r.ID,
		Title:         r.Title,
		DescriptionEN: r.DescriptionEN,
		DescriptionBN: r.DescriptionBN,
		TechStack:     tech,
		ImageURL:      r.ImageURL,
		ProjectURL:    r.ProjectURL,
		GitHubURL:     r.GitHubURL,
		Order:         r.SortOrder,
	}
}
