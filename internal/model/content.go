// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the portfolio content types shared by the web
// frontend, the API client, and the backend.
package model

// Hero is the banner shown at the top of the public page.
// Every field is optional; missing values are rendered as placeholders.
type Hero struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Tagline   string `json:"tagline"`
	ImageURL  string `json:"image_url"`
	ResumeURL string `json:"resume_url"`
}

// About holds the biography text in both site languages.
type About struct {
	TextEN string `json:"text_en"`
	TextBN string `json:"text_bn"`
}

// IsEmpty reports whether both texts are empty strings. Whitespace counts
// as text. An empty About section is not shown on the public page.
func (a About) IsEmpty() bool {
	return a.TextEN == "" && a.TextBN == ""
}

// Contact holds the public contact details.
type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
}

// Visible reports whether the contact section should be rendered.
// The section is keyed on the email address alone.
func (c Contact) Visible() bool {
	return c.Email != ""
}

// HasSocialLinks reports whether any social profile link is set.
func (c Contact) HasSocialLinks() bool {
	return c.GitHub != "" || c.LinkedIn != "" || c.Twitter != ""
}
