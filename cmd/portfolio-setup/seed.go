// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"

	"github.com/sohoj8245-gif/portfolio/internal/model"
	"github.com/sohoj8245-gif/portfolio/internal/portfolio"
)

var sampleHero = model.Hero{
	Name:     "Your Name",
	Title:    "Full Stack Developer",
	Tagline:  "Building amazing web and mobile applications with modern technologies",
	ImageURL: "https://via.placeholder.com/200",
}

var sampleAbout = model.About{
	TextEN: "I am a passionate Full Stack Developer with expertise in web and mobile application development. " +
		"I love creating efficient, scalable, and user-friendly solutions.",
	TextBN: "আমি একজন উৎসাহী ফুল স্ট্যাক ডেভেলপার যার ওয়েব এবং মোবাইল অ্যাপ্লিকেশন ডেভেলপমেন্টে দক্ষতা রয়েছে। " +
		"আমি দক্ষ, স্কেলেবল এবং ব্যবহারকারী-বান্ধব সমাধান তৈরি করতে ভালোবাসি।",
}

var sampleSkills = []model.Skill{
	{Name: "React", Category: model.CategoryFrontend},
	{Name: "Laravel", Category: model.CategoryBackend},
	{Name: "Flutter", Category: model.CategoryMobile},
	{Name: "Java", Category: model.CategoryMobile},
	{Name: "Python", Category: model.CategoryBackend},
	{Name: "FastAPI", Category: model.CategoryBackend},
	{Name: "Docker", Category: model.CategoryDevOps},
	{Name: "AWS", Category: model.CategoryDevOps},
}

var sampleProjects = []model.Project{
	{
		Title:         "E-commerce Platform",
		DescriptionEN: "A full-featured e-commerce platform with payment integration",
		DescriptionBN: "পেমেন্ট ইন্টিগ্রেশন সহ একটি সম্পূর্ণ ই-কমার্স প্ল্যাটফর্ম",
		TechStack:     []string{"React", "Laravel", "MySQL"},
		ImageURL:      "https://via.placeholder.com/400x300",
		Order:         0,
	},
	{
		Title:         "Mobile Chat App",
		DescriptionEN: "Real-time chat application with Flutter",
		DescriptionBN: "ফ্লাটার দিয়ে রিয়েল-টাইম চ্যাট অ্যাপ্লিকেশন",
		TechStack:     []string{"Flutter", "Firebase", "Dart"},
		ImageURL:      "https://via.placeholder.com/400x300",
		Order:         1,
	},
}

var sampleContact = model.Contact{
	Email:    "your.email@example.com",
	Phone:    "+880 1234567890",
	Location: "Dhaka, Bangladesh",
	GitHub:   "https://github.com/yourusername",
	LinkedIn: "https://linkedin.com/in/yourusername",
	Twitter:  "https://twitter.com/yourusername",
}

// seedResult counts what seed wrote.
type seedResult struct {
	Skills   int
	Projects int
}

// seed writes the sample portfolio. It stops at the first failed write.
func seed(ctx context.Context, w portfolio.Writer) (seedResult, error) {
	var res seedResult

	if err := w.PutHero(ctx, sampleHero); err != nil {
		return res, fmt.Errorf("hero: %w", err)
	}
	if err := w.PutAbout(ctx, sampleAbout); err != nil {
		return res, fmt.Errorf("about: %w", err)
	}
	for _, s := range sampleSkills {
		if _, err := w.PostSkill(ctx, s); err != nil {
			return res, fmt.Errorf("skill %s: %w", s.Name, err)
		}
		res.Skills++
	}
	for _, p := range sampleProjects {
		if _, err := w.PostProject(ctx, p); err != nil {
			return res, fmt.Errorf("project %s: %w", p.Title, err)
		}
		res.Projects++
	}
	if err := w.PutContact(ctx, sampleContact); err != nil {
		return res, fmt.Errorf("contact: %w", err)
	}
	return res, nil
}
