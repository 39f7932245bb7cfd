// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package repository persists portfolio content and admin accounts with GORM.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sohoj8245-gif/portfolio/internal/logging"
	"github.com/sohoj8245-gif/portfolio/internal/model"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Open connects to the content database. driver is "sqlite" (dsn is a file
// path) or "postgres" (dsn is a libpq connection string).
func Open(driver, dsn string, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		if dsn != ":memory:" && dsn != "" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Repository reads and writes portfolio content.
type Repository struct {
	db  *gorm.DB
	seq atomic.Int64
}

// New wraps an open database.
func New(db *gorm.DB) *Repository {
	r := &Repository{db: db}
	r.seq.Store(time.Now().UnixNano())
	return r
}

// Migrate creates or updates the tables.
func (r *Repository) Migrate(ctx context.Context) error {
	err := r.db.WithContext(ctx).AutoMigrate(
		&Admin{},
		&heroRecord{},
		&aboutRecord{},
		&contactRecord{},
		&skillRecord{},
		&projectRecord{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// nextSeq returns an increasing number used to keep rows in insertion order.
func (r *Repository) nextSeq() int64 {
	return r.seq.Add(1)
}

// CountAdmins returns the number of admin accounts.
func (r *Repository) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Admin{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting admins: %w", err)
	}
	return n, nil
}

// CreateAdmin stores a new admin account.
func (r *Repository) CreateAdmin(ctx context.Context, username, passwordHash string) error {
	admin := Admin{Username: username, PasswordHash: passwordHash}
	if err := r.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	return nil
}

// FindAdmin looks up an admin by username.
func (r *Repository) FindAdmin(ctx context.Context, username string) (Admin, error) {
	var admin Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Admin{}, ErrNotFound
	}
	if err != nil {
		return Admin{}, fmt.Errorf("finding admin: %w", err)
	}
	return admin, nil
}

// UpdateAdminPassword replaces an admin's password hash.
func (r *Repository) UpdateAdminPassword(ctx context.Context, id uint, passwordHash string) error {
	err := r.db.WithContext(ctx).Model(&Admin{}).Where("id = ?", id).Update("password_hash", passwordHash).Error
	if err != nil {
		return fmt.Errorf("updating admin password: %w", err)
	}
	return nil
}

// getSingleton loads the single row of a section; found is false when the
// section was never saved.
func getSingleton[T any](ctx context.Context, db *gorm.DB) (rec T, found bool, err error) {
	err = db.WithContext(ctx).Where("id = ?", singletonID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, false, nil
	}
	if err != nil {
		return rec, false, err
	}
	return rec, true, nil
}

// putSingleton replaces the single row of a section.
func putSingleton[T any](ctx context.Context, db *gorm.DB, rec *T) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error
}

// Hero returns the hero section.
func (r *Repository) Hero(ctx context.Context) (model.Hero, bool, error) {
	rec, found, err := getSingleton[heroRecord](ctx, r.db)
	if err != nil {
		return model.Hero{}, false, fmt.Errorf("loading hero: %w", err)
	}
	return rec.model(), found, nil
}

// SaveHero replaces the hero section.
func (r *Repository) SaveHero(ctx context.Context, h model.Hero) error {
	rec := heroFromModel(h)
	if err := putSingleton(ctx, r.db, &rec); err != nil {
		return fmt.Errorf("saving hero: %w", err)
	}
	return nil
}

// About returns the about section.
func (r *Repository) About(ctx context.Context) (model.About, bool, error) {
	rec, found, err := getSingleton[aboutRecord](ctx, r.db)
	if err != nil {
		return model.About{}, false, fmt.Errorf("loading about: %w", err)
	}
	return rec.model(), found, nil
}

// SaveAbout replaces the about section.
func (r *Repository) SaveAbout(ctx context.Context, a model.About) error {
	rec := aboutFromModel(a)
	if err := putSingleton(ctx, r.db, &rec); err != nil {
		return fmt.Errorf("saving about: %w", err)
	}
	return nil
}

// Contact returns the contact section.
func (r *Repository) Contact(ctx context.Context) (model.Contact, bool, error) {
	rec, found, err := getSingleton[contactRecord](ctx, r.db)
	if err != nil {
		return model.Contact{}, false, fmt.Errorf("loading contact: %w", err)
	}
	return rec.model(), found, nil
}

// SaveContact replaces the contact section.
func (r *Repository) SaveContact(ctx context.Context, c model.Contact) error {
	rec := contactFromModel(c)
	if err := putSingleton(ctx, r.db, &rec); err != nil {
		return fmt.Errorf("saving contact: %w", err)
	}
	return nil
}

// Skills returns every skill in insertion order.
func (r *Repository) Skills(ctx context.Context) ([]model.Skill, error) {
	var recs []skillRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	out := make([]model.Skill, len(recs))
	for i, rec := range recs {
		out[i] = rec.model()
	}
	return out, nil
}

// CreateSkill stores a skill under a new UUID and returns the id.
func (r *Repository) CreateSkill(ctx context.Context, s model.Skill) (string, error) {
	rec := skillRecord{
		ID:       uuid.NewString(),
		Seq:      r.nextSeq(),
		Name:     s.Name,
		Category: string(s.Category),
		Icon:     s.Icon,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", fmt.Errorf("creating skill: %w", err)
	}
	return rec.ID, nil
}

// UpdateSkill replaces the fields of skill id.
func (r *Repository) UpdateSkill(ctx context.Context, id string, s model.Skill) error {
	res := r.db.WithContext(ctx).Model(&skillRecord{}).Where("id = ?", id).Updates(map[string]any{
		"name":     s.Name,
		"category": string(s.Category),
		"icon":     s.Icon,
	})
	if res.Error != nil {
		return fmt.Errorf("updating skill: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSkill removes skill id.
func (r *Repository) DeleteSkill(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&skillRecord{})
	if res.Error != nil {
		return fmt.Errorf("deleting skill: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Projects returns every project sorted by display order, ties in
// insertion order.
func (r *Repository) Projects(ctx context.Context) ([]model.Project, error) {
	var recs []projectRecord
	if err := r.db.WithContext(ctx).Order("sort_order").Order("seq").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	out := make([]model.Project, len(recs))
	for i, rec := range recs {
		out[i] = rec.model()
	}
	return out, nil
}

// CreateProject stores a project under a new UUID and returns the id.
func (r *Repository) CreateProject(ctx context.Context, p model.Project) (string, error) {
	rec := projectRecord{
		ID:            uuid.NewString(),
		Seq:           r.nextSeq(),
		Title:         p.Title,
		DescriptionEN: p.DescriptionEN,
		DescriptionBN: p.DescriptionBN,
		TechStack:     techStack(p.TechStack),
		ImageURL:      p.ImageURL,
		ProjectURL:    p.ProjectURL,
		GitHubURL:     p.GitHubURL,
		SortOrder:     p.Order,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", fmt.Errorf("creating project: %w", err)
	}
	return rec.ID, nil
}

// UpdateProject replaces the fields of project id.
func (r *Repository) UpdateProject(ctx context.Context, id string, p model.Project) error {
	var rec projectRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}

	rec.Title = p.Title
	rec.DescriptionEN = p.DescriptionEN
	rec.DescriptionBN = p.DescriptionBN
	rec.TechStack = techStack(p.TechStack)
	rec.ImageURL = p.ImageURL
	rec.ProjectURL = p.ProjectURL
	rec.GitHubURL = p.GitHubURL
	rec.SortOrder = p.Order

	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

// DeleteProject removes project id.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&projectRecord{})
	if res.Error != nil {
		return fmt.Errorf("deleting project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func techStack(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
