// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"compress/gzip"
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohoj8245-gif/portfolio/internal/auth"
	"github.com/sohoj8245-gif/portfolio/internal/cache"
	"github.com/sohoj8245-gif/portfolio/internal/client"
	"github.com/sohoj8245-gif/portfolio/internal/handler/api"
	"github.com/sohoj8245-gif/portfolio/internal/middleware"
	"github.com/sohoj8245-gif/portfolio/internal/render"
	"github.com/sohoj8245-gif/portfolio/internal/session"
	"github.com/sohoj8245-gif/portfolio/internal/testutil"
	"github.com/sohoj8245-gif/portfolio/web"
)

const (
	testSecret   = "test-secret-0123456789abcdef-0123456789"
	testUser     = "admin"
	testPassword = "admin123"
)

// stack is a web frontend talking to a real API backed by SQLite.
type stack struct {
	web    *httptest.Server
	api    *httptest.Server
	client *client.Client
	http   *http.Client
}

func newStack(t *testing.T, tokenTTL time.Duration) *stack {
	t.Helper()
	logger := testutil.TestLoggerSilent()
	repo := testutil.TestRepository(t)

	mc := cache.NewMemoryCache(time.Minute)
	apiHandler := api.NewHandler(repo, auth.NewTokens(testSecret, tokenTTL), mc, api.Config{
		Login: middleware.LoginProtectionConfig{IPRateLimit: 100, IPBurst: 100},
	}, logger)
	apiRouter := chi.NewRouter()
	apiHandler.Routes(apiRouter)
	apiSrv := httptest.NewServer(apiRouter)

	c := client.New(apiSrv.URL)
	require.NoError(t, c.SetupAdmin(context.Background(), testUser, testPassword))

	sessionDB := testutil.TestSessionDB(t)
	sm := session.New(sessionDB, true)
	templates, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm, Logger: logger})
	require.NoError(t, err)

	webSrv := httptest.NewServer(NewRouter(RouterConfig{
		Client:         c,
		Renderer:       renderer,
		SessionManager: sm,
		Logger:         logger,
		SessionDB:      sessionDB,
		Version:        "test",
		Security:       middleware.DefaultSecurityHeadersConfig(true),
		CSRF:           middleware.DefaultCSRFConfig(nil, true, "127.0.0.1:0"),
	}))

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		webSrv.Close()
		apiSrv.Close()
		_ = mc.Close()
	})
	return &stack{web: webSrv, api: apiSrv, client: c, http: &http.Client{Jar: jar}}
}

// get follows redirects and returns the final path, status, and body.
func (s *stack) get(t *testing.T, path string) (string, int, string) {
	t.Helper()
	resp, err := s.http.Get(s.web.URL + path)
	require.NoError(t, err)
	return readResponse(t, resp)
}

// post submits a form, follows redirects, and returns the final path,
// status, and body.
func (s *stack) post(t *testing.T, path string, form url.Values) (string, int, string) {
	t.Helper()
	resp, err := s.http.PostForm(s.web.URL+path, form)
	require.NoError(t, err)
	return readResponse(t, resp)
}

func (s *stack) login(t *testing.T) string {
	t.Helper()
	final, status, body := s.post(t, RouteLogin, url.Values{"username": {testUser}, "password": {testPassword}})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, RouteAdmin, final)
	return body
}

func readResponse(t *testing.T, resp *http.Response) (string, int, string) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	final := resp.Request.URL.Path
	if q := resp.Request.URL.RawQuery; q != "" {
		final += "?" + q
	}
	return final, resp.StatusCode, string(body)
}

func TestAdmin_RequiresLogin(t *testing.T) {
	s := newStack(t, time.Hour)

	final, status, body := s.get(t, RouteAdmin)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, RouteLogin, final)
	assert.Contains(t, body, `data-testid="login-submit-btn"`)

	body = s.login(t)
	assert.Contains(t, body, "Admin Panel")
	assert.Contains(t, body, "Login successful")

	// The login page now forwards to the panel.
	final, _, _ = s.get(t, RouteLogin)
	assert.Equal(t, RouteAdmin, final)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newStack(t, time.Hour)

	final, status, body := s.post(t, RouteLogin, url.Values{"username": {testUser}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, RouteLogin, final)
	assert.Contains(t, body, `data-testid="error-message">Invalid credentials<`)
	assert.Contains(t, body, `value="admin"`)

	final, _, _ = s.get(t, RouteAdmin)
	assert.Equal(t, RouteLogin, final)
}

func TestLogout(t *testing.T) {
	s := newStack(t, time.Hour)
	s.login(t)

	final, status, _ := s.post(t, RouteLogout, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, RouteLogin, final)

	final, _, _ = s.get(t, RouteAdmin)
	assert.Equal(t, RouteLogin, final)
}

func TestAdmin_SaveSections(t *testing.T) {
	s := newStack(t, time.Hour)
	s.login(t)

	final, _, body := s.post(t, "/admin/hero", url.Values{
		"name":    {"  Sohoj  "},
		"title":   {"Go Developer"},
		"tagline": {"Shipping services"},
	})
	assert.Equal(t, "/admin?tab=hero", final)
	assert.Contains(t, body, "Hero section updated!")
	assert.Contains(t, body, `value="Sohoj"`)

	_, _, body = s.post(t, "/admin/about", url.Values{"text_en": {"I write **Go**."}, "text_bn": {"আমি Go লিখি।"}})
	assert.Contains(t, body, "About section updated!")

	final, _, body = s.post(t, "/admin/contact", url.Values{"email": {"me@example.com"}, "location": {"Dhaka"}})
	assert.Equal(t, "/admin?tab=contact", final)
	assert.Contains(t, body, "Contact info updated!")

	hero, err := s.client.GetHero(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sohoj", hero.Name)
	assert.Equal(t, "Go Developer", hero.Title)

	_, status, page := s.get(t, RouteRoot)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, `data-testid="hero-name">Sohoj<`)
	assert.Contains(t, page, "<strong>Go</strong>")
	assert.Contains(t, page, "me@example.com")
	assert.Contains(t, page, "Sohoj. All rights reserved.")
}

func TestAdmin_Skills(t *testing.T) {
	s := newStack(t, time.Hour)
	s.login(t)
	ctx := context.Background()

	final, _, body := s.post(t, "/admin/skills", nil)
	assert.Equal(t, "/admin?tab=skills", final)
	assert.Contains(t, body, "Skill added!")

	skills, err := s.client.GetSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	id := skills[0].ID
	assert.Equal(t, "Frontend", string(skills[0].Category))

	// Save all: only the changed row is sent.
	_, _, body = s.post(t, "/admin/skills/batch", url.Values{
		"id": {id}, "name": {"Go"}, "category": {"Backend"}, "icon": {""},
	})
	assert.Contains(t, body, "Changes saved!")

	skills, err = s.client.GetSkills(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Go", skills[0].Name)
	assert.Equal(t, "Backend", string(skills[0].Category))

	// Nothing changed the second time.
	_, _, body = s.post(t, "/admin/skills/batch", url.Values{
		"id": {id}, "name": {"Go"}, "category": {"Backend"}, "icon": {""},
	})
	assert.Contains(t, body, "No changes to save")

	// Per-row save picks the row by id.
	_, _, body = s.post(t, "/admin/skills/"+id, url.Values{
		"id": {id}, "name": {"Golang"}, "category": {"Backend"}, "icon": {"🐹"},
	})
	assert.Contains(t, body, "Skill updated!")
	skills, err = s.client.GetSkills(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Golang", skills[0].Name)

	_, _, body = s.post(t, "/admin/skills/missing", url.Values{"id": {id}, "name": {"x"}})
	assert.Contains(t, body, "Item not found")

	// An unknown category reaches the backend and its reason is shown.
	_, _, body = s.post(t, "/admin/skills/"+id, url.Values{
		"id": {id}, "name": {"Golang"}, "category": {"Cooking"}, "icon": {"🐹"},
	})
	assert.Contains(t, body, "Error updating skill: Invalid skill category")
	skills, err = s.client.GetSkills(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Backend", string(skills[0].Category))

	_, _, body = s.post(t, "/admin/skills/"+id+"/delete", nil)
	assert.Contains(t, body, "Skill deleted!")
	skills, err = s.client.GetSkills(ctx)
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestAdmin_Projects(t *testing.T) {
	s := newStack(t, time.Hour)
	s.login(t)
	ctx := context.Background()

	s.post(t, "/admin/projects", nil)
	final, _, body := s.post(t, "/admin/projects", nil)
	assert.Equal(t, "/admin?tab=projects", final)
	assert.Contains(t, body, "Project added!")

	projects, err := s.client.GetProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, 0, projects[0].Order)
	assert.Equal(t, 1, projects[1].Order)

	first, second := projects[0].ID, projects[1].ID
	_, _, body = s.post(t, "/admin/projects/batch", url.Values{
		"id":             {first, second},
		"title":          {"Shop", ""},
		"description_en": {"An online shop", ""},
		"description_bn": {"একটি অনলাইন দোকান", ""},
		"tech_stack":     {"Go, , chi ,SQLite", ""},
		"image_url":      {"", ""},
		"project_url":    {"", ""},
		"github_url":     {"", ""},
		"order":          {"0", "1"},
	})
	assert.Contains(t, body, "Changes saved!")

	projects, err = s.client.GetProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Shop", projects[0].Title)
	assert.Equal(t, []string{"Go", "chi", "SQLite"}, projects[0].TechStack)

	_, _, body = s.post(t, "/admin/projects/"+second+"/delete", nil)
	assert.Contains(t, body, "Project deleted!")

	_, _, page := s.get(t, RouteRoot+"?lang=bn")
	assert.Contains(t, page, "একটি অনলাইন দোকান")
	assert.Contains(t, page, `<html lang="bn">`)
}

func TestAdmin_ExpiredTokenLogsOut(t *testing.T) {
	s := newStack(t, time.Nanosecond)
	s.login(t)

	final, _, body := s.post(t, "/admin/hero", url.Values{"name": {"Late"}})
	assert.Equal(t, RouteLogin, final)
	assert.Contains(t, body, "Session expired")

	final, _, _ = s.get(t, RouteAdmin)
	assert.Equal(t, RouteLogin, final)
}

func TestAdmin_TabSelection(t *testing.T) {
	s := newStack(t, time.Hour)
	s.login(t)

	_, _, body := s.get(t, "/admin?tab=projects")
	assert.Contains(t, body, `data-active-tab="projects"`)

	_, _, body = s.get(t, "/admin?tab=bogus")
	assert.Contains(t, body, `data-active-tab="hero"`)
}

func TestHome_Placeholders(t *testing.T) {
	s := newStack(t, time.Hour)

	_, status, body := s.get(t, RouteRoot)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `data-testid="hero-name">Your Name<`)
	assert.Contains(t, body, "Portfolio. All rights reserved.")
	assert.NotContains(t, body, `data-testid="about-text"`)
}

func TestHome_BackendDown(t *testing.T) {
	s := newStack(t, time.Hour)
	s.api.Close()

	_, status, body := s.get(t, RouteRoot)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Full Stack Developer")
}

func TestPreferences_Toggle(t *testing.T) {
	s := newStack(t, time.Hour)

	final, _, body := s.post(t, RouteLanguage, url.Values{"return": {"/"}})
	assert.Equal(t, RouteRoot, final)
	assert.Contains(t, body, `<html lang="bn">`)
	assert.Contains(t, body, "আপনার নাম")

	_, _, body = s.post(t, RouteTheme, url.Values{"return": {"//evil.example"}})
	assert.Contains(t, body, "theme-dark")

	// Both preferences survive a reload.
	_, _, body = s.get(t, RouteRoot)
	assert.Contains(t, body, `<html lang="bn">`)
	assert.Contains(t, body, "theme-dark")
}

func TestHealth(t *testing.T) {
	s := newStack(t, time.Hour)

	_, status, body := s.get(t, RouteHealth)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"status":"ok"`)
	assert.Contains(t, body, `"version":"test"`)
}

func TestHome_Gzip(t *testing.T) {
	s := newStack(t, time.Hour)

	req, err := http.NewRequest(http.MethodGet, s.web.URL+RouteRoot, nil)
	require.NoError(t, err)
	// Setting the header disables the transport's transparent decoding.
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := s.http.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Your Name")
}

func TestSafeReturnPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/admin/login", "/admin/login"},
		{"//evil.example", "/"},
		{"https://evil.example", "/"},
		{"/\\evil.example", "/"},
		{"admin", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, safeReturnPath(tt.in))
		})
	}
}

func TestSkillRowsFromForm(t *testing.T) {
	rows := skillRowsFromForm(url.Values{
		"id":       {"1", "2"},
		"name":     {" Go ", "React"},
		"category": {"Backend", "Cooking"},
		"icon":     {"🐹"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "Go", rows[0].Name)
	assert.Equal(t, "Backend", string(rows[0].Category))
	assert.Equal(t, "🐹", rows[0].Icon)
	assert.Equal(t, "Cooking", string(rows[1].Category), "categories are passed through as posted")
	assert.Empty(t, rows[1].Icon)
}

func TestProjectRowsFromForm(t *testing.T) {
	rows := projectRowsFromForm(url.Values{
		"id":             {"7"},
		"title":          {"Blog"},
		"description_en": {"  keeps\nspacing  "},
		"tech_stack":     {"Go,templ"},
		"order":          {"x"},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "  keeps\nspacing  ", rows[0].DescriptionEN)
	assert.Equal(t, []string{"Go", "templ"}, rows[0].TechStack)
	assert.Equal(t, 0, rows[0].Order)

	row, ok := findRow(rows, "7", projectID)
	assert.True(t, ok)
	assert.Equal(t, "Blog", row.Title)
	_, ok = findRow(rows, "8", projectID)
	assert.False(t, ok)
}

func TestHTMLLoginLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 1)
	h := limiter.HTMLMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 2)
	for range 2 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, RouteLogin, strings.NewReader(""))
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
