// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client is the typed gateway to the portfolio REST API.
//
// Every call is a single request: there is no retry, batching, caching, or
// client-imposed timeout. Callers decide how to present failures.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sohoj8245-gif/portfolio/internal/model"
)

// API paths, relative to the base URL.
const (
	PathAdminSetup = "/api/admin/setup"
	PathAdminLogin = "/api/admin/login"
	PathHero       = "/api/portfolio/hero"
	PathAbout      = "/api/portfolio/about"
	PathSkills     = "/api/portfolio/skills"
	PathProjects   = "/api/portfolio/projects"
	PathContact    = "/api/portfolio/contact"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// TokenSource supplies the bearer credential for outgoing requests.
// An empty token means the request is sent without Authorization.
type TokenSource interface {
	Token() string
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	// Detail is the server-supplied "detail" message, if any.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsUnauthorized reports whether err is an API rejection of the credentials.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// Client calls the portfolio API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets where the bearer token is read from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// New creates a Client rooted at baseURL (e.g. "http://localhost:8001").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTokens returns a copy of c that authenticates with ts.
// The copy shares the underlying HTTP client.
func (c *Client) WithTokens(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, PathAdminLogin, credentials{username, password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("login response did not include a token")
	}
	return resp.Token, nil
}

// SetupAdmin creates the first admin account. The API refuses once an
// admin exists.
func (c *Client) SetupAdmin(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, PathAdminSetup, credentials{username, password}, nil)
}

// GetHero fetches the hero section. A never-saved hero is the zero value.
func (c *Client) GetHero(ctx context.Context) (model.Hero, error) {
	var hero model.Hero
	err := c.do(ctx, http.MethodGet, PathHero, nil, &hero)
	return hero, err
}

// PutHero replaces the hero section.
func (c *Client) PutHero(ctx context.Context, hero model.Hero) error {
	return c.do(ctx, http.MethodPut, PathHero, hero, nil)
}

// GetAbout fetches the about section.
func (c *Client) GetAbout(ctx context.Context) (model.About, error) {
	var about model.About
	err := c.do(ctx, http.MethodGet, PathAbout, nil, &about)
	return about, err
}

// PutAbout replaces the about section.
func (c *Client) PutAbout(ctx context.Context, about model.About) error {
	return c.do(ctx, http.MethodPut, PathAbout, about, nil)
}

// GetContact fetches the contact section.
func (c *Client) GetContact(ctx context.Context) (model.Contact, error) {
	var contact model.Contact
	err := c.do(ctx, http.MethodGet, PathContact, nil, &contact)
	return contact, err
}

// PutContact replaces the contact section.
func (c *Client) PutContact(ctx context.Context, contact model.Contact) error {
	return c.do(ctx, http.MethodPut, PathContact, contact, nil)
}

// GetSkills lists skills in backend order.
func (c *Client) GetSkills(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	if err := c.do(ctx, http.MethodGet, PathSkills, nil, &skills); err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []model.Skill{}
	}
	return skills, nil
}

// PostSkill creates a skill and returns the server-assigned id.
// Any ID set on skill is ignored by the server.
func (c *Client) PostSkill(ctx context.Context, skill model.Skill) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, PathSkills, skill, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("create skill response did not include an id")
	}
	return resp.ID, nil
}

// PutSkill replaces the skill with the given id.
func (c *Client) PutSkill(ctx context.Context, id string, skill model.Skill) error {
	return c.do(ctx, http.MethodPut, itemPath(PathSkills, id), skill, nil)
}

// DeleteSkill removes the skill with the given id.
func (c *Client) DeleteSkill(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, itemPath(PathSkills, id), nil, nil)
}

// GetProjects lists projects in display order.
func (c *Client) GetProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, PathProjects, nil, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []model.Project{}
	}
	for i := range projects {
		if projects[i].TechStack == nil {
			projects[i].TechStack = []string{}
		}
	}
	return projects, nil
}

// PostProject creates a project and returns the server-assigned id.
func (c *Client) PostProject(ctx context.Context, project model.Project) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, PathProjects, project, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("create project response did not include an id")
	}
	return resp.ID, nil
}

// PutProject replaces the project with the given id.
func (c *Client) PutProject(ctx context.Context, id string, project model.Project) error {
	return c.do(ctx, http.MethodPut, itemPath(PathProjects, id), project, nil)
}

// DeleteProject removes the project with the given id.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, itemPath(PathProjects, id), nil, nil)
}

func itemPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

// do sends one request. in is JSON-encoded when non-nil; out receives the
// decoded body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) != nil || len(payload.Detail) == 0 {
		return apiErr
	}

	var detail string
	if json.Unmarshal(payload.Detail, &detail) == nil {
		apiErr.Detail = detail
	}
	return apiErr
}
