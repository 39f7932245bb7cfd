// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route paths of the web frontend.
const (
	// RouteRoot is the public portfolio page.
	RouteRoot = "/"
	// RouteHealth is the liveness probe.
	RouteHealth = "/health"

	// RouteAdmin is the admin panel.
	RouteAdmin = "/admin"
	// RouteLogin is the admin login form.
	RouteLogin = "/admin/login"
	// RouteLogout ends the admin session.
	RouteLogout = "/admin/logout"

	// RouteLanguage toggles the display language.
	RouteLanguage = "/preferences/language"
	// RouteTheme toggles the color theme.
	RouteTheme = "/preferences/theme"

	// RouteParamID is the row id parameter pattern.
	RouteParamID = "/{id}"
	// RouteSuffixDelete is the suffix of row delete routes.
	RouteSuffixDelete = "/delete"
	// RouteSuffixBatch is the suffix of the save-all routes.
	RouteSuffixBatch = "/batch"
)

// Template names.
const (
	pagePortfolio = "portfolio"
	pageLogin     = "login"
	pageAdmin     = "admin"
)

// adminTabURL is the admin panel with pane tab selected.
func adminTabURL(tab string) string {
	return RouteAdmin + "?tab=" + tab
}
