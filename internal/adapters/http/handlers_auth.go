package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"vendorportal/internal/adapters/http/middleware"
	"vendorportal/internal/adapters/storage/pref"
	"vendorportal/internal/application/orchestrators"
)

// authPage carries the login and register screen data.
type authPage struct {
	Title string
	Flash flash

	// Submitted values echoed back so a failed attempt keeps the form filled.
	Username   string
	VendorName string
}

// handleLogin handles GET/POST for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case "GET":
		renderTemplate(w, r, "login.html", authPage{
			Title: "Log in",
			Flash: flashFromQuery(r),
			// A failed POST carries the username back through the query string
			Username: r.URL.Query().Get("username"),
		})

	case "POST":
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		input := orchestrators.LoginInput{
			Username: r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		}
		_, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
			API:      api,
			Sessions: stores.SessionStore,
		})
		if err != nil {
			http.Redirect(w, r, "/login?username="+url.QueryEscape(input.Username)+"&err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleRegister handles GET/POST for /register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case "GET":
		renderTemplate(w, r, "register.html", authPage{
			Title:      "Register",
			Flash:      flashFromQuery(r),
			Username:   r.URL.Query().Get("username"),
			VendorName: r.URL.Query().Get("vendorName"),
		})

	case "POST":
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		input := orchestrators.RegisterInput{
			Username:        r.PostFormValue("username"),
			VendorName:      r.PostFormValue("vendorName"),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirmPassword"),
		}
		err := orchestrators.ExecuteRegister(r.Context(), input, orchestrators.RegisterDeps{API: api})
		if err != nil {
			http.Redirect(w, r, "/register?username="+url.QueryEscape(input.Username)+
				"&vendorName="+url.QueryEscape(input.VendorName)+
				"&err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}
		redirectWithMessage(w, r, "/login", "Account created. Please log in.")

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleLogout handles POST for /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := stores.SessionStore.Clear(r.Context()); err != nil {
		internalError(w, err)
		return
	}
	slog.Info("auth_event", "event", "logout")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleTheme handles POST for /theme, toggling light/dark.
func handleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	current, err := stores.PrefStore.Theme(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	next := pref.ThemeDark
	if current == pref.ThemeDark {
		next = pref.ThemeLight
	}
	if err := stores.PrefStore.SetTheme(r.Context(), next); err != nil {
		internalError(w, err)
		return
	}
	// Same-site paths only. A second leading slash or backslash would be
	// treated as protocol-relative by the browser.
	target := r.PostFormValue("return")
	if !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		target = "/dashboard"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
