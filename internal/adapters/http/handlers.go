package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"vendorportal/internal/adapters/backend"
	"vendorportal/internal/adapters/http/middleware"
	"vendorportal/internal/adapters/storage/pref"
	"vendorportal/internal/domain/vendor"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// redirectUnauthorized handles a backend 401 seen mid-request. The client has
// already cleared the stored session; all that is left is sending the vendor
// to the login screen. Returns true when the error was a 401.
func redirectUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, backend.ErrUnauthorized) {
		http.Redirect(w, r, "/login?err="+url.QueryEscape("Your session has expired. Please log in again."), http.StatusSeeOther)
		return true
	}
	return false
}

// redirectWithMessage sends a post-mutation redirect carrying a confirmation
// message. The target GET refetches its list, so the screen the message lands
// on always shows backend-confirmed state.
func redirectWithMessage(w http.ResponseWriter, r *http.Request, target, msg string) {
	http.Redirect(w, r, target+"?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

// redirectWithError sends the vendor back to a screen with an error banner.
func redirectWithError(w http.ResponseWriter, r *http.Request, target string, err error) {
	http.Redirect(w, r, target+"?err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
}

// flash holds the one-shot banner text carried across a redirect.
type flash struct {
	Message string
	Error   string
}

// flashFromQuery reads the banner text a redirect put in the query string.
func flashFromQuery(r *http.Request) flash {
	return flash{
		Message: r.URL.Query().Get("msg"),
		Error:   r.URL.Query().Get("err"),
	}
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	username := ""
	if ok {
		username = sess.Username
	}

	theme := pref.ThemeLight
	if stores != nil && stores.PrefStore != nil {
		if v, err := stores.PrefStore.Theme(r.Context()); err == nil {
			theme = v
		}
	}

	funcMap := template.FuncMap{
		"currentUsername": func() string { return username },
		"isLoggedIn":      func() bool { return ok },
		"csrfToken":       func() string { return csrf.Token(r) },
		"theme":           func() string { return theme },
		"isActive":        func(path string) bool { return r.URL.Path == path },
		"currentPath":     func() string { return r.URL.Path },
		"money":           vendor.Money,
		"deref": func(p *int64) int64 {
			if p == nil {
				return 0
			}
			return *p
		},
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templatesFS,
		"templates/layout.html", "templates/"+templateName)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}
