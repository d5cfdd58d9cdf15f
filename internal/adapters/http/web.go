package web

import (
	"net/http"

	"vendorportal/internal/adapters/backend"
	"vendorportal/internal/adapters/http/middleware"
	prefStore "vendorportal/internal/adapters/storage/pref"
	sessionStore "vendorportal/internal/adapters/storage/session"
	"vendorportal/internal/application/viewstate"
	"vendorportal/internal/domain/catalog"
	"vendorportal/internal/domain/order"
	"vendorportal/internal/domain/vendor"
)

// Stores holds all storage dependencies.
type Stores struct {
	SessionStore sessionStore.Store
	PrefStore    prefStore.Store
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global backend client instance (set by NewMux)
var api *backend.Client

// Per-screen snapshot caches. Each holds the last list the screen rendered;
// lists are replaced wholesale after every refetch, never patched in place.
var (
	dashboardCache = &viewstate.Cache[vendor.Product]{}
	catalogCache   = &viewstate.Cache[catalog.Product]{}
	ordersCache    = &viewstate.Cache[order.Order]{}
)

// newRouter wires the route table. The mux panics at startup on duplicate
// patterns, so a route registered twice is caught before the server binds.
func newRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.FileServer(http.FS(staticFS)))

	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/theme", handleTheme)

	mux.Handle("/dashboard", middleware.RequireSession(http.HandlerFunc(handleDashboard)))
	mux.Handle("/dashboard/price", middleware.RequireSession(http.HandlerFunc(handleUpdatePrice)))
	mux.Handle("/dashboard/stock", middleware.RequireSession(http.HandlerFunc(handleUpdateStock)))
	mux.Handle("/dashboard/enroll", middleware.RequireSession(http.HandlerFunc(handleEnroll)))
	mux.Handle("/dashboard/unenroll", middleware.RequireSession(http.HandlerFunc(handleUnenroll)))

	mux.Handle("/catalog", middleware.RequireSession(http.HandlerFunc(handleCatalog)))
	mux.Handle("/catalog/save", middleware.RequireSession(http.HandlerFunc(handleSaveProduct)))
	mux.Handle("/catalog/delete", middleware.RequireSession(http.HandlerFunc(handleDeleteProduct)))

	mux.Handle("/orders", middleware.RequireSession(http.HandlerFunc(handleOrders)))

	// "/" matches everything not claimed above. The root redirects to the
	// dashboard; any unknown path lands on the login screen.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	return mux
}

// NewMux wires HTTP handlers for the portal.
func NewMux(s *Stores, client *backend.Client, csrfKey []byte, secure bool) http.Handler {
	stores = s
	api = client

	mux := newRouter()

	// Apply middleware: Timing -> WithSession -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, secure),
		middleware.WithSession(s.SessionStore),
		middleware.Timing(middleware.SlowRequestThreshold()),
	)
}
