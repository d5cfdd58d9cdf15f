package web

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"vendorportal/internal/adapters/backend"
	"vendorportal/internal/adapters/http/middleware"
	"vendorportal/internal/adapters/storage"
	prefStore "vendorportal/internal/adapters/storage/pref"
	sessionStore "vendorportal/internal/adapters/storage/session"
	"vendorportal/internal/application/viewstate"
	"vendorportal/internal/domain/catalog"
	"vendorportal/internal/domain/order"
	sessionDomain "vendorportal/internal/domain/session"
	"vendorportal/internal/domain/vendor"
)

// fakeOMS is a stand-in for the order-management API. Handlers are registered
// per path; every request increments the call counter.
type fakeOMS struct {
	mux   *http.ServeMux
	calls int
}

func newFakeOMS() *fakeOMS {
	return &fakeOMS{mux: http.NewServeMux()}
}

func (f *fakeOMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls++
	f.mux.ServeHTTP(w, r)
}

// respond registers a JSON response for a pattern.
func (f *fakeOMS) respond(pattern string, status int, body any) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			json.NewEncoder(w).Encode(body)
		}
	})
}

// newTestApp wires the portal's router against a fake backend, with the
// session middleware applied but CSRF left out so form posts stay simple.
func newTestApp(t *testing.T, oms *fakeOMS) (http.Handler, *Stores) {
	t.Helper()

	ts := httptest.NewServer(oms)
	t.Cleanup(ts.Close)

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := &Stores{
		SessionStore: sessionStore.NewSQLiteStore(db),
		PrefStore:    prefStore.NewSQLiteStore(db),
	}
	stores = s
	api = backend.New(ts.URL, s.SessionStore)
	dashboardCache = &viewstate.Cache[vendor.Product]{}
	catalogCache = &viewstate.Cache[catalog.Product]{}
	ordersCache = &viewstate.Cache[order.Order]{}

	h := middleware.Chain(newRouter(), middleware.WithSession(s.SessionStore))
	return h, s
}

func seedSession(t *testing.T, s *Stores) {
	t.Helper()
	err := s.SessionStore.Save(context.Background(), sessionDomain.Session{
		Token: "tok-1", VendorID: 7, Username: "acme",
	})
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}

func testJWT(t *testing.T, payload string) string {
	t.Helper()
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." + enc([]byte(payload)) + ".sig"
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGuardRedirectsWithoutSession(t *testing.T) {
	oms := newFakeOMS()
	h, _ := newTestApp(t, oms)

	for _, path := range []string{"/dashboard", "/catalog", "/orders", "/dashboard/unenroll?product=1"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
			t.Errorf("%s: expected redirect to /login, got %d %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
	if oms.calls != 0 {
		t.Errorf("no backend call may be issued for guarded screens without a session, got %d", oms.calls)
	}
}

func TestUnknownRouteFallsBackToLogin(t *testing.T) {
	h, _ := newTestApp(t, newFakeOMS())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-screen", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected unknown paths to land on /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRootRedirectsToDashboard(t *testing.T) {
	h, _ := newTestApp(t, newFakeOMS())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("expected / to redirect to /dashboard, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLoginFlowPersistsSession(t *testing.T) {
	oms := newFakeOMS()
	h, s := newTestApp(t, oms)
	oms.respond("/auth/login", http.StatusOK, map[string]string{
		"token": testJWT(t, `{"sub":"acme","vendorId":7}`),
	})

	rec := postForm(h, "/login", url.Values{"username": {"acme"}, "password": {"pw"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	sess, err := s.SessionStore.Get(context.Background())
	if err != nil {
		t.Fatalf("session was not persisted: %v", err)
	}
	if sess.VendorID != 7 || sess.Username != "acme" {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestLoginRejectionShowsBackendMessage(t *testing.T) {
	oms := newFakeOMS()
	h, s := newTestApp(t, oms)
	oms.respond("/auth/login", http.StatusUnauthorized, map[string]string{
		"message": "Invalid username or password",
	})

	rec := postForm(h, "/login", url.Values{"username": {"acme"}, "password": {"bad"}})
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "err=") || !strings.Contains(loc, url.QueryEscape("Invalid username or password")) {
		t.Errorf("expected the backend message in the redirect, got %q", loc)
	}
	if active, _ := s.SessionStore.Active(context.Background()); active {
		t.Errorf("no session must be persisted on a rejected login")
	}
}

func TestThemeToggleReturnsToSameSitePathsOnly(t *testing.T) {
	h, _ := newTestApp(t, newFakeOMS())

	// Off-site and protocol-relative targets fall back to the dashboard
	for _, target := range []string{"//evil.example", `/\evil.example`, "https://evil.example", ""} {
		rec := postForm(h, "/theme", url.Values{"return": {target}})
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
			t.Errorf("%q: expected fallback to /dashboard, got %d %q", target, rec.Code, rec.Header().Get("Location"))
		}
	}

	rec := postForm(h, "/theme", url.Values{"return": {"/catalog"}})
	if rec.Header().Get("Location") != "/catalog" {
		t.Errorf("expected a same-site return target honored, got %q", rec.Header().Get("Location"))
	}
}

func TestDashboardRendersProductsAndEditForm(t *testing.T) {
	oms := newFakeOMS()
	h, s := newTestApp(t, oms)
	seedSession(t, s)
	oms.respond("/vendors/7/products", http.StatusOK, []vendor.Product{
		{ProductID: 1, ProductCode: "WID-1", Name: "Widget", Price: 10, Stock: 5},
	})
	oms.respond("/products", http.StatusOK, []catalog.Product{
		{ID: 1, Name: "Widget"},
		{ID: 2, Name: "Gadget", ProductCode: "GAD-1"},
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Widget") || !strings.Contains(body, "$10.00") {
		t.Errorf("expected the enrollment row in the page")
	}
	// The enrolled product must not be offered for enrollment again
	if !strings.Contains(body, "Gadget") {
		t.Errorf("expected the unenrolled product as an enrollment candidate")
	}
	if strings.Contains(body, `<option value="1">Widget`) {
		t.Errorf("an enrolled product must not appear in the candidate list")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard?edit=price&product=1", nil))
	body = rec.Body.String()
	if !strings.Contains(body, `name="price"`) || !strings.Contains(body, `value="10.00"`) {
		t.Errorf("expected the price edit form seeded with the current value")
	}
}

func TestUpdatePriceRedirectsWithConfirmation(t *testing.T) {
	oms := newFakeOMS()
	h, s := newTestApp(t, oms)
	seedSession(t, s)
	oms.respond("/vendors/7/products/1/price", http.StatusOK, vendor.PriceUpdate{
		OldPrice: 10, NewPrice: 12.5,
	})

	rec := postForm(h, "/dashboard/price", url.Values{"productId": {"1"}, "price": {"12.50"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/dashboard?msg=") ||
		!strings.Contains(loc, url.QueryEscape("Price updated: $10.00 → $12.50")) {
		t.Errorf("expected the confirmation message in the redirect, got %q", loc)
	}
}

func TestBackendUnauthorizedClearsSessionAndRedirects(t *testing.T) {
	oms := newFakeOMS()
	h, s := newTestApp(t, oms)
	seedSession(t, s)
	oms.respond("/vendors/7/products", http.StatusUnauthorized, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusSeeOther || !strings.HasPrefix(rec.Header().Get("Location"), "/login") {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if active, _ := s.SessionStore.Active(context.Background()); active {
		t.Errorf("the stored session must be cleared after a backend 401")
	}
}

func TestUnenrollConfirmationFlow(t *testing.T) {
	oms := newFakeOMS()
	h, s := newTestApp(t, oms)
	seedSession(t, s)

	deleted := false
	oms.mux.HandleFunc("/vendors/7/products/1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = true
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	// The confirmation screen issues no delete call
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/unenroll?product=1&name=Widget", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Unenroll from Widget?") {
		t.Fatalf("expected the confirmation screen, got %d", rec.Code)
	}
	if deleted {
		t.Fatalf("viewing the confirmation screen must not delete anything")
	}

	rec = postForm(h, "/dashboard/unenroll", url.Values{
		"productId": {"1"}, "name": {"Widget"}, "confirmed": {"true"},
	})
	if !deleted {
		t.Errorf("the confirmed POST should issue the delete call")
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, url.QueryEscape(`Unenrolled from "Widget" successfully`)) {
		t.Errorf("expected the confirmation message in the redirect, got %q", loc)
	}
}

func TestPlaceOrderRedirectsWithAllocation(t *testing.T) {
	oms := newFakeOMS()
	h, s := newTestApp(t, oms)
	seedSession(t, s)
	oms.respond("/orders", http.StatusCreated, order.Order{
		OrderID: 12, AllocatedVendorName: "Acme Supply", Price: 5, TotalPrice: 10,
	})

	rec := postForm(h, "/orders", url.Values{"productId": {"1"}, "quantity": {"2"}})
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, url.QueryEscape("Order #12 placed")) ||
		!strings.Contains(loc, url.QueryEscape("Acme Supply")) {
		t.Errorf("expected the allocation message in the redirect, got %q", loc)
	}
}

func TestCatalogSaveAndFilter(t *testing.T) {
	oms := newFakeOMS()
	h, s := newTestApp(t, oms)
	seedSession(t, s)

	var created catalog.ProductInput
	oms.mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if r.URL.Query().Get("categoryId") != "2" {
				t.Errorf("expected the category filter forwarded, got %q", r.URL.RawQuery)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]catalog.Product{{ID: 1, Name: "Widget"}})
		case http.MethodPost:
			json.NewDecoder(r.Body).Decode(&created)
			w.WriteHeader(http.StatusCreated)
		}
	})
	oms.respond("/categories", http.StatusOK, []catalog.Category{{ID: 2, Name: "Tools"}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog?category=2", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Widget") {
		t.Fatalf("expected the filtered catalog, got %d", rec.Code)
	}

	rec = postForm(h, "/catalog/save", url.Values{
		"name": {"Gizmo"}, "productCode": {"GIZ-1"}, "description": {"A gizmo"},
	})
	if created.Name != "Gizmo" || created.ProductCode != "GIZ-1" {
		t.Errorf("the create call did not carry the form fields: %+v", created)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, url.QueryEscape(`Product "Gizmo" created successfully`)) {
		t.Errorf("expected the confirmation message in the redirect, got %q", loc)
	}
}
