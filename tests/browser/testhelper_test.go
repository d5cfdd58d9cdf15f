package browser_test

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"vendorportal/internal/adapters/backend"
	web "vendorportal/internal/adapters/http"
	"vendorportal/internal/adapters/http/middleware"
	"vendorportal/internal/adapters/storage"
	prefStore "vendorportal/internal/adapters/storage/pref"
	sessionStore "vendorportal/internal/adapters/storage/session"
	"vendorportal/internal/domain/catalog"
	"vendorportal/internal/domain/vendor"
)

// fakeOMS is a small in-memory order-management backend. It implements just
// enough of the API for the portal's screens: login, vendor products with
// live price/stock updates, the shared catalog, and order placement.
type fakeOMS struct {
	mu       sync.Mutex
	products map[int64]*vendor.Product
	catalog  []catalog.Product
}

func newFakeOMS() *fakeOMS {
	return &fakeOMS{
		products: map[int64]*vendor.Product{
			1: {ProductID: 1, ProductCode: "WID-1", Name: "Widget", Price: 10, Stock: 5},
		},
		catalog: []catalog.Product{
			{ID: 1, ProductCode: "WID-1", Name: "Widget"},
			{ID: 2, ProductCode: "GAD-1", Name: "Gadget"},
		},
	}
}

func (f *fakeOMS) token() string {
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." +
		enc([]byte(`{"sub":"acme","vendorId":7}`)) + ".sig"
}

func (f *fakeOMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	path := r.URL.Path
	switch {
	case path == "/auth/login" && r.Method == http.MethodPost:
		var creds struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "Passw0rd" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid username or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": f.token()})

	case path == "/vendors/7/products" && r.Method == http.MethodGet:
		list := make([]vendor.Product, 0, len(f.products))
		for _, p := range f.products {
			list = append(list, *p)
		}
		json.NewEncoder(w).Encode(list)

	case path == "/products" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(f.catalog)

	case path == "/categories" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode([]catalog.Category{})

	case path == "/orders" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode([]any{})

	case strings.HasSuffix(path, "/price") && r.Method == http.MethodPut:
		id := pathProductID(path)
		p := f.products[id]
		var body struct {
			Price float64 `json:"price"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		res := vendor.PriceUpdate{ProductID: id, OldPrice: p.Price, NewPrice: body.Price}
		p.Price = body.Price
		json.NewEncoder(w).Encode(res)

	case strings.HasSuffix(path, "/stock") && r.Method == http.MethodPut:
		id := pathProductID(path)
		p := f.products[id]
		var body struct {
			Stock int `json:"stock"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		res := vendor.StockUpdate{ProductID: id, OldStock: p.Stock, NewStock: body.Stock}
		p.Stock = body.Stock
		json.NewEncoder(w).Encode(res)

	default:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
	}
}

// pathProductID pulls the product id out of /vendors/7/products/{id}/price.
func pathProductID(path string) int64 {
	parts := strings.Split(path, "/")
	id, _ := strconv.ParseInt(parts[len(parts)-2], 10, 64)
	return id
}

// testApp holds the running portal, its fake backend, and Playwright handles.
type testApp struct {
	BaseURL string
	OMS     *fakeOMS
	Stores  *web.Stores
	Browser playwright.Browser
}

// newTestApp starts a fake backend, a fully wired portal server on a free
// port, and a headless browser.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	oms := newFakeOMS()
	backendSrv := httptest.NewServer(oms)
	t.Cleanup(backendSrv.Close)

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	stores := &web.Stores{
		SessionStore: sessionStore.NewSQLiteStore(db),
		PrefStore:    prefStore.NewSQLiteStore(db),
	}
	client := backend.New(backendSrv.URL, stores.SessionStore)

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Add test port to CSRF trusted origins before creating the mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	csrfKey := make([]byte, 32)
	rand.Read(csrfKey)
	mux := web.NewMux(stores, client, csrfKey, false)

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()
	t.Cleanup(func() { srv.Close() })

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
	})

	return &testApp{
		BaseURL: baseURL,
		OMS:     oms,
		Stores:  stores,
		Browser: browser,
	}
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login navigates to the login page and logs in as the test vendor.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=username]").Fill("acme"); err != nil {
		t.Fatalf("failed to fill username: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("Passw0rd"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to dashboard: %v", err)
	}
}
