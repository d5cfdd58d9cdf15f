package main

import (
	"log"
	"net/http"

	_ "modernc.org/sqlite"

	"vendorportal/internal/adapters/backend"
	web "vendorportal/internal/adapters/http"
	"vendorportal/internal/adapters/storage"
	prefStore "vendorportal/internal/adapters/storage/pref"
	sessionStore "vendorportal/internal/adapters/storage/session"
	"vendorportal/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	db, err := storage.Open(cfg.StateDBPath)
	if err != nil {
		log.Fatalf("failed to open state database: %v", err)
	}
	defer db.Close()

	stores := &web.Stores{
		SessionStore: sessionStore.NewSQLiteStore(db),
		PrefStore:    prefStore.NewSQLiteStore(db),
	}

	client := backend.New(cfg.APIBaseURL, stores.SessionStore)

	mux := web.NewMux(stores, client, cfg.CSRFKey, cfg.IsProduction())

	log.Printf("Vendor portal %s starting on %s (env=%s, api=%s)", version, cfg.Addr, cfg.Env, cfg.APIBaseURL)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
