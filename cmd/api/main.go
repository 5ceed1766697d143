package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gridwatch/dominion-schedule/internal/config"
	"github.com/gridwatch/dominion-schedule/internal/db"
	"github.com/gridwatch/dominion-schedule/internal/handlers"
	"github.com/gridwatch/dominion-schedule/internal/logging"
	"github.com/gridwatch/dominion-schedule/internal/store"
)

func main() {

	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogFormat)

	st, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Printf("Storage backend: %s", st.Name())

	r := handlers.NewRouter(cfg, st)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Println("Starting server on :" + cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

// buildStore picks the persistence backend: Postgres when DATABASE_URL is
// set, JSONBin when credentials are present, otherwise the local data file.
func buildStore(cfg config.Config) (store.Store, error) {
	switch {
	case cfg.DatabaseURL != "":
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		sqlDB, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(sqlDB), nil
	case cfg.JSONBinAPIKey != "" && cfg.JSONBinBinID != "":
		return store.NewJSONBinStore(cfg.JSONBinAPIKey, cfg.JSONBinBinID, cfg.HTTPTimeout), nil
	default:
		return store.NewFileStore(cfg.DataFile), nil
	}
}
