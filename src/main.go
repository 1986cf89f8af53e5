package main

import (
	"context"
	"log"
	"net/http"

	"fininsight-server/src/api"
	"fininsight-server/src/config"
	"fininsight-server/src/db"
	"fininsight-server/src/plaid"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Connect to database
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	plaidClient, err := plaid.NewAPI(cfg.Plaid.ClientID, cfg.Plaid.Secret, cfg.Plaid.Env, cfg.AppName)
	if err != nil {
		log.Fatalf("Plaid client setup failed: %v", err)
	}

	// Router
	router := api.NewRouter(pool, plaidClient, cfg.JWTSecret)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
