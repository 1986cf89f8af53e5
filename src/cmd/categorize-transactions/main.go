// Command categorize-transactions loads the trained model and fills in a
// category for every mirrored transaction that does not have one.
package main

import (
	"context"
	"errors"
	"log"

	"fininsight-server/src/classifier"
	"fininsight-server/src/config"
	"fininsight-server/src/db"
	sqldb "fininsight-server/src/db/sql"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	log.Println("Starting transaction categorization...")

	pipeline, err := classifier.Load(cfg.ModelPath)
	if errors.Is(err, classifier.ErrModelNotFound) {
		log.Fatalf("ERROR: Model file not found at %s. Train the classifier first by running train-classifier.", cfg.ModelPath)
	}
	if err != nil {
		log.Fatalf("ERROR: Failed to load model: %v", err)
	}

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("ERROR: DB connection failed: %v", err)
	}
	defer pool.Close()

	updated, err := classifier.Categorize(context.Background(), sqldb.NewStore(pool), pipeline)
	if err != nil {
		log.Fatalf("ERROR: Categorization failed after %d updates: %v", updated, err)
	}

	if updated == 0 {
		log.Println("INFO: No uncategorized transactions found")
		return
	}
	log.Printf("INFO: Successfully categorized %d transactions", updated)
}
