// Command train-classifier fits the transaction categorizer over a labeled
// CSV of (name, category) pairs and writes the model artifact.
package main

import (
	"log"

	"fininsight-server/src/classifier"
	"fininsight-server/src/config"
)

func main() {
	cfg := config.Load()

	log.Println("Starting transaction classifier training...")

	pipeline, count, err := classifier.TrainFromCSV(cfg.TrainingDataPath)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	log.Printf("INFO: Model training complete (%d examples)", count)

	if err := pipeline.Save(cfg.ModelPath); err != nil {
		log.Fatalf("ERROR: Failed to save model: %v", err)
	}
	log.Printf("INFO: Model saved to %s", cfg.ModelPath)
}
