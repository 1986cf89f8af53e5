package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	AppName          string
	Plaid            PlaidConfig
	ModelPath        string
	TrainingDataPath string
}

// PlaidConfig holds the credentials for the external aggregation API. An
// unconfigured client is an explicit construction error rather than a
// nullable global.
type PlaidConfig struct {
	ClientID string
	Secret   string
	Env      string
}

func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		AppName:     getEnv("APP_NAME", "FinInsight"),
		Plaid: PlaidConfig{
			ClientID: getEnv("PLAID_CLIENT_ID", ""),
			Secret:   getEnv("PLAID_SECRET", ""),
			Env:      getEnv("PLAID_ENV", "sandbox"),
		},
		ModelPath:        getEnv("MODEL_PATH", "ml_models/transaction_classifier.gob"),
		TrainingDataPath: getEnv("TRAINING_DATA_PATH", "data/sample_transactions.csv"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
