package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Object storage (waste images, complaint media)
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	// Waste classification API
	ClassifierURL    string
	ClassifierAPIKey string
	ClassifierModel  string

	// Geolocation service used to stamp escalated complaints
	GeolocateURL string

	// Authority webhook for escalated complaints
	AuthorityWebhookURL string

	// Authorizer configuration
	AuthzURL      string
	AuthzClientID string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "3000"),
		DBType:              getEnv("DB_TYPE", "mysql"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBDatabase:          getEnv("DB_DATABASE", ""),
		DBUser:              getEnv("DB_USER", ""),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:   getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		StorageEndpoint:     getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:    getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:    getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:       getEnv("STORAGE_BUCKET", "waste-images"),
		StorageUseSSL:       getEnvAsBool("STORAGE_USE_SSL", false),
		ClassifierURL:       getEnv("CLASSIFIER_URL", "https://generativelanguage.googleapis.com/v1beta"),
		ClassifierAPIKey:    getEnv("CLASSIFIER_API_KEY", ""),
		ClassifierModel:     getEnv("CLASSIFIER_MODEL", "gemini-1.5-flash"),
		GeolocateURL:        getEnv("GEOLOCATE_URL", ""),
		AuthorityWebhookURL: getEnv("AUTHORITY_WEBHOOK_URL", ""),
		AuthzURL:            getEnv("AUTHZ_URL", ""),
		AuthzClientID:       getEnv("AUTHZ_CLIENT_ID", ""),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBUser == "" && cfg.DBType != "sqlite" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.ClassifierAPIKey == "" {
		return nil, fmt.Errorf("CLASSIFIER_API_KEY is required")
	}
	if cfg.AuthzURL == "" {
		return nil, fmt.Errorf("AUTHZ_URL is required")
	}
	if cfg.AuthzClientID == "" {
		return nil, fmt.Errorf("AUTHZ_CLIENT_ID is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
