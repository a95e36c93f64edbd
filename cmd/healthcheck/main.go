package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ecosortapp/ecosort/internal/config"
	"github.com/ecosortapp/ecosort/internal/database"
	"github.com/ecosortapp/ecosort/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	result := services.HealthCheck(cfg, db)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
