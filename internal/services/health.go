package services

import (
	"fmt"
	"log"

	"github.com/ecosortapp/ecosort/internal/config"
	"github.com/ecosortapp/ecosort/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Classifier   string            `json:"classifier"`
	ObjectStore  string            `json:"object_store"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(component, msg string, err error) {
	r.Status = "unhealthy"
	r.Details[component+"_error"] = err.Error()
	if r.ErrorMessage == "" {
		r.ErrorMessage = fmt.Sprintf("%s: %v", msg, err)
	} else {
		r.ErrorMessage += fmt.Sprintf("; %s: %v", msg, err)
	}
	log.Printf("Health check failed - %s: %v", component, err)
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.fail("database", "Database connection error", err)
	} else if err := sqlDB.Ping(); err != nil {
		result.Database = "unreachable"
		result.fail("database", "Database ping failed", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	// Check Authorizer connectivity
	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		result.Authorizer = "unreachable"
		result.fail("authorizer", "Authorizer ping failed", err)
	} else {
		result.Authorizer = "ok"
		result.Details["authorizer_url"] = cfg.AuthzURL
	}

	// Check classification API connectivity
	if err := utils.PingClassifier(cfg.ClassifierURL); err != nil {
		result.Classifier = "unreachable"
		result.fail("classifier", "Classifier ping failed", err)
	} else {
		result.Classifier = "ok"
	}

	// Check object store connectivity
	if err := utils.PingObjectStore(cfg.StorageEndpoint, cfg.StorageUseSSL); err != nil {
		result.ObjectStore = "unreachable"
		result.fail("object_store", "Object store ping failed", err)
	} else {
		result.ObjectStore = "ok"
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
