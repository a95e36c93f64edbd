package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/ecosortapp/ecosort/internal/config"
	"github.com/ecosortapp/ecosort/internal/models"
	"github.com/ecosortapp/ecosort/internal/utils"
	authorizer "github.com/localnerve/authorizer-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	authClient *authorizer.AuthorizerClient
	authOnce   sync.Once
)

// Identity is the authenticated principal extracted from a validated session.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client (singleton pattern)
func InitAuthorizer(cfg *config.Config, requestProtocol, requestHost string) error {
	var initErr error

	authOnce.Do(func() {
		// Ping the Authorizer service first
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
			cfg.AuthzURL, cfg.AuthzClientID, redirectURL)

		var err error
		authClient, err = authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
	})

	return initErr
}

// ValidateSession validates a session cookie for the given roles and returns
// the authenticated identity.
func ValidateSession(cookie string, roles []string) (*Identity, error) {
	if authClient == nil {
		return nil, fmt.Errorf("authorizer client not initialized")
	}

	// Convert roles to []*string
	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid {
		return nil, fmt.Errorf("session is not valid")
	}

	// The SDK's user type follows the GraphQL schema; round-trip through JSON
	// to pick out the fields this service cares about.
	raw, err := json.Marshal(res.User)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session user: %w", err)
	}
	var identity Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("failed to decode session user: %w", err)
	}
	if identity.ID == "" {
		return nil, fmt.Errorf("session user has no id")
	}

	return &identity, nil
}

// EnsureUser upserts the local projection of the identity provider's user
// record so queries can join a display identity.
func EnsureUser(db *gorm.DB, identity *Identity) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "updated_at"}),
	}).Create(&models.User{
		ID:    identity.ID,
		Email: identity.Email,
	}).Error
}
