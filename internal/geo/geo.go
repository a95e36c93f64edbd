// Package geo wraps the external geolocation service used to stamp escalated
// complaints with a position.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnavailable is returned when no geolocation provider is configured or the
// provider cannot produce a position.
var ErrUnavailable = errors.New("geolocation unavailable")

// lookupTimeout bounds the single-shot position query. There is no cached or
// stale fallback; every lookup goes to the provider.
const lookupTimeout = 5 * time.Second

// Position is a single geolocation fix.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// Locator resolves the caller's position.
type Locator interface {
	Lookup(ctx context.Context) (Position, error)
}

// Client queries an HTTP geolocation endpoint returning a JSON position.
type Client struct {
	URL  string
	HTTP *http.Client
}

// NewClient creates a geolocation client. An empty URL yields a client whose
// lookups always fail with ErrUnavailable.
func NewClient(serviceURL string) *Client {
	return &Client{
		URL:  serviceURL,
		HTTP: &http.Client{Timeout: lookupTimeout},
	}
}

// Lookup performs one position query against the provider.
func (c *Client) Lookup(ctx context.Context) (Position, error) {
	if c.URL == "" {
		return Position{}, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var pos Position
	if err := json.Unmarshal(body, &pos); err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return pos, nil
}
