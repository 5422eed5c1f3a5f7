// Package userprofile provides an HTTP client for the user-profile
// collaborator, which owns contact details and notification preferences.
package userprofile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DannylSyph3r/notification-system/internal/model"
)

// ErrMalformedResponse is returned when the collaborator answers without
// the expected data envelope.
var ErrMalformedResponse = errors.New("malformed response from user service")

// Client calls the user-profile service over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// envelope is the response wrapper every user-service endpoint uses.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// GetPreferences fetches the per-channel notification preferences of a user.
func (c *Client) GetPreferences(ctx context.Context, userID string) (model.UserPreferences, error) {
	var prefs model.UserPreferences
	path := fmt.Sprintf("/internal/users/%s/preferences", userID)
	if err := c.getJSON(ctx, path, &prefs); err != nil {
		return model.UserPreferences{}, fmt.Errorf("get preferences: %w", err)
	}

	return prefs, nil
}

// GetContact fetches the delivery addresses of a user.
func (c *Client) GetContact(ctx context.Context, userID string) (model.UserContact, error) {
	var contact model.UserContact
	path := fmt.Sprintf("/internal/users/%s/contact", userID)
	if err := c.getJSON(ctx, path, &contact); err != nil {
		return model.UserContact{}, fmt.Errorf("get contact: %w", err)
	}

	return contact, nil
}

func (c *Client) getJSON(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("user service returned %s", resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	// Absence of the data field is a contract violation, not an empty result.
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return ErrMalformedResponse
	}

	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
