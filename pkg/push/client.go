// Package push provides a client for the push-gateway provider.
//
// The gateway accepts a device token and a rendered payload and returns a
// provider message id, or a status code the client maps onto the
// permanent/transient failure taxonomy.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/DannylSyph3r/notification-system/internal/model"
	"github.com/DannylSyph3r/notification-system/internal/provider"
)

// Client sends push notifications through an HTTP push gateway.
type Client struct {
	gatewayURL string
	apiKey     string
	client     *http.Client
}

// NewClient creates a new push gateway Client.
func NewClient(gatewayURL, apiKey string) *Client {
	return &Client{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// sendRequest is the payload for the gateway's send endpoint.
type sendRequest struct {
	DeviceToken string            `json:"device_token"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	ImageURL    string            `json:"image_url,omitempty"`
	Data        map[string]string `json:"data,omitempty"`
}

// sendResponse is the gateway's reply on success.
type sendResponse struct {
	MessageID string `json:"message_id"`
}

// Send delivers the task to the push gateway. Responses that indicate an
// invalid or unregistered device token are permanent failures; gateway
// outages and rate limiting are transient.
func (c *Client) Send(ctx context.Context, task model.NotificationTask) (string, error) {
	token := task.UserContact.PushToken
	if token == "" {
		return "", provider.NewPermanent("device token is null or empty")
	}

	reqBody := sendRequest{
		DeviceToken: token,
		Title:       stringVar(task.Variables, "title", "New Notification"),
		Body:        stringVar(task.Variables, "body", "You have a new update."),
		ImageURL:    stringVar(task.Variables, "imageUrl", ""),
		Data:        stringMap(task.Metadata),
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", provider.NewPermanent(fmt.Sprintf("marshal request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+"/v1/send", bytes.NewReader(body))
	if err != nil {
		return "", provider.NewPermanent(fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", provider.NewTransient(fmt.Sprintf("send request: %v", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var result sendResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return "", provider.NewTransient(fmt.Sprintf("decode response: %v", err))
		}
		return result.MessageID, nil

	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusGone:
		// Invalid or unregistered device token.
		return "", provider.NewPermanent(fmt.Sprintf("gateway rejected token: %s", resp.Status))

	default:
		// 429, 5xx and everything unclassified.
		return "", provider.NewTransient(fmt.Sprintf("gateway error: %s", resp.Status))
	}
}

func stringVar(vars map[string]interface{}, key, fallback string) string {
	if v, ok := vars[key].(string); ok && v != "" {
		return v
	}

	return fallback
}

func stringMap(in map[string]interface{}) map[string]string {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = fmt.Sprint(v)
	}

	return out
}
