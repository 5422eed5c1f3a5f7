package model

import "time"

// Notification channel types.
const (
	TypeEmail = "EMAIL"
	TypePush  = "PUSH"
)

// Notification delivery statuses.
const (
	StatusPending   = "pending"
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// NotificationRequest is the client-facing request to send a notification.
// It is immutable once accepted by admission.
type NotificationRequest struct {
	UserID           string                 `json:"user_id"`
	NotificationType string                 `json:"notification_type"`
	TemplateCode     string                 `json:"template_code"`
	Variables        map[string]interface{} `json:"variables"`
	RequestID        string                 `json:"request_id,omitempty"` // caller-supplied idempotency key
	Priority         int                    `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

// UserPreferences is the per-channel consent snapshot fetched from the
// user-profile service and captured on the task at admission time.
type UserPreferences struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

// ChannelEnabled reports whether the given notification type is enabled.
func (p UserPreferences) ChannelEnabled(notificationType string) bool {
	switch notificationType {
	case TypeEmail:
		return p.Email
	case TypePush:
		return p.Push
	default:
		return false
	}
}

// UserContact holds the resolved delivery addresses for a user.
type UserContact struct {
	Email     string `json:"email"`
	PushToken string `json:"push_token"`
}

// NotificationTask is the enriched unit of work published to the broker.
// The queue owns the task until a worker claims it for a delivery attempt.
type NotificationTask struct {
	NotificationID   string                 `json:"notification_id"`
	RequestID        string                 `json:"request_id"`
	UserID           string                 `json:"user_id"`
	NotificationType string                 `json:"notification_type"`
	TemplateCode     string                 `json:"template_code"`
	Variables        map[string]interface{} `json:"variables"`
	Priority         int                    `json:"priority"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	UserPreferences  UserPreferences        `json:"user_preferences"`
	UserContact      UserContact            `json:"user_contact"`
	CorrelationID    string                 `json:"correlation_id"`
}

// StatusRecord is the client-observable delivery state of a notification.
type StatusRecord struct {
	NotificationID string `json:"notification_id"`
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	Error          string `json:"error,omitempty"`
}

// NewStatusRecord builds a record stamped with the current time.
func NewStatusRecord(notificationID, status, errDetail string) StatusRecord {
	return StatusRecord{
		NotificationID: notificationID,
		Status:         status,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Error:          errDetail,
	}
}
