// Package email provides an SMTP sender for email notifications.
package email

import (
	"context"
	"fmt"

	mail "gopkg.in/mail.v2"

	"github.com/DannylSyph3r/notification-system/internal/model"
	"github.com/DannylSyph3r/notification-system/internal/provider"
)

// Client sends email notifications over SMTP.
type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

// NewClient creates a new SMTP Client.
func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers the task as an email to the contact address captured at
// admission time. The subject and body come from the task variables.
func (c *Client) Send(ctx context.Context, task model.NotificationTask) (string, error) {
	to := task.UserContact.Email
	if to == "" {
		return "", provider.NewPermanent("recipient email address is empty")
	}

	subject := stringVar(task.Variables, "subject", "Notification")
	body := stringVar(task.Variables, "body", "You have a new update.")

	message := mail.NewMessage()
	message.SetHeader("From", c.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)

	select {
	case <-ctx.Done():
		return "", provider.NewTransient(ctx.Err().Error())
	default:
	}

	if err := dialer.DialAndSend(message); err != nil {
		// SMTP failures (connection refused, auth, greylisting) are
		// retryable; a later attempt may reach a healthy relay.
		return "", provider.NewTransient(fmt.Sprintf("smtp send: %v", err))
	}

	// SMTP has no provider message id; the notification id stands in.
	return task.NotificationID, nil
}

func stringVar(vars map[string]interface{}, key, fallback string) string {
	if v, ok := vars[key].(string); ok && v != "" {
		return v
	}

	return fallback
}
