// Package provider defines the delivery-provider contract consumed by the
// delivery worker: send a payload, get back a provider message id or a
// typed permanent/transient failure.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/DannylSyph3r/notification-system/internal/model"
)

// Kind classifies a provider failure.
type Kind int

const (
	// Transient failures (timeouts, outages, rate limits) are retried
	// with bounded attempts.
	Transient Kind = iota
	// Permanent failures (bad or expired recipient identity, malformed
	// payload) are terminal; retrying never succeeds.
	Permanent
)

// String returns the string representation of the failure kind.
func (k Kind) String() string {
	switch k {
	case Transient:
		return "transient"
	case Permanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Error is a classified provider failure.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s provider error: %s", e.Kind, e.Reason)
}

// NewPermanent builds a permanent provider error.
func NewPermanent(reason string) *Error {
	return &Error{Kind: Permanent, Reason: reason}
}

// NewTransient builds a transient provider error.
func NewTransient(reason string) *Error {
	return &Error{Kind: Transient, Reason: reason}
}

// Classify extracts the failure kind from an error. Unclassified errors
// are treated as transient.
func Classify(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}

	return Transient
}

// Sender delivers a single notification task and returns the provider
// message id on success.
type Sender interface {
	Send(ctx context.Context, task model.NotificationTask) (string, error)
}
