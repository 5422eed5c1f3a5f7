package worker

import (
	"errors"
	"fmt"

	"github.com/DannylSyph3r/notification-system/internal/provider"
)

// outcome classifies how a delivery attempt ended.
type outcome int

const (
	outcomeTransient outcome = iota
	outcomePermanent
	outcomeSkipped
)

// errSkipped marks a task resolved by the preference snapshot without a
// provider call. It is a successful handling, not a failure.
var errSkipped = errors.New("notification skipped by user preferences")

func classify(err error) outcome {
	if errors.Is(err, errSkipped) {
		return outcomeSkipped
	}

	if provider.Classify(err) == provider.Permanent {
		return outcomePermanent
	}

	return outcomeTransient
}

// reason extracts the human-readable cause for status records.
func reason(err error) string {
	var perr *provider.Error
	if errors.As(err, &perr) {
		return perr.Reason
	}

	return err.Error()
}

func permanentf(format string, args ...interface{}) error {
	return provider.NewPermanent(fmt.Sprintf(format, args...))
}

func transientf(format string, args ...interface{}) error {
	return provider.NewTransient(fmt.Sprintf(format, args...))
}
