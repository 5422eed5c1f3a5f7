package provider

import (
	"context"
	"sync"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/DannylSyph3r/notification-system/internal/model"
)

// State represents the current state of the circuit breaker.
type State int

const (
	// Closed allows calls to pass through.
	Closed State = iota
	// Open blocks all calls.
	Open
	// HalfOpen allows probe calls to test whether the provider recovered.
	HalfOpen
)

// String returns the string representation of the breaker state.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker wraps a Sender with a circuit breaker. After a run of transient
// failures it fails fast without invoking the provider, then half-opens
// after the recovery timeout to probe recovery. Safe for concurrent use.
type Breaker struct {
	sender Sender
	name   string

	mu sync.Mutex

	failureThreshold int
	successThreshold int
	recoveryTimeout  time.Duration

	state           State
	failures        int
	successCount    int
	lastFailureTime time.Time
}

// NewBreaker wraps sender with a circuit breaker. Non-positive thresholds
// fall back to defaults.
func NewBreaker(sender Sender, name string, failureThreshold, successThreshold int, recoveryTimeout time.Duration) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if successThreshold <= 0 {
		successThreshold = 2
	}
	if recoveryTimeout <= 0 {
		recoveryTimeout = 30 * time.Second
	}

	return &Breaker{
		sender:           sender,
		name:             name,
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		recoveryTimeout:  recoveryTimeout,
		state:            Closed,
	}
}

// Send invokes the wrapped sender unless the circuit is open. An open
// circuit yields a transient failure without calling the provider.
func (b *Breaker) Send(ctx context.Context, task model.NotificationTask) (string, error) {
	if !b.allow() {
		zlog.Logger.Warn().
			Str("provider", b.name).
			Str("notification_id", task.NotificationID).
			Msg("circuit breaker open, failing fast")
		return "", NewTransient(b.name + " circuit breaker is open")
	}

	id, err := b.sender.Send(ctx, task)

	// Permanent failures mean the provider answered; only transient
	// failures count against the circuit.
	if err != nil && Classify(err) == Transient {
		b.recordFailure()
		return "", err
	}

	b.recordSuccess()
	return id, err
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		return true
	case Open:
		if time.Since(b.lastFailureTime) > b.recoveryTimeout {
			b.state = HalfOpen
			b.successCount = 0
			return true
		}
		return false
	case HalfOpen:
		return true
	default:
		return false
	}
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		b.failures = 0
	case HalfOpen:
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = Closed
			b.failures = 0
			b.successCount = 0
			zlog.Logger.Info().Str("provider", b.name).Msg("circuit breaker closed")
		}
	}
}

func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailureTime = time.Now()

	switch b.state {
	case Closed:
		if b.failures >= b.failureThreshold {
			b.state = Open
			zlog.Logger.Warn().Str("provider", b.name).Msg("circuit breaker opened")
		}
	case HalfOpen:
		// One failed probe reopens the circuit.
		b.state = Open
		b.successCount = 0
	}
}

// state snapshot for tests.
func (b *Breaker) currentState() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
