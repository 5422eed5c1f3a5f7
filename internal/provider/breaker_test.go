package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannylSyph3r/notification-system/internal/model"
)

type scriptedSender struct {
	err   error
	calls int
}

func (s *scriptedSender) Send(ctx context.Context, task model.NotificationTask) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "msg-1", nil
}

func TestBreaker_OpensAfterFailureThreshold(t *testing.T) {
	sender := &scriptedSender{err: NewTransient("provider timeout")}
	b := NewBreaker(sender, "push", 3, 2, 30*time.Second)

	for i := 0; i < 3; i++ {
		_, err := b.Send(context.Background(), model.NotificationTask{})
		require.Error(t, err)
	}

	assert.Equal(t, Open, b.currentState())

	// Open circuit fails fast without touching the provider.
	_, err := b.Send(context.Background(), model.NotificationTask{})
	require.Error(t, err)
	assert.Equal(t, Transient, Classify(err))
	assert.Equal(t, 3, sender.calls)
}

func TestBreaker_PermanentErrorsDoNotTrip(t *testing.T) {
	sender := &scriptedSender{err: NewPermanent("address rejected")}
	b := NewBreaker(sender, "email", 3, 2, 30*time.Second)

	for i := 0; i < 10; i++ {
		_, err := b.Send(context.Background(), model.NotificationTask{})
		require.Error(t, err)
	}

	// The provider answered every time; the circuit stays closed.
	assert.Equal(t, Closed, b.currentState())
	assert.Equal(t, 10, sender.calls)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	sender := &scriptedSender{err: NewTransient("provider timeout")}
	b := NewBreaker(sender, "push", 3, 2, 30*time.Second)

	_, _ = b.Send(context.Background(), model.NotificationTask{})
	_, _ = b.Send(context.Background(), model.NotificationTask{})

	sender.err = nil
	_, err := b.Send(context.Background(), model.NotificationTask{})
	require.NoError(t, err)

	sender.err = NewTransient("provider timeout")
	_, _ = b.Send(context.Background(), model.NotificationTask{})
	_, _ = b.Send(context.Background(), model.NotificationTask{})

	assert.Equal(t, Closed, b.currentState())
}

func TestBreaker_HalfOpenRecovery(t *testing.T) {
	sender := &scriptedSender{err: NewTransient("provider timeout")}
	b := NewBreaker(sender, "push", 2, 2, 20*time.Millisecond)

	_, _ = b.Send(context.Background(), model.NotificationTask{})
	_, _ = b.Send(context.Background(), model.NotificationTask{})
	require.Equal(t, Open, b.currentState())

	time.Sleep(30 * time.Millisecond)

	// Probes pass through in half-open; two successes close the circuit.
	sender.err = nil
	_, err := b.Send(context.Background(), model.NotificationTask{})
	require.NoError(t, err)
	assert.Equal(t, HalfOpen, b.currentState())

	_, err = b.Send(context.Background(), model.NotificationTask{})
	require.NoError(t, err)
	assert.Equal(t, Closed, b.currentState())
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	sender := &scriptedSender{err: NewTransient("provider timeout")}
	b := NewBreaker(sender, "push", 2, 2, 20*time.Millisecond)

	_, _ = b.Send(context.Background(), model.NotificationTask{})
	_, _ = b.Send(context.Background(), model.NotificationTask{})
	require.Equal(t, Open, b.currentState())

	time.Sleep(30 * time.Millisecond)

	_, err := b.Send(context.Background(), model.NotificationTask{})
	require.Error(t, err)
	assert.Equal(t, Open, b.currentState())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Permanent, Classify(NewPermanent("bad address")))
	assert.Equal(t, Transient, Classify(NewTransient("timeout")))
	// Unclassified errors are treated as retryable.
	assert.Equal(t, Transient, Classify(context.DeadlineExceeded))
}
