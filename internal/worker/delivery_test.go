package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannylSyph3r/notification-system/internal/config"
	mocks "github.com/DannylSyph3r/notification-system/internal/mocks/worker"
	"github.com/DannylSyph3r/notification-system/internal/model"
	"github.com/DannylSyph3r/notification-system/internal/provider"
)

type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

type fakeSender struct {
	err       error
	messageID string
	calls     int
}

func (f *fakeSender) Send(ctx context.Context, task model.NotificationTask) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.messageID, nil
}

func testDelivery() config.Delivery {
	return config.Delivery{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    32 * time.Second,
	}
}

func pushTask() model.NotificationTask {
	return model.NotificationTask{
		NotificationID:   "n-1",
		RequestID:        "req-1",
		UserID:           "u-1",
		NotificationType: model.TypePush,
		TemplateCode:     "welcome",
		UserPreferences:  model.UserPreferences{Email: true, Push: true},
		UserContact:      model.UserContact{PushToken: "token-1"},
		CorrelationID:    "corr-1",
	}
}

func deliveryFor(t *testing.T, task model.NotificationTask, retryCount int) (amqp.Delivery, *fakeAcknowledger) {
	t.Helper()

	body, err := json.Marshal(task)
	require.NoError(t, err)

	ack := &fakeAcknowledger{}
	return amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  1,
		Body:         body,
		Headers:      amqp.Table{"x-retry-count": int32(retryCount)},
	}, ack
}

func TestWorker_Handle_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerMock := mocks.NewMockstatusLedger(ctrl)
	sender := &fakeSender{messageID: "msg-1"}
	w := New(nil, ledgerMock, nil, map[string]provider.Sender{model.TypePush: sender}, testDelivery())

	task := pushTask()
	d, ack := deliveryFor(t, task, 0)

	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusPending, "")
	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusDelivered, "")

	w.Handle(context.Background(), d)

	assert.Equal(t, 1, sender.calls)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestWorker_Handle_SkippedByPreferenceSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerMock := mocks.NewMockstatusLedger(ctrl)
	sender := &fakeSender{}
	w := New(nil, ledgerMock, nil, map[string]provider.Sender{model.TypePush: sender}, testDelivery())

	task := pushTask()
	task.UserPreferences.Push = false
	d, ack := deliveryFor(t, task, 0)

	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusSkipped, gomock.Any())

	w.Handle(context.Background(), d)

	// The provider is never invoked for a skipped task.
	assert.Equal(t, 0, sender.calls)
	assert.True(t, ack.acked)
}

func TestWorker_Handle_MissingContactIsPermanent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerMock := mocks.NewMockstatusLedger(ctrl)
	sender := &fakeSender{}
	w := New(nil, ledgerMock, nil, map[string]provider.Sender{model.TypePush: sender}, testDelivery())

	task := pushTask()
	task.UserContact.PushToken = ""
	d, ack := deliveryFor(t, task, 0)

	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusFailed, "device token is null or empty")

	w.Handle(context.Background(), d)

	assert.Equal(t, 0, sender.calls)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestWorker_Handle_PermanentProviderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerMock := mocks.NewMockstatusLedger(ctrl)
	sender := &fakeSender{err: provider.NewPermanent("device token rejected")}
	w := New(nil, ledgerMock, nil, map[string]provider.Sender{model.TypePush: sender}, testDelivery())

	task := pushTask()
	d, ack := deliveryFor(t, task, 0)

	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusPending, "")
	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusFailed, "device token rejected")

	w.Handle(context.Background(), d)

	// Exactly one attempt, no retry scheduled.
	assert.Equal(t, 1, sender.calls)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestWorker_Handle_TransientSchedulesRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerMock := mocks.NewMockstatusLedger(ctrl)
	publisherMock := mocks.NewMockretryPublisher(ctrl)
	sender := &fakeSender{err: provider.NewTransient("provider timeout")}
	w := New(nil, ledgerMock, publisherMock, map[string]provider.Sender{model.TypePush: sender}, testDelivery())

	task := pushTask()
	d, ack := deliveryFor(t, task, 0)

	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusPending, "")
	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusPending, "retry 1: provider timeout")
	publisherMock.EXPECT().PublishRetry(gomock.Any(), gomock.Any(), 1, 2*time.Second).Return(nil)

	w.Handle(context.Background(), d)

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestWorker_Handle_TransientExhaustsRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerMock := mocks.NewMockstatusLedger(ctrl)
	publisherMock := mocks.NewMockretryPublisher(ctrl)
	sender := &fakeSender{err: provider.NewTransient("provider timeout")}
	w := New(nil, ledgerMock, publisherMock, map[string]provider.Sender{model.TypePush: sender}, testDelivery())

	task := pushTask()
	// Two retries already consumed: this is the third and final attempt.
	d, ack := deliveryFor(t, task, 2)

	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusPending, "")
	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusFailed, "max retries reached: provider timeout")

	w.Handle(context.Background(), d)

	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestWorker_Handle_RetryPublishFailureRequeues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerMock := mocks.NewMockstatusLedger(ctrl)
	publisherMock := mocks.NewMockretryPublisher(ctrl)
	sender := &fakeSender{err: provider.NewTransient("provider timeout")}
	w := New(nil, ledgerMock, publisherMock, map[string]provider.Sender{model.TypePush: sender}, testDelivery())

	task := pushTask()
	d, ack := deliveryFor(t, task, 0)

	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusPending, "")
	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusPending, "retry 1: provider timeout")
	publisherMock.EXPECT().PublishRetry(gomock.Any(), gomock.Any(), 1, 2*time.Second).
		Return(errors.New("channel closed"))

	w.Handle(context.Background(), d)

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
}

func TestWorker_Handle_UnclassifiedErrorIsTransient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerMock := mocks.NewMockstatusLedger(ctrl)
	publisherMock := mocks.NewMockretryPublisher(ctrl)
	sender := &fakeSender{err: errors.New("connection reset")}
	w := New(nil, ledgerMock, publisherMock, map[string]provider.Sender{model.TypePush: sender}, testDelivery())

	task := pushTask()
	d, ack := deliveryFor(t, task, 0)

	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusPending, "")
	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusPending, "retry 1: connection reset")
	publisherMock.EXPECT().PublishRetry(gomock.Any(), gomock.Any(), 1, 2*time.Second).Return(nil)

	w.Handle(context.Background(), d)

	assert.True(t, ack.acked)
}

func TestWorker_Handle_MalformedBody(t *testing.T) {
	w := New(nil, nil, nil, nil, testDelivery())

	ack := &fakeAcknowledger{}
	d := amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  1,
		Body:         []byte("not json"),
	}

	w.Handle(context.Background(), d)

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestWorker_Run_DrainsDeliveries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	consumerMock := mocks.NewMocktaskConsumer(ctrl)
	ledgerMock := mocks.NewMockstatusLedger(ctrl)
	sender := &fakeSender{messageID: "msg-1"}
	w := New(consumerMock, ledgerMock, nil, map[string]provider.Sender{model.TypePush: sender}, testDelivery())

	task := pushTask()
	d, ack := deliveryFor(t, task, 0)

	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- d
	close(deliveries)

	consumerMock.EXPECT().Deliveries().Return((<-chan amqp.Delivery)(deliveries), nil)
	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusPending, "")
	ledgerMock.EXPECT().SetBestEffort(gomock.Any(), "n-1", model.StatusDelivered, "")

	err := w.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, ack.acked)
}

func TestWorker_Run_ConsumeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	consumerMock := mocks.NewMocktaskConsumer(ctrl)
	w := New(consumerMock, nil, nil, nil, testDelivery())

	consumerMock.EXPECT().Deliveries().Return(nil, errors.New("channel closed"))

	err := w.Run(context.Background(), 1)
	assert.Error(t, err)
}

func TestBackoff(t *testing.T) {
	base := 2 * time.Second
	max := 32 * time.Second

	tests := []struct {
		retryCount int
		want       time.Duration
	}{
		{0, 2 * time.Second},
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{3, 16 * time.Second},
		{4, 32 * time.Second},
		{10, 32 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, backoff(tt.retryCount, base, max))
	}
}
