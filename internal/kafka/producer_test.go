package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func newTestProducer(w messageWriter) *Producer {
	p := newProducer(w, zap.NewNop())
	p.backoff = time.Millisecond
	return p
}

func TestProducer_Publish(t *testing.T) {
	w := &MockWriter{}
	p := newTestProducer(w)
	ctx := context.Background()

	w.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || msgs[0].Topic != "andromeda.bookings" || string(msgs[0].Key) != "booking-1" {
			return false
		}
		var event BookingEvent
		return json.Unmarshal(msgs[0].Value, &event) == nil && event.BookingID == 1
	})).Return(nil).Once()

	require.NoError(t, p.Publish(ctx, "andromeda.bookings", "booking-1", BookingEvent{Type: BookingCreated, BookingID: 1}))
	w.AssertExpectations(t)
}

func TestProducer_PublishWithRetry_RecoversAfterFailure(t *testing.T) {
	w := &MockWriter{}
	p := newTestProducer(w)
	ctx := context.Background()

	w.On("WriteMessages", ctx, mock.Anything).Return(errors.New("leader not available")).Once()
	w.On("WriteMessages", ctx, mock.Anything).Return(nil).Once()

	err := p.PublishWithRetry(ctx, "andromeda.notifications", "booking-1", BookingEvent{BookingID: 1}, 3)
	require.NoError(t, err)
	w.AssertNumberOfCalls(t, "WriteMessages", 2)
}

func TestProducer_PublishWithRetry_GivesUp(t *testing.T) {
	w := &MockWriter{}
	p := newTestProducer(w)
	ctx := context.Background()

	broker := errors.New("broker down")
	w.On("WriteMessages", ctx, mock.Anything).Return(broker)

	err := p.PublishWithRetry(ctx, "andromeda.notifications", "booking-1", BookingEvent{BookingID: 1}, 3)
	require.ErrorIs(t, err, broker)
	assert.Contains(t, err.Error(), "failed after 3 retries")
	w.AssertNumberOfCalls(t, "WriteMessages", 3)
}

func TestProducer_PublishWithRetry_StopsOnCancel(t *testing.T) {
	w := &MockWriter{}
	p := newProducer(w, zap.NewNop())
	p.backoff = time.Hour
	ctx, cancel := context.WithCancel(context.Background())

	w.On("WriteMessages", ctx, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(errors.New("broker down"))

	err := p.PublishWithRetry(ctx, "andromeda.notifications", "booking-1", BookingEvent{BookingID: 1}, 3)
	require.ErrorIs(t, err, context.Canceled)
	w.AssertNumberOfCalls(t, "WriteMessages", 1)
}

func TestProducer_Close(t *testing.T) {
	w := &MockWriter{}
	w.On("Close").Return(nil).Once()
	require.NoError(t, newTestProducer(w).Close())
	w.AssertExpectations(t)
}
