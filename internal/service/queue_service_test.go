package service

import (
	"context"
	"testing"
	"time"

	"github.com/glamoursalon/salon_queue_bot/internal/model"
	"github.com/glamoursalon/salon_queue_bot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The interval is long enough that no tick fires during a test; tick
// behavior itself is covered in the queue package.
const testInterval = time.Hour

func newQueueServiceForTest() (*QueueService, *BookingService, *recordingNotifier) {
	repo := repository.NewBookingRepository()
	notifier := &recordingNotifier{}
	provider := &recordingProvider{notifier: notifier}
	bookingSvc := NewBookingService(repo, provider, zap.NewNop())
	queueSvc := NewQueueService(repo, provider, testInterval, zap.NewNop())
	return queueSvc, bookingSvc, notifier
}

func TestStatus_NoActiveBooking(t *testing.T) {
	queueSvc, _, _ := newQueueServiceForTest()

	_, _, err := queueSvc.Status(42)
	assert.ErrorIs(t, err, ErrNoActiveBooking)
}

func TestStatus_ReflectsTrackedBooking(t *testing.T) {
	queueSvc, bookingSvc, _ := newQueueServiceForTest()
	ctx := context.Background()

	booking, err := bookingSvc.CreateBooking(ctx, validInput(42))
	require.NoError(t, err)
	queueSvc.StartTracking(ctx, booking)
	defer queueSvc.Shutdown()

	got, st, err := queueSvc.Status(42)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
	assert.Equal(t, 1, st.CurrentQueue)
	assert.Equal(t, booking.QueueNumber, st.MyQueueNumber)
	assert.Equal(t, booking.EstimatedWaitTime, st.EstimatedWaitTime)
	assert.Equal(t, model.BookingStatusWaiting, st.Status)
}

func TestCancelActive_CompletesAndDropsNotifications(t *testing.T) {
	queueSvc, bookingSvc, notifier := newQueueServiceForTest()
	ctx := context.Background()

	booking, err := bookingSvc.CreateBooking(ctx, validInput(42))
	require.NoError(t, err)
	queueSvc.StartTracking(ctx, booking)

	cancelled, err := queueSvc.CancelActive(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, cancelled.ID)
	assert.Equal(t, model.BookingStatusCompleted, cancelled.Status)
	assert.Equal(t, 1, notifier.cancelCalls)

	_, _, err = queueSvc.Status(42)
	assert.ErrorIs(t, err, ErrNoActiveBooking)
}

func TestCancelActive_Idempotent(t *testing.T) {
	queueSvc, bookingSvc, _ := newQueueServiceForTest()
	ctx := context.Background()

	booking, err := bookingSvc.CreateBooking(ctx, validInput(42))
	require.NoError(t, err)
	queueSvc.StartTracking(ctx, booking)

	first, err := queueSvc.CancelActive(ctx, 42)
	require.NoError(t, err)

	second, err := queueSvc.CancelActive(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.BookingStatusCompleted, second.Status)
}

func TestCancelActive_NothingToCancel(t *testing.T) {
	queueSvc, _, _ := newQueueServiceForTest()

	_, err := queueSvc.CancelActive(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoActiveBooking)
}

func TestCancelActive_WithoutTracker(t *testing.T) {
	// A booking that never got a tracker can still be cancelled.
	queueSvc, bookingSvc, notifier := newQueueServiceForTest()
	ctx := context.Background()

	booking, err := bookingSvc.CreateBooking(ctx, validInput(42))
	require.NoError(t, err)

	cancelled, err := queueSvc.CancelActive(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, cancelled.ID)
	assert.Equal(t, model.BookingStatusCompleted, cancelled.Status)
	assert.Equal(t, 1, notifier.cancelCalls)
}

func TestStartTracking_ReplacesPreviousSession(t *testing.T) {
	queueSvc, bookingSvc, _ := newQueueServiceForTest()
	ctx := context.Background()
	defer queueSvc.Shutdown()

	first, err := bookingSvc.CreateBooking(ctx, validInput(42))
	require.NoError(t, err)
	queueSvc.StartTracking(ctx, first)

	second, err := bookingSvc.CreateBooking(ctx, validInput(42))
	require.NoError(t, err)
	queueSvc.StartTracking(ctx, second)

	// The active booking is the latest one; its tracker state matches its
	// queue number.
	got, st, err := queueSvc.Status(42)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, second.QueueNumber, st.MyQueueNumber)
}

func TestStartTracking_CompletesSupersededBooking(t *testing.T) {
	queueSvc, bookingSvc, _ := newQueueServiceForTest()
	ctx := context.Background()
	defer queueSvc.Shutdown()

	first, err := bookingSvc.CreateBooking(ctx, validInput(42))
	require.NoError(t, err)
	queueSvc.StartTracking(ctx, first)

	second, err := bookingSvc.CreateBooking(ctx, validInput(42))
	require.NoError(t, err)
	queueSvc.StartTracking(ctx, second)

	// The replaced booking is closed out, not left frozen at waiting.
	bookings := bookingSvc.GetChatBookings(42)
	require.Len(t, bookings, 2)
	assert.Equal(t, model.BookingStatusCompleted, bookings[0].Status)
	assert.Equal(t, model.BookingStatusWaiting, bookings[1].Status)

	// Cancelling the live booking leaves no stale active booking behind.
	cancelled, err := queueSvc.CancelActive(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, second.ID, cancelled.ID)

	again, err := queueSvc.CancelActive(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, second.ID, again.ID)
	assert.Equal(t, model.BookingStatusCompleted, again.Status)
}

func TestTracking_BookingReadsDuringLiveTicks(t *testing.T) {
	// Handlers read booking fields while the tracker writes status and the
	// wait estimate back through the repository. A fast tick plus a tight
	// read loop keeps both sides busy at once.
	repo := repository.NewBookingRepository()
	notifier := &recordingNotifier{}
	provider := &recordingProvider{notifier: notifier}
	bookingSvc := NewBookingService(repo, provider, zap.NewNop())
	queueSvc := NewQueueService(repo, provider, time.Millisecond, zap.NewNop())
	defer queueSvc.Shutdown()

	ctx := context.Background()
	booking, err := bookingSvc.CreateBooking(ctx, validInput(42))
	require.NoError(t, err)
	queueSvc.StartTracking(ctx, booking)

	deadline := time.Now().Add(50 * time.Millisecond)
	for time.Now().Before(deadline) {
		for _, got := range bookingSvc.GetChatBookings(42) {
			_ = got.Status
			_ = got.EstimatedWaitTime
		}
	}

	got, _, err := queueSvc.Status(42)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
}

func TestShutdown_StopsAllSessions(t *testing.T) {
	queueSvc, bookingSvc, _ := newQueueServiceForTest()
	ctx := context.Background()

	for chat := int64(1); chat <= 3; chat++ {
		booking, err := bookingSvc.CreateBooking(ctx, validInput(chat))
		require.NoError(t, err)
		queueSvc.StartTracking(ctx, booking)
	}

	queueSvc.Shutdown()

	// Bookings stay in the store; only the simulations are gone.
	_, _, err := queueSvc.Status(1)
	assert.NoError(t, err)
}
