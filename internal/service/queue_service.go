package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/glamoursalon/salon_queue_bot/internal/model"
	"github.com/glamoursalon/salon_queue_bot/internal/notify"
	"github.com/glamoursalon/salon_queue_bot/internal/queue"
	"github.com/glamoursalon/salon_queue_bot/internal/repository"
	"go.uber.org/zap"
)

// ErrNoActiveBooking is returned when a chat has no booking that is still
// waiting or ready.
var ErrNoActiveBooking = errors.New("no active booking")

// QueueService owns the live queue sessions: one tracker per chat, seeded
// from the chat's booking and torn down on cancel or shutdown. Bookings
// seed trackers, and trackers push status back onto the stored booking.
type QueueService struct {
	repo     *repository.BookingRepository
	notifier notify.Provider
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*queue.Tracker
}

func NewQueueService(
	repo *repository.BookingRepository,
	notifier notify.Provider,
	interval time.Duration,
	logger *zap.Logger,
) *QueueService {
	return &QueueService{
		repo:     repo,
		notifier: notifier,
		interval: interval,
		logger:   logger,
		sessions: make(map[int64]*queue.Tracker),
	}
}

// StartTracking begins the queue simulation for a freshly created booking.
// A previous tracker for the chat, if any, is stopped first and its
// booking is closed out; one chat tracks one booking at a time.
func (s *QueueService) StartTracking(ctx context.Context, booking *model.Booking) {
	s.mu.Lock()
	if old, ok := s.sessions[booking.ChatID]; ok {
		old.Stop()
	}
	s.repo.CompleteActiveExcept(booking.ChatID, booking.ID)

	tracker := queue.NewTracker(
		queue.NewState(booking.QueueNumber, booking.EstimatedWaitTime),
		s.interval,
		s.notifier.For(booking.ChatID),
		s.logger,
	)

	bookingID := booking.ID
	tracker.OnChange = func(st queue.State) {
		s.repo.UpdateStatus(bookingID, st.Status)
		s.repo.UpdateEstimatedWait(bookingID, st.EstimatedWaitTime)
	}

	s.sessions[booking.ChatID] = tracker
	s.mu.Unlock()

	tracker.Start(ctx)

	s.logger.Info("Queue tracking started",
		zap.Int64("chat_id", booking.ChatID),
		zap.String("booking_id", bookingID),
		zap.Int("queue_number", booking.QueueNumber))
}

// Status returns the chat's active booking and the current queue state.
func (s *QueueService) Status(chatID int64) (*model.Booking, queue.State, error) {
	booking := s.repo.GetActiveByChatID(chatID)
	if booking == nil {
		return nil, queue.State{}, ErrNoActiveBooking
	}

	s.mu.Lock()
	tracker, ok := s.sessions[chatID]
	s.mu.Unlock()

	if !ok {
		// Booking exists but its tracker is gone (should not happen in a
		// live session); report it as frozen at its stored values.
		return booking, queue.NewState(booking.QueueNumber, booking.EstimatedWaitTime), nil
	}

	return booking, tracker.Snapshot(), nil
}

// CancelActive cancels the chat's active booking: status goes to
// completed, every pending notification is dropped and the tracker stops.
// Idempotent: cancelling again after the booking completed returns the
// same booking with no error and changes nothing.
func (s *QueueService) CancelActive(ctx context.Context, chatID int64) (*model.Booking, error) {
	booking := s.repo.GetActiveByChatID(chatID)
	if booking == nil {
		if last := s.repo.GetLatestByChatID(chatID); last != nil && last.Status == model.BookingStatusCompleted {
			return last, nil
		}
		return nil, ErrNoActiveBooking
	}

	s.mu.Lock()
	tracker, ok := s.sessions[chatID]
	if ok {
		delete(s.sessions, chatID)
	}
	s.mu.Unlock()

	if ok {
		tracker.Cancel(ctx)
		tracker.Stop()
	} else {
		// No tracker to do it for us; flip the status and drop
		// notifications directly.
		s.repo.UpdateStatus(booking.ID, model.BookingStatusCompleted)
		s.notifier.For(chatID).CancelAll(ctx)
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("chat_id", chatID),
		zap.String("booking_id", booking.ID),
		zap.Int("queue_number", booking.QueueNumber))

	// Re-read so the caller sees the completed status; the repository hands
	// out copies, not live records.
	return s.repo.GetByID(booking.ID), nil
}

// Shutdown stops every running tracker. Called on process teardown.
func (s *QueueService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for chatID, tracker := range s.sessions {
		tracker.Stop()
		delete(s.sessions, chatID)
	}

	s.logger.Info("All queue trackers stopped")
}
