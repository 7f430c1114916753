package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/glamoursalon/salon_queue_bot/internal/catalog"
	"github.com/glamoursalon/salon_queue_bot/internal/model"
	"github.com/glamoursalon/salon_queue_bot/internal/notify"
	"github.com/glamoursalon/salon_queue_bot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrIncompleteBooking is returned when the booking input is missing a
// service, a time, or a customer name. Nothing is created; the user can
// simply resubmit.
var ErrIncompleteBooking = errors.New("select a service, time, and enter your name")

// reminderLeadMinutes is how long before the estimated turn the reminder
// notification fires. Never less than one minute out.
const reminderLeadMinutes = 5

// BookingInput is the user's selection for a new booking. Date may be
// empty, in which case today's date is used. Time must be the label of an
// available slot; the dialog only offers available slots, so availability
// is not re-checked here.
type BookingInput struct {
	ChatID       int64
	ServiceID    string
	Date         string
	Time         string
	CustomerName string
}

type BookingService struct {
	repo     *repository.BookingRepository
	notifier notify.Provider
	logger   *zap.Logger
}

func NewBookingService(
	repo *repository.BookingRepository,
	notifier notify.Provider,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateBooking validates the input and appends a new booking to the
// session. The queue number is the session's booking count plus one, the
// wait estimate is that number times the per-customer service time, and a
// reminder notification is scheduled to fire shortly before the estimated
// turn. A scheduling failure does not fail the booking.
func (s *BookingService) CreateBooking(ctx context.Context, in BookingInput) (*model.Booking, error) {
	name := strings.TrimSpace(in.CustomerName)

	svc, ok := catalog.ServiceByID(in.ServiceID)
	if !ok || in.Time == "" || name == "" {
		return nil, ErrIncompleteBooking
	}

	date := in.Date
	if date == "" {
		date = time.Now().Format("Mon Jan 02 2006")
	}

	booking := &model.Booking{
		ID:           uuid.NewString(),
		ChatID:       in.ChatID,
		Service:      svc,
		Date:         date,
		Time:         in.Time,
		CustomerName: name,
		Status:       model.BookingStatusWaiting,
		CreatedAt:    time.Now(),
	}

	queueNumber := s.repo.Append(booking)

	lead := booking.EstimatedWaitTime - reminderLeadMinutes
	if lead < 1 {
		lead = 1
	}

	_, err := s.notifier.For(in.ChatID).ScheduleDelayed(ctx,
		"Almost Your Turn! \U0001F487",
		"Queue #"+strconv.Itoa(queueNumber)+" - You're next in line! Please head to the salon.",
		time.Duration(lead)*time.Minute,
		map[string]string{"queue_number": strconv.Itoa(queueNumber)},
	)
	if err != nil {
		// Degraded but functional: the booking stands without its reminder.
		s.logger.Warn("Failed to schedule reminder notification",
			zap.String("booking_id", booking.ID),
			zap.Int64("chat_id", in.ChatID),
			zap.Error(err))
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.Int64("chat_id", in.ChatID),
		zap.String("service", svc.Name),
		zap.String("time", booking.Time),
		zap.Int("queue_number", queueNumber),
		zap.Int("estimated_wait_minutes", booking.EstimatedWaitTime))

	return booking, nil
}

// GetChatBookings returns all bookings made from the chat this session.
func (s *BookingService) GetChatBookings(chatID int64) []*model.Booking {
	return s.repo.GetByChatID(chatID)
}
