package repository

import (
	"sync"

	"github.com/glamoursalon/salon_queue_bot/internal/model"
	"github.com/glamoursalon/salon_queue_bot/internal/queue"
)

// BookingRepository is the session's in-memory booking store. Bookings are
// append-only and live for the process lifetime; nothing is ever removed
// and nothing survives a restart. Queue numbers are assigned here, under
// the same lock as the append, so they stay sequential and unique.
//
// Accessors return copies, never pointers into the store: trackers write
// Status and EstimatedWaitTime back through Update* while handlers read,
// so no caller may share memory with the stored records.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings []*model.Booking
}

func cloneBooking(b *model.Booking) *model.Booking {
	c := *b
	return &c
}

// NewBookingRepository creates an empty booking store.
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// Append stores the booking, assigns the next queue number (1-based,
// never reused) and the initial wait estimate derived from it. Both are
// set under the lock so concurrent chats never collide on a number.
// Returns the assigned number.
func (r *BookingRepository) Append(b *model.Booking) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.QueueNumber = len(r.bookings) + 1
	b.EstimatedWaitTime = b.QueueNumber * queue.MinutesPerCustomer
	r.bookings = append(r.bookings, cloneBooking(b))
	return b.QueueNumber
}

// Count returns the number of bookings created this session.
func (r *BookingRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.bookings)
}

// GetByID returns a copy of the booking with the given id, or nil.
func (r *BookingRepository) GetByID(id string) *model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ID == id {
			return cloneBooking(b)
		}
	}
	return nil
}

// GetByChatID returns copies of all bookings created from the given chat,
// in creation order.
func (r *BookingRepository) GetByChatID(chatID int64) []*model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Booking
	for _, b := range r.bookings {
		if b.ChatID == chatID {
			out = append(out, cloneBooking(b))
		}
	}
	return out
}

// GetLatestByChatID returns a copy of the chat's most recent booking
// regardless of status, or nil if the chat never booked.
func (r *BookingRepository) GetLatestByChatID(chatID int64) *model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.bookings) - 1; i >= 0; i-- {
		if r.bookings[i].ChatID == chatID {
			return cloneBooking(r.bookings[i])
		}
	}
	return nil
}

// GetActiveByChatID returns a copy of the chat's most recent booking that
// is still waiting or ready, or nil if there is none.
func (r *BookingRepository) GetActiveByChatID(chatID int64) *model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.bookings) - 1; i >= 0; i-- {
		b := r.bookings[i]
		if b.ChatID == chatID && b.Active() {
			return cloneBooking(b)
		}
	}
	return nil
}

// UpdateStatus sets the booking's status. Identity fields are never
// touched here.
func (r *BookingRepository) UpdateStatus(id string, status model.BookingStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			return
		}
	}
}

// UpdateEstimatedWait sets the booking's displayed wait estimate.
func (r *BookingRepository) UpdateEstimatedWait(id string, minutes int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == id {
			b.EstimatedWaitTime = minutes
			return
		}
	}
}

// CompleteActiveExcept marks every active booking of the chat other than
// keepID as completed. Called when a newer booking takes over the chat's
// queue session, so superseded bookings never linger as active.
func (r *BookingRepository) CompleteActiveExcept(chatID int64, keepID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ChatID == chatID && b.ID != keepID && b.Active() {
			b.Status = model.BookingStatusCompleted
		}
	}
}
