package model

import "time"

type BookingStatus string

const (
	BookingStatusWaiting   BookingStatus = "waiting"   // In the queue
	BookingStatusReady     BookingStatus = "ready"     // Turn is imminent or current
	BookingStatusCompleted BookingStatus = "completed" // Cancelled or done
)

// Booking is a confirmed visit with an assigned queue position. Identity
// fields never change after creation; only Status and EstimatedWaitTime
// evolve, driven by the queue tracker.
type Booking struct {
	ID                string        `json:"id"`
	ChatID            int64         `json:"chat_id"`
	Service           Service       `json:"service"`
	Date              string        `json:"date"` // display string, e.g. "Sat Aug 30 2026"
	Time              string        `json:"time"` // slot label
	CustomerName      string        `json:"customer_name"`
	QueueNumber       int           `json:"queue_number"`
	Status            BookingStatus `json:"status"`
	EstimatedWaitTime int           `json:"estimated_wait_time"` // in minutes
	CreatedAt         time.Time     `json:"created_at"`
}

// Active reports whether the booking is still in the queue.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusWaiting || b.Status == BookingStatusReady
}
