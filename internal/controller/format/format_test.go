package format

import (
	"testing"

	"github.com/glamoursalon/salon_queue_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes  int
		expected string
	}{
		{20, "20 min"},
		{30, "30 min"},
		{45, "45 min"},
		{60, "1 h"},
		{90, "1 h 30 min"},
		{120, "2 h"},
		{135, "2 h 15 min"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, FormatDuration(c.minutes))
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$35", FormatPrice(35))
	assert.Equal(t, "$0", FormatPrice(0))
}

func TestGetBookingStatusDisplay(t *testing.T) {
	cases := []struct {
		status model.BookingStatus
		emoji  string
	}{
		{model.BookingStatusWaiting, "⏳"},
		{model.BookingStatusReady, "🔔"},
		{model.BookingStatusCompleted, "✔️"},
		{model.BookingStatus("bogus"), "❓"},
	}

	for _, c := range cases {
		assert.Equal(t, c.emoji, GetBookingStatusDisplay(c.status).Emoji)
	}
}

func TestFormatBooking(t *testing.T) {
	b := &model.Booking{
		Service:      model.Service{Name: "Haircut", Duration: 30, Price: 35},
		Date:         "Sat Aug 30 2026",
		Time:         "09:00 AM",
		CustomerName: "Alice",
		QueueNumber:  3,
		Status:       model.BookingStatusWaiting,
	}

	out := FormatBooking(b)
	assert.Contains(t, out, "Queue #3")
	assert.Contains(t, out, "Haircut")
	assert.Contains(t, out, "Sat Aug 30 2026 at 09:00 AM")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Waiting")
}

func TestProgressBar(t *testing.T) {
	cases := []struct {
		percent  int
		expected string
	}{
		{0, "░░░░░░░░░░"},
		{25, "▓▓░░░░░░░░"},
		{50, "▓▓▓▓▓░░░░░"},
		{100, "▓▓▓▓▓▓▓▓▓▓"},
		{-5, "░░░░░░░░░░"},
		{400, "▓▓▓▓▓▓▓▓▓▓"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, ProgressBar(c.percent))
	}
}
