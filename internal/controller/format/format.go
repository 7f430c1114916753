// Package format builds the display strings the bot sends: prices,
// durations, statuses and the queue progress bar.
package format

import (
	"fmt"
	"strings"

	"github.com/glamoursalon/salon_queue_bot/internal/model"
)

// FormatPrice formats a whole-unit price for display.
func FormatPrice(price int) string {
	return fmt.Sprintf("$%d", price)
}

// FormatDuration formats a duration in minutes, switching to hours past 60.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, mins)
}

// BookingStatusDisplay is the emoji and text shown for a booking status.
type BookingStatusDisplay struct {
	Emoji string
	Text  string
}

// GetBookingStatusDisplay returns the display for a booking status.
func GetBookingStatusDisplay(status model.BookingStatus) BookingStatusDisplay {
	displays := map[model.BookingStatus]BookingStatusDisplay{
		model.BookingStatusWaiting:   {"⏳", "Waiting"},
		model.BookingStatusReady:     {"🔔", "Ready - your turn is coming up"},
		model.BookingStatusCompleted: {"✔️", "Completed"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return BookingStatusDisplay{"❓", "Unknown"}
}

// FormatService formats one catalog entry as a list line.
func FormatService(s model.Service) string {
	return fmt.Sprintf("💇 %s — %s, %s", s.Name, FormatDuration(s.Duration), FormatPrice(s.Price))
}

// FormatBooking formats a booking for the /mybookings list.
func FormatBooking(b *model.Booking) string {
	display := GetBookingStatusDisplay(b.Status)

	return fmt.Sprintf(
		"%s Queue #%d — %s\n"+
			"📅 %s at %s\n"+
			"👤 %s\n"+
			"📊 Status: %s",
		display.Emoji,
		b.QueueNumber,
		b.Service.Name,
		b.Date,
		b.Time,
		b.CustomerName,
		display.Text,
	)
}

// ProgressBar renders a 10-segment bar for a percentage in [0, 100].
func ProgressBar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := percent / 10
	return strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled)
}
