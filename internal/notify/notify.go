// Package notify is the boundary to the push-notification collaborator.
// The core schedules and cancels notifications through the Notifier
// interface and owns no knowledge of how they are delivered.
package notify

import (
	"context"
	"errors"
	"time"
)

// ErrNotPermitted is returned when the user has not granted the bot a
// delivery channel. Callers treat it as non-fatal and proceed without the
// notification.
var ErrNotPermitted = errors.New("notifications not permitted")

// Handle identifies a scheduled notification so it can be cancelled.
type Handle string

// Notifier delivers notifications for a single recipient.
type Notifier interface {
	// RequestPermission asks for a delivery channel and reports whether
	// notifications can be sent. Denial is not retried.
	RequestPermission(ctx context.Context) bool

	// ScheduleDelayed queues a notification to fire after the given delay.
	ScheduleDelayed(ctx context.Context, title, body string, delay time.Duration, meta map[string]string) (Handle, error)

	// SendNow delivers a notification immediately.
	SendNow(ctx context.Context, title, body string, meta map[string]string) (Handle, error)

	// CancelAll drops every notification that is scheduled but not yet
	// fired.
	CancelAll(ctx context.Context)
}

// Provider hands out the notifier bound to a chat.
type Provider interface {
	For(chatID int64) Notifier
}
