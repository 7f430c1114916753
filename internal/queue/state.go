// Package queue simulates the salon's live queue for one booking: a
// "now serving" counter advanced on a fixed cadence, compared against the
// customer's assigned number. The transition logic is a pure function over
// State; side effects (notifications) come out as Effect values and are
// dispatched separately by the Tracker.
package queue

import "github.com/glamoursalon/salon_queue_bot/internal/model"

// MinutesPerCustomer is the assumed service time behind every wait
// estimate: a booking's initial estimate is its queue number times this,
// and each tick takes this much off the countdown.
const MinutesPerCustomer = 15

// EffectKind names a notification the state machine wants sent.
type EffectKind string

const (
	// EffectAlmostTurn fires when the counter reaches the customer's
	// number minus one.
	EffectAlmostTurn EffectKind = "almost_turn"
	// EffectYourTurn fires when the counter reaches the customer's number.
	EffectYourTurn EffectKind = "your_turn"
)

// Effect is a notification request emitted by a transition. Each kind is
// emitted at most once per session, on the tick whose transition crossed
// the threshold, never again while the state sits past it.
type Effect struct {
	Kind        EffectKind
	QueueNumber int
}

// State is one booking's view of the simulated queue.
type State struct {
	CurrentQueue      int // "now serving" counter, starts at 1
	MyQueueNumber     int // immutable after booking
	EstimatedWaitTime int // minutes, floored at 0
	Status            model.BookingStatus

	// Edge-trigger guards so each alert fires exactly once.
	AlmostNotified bool
	TurnNotified   bool
}

// NewState seeds the tracker from a booking's queue number and initial
// wait estimate.
func NewState(myQueueNumber, estimatedWaitTime int) State {
	return State{
		CurrentQueue:      1,
		MyQueueNumber:     myQueueNumber,
		EstimatedWaitTime: estimatedWaitTime,
		Status:            model.BookingStatusWaiting,
	}
}

// Advance applies one tick. The counter and the countdown always move;
// status and effects change only on the tick that crosses a threshold.
// The crossing checks use >= so a queue number of 1 (or below) goes ready
// on the very first tick. A completed state is inert.
func Advance(s State) (State, []Effect) {
	if s.Status == model.BookingStatusCompleted {
		return s, nil
	}

	s.CurrentQueue++
	s.EstimatedWaitTime -= MinutesPerCustomer
	if s.EstimatedWaitTime < 0 {
		s.EstimatedWaitTime = 0
	}

	var effects []Effect

	if s.Status == model.BookingStatusWaiting && s.CurrentQueue >= s.MyQueueNumber-1 {
		s.Status = model.BookingStatusReady
	}

	if !s.AlmostNotified && s.CurrentQueue >= s.MyQueueNumber-1 {
		s.AlmostNotified = true
		effects = append(effects, Effect{Kind: EffectAlmostTurn, QueueNumber: s.MyQueueNumber})
	}

	if !s.TurnNotified && s.CurrentQueue >= s.MyQueueNumber {
		s.TurnNotified = true
		effects = append(effects, Effect{Kind: EffectYourTurn, QueueNumber: s.MyQueueNumber})
	}

	return s, effects
}

// Cancel moves the state to completed. Idempotent; there is no way back.
func Cancel(s State) State {
	s.Status = model.BookingStatusCompleted
	return s
}

// PeopleAhead is the number of customers still before this one. Never
// negative, even after the counter overtakes the customer's number.
func (s State) PeopleAhead() int {
	if s.CurrentQueue >= s.MyQueueNumber {
		return 0
	}
	return s.MyQueueNumber - s.CurrentQueue
}

// Progress is the queue's progress toward this customer as a percentage,
// clamped to [0, 100].
func (s State) Progress() int {
	if s.MyQueueNumber <= 0 {
		return 100
	}
	p := s.CurrentQueue * 100 / s.MyQueueNumber
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return p
}
