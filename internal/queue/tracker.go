package queue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/glamoursalon/salon_queue_bot/internal/notify"
	"go.uber.org/zap"
)

// Tracker drives one booking's queue simulation: a ticker advances the
// state on a fixed cadence and the resulting effects are sent through the
// notifier. All state mutation happens under one mutex, from either the
// single run goroutine or an explicit cancel, so ticks are strictly
// sequential and a tick's effects are dispatched before the next begins.
type Tracker struct {
	interval time.Duration
	notifier notify.Notifier
	logger   *zap.Logger

	// OnChange, when set, is called with the state after every tick and
	// after a cancel. Set it before Start.
	OnChange func(State)

	mu    sync.Mutex
	state State

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewTracker creates a tracker over the given initial state.
func NewTracker(state State, interval time.Duration, notifier notify.Notifier, logger *zap.Logger) *Tracker {
	return &Tracker{
		interval: interval,
		notifier: notifier,
		logger:   logger,
		state:    state,
		stopChan: make(chan struct{}),
	}
}

// Start launches the tick loop. The loop ends when Stop is called or the
// context is done.
func (t *Tracker) Start(ctx context.Context) {
	t.logger.Info("Starting queue tracker",
		zap.Int("queue_number", t.state.MyQueueNumber),
		zap.Duration("interval", t.interval))

	go t.run(ctx)
}

// Stop terminates the tick loop. Safe to call more than once; must be
// called when the session that owns the tracker goes away.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
	})
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// Cancel moves the booking to completed and drops every pending
// notification. Idempotent; the tracker keeps ticking harmlessly until
// stopped, since a completed state is inert.
func (t *Tracker) Cancel(ctx context.Context) {
	t.mu.Lock()
	t.state = Cancel(t.state)
	st := t.state
	t.mu.Unlock()

	t.notifier.CancelAll(ctx)

	if t.OnChange != nil {
		t.OnChange(st)
	}

	t.logger.Info("Queue tracking cancelled", zap.Int("queue_number", st.MyQueueNumber))
}

func (t *Tracker) run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.tick(ctx)
		case <-t.stopChan:
			t.logger.Info("Queue tracker stopped")
			return
		case <-ctx.Done():
			t.logger.Info("Queue tracker cancelled")
			return
		}
	}
}

// tick applies one transition and dispatches its effects. Both happen
// inside the critical section: a concurrent Cancel lands either before
// the transition, where a completed state yields no effects, or after the
// sends have gone out. Its CancelAll can never fall in between.
func (t *Tracker) tick(ctx context.Context) {
	t.mu.Lock()
	next, effects := Advance(t.state)
	t.state = next
	for _, e := range effects {
		t.dispatch(ctx, e)
	}
	t.mu.Unlock()

	if t.OnChange != nil {
		t.OnChange(next)
	}
}

func (t *Tracker) dispatch(ctx context.Context, e Effect) {
	var title, body string

	switch e.Kind {
	case EffectAlmostTurn:
		title = "Almost Your Turn! \U0001F487"
		body = "Queue #" + strconv.Itoa(e.QueueNumber) + " - You're next in line! Please head to the salon."
	case EffectYourTurn:
		title = "It's Your Turn! \U0001F389"
		body = "Queue #" + strconv.Itoa(e.QueueNumber) + " - Please proceed to the salon now!"
	default:
		return
	}

	meta := map[string]string{"queue_number": strconv.Itoa(e.QueueNumber)}

	if _, err := t.notifier.SendNow(ctx, title, body, meta); err != nil {
		// Best-effort: the queue keeps moving without the notification.
		t.logger.Warn("Failed to send queue notification",
			zap.String("kind", string(e.Kind)),
			zap.Error(err))
	}
}
