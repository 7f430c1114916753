package handlers

import (
	"github.com/glamoursalon/salon_queue_bot/internal/controller/state"
	"github.com/glamoursalon/salon_queue_bot/internal/notify"
	"github.com/glamoursalon/salon_queue_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers carries the dependencies for all command, dialog and callback
// handlers.
type Handlers struct {
	bookingService *service.BookingService
	queueService   *service.QueueService
	notifier       *notify.Manager
	stateManager   *state.Manager
	logger         *zap.Logger
}

// NewHandlers creates the command handlers.
func NewHandlers(
	bookingService *service.BookingService,
	queueService *service.QueueService,
	notifier *notify.Manager,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		bookingService: bookingService,
		queueService:   queueService,
		notifier:       notifier,
		stateManager:   stateManager,
		logger:         logger,
	}
}
