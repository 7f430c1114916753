package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glamoursalon/salon_queue_bot/internal/controller/state"
	"github.com/glamoursalon/salon_queue_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTextMessage routes free-text input by the chat's dialog state.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Commands are handled by their own handlers.
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID

	switch h.stateManager.GetState(chatID) {
	case state.StateEnteringName:
		h.handleNameStep(ctx, b, update)
	case state.StateChoosingService, state.StateChoosingTime:
		h.sendMessage(ctx, b, chatID, "👆 Please use the buttons above, or /cancel to abort.")
	default:
		// Free text outside a dialog is ignored.
	}
}

// handleNameStep finishes the booking dialog: the text is the customer
// name, the service and time were stored by the keyboard steps.
func (h *Handlers) handleNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	name := strings.TrimSpace(update.Message.Text)

	serviceID, _ := h.stateManager.GetData(chatID, state.DataServiceID)
	slotTime, _ := h.stateManager.GetData(chatID, state.DataTime)

	booking, err := h.bookingService.CreateBooking(ctx, service.BookingInput{
		ChatID:       chatID,
		ServiceID:    serviceID,
		Time:         slotTime,
		CustomerName: name,
	})
	if err != nil {
		if errors.Is(err, service.ErrIncompleteBooking) {
			// Leave the dialog state alone so the user can just try again.
			h.sendMessage(ctx, b, chatID, missingInputText)
			return
		}
		h.logger.Error("Failed to create booking",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Something went wrong. Please try again later.")
		return
	}

	// Successful submit resets the transient selections.
	h.stateManager.Clear(chatID)

	h.queueService.StartTracking(ctx, booking)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"🎉 Booking Confirmed!\n\n"+
			"💇 %s on %s at %s\n"+
			"🎫 Your queue number is %d\n"+
			"⏱ Estimated wait: %d minutes\n\n"+
			"You'll receive a notification when it's almost your turn!\n"+
			"Track your position with /queue.",
		booking.Service.Name,
		booking.Date,
		booking.Time,
		booking.QueueNumber,
		booking.EstimatedWaitTime,
	))
}
