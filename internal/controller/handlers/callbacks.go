package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/glamoursalon/salon_queue_bot/internal/catalog"
	"github.com/glamoursalon/salon_queue_bot/internal/controller/format"
	"github.com/glamoursalon/salon_queue_bot/internal/controller/state"
	"github.com/glamoursalon/salon_queue_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleCallbackQuery routes inline keyboard presses by data prefix.
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	chatID := callbackChatID(callback)
	if chatID == 0 {
		h.answerCallback(ctx, b, callback.ID, "❌ This message is too old.")
		return
	}

	data := callback.Data

	switch {
	case strings.HasPrefix(data, CallbackService):
		h.handleServiceChosen(ctx, b, callback, chatID, strings.TrimPrefix(data, CallbackService))
	case strings.HasPrefix(data, CallbackSlot):
		h.handleSlotChosen(ctx, b, callback, chatID, strings.TrimPrefix(data, CallbackSlot))
	case data == CallbackCancelYes:
		h.handleCancelConfirmed(ctx, b, callback, chatID)
	case data == CallbackCancelNo:
		h.answerCallback(ctx, b, callback.ID, "")
		h.sendMessage(ctx, b, chatID, "👍 Your booking is kept. See it with /queue.")
	default:
		h.logger.Warn("Unknown callback data", zap.String("data", data))
		h.answerCallback(ctx, b, callback.ID, "")
	}
}

// handleServiceChosen stores the selected service and offers the
// available time slots. Unavailable slots are not rendered at all, so
// they can never be selected.
func (h *Handlers) handleServiceChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, chatID int64, serviceID string) {
	svc, ok := catalog.ServiceByID(serviceID)
	if !ok {
		h.answerCallback(ctx, b, callback.ID, "❌ Unknown service.")
		return
	}

	h.stateManager.SetData(chatID, state.DataServiceID, svc.ID)
	h.stateManager.SetState(chatID, state.StateChoosingTime)

	h.answerCallback(ctx, b, callback.ID, "✅ "+svc.Name)

	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for _, slot := range catalog.AvailableSlots() {
		row = append(row, models.InlineKeyboardButton{
			Text:         slot.Time,
			CallbackData: CallbackSlot + slot.ID,
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	h.sendKeyboard(ctx, b, chatID,
		fmt.Sprintf(
			"✅ Service: %s (%s, %s)\n\n"+
				"Step 2 of 3: Choose a time for today\n\n"+
				"Use /cancel to abort.",
			svc.Name,
			format.FormatDuration(svc.Duration),
			format.FormatPrice(svc.Price),
		),
		&models.InlineKeyboardMarkup{InlineKeyboard: rows})
}

// handleSlotChosen stores the selected time and asks for the customer
// name.
func (h *Handlers) handleSlotChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, chatID int64, slotID string) {
	var slotTime string
	for _, slot := range catalog.AvailableSlots() {
		if slot.ID == slotID {
			slotTime = slot.Time
			break
		}
	}
	if slotTime == "" {
		h.answerCallback(ctx, b, callback.ID, "❌ That time is not available.")
		return
	}

	h.stateManager.SetData(chatID, state.DataTime, slotTime)
	h.stateManager.SetState(chatID, state.StateEnteringName)

	h.answerCallback(ctx, b, callback.ID, "✅ "+slotTime)

	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf(
			"✅ Time: %s\n\n"+
				"Step 3 of 3: What's your name?\n\n"+
				"Use /cancel to abort.",
			slotTime,
		))
}

// handleCancelConfirmed cancels the active booking after the yes press.
func (h *Handlers) handleCancelConfirmed(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, chatID int64) {
	booking, err := h.queueService.CancelActive(ctx, chatID)
	if err != nil {
		if err == service.ErrNoActiveBooking {
			h.answerCallback(ctx, b, callback.ID, "")
			h.sendMessage(ctx, b, chatID, "ℹ️ You have no active booking to cancel.")
			return
		}
		h.logger.Error("Failed to cancel booking",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		h.answerCallback(ctx, b, callback.ID, "❌ Could not cancel.")
		return
	}

	h.answerCallback(ctx, b, callback.ID, "✅ Cancelled")
	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Booking Cancelled\n\n"+
			"Queue #%d has been cancelled and your pending notifications were removed.\n\n"+
			"Use /book whenever you want a new appointment.",
		booking.QueueNumber,
	))
}
