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

// HandleStart greets the user and binds the chat as the notification
// target.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if !h.notifier.Bind(ctx, chatID) {
		// Continue without notifications; the booking flow still works.
		h.logger.Warn("Chat declined notification binding", zap.Int64("chat_id", chatID))
	}

	welcomeText := fmt.Sprintf(
		"👋 Hi, %s!\n\n"+
			"Welcome to Glamour Hair Salon — book a visit and track your place in the live queue.\n\n"+
			"Available commands:\n"+
			"/services - Browse our services\n"+
			"/book - Book a visit\n"+
			"/queue - Track your queue position\n"+
			"/mybookings - Your bookings\n"+
			"/cancelbooking - Cancel your booking\n"+
			"/help - Help",
		update.Message.From.FirstName,
	)

	h.sendMessage(ctx, b, chatID, welcomeText)
}

// HandleHelp shows the command reference.
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Commands:\n\n" +
		"/start - Start the bot\n" +
		"/services - List all services with duration and price\n" +
		"/book - Book a visit (service → time → your name)\n" +
		"/queue - Live queue status for your booking\n" +
		"/mybookings - Bookings made this session\n" +
		"/cancelbooking - Cancel your active booking\n" +
		"/cancel - Abort the current dialog\n\n" +
		"You'll get a notification when it's almost your turn. 💇"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleServices renders the service catalog.
func (h *Handlers) HandleServices(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("✨ Our Services\n\n")
	for _, s := range catalog.Services() {
		sb.WriteString(format.FormatService(s))
		sb.WriteString("\n")
	}
	sb.WriteString("\nUse /book to book a visit.")

	h.sendMessage(ctx, b, update.Message.Chat.ID, sb.String())
}

// HandleBook starts the booking dialog with the service keyboard.
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	h.logger.Info("Starting booking dialog", zap.Int64("chat_id", chatID))

	h.stateManager.Clear(chatID)
	h.stateManager.SetState(chatID, state.StateChoosingService)

	var rows [][]models.InlineKeyboardButton
	for _, s := range catalog.Services() {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         fmt.Sprintf("%s (%s, %s)", s.Name, format.FormatDuration(s.Duration), format.FormatPrice(s.Price)),
			CallbackData: CallbackService + s.ID,
		}})
	}

	h.sendKeyboard(ctx, b, chatID,
		"💇 Book Your Appointment\n\n"+
			"Step 1 of 3: Choose a service\n\n"+
			"Use /cancel to abort.",
		&models.InlineKeyboardMarkup{InlineKeyboard: rows})
}

// HandleQueue shows the live queue status for the chat's active booking.
func (h *Handlers) HandleQueue(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	booking, st, err := h.queueService.Status(chatID)
	if err != nil {
		if err == service.ErrNoActiveBooking {
			h.sendMessage(ctx, b, chatID, "ℹ️ You have no active booking.\n\nUse /book to book a visit.")
			return
		}
		h.logger.Error("Failed to get queue status", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Something went wrong. Please try again later.")
		return
	}

	display := format.GetBookingStatusDisplay(st.Status)
	progress := st.Progress()

	text := fmt.Sprintf(
		"📊 Queue Status\n\n"+
			"💇 %s — %s at %s\n\n"+
			"🔢 Now serving: %d\n"+
			"🎫 Your number: %d\n"+
			"👥 People ahead: %d\n"+
			"⏱ Estimated wait: %d min\n\n"+
			"%s %d%%\n\n"+
			"%s %s",
		booking.Service.Name,
		booking.Date,
		booking.Time,
		st.CurrentQueue,
		st.MyQueueNumber,
		st.PeopleAhead(),
		st.EstimatedWaitTime,
		format.ProgressBar(progress),
		progress,
		display.Emoji,
		display.Text,
	)

	h.sendMessage(ctx, b, chatID, text)
}

// HandleMyBookings lists the chat's bookings for this session.
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	bookings := h.bookingService.GetChatBookings(chatID)
	if len(bookings) == 0 {
		h.sendMessage(ctx, b, chatID, "ℹ️ No bookings yet.\n\nUse /book to book a visit.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📅 Your Bookings\n\n")
	for _, booking := range bookings {
		sb.WriteString(format.FormatBooking(booking))
		sb.WriteString("\n\n")
	}

	h.sendMessage(ctx, b, chatID, strings.TrimRight(sb.String(), "\n"))
}

// HandleCancelBooking asks for confirmation before cancelling the active
// booking.
func (h *Handlers) HandleCancelBooking(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if _, _, err := h.queueService.Status(chatID); err == service.ErrNoActiveBooking {
		h.sendMessage(ctx, b, chatID, "ℹ️ You have no active booking to cancel.")
		return
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "Yes, cancel it", CallbackData: CallbackCancelYes},
				{Text: "No, keep it", CallbackData: CallbackCancelNo},
			},
		},
	}

	h.sendKeyboard(ctx, b, chatID,
		"❓ Cancel Booking\n\nAre you sure you want to cancel your booking?",
		keyboard)
}

// HandleCancelDialog aborts the current booking dialog (/cancel).
func (h *Handlers) HandleCancelDialog(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if h.stateManager.GetState(chatID) == state.StateNone {
		h.sendMessage(ctx, b, chatID, "ℹ️ Nothing to cancel.\n\nUse /help to see the available commands.")
		return
	}

	h.stateManager.Clear(chatID)
	h.sendMessage(ctx, b, chatID, "✅ Dialog cancelled.\n\nUse /book to start over.")
}
