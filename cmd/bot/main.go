package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/glamoursalon/salon_queue_bot/internal/app"
	"github.com/glamoursalon/salon_queue_bot/internal/config"
	"github.com/glamoursalon/salon_queue_bot/internal/controller"
	"github.com/glamoursalon/salon_queue_bot/internal/notify"
	"github.com/glamoursalon/salon_queue_bot/internal/repository"
	"github.com/glamoursalon/salon_queue_bot/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting salon queue bot",
		zap.String("environment", cfg.Environment),
		zap.Int("queue_tick_seconds", cfg.QueueTickSeconds))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	bookingRepo := repository.NewBookingRepository()
	notifier := notify.NewManager(b, logger)

	bookingService := service.NewBookingService(bookingRepo, notifier, logger)
	queueService := service.NewQueueService(
		bookingRepo,
		notifier,
		time.Duration(cfg.QueueTickSeconds)*time.Second,
		logger,
	)

	botController := controller.NewBotController(b, bookingService, queueService, notifier, logger)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Blocks until the context is cancelled by a signal.
	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	queueService.Shutdown()
	logger.Info("Salon queue bot stopped")
}
