package notify

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sender is the slice of the Telegram bot API the notifier needs.
// *bot.Bot satisfies it; tests substitute a fake.
type sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// ChatNotifier delivers notifications to one Telegram chat. Delayed
// notifications run on timers held in memory; cancelling drops the timers.
// Nothing is persisted, so pending notifications die with the process.
type ChatNotifier struct {
	chatID int64
	bot    sender
	logger *zap.Logger

	mu      sync.Mutex
	granted bool
	timers  map[Handle]*time.Timer
}

// NewChatNotifier creates a notifier for the given chat.
func NewChatNotifier(b sender, chatID int64, logger *zap.Logger) *ChatNotifier {
	return &ChatNotifier{
		chatID: chatID,
		bot:    b,
		logger: logger,
		timers: make(map[Handle]*time.Timer),
	}
}

// RequestPermission marks the chat as a granted delivery channel. A chat
// that has messaged the bot can always be replied to, so this succeeds for
// any real chat id.
func (n *ChatNotifier) RequestPermission(ctx context.Context) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.chatID == 0 {
		n.logger.Warn("Notification permission denied, no chat bound")
		return false
	}
	n.granted = true
	return true
}

// ScheduleDelayed queues a notification to be sent after delay.
func (n *ChatNotifier) ScheduleDelayed(ctx context.Context, title, body string, delay time.Duration, meta map[string]string) (Handle, error) {
	n.mu.Lock()
	if !n.granted {
		n.mu.Unlock()
		return "", ErrNotPermitted
	}

	handle := Handle(uuid.NewString())
	timer := time.AfterFunc(delay, func() {
		n.mu.Lock()
		delete(n.timers, handle)
		n.mu.Unlock()

		// The scheduling context is long gone when the timer fires.
		n.send(context.Background(), title, body)
	})
	n.timers[handle] = timer
	n.mu.Unlock()

	n.logger.Info("Notification scheduled",
		zap.Int64("chat_id", n.chatID),
		zap.String("title", title),
		zap.Duration("delay", delay),
		zap.Any("meta", meta))

	return handle, nil
}

// SendNow delivers a notification immediately.
func (n *ChatNotifier) SendNow(ctx context.Context, title, body string, meta map[string]string) (Handle, error) {
	n.mu.Lock()
	granted := n.granted
	n.mu.Unlock()

	if !granted {
		return "", ErrNotPermitted
	}

	n.send(ctx, title, body)
	return Handle(uuid.NewString()), nil
}

// CancelAll stops every pending delayed notification for this chat.
func (n *ChatNotifier) CancelAll(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for handle, timer := range n.timers {
		timer.Stop()
		delete(n.timers, handle)
	}

	n.logger.Info("All pending notifications cancelled", zap.Int64("chat_id", n.chatID))
}

// Pending returns the number of scheduled notifications not yet fired.
func (n *ChatNotifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.timers)
}

func (n *ChatNotifier) send(ctx context.Context, title, body string) {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   title + "\n\n" + body,
	})
	if err != nil {
		// Delivery failures are best-effort: log and move on.
		n.logger.Warn("Failed to deliver notification",
			zap.Int64("chat_id", n.chatID),
			zap.String("title", title),
			zap.Error(err))
	}
}

// Manager hands out one ChatNotifier per chat.
type Manager struct {
	bot    sender
	logger *zap.Logger

	mu    sync.Mutex
	chats map[int64]*ChatNotifier
}

// NewManager creates a notifier manager on top of the bot.
func NewManager(b sender, logger *zap.Logger) *Manager {
	return &Manager{
		bot:    b,
		logger: logger,
		chats:  make(map[int64]*ChatNotifier),
	}
}

// For returns the chat's notifier, creating it on first use.
func (m *Manager) For(chatID int64) Notifier {
	return m.chatNotifier(chatID)
}

// Bind grants the chat a delivery channel. Called when the user starts the
// bot, which is the closest thing a chat has to a permission prompt.
func (m *Manager) Bind(ctx context.Context, chatID int64) bool {
	return m.chatNotifier(chatID).RequestPermission(ctx)
}

func (m *Manager) chatNotifier(chatID int64) *ChatNotifier {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.chats[chatID]
	if !ok {
		n = NewChatNotifier(m.bot, chatID, m.logger)
		m.chats[chatID] = n
	}
	return n
}
