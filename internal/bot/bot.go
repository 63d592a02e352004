package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/xaenox/guardian-bot/internal/classifier"
	"github.com/xaenox/guardian-bot/internal/moderation"
	"github.com/xaenox/guardian-bot/internal/models"
	"github.com/xaenox/guardian-bot/internal/storage"
)

// Options carries the startup configuration the bot needs beyond its
// collaborators. Defaults are process-wide and immutable after start.
type Options struct {
	Token            string
	Name             string
	Version          string
	Workers          int64
	ClassifyTimeout  time.Duration
	DefaultRoleID    *int64
	DefaultChannelID *int64
}

type Bot struct {
	api         *tgbotapi.BotAPI
	adapter     *classifier.Adapter
	coordinator *moderation.Coordinator
	store       storage.ConfigStore
	commands    map[string]command
	workers     *semaphore.Weighted
	logger      *zap.Logger
	name        string
	version     string
	startedAt   time.Time
}

func New(opts Options, store storage.ConfigStore, clf classifier.Classifier, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(opts.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	transport := newTelegramTransport(api, logger)

	b := &Bot{
		api:         api,
		adapter:     classifier.NewAdapter(clf, opts.ClassifyTimeout, logger),
		coordinator: moderation.NewCoordinator(transport, store, opts.DefaultRoleID, opts.DefaultChannelID, logger),
		store:       store,
		workers:     semaphore.NewWeighted(opts.Workers),
		logger:      logger,
		name:        opts.Name,
		version:     opts.Version,
	}
	b.registerCommands()
	return b, nil
}

// Start consumes the update stream. Each message is handled as one task
// on a bounded worker pool, so a slow classification call never stalls
// the intake of unrelated messages. Tasks are unordered relative to one
// another; steps within a task run sequentially.
func (b *Bot) Start() error {
	b.startedAt = time.Now()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot started",
		zap.String("username", b.api.Self.UserName),
		zap.String("version", b.version))

	ctx := context.Background()
	for update := range updates {
		message := update.Message
		if message == nil || message.From == nil {
			continue
		}
		if message.From.ID == b.api.Self.ID {
			continue
		}

		if err := b.workers.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("worker pool closed: %w", err)
		}
		go func() {
			defer b.workers.Release(1)
			b.handleMessage(message)
		}()
	}

	return nil
}

// handleMessage runs one message's pipeline: classify, decide, enforce.
// A panic here must never take down the update loop or touch other
// in-flight messages.
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic while handling message",
				zap.Any("panic", r),
				zap.Int("message_id", message.MessageID),
				zap.Int64("author_id", message.From.ID))
		}
	}()

	ctx := context.Background()

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	content := message.Text
	if message.Caption != "" {
		content = message.Caption
	}
	if content == "" {
		return
	}

	resp, latency := b.adapter.Check(ctx, content)
	result := moderation.Decide(resp, latency)
	if result == nil {
		return
	}

	msg := &models.Message{
		ID:         message.MessageID,
		ChannelID:  message.Chat.ID,
		GuildID:    message.Chat.ID,
		AuthorID:   message.From.ID,
		AuthorName: authorName(message.From),
		Content:    content,
	}
	b.coordinator.HandleViolation(ctx, msg, result)
}

func authorName(user *tgbotapi.User) string {
	if user.UserName != "" {
		return user.UserName
	}
	return user.FirstName
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	b.sendMessage(chatID, "❌ "+text)
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dd, %dh, %dm, %ds", days, hours, minutes, seconds)
}
