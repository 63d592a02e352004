package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// telegramTransport binds the coordinator's transport capabilities to the
// Telegram Bot API. A chat plays both the guild and channel parts; the
// configured moderator "role" is a user id mentioned in reports.
type telegramTransport struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

func newTelegramTransport(api *tgbotapi.BotAPI, logger *zap.Logger) *telegramTransport {
	return &telegramTransport{api: api, logger: logger}
}

func (t *telegramTransport) DeleteMessage(ctx context.Context, channelID int64, messageID int) error {
	if _, err := t.api.Request(tgbotapi.NewDeleteMessage(channelID, messageID)); err != nil {
		return fmt.Errorf("failed to delete message %d in chat %d: %w", messageID, channelID, err)
	}
	return nil
}

func (t *telegramTransport) SendText(ctx context.Context, channelID int64, text string) error {
	if _, err := t.api.Send(tgbotapi.NewMessage(channelID, text)); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", channelID, err)
	}
	return nil
}

func (t *telegramTransport) GetChannel(ctx context.Context, channelID int64) (bool, error) {
	_, err := t.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: channelID},
	})
	if err != nil {
		// Stale or inaccessible chats are "no destination", not a fault.
		t.logger.Debug("Chat lookup failed",
			zap.Error(err),
			zap.Int64("chat_id", channelID))
		return false, nil
	}
	return true, nil
}

func (t *telegramTransport) GetRoleMention(ctx context.Context, guildID, roleID int64) (string, error) {
	member, err := t.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: guildID,
			UserID: roleID,
		},
	})
	if err != nil {
		t.logger.Debug("Moderator lookup failed",
			zap.Error(err),
			zap.Int64("chat_id", guildID),
			zap.Int64("user_id", roleID))
		return "", nil
	}
	if member.User == nil {
		return "", nil
	}
	if member.User.UserName != "" {
		return "@" + member.User.UserName, nil
	}
	return member.User.FirstName, nil
}
