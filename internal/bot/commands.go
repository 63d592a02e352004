package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message)

type command struct {
	handler   commandHandler
	adminOnly bool
	help      string
}

func (b *Bot) registerCommands() {
	b.commands = map[string]command{
		"start":         {handler: b.handleStart, help: "Start the bot"},
		"help":          {handler: b.handleHelp, help: "Show this help message"},
		"status":        {handler: b.handleStatus, help: "Show bot status and uptime"},
		"setmodrole":    {handler: b.handleSetModRole, adminOnly: true, help: "Set the moderator to mention in reports"},
		"setmodchannel": {handler: b.handleSetModChannel, adminOnly: true, help: "Set the chat that receives violation reports"},
		"config":        {handler: b.handleShowConfig, adminOnly: true, help: "Show the current moderation configuration"},
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	cmd, ok := b.commands[message.Command()]
	if !ok {
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
		return
	}
	if cmd.adminOnly && !b.isAdmin(message) {
		b.sendErrorMessage(message.Chat.ID, "You must be a chat administrator to use this command.")
		return
	}
	cmd.handler(ctx, message)
}

// isAdmin is the permission predicate for configuration commands. The
// platform is the source of truth; in a private chat the caller is
// trivially the admin.
func (b *Bot) isAdmin(message *tgbotapi.Message) bool {
	if message.Chat.IsPrivate() {
		return true
	}

	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: message.Chat.ID,
			UserID: message.From.ID,
		},
	})
	if err != nil {
		b.logger.Error("Failed to check chat member status",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID),
			zap.Int64("user_id", message.From.ID))
		return false
	}
	return member.IsCreator() || member.IsAdministrator()
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	welcome := fmt.Sprintf(`Welcome to %s! 🛡
I automatically check every message against the content policy and remove violations.

Administrators can configure where violation reports go:
/setmodchannel <chat id> - chat that receives reports
/setmodrole <user id> - moderator to mention in reports

Use /help to see all available commands.`, b.name)

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(ctx context.Context, message *tgbotapi.Message) {
	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, name := range []string{"start", "help", "status", "setmodrole", "setmodchannel", "config"} {
		cmd := b.commands[name]
		fmt.Fprintf(&sb, "/%s - %s", name, cmd.help)
		if cmd.adminOnly {
			sb.WriteString(" (admin only)")
		}
		sb.WriteString("\n")
	}
	b.sendMessage(message.Chat.ID, sb.String())
}

func (b *Bot) handleStatus(ctx context.Context, message *tgbotapi.Message) {
	uptime := "not fully initialized"
	if !b.startedAt.IsZero() {
		uptime = formatUptime(time.Since(b.startedAt))
	}
	b.sendMessage(message.Chat.ID, fmt.Sprintf("%s v%s\nUptime: %s", b.name, b.version, uptime))
}

func (b *Bot) handleSetModRole(ctx context.Context, message *tgbotapi.Message) {
	id, err := strconv.ParseInt(strings.TrimSpace(message.CommandArguments()), 10, 64)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Missing or invalid argument. Usage: /setmodrole <user id>")
		return
	}

	if err := b.store.SetConfig(ctx, message.Chat.ID, &id, nil); err != nil {
		b.logger.Error("Failed to save moderator role",
			zap.Error(err),
			zap.Int64("guild_id", message.Chat.ID))
		b.sendErrorMessage(message.Chat.ID, "An error occurred while saving the configuration.")
		return
	}
	b.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Moderator role set to %d.", id))
}

func (b *Bot) handleSetModChannel(ctx context.Context, message *tgbotapi.Message) {
	id, err := strconv.ParseInt(strings.TrimSpace(message.CommandArguments()), 10, 64)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Missing or invalid argument. Usage: /setmodchannel <chat id>")
		return
	}

	if err := b.store.SetConfig(ctx, message.Chat.ID, nil, &id); err != nil {
		b.logger.Error("Failed to save moderator channel",
			zap.Error(err),
			zap.Int64("guild_id", message.Chat.ID))
		b.sendErrorMessage(message.Chat.ID, "An error occurred while saving the configuration.")
		return
	}
	b.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Moderation channel set to %d.", id))
}

func (b *Bot) handleShowConfig(ctx context.Context, message *tgbotapi.Message) {
	policy, err := b.store.GetConfig(ctx, message.Chat.ID)
	if err != nil {
		b.logger.Error("Failed to read guild config",
			zap.Error(err),
			zap.Int64("guild_id", message.Chat.ID))
		b.sendErrorMessage(message.Chat.ID, "An error occurred while reading the configuration.")
		return
	}

	role := "not configured"
	if policy.ModRoleID != nil {
		role = strconv.FormatInt(*policy.ModRoleID, 10)
	}
	channel := "not configured"
	if policy.ModChannelID != nil {
		channel = strconv.FormatInt(*policy.ModChannelID, 10)
	}
	b.sendMessage(message.Chat.ID, fmt.Sprintf("Moderation configuration:\nModerator role: %s\nModeration channel: %s", role, channel))
}
