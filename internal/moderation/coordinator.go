package moderation

import (
	"context"

	"go.uber.org/zap"

	"github.com/xaenox/guardian-bot/internal/models"
	"github.com/xaenox/guardian-bot/internal/storage"
)

// Coordinator runs the enforcement sequence for flagged messages: delete
// the message, notify the author in the originating channel, and report
// the incident to the guild's moderator channel.
type Coordinator struct {
	transport        Transport
	store            storage.ConfigStore
	defaultRoleID    *int64
	defaultChannelID *int64
	logger           *zap.Logger
}

func NewCoordinator(transport Transport, store storage.ConfigStore, defaultRoleID, defaultChannelID *int64, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		transport:        transport,
		store:            store,
		defaultRoleID:    defaultRoleID,
		defaultChannelID: defaultChannelID,
		logger:           logger,
	}
}

// HandleViolation enforces a moderation result for one message. Every
// step is best-effort: a failed delete or send is logged and the
// remaining steps still run. It never returns an error to the dispatch
// loop; one message's failures must not leak into another's handling.
func (c *Coordinator) HandleViolation(ctx context.Context, msg *models.Message, result *models.ModerationResult) {
	if err := c.transport.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
		c.logger.Error("Failed to delete message",
			zap.Error(err),
			zap.Int("message_id", msg.ID),
			zap.Int64("channel_id", msg.ChannelID))
	}

	if err := c.transport.SendText(ctx, msg.ChannelID, composeNotice(msg, result)); err != nil {
		c.logger.Error("Failed to send violation notice",
			zap.Error(err),
			zap.Int64("channel_id", msg.ChannelID),
			zap.Int("message_id", msg.ID))
	}

	roleID, channelID, err := storage.GetEffectiveConfig(ctx, c.store, msg.GuildID, c.defaultRoleID, c.defaultChannelID)
	if err != nil {
		// Pipeline reads degrade to process defaults; only the admin
		// command path surfaces store errors to a user.
		c.logger.Error("Failed to read guild config, using process defaults",
			zap.Error(err),
			zap.Int64("guild_id", msg.GuildID))
	}

	c.reportToModerators(ctx, msg, result, roleID, channelID)

	categories := make([]string, len(result.Violations))
	for i, v := range result.Violations {
		categories[i] = v.Category
	}
	c.logger.Info("Message deleted and reported for violation",
		zap.String("author", msg.AuthorName),
		zap.Int64("author_id", msg.AuthorID),
		zap.Int("message_id", msg.ID),
		zap.Strings("categories", categories))
}

func (c *Coordinator) reportToModerators(ctx context.Context, msg *models.Message, result *models.ModerationResult, roleID, channelID *int64) {
	if channelID == nil {
		c.logger.Warn("No moderator channel configured, violation report dropped",
			zap.Int64("guild_id", msg.GuildID),
			zap.Int("message_id", msg.ID))
		return
	}

	ok, err := c.transport.GetChannel(ctx, *channelID)
	if err != nil || !ok {
		c.logger.Warn("Moderator channel unavailable, violation report dropped",
			zap.Error(err),
			zap.Int64("channel_id", *channelID),
			zap.Int64("guild_id", msg.GuildID))
		return
	}

	var mention string
	if roleID != nil {
		mention, err = c.transport.GetRoleMention(ctx, msg.GuildID, *roleID)
		if err != nil {
			c.logger.Error("Failed to resolve moderator role",
				zap.Error(err),
				zap.Int64("role_id", *roleID),
				zap.Int64("guild_id", msg.GuildID))
			mention = ""
		}
	}

	report, err := composeReport(msg, result)
	if err != nil {
		c.logger.Error("Failed to compose violation report",
			zap.Error(err),
			zap.Int("message_id", msg.ID))
		return
	}
	if mention != "" {
		report = mention + "\n" + report
	}

	if err := c.transport.SendText(ctx, *channelID, report); err != nil {
		c.logger.Error("Failed to send violation report",
			zap.Error(err),
			zap.Int64("channel_id", *channelID),
			zap.Int("message_id", msg.ID))
	}
}
