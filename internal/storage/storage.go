package storage

import (
	"context"

	"github.com/xaenox/guardian-bot/internal/models"
)

// ConfigStore holds per-guild moderation policy targets. A guild with no
// stored row reads back as a policy with both fields nil; that is a
// normal outcome, not an error.
type ConfigStore interface {
	GetConfig(ctx context.Context, guildID int64) (models.GuildPolicy, error)

	// SetConfig upserts the guild's row with field-level merge: a nil
	// field keeps whatever is already stored for that field.
	SetConfig(ctx context.Context, guildID int64, modRoleID, modChannelID *int64) error

	Close() error
}

// GetEffectiveConfig resolves the moderation targets for a guild: a
// stored value wins, otherwise the supplied process-wide default,
// otherwise nil. All fallback logic lives here.
//
// On a store failure the process defaults are still returned alongside
// the error, so the automated pipeline can degrade to defaults while the
// administrative path surfaces the error.
func GetEffectiveConfig(ctx context.Context, s ConfigStore, guildID int64, defaultRoleID, defaultChannelID *int64) (*int64, *int64, error) {
	policy, err := s.GetConfig(ctx, guildID)
	if err != nil {
		return defaultRoleID, defaultChannelID, err
	}

	roleID := policy.ModRoleID
	if roleID == nil {
		roleID = defaultRoleID
	}
	channelID := policy.ModChannelID
	if channelID == nil {
		channelID = defaultChannelID
	}
	return roleID, channelID, nil
}
