package moderation

import "context"

// Transport is the subset of the chat platform the coordinator needs.
// Lookups report false for stale or inaccessible ids; that is a normal
// "no destination" outcome, not an error.
type Transport interface {
	DeleteMessage(ctx context.Context, channelID int64, messageID int) error
	SendText(ctx context.Context, channelID int64, text string) error
	GetChannel(ctx context.Context, channelID int64) (bool, error)

	// GetRoleMention renders a mention for the guild's moderator role,
	// or "" when the role cannot be resolved.
	GetRoleMention(ctx context.Context, guildID, roleID int64) (string, error)
}
