package models

import "time"

// Message is the transport-agnostic view of an inbound chat message.
type Message struct {
	ID         int    `json:"id"`
	ChannelID  int64  `json:"channel_id"`
	GuildID    int64  `json:"guild_id"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
}

// CategoryResult is one taxonomy category's verdict within a
// classification response.
type CategoryResult struct {
	Category string  `json:"category"`
	Flagged  bool    `json:"flagged"`
	Score    float64 `json:"score"`
}

// ClassificationResponse is the normalized output of one classifier call.
// Categories are ordered: canonical taxonomy order first, then any
// categories the classifier returned that the taxonomy does not know.
type ClassificationResponse struct {
	ID         string           `json:"id"`
	Categories []CategoryResult `json:"categories"`
}

// Violation is a single flagged category with its confidence score.
type Violation struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// ModerationResult is the pipeline's decision artifact. Violations is
// never empty: the absence of violations is represented by the absence
// of a result.
type ModerationResult struct {
	Violations []Violation   `json:"violations"`
	ResponseID string        `json:"response_id"`
	Latency    time.Duration `json:"latency"`
}

// GuildPolicy holds a community's stored moderation targets. A nil field
// means "not configured, fall back to the process-wide default".
type GuildPolicy struct {
	GuildID      int64  `json:"guild_id"`
	ModRoleID    *int64 `json:"mod_role_id,omitempty"`
	ModChannelID *int64 `json:"mod_channel_id,omitempty"`
}
