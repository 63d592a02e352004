package moderation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xaenox/guardian-bot/internal/models"
)

// violationReport is the structured payload sent to the moderator channel.
type violationReport struct {
	IncidentID string             `json:"incident_id"`
	Timestamp  string             `json:"timestamp"`
	Latency    float64            `json:"latency_seconds"`
	User       string             `json:"user"`
	UserID     int64              `json:"user_id"`
	Message    string             `json:"message"`
	MessageID  int                `json:"message_id"`
	Violations []models.Violation `json:"violations"`
	ResponseID string             `json:"response_id"`
}

func composeNotice(msg *models.Message, result *models.ModerationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚨 %s, your message was removed and reported to the moderators because the auto-moderation system flagged it as offensive.\n", msg.AuthorName)
	b.WriteString("If you believe this is a mistake, please contact a moderator and provide the violation ID below.\n\n")
	for _, v := range result.Violations {
		fmt.Fprintf(&b, "%s: %s\n", models.CategoryLabel(v.Category), formatScore(v.Score))
	}
	fmt.Fprintf(&b, "\nViolation ID: %s", result.ResponseID)
	return b.String()
}

func composeReport(msg *models.Message, result *models.ModerationResult) (string, error) {
	report := violationReport{
		IncidentID: uuid.New().String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Latency:    result.Latency.Seconds(),
		User:       msg.AuthorName,
		UserID:     msg.AuthorID,
		Message:    msg.Content,
		MessageID:  msg.ID,
		Violations: result.Violations,
		ResponseID: result.ResponseID,
	}

	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal violation report: %w", err)
	}
	return string(data), nil
}

// formatScore renders a confidence score as a percentage with one decimal
// place. Nonzero scores below the display precision render as "<0.1%" so
// a real violation never shows as 0%.
func formatScore(score float64) string {
	pct := score * 100
	if pct > 0 && pct < 0.1 {
		return "<0.1%"
	}
	return fmt.Sprintf("%.1f%%", pct)
}
