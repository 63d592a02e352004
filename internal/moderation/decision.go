package moderation

import (
	"time"

	"github.com/xaenox/guardian-bot/internal/models"
)

// Decide converts a classification response into an enforcement decision.
// Every flagged category is collected with its score, preserving the
// response's category order. A response with nothing flagged (or no
// response at all) yields nil; a non-nil result always carries at least
// one violation.
func Decide(resp *models.ClassificationResponse, latency time.Duration) *models.ModerationResult {
	if resp == nil {
		return nil
	}

	var violations []models.Violation
	for _, category := range resp.Categories {
		if category.Flagged {
			violations = append(violations, models.Violation{
				Category: category.Category,
				Score:    category.Score,
			})
		}
	}
	if len(violations) == 0 {
		return nil
	}

	return &models.ModerationResult{
		Violations: violations,
		ResponseID: resp.ID,
		Latency:    latency,
	}
}
