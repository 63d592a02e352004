package classifier

import (
	"context"
	"sort"

	"github.com/xaenox/guardian-bot/internal/models"
)

// Classifier submits one text to an external moderation API and returns
// the normalized per-category verdicts.
type Classifier interface {
	Moderate(ctx context.Context, text string) (*models.ClassificationResponse, error)
}

// normalize orders a classifier's category verdicts canonically:
// taxonomy order first, then unrecognized categories sorted by token.
// Map iteration order must never leak into the response.
func normalize(id string, categories map[string]bool, scores map[string]float64) *models.ClassificationResponse {
	results := make([]models.CategoryResult, 0, len(categories))
	seen := make(map[string]bool, len(categories))

	for _, category := range models.Categories {
		flagged, ok := categories[category]
		if !ok {
			continue
		}
		results = append(results, models.CategoryResult{
			Category: category,
			Flagged:  flagged,
			Score:    scores[category],
		})
		seen[category] = true
	}

	var extras []string
	for category := range categories {
		if !seen[category] {
			extras = append(extras, category)
		}
	}
	sort.Strings(extras)
	for _, category := range extras {
		results = append(results, models.CategoryResult{
			Category: category,
			Flagged:  categories[category],
			Score:    scores[category],
		})
	}

	return &models.ClassificationResponse{ID: id, Categories: results}
}
