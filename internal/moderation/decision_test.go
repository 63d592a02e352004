package moderation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/guardian-bot/internal/models"
)

func TestDecideCollectsFlaggedCategories(t *testing.T) {
	resp := &models.ClassificationResponse{
		ID: "r1",
		Categories: []models.CategoryResult{
			{Category: "sexual", Flagged: false, Score: 0.01},
			{Category: "hate_and_discrimination", Flagged: true, Score: 0.92},
		},
	}

	result := Decide(resp, 400*time.Millisecond)
	require.NotNil(t, result)
	assert.Equal(t, "r1", result.ResponseID)
	assert.Equal(t, 400*time.Millisecond, result.Latency)
	assert.Equal(t, []models.Violation{
		{Category: "hate_and_discrimination", Score: 0.92},
	}, result.Violations)
}

func TestDecideNoFlaggedCategories(t *testing.T) {
	resp := &models.ClassificationResponse{
		ID: "r2",
		Categories: []models.CategoryResult{
			{Category: "sexual", Flagged: false, Score: 0.02},
			{Category: "violence_and_threats", Flagged: false, Score: 0.05},
		},
	}

	assert.Nil(t, Decide(resp, time.Second))
}

func TestDecideNilResponse(t *testing.T) {
	assert.Nil(t, Decide(nil, time.Second))
}

func TestDecidePreservesResponseOrder(t *testing.T) {
	resp := &models.ClassificationResponse{
		ID: "r3",
		Categories: []models.CategoryResult{
			{Category: "sexual", Flagged: true, Score: 0.81},
			{Category: "violence_and_threats", Flagged: true, Score: 0.64},
			{Category: "pii", Flagged: true, Score: 0.55},
		},
	}

	result := Decide(resp, 0)
	require.NotNil(t, result)
	require.Len(t, result.Violations, 3)
	assert.Equal(t, "sexual", result.Violations[0].Category)
	assert.Equal(t, "violence_and_threats", result.Violations[1].Category)
	assert.Equal(t, "pii", result.Violations[2].Category)
}

func TestDecideIsDeterministic(t *testing.T) {
	resp := &models.ClassificationResponse{
		ID: "r4",
		Categories: []models.CategoryResult{
			{Category: "hate_and_discrimination", Flagged: true, Score: 0.92},
			{Category: "selfharm", Flagged: true, Score: 0.31},
		},
	}

	first := Decide(resp, 250*time.Millisecond)
	require.NotNil(t, first)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Decide(resp, 250*time.Millisecond))
	}
}

func TestDecideNeverReturnsEmptyViolations(t *testing.T) {
	// Exhaustively flag every subset of a small category list: any
	// non-nil result must carry at least one violation.
	categories := []string{"sexual", "health", "law"}
	for mask := 0; mask < 1<<len(categories); mask++ {
		resp := &models.ClassificationResponse{ID: "r5"}
		for i, category := range categories {
			resp.Categories = append(resp.Categories, models.CategoryResult{
				Category: category,
				Flagged:  mask&(1<<i) != 0,
				Score:    0.5,
			})
		}

		result := Decide(resp, 0)
		if mask == 0 {
			assert.Nil(t, result)
		} else {
			require.NotNil(t, result)
			assert.NotEmpty(t, result.Violations)
		}
	}
}
