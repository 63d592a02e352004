package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xaenox/guardian-bot/internal/models"
)

func TestFormatScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{name: "high confidence", score: 0.92, want: "92.0%"},
		{name: "full confidence", score: 1, want: "100.0%"},
		{name: "zero", score: 0, want: "0.0%"},
		{name: "rounds to one decimal", score: 0.5678, want: "56.8%"},
		{name: "tiny nonzero never renders as zero", score: 0.0004, want: "<0.1%"},
		{name: "just above the floor", score: 0.001, want: "0.1%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatScore(tt.score))
		})
	}
}

func TestComposeNoticeRendersLabelsAndResponseID(t *testing.T) {
	notice := composeNotice(testMessage(), testResult())
	assert.Contains(t, notice, "alice")
	assert.Contains(t, notice, "Hate or discrimination: 92.0%")
	assert.Contains(t, notice, "Violation ID: r1")
}

func TestComposeNoticeUnmappedCategoryFallsBackToToken(t *testing.T) {
	result := testResult()
	result.Violations = append(result.Violations, models.Violation{
		Category: "brand_new_category",
		Score:    0.77,
	})

	notice := composeNotice(testMessage(), result)
	assert.Contains(t, notice, "brand_new_category: 77.0%")
}
