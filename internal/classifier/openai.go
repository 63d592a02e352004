package classifier

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xaenox/guardian-bot/internal/models"
)

// OpenAIClassifier is an alternative backend using the OpenAI moderation
// endpoint. Its fixed category set is converted into the same normalized
// shape the rest of the pipeline consumes.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAIClassifier(apiKey, model string, logger *zap.Logger) *OpenAIClassifier {
	return &OpenAIClassifier{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

func (c *OpenAIClassifier) Moderate(ctx context.Context, text string) (*models.ClassificationResponse, error) {
	resp, err := c.client.Moderations(ctx, openai.ModerationRequest{
		Model: c.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("moderation request failed: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("moderation response contained no results")
	}

	result := resp.Results[0]
	return normalize(resp.ID, openAICategories(result.Categories), openAIScores(result.CategoryScores)), nil
}

func openAICategories(c openai.ResultCategories) map[string]bool {
	return map[string]bool{
		"hate":                   c.Hate,
		"hate/threatening":       c.HateThreatening,
		"harassment":             c.Harassment,
		"harassment/threatening": c.HarassmentThreatening,
		"self-harm":              c.SelfHarm,
		"self-harm/intent":       c.SelfHarmIntent,
		"self-harm/instructions": c.SelfHarmInstructions,
		"sexual":                 c.Sexual,
		"sexual/minors":          c.SexualMinors,
		"violence":               c.Violence,
		"violence/graphic":       c.ViolenceGraphic,
	}
}

func openAIScores(s openai.ResultCategoryScores) map[string]float64 {
	return map[string]float64{
		"hate":                   float64(s.Hate),
		"hate/threatening":       float64(s.HateThreatening),
		"harassment":             float64(s.Harassment),
		"harassment/threatening": float64(s.HarassmentThreatening),
		"self-harm":              float64(s.SelfHarm),
		"self-harm/intent":       float64(s.SelfHarmIntent),
		"self-harm/instructions": float64(s.SelfHarmInstructions),
		"sexual":                 float64(s.Sexual),
		"sexual/minors":          float64(s.SexualMinors),
		"violence":               float64(s.Violence),
		"violence/graphic":       float64(s.ViolenceGraphic),
	}
}
