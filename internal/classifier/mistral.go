package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/xaenox/guardian-bot/internal/models"
)

const mistralModerationURL = "https://api.mistral.ai/v1/moderations"

// MistralClassifier calls the Mistral moderation endpoint directly.
type MistralClassifier struct {
	client *http.Client
	url    string
	apiKey string
	model  string
	logger *zap.Logger
}

type mistralRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type mistralResponse struct {
	ID      string          `json:"id"`
	Model   string          `json:"model"`
	Results []mistralResult `json:"results"`
}

type mistralResult struct {
	Categories     map[string]bool    `json:"categories"`
	CategoryScores map[string]float64 `json:"category_scores"`
}

func NewMistralClassifier(apiKey, model string, logger *zap.Logger) *MistralClassifier {
	return &MistralClassifier{
		client: &http.Client{},
		url:    mistralModerationURL,
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

func (c *MistralClassifier) Moderate(ctx context.Context, text string) (*models.ClassificationResponse, error) {
	payload, err := json.Marshal(mistralRequest{Model: c.model, Input: []string{text}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal moderation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create moderation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read moderation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moderation API returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded mistralResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moderation response: %w", err)
	}
	if len(decoded.Results) == 0 {
		return nil, fmt.Errorf("moderation response contained no results")
	}

	result := decoded.Results[0]
	return normalize(decoded.ID, result.Categories, result.CategoryScores), nil
}
