package classifier

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/guardian-bot/internal/models"
)

// Adapter gives the pipeline exactly one bounded classification attempt
// per message. Any failure is logged and reported as "no result
// obtainable": the message passes through unmoderated rather than
// blocking intake or defaulting to a violation.
type Adapter struct {
	classifier Classifier
	timeout    time.Duration
	logger     *zap.Logger
}

func NewAdapter(classifier Classifier, timeout time.Duration, logger *zap.Logger) *Adapter {
	return &Adapter{
		classifier: classifier,
		timeout:    timeout,
		logger:     logger,
	}
}

// Check classifies text, measuring wall-clock latency around the external
// call only. A nil response means no result was obtainable this cycle.
func (a *Adapter) Check(ctx context.Context, text string) (*models.ClassificationResponse, time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	resp, err := a.classifier.Moderate(ctx, text)
	latency := time.Since(start)

	if err != nil {
		a.logger.Error("Classification failed, message passes unmoderated",
			zap.Error(err),
			zap.Duration("latency", latency))
		return nil, latency
	}
	return resp, latency
}
