package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
)

type InsightsAPI interface {
	GenerateInsights(ctx context.Context, insightType domain.InsightType) (*domain.InsightResponse, error)
}

// Insights generates one insight report at a time
type Insights struct {
	*Machine[*domain.InsightResponse]
	api    InsightsAPI
	logger *zap.Logger
}

func NewInsights(api InsightsAPI, timeout time.Duration, logger *zap.Logger, observer Observer[*domain.InsightResponse]) *Insights {
	return &Insights{
		Machine: NewMachine(timeout, observer),
		api:     api,
		logger:  logger,
	}
}

// Generate requests an insight. Identifiers outside the built-in set are
// forwarded, since servers may offer more generators.
func (i *Insights) Generate(ctx context.Context, insightType domain.InsightType) (*domain.InsightResponse, error) {
	insightType = domain.InsightType(strings.TrimSpace(string(insightType)))
	if insightType == "" {
		return nil, fmt.Errorf("%w: insight type is required", ErrValidation)
	}
	if !insightType.IsKnown() {
		i.logger.Debug("requesting non built-in insight type", zap.String("insight_type", string(insightType)))
	}

	result, err := i.Run(ctx, func(ctx context.Context) (*domain.InsightResponse, error) {
		return i.api.GenerateInsights(ctx, insightType)
	})
	if err != nil {
		logRunError(i.logger, "insight generation failed", err, zap.String("insight_type", string(insightType)))
		return nil, err
	}
	return result, nil
}
