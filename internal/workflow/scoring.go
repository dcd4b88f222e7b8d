package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
)

// ScoringAPI is the slice of the API client lead scoring needs
type ScoringAPI interface {
	ScoreLead(ctx context.Context, leadID int64) (*domain.LeadScoreResponse, error)
}

// Scoring scores one lead at a time. A new trigger supersedes the previous
// one; callers refresh their lead list after success to see the new score.
type Scoring struct {
	*Machine[*domain.LeadScoreResponse]
	api    ScoringAPI
	logger *zap.Logger
}

func NewScoring(api ScoringAPI, timeout time.Duration, logger *zap.Logger, observer Observer[*domain.LeadScoreResponse]) *Scoring {
	return &Scoring{
		Machine: NewMachine(timeout, observer),
		api:     api,
		logger:  logger,
	}
}

// Score requests a fresh score for leadID
func (s *Scoring) Score(ctx context.Context, leadID int64) (*domain.LeadScoreResponse, error) {
	if leadID <= 0 {
		return nil, fmt.Errorf("%w: lead id must be positive", ErrValidation)
	}

	result, err := s.Run(ctx, func(ctx context.Context) (*domain.LeadScoreResponse, error) {
		return s.api.ScoreLead(ctx, leadID)
	})
	if err != nil {
		logRunError(s.logger, "lead scoring failed", err, zap.Int64("lead_id", leadID))
		return nil, err
	}

	s.logger.Info("lead scored",
		zap.Int64("lead_id", leadID),
		zap.Float64("score", result.Score),
		zap.Float64("probability", result.Probability),
	)
	return result, nil
}
