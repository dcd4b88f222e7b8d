package service

import (
	"context"
	"fmt"
	"io"

	"github.com/straye-as/sales-intelligence/internal/analytics"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/straye-as/sales-intelligence/internal/filter"
	"github.com/straye-as/sales-intelligence/internal/workflow"
	"go.uber.org/zap"
)

type LeadsAPI interface {
	ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error)
	ImportLeadsCSV(ctx context.Context, filename string, content io.Reader) (*domain.ImportResult, error)
	ConvertLead(ctx context.Context, leadID int64) (*domain.Customer, error)
}

// LeadService backs the leads page: the filtered list plus the actions that
// change a lead and therefore refresh it.
type LeadService struct {
	*ListView[domain.Lead]
	api     LeadsAPI
	scoring *workflow.Scoring
	query   domain.LeadFilter
	logger  *zap.Logger
}

func NewLeadService(api LeadsAPI, scoring *workflow.Scoring, logger *zap.Logger) *LeadService {
	s := &LeadService{
		api:     api,
		scoring: scoring,
		logger:  logger,
	}
	s.ListView = NewListView("leads", filter.Leads, func(ctx context.Context) ([]domain.Lead, error) {
		return api.ListLeads(ctx, s.query)
	}, logger)
	return s
}

// SetQuery sets the server-side filter used by the next Refresh
func (s *LeadService) SetQuery(q domain.LeadFilter) {
	s.query = q
}

// Funnel counts the fetched leads per status
func (s *LeadService) Funnel() []analytics.Share {
	return analytics.FunnelShares(analytics.LeadFunnel(s.All()))
}

func (s *LeadService) Sources() []analytics.Share {
	return analytics.SourceShares(analytics.LeadSources(s.All()))
}

// Score rescores a lead and refetches the list so the new score shows
func (s *LeadService) Score(ctx context.Context, leadID int64) (*domain.LeadScoreResponse, error) {
	result, err := s.scoring.Score(ctx, leadID)
	if err != nil {
		return nil, classify(err)
	}
	if err := s.Refresh(ctx); err != nil {
		return result, err
	}
	return result, nil
}

// Convert turns a lead into a customer and refetches the leads
func (s *LeadService) Convert(ctx context.Context, leadID int64) (*domain.Customer, error) {
	if leadID <= 0 {
		return nil, fmt.Errorf("%w: lead id must be positive", ErrInvalidInput)
	}
	customer, err := s.api.ConvertLead(ctx, leadID)
	if err != nil {
		s.logger.Warn("lead conversion failed", zap.Int64("lead_id", leadID), zap.Error(err))
		return nil, classify(err)
	}
	s.logger.Info("lead converted", zap.Int64("lead_id", leadID), zap.Int64("customer_id", customer.ID))
	if err := s.Refresh(ctx); err != nil {
		return customer, err
	}
	return customer, nil
}

// Import uploads a CSV of leads and refetches the list when any row was created
func (s *LeadService) Import(ctx context.Context, filename string, content io.Reader) (*domain.ImportResult, error) {
	result, err := s.api.ImportLeadsCSV(ctx, filename, content)
	if err != nil {
		s.logger.Warn("lead import failed", zap.String("file", filename), zap.Error(err))
		return nil, classify(err)
	}
	s.logger.Info("leads imported",
		zap.String("file", filename),
		zap.Int("created", result.CreatedCount),
		zap.Int("rejected", len(result.Errors)),
	)
	if result.CreatedCount > 0 {
		if err := s.Refresh(ctx); err != nil {
			return result, err
		}
	}
	return result, nil
}
