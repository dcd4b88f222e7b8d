package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/straye-as/sales-intelligence/internal/analytics"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultRevenueMonths is the revenue chart window
const DefaultRevenueMonths = 12

type DashboardAPI interface {
	KPIs(ctx context.Context) (*domain.KPIs, error)
	RevenueOverTime(ctx context.Context, months int) ([]domain.RevenuePoint, error)
	LeadFunnel(ctx context.Context) ([]domain.FunnelStage, error)
	LeadSources(ctx context.Context) ([]domain.SourceCount, error)
	CampaignPerformance(ctx context.Context) ([]domain.CampaignPerformance, error)
	SalesByRep(ctx context.Context) ([]domain.RepPerformance, error)
}

// Dashboard slice names, used as keys of Dashboard.Errors
const (
	SliceKPIs      = "kpis"
	SliceRevenue   = "revenue"
	SliceFunnel    = "funnel"
	SliceSources   = "sources"
	SliceCampaigns = "campaigns"
	SliceReps      = "reps"
)

// Dashboard is one load of the overview page. Each slice is filled
// independently; a failed slice stays empty and is listed in Errors.
type Dashboard struct {
	Summary   *analytics.DashboardSummary
	Revenue   []analytics.RevenueLabel
	Funnel    []analytics.Share
	Sources   []analytics.Share
	Campaigns []domain.CampaignPerformance
	Reps      []domain.RepPerformance
	Errors    map[string]error
	LoadedAt  time.Time
}

// Complete reports whether every slice loaded
func (d *Dashboard) Complete() bool {
	return len(d.Errors) == 0
}

type DashboardService struct {
	api    DashboardAPI
	months int
	logger *zap.Logger

	mu      sync.RWMutex
	current *Dashboard
}

func NewDashboardService(api DashboardAPI, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		api:    api,
		months: DefaultRevenueMonths,
		logger: logger,
	}
}

// SetRevenueMonths changes the revenue window; months <= 0 leaves it to the server
func (s *DashboardService) SetRevenueMonths(months int) {
	s.months = months
}

// Load fetches every slice concurrently. It returns the partial dashboard
// together with the joined slice errors; an auth failure in any slice
// makes the error match ErrNotAuthenticated.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{Errors: map[string]error{}}
	var mu sync.Mutex
	fail := func(slice string, err error) {
		s.logger.Error("failed to load dashboard slice", zap.String("slice", slice), zap.Error(err))
		mu.Lock()
		d.Errors[slice] = err
		mu.Unlock()
	}

	// Slices never cancel each other, so the group's error is always nil
	var g errgroup.Group

	g.Go(func() error {
		kpis, err := s.api.KPIs(ctx)
		if err != nil {
			fail(SliceKPIs, err)
			return nil
		}
		summary := analytics.SummarizeDashboard(*kpis)
		d.Summary = &summary
		return nil
	})
	g.Go(func() error {
		points, err := s.api.RevenueOverTime(ctx, s.months)
		if err != nil {
			fail(SliceRevenue, err)
			return nil
		}
		d.Revenue = analytics.RevenueSeries(points)
		return nil
	})
	g.Go(func() error {
		stages, err := s.api.LeadFunnel(ctx)
		if err != nil {
			fail(SliceFunnel, err)
			return nil
		}
		d.Funnel = analytics.FunnelShares(stages)
		return nil
	})
	g.Go(func() error {
		sources, err := s.api.LeadSources(ctx)
		if err != nil {
			fail(SliceSources, err)
			return nil
		}
		d.Sources = analytics.SourceShares(sources)
		return nil
	})
	g.Go(func() error {
		rows, err := s.api.CampaignPerformance(ctx)
		if err != nil {
			fail(SliceCampaigns, err)
			return nil
		}
		d.Campaigns = rows
		return nil
	})
	g.Go(func() error {
		reps, err := s.api.SalesByRep(ctx)
		if err != nil {
			fail(SliceReps, err)
			return nil
		}
		d.Reps = reps
		return nil
	})

	_ = g.Wait()
	d.LoadedAt = time.Now()

	s.mu.Lock()
	s.current = d
	s.mu.Unlock()

	if d.Complete() {
		s.logger.Debug("dashboard loaded")
		return d, nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, slice := range []string{SliceKPIs, SliceRevenue, SliceFunnel, SliceSources, SliceCampaigns, SliceReps} {
		if err, ok := d.Errors[slice]; ok {
			errs = append(errs, fmt.Errorf("%s: %w", slice, classify(err)))
		}
	}
	return d, errors.Join(errs...)
}

// Current returns the most recent load, nil before the first one
func (s *DashboardService) Current() *Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
