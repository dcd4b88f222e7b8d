package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

func (c *Client) KPIs(ctx context.Context) (*domain.KPIs, error) {
	var kpis domain.KPIs
	if err := c.get(ctx, "/dashboard/kpis", nil, &kpis); err != nil {
		return nil, err
	}
	return &kpis, nil
}

// RevenueOverTime returns monthly closed-won revenue. months <= 0 leaves the
// window to the server default.
func (c *Client) RevenueOverTime(ctx context.Context, months int) ([]domain.RevenuePoint, error) {
	query := url.Values{}
	if months > 0 {
		query.Set("months", strconv.Itoa(months))
	}
	var points []domain.RevenuePoint
	if err := c.get(ctx, "/dashboard/revenue-over-time", query, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *Client) LeadFunnel(ctx context.Context) ([]domain.FunnelStage, error) {
	var stages []domain.FunnelStage
	if err := c.get(ctx, "/dashboard/lead-funnel", nil, &stages); err != nil {
		return nil, err
	}
	return stages, nil
}

func (c *Client) LeadSources(ctx context.Context) ([]domain.SourceCount, error) {
	var sources []domain.SourceCount
	if err := c.get(ctx, "/dashboard/lead-sources", nil, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

func (c *Client) CampaignPerformance(ctx context.Context) ([]domain.CampaignPerformance, error) {
	var rows []domain.CampaignPerformance
	if err := c.get(ctx, "/dashboard/campaign-performance", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) SalesByRep(ctx context.Context) ([]domain.RepPerformance, error) {
	var reps []domain.RepPerformance
	if err := c.get(ctx, "/dashboard/sales-by-rep", nil, &reps); err != nil {
		return nil, err
	}
	return reps, nil
}
