package analytics_test

import (
	"math"
	"testing"

	"github.com/straye-as/sales-intelligence/internal/analytics"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestCurrency(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 0, want: "$0"},
		{value: 1234.5, want: "$1,235"},
		{value: 1234.49, want: "$1,234"},
		{value: 999.5, want: "$1,000"},
		{value: 1234567.89, want: "$1,234,568"},
		{value: -2500.5, want: "-$2,501"},
		{value: 0.4, want: "$0"},
		{value: math.NaN(), want: "$0"},
		{value: math.Inf(1), want: "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, analytics.Currency(tt.value))
		})
	}
}

func TestPercentAndNumber(t *testing.T) {
	assert.Equal(t, "12.5%", analytics.Percent(12.5))
	assert.Equal(t, "0.0%", analytics.Percent(0))
	assert.Equal(t, "33.3%", analytics.Percent(100.0/3))
	assert.Equal(t, "150.0%", analytics.Percent(150))
	assert.Equal(t, "-20.0%", analytics.Percent(-20))
	assert.Equal(t, "0.0%", analytics.Percent(math.NaN()))

	assert.Equal(t, "1,234,567", analytics.Number(1234567))
	assert.Equal(t, "12", analytics.Number(12))
	assert.Equal(t, "1,234.5", analytics.Number(1234.5))

	assert.Equal(t, "150%", analytics.WholePercent(150.2))
}

func TestRatio_ZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, analytics.Ratio(10, 0))
	assert.Equal(t, 0.0, analytics.Ratio(0, 0))
	assert.Equal(t, 50.0, analytics.Ratio(1, 2))
}

func TestSummarizePipeline(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.SalesRecord
		want    analytics.PipelineSummary
		label   string
	}{
		{
			name:    "empty collection",
			records: nil,
			want:    analytics.PipelineSummary{},
			label:   "0%",
		},
		{
			name:    "open deal only has zero win rate",
			records: []domain.SalesRecord{{Stage: domain.DealStageProspecting, Amount: 1000}},
			want:    analytics.PipelineSummary{PipelineValue: 1000, OpenCount: 1},
			label:   "0.0%",
		},
		{
			name:    "weighted pipeline scales by probability",
			records: []domain.SalesRecord{{Stage: domain.DealStageNegotiation, Amount: 10000, Probability: 40}},
			want:    analytics.PipelineSummary{PipelineValue: 10000, WeightedPipeline: 4000, OpenCount: 1},
			label:   "0.0%",
		},
		{
			name: "mixed buckets",
			records: []domain.SalesRecord{
				{Stage: domain.DealStageClosedWon, Amount: 5000, Probability: 100},
				{Stage: domain.DealStageClosedWon, Amount: 2500.5, Probability: 100},
				{Stage: domain.DealStageClosedLost, Amount: 9000, Probability: 0},
				{Stage: domain.DealStageProposal, Amount: 2000, Probability: 50},
				{Stage: domain.DealStage("unknown"), Amount: 100, Probability: 10},
			},
			want: analytics.PipelineSummary{
				TotalRevenue:     7500.5,
				PipelineValue:    2100,
				WeightedPipeline: 1010,
				WinRate:          200.0 / 3,
				WonCount:         2,
				LostCount:        1,
				OpenCount:        2,
			},
			label: "66.7%",
		},
		{
			name: "all lost",
			records: []domain.SalesRecord{
				{Stage: domain.DealStageClosedLost, Amount: 10},
			},
			want:  analytics.PipelineSummary{LostCount: 1},
			label: "0.0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analytics.SummarizePipeline(tt.records)
			assert.InDelta(t, tt.want.TotalRevenue, got.TotalRevenue, 1e-9)
			assert.InDelta(t, tt.want.PipelineValue, got.PipelineValue, 1e-9)
			assert.InDelta(t, tt.want.WeightedPipeline, got.WeightedPipeline, 1e-9)
			assert.InDelta(t, tt.want.WinRate, got.WinRate, 1e-9)
			assert.Equal(t, tt.want.WonCount, got.WonCount)
			assert.Equal(t, tt.want.LostCount, got.LostCount)
			assert.Equal(t, tt.want.OpenCount, got.OpenCount)
			assert.Equal(t, tt.label, got.WinRateLabel())
		})
	}
}

func TestSummarizePipeline_EveryRecordInOneBucket(t *testing.T) {
	stages := []domain.DealStage{
		domain.DealStageProspecting, domain.DealStageQualification, domain.DealStageProposal,
		domain.DealStageNegotiation, domain.DealStageClosedWon, domain.DealStageClosedLost,
	}
	var records []domain.SalesRecord
	var total float64
	for i := 0; i < 60; i++ {
		amount := float64(100 + i*37)
		records = append(records, domain.SalesRecord{Stage: stages[i%len(stages)], Amount: amount, Probability: float64(i % 101)})
		total += amount
	}

	s := analytics.SummarizePipeline(records)
	var lost float64
	for _, r := range records {
		if r.Stage == domain.DealStageClosedLost {
			lost += r.Amount
		}
	}
	assert.Equal(t, len(records), s.WonCount+s.LostCount+s.OpenCount)
	assert.InDelta(t, total, s.TotalRevenue+s.PipelineValue+lost, 1e-6)
	assert.LessOrEqual(t, s.WeightedPipeline, s.PipelineValue)
}

func TestRevenueByRep(t *testing.T) {
	records := []domain.SalesRecord{
		{SalesRepID: int64Ptr(1), Stage: domain.DealStageClosedWon, Amount: 100},
		{SalesRepID: int64Ptr(2), Stage: domain.DealStageClosedWon, Amount: 300},
		{SalesRepID: int64Ptr(1), Stage: domain.DealStageClosedWon, Amount: 250},
		{SalesRepID: int64Ptr(3), Stage: domain.DealStageProposal, Amount: 9999},
		{Stage: domain.DealStageClosedWon, Amount: 50},
	}
	got := analytics.RevenueByRep(records)
	require.Len(t, got, 2)
	assert.Equal(t, analytics.RepTotal{RepID: 1, Deals: 2, Revenue: 350}, got[0])
	assert.Equal(t, analytics.RepTotal{RepID: 2, Deals: 1, Revenue: 300}, got[1])
	assert.Empty(t, analytics.RevenueByRep(nil))
}

func TestSummarizeCampaigns(t *testing.T) {
	campaigns := []domain.Campaign{
		{Budget: 1000, Spent: 1500, LeadsGenerated: 10, RevenueAttributed: 4000, ROI: 166.7},
		{Budget: 2000, Spent: 500, LeadsGenerated: 5, RevenueAttributed: 0, ROI: -100},
	}
	s := analytics.SummarizeCampaigns(campaigns)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 3000.0, s.TotalBudget)
	assert.Equal(t, 2000.0, s.TotalSpent)
	assert.Equal(t, int64(15), s.TotalLeads)
	assert.Equal(t, 4000.0, s.TotalRevenue)

	assert.Equal(t, analytics.CampaignSummary{}, analytics.SummarizeCampaigns(nil))
}

func TestBudgetUtilisation(t *testing.T) {
	assert.Equal(t, 100.0, analytics.BudgetUtilisation(domain.Campaign{Budget: 1000, Spent: 1500}))
	assert.Equal(t, 25.0, analytics.BudgetUtilisation(domain.Campaign{Budget: 1000, Spent: 250}))
	assert.Equal(t, 0.0, analytics.BudgetUtilisation(domain.Campaign{Budget: 0, Spent: 250}))
}

func TestNewCampaignCard_PassesServerRatiosThrough(t *testing.T) {
	card := analytics.NewCampaignCard(domain.Campaign{
		Name: "Spring", CampaignType: domain.CampaignTypeSocialMedia, Status: domain.CampaignStatusActive,
		Budget: 1000, Spent: 1200, ClickThroughRate: 2.345, ConversionRate: 10, CostPerLead: 12.5, ROI: -3.3,
	})
	assert.Equal(t, "social media", card.TypeLabel)
	assert.Equal(t, "$1,200 / $1,000", card.BudgetLine)
	assert.True(t, card.Overspent)
	assert.Equal(t, 100.0, card.Utilisation)
	assert.Equal(t, "2.3%", card.CTR)
	assert.Equal(t, "10.0%", card.Conversion)
	assert.Equal(t, "$13", card.CostPerLead)
	assert.Equal(t, "-3.3%", card.ROI)
	assert.False(t, card.ROIPositive)
	assert.Equal(t, domain.StyleGreen, card.StatusStyle)
}

func TestSummarizeCustomers(t *testing.T) {
	customers := []domain.Customer{
		{Status: domain.CustomerStatusActive, LifetimeValue: 1000.25, TotalPurchases: 3},
		{Status: domain.CustomerStatusActive, LifetimeValue: 500, TotalPurchases: 1},
		{Status: domain.CustomerStatusChurned, LifetimeValue: 0, TotalPurchases: 0},
		{Status: domain.CustomerStatus("vip"), LifetimeValue: 10, TotalPurchases: 2},
	}
	s := analytics.SummarizeCustomers(customers)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2, s.Active())
	assert.Equal(t, 0, s.ByStatus[domain.CustomerStatusInactive])
	assert.Equal(t, 1, s.ByStatus[domain.CustomerStatusChurned])
	assert.Equal(t, 1, s.ByStatus["vip"])
	assert.Equal(t, 1510.25, s.TotalLifetimeValue)
	assert.Equal(t, 6, s.TotalPurchases)

	empty := analytics.SummarizeCustomers(nil)
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, 0, empty.Active())
	assert.Equal(t, 0.0, empty.TotalLifetimeValue)
}

func TestSummarizeDashboard(t *testing.T) {
	d := analytics.SummarizeDashboard(domain.KPIs{
		TotalRevenue: 200000, TotalLeads: 80, ConvertedLeads: 20, PipelineValue: 300000,
	})
	assert.Equal(t, 25.0, d.WinRatePercent)
	assert.Equal(t, "25.0%", d.WinRateLabel())
	assert.Equal(t, 150.0, d.PipelineCoverage)
	assert.Equal(t, "150%", d.PipelineCoverageLabel())

	zero := analytics.SummarizeDashboard(domain.KPIs{PipelineValue: 1000})
	assert.Equal(t, 0.0, zero.WinRatePercent)
	assert.Equal(t, "0%", zero.WinRateLabel())
	assert.Equal(t, 0.0, zero.PipelineCoverage)
	assert.Equal(t, "0%", zero.PipelineCoverageLabel())

	cards := d.Cards()
	require.Len(t, cards, 10)
	assert.Equal(t, analytics.KPICard{Title: "Total Revenue", Value: "$200,000"}, cards[0])
	assert.Equal(t, analytics.KPICard{Title: "Total Leads", Value: "80"}, cards[1])
}

func TestRevenueSeries(t *testing.T) {
	got := analytics.RevenueSeries([]domain.RevenuePoint{
		{Year: 2024, Month: 11, Revenue: 10},
		{Year: 2025, Month: 1, Revenue: 20},
	})
	assert.Equal(t, []analytics.RevenueLabel{{Label: "11/2024", Revenue: 10}, {Label: "1/2025", Revenue: 20}}, got)
	assert.Empty(t, analytics.RevenueSeries(nil))
}

func TestFunnelAndSourceShares(t *testing.T) {
	shares := analytics.FunnelShares([]domain.FunnelStage{
		{Stage: "new", Count: 3},
		{Stage: "closed_won", Count: 1},
	})
	require.Len(t, shares, 2)
	assert.Equal(t, 75.0, shares[0].Percent)
	assert.Equal(t, "closed won", shares[1].Label)

	assert.Equal(t, 0.0, analytics.SourceShares([]domain.SourceCount{{Source: "website", Count: 0}})[0].Percent)
	assert.Empty(t, analytics.FunnelShares(nil))
}

func TestLeadFunnelAndSources(t *testing.T) {
	leads := []domain.Lead{
		{Status: domain.LeadStatusNew, Source: domain.LeadSourceWebsite},
		{Status: domain.LeadStatusNew, Source: domain.LeadSourceReferral},
		{Status: domain.LeadStatusClosedWon, Source: domain.LeadSourceWebsite},
		{Status: domain.LeadStatus("zombie"), Source: domain.LeadSourceWebsite},
	}

	funnel := analytics.LeadFunnel(leads)
	require.Len(t, funnel, 8)
	assert.Equal(t, domain.FunnelStage{Stage: "new", Count: 2}, funnel[0])
	assert.Equal(t, domain.FunnelStage{Stage: "contacted", Count: 0}, funnel[1])
	assert.Equal(t, domain.FunnelStage{Stage: "closed_won", Count: 1}, funnel[5])
	assert.Equal(t, domain.FunnelStage{Stage: "zombie", Count: 1}, funnel[7])

	assert.Len(t, analytics.LeadFunnel(nil), 7)

	sources := analytics.LeadSources(leads)
	assert.Equal(t, []domain.SourceCount{{Source: "website", Count: 3}, {Source: "referral", Count: 1}}, sources)
}
