package analytics

import (
	"fmt"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

// DashboardSummary derives the composite ratios from a server KPI snapshot.
// Every other KPI is displayed as the server sent it.
type DashboardSummary struct {
	KPIs domain.KPIs
	// WinRatePercent is converted_leads / total_leads on the 0-100 scale
	WinRatePercent float64
	// PipelineCoverage is pipeline_value / total_revenue on the 0-100 scale
	PipelineCoverage float64
}

func SummarizeDashboard(kpis domain.KPIs) DashboardSummary {
	return DashboardSummary{
		KPIs:             kpis,
		WinRatePercent:   Ratio(float64(kpis.ConvertedLeads), float64(kpis.TotalLeads)),
		PipelineCoverage: Ratio(kpis.PipelineValue, kpis.TotalRevenue),
	}
}

func (d DashboardSummary) WinRateLabel() string {
	if d.KPIs.TotalLeads == 0 {
		return "0%"
	}
	return Percent(d.WinRatePercent)
}

func (d DashboardSummary) PipelineCoverageLabel() string {
	return WholePercent(d.PipelineCoverage)
}

// KPICard is one headline tile
type KPICard struct {
	Title string
	Value string
}

// Cards renders the headline tiles in display order
func (d DashboardSummary) Cards() []KPICard {
	k := d.KPIs
	return []KPICard{
		{Title: "Total Revenue", Value: Currency(k.TotalRevenue)},
		{Title: "Total Leads", Value: Number(float64(k.TotalLeads))},
		{Title: "Conversion Rate", Value: Percent(k.ConversionRate)},
		{Title: "Pipeline Value", Value: Currency(k.PipelineValue)},
		{Title: "Active Campaigns", Value: Number(float64(k.ActiveCampaigns))},
		{Title: "Total Customers", Value: Number(float64(k.TotalCustomers))},
		{Title: "Avg. Deal Size", Value: Currency(k.AverageDealSize)},
		{Title: "Converted Leads", Value: Number(float64(k.ConvertedLeads))},
		{Title: "Win Rate", Value: d.WinRateLabel()},
		{Title: "Pipeline Coverage", Value: d.PipelineCoverageLabel()},
	}
}

// RevenueLabel is one point of the revenue chart
type RevenueLabel struct {
	Label   string
	Revenue float64
}

// RevenueSeries labels each month as "M/YYYY", keeping server order
func RevenueSeries(points []domain.RevenuePoint) []RevenueLabel {
	out := make([]RevenueLabel, 0, len(points))
	for _, p := range points {
		out = append(out, RevenueLabel{
			Label:   fmt.Sprintf("%d/%d", p.Month, p.Year),
			Revenue: p.Revenue,
		})
	}
	return out
}
