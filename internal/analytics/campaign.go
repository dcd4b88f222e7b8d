package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-intelligence/internal/domain"
)

// CampaignSummary holds plain sums over a campaign collection
type CampaignSummary struct {
	Count        int
	TotalBudget  float64
	TotalSpent   float64
	TotalLeads   int64
	TotalRevenue float64
}

func SummarizeCampaigns(campaigns []domain.Campaign) CampaignSummary {
	budget, spent, revenue := decimal.Zero, decimal.Zero, decimal.Zero
	s := CampaignSummary{Count: len(campaigns)}
	for _, c := range campaigns {
		budget = budget.Add(decimal.NewFromFloat(c.Budget))
		spent = spent.Add(decimal.NewFromFloat(c.Spent))
		revenue = revenue.Add(decimal.NewFromFloat(c.RevenueAttributed))
		s.TotalLeads += c.LeadsGenerated
	}
	s.TotalBudget = budget.InexactFloat64()
	s.TotalSpent = spent.InexactFloat64()
	s.TotalRevenue = revenue.InexactFloat64()
	return s
}

// BudgetUtilisation is spent/budget on the 0-100 scale, capped at 100 for
// the progress bar. Overspend still shows through Campaign.Overspent.
func BudgetUtilisation(c domain.Campaign) float64 {
	u := Ratio(c.Spent, c.Budget)
	if u > 100 {
		return 100
	}
	return u
}

// CampaignCard is a campaign formatted for display. The ratio fields come
// from the server untouched.
type CampaignCard struct {
	Name        string
	TypeLabel   string
	Status      string
	StatusStyle string
	BudgetLine  string
	Utilisation float64
	Overspent   bool
	Leads       int64
	Conversions int64
	CTR         string
	Conversion  string
	CostPerLead string
	ROI         string
	ROIPositive bool
}

func NewCampaignCard(c domain.Campaign) CampaignCard {
	return CampaignCard{
		Name:        c.Name,
		TypeLabel:   domain.StatusLabel(string(c.CampaignType)),
		Status:      string(c.Status),
		StatusStyle: domain.StatusColor(string(c.Status)),
		BudgetLine:  Currency(c.Spent) + " / " + Currency(c.Budget),
		Utilisation: BudgetUtilisation(c),
		Overspent:   c.Overspent(),
		Leads:       c.LeadsGenerated,
		Conversions: c.Conversions,
		CTR:         Percent(c.ClickThroughRate),
		Conversion:  Percent(c.ConversionRate),
		CostPerLead: Currency(c.CostPerLead),
		ROI:         Percent(c.ROI),
		ROIPositive: c.ROI >= 0,
	}
}
