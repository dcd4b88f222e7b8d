package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-intelligence/internal/domain"
)

// Bucket is the pipeline partition a deal falls into. Every record lands in
// exactly one bucket.
type Bucket int

const (
	BucketOpen Bucket = iota
	BucketWon
	BucketLost
)

// BucketOf classifies a stage. Any stage other than closed_won or
// closed_lost, including unknown ones, is open pipeline.
func BucketOf(stage domain.DealStage) Bucket {
	switch stage {
	case domain.DealStageClosedWon:
		return BucketWon
	case domain.DealStageClosedLost:
		return BucketLost
	}
	return BucketOpen
}

// PipelineSummary is the rollup shown above the deals table
type PipelineSummary struct {
	TotalRevenue     float64
	PipelineValue    float64
	WeightedPipeline float64
	// WinRate is won / (won + lost) on the 0-100 scale
	WinRate   float64
	WonCount  int
	LostCount int
	OpenCount int
}

// SummarizePipeline rolls up a deal collection
func SummarizePipeline(records []domain.SalesRecord) PipelineSummary {
	var (
		revenue  = decimal.Zero
		pipeline = decimal.Zero
		weighted = decimal.Zero
		hundred  = decimal.NewFromInt(100)
		s        PipelineSummary
	)

	for _, r := range records {
		amount := decimal.NewFromFloat(r.Amount)
		switch BucketOf(r.Stage) {
		case BucketWon:
			s.WonCount++
			revenue = revenue.Add(amount)
		case BucketLost:
			s.LostCount++
		case BucketOpen:
			s.OpenCount++
			pipeline = pipeline.Add(amount)
			weighted = weighted.Add(amount.Mul(decimal.NewFromFloat(r.Probability)).Div(hundred))
		}
	}

	s.TotalRevenue = revenue.InexactFloat64()
	s.PipelineValue = pipeline.InexactFloat64()
	s.WeightedPipeline = weighted.InexactFloat64()
	s.WinRate = Ratio(float64(s.WonCount), float64(s.WonCount+s.LostCount))
	return s
}

// WinRateLabel renders the win rate, "0%" for an empty collection
func (s PipelineSummary) WinRateLabel() string {
	if s.WonCount+s.LostCount+s.OpenCount == 0 {
		return "0%"
	}
	return Percent(s.WinRate)
}

// RepTotal is closed-won revenue and deal count for one rep
type RepTotal struct {
	RepID   int64
	Deals   int
	Revenue float64
}

// RevenueByRep aggregates closed-won deals per sales rep. Deals without a rep are skipped.
// The result is ordered by revenue, highest first, then by rep id.
func RevenueByRep(records []domain.SalesRecord) []RepTotal {
	totals := map[int64]decimal.Decimal{}
	counts := map[int64]int{}
	for _, r := range records {
		if r.SalesRepID == nil || BucketOf(r.Stage) != BucketWon {
			continue
		}
		id := *r.SalesRepID
		totals[id] = totals[id].Add(decimal.NewFromFloat(r.Amount))
		counts[id]++
	}

	out := make([]RepTotal, 0, len(totals))
	for id, total := range totals {
		out = append(out, RepTotal{RepID: id, Deals: counts[id], Revenue: total.InexactFloat64()})
	}
	sortRepTotals(out)
	return out
}
