package devserver

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-intelligence/internal/domain"
)

// funnelStages are the lead statuses shown in the funnel, in order.
// closed_lost is not a funnel stage.
var funnelStages = []domain.LeadStatus{
	domain.LeadStatusNew,
	domain.LeadStatusContacted,
	domain.LeadStatusQualified,
	domain.LeadStatusProposal,
	domain.LeadStatusNegotiation,
	domain.LeadStatusClosedWon,
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// sumAmounts adds deal amounts without float drift
func sumAmounts(records []domain.SalesRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(decimal.NewFromFloat(rec.Amount))
	}
	return total
}

func (s *Server) computeKPIs() domain.KPIs {
	var k domain.KPIs
	s.store.read(func(db *tables) {
		won := db.sales.list(func(rec domain.SalesRecord) bool { return rec.Stage == domain.DealStageClosedWon })
		open := db.sales.list(func(rec domain.SalesRecord) bool { return !rec.Stage.IsClosed() })
		converted := db.leads.list(func(l domain.Lead) bool { return l.Status == domain.LeadStatusClosedWon })
		active := db.campaigns.list(func(c domain.Campaign) bool { return c.Status == domain.CampaignStatusActive })

		revenue := sumAmounts(won)
		k.TotalRevenue = revenue.Round(2).InexactFloat64()
		k.TotalLeads = int64(db.leads.len())
		k.ConvertedLeads = int64(len(converted))
		if k.TotalLeads > 0 {
			k.ConversionRate = round2(float64(k.ConvertedLeads) / float64(k.TotalLeads) * 100)
		}
		k.ActiveCampaigns = int64(len(active))
		k.TotalCustomers = int64(db.customers.len())
		k.PipelineValue = sumAmounts(open).Round(2).InexactFloat64()
		if len(won) > 0 {
			k.AverageDealSize = revenue.Div(decimal.NewFromInt(int64(len(won)))).Round(2).InexactFloat64()
		}
	})
	return k
}

func (s *Server) kpis(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.computeKPIs())
}

// revenueOverTime groups closed-won revenue by calendar month of the actual
// close date over the last months*30 days
func (s *Server) revenueOverTime(w http.ResponseWriter, r *http.Request) {
	months := 12
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondFieldErrors(w, "query", map[string]string{"months": "value is not a valid positive integer"})
			return
		}
		months = n
	}

	end := s.now().UTC()
	start := end.Add(-time.Duration(months*30) * 24 * time.Hour)

	type month struct{ year, month int }
	totals := map[month]decimal.Decimal{}
	s.store.read(func(db *tables) {
		for _, rec := range db.sales.list(nil) {
			if rec.Stage != domain.DealStageClosedWon || rec.ActualCloseDate == nil {
				continue
			}
			closed := rec.ActualCloseDate.Time.UTC()
			if closed.Before(start) || closed.After(end) {
				continue
			}
			key := month{closed.Year(), int(closed.Month())}
			totals[key] = totals[key].Add(decimal.NewFromFloat(rec.Amount))
		}
	})

	points := make([]domain.RevenuePoint, 0, len(totals))
	for key, total := range totals {
		points = append(points, domain.RevenuePoint{Year: key.year, Month: key.month, Revenue: total.Round(2).InexactFloat64()})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})
	respondJSON(w, http.StatusOK, points)
}

func (s *Server) leadFunnel(w http.ResponseWriter, r *http.Request) {
	counts := map[domain.LeadStatus]int64{}
	s.store.read(func(db *tables) {
		for _, l := range db.leads.list(nil) {
			counts[l.Status]++
		}
	})

	stages := make([]domain.FunnelStage, 0, len(funnelStages))
	for _, status := range funnelStages {
		stages = append(stages, domain.FunnelStage{Stage: string(status), Count: counts[status]})
	}
	respondJSON(w, http.StatusOK, stages)
}

// leadSources lists only sources with at least one lead, ordered by source
func (s *Server) leadSources(w http.ResponseWriter, r *http.Request) {
	counts := map[domain.LeadSource]int64{}
	s.store.read(func(db *tables) {
		for _, l := range db.leads.list(nil) {
			counts[l.Source]++
		}
	})

	sources := make([]domain.SourceCount, 0, len(counts))
	for source, n := range counts {
		sources = append(sources, domain.SourceCount{Source: string(source), Count: n})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Source < sources[j].Source })
	respondJSON(w, http.StatusOK, sources)
}

// campaignPerformance reports active and completed campaigns
func (s *Server) campaignPerformance(w http.ResponseWriter, r *http.Request) {
	var rows []domain.CampaignPerformance
	s.store.read(func(db *tables) {
		for _, c := range db.campaigns.list(nil) {
			if c.Status != domain.CampaignStatusActive && c.Status != domain.CampaignStatusCompleted {
				continue
			}
			rows = append(rows, domain.CampaignPerformance{
				ID:               c.ID,
				Name:             c.Name,
				Type:             c.CampaignType,
				Status:           c.Status,
				Budget:           c.Budget,
				Spent:            c.Spent,
				Impressions:      c.Impressions,
				Clicks:           c.Clicks,
				Conversions:      c.Conversions,
				LeadsGenerated:   c.LeadsGenerated,
				ROI:              c.ROI,
				ClickThroughRate: c.ClickThroughRate,
				ConversionRate:   c.ConversionRate,
			})
		}
	})
	if rows == nil {
		rows = []domain.CampaignPerformance{}
	}
	respondJSON(w, http.StatusOK, rows)
}

// salesByRep totals closed-won deals per sales rep, ordered by rep id
func (s *Server) salesByRep(w http.ResponseWriter, r *http.Request) {
	type tally struct {
		deals   int64
		revenue decimal.Decimal
	}
	byRep := map[int64]*tally{}
	names := map[int64]string{}

	s.store.read(func(db *tables) {
		for _, rec := range db.sales.list(nil) {
			if rec.Stage != domain.DealStageClosedWon || rec.SalesRepID == nil {
				continue
			}
			acc, ok := db.users.get(*rec.SalesRepID)
			if !ok {
				continue
			}
			t, seen := byRep[acc.ID]
			if !seen {
				t = &tally{revenue: decimal.Zero}
				byRep[acc.ID] = t
				names[acc.ID] = acc.FullName
			}
			t.deals++
			t.revenue = t.revenue.Add(decimal.NewFromFloat(rec.Amount))
		}
	})

	reps := make([]domain.RepPerformance, 0, len(byRep))
	for id, t := range byRep {
		reps = append(reps, domain.RepPerformance{
			ID:           id,
			Name:         names[id],
			DealsCount:   t.deals,
			TotalRevenue: t.revenue.Round(2).InexactFloat64(),
		})
	}
	sort.Slice(reps, func(i, j int) bool { return reps[i].ID < reps[j].ID })
	respondJSON(w, http.StatusOK, reps)
}
