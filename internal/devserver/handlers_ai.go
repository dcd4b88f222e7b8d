package devserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ruleScore is a rule-based stand-in for model scoring. The same lead
// always gets the same score.
func ruleScore(lead domain.Lead) domain.LeadScoreResponse {
	score := 20.0
	var factors, recommendations []string

	title := strings.ToLower(lead.JobTitle)
	switch {
	case containsAny(title, "ceo", "cto", "cfo", "founder", "owner", "vp", "vice president", "director", "head"):
		score += 20
		factors = append(factors, "Senior decision maker ("+lead.JobTitle+")")
	case strings.Contains(title, "manager"):
		score += 10
		factors = append(factors, "Manager-level contact")
	case title == "":
		factors = append(factors, "Job title unknown")
		recommendations = append(recommendations, "Confirm the contact's role and buying authority")
	default:
		factors = append(factors, "Individual contributor contact")
		recommendations = append(recommendations, "Identify the economic buyer at "+lead.CompanyName)
	}

	if lead.AnnualRevenue != nil {
		switch {
		case *lead.AnnualRevenue >= 10_000_000:
			score += 20
			factors = append(factors, "Large company by revenue")
		case *lead.AnnualRevenue >= 1_000_000:
			score += 10
			factors = append(factors, "Mid-sized company by revenue")
		default:
			factors = append(factors, "Small company by revenue")
		}
	}

	if lead.EstimatedValue != nil {
		switch {
		case *lead.EstimatedValue >= 50_000:
			score += 15
			factors = append(factors, "High estimated deal value")
		case *lead.EstimatedValue >= 10_000:
			score += 8
			factors = append(factors, "Moderate estimated deal value")
		}
	} else {
		recommendations = append(recommendations, "Estimate the deal value to prioritise follow-up")
	}

	switch lead.Source {
	case domain.LeadSourceReferral:
		score += 15
		factors = append(factors, "Referral source converts well")
	case domain.LeadSourceTradeShow, domain.LeadSourceLinkedIn:
		score += 10
		factors = append(factors, "Warm source ("+string(lead.Source)+")")
	case domain.LeadSourceWebsite:
		score += 8
		factors = append(factors, "Inbound website lead")
	default:
		score += 4
	}

	switch lead.Status {
	case domain.LeadStatusQualified, domain.LeadStatusProposal, domain.LeadStatusNegotiation:
		score += 10
		factors = append(factors, "Already progressing through the funnel")
	case domain.LeadStatusClosedLost:
		score -= 15
		factors = append(factors, "Previously lost")
		recommendations = append(recommendations, "Review why the deal was lost before re-engaging")
	case domain.LeadStatusNew:
		recommendations = append(recommendations, "Make first contact within 48 hours")
	}

	if lead.Notes != "" {
		score += 5
		factors = append(factors, "Engagement notes on record")
	}

	score = clamp(score, 0, 100)
	if score >= 70 {
		recommendations = append(recommendations, "Prioritise this lead for a sales call this week")
	}
	if len(recommendations) == 0 {
		recommendations = []string{"Keep nurturing with relevant content"}
	}

	return domain.LeadScoreResponse{
		LeadID:          lead.ID,
		Score:           score,
		Probability:     round2(score / 100),
		Reasoning:       fmt.Sprintf("%s scored %.0f/100 based on %d factors.", lead.CompanyName, score, len(factors)),
		Factors:         factors,
		Recommendations: recommendations,
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// scoreAndStore scores the lead with id and records the score on it
func (s *Server) scoreAndStore(id int64) (domain.LeadScoreResponse, bool) {
	var result domain.LeadScoreResponse
	var ok bool
	s.store.write(func(db *tables) {
		var lead domain.Lead
		if lead, ok = db.leads.get(id); !ok {
			return
		}
		result = ruleScore(lead)
		score := result.Score
		lead.AIScore = &score
		lead.AIScoreReasoning = result.Reasoning
		lead.UpdatedAt = s.store.stamp()
		db.leads.put(id, lead)
	})
	return result, ok
}

func (s *Server) scoreLead(w http.ResponseWriter, r *http.Request) {
	var req domain.LeadScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, ok := s.scoreAndStore(req.LeadID)
	if !ok {
		respondDetail(w, http.StatusNotFound, fmt.Sprintf("Lead with id %d not found", req.LeadID))
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// scoreLeadsBatch scores each id in order. Unknown ids are skipped.
func (s *Server) scoreLeadsBatch(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if !decodeBody(w, r, &ids) {
		return
	}
	results := make([]domain.LeadScoreResponse, 0, len(ids))
	for _, id := range ids {
		if result, ok := s.scoreAndStore(id); ok {
			results = append(results, result)
		}
	}
	respondJSON(w, http.StatusOK, results)
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		respondFieldErrors(w, "body", map[string]string{"message": "field required"})
		return
	}

	conversationID := s.chats.resolve(req.ConversationID)
	s.chats.append(conversationID, message)

	resp := s.answer(message)
	resp.ConversationID = conversationID
	respondJSON(w, http.StatusOK, resp)
}

// answer maps a question onto one of a handful of canned queries over the store
func (s *Server) answer(message string) domain.ChatResponse {
	q := strings.ToLower(message)
	var resp domain.ChatResponse
	sql := func(query string) { resp.SQLQuery = &query }

	s.store.read(func(db *tables) {
		switch {
		case strings.Contains(q, "revenue"):
			won := db.sales.list(func(rec domain.SalesRecord) bool { return rec.Stage == domain.DealStageClosedWon })
			total := sumAmounts(won).Round(2).InexactFloat64()
			sql("SELECT SUM(amount) AS total_revenue, COUNT(*) AS deals FROM sales_records WHERE stage = 'closed_won'")
			resp.Data = []map[string]any{{"total_revenue": total, "deals": len(won)}}
			resp.Answer = fmt.Sprintf("Closed-won revenue is %.2f across %d deals.", total, len(won))

		case strings.Contains(q, "lead") && strings.Contains(q, "source"):
			counts := map[string]int{}
			for _, l := range db.leads.list(nil) {
				counts[string(l.Source)]++
			}
			sql("SELECT source, COUNT(*) AS count FROM leads GROUP BY source ORDER BY count DESC")
			resp.Data = rankedCounts("source", counts)
			resp.Answer = fmt.Sprintf("Leads come from %d sources.", len(counts))

		case strings.Contains(q, "lead"):
			counts := map[string]int{}
			for _, l := range db.leads.list(nil) {
				counts[string(l.Status)]++
			}
			sql("SELECT status, COUNT(*) AS count FROM leads GROUP BY status ORDER BY count DESC")
			resp.Data = rankedCounts("status", counts)
			resp.Answer = fmt.Sprintf("There are %d leads in total.", db.leads.len())

		case strings.Contains(q, "campaign"):
			campaigns := db.campaigns.list(nil)
			sort.SliceStable(campaigns, func(i, j int) bool { return campaigns[i].ROI > campaigns[j].ROI })
			sql("SELECT name, roi, leads_generated FROM campaigns ORDER BY roi DESC LIMIT 5")
			for i, c := range campaigns {
				if i == 5 {
					break
				}
				resp.Data = append(resp.Data, map[string]any{"name": c.Name, "roi": round2(c.ROI), "leads_generated": c.LeadsGenerated})
			}
			resp.Answer = fmt.Sprintf("Here are the top %d campaigns by ROI.", len(resp.Data))

		case strings.Contains(q, "customer"):
			customers := db.customers.list(nil)
			sort.SliceStable(customers, func(i, j int) bool { return customers[i].LifetimeValue > customers[j].LifetimeValue })
			sql("SELECT company_name, lifetime_value FROM customers ORDER BY lifetime_value DESC LIMIT 5")
			for i, c := range customers {
				if i == 5 {
					break
				}
				resp.Data = append(resp.Data, map[string]any{"company_name": c.CompanyName, "lifetime_value": c.LifetimeValue})
			}
			resp.Answer = fmt.Sprintf("These are your top %d customers by lifetime value.", len(resp.Data))

		case strings.Contains(q, "pipeline") || strings.Contains(q, "deal"):
			open := db.sales.list(func(rec domain.SalesRecord) bool { return !rec.Stage.IsClosed() })
			sql("SELECT deal_name, stage, amount FROM sales_records WHERE stage NOT IN ('closed_won', 'closed_lost')")
			for _, rec := range open {
				resp.Data = append(resp.Data, map[string]any{"deal_name": rec.DealName, "stage": string(rec.Stage), "amount": rec.Amount})
			}
			resp.Answer = fmt.Sprintf("There are %d open deals worth %.2f.", len(open), sumAmounts(open).Round(2).InexactFloat64())

		default:
			resp.Answer = "I can only help with data queries. Please ask about your sales, leads, campaigns, or customers."
		}
	})
	return resp
}

// rankedCounts turns counts into rows ordered by count, then key
func rankedCounts(key string, counts map[string]int) []map[string]any {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	rows := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, map[string]any{key: k, "count": counts[k]})
	}
	return rows
}

var platformTips = map[string][]string{
	"linkedin": {"Post on Tuesday to Thursday mornings", "Keep the first line under 150 characters"},
	"email":    {"Keep subject lines under 50 characters", "Use a single call to action"},
	"twitter":  {"Use one or two hashtags at most", "Attach an image to lift engagement"},
	"blog":     {"Lead with the reader's problem", "Use subheadings every 300 words"},
}

func (s *Server) generateContent(w http.ResponseWriter, r *http.Request) {
	var req domain.ContentGenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	missing := map[string]string{}
	for field, value := range map[string]string{
		"target_audience": req.TargetAudience,
		"industry":        req.Industry,
		"tone":            req.Tone,
		"platform":        req.Platform,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "field required"
		}
	}
	if len(missing) > 0 {
		respondFieldErrors(w, "body", missing)
		return
	}

	title := cases.Title(language.English)
	topic := req.Topic
	if topic == "" {
		topic = "how we help " + req.Industry + " teams grow"
	}
	points := ""
	if len(req.KeyPoints) > 0 {
		points = " Key points: " + strings.Join(req.KeyPoints, "; ") + "."
	}

	variations := []string{
		fmt.Sprintf("%s leaders in %s: %s.%s", title.String(req.TargetAudience), req.Industry, topic, points),
		fmt.Sprintf("Are you one of the %s in %s asking about %s? Here is what works.%s", req.TargetAudience, req.Industry, topic, points),
		fmt.Sprintf("A %s note for %s: %s. Let's talk.%s", strings.ToLower(req.Tone), req.TargetAudience, topic, points),
	}
	if req.MaxLength != nil && *req.MaxLength > 0 {
		for i, v := range variations {
			variations[i] = truncateRunes(v, *req.MaxLength)
		}
	}

	metadata := map[string]any{
		"topic":           topic,
		"target_audience": req.TargetAudience,
		"industry":        req.Industry,
		"generated_at":    s.now().UTC().Format(time.RFC3339),
	}
	if tips, ok := platformTips[strings.ToLower(req.Platform)]; ok {
		metadata["tips"] = tips
	}

	respondJSON(w, http.StatusOK, domain.ContentGenerateResponse{
		Variations: variations,
		Platform:   req.Platform,
		Tone:       req.Tone,
		Metadata:   metadata,
	})
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Could not read request body")
		return
	}
	var req domain.InsightRequest
	if err := json.Unmarshal(body, &req); err != nil || req.InsightType == "" {
		respondFieldErrors(w, "body", map[string]string{"insight_type": "field required"})
		return
	}

	end := s.now().UTC()
	if req.EndDate != nil {
		end = req.EndDate.UTC()
	}

	var resp domain.InsightResponse
	switch req.InsightType {
	case domain.InsightTypeWeeklySales:
		start := end.AddDate(0, 0, -7)
		if req.StartDate != nil {
			start = req.StartDate.UTC()
		}
		resp = s.weeklySales(start, end)
	case domain.InsightTypeCampaignPerformance:
		resp = s.campaignInsight()
	case domain.InsightTypeRevenueForecast:
		resp = s.revenueForecast()
	case domain.InsightTypeLeadAnalysis:
		resp = s.leadAnalysis()
	default:
		respondDetail(w, http.StatusBadRequest, fmt.Sprintf("Unknown insight type: %s", req.InsightType))
		return
	}

	resp.InsightType = req.InsightType
	resp.GeneratedAt = domain.NewTimestamp(s.now().UTC())
	s.logger.Debug("generated insight", zap.String("insight_type", string(req.InsightType)))
	respondJSON(w, http.StatusOK, resp)
}

func within(ts *domain.Timestamp, start, end time.Time) bool {
	if ts == nil {
		return false
	}
	return !ts.Time.Before(start) && !ts.Time.After(end)
}

func (s *Server) weeklySales(start, end time.Time) domain.InsightResponse {
	var won, lost []domain.SalesRecord
	var newLeads int
	s.store.read(func(db *tables) {
		won = db.sales.list(func(rec domain.SalesRecord) bool {
			return rec.Stage == domain.DealStageClosedWon && within(rec.ActualCloseDate, start, end)
		})
		lost = db.sales.list(func(rec domain.SalesRecord) bool {
			updated := rec.UpdatedAt
			return rec.Stage == domain.DealStageClosedLost && within(&updated, start, end)
		})
		newLeads = len(db.leads.list(func(l domain.Lead) bool {
			created := l.CreatedAt
			return within(&created, start, end)
		}))
	})

	revenue := sumAmounts(won).Round(2).InexactFloat64()
	var avgDeal, winRate float64
	if len(won) > 0 {
		avgDeal = round2(revenue / float64(len(won)))
	}
	if closed := len(won) + len(lost); closed > 0 {
		winRate = round2(float64(len(won)) / float64(closed) * 100)
	}

	recommendations := []string{"Follow up on every open proposal before Friday"}
	if winRate < 50 && len(lost) > 0 {
		recommendations = append(recommendations, "Review lost deals for common objections")
	}
	if newLeads == 0 {
		recommendations = append(recommendations, "Top up the funnel: no new leads this period")
	}

	return domain.InsightResponse{
		Title: "Weekly Sales Summary",
		Summary: fmt.Sprintf("Between %s and %s the team closed %d deals worth %.2f and lost %d.",
			start.Format("2006-01-02"), end.Format("2006-01-02"), len(won), revenue, len(lost)),
		KeyMetrics: map[string]any{
			"total_revenue": revenue,
			"deals_closed":  len(won),
			"deals_lost":    len(lost),
			"win_rate":      winRate,
			"avg_deal_size": avgDeal,
			"new_leads":     newLeads,
		},
		Recommendations: recommendations,
	}
}

func (s *Server) campaignInsight() domain.InsightResponse {
	var campaigns []domain.Campaign
	s.store.read(func(db *tables) {
		campaigns = db.campaigns.list(func(c domain.Campaign) bool {
			return c.Status == domain.CampaignStatusActive || c.Status == domain.CampaignStatusCompleted
		})
	})

	var spent, revenue, roiSum float64
	var leads int64
	best := ""
	bestROI := 0.0
	for i, c := range campaigns {
		spent += c.Spent
		revenue += c.RevenueAttributed
		leads += c.LeadsGenerated
		roiSum += c.ROI
		if i == 0 || c.ROI > bestROI {
			best, bestROI = c.Name, c.ROI
		}
	}
	var avgROI float64
	if len(campaigns) > 0 {
		avgROI = round2(roiSum / float64(len(campaigns)))
	}

	metrics := map[string]any{
		"total_campaigns": len(campaigns),
		"total_spent":     round2(spent),
		"total_revenue":   round2(revenue),
		"total_leads":     leads,
		"average_roi":     avgROI,
	}
	recommendations := []string{"Shift budget toward the highest-ROI channel"}
	if best != "" {
		metrics["top_performers"] = best
		recommendations = append(recommendations, fmt.Sprintf("Study what made %q work and repeat it", best))
	}

	return domain.InsightResponse{
		Title:           "Campaign Performance Summary",
		Summary:         fmt.Sprintf("%d active or completed campaigns spent %.2f and brought in %d leads.", len(campaigns), spent, leads),
		KeyMetrics:      metrics,
		Recommendations: recommendations,
	}
}

// revenueForecast weights each open deal by its win probability
func (s *Server) revenueForecast() domain.InsightResponse {
	var open []domain.SalesRecord
	s.store.read(func(db *tables) {
		open = db.sales.list(func(rec domain.SalesRecord) bool { return !rec.Stage.IsClosed() })
	})

	var weighted float64
	for _, rec := range open {
		weighted += rec.Amount * rec.Probability / 100
	}
	weighted = round2(weighted)
	total := sumAmounts(open).Round(2).InexactFloat64()

	confidence := "medium"
	switch {
	case len(open) >= 10:
		confidence = "high"
	case len(open) < 3:
		confidence = "low"
	}

	return domain.InsightResponse{
		Title:   "Quarterly Revenue Forecast",
		Summary: fmt.Sprintf("%d open deals worth %.2f give a probability-weighted forecast of %.2f.", len(open), total, weighted),
		KeyMetrics: map[string]any{
			"forecast_low":     round2(weighted * 0.8),
			"forecast_mid":     weighted,
			"forecast_high":    round2(weighted * 1.2),
			"confidence_level": confidence,
			"pipeline_value":   weighted,
			"open_deals":       len(open),
		},
		Recommendations: []string{"Move stalled negotiations to a decision this quarter"},
	}
}

func (s *Server) leadAnalysis() domain.InsightResponse {
	var leads []domain.Lead
	s.store.read(func(db *tables) {
		leads = db.leads.list(nil)
	})

	var scoreSum float64
	high := 0
	byStatus := map[string]any{}
	bySource := map[string]any{}
	for _, l := range leads {
		if l.AIScore != nil {
			scoreSum += *l.AIScore
			if *l.AIScore >= 70 {
				high++
			}
		}
		byStatus[string(l.Status)] = countOf(byStatus[string(l.Status)]) + 1
		bySource[string(l.Source)] = countOf(bySource[string(l.Source)]) + 1
	}
	var avg float64
	if len(leads) > 0 {
		avg = round2(scoreSum / float64(len(leads)))
	}

	return domain.InsightResponse{
		Title:   "Lead Funnel Analysis",
		Summary: fmt.Sprintf("%d leads with an average AI score of %.1f; %d score 70 or higher.", len(leads), avg, high),
		KeyMetrics: map[string]any{
			"total_leads":         len(leads),
			"avg_ai_score":        avg,
			"high_score_count":    high,
			"status_distribution": byStatus,
			"source_distribution": bySource,
		},
		Recommendations: []string{"Score unscored leads before the weekly pipeline review"},
	}
}

func countOf(v any) int {
	n, _ := v.(int)
	return n
}

func (s *Server) insightTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, domain.InsightTypesResponse{InsightTypes: domain.BuiltinInsightTypes})
}
