package devserver

import (
	"net/http"
	"strconv"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

// deriveMetrics recomputes the rate fields. A zero denominator leaves the
// rate at zero.
func deriveMetrics(c *domain.Campaign) {
	c.ClickThroughRate, c.ConversionRate, c.CostPerLead, c.ROI = 0, 0, 0, 0
	if c.Impressions > 0 {
		c.ClickThroughRate = float64(c.Clicks) / float64(c.Impressions) * 100
	}
	if c.Clicks > 0 {
		c.ConversionRate = float64(c.Conversions) / float64(c.Clicks) * 100
	}
	if c.LeadsGenerated > 0 {
		c.CostPerLead = c.Spent / float64(c.LeadsGenerated)
	}
	if c.Spent > 0 {
		c.ROI = (c.RevenueAttributed - c.Spent) / c.Spent * 100
	}
}

func (s *Server) listCampaigns(w http.ResponseWriter, r *http.Request) {
	p, ok := pageParams(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	status, kind := q.Get("status"), q.Get("campaign_type")

	var campaigns []domain.Campaign
	s.store.read(func(db *tables) {
		campaigns = db.campaigns.list(func(c domain.Campaign) bool {
			if status != "" && string(c.Status) != status {
				return false
			}
			return kind == "" || string(c.CampaignType) == kind
		})
	})
	respondJSON(w, http.StatusOK, paginate(campaigns, p))
}

func (s *Server) getCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var campaign domain.Campaign
	s.store.read(func(db *tables) {
		campaign, ok = db.campaigns.get(id)
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Campaign not found")
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}

func (s *Server) createCampaign(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	campaign := domain.Campaign{
		Name:           req.Name,
		Description:    req.Description,
		CampaignType:   req.CampaignType,
		Status:         req.Status,
		TargetAudience: req.TargetAudience,
		TargetIndustry: req.TargetIndustry,
		Budget:         req.Budget,
		StartDate:      optionalTimestamp(req.StartDate),
		EndDate:        optionalTimestamp(req.EndDate),
	}
	if campaign.Status == "" {
		campaign.Status = domain.CampaignStatusDraft
	}
	s.store.write(func(db *tables) {
		now := s.store.stamp()
		campaign.CreatedAt, campaign.UpdatedAt = now, now
		campaign = db.campaigns.insert(campaign, func(c *domain.Campaign, id int64) { c.ID = id })
	})
	respondJSON(w, http.StatusCreated, campaign)
}

func (s *Server) updateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateCampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	campaign, ok := s.modifyCampaign(id, func(c *domain.Campaign) {
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if req.Status != nil {
			c.Status = *req.Status
		}
		if req.TargetAudience != nil {
			c.TargetAudience = *req.TargetAudience
		}
		if req.TargetIndustry != nil {
			c.TargetIndustry = *req.TargetIndustry
		}
		if req.Budget != nil {
			c.Budget = *req.Budget
		}
		if req.Spent != nil {
			c.Spent = *req.Spent
		}
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Campaign not found")
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}

// updateCampaignMetrics sets the raw counters from query parameters and
// recomputes the derived rates
func (s *Server) updateCampaignMetrics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	counters := map[string]*int64{}
	amounts := map[string]*float64{}
	bad := map[string]string{}
	for _, name := range []string{"impressions", "clicks", "conversions", "leads_generated"} {
		if raw := q.Get(name); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				bad[name] = "value is not a valid integer"
				continue
			}
			counters[name] = &v
		}
	}
	for _, name := range []string{"revenue_attributed", "spent"} {
		if raw := q.Get(name); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				bad[name] = "value is not a valid float"
				continue
			}
			amounts[name] = &v
		}
	}
	if len(bad) > 0 {
		respondFieldErrors(w, "query", bad)
		return
	}

	campaign, ok := s.modifyCampaign(id, func(c *domain.Campaign) {
		setIf(&c.Impressions, counters["impressions"])
		setIf(&c.Clicks, counters["clicks"])
		setIf(&c.Conversions, counters["conversions"])
		setIf(&c.LeadsGenerated, counters["leads_generated"])
		setIf(&c.RevenueAttributed, amounts["revenue_attributed"])
		setIf(&c.Spent, amounts["spent"])
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Campaign not found")
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// modifyCampaign applies fn and recomputes the derived metrics
func (s *Server) modifyCampaign(id int64, fn func(*domain.Campaign)) (domain.Campaign, bool) {
	var campaign domain.Campaign
	var ok bool
	s.store.write(func(db *tables) {
		if campaign, ok = db.campaigns.get(id); !ok {
			return
		}
		fn(&campaign)
		deriveMetrics(&campaign)
		campaign.UpdatedAt = s.store.stamp()
		db.campaigns.put(id, campaign)
	})
	return campaign, ok
}

func (s *Server) deleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.store.write(func(db *tables) {
		ok = db.campaigns.remove(id)
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Campaign not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
