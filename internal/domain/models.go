package domain

// Entities mirror the JSON the sales API returns. The server owns every record;
// the client holds read-mostly copies and never generates identifiers.

// User represents an authenticated dashboard user
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      UserRole  `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Lead represents a prospective customer
type Lead struct {
	ID               int64      `json:"id"`
	CompanyName      string     `json:"company_name"`
	ContactName      string     `json:"contact_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	JobTitle         string     `json:"job_title,omitempty"`
	Industry         string     `json:"industry,omitempty"`
	CompanySize      string     `json:"company_size,omitempty"`
	AnnualRevenue    *float64   `json:"annual_revenue,omitempty"`
	Location         string     `json:"location,omitempty"`
	Status           LeadStatus `json:"status"`
	Source           LeadSource `json:"source"`
	AIScore          *float64   `json:"ai_score,omitempty"`
	AIScoreReasoning string     `json:"ai_score_reasoning,omitempty"`
	EstimatedValue   *float64   `json:"estimated_value,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	AssignedTo       *int64     `json:"assigned_to,omitempty"`
	CreatedAt        Timestamp  `json:"created_at"`
	UpdatedAt        Timestamp  `json:"updated_at"`
}

// HasScore reports whether the lead has ever been scored
func (l *Lead) HasScore() bool {
	return l.AIScore != nil
}

// ScoreInRange reports whether a present AI score lies in [0,100].
// Unscored leads are considered in range. Out-of-range scores are never clamped.
func (l *Lead) ScoreInRange() bool {
	if l.AIScore == nil {
		return true
	}
	return *l.AIScore >= 0 && *l.AIScore <= 100
}

// Customer represents a converted, paying organisation
type Customer struct {
	ID             int64          `json:"id"`
	LeadID         *int64         `json:"lead_id,omitempty"`
	CompanyName    string         `json:"company_name"`
	ContactName    string         `json:"contact_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	Industry       string         `json:"industry,omitempty"`
	CompanySize    string         `json:"company_size,omitempty"`
	Location       string         `json:"location,omitempty"`
	Status         CustomerStatus `json:"status"`
	LifetimeValue  float64        `json:"lifetime_value"`
	TotalPurchases int            `json:"total_purchases"`
	CreatedAt      Timestamp      `json:"created_at"`
	UpdatedAt      Timestamp      `json:"updated_at"`
}

// Campaign represents a marketing campaign.
// ClickThroughRate, ConversionRate, CostPerLead and ROI are computed by the server
// and are authoritative; the client only formats them.
type Campaign struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	CampaignType      CampaignType   `json:"campaign_type"`
	Status            CampaignStatus `json:"status"`
	TargetAudience    string         `json:"target_audience,omitempty"`
	TargetIndustry    string         `json:"target_industry,omitempty"`
	Budget            float64        `json:"budget"`
	Spent             float64        `json:"spent"`
	Impressions       int64          `json:"impressions"`
	Clicks            int64          `json:"clicks"`
	Conversions       int64          `json:"conversions"`
	LeadsGenerated    int64          `json:"leads_generated"`
	RevenueAttributed float64        `json:"revenue_attributed"`
	ClickThroughRate  float64        `json:"click_through_rate"`
	ConversionRate    float64        `json:"conversion_rate"`
	CostPerLead       float64        `json:"cost_per_lead"`
	ROI               float64        `json:"roi"`
	StartDate         *Timestamp     `json:"start_date,omitempty"`
	EndDate           *Timestamp     `json:"end_date,omitempty"`
	CreatedAt         Timestamp      `json:"created_at"`
	UpdatedAt         Timestamp      `json:"updated_at"`
}

// Overspent reports whether more than the budget has been spent.
// Overspend is a valid, displayable state.
func (c *Campaign) Overspent() bool {
	return c.Spent > c.Budget
}

// SalesRecord represents a deal in the sales pipeline
type SalesRecord struct {
	ID              int64      `json:"id"`
	CustomerID      int64      `json:"customer_id"`
	SalesRepID      *int64     `json:"sales_rep_id,omitempty"`
	DealName        string     `json:"deal_name"`
	Description     string     `json:"description,omitempty"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	Stage           DealStage  `json:"stage"`
	Probability     float64    `json:"probability"`
	ProductName     string     `json:"product_name,omitempty"`
	Quantity        int        `json:"quantity"`
	CloseDate       *Timestamp `json:"close_date,omitempty"`
	ActualCloseDate *Timestamp `json:"actual_close_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       Timestamp  `json:"created_at"`
	UpdatedAt       Timestamp  `json:"updated_at"`
}

// ProbabilityInRange reports whether the win probability lies in [0,100]
func (s *SalesRecord) ProbabilityInRange() bool {
	return s.Probability >= 0 && s.Probability <= 100
}

// KPIs is a server-computed snapshot of headline metrics
type KPIs struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalLeads      int64   `json:"total_leads"`
	ConvertedLeads  int64   `json:"converted_leads"`
	ConversionRate  float64 `json:"conversion_rate"`
	ActiveCampaigns int64   `json:"active_campaigns"`
	TotalCustomers  int64   `json:"total_customers"`
	PipelineValue   float64 `json:"pipeline_value"`
	AverageDealSize float64 `json:"average_deal_size"`
}

// RevenuePoint is one month of closed-won revenue
type RevenuePoint struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

// FunnelStage is the number of leads at one funnel stage
type FunnelStage struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
}

// SourceCount is the number of leads from one source
type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// CampaignPerformance is the summary row returned by the campaign performance endpoint
type CampaignPerformance struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Type             CampaignType   `json:"type"`
	Status           CampaignStatus `json:"status"`
	Budget           float64        `json:"budget"`
	Spent            float64        `json:"spent"`
	Impressions      int64          `json:"impressions"`
	Clicks           int64          `json:"clicks"`
	Conversions      int64          `json:"conversions"`
	LeadsGenerated   int64          `json:"leads_generated"`
	ROI              float64        `json:"roi"`
	ClickThroughRate float64        `json:"click_through_rate"`
	ConversionRate   float64        `json:"conversion_rate"`
}

// RepPerformance is closed-won revenue per sales representative
type RepPerformance struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	DealsCount   int64   `json:"deals_count"`
	TotalRevenue float64 `json:"total_revenue"`
}
