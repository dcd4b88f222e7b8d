package domain

import (
	"sort"
	"strings"
	"time"
)

// Auth

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required"`
	FullName string   `json:"full_name" validate:"required,max=200"`
	Role     UserRole `json:"role" validate:"required,oneof=admin sales marketing"`
}

// AuthResponse is returned by login and registration
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Leads

type CreateLeadRequest struct {
	CompanyName    string     `json:"company_name" validate:"required,max=200"`
	ContactName    string     `json:"contact_name" validate:"required,max=200"`
	Email          string     `json:"email" validate:"required,email"`
	Phone          string     `json:"phone,omitempty"`
	JobTitle       string     `json:"job_title,omitempty"`
	Industry       string     `json:"industry,omitempty"`
	CompanySize    string     `json:"company_size,omitempty"`
	AnnualRevenue  *float64   `json:"annual_revenue,omitempty" validate:"omitempty,gte=0"`
	Location       string     `json:"location,omitempty"`
	Status         LeadStatus `json:"status,omitempty" validate:"omitempty,oneof=new contacted qualified proposal negotiation closed_won closed_lost"`
	Source         LeadSource `json:"source,omitempty"`
	EstimatedValue *float64   `json:"estimated_value,omitempty" validate:"omitempty,gte=0"`
	Notes          string     `json:"notes,omitempty"`
}

// UpdateLeadRequest is a partial update; nil fields are left unchanged
type UpdateLeadRequest struct {
	CompanyName    *string     `json:"company_name,omitempty" validate:"omitempty,max=200"`
	ContactName    *string     `json:"contact_name,omitempty" validate:"omitempty,max=200"`
	Email          *string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string     `json:"phone,omitempty"`
	Industry       *string     `json:"industry,omitempty"`
	Status         *LeadStatus `json:"status,omitempty" validate:"omitempty,oneof=new contacted qualified proposal negotiation closed_won closed_lost"`
	Source         *LeadSource `json:"source,omitempty"`
	EstimatedValue *float64    `json:"estimated_value,omitempty" validate:"omitempty,gte=0"`
	Notes          *string     `json:"notes,omitempty"`
	AssignedTo     *int64      `json:"assigned_to,omitempty"`
}

// ImportRowError describes one rejected CSV row
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult is returned by the bulk CSV import
type ImportResult struct {
	Message      string           `json:"message,omitempty"`
	CreatedCount int              `json:"created_count"`
	Errors       []ImportRowError `json:"errors"`
}

// Customers

type CreateCustomerRequest struct {
	LeadID        *int64         `json:"lead_id,omitempty"`
	CompanyName   string         `json:"company_name" validate:"required,max=200"`
	ContactName   string         `json:"contact_name" validate:"required,max=200"`
	Email         string         `json:"email" validate:"required,email"`
	Phone         string         `json:"phone,omitempty"`
	Industry      string         `json:"industry,omitempty"`
	CompanySize   string         `json:"company_size,omitempty"`
	Location      string         `json:"location,omitempty"`
	Status        CustomerStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive churned"`
	LifetimeValue float64        `json:"lifetime_value,omitempty"`
}

type UpdateCustomerRequest struct {
	CompanyName    *string         `json:"company_name,omitempty" validate:"omitempty,max=200"`
	ContactName    *string         `json:"contact_name,omitempty" validate:"omitempty,max=200"`
	Email          *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string         `json:"phone,omitempty"`
	Industry       *string         `json:"industry,omitempty"`
	Status         *CustomerStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive churned"`
	LifetimeValue  *float64        `json:"lifetime_value,omitempty"`
	TotalPurchases *int            `json:"total_purchases,omitempty"`
}

// Campaigns

type CreateCampaignRequest struct {
	Name           string         `json:"name" validate:"required,max=200"`
	Description    string         `json:"description,omitempty"`
	CampaignType   CampaignType   `json:"campaign_type" validate:"required,oneof=email social_media ppc content event webinar other"`
	Status         CampaignStatus `json:"status,omitempty" validate:"omitempty,oneof=draft active paused completed cancelled"`
	TargetAudience string         `json:"target_audience,omitempty"`
	TargetIndustry string         `json:"target_industry,omitempty"`
	Budget         float64        `json:"budget"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
}

type UpdateCampaignRequest struct {
	Name           *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	Description    *string         `json:"description,omitempty"`
	Status         *CampaignStatus `json:"status,omitempty" validate:"omitempty,oneof=draft active paused completed cancelled"`
	TargetAudience *string         `json:"target_audience,omitempty"`
	TargetIndustry *string         `json:"target_industry,omitempty"`
	Budget         *float64        `json:"budget,omitempty"`
	Spent          *float64        `json:"spent,omitempty"`
}

// Sales records

type CreateSalesRecordRequest struct {
	CustomerID  int64      `json:"customer_id" validate:"required,gt=0"`
	DealName    string     `json:"deal_name" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency,omitempty" validate:"omitempty,len=3"`
	Stage       DealStage  `json:"stage,omitempty" validate:"omitempty,oneof=prospecting qualification proposal negotiation closed_won closed_lost"`
	Probability float64    `json:"probability" validate:"gte=0,lte=100"`
	ProductName string     `json:"product_name,omitempty"`
	Quantity    int        `json:"quantity,omitempty"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

type UpdateSalesRecordRequest struct {
	DealName    *string    `json:"deal_name,omitempty" validate:"omitempty,max=200"`
	Amount      *float64   `json:"amount,omitempty"`
	Stage       *DealStage `json:"stage,omitempty" validate:"omitempty,oneof=prospecting qualification proposal negotiation closed_won closed_lost"`
	Probability *float64   `json:"probability,omitempty" validate:"omitempty,gte=0,lte=100"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// AI features

type LeadScoreRequest struct {
	LeadID int64 `json:"lead_id"`
}

// LeadScoreResponse holds the result of scoring a lead.
// Score is on a 0-100 scale, Probability on 0-1.
type LeadScoreResponse struct {
	LeadID          int64    `json:"lead_id"`
	Score           float64  `json:"score"`
	Probability     float64  `json:"probability"`
	Reasoning       string   `json:"reasoning"`
	Factors         []string `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

// ChatRequest omits conversation_id entirely on the first turn
type ChatRequest struct {
	Message        string  `json:"message"`
	ConversationID *string `json:"conversation_id,omitempty"`
}

type ChatResponse struct {
	Answer         string           `json:"answer"`
	SQLQuery       *string          `json:"sql_query,omitempty"`
	Data           []map[string]any `json:"data,omitempty"`
	ConversationID string           `json:"conversation_id"`
}

type ContentGenerateRequest struct {
	TargetAudience string   `json:"target_audience"`
	Industry       string   `json:"industry"`
	Tone           string   `json:"tone"`
	Platform       string   `json:"platform"`
	Topic          string   `json:"topic,omitempty"`
	KeyPoints      []string `json:"key_points,omitempty"`
	MaxLength      *int     `json:"max_length,omitempty"`
}

type ContentGenerateResponse struct {
	Variations []string       `json:"variations"`
	Platform   string         `json:"platform"`
	Tone       string         `json:"tone"`
	Metadata   map[string]any `json:"metadata"`
}

// Tips returns the optional "tips" list from the metadata bag.
// ok is false when the key is absent or not a list; non-string entries are skipped.
func (r *ContentGenerateResponse) Tips() (tips []string, ok bool) {
	raw, present := r.Metadata["tips"]
	if !present {
		return nil, false
	}
	items, isList := raw.([]any)
	if !isList {
		return nil, false
	}
	for _, item := range items {
		if s, isString := item.(string); isString {
			tips = append(tips, s)
		}
	}
	return tips, true
}

type InsightRequest struct {
	InsightType InsightType `json:"insight_type"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
}

type InsightResponse struct {
	InsightType     InsightType    `json:"insight_type"`
	Title           string         `json:"title"`
	Summary         string         `json:"summary"`
	KeyMetrics      map[string]any `json:"key_metrics"`
	Recommendations []string       `json:"recommendations"`
	GeneratedAt     Timestamp      `json:"generated_at"`
}

// KeyMetric is one displayable entry of an insight's key-metric map
type KeyMetric struct {
	Key      string
	Label    string
	Number   float64
	Text     string
	IsNumber bool
}

// DefaultDisplayMetrics is how many key metrics an insight card shows
const DefaultDisplayMetrics = 8

// DisplayMetrics returns the numeric and textual key metrics ordered by key.
// Values of any other shape are ignored. limit <= 0 means no limit.
func (r *InsightResponse) DisplayMetrics(limit int) []KeyMetric {
	keys := make([]string, 0, len(r.KeyMetrics))
	for k := range r.KeyMetrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	metrics := make([]KeyMetric, 0, len(keys))
	for _, k := range keys {
		m := KeyMetric{Key: k, Label: strings.ReplaceAll(k, "_", " ")}
		switch v := r.KeyMetrics[k].(type) {
		case float64:
			m.Number, m.IsNumber = v, true
		case int:
			m.Number, m.IsNumber = float64(v), true
		case int64:
			m.Number, m.IsNumber = float64(v), true
		case string:
			m.Text = v
		default:
			continue
		}
		metrics = append(metrics, m)
		if limit > 0 && len(metrics) == limit {
			break
		}
	}
	return metrics
}

// InsightTypesResponse lists the insight generators offered by the server
type InsightTypesResponse struct {
	InsightTypes []InsightTypeInfo `json:"insight_types"`
}
