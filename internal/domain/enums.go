package domain

import "fmt"

// UserRole represents the role a user holds in the sales organisation
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleSales     UserRole = "sales"
	UserRoleMarketing UserRole = "marketing"
)

// IsValid checks if the UserRole is a valid enum value
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleSales, UserRoleMarketing:
		return true
	}
	return false
}

// LeadStatus represents where a lead is in the sales funnel.
// The ordering below is advisory; the client never enforces transitions.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusProposal    LeadStatus = "proposal"
	LeadStatusNegotiation LeadStatus = "negotiation"
	LeadStatusClosedWon   LeadStatus = "closed_won"
	LeadStatusClosedLost  LeadStatus = "closed_lost"
)

// LeadStatuses lists every lead status in funnel order
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusProposal,
	LeadStatusNegotiation,
	LeadStatusClosedWon,
	LeadStatusClosedLost,
}

// IsValid checks if the LeadStatus is one of the seven known literals
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusProposal,
		LeadStatusNegotiation, LeadStatusClosedWon, LeadStatusClosedLost:
		return true
	}
	return false
}

// ParseLeadStatus converts a raw string into a LeadStatus, rejecting unknown values
func ParseLeadStatus(s string) (LeadStatus, error) {
	status := LeadStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: lead status %q", ErrInvalidEnum, s)
	}
	return status, nil
}

// LeadSource is informational only
type LeadSource string

const (
	LeadSourceWebsite       LeadSource = "website"
	LeadSourceReferral      LeadSource = "referral"
	LeadSourceLinkedIn      LeadSource = "linkedin"
	LeadSourceColdCall      LeadSource = "cold_call"
	LeadSourceEmailCampaign LeadSource = "email_campaign"
	LeadSourceTradeShow     LeadSource = "trade_show"
	LeadSourceOther         LeadSource = "other"
)

// IsValid checks if the LeadSource is a valid enum value
func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceWebsite, LeadSourceReferral, LeadSourceLinkedIn, LeadSourceColdCall,
		LeadSourceEmailCampaign, LeadSourceTradeShow, LeadSourceOther:
		return true
	}
	return false
}

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
	CustomerStatusChurned  CustomerStatus = "churned"
)

// CustomerStatuses lists every customer status
var CustomerStatuses = []CustomerStatus{
	CustomerStatusActive,
	CustomerStatusInactive,
	CustomerStatusChurned,
}

// IsValid checks if the CustomerStatus is a valid enum value
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusChurned:
		return true
	}
	return false
}

// ParseCustomerStatus converts a raw string into a CustomerStatus
func ParseCustomerStatus(s string) (CustomerStatus, error) {
	status := CustomerStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: customer status %q", ErrInvalidEnum, s)
	}
	return status, nil
}

// CampaignStatus represents the lifecycle state of a campaign
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// IsValid checks if the CampaignStatus is a valid enum value
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused,
		CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	}
	return false
}

// ParseCampaignStatus converts a raw string into a CampaignStatus
func ParseCampaignStatus(s string) (CampaignStatus, error) {
	status := CampaignStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: campaign status %q", ErrInvalidEnum, s)
	}
	return status, nil
}

// CampaignType represents the marketing channel of a campaign
type CampaignType string

const (
	CampaignTypeEmail       CampaignType = "email"
	CampaignTypeSocialMedia CampaignType = "social_media"
	CampaignTypePPC         CampaignType = "ppc"
	CampaignTypeContent     CampaignType = "content"
	CampaignTypeEvent       CampaignType = "event"
	CampaignTypeWebinar     CampaignType = "webinar"
	CampaignTypeOther       CampaignType = "other"
)

// IsValid checks if the CampaignType is a valid enum value
func (t CampaignType) IsValid() bool {
	switch t {
	case CampaignTypeEmail, CampaignTypeSocialMedia, CampaignTypePPC, CampaignTypeContent,
		CampaignTypeEvent, CampaignTypeWebinar, CampaignTypeOther:
		return true
	}
	return false
}

// DealStage represents the stage of a deal in the sales pipeline
type DealStage string

const (
	DealStageProspecting   DealStage = "prospecting"
	DealStageQualification DealStage = "qualification"
	DealStageProposal      DealStage = "proposal"
	DealStageNegotiation   DealStage = "negotiation"
	DealStageClosedWon     DealStage = "closed_won"
	DealStageClosedLost    DealStage = "closed_lost"
)

// IsValid checks if the DealStage is a valid enum value
func (s DealStage) IsValid() bool {
	switch s {
	case DealStageProspecting, DealStageQualification, DealStageProposal,
		DealStageNegotiation, DealStageClosedWon, DealStageClosedLost:
		return true
	}
	return false
}

// IsClosed reports whether the deal has been won or lost
func (s DealStage) IsClosed() bool {
	return s == DealStageClosedWon || s == DealStageClosedLost
}

// ParseDealStage converts a raw string into a DealStage
func ParseDealStage(s string) (DealStage, error) {
	stage := DealStage(s)
	if !stage.IsValid() {
		return "", fmt.Errorf("%w: deal stage %q", ErrInvalidEnum, s)
	}
	return stage, nil
}

// InsightType identifies an insight generator on the server.
// The set is extensible, so unknown identifiers are passed through.
type InsightType string

const (
	InsightTypeWeeklySales         InsightType = "weekly_sales"
	InsightTypeCampaignPerformance InsightType = "campaign_performance"
	InsightTypeRevenueForecast     InsightType = "revenue_forecast"
	InsightTypeLeadAnalysis        InsightType = "lead_analysis"
)

// InsightTypeInfo describes a built-in insight type for selection menus
type InsightTypeInfo struct {
	ID          InsightType `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

// BuiltinInsightTypes are the insight types every server is expected to support
var BuiltinInsightTypes = []InsightTypeInfo{
	{ID: InsightTypeWeeklySales, Name: "Weekly Sales Summary", Description: "AI-generated summary of your weekly sales performance"},
	{ID: InsightTypeCampaignPerformance, Name: "Campaign Performance", Description: "Analysis of your marketing campaign effectiveness"},
	{ID: InsightTypeRevenueForecast, Name: "Revenue Forecast", Description: "Predictive forecast for next quarter revenue"},
	{ID: InsightTypeLeadAnalysis, Name: "Lead Funnel Analysis", Description: "Analysis of your lead sources and conversion funnel"},
}

// IsKnown reports whether the insight type is one of the built-in identifiers
func (t InsightType) IsKnown() bool {
	for _, info := range BuiltinInsightTypes {
		if info.ID == t {
			return true
		}
	}
	return false
}

// ChatRole identifies the author of a chat turn
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)
