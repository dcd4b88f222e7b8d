package domain_test

import (
	"errors"
	"testing"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status domain.LeadStatus
		want   bool
	}{
		{name: "new", status: domain.LeadStatusNew, want: true},
		{name: "contacted", status: domain.LeadStatusContacted, want: true},
		{name: "qualified", status: domain.LeadStatusQualified, want: true},
		{name: "proposal", status: domain.LeadStatusProposal, want: true},
		{name: "negotiation", status: domain.LeadStatusNegotiation, want: true},
		{name: "closed_won", status: domain.LeadStatusClosedWon, want: true},
		{name: "closed_lost", status: domain.LeadStatusClosedLost, want: true},
		{name: "empty string is invalid", status: domain.LeadStatus(""), want: false},
		{name: "unknown value is invalid", status: domain.LeadStatus("archived"), want: false},
		{name: "case-sensitive - New is invalid", status: domain.LeadStatus("New"), want: false},
		{name: "display label is invalid", status: domain.LeadStatus("closed won"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsValid())
		})
	}
}

func TestLeadStatuses_ContainsAllSevenInOrder(t *testing.T) {
	require.Len(t, domain.LeadStatuses, 7)
	assert.Equal(t, domain.LeadStatusNew, domain.LeadStatuses[0])
	assert.Equal(t, domain.LeadStatusClosedLost, domain.LeadStatuses[6])
	for _, s := range domain.LeadStatuses {
		assert.True(t, s.IsValid(), s)
	}
}

func TestParseLeadStatus(t *testing.T) {
	status, err := domain.ParseLeadStatus("qualified")
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusQualified, status)

	status, err = domain.ParseLeadStatus("bogus")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidEnum))
	assert.Empty(t, status)
}

func TestParseOtherEnums(t *testing.T) {
	_, err := domain.ParseCustomerStatus("churned")
	assert.NoError(t, err)
	_, err = domain.ParseCustomerStatus("lead")
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)

	_, err = domain.ParseCampaignStatus("paused")
	assert.NoError(t, err)
	_, err = domain.ParseCampaignStatus("running")
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)

	_, err = domain.ParseDealStage("closed_lost")
	assert.NoError(t, err)
	_, err = domain.ParseDealStage("won")
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

func TestDealStage_IsClosed(t *testing.T) {
	assert.True(t, domain.DealStageClosedWon.IsClosed())
	assert.True(t, domain.DealStageClosedLost.IsClosed())
	assert.False(t, domain.DealStageProspecting.IsClosed())
	assert.False(t, domain.DealStageNegotiation.IsClosed())
	assert.False(t, domain.DealStage("unknown").IsClosed())
}

func TestOtherEnums_IsValid(t *testing.T) {
	assert.True(t, domain.UserRoleMarketing.IsValid())
	assert.False(t, domain.UserRole("owner").IsValid())
	assert.True(t, domain.LeadSourceTradeShow.IsValid())
	assert.False(t, domain.LeadSource("tv").IsValid())
	assert.True(t, domain.CampaignTypeWebinar.IsValid())
	assert.False(t, domain.CampaignType("radio").IsValid())
}

func TestInsightType_IsKnown(t *testing.T) {
	assert.True(t, domain.InsightTypeWeeklySales.IsKnown())
	assert.True(t, domain.InsightTypeLeadAnalysis.IsKnown())
	assert.False(t, domain.InsightType("churn_risk").IsKnown())
	assert.Len(t, domain.BuiltinInsightTypes, 4)
}
