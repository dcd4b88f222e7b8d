package filter_test

import (
	"testing"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/straye-as/sales-intelligence/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLeads() []domain.Lead {
	return []domain.Lead{
		{ID: 1, CompanyName: "Acme Corp", ContactName: "Ann Lee", Email: "ann@acme.io", Status: domain.LeadStatusNew},
		{ID: 2, CompanyName: "Zenith", ContactName: "Bob Stone", Email: "bob@zenith.com", Status: domain.LeadStatusQualified},
		{ID: 3, CompanyName: "Globex", ContactName: "Cara Acmeson", Email: "cara@globex.com", Status: domain.LeadStatusNew},
	}
}

func ids(leads []domain.Lead) []int64 {
	out := make([]int64, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	leads := []domain.Lead{{ID: 1, CompanyName: "Acme Corp"}, {ID: 2, CompanyName: "Zenith"}}

	for _, term := range []string{"acme", "ACME", "cme", "Acme Corp"} {
		t.Run(term, func(t *testing.T) {
			got := filter.Apply(leads, filter.Leads, filter.Criteria{Search: term})
			assert.Equal(t, []int64{1}, ids(got))
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria filter.Criteria
		want     []int64
	}{
		{name: "no predicates match everything", criteria: filter.Criteria{}, want: []int64{1, 2, 3}},
		{name: "status only", criteria: filter.Criteria{Status: "new"}, want: []int64{1, 3}},
		{name: "search matches any field", criteria: filter.Criteria{Search: "acme"}, want: []int64{1, 3}},
		{name: "search on email", criteria: filter.Criteria{Search: "ZENITH.COM"}, want: []int64{2}},
		{name: "both predicates", criteria: filter.Criteria{Status: "qualified", Search: "acme"}, want: []int64{}},
		{name: "status is exact", criteria: filter.Criteria{Status: "NEW"}, want: []int64{}},
		{name: "unknown status", criteria: filter.Criteria{Status: "archived"}, want: []int64{}},
		{name: "no match", criteria: filter.Criteria{Search: "initech"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Apply(sampleLeads(), filter.Leads, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_IsIdempotentAndDoesNotMutate(t *testing.T) {
	source := sampleLeads()
	snapshot := sampleLeads()
	c := filter.Criteria{Status: "new", Search: "a"}

	once := filter.Apply(source, filter.Leads, c)
	twice := filter.Apply(once, filter.Leads, c)

	assert.Equal(t, once, twice)
	assert.Equal(t, snapshot, source)
}

func TestSpecs_OtherEntities(t *testing.T) {
	customers := []domain.Customer{
		{ID: 1, CompanyName: "Acme", Status: domain.CustomerStatusActive},
		{ID: 2, CompanyName: "Initech", Email: "ops@acme.io", Status: domain.CustomerStatusChurned},
	}
	assert.Len(t, filter.Apply(customers, filter.Customers, filter.Criteria{Search: "acme"}), 2)
	assert.Len(t, filter.Apply(customers, filter.Customers, filter.Criteria{Status: "churned"}), 1)

	campaigns := []domain.Campaign{{Name: "Spring Launch", Status: domain.CampaignStatusActive}, {Name: "Fall", Status: domain.CampaignStatusDraft}}
	got := filter.Apply(campaigns, filter.Campaigns, filter.Criteria{Search: "LAUNCH"})
	require.Len(t, got, 1)
	assert.Equal(t, "Spring Launch", got[0].Name)

	records := []domain.SalesRecord{{DealName: "Big Deal", Stage: domain.DealStageProposal}, {DealName: "Small", Stage: domain.DealStageClosedWon}}
	assert.Len(t, filter.Apply(records, filter.Sales, filter.Criteria{Status: "closed_won"}), 1)
	assert.Len(t, filter.Apply(records, filter.Sales, filter.Criteria{Search: "deal"}), 1)
}

func TestView_RecomputesOnChange(t *testing.T) {
	v := filter.NewView(filter.Leads)
	assert.Empty(t, v.Items())

	v.SetSource(sampleLeads())
	assert.Equal(t, []int64{1, 2, 3}, ids(v.Items()))

	v.SetStatus("new")
	assert.Equal(t, []int64{1, 3}, ids(v.Items()))

	v.SetSearch("GLOBEX")
	assert.Equal(t, []int64{3}, ids(v.Items()))

	v.SetSource(sampleLeads()[:2])
	assert.Empty(t, v.Items())
	assert.Len(t, v.Source(), 2)

	v.SetStatus("")
	v.SetSearch("")
	assert.Equal(t, []int64{1, 2}, ids(v.Items()))
	assert.Equal(t, filter.Criteria{}, v.Criteria())
}
