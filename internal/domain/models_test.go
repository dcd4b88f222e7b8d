package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestStatusColor_IsTotal(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{status: "new", want: domain.StyleBlue},
		{status: "contacted", want: domain.StyleYellow},
		{status: "qualified", want: domain.StylePurple},
		{status: "proposal", want: domain.StyleOrange},
		{status: "negotiation", want: domain.StylePink},
		{status: "closed_won", want: domain.StyleGreen},
		{status: "closed_lost", want: domain.StyleRed},
		{status: "active", want: domain.StyleGreen},
		{status: "inactive", want: domain.StyleGray},
		{status: "churned", want: domain.StyleRed},
		{status: "draft", want: domain.StyleGray},
		{status: "paused", want: domain.StyleYellow},
		{status: "completed", want: domain.StyleBlue},
		{status: "cancelled", want: domain.StyleRed},
		{status: "", want: domain.StyleFallback},
		{status: "definitely-not-a-status", want: domain.StyleFallback},
		{status: "ACTIVE", want: domain.StyleFallback},
		{status: "prospecting", want: domain.StyleFallback},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, domain.StatusColor(tt.status))
			})
		})
	}
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, domain.ScoreColorHigh, domain.ScoreColor(80))
	assert.Equal(t, domain.ScoreColorHigh, domain.ScoreColor(100))
	assert.Equal(t, domain.ScoreColorGood, domain.ScoreColor(79.9))
	assert.Equal(t, domain.ScoreColorGood, domain.ScoreColor(60))
	assert.Equal(t, domain.ScoreColorMedium, domain.ScoreColor(40))
	assert.Equal(t, domain.ScoreColorLow, domain.ScoreColor(39))
	assert.Equal(t, domain.ScoreColorLow, domain.ScoreColor(-5))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "closed won", domain.StatusLabel("closed_won"))
	assert.Equal(t, "social media", domain.StatusLabel("social_media"))
	assert.Equal(t, "new", domain.StatusLabel("new"))
}

func TestLead_ScoreBoundaries(t *testing.T) {
	unscored := domain.Lead{}
	assert.False(t, unscored.HasScore())
	assert.True(t, unscored.ScoreInRange())

	tests := []struct {
		name  string
		score float64
		want  bool
	}{
		{name: "zero", score: 0, want: true},
		{name: "hundred", score: 100, want: true},
		{name: "negative passes through but is flagged", score: -1, want: false},
		{name: "above hundred passes through but is flagged", score: 140, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := domain.Lead{AIScore: floatPtr(tt.score)}
			assert.True(t, lead.HasScore())
			assert.Equal(t, tt.want, lead.ScoreInRange())
			assert.Equal(t, tt.score, *lead.AIScore)
		})
	}
}

func TestLead_DecodePassesOutOfRangeValuesThrough(t *testing.T) {
	raw := `{"id": 7, "company_name": "Acme", "contact_name": "Ann", "email": "a@acme.io",
		"status": "mystery", "source": "website", "ai_score": 130, "estimated_value": -50,
		"created_at": "2024-03-01T10:00:00.123456", "updated_at": "2024-03-02T10:00:00Z"}`

	var lead domain.Lead
	require.NoError(t, json.Unmarshal([]byte(raw), &lead))
	assert.Equal(t, 130.0, *lead.AIScore)
	assert.Equal(t, -50.0, *lead.EstimatedValue)
	assert.False(t, lead.ScoreInRange())
	assert.False(t, lead.Status.IsValid())
	assert.Equal(t, 2024, lead.CreatedAt.Year())
}

func TestCampaign_Overspent(t *testing.T) {
	c := domain.Campaign{Budget: 1000, Spent: 1500}
	assert.True(t, c.Overspent())
	c.Spent = 1000
	assert.False(t, c.Overspent())
}

func TestSalesRecord_ProbabilityInRange(t *testing.T) {
	assert.True(t, (&domain.SalesRecord{Probability: 0}).ProbabilityInRange())
	assert.True(t, (&domain.SalesRecord{Probability: 100}).ProbabilityInRange())
	assert.False(t, (&domain.SalesRecord{Probability: 120}).ProbabilityInRange())
}

func TestTimestamp_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339", input: `"2024-05-06T07:08:09Z"`, want: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{name: "rfc3339 with offset", input: `"2024-05-06T09:08:09+02:00"`, want: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{name: "naive with micros", input: `"2024-05-06T07:08:09.500000"`, want: time.Date(2024, 5, 6, 7, 8, 9, 500000000, time.UTC)},
		{name: "naive without fraction", input: `"2024-05-06T07:08:09"`, want: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{name: "date only", input: `"2024-05-06"`, want: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{name: "null", input: `null`, want: time.Time{}},
		{name: "empty string", input: `""`, want: time.Time{}},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
		{name: "number", input: `12345`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts domain.Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_MarshalRoundTrip(t *testing.T) {
	ts := domain.NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T03:04:05Z"`, string(b))

	b, err = json.Marshal(domain.Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	assert.Equal(t, "Jan 2, 2024", ts.DateString())
	assert.Equal(t, "-", domain.Timestamp{}.DateString())
}
