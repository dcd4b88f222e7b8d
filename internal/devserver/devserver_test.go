package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/straye-as/sales-intelligence/internal/apiclient"
	"github.com/straye-as/sales-intelligence/internal/config"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/straye-as/sales-intelligence/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type harness struct {
	srv     *Server
	baseURL string
	clock   *atomic.Int64
}

func newHarness(t *testing.T, cfg config.DevServerConfig) *harness {
	t.Helper()
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "test-secret"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 60
	}

	clock := &atomic.Int64{}
	clock.Store(testNow.UnixNano())
	srv := New(cfg, zap.NewNop(), WithClock(func() time.Time {
		return time.Unix(0, clock.Load()).UTC()
	}))
	require.NoError(t, srv.SeedDemo())

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return &harness{srv: srv, baseURL: ts.URL + "/api", clock: clock}
}

func (h *harness) advance(d time.Duration) {
	h.clock.Add(int64(d))
}

func (h *harness) client(t *testing.T, opts ...apiclient.Option) (*apiclient.Client, *session.Store) {
	t.Helper()
	store := session.NewStore(session.NewMemoryBackend(), session.DefaultKey, zap.NewNop())
	return apiclient.New(h.baseURL, store, zap.NewNop(), opts...), store
}

func (h *harness) loginAs(t *testing.T, email string) (*apiclient.Client, *session.Store) {
	t.Helper()
	c, store := h.client(t)
	_, err := c.Login(context.Background(), domain.LoginRequest{Email: email, Password: DemoPassword})
	require.NoError(t, err)
	return c, store
}

func (h *harness) raw(t *testing.T, method, path, token, contentType, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, h.baseURL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestAuth(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()

	t.Run("register then me", func(t *testing.T) {
		c, store := h.client(t)
		resp, err := c.Register(ctx, domain.RegisterRequest{Email: "New@Example.com", Password: "secret1", FullName: "New User", Role: domain.UserRoleSales})
		require.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "new@example.com", resp.User.Email)

		token, ok := store.Get()
		require.True(t, ok)
		assert.Equal(t, resp.AccessToken, token)

		me, err := c.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, me.ID)
		assert.Equal(t, domain.UserRoleSales, me.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		c, _ := h.client(t)
		_, err := c.Register(ctx, domain.RegisterRequest{Email: "admin@example.com", Password: "secret1", FullName: "Dup", Role: domain.UserRoleAdmin})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apiclient.StatusCode(err))
		assert.Equal(t, "Email already registered", apiclient.Detail(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		c, store := h.client(t)
		_, err := c.Login(ctx, domain.LoginRequest{Email: "admin@example.com", Password: "nope"})
		require.Error(t, err)
		assert.True(t, apiclient.IsAuthError(err))
		assert.Equal(t, "Incorrect email or password", apiclient.Detail(err))
		_, ok := store.Get()
		assert.False(t, ok)
	})

	t.Run("disabled account", func(t *testing.T) {
		c, _ := h.loginAs(t, "marketing@example.com")
		require.True(t, h.srv.DisableUser(3))
		_, err := c.CurrentUser(ctx)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apiclient.StatusCode(err))
		assert.Equal(t, "User account is disabled", apiclient.Detail(err))
	})
}

func TestAuthenticate_Rejections(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})

	tests := []struct {
		name       string
		token      string
		wantDetail string
	}{
		{name: "missing token", token: "", wantDetail: "Not authenticated"},
		{name: "garbage token", token: "not-a-jwt", wantDetail: "Could not validate credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := h.raw(t, http.MethodGet, "/leads", tt.token, "", "")
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
			assert.Equal(t, tt.wantDetail, body["detail"])
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{TokenTTL: 30})
	c, _ := h.loginAs(t, "admin@example.com")

	_, err := c.KPIs(context.Background())
	require.NoError(t, err)

	h.advance(31 * time.Minute)
	_, err = c.KPIs(context.Background())
	require.Error(t, err)
	assert.True(t, apiclient.IsAuthError(err))
	assert.Equal(t, "Could not validate credentials", apiclient.Detail(err))
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Issue(42)
	require.NoError(t, err)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = NewTokenIssuer("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestLeads_Visibility(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()

	admin, _ := h.loginAs(t, "admin@example.com")
	all, err := admin.ListLeads(ctx, domain.LeadFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 7)

	rep, _ := h.loginAs(t, "sales@example.com")
	own, err := rep.ListLeads(ctx, domain.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, own, 4)
	for _, l := range own {
		require.NotNil(t, l.AssignedTo)
		assert.Equal(t, int64(2), *l.AssignedTo)
	}

	_, err = rep.GetLead(ctx, 2)
	require.Error(t, err)
	assert.Equal(t, "Not authorized to view this lead", apiclient.Detail(err))

	filtered, err := admin.ListLeads(ctx, domain.LeadFilter{Source: domain.LeadSourceReferral})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	software, err := admin.ListLeads(ctx, domain.LeadFilter{Industry: "soft"})
	require.NoError(t, err)
	assert.Len(t, software, 2)
}

func TestLeads_CreateUpdateDelete(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()
	rep, _ := h.loginAs(t, "sales@example.com")

	lead, err := rep.CreateLead(ctx, domain.CreateLeadRequest{CompanyName: "Fresh Co", ContactName: "Fay", Email: "fay@fresh.example"})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)
	assert.Equal(t, domain.LeadSourceOther, lead.Source)
	require.NotNil(t, lead.AssignedTo)
	assert.Equal(t, int64(2), *lead.AssignedTo)

	status := domain.LeadStatusContacted
	updated, err := rep.UpdateLead(ctx, lead.ID, domain.UpdateLeadRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusContacted, updated.Status)
	assert.Equal(t, "Fresh Co", updated.CompanyName)

	err = rep.DeleteLead(ctx, lead.ID)
	require.Error(t, err)
	assert.Equal(t, "Not authorized to delete leads", apiclient.Detail(err))

	marketing, _ := h.loginAs(t, "marketing@example.com")
	require.NoError(t, marketing.DeleteLead(ctx, lead.ID))
	_, err = marketing.GetLead(ctx, lead.ID)
	assert.ErrorIs(t, err, apiclient.ErrNotFound)
}

func TestLeads_ValidationBody(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	_, store := h.loginAs(t, "admin@example.com")
	token, _ := store.Get()

	resp, body := h.raw(t, http.MethodPost, "/leads", token, "application/json", `{"email":"nope"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	issues, ok := body["detail"].([]any)
	require.True(t, ok)
	var fields []string
	for _, issue := range issues {
		loc := issue.(map[string]any)["loc"].([]any)
		assert.Equal(t, "body", loc[0])
		fields = append(fields, loc[1].(string))
	}
	assert.Equal(t, []string{"company_name", "contact_name", "email"}, fields)
}

func TestLeads_ImportCSV(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()
	c, _ := h.loginAs(t, "admin@example.com")

	csvBody := strings.Join([]string{
		"company_name,contact_name,email,annual_revenue,source",
		"Acme,Al,al@acme.example,1000000,LinkedIn",
		"Beta,Bo,bo@beta.example,lots,website",
		"Gamma,,g@gamma.example,,unknown",
	}, "\n")

	result, err := c.ImportLeadsCSV(ctx, "leads.csv", strings.NewReader(csvBody))
	require.NoError(t, err)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, "Successfully uploaded 1 leads", result.Message)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "annual_revenue")
	assert.Equal(t, 3, result.Errors[1].Row)
	assert.Equal(t, "contact_name is required", result.Errors[1].Error)

	leads, err := c.ListLeads(ctx, domain.LeadFilter{Source: domain.LeadSourceLinkedIn})
	require.NoError(t, err)
	assert.Len(t, leads, 2)

	_, err = c.ImportLeadsCSV(ctx, "bad.csv", strings.NewReader("company_name,email\nA,a@a.example\n"))
	require.Error(t, err)
	assert.Equal(t, "Missing required columns: [contact_name]", apiclient.Detail(err))
}

func TestCustomers_ConvertLead(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()
	c, _ := h.loginAs(t, "admin@example.com")

	customer, err := c.ConvertLead(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, customer.LeadID)
	assert.Equal(t, int64(2), *customer.LeadID)
	assert.Equal(t, "Aurora Health", customer.CompanyName)
	assert.Equal(t, domain.CustomerStatusActive, customer.Status)

	lead, err := c.GetLead(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusClosedWon, lead.Status)

	_, err = c.ConvertLead(ctx, 2)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apiclient.StatusCode(err))
	assert.Equal(t, "Lead already converted to customer", apiclient.Detail(err))

	_, err = c.ConvertLead(ctx, 999)
	assert.ErrorIs(t, err, apiclient.ErrNotFound)
}

func TestCampaigns_RolesAndMetrics(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()

	rep, _ := h.loginAs(t, "sales@example.com")
	_, err := rep.CreateCampaign(ctx, domain.CreateCampaignRequest{Name: "Nope", CampaignType: domain.CampaignTypeEmail})
	require.Error(t, err)
	assert.True(t, apiclient.IsAuthError(err))

	marketing, store := h.loginAs(t, "marketing@example.com")
	campaign, err := marketing.CreateCampaign(ctx, domain.CreateCampaignRequest{Name: "Q3 push", CampaignType: domain.CampaignTypeEmail, Budget: 5000})
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusDraft, campaign.Status)

	token, _ := store.Get()
	resp, body := h.raw(t, http.MethodPost,
		"/campaigns/"+strconv.FormatInt(campaign.ID, 10)+"/update-metrics?impressions=1000&clicks=50&conversions=5&leads_generated=10&spent=500&revenue_attributed=2000",
		token, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 5.0, body["click_through_rate"], 1e-9)
	assert.InDelta(t, 10.0, body["conversion_rate"], 1e-9)
	assert.InDelta(t, 50.0, body["cost_per_lead"], 1e-9)
	assert.InDelta(t, 300.0, body["roi"], 1e-9)

	err = marketing.DeleteCampaign(ctx, campaign.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apiclient.StatusCode(err))

	admin, _ := h.loginAs(t, "admin@example.com")
	require.NoError(t, admin.DeleteCampaign(ctx, campaign.ID))
}

func TestDeriveMetrics_ZeroDenominators(t *testing.T) {
	c := domain.Campaign{Spent: 0, Clicks: 10, RevenueAttributed: 100}
	deriveMetrics(&c)
	assert.Zero(t, c.ClickThroughRate)
	assert.Equal(t, 0.0, c.ConversionRate)
	assert.Zero(t, c.CostPerLead)
	assert.Zero(t, c.ROI)
}

func TestSales_CloseWonAndDelete(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()
	admin, _ := h.loginAs(t, "admin@example.com")

	stage := domain.DealStageClosedWon
	record, err := admin.UpdateSale(ctx, 4, domain.UpdateSalesRecordRequest{Stage: &stage})
	require.NoError(t, err)
	require.NotNil(t, record.ActualCloseDate)
	assert.True(t, record.ActualCloseDate.Time.Equal(testNow))

	customer, err := admin.GetCustomer(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 52000.0, customer.LifetimeValue)
	assert.Equal(t, 2, customer.TotalPurchases)

	rep, _ := h.loginAs(t, "sales@example.com")
	own, err := rep.ListSales(ctx, domain.SalesFilter{})
	require.NoError(t, err)
	assert.Len(t, own, 4)

	err = rep.DeleteSale(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, "Only admins can delete sales records", apiclient.Detail(err))

	_, err = admin.CreateSale(ctx, domain.CreateSalesRecordRequest{CustomerID: 99, DealName: "Ghost"})
	require.Error(t, err)
	assert.Equal(t, "Customer not found", apiclient.Detail(err))

	require.NoError(t, admin.DeleteSale(ctx, 1))
	_, err = admin.GetSale(ctx, 1)
	assert.ErrorIs(t, err, apiclient.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()
	c, _ := h.loginAs(t, "admin@example.com")

	kpis, err := c.KPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.KPIs{
		TotalRevenue:    90500,
		TotalLeads:      7,
		ConvertedLeads:  1,
		ConversionRate:  14.29,
		ActiveCampaigns: 1,
		TotalCustomers:  3,
		PipelineValue:   82000,
		AverageDealSize: 30166.67,
	}, *kpis)

	revenue, err := c.RevenueOverTime(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, []domain.RevenuePoint{
		{Year: 2024, Month: 2, Revenue: 30000},
		{Year: 2024, Month: 4, Revenue: 12500},
		{Year: 2024, Month: 6, Revenue: 48000},
	}, revenue)

	recent, err := c.RevenueOverTime(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.RevenuePoint{{Year: 2024, Month: 6, Revenue: 48000}}, recent)

	funnel, err := c.LeadFunnel(ctx)
	require.NoError(t, err)
	require.Len(t, funnel, 6)
	assert.Equal(t, domain.FunnelStage{Stage: "new", Count: 1}, funnel[0])
	assert.Equal(t, domain.FunnelStage{Stage: "closed_won", Count: 1}, funnel[5])

	sources, err := c.LeadSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 6)
	assert.Equal(t, domain.SourceCount{Source: "referral", Count: 2}, sources[3])

	campaigns, err := c.CampaignPerformance(ctx)
	require.NoError(t, err)
	assert.Len(t, campaigns, 2)

	reps, err := c.SalesByRep(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.RepPerformance{
		{ID: 1, Name: "Ada Admin", DealsCount: 1, TotalRevenue: 30000},
		{ID: 2, Name: "Sam Seller", DealsCount: 2, TotalRevenue: 60500},
	}, reps)
}

func TestAI_Scoring(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()
	c, _ := h.loginAs(t, "admin@example.com")

	result, err := c.ScoreLead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, 1.0, result.Probability)
	assert.NotEmpty(t, result.Factors)

	lead, err := c.GetLead(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, lead.AIScore)
	assert.Equal(t, 100.0, *lead.AIScore)

	batch, err := c.ScoreLeads(ctx, []int64{3, 999, 2})
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, int64(3), batch[0].LeadID)
	assert.Equal(t, int64(2), batch[1].LeadID)
	for _, r := range batch {
		assert.True(t, r.Score >= 0 && r.Score <= 100)
	}

	_, err = c.ScoreLead(ctx, 999)
	assert.ErrorIs(t, err, apiclient.ErrNotFound)
}

func TestAI_ChatThreadsConversation(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()
	c, _ := h.loginAs(t, "admin@example.com")

	first, err := c.Chat(ctx, domain.ChatRequest{Message: "What is our total revenue?"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ConversationID)
	require.NotNil(t, first.SQLQuery)
	require.Len(t, first.Data, 1)
	assert.Equal(t, 90500.0, first.Data[0]["total_revenue"])

	second, err := c.Chat(ctx, domain.ChatRequest{Message: "hello", ConversationID: &first.ConversationID})
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Nil(t, second.SQLQuery)
	assert.Equal(t, 2, h.srv.chats.turns(first.ConversationID))
}

func TestAI_GenerateContent(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()
	c, _ := h.loginAs(t, "marketing@example.com")

	maxLen := 40
	resp, err := c.GenerateContent(ctx, domain.ContentGenerateRequest{
		TargetAudience: "CFOs",
		Industry:       "Retail",
		Tone:           "Professional",
		Platform:       "LinkedIn",
		MaxLength:      &maxLen,
	})
	require.NoError(t, err)
	require.Len(t, resp.Variations, 3)
	for _, v := range resp.Variations {
		assert.LessOrEqual(t, len([]rune(v)), maxLen)
	}
	tips, ok := resp.Tips()
	assert.True(t, ok)
	assert.NotEmpty(t, tips)

	_, err = c.GenerateContent(ctx, domain.ContentGenerateRequest{TargetAudience: "CFOs", Tone: "casual", Platform: "Email"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apiclient.StatusCode(err))
	assert.Equal(t, apiclient.KindValidation, apiclient.KindOf(err))
}

func TestAI_Insights(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()
	c, _ := h.loginAs(t, "admin@example.com")

	types, err := c.InsightTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.BuiltinInsightTypes, types)

	forecast, err := c.GenerateInsights(ctx, domain.InsightTypeRevenueForecast)
	require.NoError(t, err)
	assert.Equal(t, domain.InsightTypeRevenueForecast, forecast.InsightType)
	assert.Equal(t, 2.0, forecast.KeyMetrics["open_deals"])
	assert.Equal(t, 39400.0, forecast.KeyMetrics["forecast_mid"])
	assert.True(t, forecast.GeneratedAt.Time.Equal(testNow))

	for _, info := range domain.BuiltinInsightTypes {
		resp, err := c.GenerateInsights(ctx, info.ID)
		require.NoError(t, err, info.ID)
		assert.NotEmpty(t, resp.Title)
		assert.NotEmpty(t, resp.KeyMetrics)
	}

	_, err = c.GenerateInsights(ctx, "mystery")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apiclient.StatusCode(err))
	assert.Equal(t, "Unknown insight type: mystery", apiclient.Detail(err))
}

func TestLatency(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{})
	ctx := context.Background()
	// Password hashing is slow under the race detector, so only the
	// dashboard calls run with the short timeout.
	_, store := h.loginAs(t, "admin@example.com")
	c := apiclient.New(h.baseURL, store, zap.NewNop(), apiclient.WithTimeout(250*time.Millisecond))

	h.srv.SetLatency(http.MethodGet, "/dashboard/kpis", time.Second)
	_, err := c.KPIs(ctx)
	require.Error(t, err)
	assert.Equal(t, apiclient.KindTransport, apiclient.KindOf(err))

	_, err = c.LeadFunnel(ctx)
	require.NoError(t, err)

	h.srv.SetLatency(http.MethodGet, "/dashboard/kpis", 0)
	_, err = c.KPIs(ctx)
	require.NoError(t, err)
}

func TestRateLimit(t *testing.T) {
	h := newHarness(t, config.DevServerConfig{RateLimitPerMinute: 3})

	for i := 0; i < 3; i++ {
		resp, _ := h.raw(t, http.MethodPost, "/auth/login", "", "application/json", `{}`)
		assert.NotEqual(t, http.StatusTooManyRequests, resp.StatusCode)
	}
	resp, body := h.raw(t, http.MethodPost, "/auth/login", "", "application/json", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Rate limit exceeded", body["detail"])
}

func TestPaginate(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name string
		p    page
		want []int
	}{
		{name: "all", p: page{skip: 0, limit: 100}, want: []int{1, 2, 3, 4, 5}},
		{name: "window", p: page{skip: 1, limit: 2}, want: []int{2, 3}},
		{name: "past end", p: page{skip: 9, limit: 2}, want: []int{}},
		{name: "zero limit", p: page{skip: 0, limit: 0}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(rows, tt.p))
		})
	}
}
