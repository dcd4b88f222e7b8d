package devserver

import (
	"fmt"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
)

// DemoPassword is the password of every account created by SeedDemo
const DemoPassword = "demo1234"

// AddUser registers an account directly, bypassing the HTTP layer
func (s *Server) AddUser(req domain.RegisterRequest) (domain.User, error) {
	if err := domain.Validate(req); err != nil {
		return domain.User{}, fmt.Errorf("invalid user: %s", domain.ValidationMessage(err))
	}
	return s.store.addUser(req)
}

func ptr[T any](v T) *T { return &v }

// SeedDemo fills the store with a small, consistent data set: three users,
// leads across every funnel stage, a converted customer base, campaigns with
// derived metrics and closed deals spread over the last few months.
func (s *Server) SeedDemo() error {
	admin, err := s.AddUser(domain.RegisterRequest{Email: "admin@example.com", Password: DemoPassword, FullName: "Ada Admin", Role: roleAdmin})
	if err != nil {
		return err
	}
	rep, err := s.AddUser(domain.RegisterRequest{Email: "sales@example.com", Password: DemoPassword, FullName: "Sam Seller", Role: roleSales})
	if err != nil {
		return err
	}
	if _, err := s.AddUser(domain.RegisterRequest{Email: "marketing@example.com", Password: DemoPassword, FullName: "Mia Marketer", Role: roleMarketing}); err != nil {
		return err
	}

	leads := []domain.Lead{
		{CompanyName: "Fjord Logistics", ContactName: "Ola Nordmann", Email: "ola@fjord.example", JobTitle: "CEO", Industry: "Logistics", AnnualRevenue: ptr(25_000_000.0), EstimatedValue: ptr(80_000.0), Status: domain.LeadStatusNegotiation, Source: domain.LeadSourceReferral, Notes: "Met at partner dinner"},
		{CompanyName: "Aurora Health", ContactName: "Kari Hansen", Email: "kari@aurora.example", JobTitle: "IT Manager", Industry: "Healthcare", AnnualRevenue: ptr(4_000_000.0), EstimatedValue: ptr(20_000.0), Status: domain.LeadStatusQualified, Source: domain.LeadSourceLinkedIn},
		{CompanyName: "Bergen Bytes", ContactName: "Per Olsen", Email: "per@bergenbytes.example", JobTitle: "Developer", Industry: "Software", Status: domain.LeadStatusNew, Source: domain.LeadSourceWebsite},
		{CompanyName: "Polar Retail", ContactName: "Lise Berg", Email: "lise@polar.example", JobTitle: "Head of Procurement", Industry: "Retail", AnnualRevenue: ptr(12_000_000.0), Status: domain.LeadStatusContacted, Source: domain.LeadSourceTradeShow},
		{CompanyName: "Nordic Foods", ContactName: "Erik Lund", Email: "erik@nordicfoods.example", Industry: "Food", Status: domain.LeadStatusProposal, Source: domain.LeadSourceEmailCampaign, EstimatedValue: ptr(35_000.0)},
		{CompanyName: "Tromsø Tech", ContactName: "Nina Dahl", Email: "nina@tromso.example", JobTitle: "CTO", Industry: "Software", Status: domain.LeadStatusClosedLost, Source: domain.LeadSourceColdCall},
	}
	for i, lead := range leads {
		assignee := admin.ID
		if i%2 == 0 {
			assignee = rep.ID
		}
		lead.AssignedTo = ptr(assignee)
		s.insertLead(lead)
	}
	won := s.insertLead(domain.Lead{CompanyName: "Oslo Energy", ContactName: "Jon Vik", Email: "jon@osloenergy.example", JobTitle: "Director", Industry: "Energy", Source: domain.LeadSourceReferral, AssignedTo: ptr(rep.ID)})

	s.store.write(func(db *tables) {
		now := s.store.stamp()
		base := s.now().UTC()

		first := insertCustomer(db, domain.Customer{LeadID: &won.ID, CompanyName: won.CompanyName, ContactName: won.ContactName, Email: won.Email, Industry: won.Industry}, now)
		won.Status = domain.LeadStatusClosedWon
		db.leads.put(won.ID, won)
		second := insertCustomer(db, domain.Customer{CompanyName: "Viking Shipping", ContactName: "Astrid Moe", Email: "astrid@viking.example", Industry: "Logistics"}, now)
		insertCustomer(db, domain.Customer{CompanyName: "Lofoten Labs", ContactName: "Geir Strand", Email: "geir@lofoten.example", Industry: "Biotech", Status: domain.CustomerStatusChurned}, now)

		deals := []struct {
			customer    int64
			rep         int64
			name        string
			amount      float64
			stage       domain.DealStage
			probability float64
			monthsAgo   int
		}{
			{first.ID, rep.ID, "Grid analytics rollout", 48_000, domain.DealStageClosedWon, 100, 0},
			{first.ID, rep.ID, "Support renewal", 12_500, domain.DealStageClosedWon, 100, 2},
			{second.ID, admin.ID, "Fleet tracking", 30_000, domain.DealStageClosedWon, 100, 4},
			{second.ID, rep.ID, "Route optimisation", 22_000, domain.DealStageNegotiation, 70, 0},
			{first.ID, admin.ID, "Data platform expansion", 60_000, domain.DealStageProposal, 40, 0},
			{second.ID, rep.ID, "Warehouse sensors", 8_000, domain.DealStageClosedLost, 0, 1},
		}
		for _, d := range deals {
			record := domain.SalesRecord{
				CustomerID:  d.customer,
				SalesRepID:  ptr(d.rep),
				DealName:    d.name,
				Amount:      d.amount,
				Stage:       d.stage,
				Probability: d.probability,
			}
			if d.stage == domain.DealStageClosedWon {
				closed := domain.NewTimestamp(base.AddDate(0, -d.monthsAgo, 0))
				record.ActualCloseDate = &closed

				customer, _ := db.customers.get(d.customer)
				customer.LifetimeValue += d.amount
				customer.TotalPurchases++
				db.customers.put(customer.ID, customer)
			}
			insertSale(db, record, now)
		}

		campaigns := []domain.Campaign{
			{Name: "Spring webinar series", CampaignType: domain.CampaignTypeWebinar, Status: domain.CampaignStatusActive, Budget: 10_000, Spent: 6_000, Impressions: 40_000, Clicks: 1_200, Conversions: 90, LeadsGenerated: 60, RevenueAttributed: 24_000},
			{Name: "LinkedIn ABM", CampaignType: domain.CampaignTypeSocialMedia, Status: domain.CampaignStatusCompleted, Budget: 8_000, Spent: 9_500, Impressions: 120_000, Clicks: 2_400, Conversions: 40, LeadsGenerated: 35, RevenueAttributed: 7_000},
			{Name: "Newsletter relaunch", CampaignType: domain.CampaignTypeEmail, Status: domain.CampaignStatusDraft, Budget: 2_000},
		}
		for _, c := range campaigns {
			deriveMetrics(&c)
			c.CreatedAt, c.UpdatedAt = now, now
			db.campaigns.insert(c, func(c *domain.Campaign, id int64) { c.ID = id })
		}
	})

	s.logger.Info("seeded demo data",
		zap.String("admin", admin.Email),
		zap.String("sales", rep.Email),
	)
	return nil
}
