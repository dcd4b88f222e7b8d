package service

import (
	"context"

	"github.com/straye-as/sales-intelligence/internal/analytics"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/straye-as/sales-intelligence/internal/filter"
	"go.uber.org/zap"
)

type CampaignsAPI interface {
	ListCampaigns(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error)
}

type CampaignService struct {
	*ListView[domain.Campaign]
	query domain.CampaignFilter
}

func NewCampaignService(api CampaignsAPI, logger *zap.Logger) *CampaignService {
	s := &CampaignService{}
	s.ListView = NewListView("campaigns", filter.Campaigns, func(ctx context.Context) ([]domain.Campaign, error) {
		return api.ListCampaigns(ctx, s.query)
	}, logger)
	return s
}

func (s *CampaignService) SetQuery(q domain.CampaignFilter) {
	s.query = q
}

func (s *CampaignService) Summary() analytics.CampaignSummary {
	return analytics.SummarizeCampaigns(s.All())
}

// Cards renders the filtered campaigns
func (s *CampaignService) Cards() []analytics.CampaignCard {
	items := s.Items()
	cards := make([]analytics.CampaignCard, 0, len(items))
	for _, c := range items {
		cards = append(cards, analytics.NewCampaignCard(c))
	}
	return cards
}
