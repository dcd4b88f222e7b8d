package apiclient

import (
	"context"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

func (c *Client) ListCampaigns(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	var campaigns []domain.Campaign
	if err := c.get(ctx, "/campaigns", filter.Query(), &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (c *Client) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := c.get(ctx, idPath("campaigns", id), nil, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) CreateCampaign(ctx context.Context, req domain.CreateCampaignRequest) (*domain.Campaign, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var campaign domain.Campaign
	if err := c.post(ctx, "/campaigns", req, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) UpdateCampaign(ctx context.Context, id int64, req domain.UpdateCampaignRequest) (*domain.Campaign, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var campaign domain.Campaign
	if err := c.put(ctx, idPath("campaigns", id), req, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) DeleteCampaign(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("campaigns", id))
}
