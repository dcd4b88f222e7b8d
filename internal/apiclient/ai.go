package apiclient

import (
	"context"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

func (c *Client) ScoreLead(ctx context.Context, leadID int64) (*domain.LeadScoreResponse, error) {
	var resp domain.LeadScoreResponse
	if err := c.post(ctx, "/ai/score-lead", domain.LeadScoreRequest{LeadID: leadID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScoreLeads scores several leads in one request
func (c *Client) ScoreLeads(ctx context.Context, leadIDs []int64) ([]domain.LeadScoreResponse, error) {
	var resp []domain.LeadScoreResponse
	if err := c.post(ctx, "/ai/score-leads-batch", leadIDs, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Chat sends one turn. conversation_id is omitted when req.ConversationID is nil.
func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	var resp domain.ChatResponse
	if err := c.post(ctx, "/ai/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GenerateContent(ctx context.Context, req domain.ContentGenerateRequest) (*domain.ContentGenerateResponse, error) {
	var resp domain.ContentGenerateResponse
	if err := c.post(ctx, "/ai/generate-content", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GenerateInsights(ctx context.Context, insightType domain.InsightType) (*domain.InsightResponse, error) {
	var resp domain.InsightResponse
	if err := c.post(ctx, "/ai/insights", domain.InsightRequest{InsightType: insightType}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) InsightTypes(ctx context.Context) ([]domain.InsightTypeInfo, error) {
	var resp domain.InsightTypesResponse
	if err := c.get(ctx, "/ai/insight-types", nil, &resp); err != nil {
		return nil, err
	}
	return resp.InsightTypes, nil
}
