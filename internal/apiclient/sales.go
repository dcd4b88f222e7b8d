package apiclient

import (
	"context"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

func (c *Client) ListSales(ctx context.Context, filter domain.SalesFilter) ([]domain.SalesRecord, error) {
	var records []domain.SalesRecord
	if err := c.get(ctx, "/sales", filter.Query(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) GetSale(ctx context.Context, id int64) (*domain.SalesRecord, error) {
	var record domain.SalesRecord
	if err := c.get(ctx, idPath("sales", id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) CreateSale(ctx context.Context, req domain.CreateSalesRecordRequest) (*domain.SalesRecord, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var record domain.SalesRecord
	if err := c.post(ctx, "/sales", req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) UpdateSale(ctx context.Context, id int64, req domain.UpdateSalesRecordRequest) (*domain.SalesRecord, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var record domain.SalesRecord
	if err := c.put(ctx, idPath("sales", id), req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) DeleteSale(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("sales", id))
}
