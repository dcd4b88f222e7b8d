package apiclient

import (
	"context"
	"fmt"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

func (c *Client) ListCustomers(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := c.get(ctx, "/customers", filter.Query(), &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	if err := c.get(ctx, idPath("customers", id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) CreateCustomer(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var customer domain.Customer
	if err := c.post(ctx, "/customers", req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, req domain.UpdateCustomerRequest) (*domain.Customer, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var customer domain.Customer
	if err := c.put(ctx, idPath("customers", id), req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("customers", id))
}

// ConvertLead turns a lead into a customer. The server records the lead as provenance.
func (c *Client) ConvertLead(ctx context.Context, leadID int64) (*domain.Customer, error) {
	var customer domain.Customer
	if err := c.post(ctx, fmt.Sprintf("/customers/convert-lead/%d", leadID), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}
