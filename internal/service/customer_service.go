package service

import (
	"context"

	"github.com/straye-as/sales-intelligence/internal/analytics"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/straye-as/sales-intelligence/internal/filter"
	"go.uber.org/zap"
)

type CustomersAPI interface {
	ListCustomers(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error)
}

type CustomerService struct {
	*ListView[domain.Customer]
	query domain.CustomerFilter
}

func NewCustomerService(api CustomersAPI, logger *zap.Logger) *CustomerService {
	s := &CustomerService{}
	s.ListView = NewListView("customers", filter.Customers, func(ctx context.Context) ([]domain.Customer, error) {
		return api.ListCustomers(ctx, s.query)
	}, logger)
	return s
}

func (s *CustomerService) SetQuery(q domain.CustomerFilter) {
	s.query = q
}

// Summary rolls up every fetched customer, ignoring the client-side filter
func (s *CustomerService) Summary() analytics.CustomerSummary {
	return analytics.SummarizeCustomers(s.All())
}
