package service

import (
	"context"

	"github.com/straye-as/sales-intelligence/internal/analytics"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/straye-as/sales-intelligence/internal/filter"
	"go.uber.org/zap"
)

type SalesAPI interface {
	ListSales(ctx context.Context, filter domain.SalesFilter) ([]domain.SalesRecord, error)
}

// SalesService backs the pipeline page
type SalesService struct {
	*ListView[domain.SalesRecord]
	query domain.SalesFilter
}

func NewSalesService(api SalesAPI, logger *zap.Logger) *SalesService {
	s := &SalesService{}
	s.ListView = NewListView("sales", filter.Sales, func(ctx context.Context) ([]domain.SalesRecord, error) {
		return api.ListSales(ctx, s.query)
	}, logger)
	return s
}

func (s *SalesService) SetQuery(q domain.SalesFilter) {
	s.query = q
}

// Pipeline summarises every fetched record, ignoring the client-side filter
func (s *SalesService) Pipeline() analytics.PipelineSummary {
	return analytics.SummarizePipeline(s.All())
}

func (s *SalesService) ByRep() []analytics.RepTotal {
	return analytics.RevenueByRep(s.All())
}
