package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-intelligence/internal/domain"
)

// CustomerSummary counts customers by status and sums their value.
// Unknown statuses are counted under their raw value.
type CustomerSummary struct {
	Count              int
	ByStatus           map[domain.CustomerStatus]int
	TotalLifetimeValue float64
	TotalPurchases     int
}

// Active returns the number of active customers
func (s CustomerSummary) Active() int {
	return s.ByStatus[domain.CustomerStatusActive]
}

func SummarizeCustomers(customers []domain.Customer) CustomerSummary {
	ltv := decimal.Zero
	s := CustomerSummary{
		Count:    len(customers),
		ByStatus: make(map[domain.CustomerStatus]int, len(domain.CustomerStatuses)),
	}
	for _, status := range domain.CustomerStatuses {
		s.ByStatus[status] = 0
	}
	for _, c := range customers {
		s.ByStatus[c.Status]++
		ltv = ltv.Add(decimal.NewFromFloat(c.LifetimeValue))
		s.TotalPurchases += c.TotalPurchases
	}
	s.TotalLifetimeValue = ltv.InexactFloat64()
	return s
}
