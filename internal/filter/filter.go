// Package filter narrows fetched collections client-side with an exact
// status match and a case-insensitive free-text search.
package filter

import (
	"strings"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

// Spec describes how an entity is matched
type Spec[T any] struct {
	// Status returns the value compared with the status predicate
	Status func(T) string
	// Fields returns the text searched by the search predicate
	Fields func(T) []string
}

// Criteria are the two predicate inputs. Empty values match everything.
type Criteria struct {
	Status string
	Search string
}

// Apply returns the items matching both predicates, in source order.
// The source slice is never modified.
func Apply[T any](items []T, spec Spec[T], c Criteria) []T {
	term := strings.ToLower(c.Search)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if c.Status != "" && spec.Status(item) != c.Status {
			continue
		}
		if term != "" && !anyContains(spec.Fields(item), term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func anyContains(fields []string, lowerTerm string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerTerm) {
			return true
		}
	}
	return false
}

// Leads matches on status and company name, contact name or email
var Leads = Spec[domain.Lead]{
	Status: func(l domain.Lead) string { return string(l.Status) },
	Fields: func(l domain.Lead) []string { return []string{l.CompanyName, l.ContactName, l.Email} },
}

// Customers matches on status and company name, contact name or email
var Customers = Spec[domain.Customer]{
	Status: func(c domain.Customer) string { return string(c.Status) },
	Fields: func(c domain.Customer) []string { return []string{c.CompanyName, c.ContactName, c.Email} },
}

// Campaigns matches on status and name
var Campaigns = Spec[domain.Campaign]{
	Status: func(c domain.Campaign) string { return string(c.Status) },
	Fields: func(c domain.Campaign) []string { return []string{c.Name} },
}

// Sales matches on stage and deal name
var Sales = Spec[domain.SalesRecord]{
	Status: func(r domain.SalesRecord) string { return string(r.Stage) },
	Fields: func(r domain.SalesRecord) []string { return []string{r.DealName} },
}
