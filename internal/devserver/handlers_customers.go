package devserver

import (
	"net/http"
	"strings"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
)

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	p, ok := pageParams(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	status, industry := q.Get("status"), strings.ToLower(q.Get("industry"))

	var customers []domain.Customer
	s.store.read(func(db *tables) {
		customers = db.customers.list(func(c domain.Customer) bool {
			if status != "" && string(c.Status) != status {
				return false
			}
			return industry == "" || strings.Contains(strings.ToLower(c.Industry), industry)
		})
	})
	respondJSON(w, http.StatusOK, paginate(customers, p))
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var customer domain.Customer
	s.store.read(func(db *tables) {
		customer, ok = db.customers.get(id)
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Customer not found")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	customer := s.insertCustomer(domain.Customer{
		LeadID:        req.LeadID,
		CompanyName:   req.CompanyName,
		ContactName:   req.ContactName,
		Email:         req.Email,
		Phone:         req.Phone,
		Industry:      req.Industry,
		CompanySize:   req.CompanySize,
		Location:      req.Location,
		Status:        req.Status,
		LifetimeValue: req.LifetimeValue,
	})
	respondJSON(w, http.StatusCreated, customer)
}

func (s *Server) insertCustomer(customer domain.Customer) domain.Customer {
	s.store.write(func(db *tables) {
		customer = insertCustomer(db, customer, s.store.stamp())
	})
	return customer
}

// insertCustomer stores customer with defaults applied. Caller holds the write lock.
func insertCustomer(db *tables, customer domain.Customer, now domain.Timestamp) domain.Customer {
	if customer.Status == "" {
		customer.Status = domain.CustomerStatusActive
	}
	customer.CreatedAt, customer.UpdatedAt = now, now
	return db.customers.insert(customer, func(c *domain.Customer, id int64) { c.ID = id })
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateCustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var customer domain.Customer
	s.store.write(func(db *tables) {
		if customer, ok = db.customers.get(id); !ok {
			return
		}
		if req.CompanyName != nil {
			customer.CompanyName = *req.CompanyName
		}
		if req.ContactName != nil {
			customer.ContactName = *req.ContactName
		}
		if req.Email != nil {
			customer.Email = *req.Email
		}
		if req.Phone != nil {
			customer.Phone = *req.Phone
		}
		if req.Industry != nil {
			customer.Industry = *req.Industry
		}
		if req.Status != nil {
			customer.Status = *req.Status
		}
		if req.LifetimeValue != nil {
			customer.LifetimeValue = *req.LifetimeValue
		}
		if req.TotalPurchases != nil {
			customer.TotalPurchases = *req.TotalPurchases
		}
		customer.UpdatedAt = s.store.stamp()
		db.customers.put(id, customer)
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Customer not found")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.store.write(func(db *tables) {
		ok = db.customers.remove(id)
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Customer not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// convertLead copies a lead into a new customer and marks the lead won.
// A lead converts at most once.
func (s *Server) convertLead(w http.ResponseWriter, r *http.Request) {
	leadID, ok := pathID(w, r)
	if !ok {
		return
	}

	var customer domain.Customer
	var status int
	s.store.write(func(db *tables) {
		lead, found := db.leads.get(leadID)
		if !found {
			status = http.StatusNotFound
			return
		}
		converted := db.customers.list(func(c domain.Customer) bool {
			return c.LeadID != nil && *c.LeadID == leadID
		})
		if len(converted) > 0 {
			status = http.StatusBadRequest
			return
		}

		now := s.store.stamp()
		customer = insertCustomer(db, domain.Customer{
			LeadID:      &lead.ID,
			CompanyName: lead.CompanyName,
			ContactName: lead.ContactName,
			Email:       lead.Email,
			Phone:       lead.Phone,
			Industry:    lead.Industry,
			CompanySize: lead.CompanySize,
			Location:    lead.Location,
		}, now)

		lead.Status = domain.LeadStatusClosedWon
		lead.UpdatedAt = now
		db.leads.put(lead.ID, lead)
		status = http.StatusOK
	})

	switch status {
	case http.StatusNotFound:
		respondDetail(w, status, "Lead not found")
	case http.StatusBadRequest:
		respondDetail(w, status, "Lead already converted to customer")
	default:
		s.logger.Info("lead converted",
			zap.Int64("lead_id", leadID),
			zap.Int64("customer_id", customer.ID),
		)
		respondJSON(w, status, customer)
	}
}
