package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

func optionalTimestamp(t *time.Time) *domain.Timestamp {
	if t == nil {
		return nil
	}
	ts := domain.NewTimestamp(t.UTC())
	return &ts
}

func ownsRecord(user domain.User, record domain.SalesRecord) bool {
	if user.Role != roleSales {
		return true
	}
	return record.SalesRepID != nil && *record.SalesRepID == user.ID
}

func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	p, ok := pageParams(w, r)
	if !ok {
		return
	}
	user := currentUser(r)
	q := r.URL.Query()
	stage := q.Get("stage")
	var customerID int64
	if raw := q.Get("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondFieldErrors(w, "query", map[string]string{"customer_id": "value is not a valid integer"})
			return
		}
		customerID = id
	}

	var records []domain.SalesRecord
	s.store.read(func(db *tables) {
		records = db.sales.list(func(rec domain.SalesRecord) bool {
			if !ownsRecord(user, rec) {
				return false
			}
			if stage != "" && string(rec.Stage) != stage {
				return false
			}
			return customerID == 0 || rec.CustomerID == customerID
		})
	})
	respondJSON(w, http.StatusOK, paginate(records, p))
}

func (s *Server) getSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var record domain.SalesRecord
	s.store.read(func(db *tables) {
		record, ok = db.sales.get(id)
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Sales record not found")
		return
	}
	if !ownsRecord(currentUser(r), record) {
		respondDetail(w, http.StatusForbidden, "Not authorized to view this record")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSalesRecordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user := currentUser(r)

	record := domain.SalesRecord{
		CustomerID:  req.CustomerID,
		SalesRepID:  &user.ID,
		DealName:    req.DealName,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Stage:       req.Stage,
		Probability: req.Probability,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		CloseDate:   optionalTimestamp(req.CloseDate),
		Notes:       req.Notes,
	}

	var ok bool
	s.store.write(func(db *tables) {
		if _, ok = db.customers.get(req.CustomerID); !ok {
			return
		}
		record = insertSale(db, record, s.store.stamp())
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Customer not found")
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

// insertSale stores record with defaults applied. Caller holds the write lock.
func insertSale(db *tables, record domain.SalesRecord, now domain.Timestamp) domain.SalesRecord {
	if record.Currency == "" {
		record.Currency = "USD"
	}
	if record.Stage == "" {
		record.Stage = domain.DealStageProspecting
	}
	if record.Quantity == 0 {
		record.Quantity = 1
	}
	if record.Stage == domain.DealStageClosedWon && record.ActualCloseDate == nil {
		closed := now
		record.ActualCloseDate = &closed
	}
	record.CreatedAt, record.UpdatedAt = now, now
	return db.sales.insert(record, func(rec *domain.SalesRecord, id int64) { rec.ID = id })
}

// updateSale applies a partial update. Moving a deal to closed_won stamps
// the actual close date and credits the customer's lifetime value.
func (s *Server) updateSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateSalesRecordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user := currentUser(r)

	var record domain.SalesRecord
	var status int
	s.store.write(func(db *tables) {
		if record, ok = db.sales.get(id); !ok {
			status = http.StatusNotFound
			return
		}
		if !ownsRecord(user, record) {
			status = http.StatusForbidden
			return
		}

		now := s.store.stamp()
		if req.Stage != nil && *req.Stage == domain.DealStageClosedWon && record.Stage != domain.DealStageClosedWon {
			closed := now
			record.ActualCloseDate = &closed
			if customer, found := db.customers.get(record.CustomerID); found {
				amount := record.Amount
				if req.Amount != nil {
					amount = *req.Amount
				}
				customer.LifetimeValue += amount
				customer.TotalPurchases++
				customer.UpdatedAt = now
				db.customers.put(customer.ID, customer)
			}
		}

		if req.DealName != nil {
			record.DealName = *req.DealName
		}
		if req.Amount != nil {
			record.Amount = *req.Amount
		}
		if req.Stage != nil {
			record.Stage = *req.Stage
		}
		if req.Probability != nil {
			record.Probability = *req.Probability
		}
		if req.CloseDate != nil {
			record.CloseDate = optionalTimestamp(req.CloseDate)
		}
		if req.Notes != nil {
			record.Notes = *req.Notes
		}
		record.UpdatedAt = now
		db.sales.put(id, record)
		status = http.StatusOK
	})

	switch status {
	case http.StatusNotFound:
		respondDetail(w, status, "Sales record not found")
	case http.StatusForbidden:
		respondDetail(w, status, "Not authorized to update this record")
	default:
		respondJSON(w, status, record)
	}
}

func (s *Server) deleteSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if currentUser(r).Role != roleAdmin {
		var exists bool
		s.store.read(func(db *tables) {
			_, exists = db.sales.get(id)
		})
		if !exists {
			respondDetail(w, http.StatusNotFound, "Sales record not found")
			return
		}
		respondDetail(w, http.StatusForbidden, "Only admins can delete sales records")
		return
	}

	s.store.write(func(db *tables) {
		ok = db.sales.remove(id)
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Sales record not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
