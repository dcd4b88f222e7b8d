package devserver

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

var requiredLeadColumns = []string{"company_name", "contact_name", "email"}

// visibleTo reports whether user may see lead. Sales users only see their own.
func visibleTo(user domain.User, lead domain.Lead) bool {
	if user.Role != roleSales {
		return true
	}
	return lead.AssignedTo != nil && *lead.AssignedTo == user.ID
}

func (s *Server) listLeads(w http.ResponseWriter, r *http.Request) {
	p, ok := pageParams(w, r)
	if !ok {
		return
	}
	user := currentUser(r)
	q := r.URL.Query()
	status, source, industry := q.Get("status"), q.Get("source"), strings.ToLower(q.Get("industry"))

	var leads []domain.Lead
	s.store.read(func(db *tables) {
		leads = db.leads.list(func(l domain.Lead) bool {
			if !visibleTo(user, l) {
				return false
			}
			if status != "" && string(l.Status) != status {
				return false
			}
			if source != "" && string(l.Source) != source {
				return false
			}
			return industry == "" || strings.Contains(strings.ToLower(l.Industry), industry)
		})
	})
	respondJSON(w, http.StatusOK, paginate(leads, p))
}

func (s *Server) getLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var lead domain.Lead
	s.store.read(func(db *tables) {
		lead, ok = db.leads.get(id)
	})
	if !ok {
		respondDetail(w, http.StatusNotFound, "Lead not found")
		return
	}
	if !visibleTo(currentUser(r), lead) {
		respondDetail(w, http.StatusForbidden, "Not authorized to view this lead")
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

func (s *Server) createLead(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLeadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user := currentUser(r)

	lead := domain.Lead{
		CompanyName:    req.CompanyName,
		ContactName:    req.ContactName,
		Email:          req.Email,
		Phone:          req.Phone,
		JobTitle:       req.JobTitle,
		Industry:       req.Industry,
		CompanySize:    req.CompanySize,
		AnnualRevenue:  req.AnnualRevenue,
		Location:       req.Location,
		Status:         req.Status,
		Source:         req.Source,
		EstimatedValue: req.EstimatedValue,
		Notes:          req.Notes,
		AssignedTo:     &user.ID,
	}
	lead = s.insertLead(lead)
	respondJSON(w, http.StatusCreated, lead)
}

// insertLead applies defaults and stores lead
func (s *Server) insertLead(lead domain.Lead) domain.Lead {
	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}
	if !lead.Source.IsValid() {
		lead.Source = domain.LeadSourceOther
	}
	s.store.write(func(db *tables) {
		now := s.store.stamp()
		lead.CreatedAt, lead.UpdatedAt = now, now
		lead = db.leads.insert(lead, func(l *domain.Lead, id int64) { l.ID = id })
	})
	return lead
}

func (s *Server) updateLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateLeadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user := currentUser(r)

	var lead domain.Lead
	var status int
	s.store.write(func(db *tables) {
		if lead, ok = db.leads.get(id); !ok {
			status = http.StatusNotFound
			return
		}
		if !visibleTo(user, lead) {
			status = http.StatusForbidden
			return
		}
		applyLeadUpdate(&lead, req)
		lead.UpdatedAt = s.store.stamp()
		db.leads.put(id, lead)
		status = http.StatusOK
	})

	switch status {
	case http.StatusNotFound:
		respondDetail(w, status, "Lead not found")
	case http.StatusForbidden:
		respondDetail(w, status, "Not authorized to update this lead")
	default:
		respondJSON(w, status, lead)
	}
}

func applyLeadUpdate(lead *domain.Lead, req domain.UpdateLeadRequest) {
	if req.CompanyName != nil {
		lead.CompanyName = *req.CompanyName
	}
	if req.ContactName != nil {
		lead.ContactName = *req.ContactName
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Industry != nil {
		lead.Industry = *req.Industry
	}
	if req.Status != nil {
		lead.Status = *req.Status
	}
	if req.Source != nil && req.Source.IsValid() {
		lead.Source = *req.Source
	}
	if req.EstimatedValue != nil {
		lead.EstimatedValue = req.EstimatedValue
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	if req.AssignedTo != nil {
		lead.AssignedTo = req.AssignedTo
	}
}

func (s *Server) deleteLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user := currentUser(r)

	var status int
	s.store.write(func(db *tables) {
		if _, ok = db.leads.get(id); !ok {
			status = http.StatusNotFound
			return
		}
		if user.Role != roleAdmin && user.Role != roleMarketing {
			status = http.StatusForbidden
			return
		}
		db.leads.remove(id)
		status = http.StatusNoContent
	})

	switch status {
	case http.StatusNotFound:
		respondDetail(w, status, "Lead not found")
	case http.StatusForbidden:
		respondDetail(w, status, "Not authorized to delete leads")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadLeadsCSV imports one lead per CSV row. Rows that cannot be parsed
// are reported by 1-based data row number and do not stop the import.
func (s *Server) uploadLeadsCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondFieldErrors(w, "body", map[string]string{"file": "field required"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondFieldErrors(w, "body", map[string]string{"file": "field required"})
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		respondDetail(w, http.StatusBadRequest, "File must be a CSV")
		return
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	head, err := reader.Read()
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Could not read CSV header")
		return
	}
	columns := make(map[string]int, len(head))
	for i, name := range head {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	var missing []string
	for _, name := range requiredLeadColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		respondDetail(w, http.StatusBadRequest, fmt.Sprintf("Missing required columns: %v", missing))
		return
	}

	user := currentUser(r)
	result := domain.ImportResult{Errors: []domain.ImportRowError{}}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, domain.ImportRowError{Row: row, Error: err.Error()})
			continue
		}
		lead, err := leadFromRow(columns, record)
		if err != nil {
			result.Errors = append(result.Errors, domain.ImportRowError{Row: row, Error: err.Error()})
			continue
		}
		lead.AssignedTo = &user.ID
		s.insertLead(lead)
		result.CreatedCount++
	}

	result.Message = fmt.Sprintf("Successfully uploaded %d leads", result.CreatedCount)
	s.logger.Info("imported leads",
		zap.Int64("user_id", user.ID),
		zap.Int("created", result.CreatedCount),
		zap.Int("rejected", len(result.Errors)),
	)
	respondJSON(w, http.StatusOK, result)
}

func leadFromRow(columns map[string]int, record []string) (domain.Lead, error) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	number := func(name string) (*float64, error) {
		raw := cell(name)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("could not convert %s %q to float", name, raw)
		}
		return &v, nil
	}

	lead := domain.Lead{
		CompanyName: cell("company_name"),
		ContactName: cell("contact_name"),
		Email:       cell("email"),
		Phone:       cell("phone"),
		JobTitle:    cell("job_title"),
		Industry:    cell("industry"),
		CompanySize: cell("company_size"),
		Location:    cell("location"),
		Notes:       cell("notes"),
		Source:      domain.LeadSource(strings.ToLower(cell("source"))),
	}
	for _, name := range requiredLeadColumns {
		if cell(name) == "" {
			return domain.Lead{}, fmt.Errorf("%s is required", name)
		}
	}

	var err error
	if lead.AnnualRevenue, err = number("annual_revenue"); err != nil {
		return domain.Lead{}, err
	}
	if lead.EstimatedValue, err = number("estimated_value"); err != nil {
		return domain.Lead{}, err
	}
	return lead, nil
}
