package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/sales-intelligence/internal/domain"
)

const maxBodyBytes = 1 << 20

// fieldError is one entry of a FastAPI validation error body
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondDetail writes {"detail": "..."}
func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

// respondFieldErrors writes a 422 with one entry per field, ordered by field
func respondFieldErrors(w http.ResponseWriter, location string, fields map[string]string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	issues := make([]fieldError, 0, len(names))
	for _, name := range names {
		issues = append(issues, fieldError{Loc: []string{location, name}, Msg: fields[name], Type: "value_error"})
	}
	respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"detail": issues})
}

// decodeBody decodes and validates a JSON body into v. On failure the
// response has been written and false is returned.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Could not read request body")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			respondFieldErrors(w, "body", map[string]string{typeErr.Field: fmt.Sprintf("value is not a valid %s", typeErr.Type)})
			return false
		}
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"detail": []fieldError{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}},
		})
		return false
	}
	if reflect.Indirect(reflect.ValueOf(v)).Kind() != reflect.Struct {
		return true
	}
	if err := domain.Validate(v); err != nil {
		respondFieldErrors(w, "body", domain.ValidationErrors(err))
		return false
	}
	return true
}

// page is the skip/limit window of a list endpoint
type page struct {
	skip  int
	limit int
}

// pageParams reads skip (default 0) and limit (default 100)
func pageParams(w http.ResponseWriter, r *http.Request) (page, bool) {
	p := page{skip: 0, limit: 100}
	bad := map[string]string{}
	for name, dst := range map[string]*int{"skip": &p.skip, "limit": &p.limit} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			bad[name] = "value is not a valid non-negative integer"
			continue
		}
		*dst = n
	}
	if len(bad) > 0 {
		respondFieldErrors(w, "query", bad)
		return page{}, false
	}
	return p, true
}

func paginate[T any](rows []T, p page) []T {
	if p.skip >= len(rows) {
		return []T{}
	}
	rows = rows[p.skip:]
	if p.limit < len(rows) {
		rows = rows[:p.limit]
	}
	return rows
}

// pathID parses the {id} URL parameter; a malformed id is a 422 like any bad path value
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondFieldErrors(w, "path", map[string]string{"id": "value is not a valid integer"})
		return 0, false
	}
	return id, true
}
