package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

// ErrNotCSV is returned when an import file does not have a .csv extension
var ErrNotCSV = fmt.Errorf("%w: file must be a .csv", ErrInvalidRequest)

func (c *Client) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	var leads []domain.Lead
	if err := c.get(ctx, "/leads", filter.Query(), &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (c *Client) GetLead(ctx context.Context, id int64) (*domain.Lead, error) {
	var lead domain.Lead
	if err := c.get(ctx, idPath("leads", id), nil, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (c *Client) CreateLead(ctx context.Context, req domain.CreateLeadRequest) (*domain.Lead, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var lead domain.Lead
	if err := c.post(ctx, "/leads", req, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (c *Client) UpdateLead(ctx context.Context, id int64, req domain.UpdateLeadRequest) (*domain.Lead, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var lead domain.Lead
	if err := c.put(ctx, idPath("leads", id), req, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (c *Client) DeleteLead(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("leads", id))
}

// ImportLeadsCSV uploads a CSV of leads as multipart form field "file".
// The server validates columns; the client only checks the extension.
func (c *Client) ImportLeadsCSV(ctx context.Context, filename string, content io.Reader) (*domain.ImportResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, ErrNotCSV
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/leads/upload-csv", nil), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var result domain.ImportResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
