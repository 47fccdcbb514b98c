package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/scanfact/scanfact/internal/common"
)

// ExtractionFields is the closed set of fields an extraction produces.
// Every response carries all of them; a field the OCR could not read is
// the "N/A" sentinel.
var ExtractionFields = []string{
	"invoice_number",
	"invoice_date",
	"due_date",
	"vendor",
	"total",
	"currency",
}

// UnavailableFields returns a full field map with every value set to the
// sentinel, the shape a failed or unreachable extraction reports.
func UnavailableFields() map[string]string {
	fields := make(map[string]string, len(ExtractionFields))
	for _, f := range ExtractionFields {
		fields[f] = common.NotAvailable
	}
	return fields
}

// OCRClient extracts structured fields from an invoice image.
type OCRClient interface {
	Extract(ctx context.Context, imageURL string) (map[string]string, error)
}

// HTTPOCRClient talks to the OCR upstream over HTTP.
type HTTPOCRClient struct {
	endpoint string
	client   *http.Client
}

func NewHTTPOCRClient(endpoint string, timeout time.Duration) *HTTPOCRClient {
	return &HTTPOCRClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type extractRequest struct {
	ImageURL string `json:"image_url"`
}

type extractResponse struct {
	Fields map[string]string `json:"fields"`
}

func (c *HTTPOCRClient) Extract(ctx context.Context, imageURL string) (map[string]string, error) {
	body, err := json.Marshal(extractRequest{ImageURL: imageURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/extract", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr upstream: unexpected status %d", resp.StatusCode)
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("ocr upstream: %w", err)
	}

	// normalize: every known field present, unknown ones dropped
	fields := UnavailableFields()
	for _, f := range ExtractionFields {
		if v, ok := out.Fields[f]; ok && v != "" {
			fields[f] = v
		}
	}

	return fields, nil
}

// disabledOCR is used when no upstream is configured.
type disabledOCR struct{}

func (disabledOCR) Extract(ctx context.Context, imageURL string) (map[string]string, error) {
	return nil, fmt.Errorf("ocr upstream not configured")
}

// NewOCRClient picks the HTTP client when an endpoint is configured and
// the disabled stub otherwise.
func NewOCRClient(endpoint string, timeout time.Duration) OCRClient {
	if endpoint == "" {
		return disabledOCR{}
	}
	return NewHTTPOCRClient(endpoint, timeout)
}
