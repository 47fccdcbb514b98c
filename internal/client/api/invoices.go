package api

import (
	"context"
	"fmt"

	"github.com/scanfact/scanfact/internal/client/models"
	"github.com/scanfact/scanfact/internal/client/store"
	"github.com/scanfact/scanfact/internal/common"
)

// Invoice actions.
const (
	// ActionValidate: user accepted the extracted fields (status → validated).
	ActionValidate store.Action = "validate"
	// ActionCancel: user rejected the extraction (status → failed).
	ActionCancel store.Action = "cancel"
	// ActionExtract: run OCR extraction; populates the field map.
	ActionExtract store.Action = "extract"
)

// InvoicesGateway drives the /invoices endpoints for one folder's invoices.
// It implements store.Gateway[models.Invoice].
type InvoicesGateway struct {
	api      *Client
	folderID string
}

func NewInvoicesGateway(api *Client, folderID string) *InvoicesGateway {
	return &InvoicesGateway{api: api, folderID: folderID}
}

func (g *InvoicesGateway) List(ctx context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	if err := g.api.get(ctx, "/invoices?folder="+g.folderID, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *InvoicesGateway) Create(ctx context.Context, payload models.Invoice) (models.Invoice, error) {
	payload.FolderID = g.folderID
	var out models.Invoice
	if err := g.api.post(ctx, "/invoices", payload, &out); err != nil {
		return models.Invoice{}, err
	}
	return out, nil
}

func (g *InvoicesGateway) Update(ctx context.Context, id string, payload models.Invoice) (models.Invoice, error) {
	var out models.Invoice
	if err := g.api.put(ctx, "/invoices/"+id, payload, &out); err != nil {
		return models.Invoice{}, err
	}
	return out, nil
}

func (g *InvoicesGateway) Remove(ctx context.Context, id string) error {
	return g.api.delete(ctx, "/invoices/"+id)
}

func (g *InvoicesGateway) Do(ctx context.Context, id string, action store.Action, body any) (models.Invoice, error) {
	var out models.Invoice

	switch action {
	case ActionValidate, ActionCancel:
		if err := g.api.patch(ctx, "/invoices/"+id+"/"+string(action), body, &out); err != nil {
			return models.Invoice{}, err
		}
		return out, nil

	case ActionExtract:
		// Extraction is a POST: it asks an external OCR service to run, not
		// a flag flip. The result is untrusted: any field may come back as
		// the not-available sentinel, and all-sentinel means the extraction
		// failed and should be retried, not an empty invoice.
		if err := g.api.post(ctx, "/invoices/"+id+"/extract", nil, &out); err != nil {
			return models.Invoice{}, err
		}
		if extractionFailed(out.Fields) {
			return models.Invoice{}, ErrExtractionFailed
		}
		return out, nil

	default:
		return models.Invoice{}, fmt.Errorf("invoices: unsupported action %q", action)
	}
}

// extractionFailed reports whether fields is empty or consists solely of
// the not-available sentinel.
func extractionFailed(fields map[string]string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, v := range fields {
		if v != common.NotAvailable {
			return false
		}
	}
	return true
}
