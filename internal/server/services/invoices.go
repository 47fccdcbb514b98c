package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/scanfact/scanfact/internal/server/auth"
	"github.com/scanfact/scanfact/internal/server/models"
	"github.com/scanfact/scanfact/internal/server/storage"
)

type InvoicesService struct {
	invoices storage.InvoicesRepository
	folders  *FoldersService
	ocr      OCRClient
}

func NewInvoicesService(invoices storage.InvoicesRepository, folders *FoldersService, ocr OCRClient) *InvoicesService {
	return &InvoicesService{invoices: invoices, folders: folders, ocr: ocr}
}

// ListByFolder returns the invoices of one folder. Folder visibility is
// delegated to the folders service, so an invisible folder lists as
// not found.
func (s *InvoicesService) ListByFolder(ctx context.Context, caller auth.Identity, folderID string) ([]models.Invoice, error) {
	if _, err := s.folders.Get(ctx, caller, folderID); err != nil {
		return nil, err
	}
	return s.invoices.ListByFolder(ctx, folderID)
}

func (s *InvoicesService) visibleInvoice(ctx context.Context, caller auth.Identity, invoiceID string) (*models.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.folders.Get(ctx, caller, invoice.FolderID); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoicesService) Create(ctx context.Context, caller auth.Identity, invoice models.Invoice) (*models.Invoice, error) {
	if strings.TrimSpace(invoice.InvoiceName) == "" {
		return nil, &ValidationError{Field: "invoiceName", Message: "must not be empty"}
	}
	if _, err := s.folders.Get(ctx, caller, invoice.FolderID); err != nil {
		return nil, err
	}

	invoice.ID = uuid.NewString()
	invoice.Status = models.InvoicePending

	return s.invoices.Create(ctx, &invoice)
}

func (s *InvoicesService) Update(ctx context.Context, caller auth.Identity, invoice models.Invoice) (*models.Invoice, error) {
	if strings.TrimSpace(invoice.InvoiceName) == "" {
		return nil, &ValidationError{Field: "invoiceName", Message: "must not be empty"}
	}
	if _, err := s.visibleInvoice(ctx, caller, invoice.ID); err != nil {
		return nil, err
	}

	return s.invoices.Update(ctx, &invoice)
}

// Validate accepts the extracted fields of a pending invoice.
func (s *InvoicesService) Validate(ctx context.Context, caller auth.Identity, invoiceID string) (*models.Invoice, error) {
	invoice, err := s.visibleInvoice(ctx, caller, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != models.InvoicePending {
		return nil, &ValidationError{Field: "status", Message: "only a pending invoice can be validated"}
	}

	return s.invoices.SetStatus(ctx, invoiceID, models.InvoiceValidated)
}

// Cancel rejects the extraction of a pending invoice.
func (s *InvoicesService) Cancel(ctx context.Context, caller auth.Identity, invoiceID string) (*models.Invoice, error) {
	invoice, err := s.visibleInvoice(ctx, caller, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != models.InvoicePending {
		return nil, &ValidationError{Field: "status", Message: "only a pending invoice can be cancelled"}
	}

	return s.invoices.SetStatus(ctx, invoiceID, models.InvoiceFailed)
}

// Extract runs OCR on the invoice image and stores the result. An
// unreachable or failing upstream is not an error: the invoice keeps an
// all-sentinel field map, which the client reads as a failed extraction.
func (s *InvoicesService) Extract(ctx context.Context, caller auth.Identity, invoiceID string) (*models.Invoice, error) {
	invoice, err := s.visibleInvoice(ctx, caller, invoiceID)
	if err != nil {
		return nil, err
	}

	fields, err := s.ocr.Extract(ctx, invoice.ImageURL)
	if err != nil {
		fields = UnavailableFields()
	}

	return s.invoices.SetFields(ctx, invoiceID, fields)
}

func (s *InvoicesService) Delete(ctx context.Context, caller auth.Identity, invoiceID string) error {
	if _, err := s.visibleInvoice(ctx, caller, invoiceID); err != nil {
		return err
	}
	return s.invoices.Delete(ctx, invoiceID)
}
