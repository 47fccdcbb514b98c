package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/server/models"
)

type fakeOCR struct {
	fields map[string]string
	err    error
	calls  int
}

func (f *fakeOCR) Extract(ctx context.Context, imageURL string) (map[string]string, error) {
	f.calls++
	return f.fields, f.err
}

func newInvoicesFixture(ocr OCRClient) (*InvoicesService, *fakeInvoicesRepo) {
	folders, _ := newFoldersFixture()
	invoices := newFakeInvoicesRepo()
	invoices.invoices["i-1"] = models.Invoice{ID: "i-1", FolderID: "f-1", InvoiceName: "july.pdf", Status: models.InvoicePending}
	invoices.invoices["i-2"] = models.Invoice{ID: "i-2", FolderID: "f-1", InvoiceName: "aug.pdf", Status: models.InvoiceValidated}
	invoices.invoices["i-3"] = models.Invoice{ID: "i-3", FolderID: "f-3", InvoiceName: "other.pdf", Status: models.InvoicePending}
	return NewInvoicesService(invoices, folders, ocr), invoices
}

func TestInvoicesList_FolderVisibilityApplies(t *testing.T) {
	s, _ := newInvoicesFixture(&fakeOCR{})
	caller := companyCaller("comp-1")

	got, err := s.ListByFolder(context.Background(), caller, "f-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	_, err = s.ListByFolder(context.Background(), caller, "f-3")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInvoicesCreate_StartsPending(t *testing.T) {
	s, _ := newInvoicesFixture(&fakeOCR{})

	got, err := s.Create(context.Background(), companyCaller("comp-1"), models.Invoice{
		FolderID: "f-1", InvoiceName: "sept.pdf", Status: models.InvoiceValidated,
	})
	require.NoError(t, err)
	// requested status is ignored; every new invoice starts pending
	require.Equal(t, models.InvoicePending, got.Status)
	require.NotEmpty(t, got.ID)
}

func TestInvoicesValidate_Transitions(t *testing.T) {
	s, _ := newInvoicesFixture(&fakeOCR{})
	caller := companyCaller("comp-1")

	got, err := s.Validate(context.Background(), caller, "i-1")
	require.NoError(t, err)
	require.Equal(t, models.InvoiceValidated, got.Status)

	// a second validate is rejected
	_, err = s.Validate(context.Background(), caller, "i-1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestInvoicesCancel_OnlyPending(t *testing.T) {
	s, _ := newInvoicesFixture(&fakeOCR{})
	caller := companyCaller("comp-1")

	got, err := s.Cancel(context.Background(), caller, "i-1")
	require.NoError(t, err)
	require.Equal(t, models.InvoiceFailed, got.Status)

	_, err = s.Cancel(context.Background(), caller, "i-2")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestInvoicesExtract_Success(t *testing.T) {
	ocr := &fakeOCR{fields: map[string]string{"total": "42.00", "vendor": "Acme"}}
	s, repo := newInvoicesFixture(ocr)

	got, err := s.Extract(context.Background(), companyCaller("comp-1"), "i-1")
	require.NoError(t, err)
	require.Equal(t, 1, ocr.calls)
	require.Equal(t, "42.00", got.Fields["total"])
	require.Equal(t, got.Fields, repo.invoices["i-1"].Fields)
}

func TestInvoicesExtract_UpstreamDownYieldsSentinels(t *testing.T) {
	ocr := &fakeOCR{err: errors.New("connection refused")}
	s, _ := newInvoicesFixture(ocr)

	got, err := s.Extract(context.Background(), companyCaller("comp-1"), "i-1")
	require.NoError(t, err)
	require.Equal(t, UnavailableFields(), got.Fields)
	for _, v := range got.Fields {
		require.Equal(t, common.NotAvailable, v)
	}
}

func TestInvoicesDelete_InvisibleFolder(t *testing.T) {
	s, _ := newInvoicesFixture(&fakeOCR{})

	err := s.Delete(context.Background(), companyCaller("comp-1"), "i-3")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
