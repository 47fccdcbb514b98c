package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/scanfact/scanfact/internal/client/api"
	"github.com/scanfact/scanfact/internal/client/domain"
	"github.com/scanfact/scanfact/internal/client/models"
	"github.com/scanfact/scanfact/internal/client/store"
)

func (a *App) printInvoice(inv models.Invoice) {
	fmt.Fprintf(a.out, "%s  %-20s status=%s\n", inv.ID, inv.InvoiceName, inv.Status)
	if len(inv.Fields) == 0 {
		return
	}
	keys := make([]string, 0, len(inv.Fields))
	for k := range inv.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "    %-15s %s\n", k, inv.Fields[k])
	}
}

// Invoices lists one folder's invoices.
func (a *App) Invoices(ctx context.Context, args []string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: invoices <folderID> [page] [search]")
		return nil
	}
	folderID, rest := args[0], args[1:]

	inv := st.Invoices(folderID)
	if err := inv.List(ctx); err != nil {
		a.reportErr(err)
		return err
	}

	page := inv.View(a.parseQuery(rest), domain.MatchInvoice)
	for _, i := range page.Items {
		a.printInvoice(i)
	}
	fmt.Fprintln(a.out, footer(page))
	return nil
}

// AddInvoice registers an uploaded invoice image in a folder. New
// invoices always start pending.
func (a *App) AddInvoice(ctx context.Context, args []string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	folderID, ok := a.needOne(args, "addinvoice <folderID>")
	if !ok {
		return nil
	}

	var inv models.Invoice
	var err error
	if inv.InvoiceName, err = GetSimpleText(a.reader, "Invoice name", a.out); err != nil {
		return err
	}
	if inv.ImageURL, err = GetSimpleText(a.reader, "Image URL", a.out); err != nil {
		return err
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("Add invoice %q to folder %s?", inv.InvoiceName, folderID), a.out); err != nil || !ok {
		return err
	}

	created, err := st.Invoices(folderID).Create(ctx, inv)
	if err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintf(a.out, "Created invoice %s (%s)\n", created.InvoiceName, created.ID)
	return nil
}

// DeleteInvoice removes one invoice after confirmation.
func (a *App) DeleteInvoice(ctx context.Context, args []string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: delinvoice <folderID> <id>")
		return nil
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("Delete invoice %s?", args[1]), a.out); err != nil || !ok {
		return err
	}

	if err := st.Invoices(args[0]).Remove(ctx, args[1]); err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) invoiceAction(ctx context.Context, args []string, action store.Action, usage, prompt string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return nil
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf(prompt, args[1]), a.out); err != nil || !ok {
		return err
	}

	updated, err := st.Invoices(args[0]).Do(ctx, args[1], action, nil)
	if err != nil {
		if errors.Is(err, api.ErrExtractionFailed) {
			fmt.Fprintln(a.out, "Extraction failed: no field could be read. Try again later.")
			return err
		}
		a.reportErr(err)
		return err
	}
	a.printInvoice(updated)
	return nil
}

// ValidateInvoice accepts the extracted fields (pending → validated).
func (a *App) ValidateInvoice(ctx context.Context, args []string) error {
	return a.invoiceAction(ctx, args, api.ActionValidate,
		"validate <folderID> <id>", "Mark invoice %s as validated?")
}

// CancelInvoice rejects the extraction (pending → failed).
func (a *App) CancelInvoice(ctx context.Context, args []string) error {
	return a.invoiceAction(ctx, args, api.ActionCancel,
		"cancel <folderID> <id>", "Mark invoice %s as failed?")
}

// ExtractInvoice runs OCR extraction over the invoice image.
func (a *App) ExtractInvoice(ctx context.Context, args []string) error {
	return a.invoiceAction(ctx, args, api.ActionExtract,
		"extract <folderID> <id>", "Run extraction for invoice %s?")
}
