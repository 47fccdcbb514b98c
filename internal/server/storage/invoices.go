package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/dbx"
	"github.com/scanfact/scanfact/internal/server/models"
)

type PostgresInvoicesRepository struct {
	db dbx.DBTX
}

func NewPostgresInvoicesRepository(db dbx.DBTX) *PostgresInvoicesRepository {
	return &PostgresInvoicesRepository{db: db}
}

const invoiceColumns = `id, folder_id, invoice_name, image_url, status, fields, created_at`

func scanInvoice(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	i := &models.Invoice{}
	var fields []byte
	if err := row.Scan(&i.ID, &i.FolderID, &i.InvoiceName, &i.ImageURL, &i.Status, &fields, &i.CreatedAt); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &i.Fields); err != nil {
			return nil, fmt.Errorf("decoding invoice fields: %w", err)
		}
	}
	return i, nil
}

func marshalFields(fields map[string]string) (any, error) {
	if fields == nil {
		return nil, nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding invoice fields: %w", err)
	}
	return data, nil
}

func (r *PostgresInvoicesRepository) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {

	fields, err := marshalFields(invoice.Fields)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO invoices (id, folder_id, invoice_name, image_url, status, fields)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + invoiceColumns

	created, err := scanInvoice(r.db.QueryRowContext(ctx, query,
		invoice.ID, invoice.FolderID, invoice.InvoiceName, invoice.ImageURL, invoice.Status, fields))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresInvoicesRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	invoice, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return invoice, nil
}

func (r *PostgresInvoicesRepository) ListByFolder(ctx context.Context, folderID string) ([]models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE folder_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		invoices = append(invoices, *i)
	}

	return invoices, rows.Err()
}

func (r *PostgresInvoicesRepository) Update(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {

	query :=
		`UPDATE invoices SET invoice_name = $2, image_url = $3
		 WHERE id = $1
		 RETURNING ` + invoiceColumns

	updated, err := scanInvoice(r.db.QueryRowContext(ctx, query,
		invoice.ID, invoice.InvoiceName, invoice.ImageURL))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresInvoicesRepository) SetStatus(ctx context.Context, id string, status models.InvoiceStatus) (*models.Invoice, error) {

	query :=
		`UPDATE invoices SET status = $2
		 WHERE id = $1
		 RETURNING ` + invoiceColumns

	updated, err := scanInvoice(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresInvoicesRepository) SetFields(ctx context.Context, id string, fields map[string]string) (*models.Invoice, error) {

	data, err := marshalFields(fields)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE invoices SET fields = $2
		 WHERE id = $1
		 RETURNING ` + invoiceColumns

	updated, err := scanInvoice(r.db.QueryRowContext(ctx, query, id, data))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresInvoicesRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
