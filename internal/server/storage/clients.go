package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/dbx"
	"github.com/scanfact/scanfact/internal/server/models"
)

type PostgresClientsRepository struct {
	db dbx.DBTX
}

func NewPostgresClientsRepository(db dbx.DBTX) *PostgresClientsRepository {
	return &PostgresClientsRepository{db: db}
}

const clientColumns = `id, name, email, phone, company_id, COALESCE(assigned_accountant_id::text, ''), created_at`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	c := &models.Client{}
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CompanyID, &c.AssignedAccountantID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresClientsRepository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {

	query :=
		`INSERT INTO clients (id, name, email, phone, company_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING ` + clientColumns

	created, err := scanClient(r.db.QueryRowContext(ctx, query,
		client.ID, client.Name, client.Email, client.Phone, client.CompanyID))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresClientsRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return client, nil
}

func (r *PostgresClientsRepository) list(ctx context.Context, query string, args ...any) ([]models.Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		clients = append(clients, *c)
	}

	return clients, rows.Err()
}

func (r *PostgresClientsRepository) List(ctx context.Context) ([]models.Client, error) {
	return r.list(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY created_at, id`)
}

func (r *PostgresClientsRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Client, error) {
	return r.list(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE company_id = $1 ORDER BY created_at, id`, companyID)
}

func (r *PostgresClientsRepository) ListAssigned(ctx context.Context, accountantID string) ([]models.Client, error) {
	return r.list(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE assigned_accountant_id = $1 ORDER BY created_at, id`, accountantID)
}

func (r *PostgresClientsRepository) Update(ctx context.Context, client *models.Client) (*models.Client, error) {

	query :=
		`UPDATE clients SET name = $2, email = $3, phone = $4
		 WHERE id = $1
		 RETURNING ` + clientColumns

	updated, err := scanClient(r.db.QueryRowContext(ctx, query,
		client.ID, client.Name, client.Email, client.Phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresClientsRepository) Assign(ctx context.Context, clientID, accountantID string) (*models.Client, error) {

	query :=
		`UPDATE clients SET assigned_accountant_id = $2
		 WHERE id = $1
		 RETURNING ` + clientColumns

	updated, err := scanClient(r.db.QueryRowContext(ctx, query, clientID, accountantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresClientsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
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
