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

type PostgresFoldersRepository struct {
	db dbx.DBTX
}

func NewPostgresFoldersRepository(db dbx.DBTX) *PostgresFoldersRepository {
	return &PostgresFoldersRepository{db: db}
}

// folderDetailQuery joins each folder with its client row and invoice
// count so one round trip produces the full endpoint shape.
const folderDetailQuery = `
	SELECT f.id, f.client_id, f.folder_name, f.description, f.favorite, f.archived, f.created_at,
	       c.id, c.name, c.email, c.phone, c.company_id, COALESCE(c.assigned_accountant_id::text, ''), c.created_at,
	       (SELECT COUNT(*) FROM invoices i WHERE i.folder_id = f.id)
	FROM folders f
	JOIN clients c ON c.id = f.client_id`

func scanFolderDetail(row interface{ Scan(...any) error }) (*models.FolderDetail, error) {
	d := &models.FolderDetail{}
	err := row.Scan(
		&d.Folder.ID, &d.Folder.ClientID, &d.Folder.FolderName, &d.Folder.Description,
		&d.Folder.Favorite, &d.Folder.Archived, &d.Folder.CreatedAt,
		&d.Client.ID, &d.Client.Name, &d.Client.Email, &d.Client.Phone,
		&d.Client.CompanyID, &d.Client.AssignedAccountantID, &d.Client.CreatedAt,
		&d.InvoiceCount,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *PostgresFoldersRepository) getDetail(ctx context.Context, id string) (*models.FolderDetail, error) {
	d, err := scanFolderDetail(r.db.QueryRowContext(ctx, folderDetailQuery+` WHERE f.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *PostgresFoldersRepository) Create(ctx context.Context, folder *models.Folder) (*models.FolderDetail, error) {

	query :=
		`INSERT INTO folders (id, client_id, folder_name, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		folder.ID, folder.ClientID, folder.FolderName, folder.Description).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.getDetail(ctx, id)
}

func (r *PostgresFoldersRepository) GetByID(ctx context.Context, id string) (*models.FolderDetail, error) {
	return r.getDetail(ctx, id)
}

func (r *PostgresFoldersRepository) list(ctx context.Context, query string, args ...any) ([]models.FolderDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var folders []models.FolderDetail
	for rows.Next() {
		d, err := scanFolderDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		folders = append(folders, *d)
	}

	return folders, rows.Err()
}

func (r *PostgresFoldersRepository) List(ctx context.Context) ([]models.FolderDetail, error) {
	return r.list(ctx, folderDetailQuery+` ORDER BY f.created_at, f.id`)
}

func (r *PostgresFoldersRepository) ListByCompany(ctx context.Context, companyID string) ([]models.FolderDetail, error) {
	return r.list(ctx,
		folderDetailQuery+` WHERE c.company_id = $1 ORDER BY f.created_at, f.id`, companyID)
}

func (r *PostgresFoldersRepository) ListByAccountant(ctx context.Context, accountantID string) ([]models.FolderDetail, error) {
	return r.list(ctx,
		folderDetailQuery+` WHERE c.assigned_accountant_id = $1 ORDER BY f.created_at, f.id`, accountantID)
}

func (r *PostgresFoldersRepository) Update(ctx context.Context, folder *models.Folder) (*models.FolderDetail, error) {

	query :=
		`UPDATE folders SET folder_name = $2, description = $3
		 WHERE id = $1
		 RETURNING id`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		folder.ID, folder.FolderName, folder.Description).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.getDetail(ctx, id)
}

func (r *PostgresFoldersRepository) setFlag(ctx context.Context, id, column string, value bool) (*models.FolderDetail, error) {
	// column comes from the two callers below, never from user input
	query := fmt.Sprintf(`UPDATE folders SET %s = $2 WHERE id = $1 RETURNING id`, column)

	var got string
	err := r.db.QueryRowContext(ctx, query, id, value).Scan(&got)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.getDetail(ctx, got)
}

func (r *PostgresFoldersRepository) SetFavorite(ctx context.Context, id string, favorite bool) (*models.FolderDetail, error) {
	return r.setFlag(ctx, id, "favorite", favorite)
}

func (r *PostgresFoldersRepository) SetArchived(ctx context.Context, id string, archived bool) (*models.FolderDetail, error) {
	return r.setFlag(ctx, id, "archived", archived)
}

func (r *PostgresFoldersRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = $1`, id)
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
