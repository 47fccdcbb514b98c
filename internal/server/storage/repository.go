// Package storage provides the PostgreSQL persistence layer of the
// invoice backend: one repository per aggregate plus a manager that owns
// the connection and runs migrations.
package storage

import (
	"context"
	"database/sql"

	"github.com/scanfact/scanfact/internal/server/models"
)

type UsersRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	SetActive(ctx context.Context, id string, active bool) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type ClientsRepository interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	GetByID(ctx context.Context, id string) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Client, error)
	ListAssigned(ctx context.Context, accountantID string) ([]models.Client, error)
	Update(ctx context.Context, client *models.Client) (*models.Client, error)
	Assign(ctx context.Context, clientID, accountantID string) (*models.Client, error)
	Delete(ctx context.Context, id string) error
}

type FoldersRepository interface {
	Create(ctx context.Context, folder *models.Folder) (*models.FolderDetail, error)
	GetByID(ctx context.Context, id string) (*models.FolderDetail, error)
	List(ctx context.Context) ([]models.FolderDetail, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.FolderDetail, error)
	ListByAccountant(ctx context.Context, accountantID string) ([]models.FolderDetail, error)
	Update(ctx context.Context, folder *models.Folder) (*models.FolderDetail, error)
	SetFavorite(ctx context.Context, id string, favorite bool) (*models.FolderDetail, error)
	SetArchived(ctx context.Context, id string, archived bool) (*models.FolderDetail, error)
	Delete(ctx context.Context, id string) error
}

type InvoicesRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	ListByFolder(ctx context.Context, folderID string) ([]models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	SetStatus(ctx context.Context, id string, status models.InvoiceStatus) (*models.Invoice, error)
	SetFields(ctx context.Context, id string, fields map[string]string) (*models.Invoice, error)
	Delete(ctx context.Context, id string) error
}

// RepositoryManager owns the database handle and hands out repositories
// that share it.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Users() UsersRepository
	Clients() ClientsRepository
	Folders() FoldersRepository
	Invoices() InvoicesRepository
}
