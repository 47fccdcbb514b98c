package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/scanfact/scanfact/internal/server/storage/migrations"
)

type PostgresRepositoryManager struct {
	db       *sql.DB
	users    UsersRepository
	clients  ClientsRepository
	folders  FoldersRepository
	invoices InvoicesRepository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) Users() UsersRepository {
	return m.users
}

func (m *PostgresRepositoryManager) Clients() ClientsRepository {
	return m.clients
}

func (m *PostgresRepositoryManager) Folders() FoldersRepository {
	return m.folders
}

func (m *PostgresRepositoryManager) Invoices() InvoicesRepository {
	return m.invoices
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:       db,
		users:    NewPostgresUsersRepository(db),
		clients:  NewPostgresClientsRepository(db),
		folders:  NewPostgresFoldersRepository(db),
		invoices: NewPostgresInvoicesRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
