package services

import (
	"context"
	"sort"

	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/server/models"
)

// In-memory repositories backing the service tests.

type fakeUsersRepo struct {
	users map[string]models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]models.User)}
}

func (r *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	// Same uniqueness the users.email column enforces.
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.users[user.ID] = *user
	u := *user
	return &u, nil
}

func (r *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUsersRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUsersRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	existing, ok := r.users[user.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	existing.Email = user.Email
	existing.DisplayName = user.DisplayName
	existing.Role = user.Role
	r.users[user.ID] = existing
	return &existing, nil
}

func (r *fakeUsersRepo) SetActive(ctx context.Context, id string, active bool) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Active = active
	r.users[id] = u
	return &u, nil
}

func (r *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeClientsRepo struct {
	clients map[string]models.Client
}

func newFakeClientsRepo() *fakeClientsRepo {
	return &fakeClientsRepo{clients: make(map[string]models.Client)}
}

func (r *fakeClientsRepo) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	r.clients[client.ID] = *client
	c := *client
	return &c, nil
}

func (r *fakeClientsRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *fakeClientsRepo) selectClients(keep func(models.Client) bool) []models.Client {
	var out []models.Client
	for _, c := range r.clients {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeClientsRepo) List(ctx context.Context) ([]models.Client, error) {
	return r.selectClients(func(models.Client) bool { return true }), nil
}

func (r *fakeClientsRepo) ListByCompany(ctx context.Context, companyID string) ([]models.Client, error) {
	return r.selectClients(func(c models.Client) bool { return c.CompanyID == companyID }), nil
}

func (r *fakeClientsRepo) ListAssigned(ctx context.Context, accountantID string) ([]models.Client, error) {
	return r.selectClients(func(c models.Client) bool { return c.AssignedAccountantID == accountantID }), nil
}

func (r *fakeClientsRepo) Update(ctx context.Context, client *models.Client) (*models.Client, error) {
	existing, ok := r.clients[client.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	existing.Name = client.Name
	existing.Email = client.Email
	existing.Phone = client.Phone
	r.clients[client.ID] = existing
	return &existing, nil
}

func (r *fakeClientsRepo) Assign(ctx context.Context, clientID, accountantID string) (*models.Client, error) {
	c, ok := r.clients[clientID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.AssignedAccountantID = accountantID
	r.clients[clientID] = c
	return &c, nil
}

func (r *fakeClientsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.clients, id)
	return nil
}

type fakeFoldersRepo struct {
	folders map[string]models.Folder
	clients *fakeClientsRepo
}

func newFakeFoldersRepo(clients *fakeClientsRepo) *fakeFoldersRepo {
	return &fakeFoldersRepo{folders: make(map[string]models.Folder), clients: clients}
}

func (r *fakeFoldersRepo) detail(f models.Folder) models.FolderDetail {
	c := r.clients.clients[f.ClientID]
	return models.FolderDetail{Folder: f, Client: c}
}

func (r *fakeFoldersRepo) Create(ctx context.Context, folder *models.Folder) (*models.FolderDetail, error) {
	r.folders[folder.ID] = *folder
	d := r.detail(*folder)
	return &d, nil
}

func (r *fakeFoldersRepo) GetByID(ctx context.Context, id string) (*models.FolderDetail, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	d := r.detail(f)
	return &d, nil
}

func (r *fakeFoldersRepo) selectFolders(keep func(models.FolderDetail) bool) []models.FolderDetail {
	var out []models.FolderDetail
	for _, f := range r.folders {
		d := r.detail(f)
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Folder.ID < out[j].Folder.ID })
	return out
}

func (r *fakeFoldersRepo) List(ctx context.Context) ([]models.FolderDetail, error) {
	return r.selectFolders(func(models.FolderDetail) bool { return true }), nil
}

func (r *fakeFoldersRepo) ListByCompany(ctx context.Context, companyID string) ([]models.FolderDetail, error) {
	return r.selectFolders(func(d models.FolderDetail) bool { return d.Client.CompanyID == companyID }), nil
}

func (r *fakeFoldersRepo) ListByAccountant(ctx context.Context, accountantID string) ([]models.FolderDetail, error) {
	return r.selectFolders(func(d models.FolderDetail) bool { return d.Client.AssignedAccountantID == accountantID }), nil
}

func (r *fakeFoldersRepo) Update(ctx context.Context, folder *models.Folder) (*models.FolderDetail, error) {
	existing, ok := r.folders[folder.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	existing.FolderName = folder.FolderName
	existing.Description = folder.Description
	r.folders[folder.ID] = existing
	d := r.detail(existing)
	return &d, nil
}

func (r *fakeFoldersRepo) SetFavorite(ctx context.Context, id string, favorite bool) (*models.FolderDetail, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	f.Favorite = favorite
	r.folders[id] = f
	d := r.detail(f)
	return &d, nil
}

func (r *fakeFoldersRepo) SetArchived(ctx context.Context, id string, archived bool) (*models.FolderDetail, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	f.Archived = archived
	r.folders[id] = f
	d := r.detail(f)
	return &d, nil
}

func (r *fakeFoldersRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.folders[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.folders, id)
	return nil
}

type fakeInvoicesRepo struct {
	invoices map[string]models.Invoice
}

func newFakeInvoicesRepo() *fakeInvoicesRepo {
	return &fakeInvoicesRepo{invoices: make(map[string]models.Invoice)}
}

func (r *fakeInvoicesRepo) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	r.invoices[invoice.ID] = *invoice
	i := *invoice
	return &i, nil
}

func (r *fakeInvoicesRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	i, ok := r.invoices[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &i, nil
}

func (r *fakeInvoicesRepo) ListByFolder(ctx context.Context, folderID string) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, i := range r.invoices {
		if i.FolderID == folderID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeInvoicesRepo) Update(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	existing, ok := r.invoices[invoice.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	existing.InvoiceName = invoice.InvoiceName
	existing.ImageURL = invoice.ImageURL
	r.invoices[invoice.ID] = existing
	return &existing, nil
}

func (r *fakeInvoicesRepo) SetStatus(ctx context.Context, id string, status models.InvoiceStatus) (*models.Invoice, error) {
	i, ok := r.invoices[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	i.Status = status
	r.invoices[id] = i
	return &i, nil
}

func (r *fakeInvoicesRepo) SetFields(ctx context.Context, id string, fields map[string]string) (*models.Invoice, error) {
	i, ok := r.invoices[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	i.Fields = fields
	r.invoices[id] = i
	return &i, nil
}

func (r *fakeInvoicesRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.invoices[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.invoices, id)
	return nil
}
