package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/server/auth"
	"github.com/scanfact/scanfact/internal/server/models"
	"github.com/scanfact/scanfact/internal/server/storage"
)

type FoldersService struct {
	folders storage.FoldersRepository
	clients storage.ClientsRepository
}

func NewFoldersService(folders storage.FoldersRepository, clients storage.ClientsRepository) *FoldersService {
	return &FoldersService{folders: folders, clients: clients}
}

// canSeeClient decides folder visibility: admins see everything,
// companies their own clients, accountants their assigned ones.
func canSeeClient(caller auth.Identity, client *models.Client) bool {
	switch caller.Role {
	case common.RoleAdmin:
		return true
	case common.RoleCompany:
		return client.CompanyID == caller.ID
	case common.RoleInternalAccountant, common.RoleIndependentAccountant:
		return client.AssignedAccountantID == caller.ID || client.CompanyID == caller.ID
	default:
		return false
	}
}

// List returns the folders of every client visible to the caller.
func (s *FoldersService) List(ctx context.Context, caller auth.Identity) ([]models.FolderDetail, error) {
	scope, ok := caller.Role.ListScope()
	if !ok {
		return nil, common.ErrorForbidden
	}

	switch scope {
	case common.ScopeAll:
		return s.folders.List(ctx)
	case common.ScopeCompany:
		return s.folders.ListByCompany(ctx, caller.ID)
	case common.ScopeAssigned:
		return s.folders.ListByAccountant(ctx, caller.ID)
	default:
		return nil, common.ErrorForbidden
	}
}

func (s *FoldersService) visibleFolder(ctx context.Context, caller auth.Identity, folderID string) (*models.FolderDetail, error) {
	detail, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if !canSeeClient(caller, &detail.Client) {
		// invisible folders read as absent, not as forbidden
		return nil, common.ErrorNotFound
	}
	return detail, nil
}

func (s *FoldersService) Get(ctx context.Context, caller auth.Identity, folderID string) (*models.FolderDetail, error) {
	return s.visibleFolder(ctx, caller, folderID)
}

func (s *FoldersService) Create(ctx context.Context, caller auth.Identity, folder models.Folder) (*models.FolderDetail, error) {
	if !caller.Role.CanManageFolders() {
		return nil, common.ErrorForbidden
	}
	if strings.TrimSpace(folder.FolderName) == "" {
		return nil, &ValidationError{Field: "folderName", Message: "must not be empty"}
	}

	client, err := s.clients.GetByID(ctx, folder.ClientID)
	if err != nil {
		return nil, &ValidationError{Field: "clientId", Message: "unknown client"}
	}
	if !canSeeClient(caller, client) {
		return nil, common.ErrorForbidden
	}

	folder.ID = uuid.NewString()

	return s.folders.Create(ctx, &folder)
}

func (s *FoldersService) Update(ctx context.Context, caller auth.Identity, folder models.Folder) (*models.FolderDetail, error) {
	if !caller.Role.CanManageFolders() {
		return nil, common.ErrorForbidden
	}
	if strings.TrimSpace(folder.FolderName) == "" {
		return nil, &ValidationError{Field: "folderName", Message: "must not be empty"}
	}
	if _, err := s.visibleFolder(ctx, caller, folder.ID); err != nil {
		return nil, err
	}

	return s.folders.Update(ctx, &folder)
}

// SetFavorite flips only the favorite flag.
func (s *FoldersService) SetFavorite(ctx context.Context, caller auth.Identity, folderID string, favorite bool) (*models.FolderDetail, error) {
	if !caller.Role.CanManageFolders() {
		return nil, common.ErrorForbidden
	}
	if _, err := s.visibleFolder(ctx, caller, folderID); err != nil {
		return nil, err
	}

	return s.folders.SetFavorite(ctx, folderID, favorite)
}

// SetArchived flips only the archived flag; the favorite flag survives
// and is honored again when the folder is unarchived.
func (s *FoldersService) SetArchived(ctx context.Context, caller auth.Identity, folderID string, archived bool) (*models.FolderDetail, error) {
	if !caller.Role.CanManageFolders() {
		return nil, common.ErrorForbidden
	}
	if _, err := s.visibleFolder(ctx, caller, folderID); err != nil {
		return nil, err
	}

	return s.folders.SetArchived(ctx, folderID, archived)
}

func (s *FoldersService) Delete(ctx context.Context, caller auth.Identity, folderID string) error {
	if !caller.Role.CanManageFolders() {
		return common.ErrorForbidden
	}
	if _, err := s.visibleFolder(ctx, caller, folderID); err != nil {
		return err
	}
	return s.folders.Delete(ctx, folderID)
}
