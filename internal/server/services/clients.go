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

type ClientsService struct {
	clients storage.ClientsRepository
	users   storage.UsersRepository
}

func NewClientsService(clients storage.ClientsRepository, users storage.UsersRepository) *ClientsService {
	return &ClientsService{clients: clients, users: users}
}

// List returns the clients in the requested scope. The scope must be
// exactly the one the caller's role grants; anything else is forbidden
// rather than silently narrowed.
func (s *ClientsService) List(ctx context.Context, caller auth.Identity, scope common.ClientScope) ([]models.Client, error) {
	allowed, ok := caller.Role.ListScope()
	if !ok || scope != allowed {
		return nil, common.ErrorForbidden
	}

	switch scope {
	case common.ScopeAll:
		return s.clients.List(ctx)
	case common.ScopeCompany:
		return s.clients.ListByCompany(ctx, caller.ID)
	case common.ScopeAssigned:
		return s.clients.ListAssigned(ctx, caller.ID)
	default:
		return nil, common.ErrorForbidden
	}
}

func (s *ClientsService) canTouch(ctx context.Context, caller auth.Identity, clientID string) error {
	if !caller.Role.CanManageClients() {
		return common.ErrorForbidden
	}

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client.CompanyID != caller.ID {
		return common.ErrorForbidden
	}
	return nil
}

func (s *ClientsService) Create(ctx context.Context, caller auth.Identity, client models.Client) (*models.Client, error) {
	if !caller.Role.CanManageClients() {
		return nil, common.ErrorForbidden
	}
	if strings.TrimSpace(client.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	client.ID = uuid.NewString()
	client.CompanyID = caller.ID

	return s.clients.Create(ctx, &client)
}

func (s *ClientsService) Update(ctx context.Context, caller auth.Identity, client models.Client) (*models.Client, error) {
	if err := s.canTouch(ctx, caller, client.ID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(client.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	return s.clients.Update(ctx, &client)
}

// Assign points a client at an accountant account. Only roles with the
// assignment capability may do it, and the target must actually be an
// accountant.
func (s *ClientsService) Assign(ctx context.Context, caller auth.Identity, clientID, accountantID string) (*models.Client, error) {
	if !caller.Role.CanAssignAccountants() {
		return nil, common.ErrorForbidden
	}

	accountant, err := s.users.GetByID(ctx, accountantID)
	if err != nil {
		return nil, &ValidationError{Field: "accountantId", Message: "unknown accountant"}
	}
	switch accountant.Role {
	case common.RoleInternalAccountant, common.RoleIndependentAccountant:
	default:
		return nil, &ValidationError{Field: "accountantId", Message: "user is not an accountant"}
	}

	return s.clients.Assign(ctx, clientID, accountantID)
}

func (s *ClientsService) Delete(ctx context.Context, caller auth.Identity, clientID string) error {
	if err := s.canTouch(ctx, caller, clientID); err != nil {
		return err
	}
	return s.clients.Delete(ctx, clientID)
}
