// Package domain instantiates the generic entity store per entity kind for
// one authenticated session. A Stores value is built at login from the
// identity's role and dropped at logout; nothing here is package-global.
package domain

import (
	"context"
	"sync"

	"github.com/scanfact/scanfact/internal/client/api"
	"github.com/scanfact/scanfact/internal/client/models"
	"github.com/scanfact/scanfact/internal/client/store"
	"github.com/scanfact/scanfact/internal/common"
)

// Stores aggregates the per-entity stores for the current session.
//
// Users is nil for roles without account administration; the view layer
// checks Role.CanManageUsers before reaching for it. Invoice stores are
// created per folder on first use and live as long as the session.
type Stores struct {
	Clients *store.Store[models.Client]
	Folders *store.Store[models.Folder]
	Users   *store.Store[models.User]

	apiClient *api.Client

	mu       sync.Mutex
	invoices map[string]*store.Store[models.Invoice]
}

// NewStores wires the per-entity gateways for the given role. The client
// gateway carries the role's list scope; a role with no defined scope gets
// a gateway that yields an empty collection instead of an unscoped call.
func NewStores(apiClient *api.Client, role common.Role) *Stores {
	var clients *store.Store[models.Client]
	if scope, ok := role.ListScope(); ok {
		clients = store.New[models.Client](api.NewClientsGateway(apiClient, scope))
	} else {
		clients = store.New[models.Client](emptyGateway[models.Client]{})
	}

	s := &Stores{
		Clients:   clients,
		Folders:   store.New[models.Folder](api.NewFoldersGateway(apiClient)),
		apiClient: apiClient,
		invoices:  make(map[string]*store.Store[models.Invoice]),
	}

	if role.CanManageUsers() {
		s.Users = store.New[models.User](api.NewUsersGateway(apiClient))
	}
	return s
}

// Invoices returns the invoice store for one folder, creating it on first
// use.
func (s *Stores) Invoices(folderID string) *store.Store[models.Invoice] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.invoices[folderID]; ok {
		return st
	}
	st := store.New[models.Invoice](api.NewInvoicesGateway(s.apiClient, folderID))
	s.invoices[folderID] = st
	return st
}

// emptyGateway is the explicit "no scope" gateway: list yields an empty
// collection and mutations are rejected.
type emptyGateway[T store.Entity] struct{}

func (emptyGateway[T]) List(ctx context.Context) ([]T, error) { return []T{}, nil }

func (emptyGateway[T]) Create(ctx context.Context, payload T) (T, error) {
	var zero T
	return zero, errNoScope
}

func (emptyGateway[T]) Update(ctx context.Context, id string, payload T) (T, error) {
	var zero T
	return zero, errNoScope
}

func (emptyGateway[T]) Remove(ctx context.Context, id string) error { return errNoScope }

func (emptyGateway[T]) Do(ctx context.Context, id string, action store.Action, body any) (T, error) {
	var zero T
	return zero, errNoScope
}
