package api

import (
	"context"
	"fmt"

	"github.com/scanfact/scanfact/internal/client/models"
	"github.com/scanfact/scanfact/internal/client/store"
)

// ActionActivation toggles an account between active and deactivated.
// Reversible, unlike Remove.
const ActionActivation store.Action = "activation"

// ActivationBody is the payload of the activation action.
type ActivationBody struct {
	Active bool `json:"active"`
}

// UsersGateway drives the admin-only /users endpoints.
// It implements store.Gateway[models.User].
type UsersGateway struct {
	api *Client
}

func NewUsersGateway(api *Client) *UsersGateway {
	return &UsersGateway{api: api}
}

func (g *UsersGateway) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := g.api.get(ctx, "/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *UsersGateway) Create(ctx context.Context, payload models.User) (models.User, error) {
	var out models.User
	if err := g.api.post(ctx, "/users", payload, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (g *UsersGateway) Update(ctx context.Context, id string, payload models.User) (models.User, error) {
	var out models.User
	if err := g.api.put(ctx, "/users/"+id, payload, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (g *UsersGateway) Remove(ctx context.Context, id string) error {
	return g.api.delete(ctx, "/users/"+id)
}

func (g *UsersGateway) Do(ctx context.Context, id string, action store.Action, body any) (models.User, error) {
	if action != ActionActivation {
		return models.User{}, fmt.Errorf("users: unsupported action %q", action)
	}
	var out models.User
	if err := g.api.patch(ctx, "/users/"+id+"/activation", body, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}
