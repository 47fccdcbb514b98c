package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/scanfact/scanfact/internal/client/models"
	"github.com/scanfact/scanfact/internal/client/store"
	"github.com/scanfact/scanfact/internal/common"
)

// ActionAssign assigns a client to an accountant. Body: AssignBody.
const ActionAssign store.Action = "assign"

// AssignBody is the payload of the assign action.
type AssignBody struct {
	AccountantID string `json:"accountantId"`
}

// ClientsGateway drives the /clients endpoints under one role scope.
// It implements store.Gateway[models.Client].
type ClientsGateway struct {
	api   *Client
	scope common.ClientScope
}

func NewClientsGateway(api *Client, scope common.ClientScope) *ClientsGateway {
	return &ClientsGateway{api: api, scope: scope}
}

func (g *ClientsGateway) List(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	if err := g.api.get(ctx, fmt.Sprintf("/clients?scope=%s", g.scope), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *ClientsGateway) Create(ctx context.Context, payload models.Client) (models.Client, error) {
	var out models.Client
	if err := g.api.post(ctx, "/clients", payload, &out); err != nil {
		return models.Client{}, err
	}
	return out, nil
}

func (g *ClientsGateway) Update(ctx context.Context, id string, payload models.Client) (models.Client, error) {
	var out models.Client
	if err := g.api.put(ctx, "/clients/"+id, payload, &out); err != nil {
		return models.Client{}, err
	}
	return out, nil
}

func (g *ClientsGateway) Remove(ctx context.Context, id string) error {
	return g.api.delete(ctx, "/clients/"+id)
}

func (g *ClientsGateway) Do(ctx context.Context, id string, action store.Action, body any) (models.Client, error) {
	if action != ActionAssign {
		return models.Client{}, fmt.Errorf("clients: unsupported action %q", action)
	}
	var out models.Client
	if err := g.api.do(ctx, http.MethodPatch, "/clients/"+id+"/assign", body, &out, true); err != nil {
		return models.Client{}, err
	}
	return out, nil
}
