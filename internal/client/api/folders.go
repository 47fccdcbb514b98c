package api

import (
	"context"
	"fmt"

	"github.com/scanfact/scanfact/internal/client/models"
	"github.com/scanfact/scanfact/internal/client/store"
)

// Folder actions. Both toggle a boolean server-side and return the updated
// record; the client never flips the flag ahead of the acknowledgement.
const (
	ActionFavorite store.Action = "favorite"
	ActionArchive  store.Action = "archive"
)

// FlagBody is the payload of the favorite and archive actions.
type FlagBody struct {
	Value bool `json:"value"`
}

// FoldersGateway drives the /folders endpoints.
// It implements store.Gateway[models.Folder].
type FoldersGateway struct {
	api *Client
}

func NewFoldersGateway(api *Client) *FoldersGateway {
	return &FoldersGateway{api: api}
}

func (g *FoldersGateway) List(ctx context.Context) ([]models.Folder, error) {
	var out []models.Folder
	if err := g.api.get(ctx, "/folders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *FoldersGateway) Create(ctx context.Context, payload models.Folder) (models.Folder, error) {
	var out models.Folder
	if err := g.api.post(ctx, "/folders", payload, &out); err != nil {
		return models.Folder{}, err
	}
	return out, nil
}

func (g *FoldersGateway) Update(ctx context.Context, id string, payload models.Folder) (models.Folder, error) {
	var out models.Folder
	if err := g.api.put(ctx, "/folders/"+id, payload, &out); err != nil {
		return models.Folder{}, err
	}
	return out, nil
}

func (g *FoldersGateway) Remove(ctx context.Context, id string) error {
	return g.api.delete(ctx, "/folders/"+id)
}

func (g *FoldersGateway) Do(ctx context.Context, id string, action store.Action, body any) (models.Folder, error) {
	switch action {
	case ActionFavorite, ActionArchive:
	default:
		return models.Folder{}, fmt.Errorf("folders: unsupported action %q", action)
	}
	var out models.Folder
	if err := g.api.patch(ctx, "/folders/"+id+"/"+string(action), body, &out); err != nil {
		return models.Folder{}, err
	}
	return out, nil
}
