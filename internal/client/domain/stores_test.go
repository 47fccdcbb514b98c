package domain

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scanfact/scanfact/internal/client/api"
	"github.com/scanfact/scanfact/internal/common"
)

// recordingDoer captures request targets and answers everything with an
// empty JSON array.
type recordingDoer struct {
	targets []string
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	d.targets = append(d.targets, req.Method+" "+req.URL.RequestURI())
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("[]")),
		Header:     make(http.Header),
	}, nil
}

// Each role's client store must hit the endpoint variant its scope
// dictates, never an unscoped one.
func TestStores_ClientListScopedByRole(t *testing.T) {
	tests := []struct {
		role   common.Role
		target string
	}{
		{common.RoleInternalAccountant, "GET /clients?scope=assigned"},
		{common.RoleIndependentAccountant, "GET /clients?scope=assigned"},
		{common.RoleCompany, "GET /clients?scope=company"},
		{common.RoleAdmin, "GET /clients?scope=all"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			doer := &recordingDoer{}
			apiClient := api.New("http://backend", api.WithDoer(doer))

			s := NewStores(apiClient, tt.role)
			require.NoError(t, s.Clients.List(context.Background()))

			require.Equal(t, []string{tt.target}, doer.targets)
		})
	}
}

func TestStores_UsersOnlyForAdmins(t *testing.T) {
	apiClient := api.New("http://backend", api.WithDoer(&recordingDoer{}))

	require.NotNil(t, NewStores(apiClient, common.RoleAdmin).Users)
	require.Nil(t, NewStores(apiClient, common.RoleCompany).Users)
	require.Nil(t, NewStores(apiClient, common.RoleInternalAccountant).Users)
}

func TestStores_InvoiceStorePerFolderIsStable(t *testing.T) {
	apiClient := api.New("http://backend", api.WithDoer(&recordingDoer{}))
	s := NewStores(apiClient, common.RoleCompany)

	a := s.Invoices("f-1")
	b := s.Invoices("f-1")
	c := s.Invoices("f-2")

	require.Same(t, a, b, "one store per folder per session")
	require.NotSame(t, a, c)
}

func TestStores_InvoiceListTargetsFolder(t *testing.T) {
	doer := &recordingDoer{}
	apiClient := api.New("http://backend", api.WithDoer(doer))
	s := NewStores(apiClient, common.RoleCompany)

	require.NoError(t, s.Invoices("f-42").List(context.Background()))
	require.Equal(t, []string{"GET /invoices?folder=f-42"}, doer.targets)
}
