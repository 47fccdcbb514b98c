package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/scanfact/scanfact/internal/client/models"
	"github.com/scanfact/scanfact/internal/common"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, opts...)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.Folder{})
	}), WithTokenFunc(func() string { return "tok-123" }))

	_, err := NewFoldersGateway(c).List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(LoginResult{Token: "t", Role: "ADMIN"})
	}))

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestClient_MapsUnauthorizedAndFiresHook(t *testing.T) {
	hookFired := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), WithAuthFailureHook(func() { hookFired = true }))

	_, err := NewFoldersGateway(c).List(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusUnauthorized, authErr.Status)
	require.True(t, hookFired, "401 on an authenticated call must trip the hook")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestClient_LoginFailureDoesNotFireHook(t *testing.T) {
	hookFired := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), WithAuthFailureHook(func() { hookFired = true }))

	_, err := c.Login(context.Background(), "a@b.c", "wrong")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.False(t, hookFired, "a failed login is not a stale session")
}

func TestClient_LoginDeactivatedAccount(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"code": common.DeactivatedCode})
	}))

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrAccountDeactivated, "deactivation must be distinguishable from bad credentials")
}

func TestClient_MapsNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := NewFoldersGateway(c).Remove(context.Background(), "gone")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestClient_MapsValidationErrorWithField(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"field":   "email",
			"message": "email already registered",
		})
	}))

	_, err := NewClientsGateway(c, common.ScopeCompany).Create(context.Background(), models.Client{Email: "dup@x.y"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "email", ve.Field)
	require.Equal(t, "email already registered", ve.Message)
}

func TestClient_MapsServerErrorToInternal(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := NewFoldersGateway(c).List(context.Background())
	require.ErrorIs(t, err, common.ErrorInternal)
}

func TestClient_TimeoutBecomesNetworkError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}), WithTimeout(20*time.Millisecond))

	_, err := NewFoldersGateway(c).List(context.Background())

	var ne *NetworkError
	require.ErrorAs(t, err, &ne, "a hung call must surface as NetworkError, not hang the store")
}

func TestClient_TransportFailureBecomesNetworkError(t *testing.T) {
	c := New("http://127.0.0.1:1", WithTimeout(100*time.Millisecond)) // nothing listens here

	_, err := NewFoldersGateway(c).List(context.Background())

	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	require.Error(t, errors.Unwrap(ne))
}
