package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/server/config"
	"github.com/scanfact/scanfact/internal/server/models"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Minute,
	}
}

func seedUser(t *testing.T, repo *fakeUsersRepo, id, email, password string, role common.Role, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users[id] = models.User{
		ID: id, Email: email, DisplayName: email,
		Role: role, PasswordHash: hash, Active: active,
	}
}

func TestAuthLogin_Success(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(t, repo, "u-1", "alice@corp.example", "s3cret-pass", common.RoleCompany, true)
	s := NewAuthService(repo, testConfig())

	res, err := s.Login(context.Background(), "alice@corp.example", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "u-1", res.User.ID)

	id, err := s.Verify(context.Background(), res.Token)
	require.NoError(t, err)
	require.Equal(t, "u-1", id.ID)
	require.Equal(t, common.RoleCompany, id.Role)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(t, repo, "u-1", "alice@corp.example", "s3cret-pass", common.RoleCompany, true)
	s := NewAuthService(repo, testConfig())

	_, err := s.Login(context.Background(), "alice@corp.example", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthLogin_UnknownEmail(t *testing.T) {
	s := NewAuthService(newFakeUsersRepo(), testConfig())

	_, err := s.Login(context.Background(), "ghost@corp.example", "whatever")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthLogin_DeactivatedAccount(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(t, repo, "u-1", "alice@corp.example", "s3cret-pass", common.RoleCompany, false)
	s := NewAuthService(repo, testConfig())

	// correct password still fails while the account is off
	_, err := s.Login(context.Background(), "alice@corp.example", "s3cret-pass")
	require.ErrorIs(t, err, common.ErrAccountDeactivated)
}

func TestAuthVerify_DeactivatedAfterIssue(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(t, repo, "u-1", "alice@corp.example", "s3cret-pass", common.RoleCompany, true)
	s := NewAuthService(repo, testConfig())

	res, err := s.Login(context.Background(), "alice@corp.example", "s3cret-pass")
	require.NoError(t, err)

	u := repo.users["u-1"]
	u.Active = false
	repo.users["u-1"] = u

	_, err = s.Verify(context.Background(), res.Token)
	require.ErrorIs(t, err, common.ErrAccountDeactivated)
}

func TestEnsureAdmin_SeedsOnlyEmptyDatabase(t *testing.T) {
	repo := newFakeUsersRepo()
	s := NewAuthService(repo, testConfig())

	require.NoError(t, s.EnsureAdmin(context.Background(), "admin@scanfact.local", "admin-pass"))
	require.Len(t, repo.users, 1)

	admin, err := repo.GetByEmail(context.Background(), "admin@scanfact.local")
	require.NoError(t, err)
	require.Equal(t, common.RoleAdmin, admin.Role)

	// second call is a no-op
	require.NoError(t, s.EnsureAdmin(context.Background(), "other@scanfact.local", "other-pass"))
	require.Len(t, repo.users, 1)
}
