package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/server/auth"
	"github.com/scanfact/scanfact/internal/server/config"
	"github.com/scanfact/scanfact/internal/server/models"
	"github.com/scanfact/scanfact/internal/server/storage"
)

type AuthService struct {
	users                 storage.UsersRepository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewAuthService(users storage.UsersRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		users:                 users,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	Token string
	User  *models.User
}

// Login verifies the password and issues an access token. A wrong email
// and a wrong password are indistinguishable to the caller. Deactivated
// accounts fail with ErrAccountDeactivated even when the password is
// correct.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	if !user.Active {
		return nil, common.ErrAccountDeactivated
	}

	token, err := auth.GenerateToken(auth.Identity{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Verify resolves a bearer token into the identity it was issued for,
// rejecting tokens whose account has since been deactivated or deleted.
func (s *AuthService) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	id, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.users.GetByID(ctx, id.ID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	if !user.Active {
		return nil, common.ErrAccountDeactivated
	}

	return id, nil
}

// EnsureAdmin seeds the first admin account on an empty database so a
// fresh deployment can be logged into.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	_, err = s.users.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  "Administrator",
		Role:         common.RoleAdmin,
		PasswordHash: hash,
		Active:       true,
	})
	if err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	return nil
}
