package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/scanfact/scanfact/internal/common"
	"github.com/scanfact/scanfact/internal/server/auth"
	"github.com/scanfact/scanfact/internal/server/models"
	"github.com/scanfact/scanfact/internal/server/storage"
)

// UsersService is the admin-only account management surface.
// Deactivation is a reversible switch; deletion removes the account for
// good. The two are deliberately independent operations.
type UsersService struct {
	users storage.UsersRepository
}

func NewUsersService(users storage.UsersRepository) *UsersService {
	return &UsersService{users: users}
}

func (s *UsersService) guard(caller auth.Identity) error {
	if !caller.Role.CanManageUsers() {
		return common.ErrorForbidden
	}
	return nil
}

func (s *UsersService) List(ctx context.Context, caller auth.Identity) ([]models.User, error) {
	if err := s.guard(caller); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *UsersService) Create(ctx context.Context, caller auth.Identity, user models.User, password string) (*models.User, error) {
	if err := s.guard(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, &ValidationError{Field: "email", Message: "must not be empty"}
	}
	if len(password) < 8 {
		return nil, &ValidationError{Field: "password", Message: "must be at least 8 characters"}
	}
	if !user.Role.Valid() {
		return nil, &ValidationError{Field: "role", Message: "unknown role"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user.ID = uuid.NewString()
	user.PasswordHash = hash
	user.Active = true

	created, err := s.users.Create(ctx, &user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, &ValidationError{Field: "email", Message: "already registered"}
		}
		return nil, err
	}
	return created, nil
}

func (s *UsersService) Update(ctx context.Context, caller auth.Identity, user models.User) (*models.User, error) {
	if err := s.guard(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, &ValidationError{Field: "email", Message: "must not be empty"}
	}
	if !user.Role.Valid() {
		return nil, &ValidationError{Field: "role", Message: "unknown role"}
	}

	updated, err := s.users.Update(ctx, &user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, &ValidationError{Field: "email", Message: "already registered"}
		}
		return nil, err
	}
	return updated, nil
}

// SetActive toggles the account switch in either direction.
func (s *UsersService) SetActive(ctx context.Context, caller auth.Identity, userID string, active bool) (*models.User, error) {
	if err := s.guard(caller); err != nil {
		return nil, err
	}
	if userID == caller.ID {
		return nil, &ValidationError{Field: "id", Message: "cannot deactivate own account"}
	}
	return s.users.SetActive(ctx, userID, active)
}

func (s *UsersService) Delete(ctx context.Context, caller auth.Identity, userID string) error {
	if err := s.guard(caller); err != nil {
		return err
	}
	if userID == caller.ID {
		return &ValidationError{Field: "id", Message: "cannot delete own account"}
	}
	return s.users.Delete(ctx, userID)
}
