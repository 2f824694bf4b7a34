package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tasktrack-dev/tasktrack/internal/apperr"
	"github.com/tasktrack-dev/tasktrack/internal/authz"
	"github.com/tasktrack-dev/tasktrack/internal/models"
	"github.com/tasktrack-dev/tasktrack/internal/store"
)

const minPasswordLen = 8

type UserService struct {
	users *store.UserStore
}

func NewUserService(users *store.UserStore) *UserService {
	return &UserService{users: users}
}

// UserUpdate is the admin-only partial update. Nil fields are left
// unchanged; none of them accept null, so plain pointers suffice.
type UserUpdate struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Register creates a user with the fixed role "user". Elevation happens only
// through the admin-only Update.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	if len(password) < minPasswordLen {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLen)
	}

	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, apperr.ErrConflict
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	// The unique index is the real guard: a register racing this pre-check
	// still comes back as a conflict from the store.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves email+password to a user without revealing which of
// the two was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthenticated
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.ErrUnauthenticated
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, actor authz.Actor) ([]models.User, error) {
	if !authz.CanAdminister(actor) {
		return nil, apperr.ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, actor authz.Actor, id uint) (*models.User, error) {
	if !authz.CanAdminister(actor) {
		return nil, apperr.ErrForbidden
	}
	return s.users.ByID(ctx, id)
}

// Update is admin-only. Email changes must stay globally unique; role
// changes are restricted to the two valid values; passwords are re-hashed.
func (s *UserService) Update(ctx context.Context, actor authz.Actor, id uint, in UserUpdate) (*models.User, error) {
	if !authz.CanAdminister(actor) {
		return nil, apperr.ErrForbidden
	}

	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, apperr.Validation("email cannot be empty")
		}
		if email != user.Email {
			if _, err := s.users.ByEmail(ctx, email); err == nil {
				return nil, apperr.ErrConflict
			} else if !errors.Is(err, apperr.ErrNotFound) {
				return nil, err
			}
			user.Email = email
			changed = true
		}
	}

	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, apperr.Validation("password must be at least %d characters", minPasswordLen)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		changed = true
	}

	if in.Role != nil {
		role := models.Role(*in.Role)
		if !role.Valid() {
			return nil, apperr.Validation("invalid role %q", *in.Role)
		}
		user.Role = role
		changed = true
	}

	if !changed {
		return user, nil
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete is admin-only and cascades over the user's tasks at the store
// level.
func (s *UserService) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	if !authz.CanAdminister(actor) {
		return apperr.ErrForbidden
	}
	return s.users.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
