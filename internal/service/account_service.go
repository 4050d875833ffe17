package service

import (
	"accounts/internal/auth"
	"accounts/internal/entity"
	"accounts/internal/model"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AccountService implements the account use-cases: registration, credential
// authentication, activation and profile updates.
type AccountService struct {
	repo model.Repository
}

// NewAccountService creates an account service backed by the given repository.
func NewAccountService(repo model.Repository) *AccountService {
	return &AccountService{repo: repo}
}

// RegisterInput carries the validated registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// ProfileUpdateInput carries optional profile changes. A nil Password leaves
// the stored hash untouched.
type ProfileUpdateInput struct {
	Name     *string
	Password *string
}

// Register creates a new account. The plaintext password is hashed exactly
// once, before persistence; the activation key is a fresh UUID whose
// uniqueness is ultimately guaranteed by the store constraint.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*entity.DbUser, error) {
	user := &entity.DbUser{
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		Name:          strings.TrimSpace(input.Name),
		ActivationKey: uuid.NewString(),
		Active:        true,
		Role:          entity.RoleUser,
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

// Authenticate validates an email/password pair and returns the matching
// account. Read-only: no state is mutated on either outcome.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entity.DbUser, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, ErrEmailRequired
	}

	user, err := s.repo.GetUserByEmail(ctx, trimmed)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrUserNotActive
	}

	return user, nil
}

// Activate marks the account owning the given key as active. An unknown key
// and an already-active account both succeed silently.
func (s *AccountService) Activate(ctx context.Context, key string) error {
	user, err := s.repo.GetUserByActivationKey(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}
	if user.Active {
		return nil
	}

	active := true
	if err := s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{Active: &active}); err != nil {
		return err
	}

	logrus.WithField("user_id", user.ID).Info("account activated")
	return nil
}

// UpdateProfile applies a self-service profile change. The password is
// hashed only when the field is present; an already-stored hash must never
// pass through bcrypt again.
func (s *AccountService) UpdateProfile(ctx context.Context, id uint, input ProfileUpdateInput) (*entity.DbUser, error) {
	updates := entity.UserUpdates{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		updates.Name = &name
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		updates.PasswordHash = &hash
	}

	if !updates.IsEmpty() {
		if err := s.repo.UpdateUser(ctx, id, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
