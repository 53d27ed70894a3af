package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/shared/auth"
)

// Service contains account business logic.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates an account and returns it with a signed token. If the
// email is already registered the existing account is returned with a fresh
// token instead of an error.
func (s *Service) Register(ctx context.Context, name, email, password, photoURL, role string) (User, string, bool, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return User{}, "", false, ErrInvalidInput
	}
	if len(password) < 6 {
		return User{}, "", false, ErrInvalidInput
	}
	if role == "" {
		role = RoleCandidate
	}
	if !ValidRole(role) {
		return User{}, "", false, ErrInvalidInput
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		token, signErr := auth.SignJWT(existing.ID, existing.Role)
		if signErr != nil {
			return User{}, "", false, signErr
		}
		return existing, token, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, "", false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, "", false, err
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		PhotoURL:     strings.TrimSpace(photoURL),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", false, err
	}

	token, err := auth.SignJWT(user.ID, user.Role)
	if err != nil {
		return User{}, "", false, err
	}
	return user, token, true, nil
}

// Login verifies credentials and returns the account with a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, "", ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := auth.SignJWT(user.ID, user.Role)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID loads a user.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if userID == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID)
}
