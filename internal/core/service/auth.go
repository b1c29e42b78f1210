package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ma-nadeau/FRED/internal/core/domain"
	"github.com/ma-nadeau/FRED/internal/core/security"
)

// Auth handles signup and login. It owns the password hashing and token
// issuance; everything downstream only ever sees the verified user id.
type Auth struct {
	store  UserStore
	tokens *security.Tokens
}

// NewAuth creates the auth service.
func NewAuth(store UserStore, tokens *security.Tokens) *Auth {
	return &Auth{store: store, tokens: tokens}
}

// SignupParams holds the fields of a new registration.
type SignupParams struct {
	Name     string
	Email    string
	Age      int
	Password string
}

// Signup registers a user and returns a signed access token. A taken email
// fails with domain.ErrConflict.
func (s *Auth) Signup(ctx context.Context, p SignupParams) (string, error) {
	if p.Name == "" || p.Email == "" || p.Password == "" {
		return "", fmt.Errorf("name, email and password are required: %w", domain.ErrBadRequest)
	}

	if _, err := s.store.UserByEmail(ctx, p.Email); err == nil {
		return "", fmt.Errorf("email is already taken: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	hash, err := security.HashPassword(p.Password)
	if err != nil {
		return "", err
	}
	user, err := s.store.CreateUser(ctx, domain.User{
		Name:         p.Name,
		Email:        p.Email,
		Age:          p.Age,
		PasswordHash: hash,
	})
	if err != nil {
		return "", err
	}

	slog.Info("user signed up", "user_id", user.ID)
	return s.tokens.Issue(user.ID)
}

// Login verifies credentials and returns a signed access token. Wrong email
// or password both fail with domain.ErrUnauthorized.
func (s *Auth) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return "", err
	}
	if !security.CheckPassword(password, user.PasswordHash) {
		return "", fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}

	slog.Info("user logged in", "user_id", user.ID)
	return s.tokens.Issue(user.ID)
}
