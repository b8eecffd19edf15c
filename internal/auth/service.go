// Package auth covers registration and credential checks. No session or
// token is issued on login; the embedding application is expected to add
// its own auth layer.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pjunjae/safetycam/internal/database"
	"github.com/pjunjae/safetycam/internal/models"
)

// ErrInvalidCredentials is returned on login when the username is unknown
// or the password does not match. The two cases are deliberately not
// distinguishable by the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	users *database.UserRepository
}

func NewService(users *database.UserRepository) *Service {
	return &Service{users: users}
}

// Register creates a user with a bcrypt-hashed password. A taken username
// reports database.ErrConflict.
func (s *Service) Register(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.CreateUser(ctx, models.NewUser(username, string(hash)))
}

// Login verifies a username/password pair against the stored hash.
func (s *Service) Login(ctx context.Context, username, password string) error {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}
