package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// RepositoryPort abstracts account lookup for the service.
type RepositoryPort interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// Service wraps authentication business rules.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Authenticate validates credentials. Accounts imported from the legacy
// system have no password hash yet; those log in on username alone until
// a password is set.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	}
	return user, nil
}
