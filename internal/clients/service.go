package clients

import (
	"context"

	"github.com/speedbike/speedbike/internal/shared"
)

// RepositoryPort defines data access methods for clients.
type RepositoryPort interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id int64) (*Client, error)
	Create(ctx context.Context, in ClientInput) (*Client, error)
	Update(ctx context.Context, id int64, in ClientInput) (*Client, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles client directory logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns clients, optionally filtered by an accent-insensitive
// search over name and phone number.
func (s *Service) List(ctx context.Context, search string) ([]Client, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return all, nil
	}
	var out []Client
	for _, c := range all {
		if shared.MatchesFold(c.NomPrenom, search) || shared.MatchesFold(c.NumeroTelephone, search) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Get returns one client.
func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new client.
func (s *Service) Create(ctx context.Context, in ClientInput) (*Client, error) {
	return s.repo.Create(ctx, in)
}

// Update rewrites a client.
func (s *Service) Update(ctx context.Context, id int64, in ClientInput) (*Client, error) {
	return s.repo.Update(ctx, id, in)
}

// Delete removes a client.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
