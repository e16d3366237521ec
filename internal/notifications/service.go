package notifications

import (
	"context"
	"log/slog"
	"time"

	"github.com/speedbike/speedbike/internal/shared"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	Create(ctx context.Context, action, target, details, actor string) error
	LatestDetails(ctx context.Context, action, target string) (string, error)
	ListForUser(ctx context.Context, username string, limit int) ([]Notification, error)
	MarkAllRead(ctx context.Context, username string) error
	ClearAll(ctx context.Context, username string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service records and serves the activity feed.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
}

// NewService constructs a service.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends a feed entry. The actor is taken from the session when
// one is present; background jobs record without one. Feed writes never
// fail the operation that triggered them.
func (s *Service) Record(ctx context.Context, action, target, details string) {
	actor := ""
	if sess := shared.SessionFromContext(ctx); sess != nil {
		actor = sess.User()
	}
	if err := s.repo.Create(ctx, action, target, details, actor); err != nil {
		s.logger.Error("record notification", "action", action, "target", target, "error", err)
	}
}

// LastRecorded returns the details of the newest entry for the given
// action and target, or "" when nothing matches.
func (s *Service) LastRecorded(ctx context.Context, action, target string) (string, error) {
	return s.repo.LatestDetails(ctx, action, target)
}

// List returns the user's visible feed, newest first.
func (s *Service) List(ctx context.Context, username string) ([]Notification, error) {
	return s.repo.ListForUser(ctx, username, feedLimit)
}

// MarkAllRead flags the whole feed as read for the user.
func (s *Service) MarkAllRead(ctx context.Context, username string) error {
	return s.repo.MarkAllRead(ctx, username)
}

// Clear hides the whole feed for the user.
func (s *Service) Clear(ctx context.Context, username string) error {
	return s.repo.ClearAll(ctx, username)
}

// Prune drops entries older than maxAge.
func (s *Service) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, time.Now().Add(-maxAge))
}
