package notifications

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for the feed.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a feed entry.
func (r *Repository) Create(ctx context.Context, action, target, details, actor string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notifications (action, target, details, actor, created_at)
VALUES ($1, $2, $3, $4, now())`, action, target, details, actor)
	return err
}

// ListForUser returns the newest entries the user has not cleared,
// carrying that user's read flag.
func (r *Repository) ListForUser(ctx context.Context, username string, limit int) ([]Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT n.id, n.action, n.target, n.details, n.actor, coalesce(u.is_read, false), n.created_at
FROM notifications n
LEFT JOIN user_notifications u ON u.notification_id = n.id AND u.username = $1
WHERE coalesce(u.cleared, false) = false
ORDER BY n.created_at DESC, n.id DESC
LIMIT $2`, username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Action, &n.Target, &n.Details, &n.Actor, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// LatestDetails returns the details of the newest feed entry matching
// action and target, or "" when none was ever recorded.
func (r *Repository) LatestDetails(ctx context.Context, action, target string) (string, error) {
	var details string
	err := r.pool.QueryRow(ctx,
		`SELECT details FROM notifications
WHERE action = $1 AND target = $2
ORDER BY created_at DESC, id DESC
LIMIT 1`, action, target).Scan(&details)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return details, nil
}

// MarkAllRead flags every entry as read for the user.
func (r *Repository) MarkAllRead(ctx context.Context, username string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_notifications (notification_id, username, is_read, cleared)
SELECT id, $1, true, false FROM notifications
ON CONFLICT (notification_id, username) DO UPDATE SET is_read = true`, username)
	return err
}

// ClearAll hides every entry from the user's feed.
func (r *Repository) ClearAll(ctx context.Context, username string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_notifications (notification_id, username, is_read, cleared)
SELECT id, $1, true, true FROM notifications
ON CONFLICT (notification_id, username) DO UPDATE SET is_read = true, cleared = true`, username)
	return err
}

// DeleteOlderThan removes entries past their retention and returns how
// many were dropped. Per-user state rows go with them via the foreign key.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
