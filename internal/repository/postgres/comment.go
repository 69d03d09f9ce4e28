package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/lalith-99/fixit/internal/repository"
)

type CommentStore struct {
	db Querier
}

func NewCommentStore(db Querier) *CommentStore {
	return &CommentStore{db: db}
}

// A comment is visible to whoever can see its parent request: the owning
// tenant or any landlord.
const parentVisible = `(r.tenant_id = $1 OR ` + callerIsLandlord + `)`

func (s *CommentStore) ListByRequest(ctx context.Context, caller models.Caller, requestID uuid.UUID) ([]models.RequestComment, error) {
	// Oldest first so the thread reads top to bottom. Equal timestamps are
	// left in store order.
	query := `
		SELECT c.id, c.request_id, c.user_id, c.comment, c.created_at, p.full_name
		FROM request_comments c
		JOIN maintenance_requests r ON r.id = c.request_id
		LEFT JOIN profiles p ON p.id = c.user_id
		WHERE c.request_id = $2 AND ` + parentVisible + `
		ORDER BY c.created_at ASC`

	rows, err := s.db.Query(ctx, query, caller.UserID, requestID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.RequestComment, 0)
	for rows.Next() {
		var (
			c          models.RequestComment
			authorName *string
		)
		if err := rows.Scan(
			&c.ID,
			&c.RequestID,
			&c.UserID,
			&c.Comment,
			&c.CreatedAt,
			&authorName,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if authorName != nil {
			c.Profile = &models.ProfileSummary{FullName: *authorName}
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

// Create inserts the comment only if the parent request is visible to the
// caller. The author is always the caller.
func (s *CommentStore) Create(ctx context.Context, caller models.Caller, requestID uuid.UUID, comment string) (*models.RequestComment, error) {
	query := `
		INSERT INTO request_comments (request_id, user_id, comment, created_at)
		SELECT r.id, $1, $3, now()
		FROM maintenance_requests r
		WHERE r.id = $2 AND ` + parentVisible + `
		RETURNING id, request_id, user_id, comment, created_at`

	var c models.RequestComment
	err := s.db.QueryRow(ctx, query, caller.UserID, requestID, comment).Scan(
		&c.ID,
		&c.RequestID,
		&c.UserID,
		&c.Comment,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &c, nil
}
