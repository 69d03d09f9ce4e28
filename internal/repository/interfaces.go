package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/models"
)

// ErrNotFound is returned when a row does not exist or the caller's
// row-level policy hides it. The two cases are deliberately the same error.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when an insert is rejected by row-level policy.
var ErrForbidden = errors.New("not permitted")

// Every method takes the caller so the store can apply row-level policy.
// Nothing above this layer filters by owner or role.

// ProfileRepository handles identity records.
type ProfileRepository interface {
	// Create inserts a profile and returns it with ID and CreatedAt populated.
	Create(ctx context.Context, email, fullName string, role models.Role, passwordHash string) (*models.Profile, error)

	// GetByID returns a profile. Returns nil, nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// GetByEmail is used for login. Returns nil, nil if not found.
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// RequestRepository handles maintenance requests.
type RequestRepository interface {
	// List returns every request visible to the caller, newest first.
	// Tenants see their own rows; landlords see all rows with the tenant
	// profile joined. Returns empty slice (not nil).
	List(ctx context.Context, caller models.Caller) ([]models.MaintenanceRequest, error)

	// Get returns one visible request or ErrNotFound.
	Get(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.MaintenanceRequest, error)

	// Create files a new pending request owned by the caller.
	Create(ctx context.Context, caller models.Caller, req models.NewRequest) (*models.MaintenanceRequest, error)

	// UpdateStatus sets status, assignee and updated_at. Landlords only;
	// anyone else gets ErrNotFound.
	UpdateStatus(ctx context.Context, caller models.Caller, id uuid.UUID, upd models.StatusUpdate) error
}

// CommentRepository handles the comment thread of a request.
type CommentRepository interface {
	// ListByRequest returns the thread oldest first, with author names.
	ListByRequest(ctx context.Context, caller models.Caller, requestID uuid.UUID) ([]models.RequestComment, error)

	// Create appends a comment authored by the caller. ErrNotFound if the
	// caller cannot see the parent request.
	Create(ctx context.Context, caller models.Caller, requestID uuid.UUID, comment string) (*models.RequestComment, error)
}
