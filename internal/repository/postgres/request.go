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

type RequestStore struct {
	db Querier
}

func NewRequestStore(db Querier) *RequestStore {
	return &RequestStore{db: db}
}

// visibleRequests selects requests through the read policy: a tenant sees
// rows it owns, a landlord sees every row plus the tenant's profile.
// A caller without a profile row sees nothing.
const visibleRequests = `
	WITH viewer AS (
		SELECT role = 'landlord' AS is_landlord FROM profiles WHERE id = $1
	)
	SELECT r.id, r.tenant_id, r.title, r.description, r.category, r.priority,
	       r.status, r.photo_url, r.assigned_to, r.created_at, r.updated_at,
	       CASE WHEN v.is_landlord THEN p.full_name END,
	       CASE WHEN v.is_landlord THEN p.email END
	FROM maintenance_requests r
	CROSS JOIN viewer v
	LEFT JOIN profiles p ON p.id = r.tenant_id
	WHERE (v.is_landlord OR r.tenant_id = $1)`

func (s *RequestStore) List(ctx context.Context, caller models.Caller) ([]models.MaintenanceRequest, error) {
	// No secondary sort key: rows with equal created_at keep the order
	// Postgres returns them in.
	query := visibleRequests + `
	ORDER BY r.created_at DESC`

	rows, err := s.db.Query(ctx, query, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	requests := make([]models.MaintenanceRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}

	return requests, nil
}

func (s *RequestStore) Get(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.MaintenanceRequest, error) {
	query := visibleRequests + `
	  AND r.id = $2`

	req, err := scanRequest(s.db.QueryRow(ctx, query, caller.UserID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// Create files a request owned by the caller. The insert only happens when
// the caller is a tenant; otherwise no row comes back.
func (s *RequestStore) Create(ctx context.Context, caller models.Caller, in models.NewRequest) (*models.MaintenanceRequest, error) {
	query := `
		INSERT INTO maintenance_requests
			(tenant_id, title, description, category, priority, status, photo_url, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, 'pending', $6, now(), now()
		WHERE ` + callerIsTenant + `
		RETURNING id, tenant_id, title, description, category, priority,
		          status, photo_url, assigned_to, created_at, updated_at, NULL::text, NULL::text`

	req, err := scanRequest(s.db.QueryRow(ctx, query,
		caller.UserID,
		in.Title,
		in.Description,
		string(in.Category),
		string(in.Priority),
		in.PhotoURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrForbidden
		}
		return nil, fmt.Errorf("insert request: %w", err)
	}
	return req, nil
}

// UpdateStatus never touches tenant_id. Non-landlord callers and unknown
// ids both affect zero rows and report ErrNotFound.
func (s *RequestStore) UpdateStatus(ctx context.Context, caller models.Caller, id uuid.UUID, upd models.StatusUpdate) error {
	query := `
		UPDATE maintenance_requests
		SET status = $3, assigned_to = $4, updated_at = $5
		WHERE id = $2 AND ` + callerIsLandlord

	tag, err := s.db.Exec(ctx, query, caller.UserID, id, string(upd.Status), upd.AssignedTo, upd.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanRequest(row pgx.Row) (*models.MaintenanceRequest, error) {
	var (
		req                        models.MaintenanceRequest
		category, priority, status string
		tenantName, tenantEmail    *string
	)
	if err := row.Scan(
		&req.ID,
		&req.TenantID,
		&req.Title,
		&req.Description,
		&category,
		&priority,
		&status,
		&req.PhotoURL,
		&req.AssignedTo,
		&req.CreatedAt,
		&req.UpdatedAt,
		&tenantName,
		&tenantEmail,
	); err != nil {
		return nil, err
	}
	req.Category = models.Category(category)
	req.Priority = models.Priority(priority)
	req.Status = models.Status(status)
	if tenantName != nil {
		req.Profile = &models.ProfileSummary{FullName: *tenantName}
		if tenantEmail != nil {
			req.Profile.Email = *tenantEmail
		}
	}
	return &req, nil
}
