package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lalith-99/fixit/internal/models"
)

type ProfileStore struct {
	db Querier
}

func NewProfileStore(db Querier) *ProfileStore {
	return &ProfileStore{db: db}
}

// Create inserts a new profile row. Postgres generates the UUID and timestamp.
func (s *ProfileStore) Create(ctx context.Context, email, fullName string, role models.Role, passwordHash string) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (email, full_name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, email, full_name, role, password_hash, created_at`

	p, err := scanProfile(s.db.QueryRow(ctx, query, email, fullName, string(role), passwordHash))
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, email, full_name, role, password_hash, created_at
		FROM profiles
		WHERE id = $1`

	p, err := scanProfile(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// GetByEmail looks up a profile by email. Used for login.
func (s *ProfileStore) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT id, email, full_name, role, password_hash, created_at
		FROM profiles
		WHERE email = $1`

	p, err := scanProfile(s.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by email: %w", err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var (
		p    models.Profile
		role string
	)
	if err := row.Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&role,
		&p.PasswordHash,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Role = models.Role(role)
	return &p, nil
}
