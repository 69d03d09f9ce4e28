package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockProfiles struct{ mock.Mock }

func (m *mockProfiles) Create(ctx context.Context, email, fullName string, role models.Role, hash string) (*models.Profile, error) {
	args := m.Called(ctx, email, fullName, role, hash)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockProfiles) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *mockProfiles) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

type mockRequests struct{ mock.Mock }

func (m *mockRequests) List(ctx context.Context, c models.Caller) ([]models.MaintenanceRequest, error) {
	args := m.Called(ctx, c)
	r, _ := args.Get(0).([]models.MaintenanceRequest)
	return r, args.Error(1)
}

func (m *mockRequests) Get(ctx context.Context, c models.Caller, id uuid.UUID) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, c, id)
	r, _ := args.Get(0).(*models.MaintenanceRequest)
	return r, args.Error(1)
}

func (m *mockRequests) Create(ctx context.Context, c models.Caller, in models.NewRequest) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, c, in)
	r, _ := args.Get(0).(*models.MaintenanceRequest)
	return r, args.Error(1)
}

func (m *mockRequests) UpdateStatus(ctx context.Context, c models.Caller, id uuid.UUID, upd models.StatusUpdate) error {
	return m.Called(ctx, c, id, upd).Error(0)
}

type mockComments struct{ mock.Mock }

func (m *mockComments) ListByRequest(ctx context.Context, c models.Caller, id uuid.UUID) ([]models.RequestComment, error) {
	args := m.Called(ctx, c, id)
	r, _ := args.Get(0).([]models.RequestComment)
	return r, args.Error(1)
}

func (m *mockComments) Create(ctx context.Context, c models.Caller, id uuid.UUID, text string) (*models.RequestComment, error) {
	args := m.Called(ctx, c, id, text)
	r, _ := args.Get(0).(*models.RequestComment)
	return r, args.Error(1)
}

type fakeRevoker struct {
	revoked map[string]time.Time
}

func (f *fakeRevoker) Revoke(_ context.Context, id string, exp time.Time) error {
	f.revoked[id] = exp
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := f.revoked[id]
	return ok, nil
}
