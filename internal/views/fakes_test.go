package views

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/lalith-99/fixit/internal/repository"
	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory store that applies the same row policy as the
// Postgres one: tenants see their own requests, landlords see everything.
type memStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]models.Profile
	requests []models.MaintenanceRequest
	comments []models.RequestComment
	clock    time.Time
	listErr  error
	calls    int
}

func newMemStore() *memStore {
	return &memStore{
		profiles: map[uuid.UUID]models.Profile{},
		clock:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) addProfile(name string, role models.Role) models.Caller {
	id := uuid.New()
	m.profiles[id] = models.Profile{ID: id, FullName: name, Role: role, Email: name + "@example.com"}
	return models.Caller{UserID: id, Email: name + "@example.com"}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) isLandlord(c models.Caller) bool {
	p, ok := m.profiles[c.UserID]
	return ok && p.Role == models.RoleLandlord
}

func (m *memStore) visible(c models.Caller, r models.MaintenanceRequest) bool {
	return m.isLandlord(c) || r.TenantID == c.UserID
}

func (m *memStore) List(_ context.Context, c models.Caller) ([]models.MaintenanceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.MaintenanceRequest, 0)
	for _, r := range m.requests {
		if !m.visible(c, r) {
			continue
		}
		if m.isLandlord(c) {
			if p, ok := m.profiles[r.TenantID]; ok {
				r.Profile = &models.ProfileSummary{FullName: p.FullName, Email: p.Email}
			}
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) Get(ctx context.Context, c models.Caller, id uuid.UUID) (*models.MaintenanceRequest, error) {
	all, err := m.List(ctx, c)
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) Create(_ context.Context, c models.Caller, in models.NewRequest) (*models.MaintenanceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[c.UserID]; !ok || p.Role != models.RoleTenant {
		return nil, repository.ErrForbidden
	}
	now := m.tick()
	r := models.MaintenanceRequest{
		ID:          uuid.New(),
		TenantID:    c.UserID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      models.StatusPending,
		PhotoURL:    in.PhotoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.requests = append(m.requests, r)
	return &r, nil
}

func (m *memStore) UpdateStatus(_ context.Context, c models.Caller, id uuid.UUID, upd models.StatusUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isLandlord(c) {
		return repository.ErrNotFound
	}
	for i := range m.requests {
		if m.requests[i].ID == id {
			m.requests[i].Status = upd.Status
			m.requests[i].AssignedTo = upd.AssignedTo
			m.requests[i].UpdatedAt = upd.UpdatedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

// memComments shares the store's request table for visibility checks.
type memComments struct{ *memStore }

func (m memComments) ListByRequest(_ context.Context, c models.Caller, requestID uuid.UUID) ([]models.RequestComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.canSee(c, requestID) {
		return make([]models.RequestComment, 0), nil
	}
	out := make([]models.RequestComment, 0)
	for _, cm := range m.comments {
		if cm.RequestID == requestID {
			if p, ok := m.profiles[cm.UserID]; ok {
				cm.Profile = &models.ProfileSummary{FullName: p.FullName}
			}
			out = append(out, cm)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m memComments) Create(_ context.Context, c models.Caller, requestID uuid.UUID, text string) (*models.RequestComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.canSee(c, requestID) {
		return nil, repository.ErrNotFound
	}
	cm := models.RequestComment{ID: uuid.New(), RequestID: requestID, UserID: c.UserID, Comment: text, CreatedAt: m.tick()}
	m.comments = append(m.comments, cm)
	return &cm, nil
}

func (m memComments) canSee(c models.Caller, requestID uuid.UUID) bool {
	for _, r := range m.requests {
		if r.ID == requestID {
			return m.visible(c, r)
		}
	}
	return false
}

// mockComments is a testify mock for asserting exactly which store calls
// a view makes.
type mockComments struct{ mock.Mock }

func (m *mockComments) ListByRequest(ctx context.Context, c models.Caller, requestID uuid.UUID) ([]models.RequestComment, error) {
	args := m.Called(ctx, c, requestID)
	comments, _ := args.Get(0).([]models.RequestComment)
	return comments, args.Error(1)
}

func (m *mockComments) Create(ctx context.Context, c models.Caller, requestID uuid.UUID, text string) (*models.RequestComment, error) {
	args := m.Called(ctx, c, requestID, text)
	comment, _ := args.Get(0).(*models.RequestComment)
	return comment, args.Error(1)
}

type mockRequests struct{ mock.Mock }

func (m *mockRequests) List(ctx context.Context, c models.Caller) ([]models.MaintenanceRequest, error) {
	args := m.Called(ctx, c)
	reqs, _ := args.Get(0).([]models.MaintenanceRequest)
	return reqs, args.Error(1)
}

func (m *mockRequests) Get(ctx context.Context, c models.Caller, id uuid.UUID) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, c, id)
	req, _ := args.Get(0).(*models.MaintenanceRequest)
	return req, args.Error(1)
}

func (m *mockRequests) Create(ctx context.Context, c models.Caller, in models.NewRequest) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, c, in)
	req, _ := args.Get(0).(*models.MaintenanceRequest)
	return req, args.Error(1)
}

func (m *mockRequests) UpdateStatus(ctx context.Context, c models.Caller, id uuid.UUID, upd models.StatusUpdate) error {
	return m.Called(ctx, c, id, upd).Error(0)
}

var errStore = errors.New("store unavailable")
