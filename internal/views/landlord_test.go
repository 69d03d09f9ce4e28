package views

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type landlordFixture struct {
	store    *memStore
	tenant   models.Caller
	landlord models.Caller
	view     *LandlordView
}

func newLandlordFixture(t *testing.T, statuses ...models.Status) landlordFixture {
	t.Helper()
	ctx := context.Background()
	store := newMemStore()
	tenant := store.addProfile("tina", models.RoleTenant)
	landlord := store.addProfile("larry", models.RoleLandlord)

	for i, s := range statuses {
		r, err := store.Create(ctx, tenant, models.NewRequest{
			Title:       "req",
			Description: "d",
			Category:    models.CategoryOther,
			Priority:    models.PriorityLow,
		})
		require.NoError(t, err, "request %d", i)
		if s != models.StatusPending {
			require.NoError(t, store.UpdateStatus(ctx, landlord, r.ID, models.StatusUpdate{Status: s}))
		}
	}

	v := NewLandlordView(landlord, store, memComments{store}, zap.NewNop())
	v.Load(ctx)
	return landlordFixture{store: store, tenant: tenant, landlord: landlord, view: v}
}

func TestLandlordView_Stats(t *testing.T) {
	f := newLandlordFixture(t,
		models.StatusPending, models.StatusPending,
		models.StatusInProgress,
		models.StatusCompleted,
		models.StatusCancelled, models.StatusCancelled,
	)

	s := f.view.Stats()
	assert.Equal(t, Stats{Total: 6, Pending: 2, InProgress: 1, Completed: 1}, s)
	assert.LessOrEqual(t, s.Pending+s.InProgress+s.Completed, s.Total)
}

func TestLandlordView_FiltersPartitionTheSet(t *testing.T) {
	f := newLandlordFixture(t,
		models.StatusPending, models.StatusInProgress, models.StatusCompleted,
		models.StatusCancelled, models.StatusInProgress,
	)

	require.NoError(t, f.view.SetFilter(FilterAll))
	all := f.view.Visible()
	require.Len(t, all, 5)

	seen := map[uuid.UUID]int{}
	for _, flt := range Filters[1:] {
		require.NoError(t, f.view.SetFilter(flt))
		for _, r := range f.view.Visible() {
			assert.Equal(t, models.Status(flt), r.Status)
			seen[r.ID]++
		}
	}
	assert.Len(t, seen, len(all))
	for id, n := range seen {
		assert.Equal(t, 1, n, "request %s matched more than one filter", id)
	}
}

func TestLandlordView_FilterDoesNotRefetch(t *testing.T) {
	f := newLandlordFixture(t, models.StatusPending, models.StatusCompleted)
	calls := f.store.calls

	require.NoError(t, f.view.SetFilter(Filter(models.StatusCompleted)))
	assert.Len(t, f.view.Visible(), 1)
	assert.Equal(t, calls, f.store.calls)

	assert.ErrorIs(t, f.view.SetFilter("archived"), ErrUnknownFilter)
	assert.Equal(t, Filter(models.StatusCompleted), f.view.Filter)
}

func TestLandlordView_EmptyCancelledFilter(t *testing.T) {
	f := newLandlordFixture(t, models.StatusPending, models.StatusInProgress, models.StatusCompleted)
	before := f.view.State()
	assert.Nil(t, before.EmptyState)

	require.NoError(t, f.view.SetFilter(Filter(models.StatusCancelled)))
	f.view.FullName = "Larry Landlord"
	after := f.view.State()

	assert.Empty(t, after.Requests)
	require.NotNil(t, after.EmptyState)
	assert.Equal(t, "No requests found", after.EmptyState.Title)
	assert.Equal(t, "Welcome back, Larry Landlord", after.Welcome)
	assert.Equal(t, "No maintenance requests match the selected filter", after.EmptyState.Message)
	assert.Equal(t, before.Stats, after.Stats)
}

func TestLandlordView_TenantNames(t *testing.T) {
	f := newLandlordFixture(t, models.StatusPending)
	st := f.view.State()
	require.Len(t, st.Requests, 1)
	assert.Equal(t, "tina", st.Requests[0].TenantName)

	// A request whose owner has no profile row.
	f.store.requests = append(f.store.requests, models.MaintenanceRequest{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		Status:    models.StatusPending,
		CreatedAt: f.store.tick(),
	})
	f.view.Load(context.Background())
	st = f.view.State()
	require.Len(t, st.Requests, 2)
	assert.Equal(t, UnknownTenant, st.Requests[0].TenantName)
}

func TestLandlordView_UpdateThenReopen(t *testing.T) {
	ctx := context.Background()
	f := newLandlordFixture(t, models.StatusPending)
	id := f.view.Requests[0].ID

	d, err := f.view.Select(ctx, id)
	require.NoError(t, err)
	require.True(t, d.Landlord)
	require.NoError(t, d.SetStatus(models.StatusInProgress))
	d.SetAssignedTo("Mike")
	d.Now = func() time.Time { return time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, d.Update(ctx))
	assert.Equal(t, NoticeUpdated, d.Notice)
	// Only the local selection changed; the held request is untouched.
	assert.Equal(t, models.StatusPending, d.Request.Status)

	f.view.CloseDetail(ctx)
	reopened, err := f.view.Select(ctx, id)
	require.NoError(t, err)
	st := reopened.State()
	assert.Equal(t, models.StatusInProgress, st.Request.Status)
	assert.Equal(t, "Assigned to: Mike", st.Request.AssignedLabel)
	assert.Equal(t, f.tenant.UserID, reopened.Request.TenantID)
	assert.Equal(t, time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC), reopened.Request.UpdatedAt)
}

func TestLandlordView_NewestFirst(t *testing.T) {
	f := newLandlordFixture(t, models.StatusPending, models.StatusPending, models.StatusPending)
	reqs := f.view.Requests
	for i := 1; i < len(reqs); i++ {
		assert.False(t, reqs[i].CreatedAt.After(reqs[i-1].CreatedAt))
	}
}
