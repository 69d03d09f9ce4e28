package views

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/lalith-99/fixit/internal/repository"
	"go.uber.org/zap"
)

// ErrNotInList is returned when selecting a request the list does not hold.
var ErrNotInList = errors.New("request is not in the current list")

var tenantEmpty = EmptyState{
	Title:   "No requests yet",
	Message: "Create your first maintenance request to get started",
	Action:  "Create Request",
}

// listView is the part shared by both dashboards: a full-refetch list of
// requests and at most one open detail.
type listView struct {
	caller   models.Caller
	requests repository.RequestRepository
	comments repository.CommentRepository
	logger   *zap.Logger

	// FullName is the signed-in user's name for the header.
	FullName string
	Requests []models.MaintenanceRequest
	Detail   *DetailView
}

// Load replaces the list with a fresh read. On error the list keeps what
// it had, which on first load is nothing.
func (v *listView) Load(ctx context.Context) {
	reqs, err := v.requests.List(ctx, v.caller)
	if err != nil {
		v.logger.Error("failed to load requests", zap.Error(err))
		return
	}
	v.Requests = reqs
}

func (v *listView) open(ctx context.Context, id uuid.UUID, landlord bool) (*DetailView, error) {
	for _, r := range v.Requests {
		if r.ID == id {
			v.Detail = OpenDetail(ctx, r, landlord, v.caller, v.requests, v.comments, v.logger)
			return v.Detail, nil
		}
	}
	return nil, ErrNotInList
}

// CloseDetail drops the open detail and reloads the whole list so any
// change made while it was open shows up.
func (v *listView) CloseDetail(ctx context.Context) {
	v.Detail = nil
	v.Load(ctx)
}

// TenantView is the tenant dashboard. Which rows it sees is decided by the
// store; the view shows whatever List returns.
type TenantView struct {
	listView
	Creating bool
}

func NewTenantView(
	caller models.Caller,
	requests repository.RequestRepository,
	comments repository.CommentRepository,
	logger *zap.Logger,
) *TenantView {
	return &TenantView{listView: listView{
		caller:   caller,
		requests: requests,
		comments: comments,
		logger:   logger,
		Requests: make([]models.MaintenanceRequest, 0),
	}}
}

// Select opens a request from the list without fetching it again.
func (v *TenantView) Select(ctx context.Context, id uuid.UUID) (*DetailView, error) {
	return v.open(ctx, id, false)
}

// OpenCreate shows the creation form.
func (v *TenantView) OpenCreate() *CreateForm {
	v.Creating = true
	return NewCreateForm(v.caller, v.requests, v.logger)
}

// CloseCreate hides the form and reloads, whether or not anything was
// created.
func (v *TenantView) CloseCreate(ctx context.Context) {
	v.Creating = false
	v.Load(ctx)
}

// TenantState is the rendered tenant dashboard.
type TenantState struct {
	Welcome    string        `json:"welcome"`
	Requests   []RequestItem `json:"requests"`
	EmptyState *EmptyState   `json:"empty_state,omitempty"`
}

func (v *TenantView) State() TenantState {
	st := TenantState{
		Welcome:  Welcome(v.FullName),
		Requests: requestItems(v.Requests, false),
	}
	if len(v.Requests) == 0 {
		empty := tenantEmpty
		st.EmptyState = &empty
	}
	return st
}
