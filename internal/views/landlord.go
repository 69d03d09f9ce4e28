package views

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/lalith-99/fixit/internal/repository"
	"go.uber.org/zap"
)

// Filter narrows the landlord list by status.
type Filter string

const FilterAll Filter = "all"

// Filters lists the selector options in display order.
var Filters = []Filter{
	FilterAll,
	Filter(models.StatusPending),
	Filter(models.StatusInProgress),
	Filter(models.StatusCompleted),
	Filter(models.StatusCancelled),
}

var ErrUnknownFilter = errors.New("unknown status filter")

// ParseFilter accepts "all" or a status; empty means "all".
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", ErrUnknownFilter
}

// Matches reports whether a request passes the filter.
func (f Filter) Matches(r models.MaintenanceRequest) bool {
	return f == FilterAll || models.Status(f) == r.Status
}

const noFilterMatch = "No maintenance requests match the selected filter"

// Stats are the dashboard counters. Cancelled requests count toward Total
// only.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// LandlordView is the all-requests dashboard. The store decides that a
// landlord may see every row.
type LandlordView struct {
	listView
	Filter Filter
}

func NewLandlordView(
	caller models.Caller,
	requests repository.RequestRepository,
	comments repository.CommentRepository,
	logger *zap.Logger,
) *LandlordView {
	return &LandlordView{
		listView: listView{
			caller:   caller,
			requests: requests,
			comments: comments,
			logger:   logger,
			Requests: make([]models.MaintenanceRequest, 0),
		},
		Filter: FilterAll,
	}
}

// SetFilter changes the filter over the rows already loaded. It never
// refetches.
func (v *LandlordView) SetFilter(f Filter) error {
	if _, err := ParseFilter(string(f)); err != nil {
		return err
	}
	v.Filter = f
	return nil
}

// Stats counts over the full loaded set, ignoring the filter.
func (v *LandlordView) Stats() Stats {
	s := Stats{Total: len(v.Requests)}
	for _, r := range v.Requests {
		switch r.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusCompleted:
			s.Completed++
		}
	}
	return s
}

// Visible returns the loaded requests that pass the filter, in list order.
func (v *LandlordView) Visible() []models.MaintenanceRequest {
	if v.Filter == FilterAll {
		return v.Requests
	}
	out := make([]models.MaintenanceRequest, 0)
	for _, r := range v.Requests {
		if v.Filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Select opens a request in landlord mode.
func (v *LandlordView) Select(ctx context.Context, id uuid.UUID) (*DetailView, error) {
	return v.open(ctx, id, true)
}

// LandlordState is the rendered landlord dashboard.
type LandlordState struct {
	Welcome    string        `json:"welcome"`
	Stats      Stats         `json:"stats"`
	Filter     Filter        `json:"filter"`
	Filters    []Filter      `json:"filters"`
	Requests   []RequestItem `json:"requests"`
	EmptyState *EmptyState   `json:"empty_state,omitempty"`
}

func (v *LandlordView) State() LandlordState {
	visible := v.Visible()
	st := LandlordState{
		Welcome:  Welcome(v.FullName),
		Stats:    v.Stats(),
		Filter:   v.Filter,
		Filters:  Filters,
		Requests: requestItems(visible, true),
	}
	if len(visible) == 0 {
		st.EmptyState = &EmptyState{Title: "No requests found", Message: noFilterMatch}
	}
	return st
}
