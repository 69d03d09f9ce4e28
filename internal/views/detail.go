package views

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/lalith-99/fixit/internal/repository"
	"go.uber.org/zap"
)

const (
	NoticeUpdated      = "Request updated successfully"
	NoticeUpdateFailed = "Failed to update request"
)

var (
	// ErrNotLandlord is returned when the update action is used on a
	// detail view that was not opened in landlord mode.
	ErrNotLandlord = errors.New("request updates are only available to landlords")
	// ErrBusy is returned while another write from the same view is in flight.
	ErrBusy = errors.New("another action is in progress")
	// ErrInvalidStatus rejects a status outside the known set.
	ErrInvalidStatus = errors.New("invalid status")
)

// DetailView is the state of one open request.
//
// Status and AssignedTo are local edits. They start from the request and
// are only written to the store by Update; nothing re-reads the request
// afterwards, so the displayed status is whatever was last selected here.
type DetailView struct {
	Request  models.MaintenanceRequest
	Landlord bool

	Status       models.Status
	AssignedTo   string
	CommentInput string
	Comments     []models.RequestComment
	Notice       string

	// Now stamps updated_at. Defaults to time.Now.
	Now func() time.Time

	caller   models.Caller
	comments repository.CommentRepository
	requests repository.RequestRepository
	logger   *zap.Logger

	mu       sync.Mutex
	inFlight bool
}

// NewDetail creates the view for a request already in hand without
// touching the store.
func NewDetail(
	req models.MaintenanceRequest,
	landlord bool,
	caller models.Caller,
	requests repository.RequestRepository,
	comments repository.CommentRepository,
	logger *zap.Logger,
) *DetailView {
	d := &DetailView{
		Request:  req,
		Landlord: landlord,
		Status:   req.Status,
		Comments: make([]models.RequestComment, 0),
		Now:      time.Now,
		caller:   caller,
		comments: comments,
		requests: requests,
		logger:   logger,
	}
	if req.AssignedTo != nil {
		d.AssignedTo = *req.AssignedTo
	}
	return d
}

// OpenDetail is NewDetail followed by loading the comment thread, which is
// what happens whenever a detail screen is shown.
func OpenDetail(
	ctx context.Context,
	req models.MaintenanceRequest,
	landlord bool,
	caller models.Caller,
	requests repository.RequestRepository,
	comments repository.CommentRepository,
	logger *zap.Logger,
) *DetailView {
	d := NewDetail(req, landlord, caller, requests, comments, logger)
	d.LoadComments(ctx)
	return d
}

// LoadComments refetches the thread. Failures are logged and the previous
// thread stays in place.
func (d *DetailView) LoadComments(ctx context.Context) {
	comments, err := d.comments.ListByRequest(ctx, d.caller, d.Request.ID)
	if err != nil {
		d.logger.Error("failed to load comments",
			zap.String("request_id", d.Request.ID.String()),
			zap.Error(err),
		)
		return
	}
	d.Comments = comments
}

// SubmitComment posts text as the caller and reports whether anything was
// sent. Blank text or a missing identity is a no-op with no store call.
// On success the input is cleared and the thread is re-read; on failure
// the input is kept.
func (d *DetailView) SubmitComment(ctx context.Context, text string) (bool, error) {
	d.CommentInput = text
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || d.caller.UserID == uuid.Nil {
		return false, nil
	}

	if !d.begin() {
		return false, ErrBusy
	}
	defer d.end()

	if _, err := d.comments.Create(ctx, d.caller, d.Request.ID, trimmed); err != nil {
		d.logger.Error("failed to add comment",
			zap.String("request_id", d.Request.ID.String()),
			zap.Error(err),
		)
		return true, err
	}

	d.CommentInput = ""
	d.LoadComments(ctx)
	return true, nil
}

// SetStatus changes the local status selection.
func (d *DetailView) SetStatus(s models.Status) error {
	if !s.Valid() {
		return ErrInvalidStatus
	}
	d.Status = s
	return nil
}

// SetAssignedTo changes the local assignee text.
func (d *DetailView) SetAssignedTo(name string) {
	d.AssignedTo = name
}

// Update writes the local status and assignee. An empty assignee is stored
// as NULL. The outcome is reported through Notice.
func (d *DetailView) Update(ctx context.Context) error {
	if !d.Landlord {
		return ErrNotLandlord
	}
	if !d.begin() {
		return ErrBusy
	}
	defer d.end()

	upd := models.StatusUpdate{
		Status:    d.Status,
		UpdatedAt: d.Now(),
	}
	if d.AssignedTo != "" {
		assigned := d.AssignedTo
		upd.AssignedTo = &assigned
	}

	if err := d.requests.UpdateStatus(ctx, d.caller, d.Request.ID, upd); err != nil {
		d.logger.Error("failed to update request",
			zap.String("request_id", d.Request.ID.String()),
			zap.Error(err),
		)
		d.Notice = NoticeUpdateFailed
		return err
	}
	d.Notice = NoticeUpdated
	return nil
}

func (d *DetailView) begin() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight {
		return false
	}
	d.inFlight = true
	return true
}

func (d *DetailView) end() {
	d.mu.Lock()
	d.inFlight = false
	d.mu.Unlock()
}

// DetailState is the rendered detail screen.
type DetailState struct {
	Request      RequestItem   `json:"request"`
	PhotoURL     string        `json:"photo_url,omitempty"`
	Landlord     bool          `json:"landlord"`
	Comments     []CommentItem `json:"comments"`
	CommentInput string        `json:"comment_input"`
	Notice       string        `json:"notice,omitempty"`
	// Edit holds the live form values; only present in landlord mode.
	Edit *EditForm `json:"edit,omitempty"`
}

type EditForm struct {
	Status     models.Status   `json:"status"`
	AssignedTo string          `json:"assigned_to"`
	Statuses   []models.Status `json:"statuses"`
}

// State renders the view. The status badge follows the local selection,
// not the stored value.
func (d *DetailView) State() DetailState {
	shown := d.Request
	shown.Status = d.Status

	st := DetailState{
		Request:      NewRequestItem(shown, d.Landlord),
		Landlord:     d.Landlord,
		Comments:     make([]CommentItem, 0, len(d.Comments)),
		CommentInput: d.CommentInput,
		Notice:       d.Notice,
	}
	if d.Request.PhotoURL != nil {
		st.PhotoURL = *d.Request.PhotoURL
	}
	for _, c := range d.Comments {
		st.Comments = append(st.Comments, NewCommentItem(c))
	}
	if d.Landlord {
		st.Edit = &EditForm{
			Status:     d.Status,
			AssignedTo: d.AssignedTo,
			Statuses:   models.Statuses,
		}
	}
	return st
}
