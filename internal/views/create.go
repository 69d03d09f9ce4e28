package views

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/lalith-99/fixit/internal/repository"
	"go.uber.org/zap"
)

var ErrInvalidRequest = errors.New("invalid maintenance request")

var validate = validator.New()

// CreateForm files a new request as the caller.
type CreateForm struct {
	caller   models.Caller
	requests repository.RequestRepository
	logger   *zap.Logger
}

func NewCreateForm(caller models.Caller, requests repository.RequestRepository, logger *zap.Logger) *CreateForm {
	return &CreateForm{caller: caller, requests: requests, logger: logger}
}

// Submit validates and inserts the request. The store sets the owner to
// the caller and the status to pending.
func (f *CreateForm) Submit(ctx context.Context, in models.NewRequest) (*models.MaintenanceRequest, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.PhotoURL != nil {
		photo := strings.TrimSpace(*in.PhotoURL)
		if photo == "" {
			in.PhotoURL = nil
		} else {
			in.PhotoURL = &photo
		}
	}

	switch {
	case in.Title == "":
		return nil, errors.Join(ErrInvalidRequest, errors.New("title is required"))
	case in.Description == "":
		return nil, errors.Join(ErrInvalidRequest, errors.New("description is required"))
	case !in.Category.Valid():
		return nil, errors.Join(ErrInvalidRequest, errors.New("unknown category"))
	case !in.Priority.Valid():
		return nil, errors.Join(ErrInvalidRequest, errors.New("unknown priority"))
	case in.PhotoURL != nil && validate.Var(*in.PhotoURL, "url") != nil:
		return nil, errors.Join(ErrInvalidRequest, errors.New("photo_url must be a URL"))
	}

	req, err := f.requests.Create(ctx, f.caller, in)
	if err != nil {
		f.logger.Error("failed to create request", zap.Error(err))
		return nil, err
	}
	return req, nil
}
