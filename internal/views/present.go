// Package views holds the screen logic of the tracker: which dashboard a
// user sees, what each list shows, and the request detail state. It talks
// to the store only through the repository interfaces and never filters
// rows by owner or role itself.
package views

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/models"
)

const (
	// DateLayout renders created_at as a date without time.
	DateLayout = "1/2/2006"
	// DateTimeLayout is used for comment timestamps.
	DateTimeLayout = "1/2/2006, 3:04:05 PM"

	UnknownTenant = "Unknown Tenant"
	UnknownAuthor = "Unknown User"

	grayBadge = "bg-gray-100 text-gray-800"
)

// Icon is a status glyph and its color class.
type Icon struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

var statusIcons = map[models.Status]Icon{
	models.StatusPending:    {Name: "clock", Color: "text-yellow-600"},
	models.StatusInProgress: {Name: "alert-circle", Color: "text-blue-600"},
	models.StatusCompleted:  {Name: "check-circle", Color: "text-green-600"},
	models.StatusCancelled:  {Name: "x-circle", Color: "text-red-600"},
}

// StatusIcon returns nil for statuses it does not know.
func StatusIcon(s models.Status) *Icon {
	icon, ok := statusIcons[s]
	if !ok {
		return nil
	}
	return &icon
}

// PriorityClass is the badge color for a priority, gray when unknown.
func PriorityClass(p models.Priority) string {
	switch p {
	case models.PriorityLow:
		return grayBadge
	case models.PriorityMedium:
		return "bg-blue-100 text-blue-800"
	case models.PriorityHigh:
		return "bg-orange-100 text-orange-800"
	case models.PriorityUrgent:
		return "bg-red-100 text-red-800"
	default:
		return grayBadge
	}
}

// StatusClass is the status pill color. Anything unrecognised shows as
// pending yellow.
func StatusClass(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return "bg-green-100 text-green-800"
	case models.StatusInProgress:
		return "bg-blue-100 text-blue-800"
	case models.StatusCancelled:
		return "bg-red-100 text-red-800"
	default:
		return "bg-yellow-100 text-yellow-800"
	}
}

// StatusLabel turns "in_progress" into "in progress".
func StatusLabel(s models.Status) string {
	return strings.Replace(string(s), "_", " ", 1)
}

// RequestItem is one row of a request list.
type RequestItem struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      models.Category `json:"category"`
	Priority      models.Priority `json:"priority"`
	PriorityClass string          `json:"priority_class"`
	Status        models.Status   `json:"status"`
	StatusLabel   string          `json:"status_label"`
	StatusClass   string          `json:"status_class"`
	StatusIcon    *Icon           `json:"status_icon"`
	CreatedDate   string          `json:"created_date"`
	AssignedTo    string          `json:"assigned_to,omitempty"`
	AssignedLabel string          `json:"assigned_label,omitempty"`
	TenantName    string          `json:"tenant_name,omitempty"`
}

// NewRequestItem builds the list row. withTenant adds the tenant's name,
// which only the landlord list shows.
func NewRequestItem(r models.MaintenanceRequest, withTenant bool) RequestItem {
	item := RequestItem{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		Priority:      r.Priority,
		PriorityClass: PriorityClass(r.Priority),
		Status:        r.Status,
		StatusLabel:   StatusLabel(r.Status),
		StatusClass:   StatusClass(r.Status),
		StatusIcon:    StatusIcon(r.Status),
		CreatedDate:   r.CreatedAt.Format(DateLayout),
	}
	if r.AssignedTo != nil && *r.AssignedTo != "" {
		item.AssignedTo = *r.AssignedTo
		item.AssignedLabel = "Assigned to: " + *r.AssignedTo
	}
	if withTenant {
		item.TenantName = TenantName(r)
	}
	return item
}

// TenantName falls back to UnknownTenant when the profile join came back empty.
func TenantName(r models.MaintenanceRequest) string {
	if r.Profile == nil || r.Profile.FullName == "" {
		return UnknownTenant
	}
	return r.Profile.FullName
}

// CommentItem is one entry of the detail thread.
type CommentItem struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Comment   string    `json:"comment"`
	CreatedAt string    `json:"created_at"`
}

func NewCommentItem(c models.RequestComment) CommentItem {
	author := UnknownAuthor
	if c.Profile != nil && c.Profile.FullName != "" {
		author = c.Profile.FullName
	}
	return CommentItem{
		ID:        c.ID,
		Author:    author,
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt.Format(DateTimeLayout),
	}
}

// Welcome is the dashboard header line.
func Welcome(fullName string) string {
	return "Welcome back, " + fullName
}

// EmptyState is shown in place of a list that has nothing to show.
type EmptyState struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

func requestItems(reqs []models.MaintenanceRequest, withTenant bool) []RequestItem {
	items := make([]RequestItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, NewRequestItem(r, withTenant))
	}
	return items
}
