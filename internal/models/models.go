package models

import (
	"time"

	"github.com/google/uuid"
)

// Role decides which dashboard a signed-in user lands on.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
)

func (r Role) Valid() bool {
	return r == RoleTenant || r == RoleLandlord
}

type Category string

const (
	CategoryPlumbing   Category = "plumbing"
	CategoryElectrical Category = "electrical"
	CategoryHVAC       Category = "hvac"
	CategoryAppliance  Category = "appliance"
	CategoryOther      Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPlumbing, CategoryElectrical, CategoryHVAC, CategoryAppliance, CategoryOther:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Status is the lifecycle state of a maintenance request.
// New requests always start as pending; only landlords move them on.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in dashboard order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Profile is the identity record for a user.
//
// PasswordHash never leaves the server: the json:"-" tag keeps it out of
// every response.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileSummary is the joined part of a profile that comes back with
// requests (tenant name and email) and comments (author name).
type ProfileSummary struct {
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

// MaintenanceRequest is a unit of reported work filed by a tenant.
//
// TenantID is set at creation and no store method ever writes it again.
// Profile is only populated for landlord queries.
type MaintenanceRequest struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Priority    Priority        `json:"priority"`
	Status      Status          `json:"status"`
	PhotoURL    *string         `json:"photo_url,omitempty"`
	AssignedTo  *string         `json:"assigned_to,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Profile     *ProfileSummary `json:"profiles,omitempty"`
}

// NewRequest is what a tenant submits from the creation form.
type NewRequest struct {
	Title       string
	Description string
	Category    Category
	Priority    Priority
	PhotoURL    *string
}

// StatusUpdate is the landlord-side mutation of a request.
// A nil AssignedTo clears the assignee.
type StatusUpdate struct {
	Status     Status
	AssignedTo *string
	UpdatedAt  time.Time
}

// RequestComment is one message in a request's thread.
type RequestComment struct {
	ID        uuid.UUID       `json:"id"`
	RequestID uuid.UUID       `json:"request_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"created_at"`
	Profile   *ProfileSummary `json:"profiles,omitempty"`
}

// Caller is the authenticated identity a store query runs as.
// Row-level policies in the store are evaluated against it.
type Caller struct {
	UserID uuid.UUID
	Email  string
}
