package domain

import (
	"time"

	"github.com/google/uuid"
)

// Line is a named collection route: an ordered list of customers assigned
// to one field agent. While IsLocked is set, membership and order are
// frozen and mutating operations fail with a conflict.
type Line struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Area        string        `json:"area" db:"area"`
	AgentID     uuid.NullUUID `json:"agent_id,omitempty" db:"agent_id"`
	IsLocked    bool          `json:"is_locked" db:"is_locked"`
	WorkingDays string        `json:"working_days" db:"working_days"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// LineCustomer assigns a customer to a line. SequenceOrder controls the
// visit order within the route, 1-based and gapless after a reorder.
type LineCustomer struct {
	ID            uuid.UUID `json:"id" db:"id"`
	LineID        uuid.UUID `json:"line_id" db:"line_id"`
	CustomerID    uuid.UUID `json:"customer_id" db:"customer_id"`
	SequenceOrder int       `json:"sequence_order" db:"sequence_order"`
	AssignedAt    time.Time `json:"assigned_at" db:"assigned_at"`
}

// DTOs for requests and responses

type CreateLineRequest struct {
	Name        string `json:"name" validate:"required"`
	Area        string `json:"area" validate:"required"`
	AgentID     string `json:"agent_id,omitempty" validate:"omitempty,uuid4"`
	WorkingDays string `json:"working_days"`
}

type AssignAgentRequest struct {
	AgentID string `json:"agent_id" validate:"required,uuid4"`
}

type AddLineCustomerRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid4"`
}

type AddLineCustomerResponse struct {
	SequenceOrder int `json:"sequence_order"`
}

type ReorderLineRequest struct {
	Order []string `json:"order" validate:"required,min=1,dive,uuid4"`
}

type LineSummaryResponse struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Area          string        `json:"area" db:"area"`
	AgentID       uuid.NullUUID `json:"agent_id,omitempty" db:"agent_id"`
	IsLocked      bool          `json:"is_locked" db:"is_locked"`
	CustomerCount int           `json:"customer_count" db:"customer_count"`
}

// RouteStop is a customer in visit order on a line.
type RouteStop struct {
	CustomerID    uuid.UUID `json:"customer_id" db:"customer_id"`
	Name          string    `json:"name" db:"name"`
	MobileNumber  string    `json:"mobile_number" db:"mobile_number"`
	Area          string    `json:"area" db:"area"`
	SequenceOrder int       `json:"sequence_order" db:"sequence_order"`
}

type ToggleLockResponse struct {
	ID       uuid.UUID `json:"id"`
	IsLocked bool      `json:"is_locked"`
}
