package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. All authorization decisions are
// expressed as methods here rather than ad-hoc equality checks in handlers.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleFieldAgent Role = "field_agent"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleFieldAgent:
		return true
	}
	return false
}

// CanReviewCollections reports whether the role may approve or reject
// pending collections at all. Team scoping for managers is checked
// separately against the submitting agent.
func (r Role) CanReviewCollections() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanManageRoutes reports whether the role may create, assign, reorder or
// lock lines.
func (r Role) CanManageRoutes() bool {
	return r == RoleAdmin
}

// CanManageUsers reports whether the role may create users and customers.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// CanViewReports reports whether the role may read financial aggregates.
func (r Role) CanViewReports() bool {
	return r == RoleAdmin
}

// User represents a system user: an admin, a manager, or a field agent.
// Managers own zero or more agents through ManagerID.
type User struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	MobileNumber string        `json:"mobile_number" db:"mobile_number"`
	PinHash      string        `json:"-" db:"pin_hash"`
	Role         Role          `json:"role" db:"role"`
	Area         string        `json:"area,omitempty" db:"area"`
	ManagerID    uuid.NullUUID `json:"manager_id,omitempty" db:"manager_id"`
	IsActive     bool          `json:"is_active" db:"is_active"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// Principal is the authenticated identity resolved once at the HTTP
// boundary and passed explicitly into every service operation.
type Principal struct {
	ID   uuid.UUID
	Name string
	Role Role
}

// DTOs for requests and responses

type CreateUserRequest struct {
	Name         string `json:"name" validate:"required"`
	MobileNumber string `json:"mobile_number" validate:"required,min=10,max=15"`
	Pin          string `json:"pin" validate:"required,min=4,max=8,numeric"`
	Role         Role   `json:"role" validate:"required,oneof=admin manager field_agent"`
	Area         string `json:"area"`
	ManagerID    string `json:"manager_id,omitempty"`
}

type TeamMemberResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobile_number"`
	Area         string    `json:"area,omitempty"`
	IsActive     bool      `json:"is_active"`
}
