package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CollectionStatusPending  = "pending"
	CollectionStatusApproved = "approved"
	CollectionStatusRejected = "rejected"
)

const (
	PaymentModeCash = "cash"
	PaymentModeUPI  = "upi"
)

// Collection is a single cash/UPI payment event recorded by a field agent.
// It starts pending and transitions exactly once to approved or rejected;
// only approval touches the loan balance.
type Collection struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	LoanID      uuid.UUID       `json:"loan_id" db:"loan_id"`
	AgentID     uuid.UUID       `json:"agent_id" db:"agent_id"`
	LineID      uuid.NullUUID   `json:"line_id,omitempty" db:"line_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentMode string          `json:"payment_mode" db:"payment_mode"`
	Status      string          `json:"status" db:"status"`
	Latitude    *float64        `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64        `json:"longitude,omitempty" db:"longitude"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// Terminal reports whether the collection has already been reviewed.
func (c *Collection) Terminal() bool {
	return c.Status != CollectionStatusPending
}

// DTOs for requests and responses

type SubmitCollectionRequest struct {
	LoanID      string          `json:"loan_id" validate:"required,uuid4"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentMode string          `json:"payment_mode" validate:"omitempty,oneof=cash upi"`
	LineID      string          `json:"line_id,omitempty" validate:"omitempty,uuid4"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Longitude   *float64        `json:"longitude,omitempty"`
}

type SubmitCollectionResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type ReviewCollectionRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type ReviewCollectionResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type PendingCollectionResponse struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	LoanID      uuid.UUID       `json:"loan_id" db:"loan_id"`
	AgentID     uuid.UUID       `json:"agent_id" db:"agent_id"`
	AgentName   string          `json:"agent_name" db:"agent_name"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentMode string          `json:"payment_mode" db:"payment_mode"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
