package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a borrower visited on a collection route.
type Customer struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	MobileNumber string    `json:"mobile_number" db:"mobile_number"`
	Address      string    `json:"address,omitempty" db:"address"`
	Area         string    `json:"area,omitempty" db:"area"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CreateCustomerRequest struct {
	Name         string `json:"name" validate:"required"`
	MobileNumber string `json:"mobile_number" validate:"required,min=10,max=15"`
	Address      string `json:"address"`
	Area         string `json:"area"`
}
