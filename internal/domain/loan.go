package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive = "active"
	LoanStatusClosed = "closed"
)

// Loan represents a loan entity. PendingAmount is the outstanding balance
// and only ever decreases, through collection approval.
type Loan struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	CustomerID        uuid.UUID       `json:"customer_id" db:"customer_id"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	InterestRate      decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	TotalInstallments int             `json:"total_installments" db:"total_installments"`
	PendingAmount     decimal.Decimal `json:"pending_amount" db:"pending_amount"`
	Status            string          `json:"status" db:"status"`
	GuarantorName     *string         `json:"guarantor_name,omitempty" db:"guarantor_name"`
	GuarantorMobile   *string         `json:"guarantor_mobile,omitempty" db:"guarantor_mobile"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// TotalRepayable returns principal plus flat interest, the opening value
// of PendingAmount.
func TotalRepayable(principal, ratePercent decimal.Decimal) decimal.Decimal {
	interest := principal.Mul(ratePercent).Div(decimal.NewFromInt(100))
	return principal.Add(interest).Round(2)
}

// ApplyCollection subtracts an approved collection amount from the pending
// balance, clamping at zero and closing the loan when nothing remains.
func (l *Loan) ApplyCollection(amount decimal.Decimal) {
	l.PendingAmount = l.PendingAmount.Sub(amount)
	if l.PendingAmount.LessThanOrEqual(decimal.Zero) {
		l.PendingAmount = decimal.Zero
		l.Status = LoanStatusClosed
	}
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	CustomerID        string          `json:"customer_id" validate:"required,uuid4"`
	Amount            decimal.Decimal `json:"amount" validate:"required"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	TotalInstallments int             `json:"total_installments" validate:"omitempty,gt=0"`
	GuarantorName     *string         `json:"guarantor_name,omitempty"`
	GuarantorMobile   *string         `json:"guarantor_mobile,omitempty"`
}

type LoanSummaryResponse struct {
	ID                uuid.UUID       `json:"id"`
	Amount            decimal.Decimal `json:"amount"`
	PendingAmount     decimal.Decimal `json:"pending_amount"`
	TotalInstallments int             `json:"total_installments"`
	Status            string          `json:"status"`
}
