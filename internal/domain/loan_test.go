package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalRepayable(t *testing.T) {
	total := TotalRepayable(decimal.NewFromInt(10000), decimal.NewFromInt(10))
	assert.True(t, total.Equal(decimal.NewFromInt(11000)), "expected 11000, got %s", total)
}

func TestApplyCollection_PartialPayment(t *testing.T) {
	loan := &Loan{
		PendingAmount: decimal.NewFromInt(1000),
		Status:        LoanStatusActive,
	}

	loan.ApplyCollection(decimal.NewFromInt(300))

	assert.True(t, loan.PendingAmount.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, LoanStatusActive, loan.Status)
}

func TestApplyCollection_ExactPayoffClosesLoan(t *testing.T) {
	loan := &Loan{
		PendingAmount: decimal.NewFromInt(1000),
		Status:        LoanStatusActive,
	}

	loan.ApplyCollection(decimal.NewFromInt(1000))

	assert.True(t, loan.PendingAmount.IsZero())
	assert.Equal(t, LoanStatusClosed, loan.Status)
}

func TestApplyCollection_OverpaymentClampsAtZero(t *testing.T) {
	loan := &Loan{
		PendingAmount: decimal.NewFromInt(500),
		Status:        LoanStatusActive,
	}

	loan.ApplyCollection(decimal.NewFromInt(800))

	assert.True(t, loan.PendingAmount.IsZero(), "balance must never go negative")
	assert.Equal(t, LoanStatusClosed, loan.Status)
}

func TestApplyCollection_SequentialPayments(t *testing.T) {
	// Two collections of 300 against a 500 balance: whatever the order,
	// the loan ends closed at zero.
	loan := &Loan{
		PendingAmount: decimal.NewFromInt(500),
		Status:        LoanStatusActive,
	}

	loan.ApplyCollection(decimal.NewFromInt(300))
	assert.True(t, loan.PendingAmount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, LoanStatusActive, loan.Status)

	loan.ApplyCollection(decimal.NewFromInt(300))
	assert.True(t, loan.PendingAmount.IsZero())
	assert.Equal(t, LoanStatusClosed, loan.Status)
}
