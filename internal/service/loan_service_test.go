package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/repository/mocks"
	apperrors "github.com/vasool/collection-engine/pkg/errors"
)

func TestLoanCreate_OpensWithPrincipalPlusInterest(t *testing.T) {
	loans := &mocks.MockLoanRepository{}
	customers := &mocks.MockCustomerRepository{}
	svc := NewLoanService(loans, customers, testLogger())

	customerID := uuid.New()
	customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
	loans.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.Loan) bool {
		return l.CustomerID == customerID &&
			l.Status == domain.LoanStatusActive &&
			l.PendingAmount.Equal(decimal.NewFromInt(11000))
	})).Return(nil)

	loan, err := svc.Create(context.Background(), adminPrincipal(), &domain.CreateLoanRequest{
		CustomerID: customerID.String(),
		Amount:     decimal.NewFromInt(10000),
	})

	assert.NoError(t, err)
	// defaults: 10% flat interest, 100 installments
	assert.True(t, loan.InterestRate.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 100, loan.TotalInstallments)
	loans.AssertExpectations(t)
}

func TestLoanCreate_UnknownCustomer(t *testing.T) {
	loans := &mocks.MockLoanRepository{}
	customers := &mocks.MockCustomerRepository{}
	svc := NewLoanService(loans, customers, testLogger())

	customerID := uuid.New()
	customers.On("GetByID", mock.Anything, customerID).Return(nil, sql.ErrNoRows)

	_, err := svc.Create(context.Background(), adminPrincipal(), &domain.CreateLoanRequest{
		CustomerID: customerID.String(),
		Amount:     decimal.NewFromInt(5000),
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	loans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoanCreate_NonPositiveAmount(t *testing.T) {
	svc := NewLoanService(&mocks.MockLoanRepository{}, &mocks.MockCustomerRepository{}, testLogger())

	_, err := svc.Create(context.Background(), adminPrincipal(), &domain.CreateLoanRequest{
		CustomerID: uuid.New().String(),
		Amount:     decimal.NewFromInt(-100),
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}
