package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/repository"
	apperrors "github.com/vasool/collection-engine/pkg/errors"
)

// Defaults matching the paper ledgers this system replaces: flat 10%
// interest collected over 100 daily installments.
var defaultInterestRate = decimal.NewFromInt(10)

const defaultInstallments = 100

type LoanService struct {
	loanRepo     repository.LoanRepository
	customerRepo repository.CustomerRepository
	logger       *logrus.Logger
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	customerRepo repository.CustomerRepository,
	logger *logrus.Logger,
) *LoanService {
	return &LoanService{
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create opens a loan. The opening pending amount is principal plus flat
// interest; from then on only collection approval may reduce it.
func (s *LoanService) Create(ctx context.Context, principal domain.Principal, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	if !request.Amount.IsPositive() {
		return nil, apperrors.InvalidInput("amount must be a positive number")
	}

	customerID, err := uuid.Parse(request.CustomerID)
	if err != nil {
		return nil, apperrors.InvalidInput("customer_id is not a valid id")
	}

	if _, err = s.customerRepo.GetByID(ctx, customerID); err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("customer %s not found", customerID)
		}
		return nil, storeErr(err)
	}

	rate := request.InterestRate
	if rate.IsZero() {
		rate = defaultInterestRate
	}
	if rate.IsNegative() {
		return nil, apperrors.InvalidInput("interest_rate must not be negative")
	}

	installments := request.TotalInstallments
	if installments == 0 {
		installments = defaultInstallments
	}

	now := time.Now().UTC()
	loan := &domain.Loan{
		ID:                uuid.New(),
		CustomerID:        customerID,
		Amount:            request.Amount,
		InterestRate:      rate,
		TotalInstallments: installments,
		PendingAmount:     domain.TotalRepayable(request.Amount, rate),
		Status:            domain.LoanStatusActive,
		GuarantorName:     request.GuarantorName,
		GuarantorMobile:   request.GuarantorMobile,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err = s.loanRepo.Create(ctx, loan); err != nil {
		return nil, storeErr(err)
	}

	s.logger.WithFields(logrus.Fields{
		"loan_id":        loan.ID,
		"customer_id":    customerID,
		"created_by":     principal.ID,
		"pending_amount": loan.PendingAmount,
	}).Info("loan created")

	return loan, nil
}

// ListActiveByCustomer lists a customer's open loans for the agent's
// collection screen.
func (s *LoanService) ListActiveByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.LoanSummaryResponse, error) {
	loans, err := s.loanRepo.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, storeErr(err)
	}

	summaries := make([]*domain.LoanSummaryResponse, 0, len(loans))
	for _, loan := range loans {
		summaries = append(summaries, &domain.LoanSummaryResponse{
			ID:                loan.ID,
			Amount:            loan.Amount,
			PendingAmount:     loan.PendingAmount,
			TotalInstallments: loan.TotalInstallments,
			Status:            loan.Status,
		})
	}

	return summaries, nil
}
