package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vasool/collection-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, customer_id, amount, interest_rate, total_installments, pending_amount, status, guarantor_name, guarantor_mobile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.CustomerID,
		loan.Amount,
		loan.InterestRate,
		loan.TotalInstallments,
		loan.PendingAmount,
		loan.Status,
		loan.GuarantorName,
		loan.GuarantorMobile,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `
		SELECT id, customer_id, amount, interest_rate, total_installments, pending_amount, status, guarantor_name, guarantor_mobile, created_at, updated_at
		FROM loans
		WHERE id = $1
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, id)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) ListActiveByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Loan, error) {
	query := `
		SELECT id, customer_id, amount, interest_rate, total_installments, pending_amount, status, guarantor_name, guarantor_mobile, created_at, updated_at
		FROM loans
		WHERE customer_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, customerID, domain.LoanStatusActive)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func updateLoanBalance(ctx context.Context, tx *sqlx.Tx, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET pending_amount = $2, status = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := tx.ExecContext(ctx, query, loan.ID, loan.PendingAmount, loan.Status, time.Now().UTC())
	return err
}
