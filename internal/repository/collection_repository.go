package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vasool/collection-engine/internal/domain"
	apperrors "github.com/vasool/collection-engine/pkg/errors"
)

const collectionColumns = `id, loan_id, agent_id, line_id, amount, payment_mode, status, latitude, longitude, created_at`

type collectionRepository struct {
	db *sqlx.DB
}

func NewCollectionRepository(db *sqlx.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	query := `
		INSERT INTO collections (` + collectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		collection.ID,
		collection.LoanID,
		collection.AgentID,
		collection.LineID,
		collection.Amount,
		collection.PaymentMode,
		collection.Status,
		collection.Latitude,
		collection.Longitude,
		collection.CreatedAt,
	)

	return err
}

func (r *collectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	query := `
		SELECT ` + collectionColumns + `
		FROM collections
		WHERE id = $1
	`

	var collection domain.Collection
	err := r.db.GetContext(ctx, &collection, query, id)
	if err != nil {
		return nil, err
	}

	return &collection, nil
}

func (r *collectionRepository) ListPending(ctx context.Context) ([]*domain.PendingCollectionResponse, error) {
	query := `
		SELECT c.id, c.loan_id, c.agent_id, u.name AS agent_name, c.amount, c.payment_mode, c.created_at
		FROM collections c
		JOIN users u ON u.id = c.agent_id
		WHERE c.status = $1
		ORDER BY c.created_at DESC
	`

	var pending []*domain.PendingCollectionResponse
	err := r.db.SelectContext(ctx, &pending, query, domain.CollectionStatusPending)
	if err != nil {
		return nil, err
	}

	return pending, nil
}

func (r *collectionRepository) ListPendingByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.PendingCollectionResponse, error) {
	query := `
		SELECT c.id, c.loan_id, c.agent_id, u.name AS agent_name, c.amount, c.payment_mode, c.created_at
		FROM collections c
		JOIN users u ON u.id = c.agent_id
		WHERE c.status = $1 AND u.manager_id = $2
		ORDER BY c.created_at DESC
	`

	var pending []*domain.PendingCollectionResponse
	err := r.db.SelectContext(ctx, &pending, query, domain.CollectionStatusPending, managerID)
	if err != nil {
		return nil, err
	}

	return pending, nil
}

// Approve transitions the collection to approved and applies the amount to
// the loan balance as one transaction. The UPDATE is guarded by
// status='pending', so of two concurrent approvals only the first finds a
// row to update; the second sees the terminal state and gets a conflict.
func (r *collectionRepository) Approve(ctx context.Context, id uuid.UUID) (*domain.Collection, *domain.Loan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	collection, err := transitionCollection(ctx, tx, id, domain.CollectionStatusApproved)
	if err != nil {
		return nil, nil, err
	}

	// Lock the loan row while the balance delta is applied.
	var loan domain.Loan
	loanQuery := `
		SELECT id, customer_id, amount, interest_rate, total_installments, pending_amount, status, guarantor_name, guarantor_mobile, created_at, updated_at
		FROM loans
		WHERE id = $1
		FOR UPDATE
	`
	if err = tx.GetContext(ctx, &loan, loanQuery, collection.LoanID); err != nil {
		return nil, nil, err
	}

	loan.ApplyCollection(collection.Amount)

	if err = updateLoanBalance(ctx, tx, &loan); err != nil {
		return nil, nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, err
	}

	return collection, &loan, nil
}

// Reject transitions the collection to rejected. No loan mutation.
func (r *collectionRepository) Reject(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	collection, err := transitionCollection(ctx, tx, id, domain.CollectionStatusRejected)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return collection, nil
}

// transitionCollection performs the guarded pending->terminal flip. A zero
// row count means the collection is either missing or already terminal;
// the two are told apart with a follow-up read inside the same transaction.
func transitionCollection(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status string) (*domain.Collection, error) {
	query := `
		UPDATE collections
		SET status = $2
		WHERE id = $1 AND status = $3
		RETURNING ` + collectionColumns + `
	`

	var collection domain.Collection
	err := tx.GetContext(ctx, &collection, query, id, status, domain.CollectionStatusPending)
	if err == nil {
		return &collection, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var current string
	err = tx.GetContext(ctx, &current, `SELECT status FROM collections WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("collection %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	return nil, apperrors.Conflict("collection %s is already %s", id, current)
}
