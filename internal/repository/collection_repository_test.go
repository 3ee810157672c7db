package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasool/collection-engine/internal/domain"
	apperrors "github.com/vasool/collection-engine/pkg/errors"
)

// These tests run against a real Postgres because they exercise the
// transactional review guard, which mocks cannot cover. Set
// TEST_DATABASE_URL to enable them.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)

	schema, err := os.ReadFile("../../scripts/init.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	cleanupTestData(db)
	t.Cleanup(func() {
		cleanupTestData(db)
		db.Close()
	})

	return db
}

func cleanupTestData(db *sqlx.DB) {
	db.Exec("DELETE FROM daily_settlements")
	db.Exec("DELETE FROM collections")
	db.Exec("DELETE FROM line_customers")
	db.Exec("DELETE FROM lines")
	db.Exec("DELETE FROM loans")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM users")
}

// seedPendingCollection writes an agent, a customer, a loan with the given
// pending balance, and one pending collection for the given amount.
func seedPendingCollection(t *testing.T, db *sqlx.DB, collected, pending decimal.Decimal) (*domain.Collection, *domain.Loan) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	agent := &domain.User{
		ID:           uuid.New(),
		Name:         "Ravi",
		MobileNumber: "9876500001",
		PinHash:      "x",
		Role:         domain.RoleFieldAgent,
		IsActive:     true,
		CreatedAt:    now,
	}
	require.NoError(t, NewUserRepository(db).Create(ctx, agent))

	customer := &domain.Customer{
		ID:           uuid.New(),
		Name:         "Meena",
		MobileNumber: "9876500002",
		CreatedAt:    now,
	}
	require.NoError(t, NewCustomerRepository(db).Create(ctx, customer))

	loan := &domain.Loan{
		ID:                uuid.New(),
		CustomerID:        customer.ID,
		Amount:            pending,
		InterestRate:      decimal.Zero,
		TotalInstallments: 100,
		PendingAmount:     pending,
		Status:            domain.LoanStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, NewLoanRepository(db).Create(ctx, loan))

	collection := &domain.Collection{
		ID:          uuid.New(),
		LoanID:      loan.ID,
		AgentID:     agent.ID,
		Amount:      collected,
		PaymentMode: domain.PaymentModeCash,
		Status:      domain.CollectionStatusPending,
		CreatedAt:   now,
	}
	require.NoError(t, NewCollectionRepository(db).Create(ctx, collection))

	return collection, loan
}

func TestCollectionRepository_Approve_AppliesBalanceOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	collection, loan := seedPendingCollection(t, db, decimal.NewFromInt(300), decimal.NewFromInt(1000))
	repo := NewCollectionRepository(db)

	approved, updatedLoan, err := repo.Approve(ctx, collection.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.CollectionStatusApproved, approved.Status)
	assert.True(t, updatedLoan.PendingAmount.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, domain.LoanStatusActive, updatedLoan.Status)

	// The new balance must be persisted, not just returned.
	stored, err := NewLoanRepository(db).GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.True(t, stored.PendingAmount.Equal(decimal.NewFromInt(700)))
}

func TestCollectionRepository_Approve_SecondReviewConflicts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	collection, loan := seedPendingCollection(t, db, decimal.NewFromInt(300), decimal.NewFromInt(1000))
	repo := NewCollectionRepository(db)

	_, _, err := repo.Approve(ctx, collection.ID)
	require.NoError(t, err)

	_, _, err = repo.Approve(ctx, collection.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// The balance delta must have been applied exactly once.
	stored, err := NewLoanRepository(db).GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.True(t, stored.PendingAmount.Equal(decimal.NewFromInt(700)))
}

func TestCollectionRepository_Approve_PayoffClosesLoan(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	collection, loan := seedPendingCollection(t, db, decimal.NewFromInt(1000), decimal.NewFromInt(1000))
	repo := NewCollectionRepository(db)

	_, updatedLoan, err := repo.Approve(ctx, collection.ID)
	require.NoError(t, err)

	assert.True(t, updatedLoan.PendingAmount.IsZero())
	assert.Equal(t, domain.LoanStatusClosed, updatedLoan.Status)

	stored, err := NewLoanRepository(db).GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusClosed, stored.Status)
}

func TestCollectionRepository_Reject_LeavesLoanUntouched(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	collection, loan := seedPendingCollection(t, db, decimal.NewFromInt(300), decimal.NewFromInt(1000))
	repo := NewCollectionRepository(db)

	rejected, err := repo.Reject(ctx, collection.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CollectionStatusRejected, rejected.Status)

	stored, err := NewLoanRepository(db).GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.True(t, stored.PendingAmount.Equal(decimal.NewFromInt(1000)))

	// A rejected collection can never be approved afterwards.
	_, _, err = repo.Approve(ctx, collection.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCollectionRepository_Approve_UnknownCollection(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := NewCollectionRepository(db)

	_, _, err := repo.Approve(ctx, uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
