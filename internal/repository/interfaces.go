package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vasool/collection-engine/internal/domain"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByMobile retrieves a user by mobile number
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)

	// ListByManager lists the agents reporting to a manager
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.User, error)
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// ListActiveByCustomer lists a customer's loans with status=active
	ListActiveByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Loan, error)
}

// CollectionRepository defines the interface for collection data operations.
// Approve and Reject are atomic: the status flip is guarded by a
// status='pending' precondition inside a single transaction, so concurrent
// reviews of the same collection cannot both succeed.
type CollectionRepository interface {
	Create(ctx context.Context, collection *domain.Collection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)

	// ListPending lists all pending collections, newest first
	ListPending(ctx context.Context) ([]*domain.PendingCollectionResponse, error)

	// ListPendingByManager lists pending collections submitted by the
	// manager's agents only
	ListPendingByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.PendingCollectionResponse, error)

	// Approve flips the collection to approved and applies the balance
	// delta to its loan in one transaction. Returns the updated loan.
	Approve(ctx context.Context, id uuid.UUID) (*domain.Collection, *domain.Loan, error)

	// Reject flips the collection to rejected; the loan is untouched.
	Reject(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
}

// LineRepository defines the interface for route data operations
type LineRepository interface {
	Create(ctx context.Context, line *domain.Line) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Line, error)
	GetByName(ctx context.Context, name string) (*domain.Line, error)
	List(ctx context.Context) ([]*domain.LineSummaryResponse, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*domain.LineSummaryResponse, error)
	AssignAgent(ctx context.Context, lineID, agentID uuid.UUID) error

	// AddCustomer appends the customer at max(sequence_order)+1 and
	// returns the assigned position
	AddCustomer(ctx context.Context, lineID, customerID uuid.UUID) (int, error)

	// ListCustomers returns the route stops ordered by sequence
	ListCustomers(ctx context.Context, lineID uuid.UUID) ([]*domain.RouteStop, error)

	// MemberCustomerIDs returns the customer IDs currently mapped to the line
	MemberCustomerIDs(ctx context.Context, lineID uuid.UUID) ([]uuid.UUID, error)

	// Reorder rewrites sequence_order to 1..N following the given order
	Reorder(ctx context.Context, lineID uuid.UUID, orderedCustomerIDs []uuid.UUID) error

	// SetLocked sets the lock flag
	SetLocked(ctx context.Context, lineID uuid.UUID, locked bool) error
}

// ReportRepository defines the read-side aggregations over approved
// collections
type ReportRepository interface {
	// LifetimeApproved returns the sum and count of all approved collections
	LifetimeApproved(ctx context.Context) (decimal.Decimal, int64, error)

	// ApprovedByModeBetween returns per-mode approved sums within [from, to)
	ApprovedByModeBetween(ctx context.Context, from, to time.Time) ([]*domain.ModeTotal, error)

	// AgentTotals returns per-agent approved sums, highest first
	AgentTotals(ctx context.Context) ([]*domain.AgentTotal, error)

	// UpsertDailySettlements rolls up the day's approved collections per
	// agent into daily_settlements
	UpsertDailySettlements(ctx context.Context, day time.Time) (int64, error)
}
