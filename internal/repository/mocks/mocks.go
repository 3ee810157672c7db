// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/vasool/collection-engine/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.User, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Customer), args.Error(1)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListActiveByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Loan, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockCollectionRepository) ListPending(ctx context.Context) ([]*domain.PendingCollectionResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PendingCollectionResponse), args.Error(1)
}

func (m *MockCollectionRepository) ListPendingByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.PendingCollectionResponse, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PendingCollectionResponse), args.Error(1)
}

func (m *MockCollectionRepository) Approve(ctx context.Context, id uuid.UUID) (*domain.Collection, *domain.Loan, error) {
	args := m.Called(ctx, id)
	var collection *domain.Collection
	var loan *domain.Loan
	if args.Get(0) != nil {
		collection = args.Get(0).(*domain.Collection)
	}
	if args.Get(1) != nil {
		loan = args.Get(1).(*domain.Loan)
	}
	return collection, loan, args.Error(2)
}

func (m *MockCollectionRepository) Reject(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

type MockLineRepository struct {
	mock.Mock
}

func (m *MockLineRepository) Create(ctx context.Context, line *domain.Line) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockLineRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Line, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Line), args.Error(1)
}

func (m *MockLineRepository) GetByName(ctx context.Context, name string) (*domain.Line, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Line), args.Error(1)
}

func (m *MockLineRepository) List(ctx context.Context) ([]*domain.LineSummaryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LineSummaryResponse), args.Error(1)
}

func (m *MockLineRepository) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*domain.LineSummaryResponse, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LineSummaryResponse), args.Error(1)
}

func (m *MockLineRepository) AssignAgent(ctx context.Context, lineID, agentID uuid.UUID) error {
	args := m.Called(ctx, lineID, agentID)
	return args.Error(0)
}

func (m *MockLineRepository) AddCustomer(ctx context.Context, lineID, customerID uuid.UUID) (int, error) {
	args := m.Called(ctx, lineID, customerID)
	return args.Int(0), args.Error(1)
}

func (m *MockLineRepository) ListCustomers(ctx context.Context, lineID uuid.UUID) ([]*domain.RouteStop, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RouteStop), args.Error(1)
}

func (m *MockLineRepository) MemberCustomerIDs(ctx context.Context, lineID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockLineRepository) Reorder(ctx context.Context, lineID uuid.UUID, orderedCustomerIDs []uuid.UUID) error {
	args := m.Called(ctx, lineID, orderedCustomerIDs)
	return args.Error(0)
}

func (m *MockLineRepository) SetLocked(ctx context.Context, lineID uuid.UUID, locked bool) error {
	args := m.Called(ctx, lineID, locked)
	return args.Error(0)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) LifetimeApproved(ctx context.Context) (decimal.Decimal, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportRepository) ApprovedByModeBetween(ctx context.Context, from, to time.Time) ([]*domain.ModeTotal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ModeTotal), args.Error(1)
}

func (m *MockReportRepository) AgentTotals(ctx context.Context) ([]*domain.AgentTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AgentTotal), args.Error(1)
}

func (m *MockReportRepository) UpsertDailySettlements(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}
