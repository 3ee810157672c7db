package service

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/repository/mocks"
	apperrors "github.com/vasool/collection-engine/pkg/errors"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func adminPrincipal() domain.Principal {
	return domain.Principal{ID: uuid.New(), Name: "admin", Role: domain.RoleAdmin}
}

func newCollectionService(collections *mocks.MockCollectionRepository, loans *mocks.MockLoanRepository, users *mocks.MockUserRepository) *CollectionService {
	return NewCollectionService(collections, loans, users, testLogger())
}

func TestSubmit_Success(t *testing.T) {
	collections := &mocks.MockCollectionRepository{}
	loans := &mocks.MockLoanRepository{}
	users := &mocks.MockUserRepository{}
	svc := newCollectionService(collections, loans, users)

	agent := domain.Principal{ID: uuid.New(), Role: domain.RoleFieldAgent}
	loanID := uuid.New()

	loans.On("GetByID", mock.Anything, loanID).Return(&domain.Loan{ID: loanID}, nil)
	collections.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Collection) bool {
		return c.LoanID == loanID &&
			c.AgentID == agent.ID &&
			c.Status == domain.CollectionStatusPending &&
			c.PaymentMode == domain.PaymentModeCash
	})).Return(nil)

	collection, err := svc.Submit(context.Background(), agent, &domain.SubmitCollectionRequest{
		LoanID: loanID.String(),
		Amount: decimal.NewFromInt(250),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.CollectionStatusPending, collection.Status)
	collections.AssertExpectations(t)
	loans.AssertExpectations(t)
}

func TestSubmit_NonPositiveAmount(t *testing.T) {
	svc := newCollectionService(&mocks.MockCollectionRepository{}, &mocks.MockLoanRepository{}, &mocks.MockUserRepository{})

	_, err := svc.Submit(context.Background(), adminPrincipal(), &domain.SubmitCollectionRequest{
		LoanID: uuid.New().String(),
		Amount: decimal.Zero,
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestSubmit_UnknownLoan(t *testing.T) {
	collections := &mocks.MockCollectionRepository{}
	loans := &mocks.MockLoanRepository{}
	svc := newCollectionService(collections, loans, &mocks.MockUserRepository{})

	loanID := uuid.New()
	loans.On("GetByID", mock.Anything, loanID).Return(nil, sql.ErrNoRows)

	_, err := svc.Submit(context.Background(), adminPrincipal(), &domain.SubmitCollectionRequest{
		LoanID: loanID.String(),
		Amount: decimal.NewFromInt(100),
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	collections.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReview_ApproveAppliesBalance(t *testing.T) {
	collections := &mocks.MockCollectionRepository{}
	svc := newCollectionService(collections, &mocks.MockLoanRepository{}, &mocks.MockUserRepository{})

	collectionID := uuid.New()
	pending := &domain.Collection{
		ID:     collectionID,
		Status: domain.CollectionStatusPending,
		Amount: decimal.NewFromInt(1000),
	}
	approved := &domain.Collection{ID: collectionID, Status: domain.CollectionStatusApproved}
	closedLoan := &domain.Loan{
		ID:            uuid.New(),
		PendingAmount: decimal.Zero,
		Status:        domain.LoanStatusClosed,
	}

	collections.On("GetByID", mock.Anything, collectionID).Return(pending, nil)
	collections.On("Approve", mock.Anything, collectionID).Return(approved, closedLoan, nil)

	result, err := svc.Review(context.Background(), adminPrincipal(), collectionID, domain.CollectionStatusApproved)

	assert.NoError(t, err)
	assert.Equal(t, domain.CollectionStatusApproved, result.Status)
	collections.AssertExpectations(t)
}

func TestReview_RejectNeverTouchesLoan(t *testing.T) {
	collections := &mocks.MockCollectionRepository{}
	svc := newCollectionService(collections, &mocks.MockLoanRepository{}, &mocks.MockUserRepository{})

	collectionID := uuid.New()
	pending := &domain.Collection{ID: collectionID, Status: domain.CollectionStatusPending}
	rejected := &domain.Collection{ID: collectionID, Status: domain.CollectionStatusRejected}

	collections.On("GetByID", mock.Anything, collectionID).Return(pending, nil)
	collections.On("Reject", mock.Anything, collectionID).Return(rejected, nil)

	result, err := svc.Review(context.Background(), adminPrincipal(), collectionID, domain.CollectionStatusRejected)

	assert.NoError(t, err)
	assert.Equal(t, domain.CollectionStatusRejected, result.Status)
	collections.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
}

func TestReview_TerminalCollectionConflicts(t *testing.T) {
	collections := &mocks.MockCollectionRepository{}
	svc := newCollectionService(collections, &mocks.MockLoanRepository{}, &mocks.MockUserRepository{})

	collectionID := uuid.New()
	already := &domain.Collection{ID: collectionID, Status: domain.CollectionStatusApproved}

	collections.On("GetByID", mock.Anything, collectionID).Return(already, nil)
	collections.On("Approve", mock.Anything, collectionID).
		Return(nil, nil, apperrors.Conflict("collection %s is already approved", collectionID))

	_, err := svc.Review(context.Background(), adminPrincipal(), collectionID, domain.CollectionStatusApproved)

	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestReview_FieldAgentForbidden(t *testing.T) {
	collections := &mocks.MockCollectionRepository{}
	svc := newCollectionService(collections, &mocks.MockLoanRepository{}, &mocks.MockUserRepository{})

	agent := domain.Principal{ID: uuid.New(), Role: domain.RoleFieldAgent}

	_, err := svc.Review(context.Background(), agent, uuid.New(), domain.CollectionStatusApproved)

	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	collections.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReview_ManagerOwnTeamAllowed(t *testing.T) {
	collections := &mocks.MockCollectionRepository{}
	users := &mocks.MockUserRepository{}
	svc := newCollectionService(collections, &mocks.MockLoanRepository{}, users)

	manager := domain.Principal{ID: uuid.New(), Role: domain.RoleManager}
	agentID := uuid.New()
	collectionID := uuid.New()

	pending := &domain.Collection{ID: collectionID, AgentID: agentID, Status: domain.CollectionStatusPending}
	rejected := &domain.Collection{ID: collectionID, Status: domain.CollectionStatusRejected}

	collections.On("GetByID", mock.Anything, collectionID).Return(pending, nil)
	users.On("GetByID", mock.Anything, agentID).Return(&domain.User{
		ID:        agentID,
		Role:      domain.RoleFieldAgent,
		ManagerID: uuid.NullUUID{UUID: manager.ID, Valid: true},
	}, nil)
	collections.On("Reject", mock.Anything, collectionID).Return(rejected, nil)

	_, err := svc.Review(context.Background(), manager, collectionID, domain.CollectionStatusRejected)

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestReview_ManagerOtherTeamForbidden(t *testing.T) {
	collections := &mocks.MockCollectionRepository{}
	users := &mocks.MockUserRepository{}
	svc := newCollectionService(collections, &mocks.MockLoanRepository{}, users)

	manager := domain.Principal{ID: uuid.New(), Role: domain.RoleManager}
	agentID := uuid.New()
	collectionID := uuid.New()

	pending := &domain.Collection{ID: collectionID, AgentID: agentID, Status: domain.CollectionStatusPending}

	collections.On("GetByID", mock.Anything, collectionID).Return(pending, nil)
	users.On("GetByID", mock.Anything, agentID).Return(&domain.User{
		ID:        agentID,
		Role:      domain.RoleFieldAgent,
		ManagerID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
	}, nil)

	_, err := svc.Review(context.Background(), manager, collectionID, domain.CollectionStatusApproved)

	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	collections.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
}

func TestListPending_ManagerScopedToTeam(t *testing.T) {
	collections := &mocks.MockCollectionRepository{}
	svc := newCollectionService(collections, &mocks.MockLoanRepository{}, &mocks.MockUserRepository{})

	manager := domain.Principal{ID: uuid.New(), Role: domain.RoleManager}
	teamPending := []*domain.PendingCollectionResponse{{ID: uuid.New()}}

	collections.On("ListPendingByManager", mock.Anything, manager.ID).Return(teamPending, nil)

	pending, err := svc.ListPending(context.Background(), manager)

	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	collections.AssertNotCalled(t, "ListPending", mock.Anything)
}

func TestListPending_FieldAgentForbidden(t *testing.T) {
	svc := newCollectionService(&mocks.MockCollectionRepository{}, &mocks.MockLoanRepository{}, &mocks.MockUserRepository{})

	agent := domain.Principal{ID: uuid.New(), Role: domain.RoleFieldAgent}

	_, err := svc.ListPending(context.Background(), agent)

	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}
