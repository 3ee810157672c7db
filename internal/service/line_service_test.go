package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/repository/mocks"
	apperrors "github.com/vasool/collection-engine/pkg/errors"
)

func newLineService(lines *mocks.MockLineRepository, customers *mocks.MockCustomerRepository) *LineService {
	return NewLineService(lines, customers, testLogger())
}

func TestLineCreate_DuplicateName(t *testing.T) {
	lines := &mocks.MockLineRepository{}
	svc := newLineService(lines, &mocks.MockCustomerRepository{})

	lines.On("GetByName", mock.Anything, "North Line").Return(&domain.Line{Name: "North Line"}, nil)

	_, err := svc.Create(context.Background(), adminPrincipal(), &domain.CreateLineRequest{
		Name: "North Line",
		Area: "North",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	lines.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLineCreate_NonAdminForbidden(t *testing.T) {
	svc := newLineService(&mocks.MockLineRepository{}, &mocks.MockCustomerRepository{})

	manager := domain.Principal{ID: uuid.New(), Role: domain.RoleManager}
	_, err := svc.Create(context.Background(), manager, &domain.CreateLineRequest{Name: "X", Area: "Y"})

	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestAddCustomer_AppendsAtEnd(t *testing.T) {
	lines := &mocks.MockLineRepository{}
	customers := &mocks.MockCustomerRepository{}
	svc := newLineService(lines, customers)

	lineID := uuid.New()
	customerID := uuid.New()

	lines.On("GetByID", mock.Anything, lineID).Return(&domain.Line{ID: lineID}, nil)
	customers.On("GetByID", mock.Anything, customerID).Return(&domain.Customer{ID: customerID}, nil)
	lines.On("AddCustomer", mock.Anything, lineID, customerID).Return(4, nil)

	sequence, err := svc.AddCustomer(context.Background(), adminPrincipal(), lineID, customerID)

	assert.NoError(t, err)
	assert.Equal(t, 4, sequence)
}

func TestAddCustomer_LockedLineConflicts(t *testing.T) {
	lines := &mocks.MockLineRepository{}
	svc := newLineService(lines, &mocks.MockCustomerRepository{})

	lineID := uuid.New()
	lines.On("GetByID", mock.Anything, lineID).Return(&domain.Line{ID: lineID, Name: "North Line", IsLocked: true}, nil)

	_, err := svc.AddCustomer(context.Background(), adminPrincipal(), lineID, uuid.New())

	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	lines.AssertNotCalled(t, "AddCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func TestReorder_RewritesFullPermutation(t *testing.T) {
	lines := &mocks.MockLineRepository{}
	svc := newLineService(lines, &mocks.MockCustomerRepository{})

	lineID := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	order := []uuid.UUID{c, a, b}

	lines.On("GetByID", mock.Anything, lineID).Return(&domain.Line{ID: lineID}, nil)
	lines.On("MemberCustomerIDs", mock.Anything, lineID).Return([]uuid.UUID{a, b, c}, nil)
	lines.On("Reorder", mock.Anything, lineID, order).Return(nil)

	err := svc.Reorder(context.Background(), adminPrincipal(), lineID, order)

	assert.NoError(t, err)
	lines.AssertExpectations(t)
}

func TestReorder_UnknownCustomerRejected(t *testing.T) {
	lines := &mocks.MockLineRepository{}
	svc := newLineService(lines, &mocks.MockCustomerRepository{})

	lineID := uuid.New()
	member := uuid.New()
	stranger := uuid.New()

	lines.On("GetByID", mock.Anything, lineID).Return(&domain.Line{ID: lineID}, nil)
	lines.On("MemberCustomerIDs", mock.Anything, lineID).Return([]uuid.UUID{member}, nil)

	err := svc.Reorder(context.Background(), adminPrincipal(), lineID, []uuid.UUID{member, stranger})

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
	lines.AssertNotCalled(t, "Reorder", mock.Anything, mock.Anything, mock.Anything)
}

func TestReorder_SubsetRejected(t *testing.T) {
	lines := &mocks.MockLineRepository{}
	svc := newLineService(lines, &mocks.MockCustomerRepository{})

	lineID := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	lines.On("GetByID", mock.Anything, lineID).Return(&domain.Line{ID: lineID}, nil)
	lines.On("MemberCustomerIDs", mock.Anything, lineID).Return([]uuid.UUID{a, b, c}, nil)

	// Omitting b and c would leave their old sequence numbers in place.
	err := svc.Reorder(context.Background(), adminPrincipal(), lineID, []uuid.UUID{a})

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
	lines.AssertNotCalled(t, "Reorder", mock.Anything, mock.Anything, mock.Anything)
}

func TestReorder_DuplicateCustomerRejected(t *testing.T) {
	lines := &mocks.MockLineRepository{}
	svc := newLineService(lines, &mocks.MockCustomerRepository{})

	lineID := uuid.New()
	member := uuid.New()

	lines.On("GetByID", mock.Anything, lineID).Return(&domain.Line{ID: lineID}, nil)
	lines.On("MemberCustomerIDs", mock.Anything, lineID).Return([]uuid.UUID{member}, nil)

	err := svc.Reorder(context.Background(), adminPrincipal(), lineID, []uuid.UUID{member, member})

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestReorder_LockedLineConflicts(t *testing.T) {
	lines := &mocks.MockLineRepository{}
	svc := newLineService(lines, &mocks.MockCustomerRepository{})

	lineID := uuid.New()
	lines.On("GetByID", mock.Anything, lineID).Return(&domain.Line{ID: lineID, Name: "South Line", IsLocked: true}, nil)

	err := svc.Reorder(context.Background(), adminPrincipal(), lineID, []uuid.UUID{uuid.New()})

	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestToggleLock_Flips(t *testing.T) {
	lines := &mocks.MockLineRepository{}
	svc := newLineService(lines, &mocks.MockCustomerRepository{})

	lineID := uuid.New()
	lines.On("GetByID", mock.Anything, lineID).Return(&domain.Line{ID: lineID, IsLocked: false}, nil)
	lines.On("SetLocked", mock.Anything, lineID, true).Return(nil)

	locked, err := svc.ToggleLock(context.Background(), adminPrincipal(), lineID)

	assert.NoError(t, err)
	assert.True(t, locked)
	lines.AssertExpectations(t)
}

func TestToggleLock_UnknownLine(t *testing.T) {
	lines := &mocks.MockLineRepository{}
	svc := newLineService(lines, &mocks.MockCustomerRepository{})

	lineID := uuid.New()
	lines.On("GetByID", mock.Anything, lineID).Return(nil, sql.ErrNoRows)

	_, err := svc.ToggleLock(context.Background(), adminPrincipal(), lineID)

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
