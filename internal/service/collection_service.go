package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/repository"
	apperrors "github.com/vasool/collection-engine/pkg/errors"
)

type CollectionService struct {
	collectionRepo repository.CollectionRepository
	loanRepo       repository.LoanRepository
	userRepo       repository.UserRepository
	logger         *logrus.Logger
}

func NewCollectionService(
	collectionRepo repository.CollectionRepository,
	loanRepo repository.LoanRepository,
	userRepo repository.UserRepository,
	logger *logrus.Logger,
) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		loanRepo:       loanRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// Submit records a field agent's collection against a loan. The row starts
// pending; the loan balance is untouched until a reviewer approves it.
func (s *CollectionService) Submit(ctx context.Context, principal domain.Principal, request *domain.SubmitCollectionRequest) (*domain.Collection, error) {
	if !request.Amount.IsPositive() {
		return nil, apperrors.InvalidInput("amount must be a positive number")
	}

	loanID, err := uuid.Parse(request.LoanID)
	if err != nil {
		return nil, apperrors.InvalidInput("loan_id is not a valid id")
	}

	if _, err = s.loanRepo.GetByID(ctx, loanID); err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("loan %s not found", loanID)
		}
		return nil, storeErr(err)
	}

	mode := request.PaymentMode
	if mode == "" {
		mode = domain.PaymentModeCash
	}

	var lineID uuid.NullUUID
	if request.LineID != "" {
		id, parseErr := uuid.Parse(request.LineID)
		if parseErr != nil {
			return nil, apperrors.InvalidInput("line_id is not a valid id")
		}
		lineID = uuid.NullUUID{UUID: id, Valid: true}
	}

	collection := &domain.Collection{
		ID:          uuid.New(),
		LoanID:      loanID,
		AgentID:     principal.ID,
		LineID:      lineID,
		Amount:      request.Amount,
		PaymentMode: mode,
		Status:      domain.CollectionStatusPending,
		Latitude:    request.Latitude,
		Longitude:   request.Longitude,
		CreatedAt:   time.Now().UTC(),
	}

	if err = s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, storeErr(err)
	}

	s.logger.WithFields(logrus.Fields{
		"collection_id": collection.ID,
		"loan_id":       loanID,
		"agent_id":      principal.ID,
		"amount":        collection.Amount,
	}).Info("collection submitted")

	return collection, nil
}

// ListPending returns the review queue scoped to the caller: admins see
// everything, managers only their team's submissions.
func (s *CollectionService) ListPending(ctx context.Context, principal domain.Principal) ([]*domain.PendingCollectionResponse, error) {
	if !principal.Role.CanReviewCollections() {
		return nil, apperrors.Forbidden("role %s may not review collections", principal.Role)
	}

	var (
		pending []*domain.PendingCollectionResponse
		err     error
	)
	if principal.Role == domain.RoleManager {
		pending, err = s.collectionRepo.ListPendingByManager(ctx, principal.ID)
	} else {
		pending, err = s.collectionRepo.ListPending(ctx)
	}
	if err != nil {
		return nil, storeErr(err)
	}

	return pending, nil
}

// Review transitions a pending collection to approved or rejected.
// Approval applies the balance delta to the loan atomically; a collection
// already in a terminal state yields a conflict and leaves the loan alone.
func (s *CollectionService) Review(ctx context.Context, principal domain.Principal, collectionID uuid.UUID, status string) (*domain.Collection, error) {
	if status != domain.CollectionStatusApproved && status != domain.CollectionStatusRejected {
		return nil, apperrors.InvalidInput("status must be approved or rejected")
	}

	if !principal.Role.CanReviewCollections() {
		return nil, apperrors.Forbidden("role %s may not review collections", principal.Role)
	}

	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("collection %s not found", collectionID)
		}
		return nil, storeErr(err)
	}

	if err = s.authorizeReview(ctx, principal, collection.AgentID); err != nil {
		return nil, err
	}

	if status == domain.CollectionStatusRejected {
		rejected, rejectErr := s.collectionRepo.Reject(ctx, collectionID)
		if rejectErr != nil {
			return nil, storeErr(rejectErr)
		}

		s.logger.WithFields(logrus.Fields{
			"collection_id": collectionID,
			"reviewer_id":   principal.ID,
		}).Info("collection rejected")

		return rejected, nil
	}

	approved, loan, err := s.collectionRepo.Approve(ctx, collectionID)
	if err != nil {
		return nil, storeErr(err)
	}

	s.logger.WithFields(logrus.Fields{
		"collection_id":  collectionID,
		"reviewer_id":    principal.ID,
		"loan_id":        loan.ID,
		"pending_amount": loan.PendingAmount,
		"loan_status":    loan.Status,
	}).Info("collection approved")

	return approved, nil
}

// authorizeReview enforces team scoping: a manager may only act on
// collections submitted by their own agents.
func (s *CollectionService) authorizeReview(ctx context.Context, principal domain.Principal, agentID uuid.UUID) error {
	if principal.Role != domain.RoleManager {
		return nil
	}

	agent, err := s.userRepo.GetByID(ctx, agentID)
	if err != nil {
		if isNoRows(err) {
			return apperrors.NotFound("agent %s not found", agentID)
		}
		return storeErr(err)
	}

	if !agent.ManagerID.Valid || agent.ManagerID.UUID != principal.ID {
		return apperrors.Forbidden("collection belongs to another manager's team")
	}

	return nil
}
