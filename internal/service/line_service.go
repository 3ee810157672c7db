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

type LineService struct {
	lineRepo     repository.LineRepository
	customerRepo repository.CustomerRepository
	logger       *logrus.Logger
}

func NewLineService(
	lineRepo repository.LineRepository,
	customerRepo repository.CustomerRepository,
	logger *logrus.Logger,
) *LineService {
	return &LineService{
		lineRepo:     lineRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *LineService) Create(ctx context.Context, principal domain.Principal, request *domain.CreateLineRequest) (*domain.Line, error) {
	if !principal.Role.CanManageRoutes() {
		return nil, apperrors.Forbidden("role %s may not manage routes", principal.Role)
	}

	existing, err := s.lineRepo.GetByName(ctx, request.Name)
	if err != nil && !isNoRows(err) {
		return nil, storeErr(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("line name %q already exists", request.Name)
	}

	var agentID uuid.NullUUID
	if request.AgentID != "" {
		id, parseErr := uuid.Parse(request.AgentID)
		if parseErr != nil {
			return nil, apperrors.InvalidInput("agent_id is not a valid id")
		}
		agentID = uuid.NullUUID{UUID: id, Valid: true}
	}

	workingDays := request.WorkingDays
	if workingDays == "" {
		workingDays = "Mon-Sat"
	}

	line := &domain.Line{
		ID:          uuid.New(),
		Name:        request.Name,
		Area:        request.Area,
		AgentID:     agentID,
		WorkingDays: workingDays,
		CreatedAt:   time.Now().UTC(),
	}

	if err = s.lineRepo.Create(ctx, line); err != nil {
		return nil, storeErr(err)
	}

	s.logger.WithFields(logrus.Fields{"line_id": line.ID, "name": line.Name}).Info("line created")

	return line, nil
}

// List returns all lines for an admin and only the caller's own lines for
// a field agent or manager.
func (s *LineService) List(ctx context.Context, principal domain.Principal) ([]*domain.LineSummaryResponse, error) {
	if principal.Role == domain.RoleAdmin {
		lines, err := s.lineRepo.List(ctx)
		if err != nil {
			return nil, storeErr(err)
		}
		return lines, nil
	}

	lines, err := s.lineRepo.ListByAgent(ctx, principal.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	return lines, nil
}

func (s *LineService) AssignAgent(ctx context.Context, principal domain.Principal, lineID, agentID uuid.UUID) error {
	if !principal.Role.CanManageRoutes() {
		return apperrors.Forbidden("role %s may not manage routes", principal.Role)
	}

	if _, err := s.getLine(ctx, lineID); err != nil {
		return err
	}

	if err := s.lineRepo.AssignAgent(ctx, lineID, agentID); err != nil {
		return storeErr(err)
	}

	return nil
}

// AddCustomer appends the customer at the end of the route. The lock flag
// is enforced here, not left to callers.
func (s *LineService) AddCustomer(ctx context.Context, principal domain.Principal, lineID, customerID uuid.UUID) (int, error) {
	if !principal.Role.CanManageRoutes() {
		return 0, apperrors.Forbidden("role %s may not manage routes", principal.Role)
	}

	line, err := s.getLine(ctx, lineID)
	if err != nil {
		return 0, err
	}
	if line.IsLocked {
		return 0, apperrors.Conflict("line %q is locked", line.Name)
	}

	if _, err = s.customerRepo.GetByID(ctx, customerID); err != nil {
		if isNoRows(err) {
			return 0, apperrors.NotFound("customer %s not found", customerID)
		}
		return 0, storeErr(err)
	}

	sequence, err := s.lineRepo.AddCustomer(ctx, lineID, customerID)
	if err != nil {
		return 0, storeErr(err)
	}

	return sequence, nil
}

func (s *LineService) ListCustomers(ctx context.Context, lineID uuid.UUID) ([]*domain.RouteStop, error) {
	if _, err := s.getLine(ctx, lineID); err != nil {
		return nil, err
	}

	stops, err := s.lineRepo.ListCustomers(ctx, lineID)
	if err != nil {
		return nil, storeErr(err)
	}

	return stops, nil
}

// Reorder rewrites the route to 1..N following the submitted order. The
// order must be a permutation of the line's current members: unknown IDs,
// duplicates, and partial lists are all input errors rather than being
// silently skipped, since a partial rewrite would leave stale sequence
// numbers on the omitted customers.
func (s *LineService) Reorder(ctx context.Context, principal domain.Principal, lineID uuid.UUID, orderedCustomerIDs []uuid.UUID) error {
	if !principal.Role.CanManageRoutes() {
		return apperrors.Forbidden("role %s may not manage routes", principal.Role)
	}

	line, err := s.getLine(ctx, lineID)
	if err != nil {
		return err
	}
	if line.IsLocked {
		return apperrors.Conflict("line %q is locked", line.Name)
	}

	memberIDs, err := s.lineRepo.MemberCustomerIDs(ctx, lineID)
	if err != nil {
		return storeErr(err)
	}

	members := make(map[uuid.UUID]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	seen := make(map[uuid.UUID]bool, len(orderedCustomerIDs))
	for _, id := range orderedCustomerIDs {
		if !members[id] {
			return apperrors.InvalidInput("customer %s is not on this line", id)
		}
		if seen[id] {
			return apperrors.InvalidInput("customer %s appears twice in order", id)
		}
		seen[id] = true
	}
	if len(orderedCustomerIDs) != len(memberIDs) {
		return apperrors.InvalidInput("order lists %d of the line's %d customers", len(orderedCustomerIDs), len(memberIDs))
	}

	if err = s.lineRepo.Reorder(ctx, lineID, orderedCustomerIDs); err != nil {
		return storeErr(err)
	}

	s.logger.WithFields(logrus.Fields{"line_id": lineID, "customers": len(orderedCustomerIDs)}).Info("line reordered")

	return nil
}

// ToggleLock flips the lock flag and returns the new state.
func (s *LineService) ToggleLock(ctx context.Context, principal domain.Principal, lineID uuid.UUID) (bool, error) {
	if !principal.Role.CanManageRoutes() {
		return false, apperrors.Forbidden("role %s may not manage routes", principal.Role)
	}

	line, err := s.getLine(ctx, lineID)
	if err != nil {
		return false, err
	}

	locked := !line.IsLocked
	if err = s.lineRepo.SetLocked(ctx, lineID, locked); err != nil {
		return false, storeErr(err)
	}

	return locked, nil
}

func (s *LineService) getLine(ctx context.Context, lineID uuid.UUID) (*domain.Line, error) {
	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("line %s not found", lineID)
		}
		return nil, storeErr(err)
	}
	return line, nil
}
