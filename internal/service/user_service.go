package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/repository"
	apperrors "github.com/vasool/collection-engine/pkg/errors"
)

type UserService struct {
	userRepo repository.UserRepository
	logger   *logrus.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Create registers a manager or field agent. The PIN is stored as a bcrypt
// hash; the plaintext is never persisted.
func (s *UserService) Create(ctx context.Context, principal domain.Principal, request *domain.CreateUserRequest) (*domain.User, error) {
	if !principal.Role.CanManageUsers() {
		return nil, apperrors.Forbidden("role %s may not create users", principal.Role)
	}

	if !request.Role.Valid() {
		return nil, apperrors.InvalidInput("unknown role %q", request.Role)
	}

	existing, err := s.userRepo.GetByMobile(ctx, request.MobileNumber)
	if err != nil && !isNoRows(err) {
		return nil, storeErr(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("user with mobile %s already exists", request.MobileNumber)
	}

	var managerID uuid.NullUUID
	if request.ManagerID != "" {
		if request.Role != domain.RoleFieldAgent {
			return nil, apperrors.InvalidInput("only field agents report to a manager")
		}
		id, parseErr := uuid.Parse(request.ManagerID)
		if parseErr != nil {
			return nil, apperrors.InvalidInput("manager_id is not a valid id")
		}
		manager, managerErr := s.userRepo.GetByID(ctx, id)
		if managerErr != nil {
			if isNoRows(managerErr) {
				return nil, apperrors.NotFound("manager %s not found", id)
			}
			return nil, storeErr(managerErr)
		}
		if manager.Role != domain.RoleManager {
			return nil, apperrors.InvalidInput("user %s is not a manager", id)
		}
		managerID = uuid.NullUUID{UUID: id, Valid: true}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.WrapInternal(err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         request.Name,
		MobileNumber: request.MobileNumber,
		PinHash:      string(hash),
		Role:         request.Role,
		Area:         request.Area,
		ManagerID:    managerID,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		return nil, storeErr(err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user created")

	return user, nil
}

// Team lists the agents reporting to the calling manager.
func (s *UserService) Team(ctx context.Context, principal domain.Principal) ([]*domain.TeamMemberResponse, error) {
	if principal.Role != domain.RoleManager && principal.Role != domain.RoleAdmin {
		return nil, apperrors.Forbidden("role %s has no team", principal.Role)
	}

	agents, err := s.userRepo.ListByManager(ctx, principal.ID)
	if err != nil {
		return nil, storeErr(err)
	}

	team := make([]*domain.TeamMemberResponse, 0, len(agents))
	for _, agent := range agents {
		team = append(team, &domain.TeamMemberResponse{
			ID:           agent.ID,
			Name:         agent.Name,
			MobileNumber: agent.MobileNumber,
			Area:         agent.Area,
			IsActive:     agent.IsActive,
		})
	}

	return team, nil
}
