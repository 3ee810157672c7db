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

type CustomerService struct {
	customerRepo repository.CustomerRepository
	logger       *logrus.Logger
}

func NewCustomerService(customerRepo repository.CustomerRepository, logger *logrus.Logger) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, principal domain.Principal, request *domain.CreateCustomerRequest) (*domain.Customer, error) {
	if !principal.Role.CanManageUsers() {
		return nil, apperrors.Forbidden("role %s may not create customers", principal.Role)
	}

	existing, err := s.customerRepo.GetByMobile(ctx, request.MobileNumber)
	if err != nil && !isNoRows(err) {
		return nil, storeErr(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("customer with mobile %s already exists", request.MobileNumber)
	}

	customer := &domain.Customer{
		ID:           uuid.New(),
		Name:         request.Name,
		MobileNumber: request.MobileNumber,
		Address:      request.Address,
		Area:         request.Area,
		CreatedAt:    time.Now().UTC(),
	}

	if err = s.customerRepo.Create(ctx, customer); err != nil {
		return nil, storeErr(err)
	}

	s.logger.WithFields(logrus.Fields{"customer_id": customer.ID}).Info("customer created")

	return customer, nil
}

func (s *CustomerService) List(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return customers, nil
}
