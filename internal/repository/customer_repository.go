package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vasool/collection-engine/internal/domain"
)

type customerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, mobile_number, address, area, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.MobileNumber,
		customer.Address,
		customer.Area,
		customer.CreatedAt,
	)

	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `
		SELECT id, name, mobile_number, address, area, created_at
		FROM customers
		WHERE id = $1
	`

	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, query, id)
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) GetByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	query := `
		SELECT id, name, mobile_number, address, area, created_at
		FROM customers
		WHERE mobile_number = $1
	`

	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer, query, mobile)
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, mobile_number, address, area, created_at
		FROM customers
		ORDER BY name
	`

	var customers []*domain.Customer
	err := r.db.SelectContext(ctx, &customers, query)
	if err != nil {
		return nil, err
	}

	return customers, nil
}
