package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vasool/collection-engine/internal/domain"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, mobile_number, pin_hash, role, area, manager_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.MobileNumber,
		user.PinHash,
		user.Role,
		user.Area,
		user.ManagerID,
		user.IsActive,
		user.CreatedAt,
	)

	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, name, mobile_number, pin_hash, role, area, manager_id, is_active, created_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	query := `
		SELECT id, name, mobile_number, pin_hash, role, area, manager_id, is_active, created_at
		FROM users
		WHERE mobile_number = $1
	`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, mobile)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.User, error) {
	query := `
		SELECT id, name, mobile_number, pin_hash, role, area, manager_id, is_active, created_at
		FROM users
		WHERE manager_id = $1
		ORDER BY name
	`

	var users []*domain.User
	err := r.db.SelectContext(ctx, &users, query, managerID)
	if err != nil {
		return nil, err
	}

	return users, nil
}
