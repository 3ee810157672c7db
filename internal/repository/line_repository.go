package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vasool/collection-engine/internal/domain"
)

const lineColumns = `id, name, area, agent_id, is_locked, working_days, created_at`

type lineRepository struct {
	db *sqlx.DB
}

func NewLineRepository(db *sqlx.DB) LineRepository {
	return &lineRepository{db: db}
}

func (r *lineRepository) Create(ctx context.Context, line *domain.Line) error {
	query := `
		INSERT INTO lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		line.ID,
		line.Name,
		line.Area,
		line.AgentID,
		line.IsLocked,
		line.WorkingDays,
		line.CreatedAt,
	)

	return err
}

func (r *lineRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Line, error) {
	query := `SELECT ` + lineColumns + ` FROM lines WHERE id = $1`

	var line domain.Line
	err := r.db.GetContext(ctx, &line, query, id)
	if err != nil {
		return nil, err
	}

	return &line, nil
}

func (r *lineRepository) GetByName(ctx context.Context, name string) (*domain.Line, error) {
	query := `SELECT ` + lineColumns + ` FROM lines WHERE name = $1`

	var line domain.Line
	err := r.db.GetContext(ctx, &line, query, name)
	if err != nil {
		return nil, err
	}

	return &line, nil
}

const lineSummaryQuery = `
	SELECT l.id, l.name, l.area, l.agent_id, l.is_locked,
	       (SELECT COUNT(*) FROM line_customers lc WHERE lc.line_id = l.id) AS customer_count
	FROM lines l
`

func (r *lineRepository) List(ctx context.Context) ([]*domain.LineSummaryResponse, error) {
	var lines []*domain.LineSummaryResponse
	err := r.db.SelectContext(ctx, &lines, lineSummaryQuery+` ORDER BY l.name`)
	if err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *lineRepository) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*domain.LineSummaryResponse, error) {
	var lines []*domain.LineSummaryResponse
	err := r.db.SelectContext(ctx, &lines, lineSummaryQuery+` WHERE l.agent_id = $1 ORDER BY l.name`, agentID)
	if err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *lineRepository) AssignAgent(ctx context.Context, lineID, agentID uuid.UUID) error {
	query := `UPDATE lines SET agent_id = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, lineID, agentID)
	return err
}

func (r *lineRepository) AddCustomer(ctx context.Context, lineID, customerID uuid.UUID) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Lock the line row so two concurrent appends cannot claim the same slot.
	var locked uuid.UUID
	if err = tx.GetContext(ctx, &locked, `SELECT id FROM lines WHERE id = $1 FOR UPDATE`, lineID); err != nil {
		return 0, err
	}

	var next int
	seqQuery := `
		SELECT COALESCE(MAX(sequence_order), 0) + 1
		FROM line_customers
		WHERE line_id = $1
	`
	if err = tx.GetContext(ctx, &next, seqQuery, lineID); err != nil {
		return 0, err
	}

	insert := `
		INSERT INTO line_customers (id, line_id, customer_id, sequence_order, assigned_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err = tx.ExecContext(ctx, insert, uuid.New(), lineID, customerID, next, time.Now().UTC()); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	return next, nil
}

func (r *lineRepository) ListCustomers(ctx context.Context, lineID uuid.UUID) ([]*domain.RouteStop, error) {
	query := `
		SELECT c.id AS customer_id, c.name, c.mobile_number, c.area, lc.sequence_order
		FROM line_customers lc
		JOIN customers c ON c.id = lc.customer_id
		WHERE lc.line_id = $1
		ORDER BY lc.sequence_order
	`

	var stops []*domain.RouteStop
	err := r.db.SelectContext(ctx, &stops, query, lineID)
	if err != nil {
		return nil, err
	}

	return stops, nil
}

func (r *lineRepository) MemberCustomerIDs(ctx context.Context, lineID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT customer_id FROM line_customers WHERE line_id = $1`

	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, query, lineID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *lineRepository) Reorder(ctx context.Context, lineID uuid.UUID, orderedCustomerIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE line_customers
		SET sequence_order = $3
		WHERE line_id = $1 AND customer_id = $2
	`

	for index, customerID := range orderedCustomerIDs {
		if _, err = tx.ExecContext(ctx, query, lineID, customerID, index+1); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *lineRepository) SetLocked(ctx context.Context, lineID uuid.UUID, locked bool) error {
	query := `UPDATE lines SET is_locked = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, lineID, locked)
	return err
}
