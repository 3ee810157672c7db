package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/vasool/collection-engine/internal/domain"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) LifetimeApproved(ctx context.Context) (decimal.Decimal, int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) AS total, COUNT(*) AS cnt
		FROM collections
		WHERE status = $1
	`

	var row struct {
		Total decimal.Decimal `db:"total"`
		Cnt   int64           `db:"cnt"`
	}
	err := r.db.GetContext(ctx, &row, query, domain.CollectionStatusApproved)
	if err != nil {
		return decimal.Zero, 0, err
	}

	return row.Total, row.Cnt, nil
}

func (r *reportRepository) ApprovedByModeBetween(ctx context.Context, from, to time.Time) ([]*domain.ModeTotal, error) {
	query := `
		SELECT payment_mode, COALESCE(SUM(amount), 0) AS total
		FROM collections
		WHERE status = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY payment_mode
	`

	var totals []*domain.ModeTotal
	err := r.db.SelectContext(ctx, &totals, query, domain.CollectionStatusApproved, from, to)
	if err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *reportRepository) AgentTotals(ctx context.Context) ([]*domain.AgentTotal, error) {
	query := `
		SELECT c.agent_id, u.name, SUM(c.amount) AS total
		FROM collections c
		JOIN users u ON u.id = c.agent_id
		WHERE c.status = $1
		GROUP BY c.agent_id, u.name
		ORDER BY total DESC
	`

	var totals []*domain.AgentTotal
	err := r.db.SelectContext(ctx, &totals, query, domain.CollectionStatusApproved)
	if err != nil {
		return nil, err
	}

	return totals, nil
}

// UpsertDailySettlements rolls up one calendar day of approved collections
// into daily_settlements, one row per agent. Re-running for the same day
// overwrites the previous rollup.
func (r *reportRepository) UpsertDailySettlements(ctx context.Context, day time.Time) (int64, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	query := `
		INSERT INTO daily_settlements (id, agent_id, settlement_date, total_cash, total_upi, created_at)
		SELECT gen_random_uuid(), agent_id, $1::date,
		       COALESCE(SUM(amount) FILTER (WHERE payment_mode = $4), 0),
		       COALESCE(SUM(amount) FILTER (WHERE payment_mode = $5), 0),
		       NOW()
		FROM collections
		WHERE status = $6 AND created_at >= $2 AND created_at < $3
		GROUP BY agent_id
		ON CONFLICT (agent_id, settlement_date)
		DO UPDATE SET total_cash = EXCLUDED.total_cash, total_upi = EXCLUDED.total_upi
	`

	result, err := r.db.ExecContext(ctx, query,
		from,
		from,
		to,
		domain.PaymentModeCash,
		domain.PaymentModeUPI,
		domain.CollectionStatusApproved,
	)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
