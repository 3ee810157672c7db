package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgentTotal is one row of the per-agent approved-collection ranking.
type AgentTotal struct {
	AgentID uuid.UUID       `json:"agent_id" db:"agent_id"`
	Name    string          `json:"name" db:"name"`
	Total   decimal.Decimal `json:"total" db:"total"`
}

// ModeTotal is the approved sum for one payment mode.
type ModeTotal struct {
	PaymentMode string          `json:"payment_mode" db:"payment_mode"`
	Total       decimal.Decimal `json:"total" db:"total"`
}

// FinancialReport aggregates approved collections only. Pending and
// rejected rows never contribute to any figure here.
type FinancialReport struct {
	TotalApproved    decimal.Decimal            `json:"total_approved"`
	TotalCount       int64                      `json:"total_count"`
	TodayTotal       decimal.Decimal            `json:"today_total"`
	TodayByMode      map[string]decimal.Decimal `json:"today_by_mode"`
	AgentPerformance []*AgentTotal              `json:"agent_performance"`
	GeneratedAt      time.Time                  `json:"generated_at"`
}

// DailySettlement is the nightly per-agent rollup of approved collections,
// written by the scheduler.
type DailySettlement struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	AgentID        uuid.UUID       `json:"agent_id" db:"agent_id"`
	SettlementDate time.Time       `json:"settlement_date" db:"settlement_date"`
	TotalCash      decimal.Decimal `json:"total_cash" db:"total_cash"`
	TotalUPI       decimal.Decimal `json:"total_upi" db:"total_upi"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}
