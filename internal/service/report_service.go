package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/repository"
	apperrors "github.com/vasool/collection-engine/pkg/errors"
)

const financialsCacheKey = "reports:financials"

type ReportService struct {
	reportRepo repository.ReportRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *logrus.Logger
}

func NewReportService(
	reportRepo repository.ReportRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Financials builds the dashboard aggregates. Every figure is computed
// over approved collections only. Results are cached briefly; cache
// failures are logged and the store is queried instead.
func (s *ReportService) Financials(ctx context.Context, principal domain.Principal) (*domain.FinancialReport, error) {
	if !principal.Role.CanViewReports() {
		return nil, apperrors.Forbidden("role %s may not view reports", principal.Role)
	}

	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	total, count, err := s.reportRepo.LifetimeApproved(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	modeTotals, err := s.reportRepo.ApprovedByModeBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, storeErr(err)
	}

	todayByMode := map[string]decimal.Decimal{
		domain.PaymentModeCash: decimal.Zero,
		domain.PaymentModeUPI:  decimal.Zero,
	}
	todayTotal := decimal.Zero
	for _, mode := range modeTotals {
		todayByMode[mode.PaymentMode] = mode.Total
		todayTotal = todayTotal.Add(mode.Total)
	}

	agents, err := s.reportRepo.AgentTotals(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	report := &domain.FinancialReport{
		TotalApproved:    total,
		TotalCount:       count,
		TodayTotal:       todayTotal,
		TodayByMode:      todayByMode,
		AgentPerformance: agents,
		GeneratedAt:      now,
	}

	s.toCache(ctx, report)

	return report, nil
}

func (s *ReportService) fromCache(ctx context.Context) *domain.FinancialReport {
	if s.cache == nil {
		return nil
	}

	payload, err := s.cache.Get(ctx, financialsCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WithError(err).Warn("report cache read failed")
		}
		return nil
	}

	var report domain.FinancialReport
	if err := json.Unmarshal(payload, &report); err != nil {
		s.logger.WithError(err).Warn("report cache entry corrupt")
		return nil
	}

	return &report
}

func (s *ReportService) toCache(ctx context.Context, report *domain.FinancialReport) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		s.logger.WithError(err).Warn("report cache marshal failed")
		return
	}

	if err := s.cache.Set(ctx, financialsCacheKey, payload, s.cacheTTL).Err(); err != nil {
		s.logger.WithError(err).Warn("report cache write failed")
	}
}
