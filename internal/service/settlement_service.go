package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vasool/collection-engine/internal/repository"
)

// SettlementService drives the nightly per-agent rollup of approved
// collections. It runs from the scheduler binary, not the API server.
type SettlementService struct {
	reportRepo repository.ReportRepository
	logger     *logrus.Logger
}

func NewSettlementService(reportRepo repository.ReportRepository, logger *logrus.Logger) *SettlementService {
	return &SettlementService{reportRepo: reportRepo, logger: logger}
}

// RunDaily settles one calendar day. Safe to re-run: the rollup upserts,
// so a repeated run overwrites rather than duplicates.
func (s *SettlementService) RunDaily(ctx context.Context, day time.Time) error {
	rows, err := s.reportRepo.UpsertDailySettlements(ctx, day)
	if err != nil {
		s.logger.WithError(err).WithField("day", day.Format("2006-01-02")).Error("daily settlement failed")
		return storeErr(err)
	}

	s.logger.WithFields(logrus.Fields{
		"day":    day.Format("2006-01-02"),
		"agents": rows,
	}).Info("daily settlement written")

	return nil
}
