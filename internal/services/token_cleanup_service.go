package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"expense-manager/internal/repositories"
)

type tokenCleanupService struct {
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface
	metrics              MetricsRecorderInterface
}

// NewTokenCleanupService purges revoked tokens once they would have expired on their own.
func NewTokenCleanupService(
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	metrics MetricsRecorderInterface,
) TokenCleanupServiceInterface {
	return &tokenCleanupService{
		blacklistedTokenRepo: blacklistedTokenRepo,
		metrics:              metrics,
	}
}

func (s *tokenCleanupService) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.blacklistedTokenRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		slog.Error("failed to purge expired blacklisted tokens", "error", err)
		return 0, fmt.Errorf("failed to purge expired tokens: %w", err)
	}

	s.metrics.RecordGauge(MetricBlacklistedPurged, float64(deleted), nil)
	s.metrics.RecordGauge(MetricBlacklistedLastPurge, float64(time.Now().Unix()), nil)

	if deleted > 0 {
		slog.Info("purged expired blacklisted tokens", "count", deleted)
	}

	return deleted, nil
}
