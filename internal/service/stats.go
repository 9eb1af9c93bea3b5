package service

import (
	"context"
	"fmt"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
	"github.com/KartikeAnuj/Disaster-Management/pkg/e"
)

type statsService struct {
	repo         StatsRepository
	now          func() time.Time
	storeTimeout time.Duration
}

func NewStatsService(repo StatsRepository, storeTimeout time.Duration) StatsService {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &statsService{
		repo:         repo,
		now:          func() time.Time { return time.Now().UTC() },
		storeTimeout: storeTimeout,
	}
}

// GetStats is admin-only. A single now is captured here and shared by every
// facet of the aggregation.
func (s *statsService) GetStats(ctx context.Context, identity domain.Identity) (*domain.AlertStats, error) {
	const op = "service.Stats.GetStats"

	if !identity.HasElevatedRole() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrForbidden)
	}

	now := s.now()

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.repo.Collect(storeCtx, now)
}
