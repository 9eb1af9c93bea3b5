package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
)

type ActiveAlertSource interface {
	ListActivePublic(ctx context.Context, now time.Time) ([]domain.CachedAlert, error)
}

type ActiveAlertCache interface {
	SetActive(ctx context.Context, alerts []domain.CachedAlert, ttl time.Duration) error
}

// CacheRefresher keeps the active-alert cache warm so the near-location path
// rarely has to touch the store.
type CacheRefresher struct {
	source   ActiveAlertSource
	cache    ActiveAlertCache
	logger   *slog.Logger
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
}

func NewCacheRefresher(source ActiveAlertSource, cache ActiveAlertCache, logger *slog.Logger, interval, ttl time.Duration) *CacheRefresher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CacheRefresher{
		source:   source,
		cache:    cache,
		logger:   logger,
		interval: interval,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (w *CacheRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("cache refresher stopped", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *CacheRefresher) refresh(ctx context.Context) {
	now := w.now()

	active, err := w.source.ListActivePublic(ctx, now)
	if err != nil {
		w.logger.Error("active alert refresh failed", slog.Any("error", err))
		return
	}

	if err := w.cache.SetActive(ctx, active, w.ttl); err != nil {
		w.logger.Error("active alert cache write failed", slog.Any("error", err))
		return
	}

	w.logger.Debug("active alert cache refreshed", slog.Int("alerts", len(active)))
}
