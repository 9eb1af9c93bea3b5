package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
	"github.com/KartikeAnuj/Disaster-Management/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStatsRepo(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepo {
	return &StatsRepo{pool: pool, logger: logger}
}

// Collect computes every facet against the caller-supplied now, so the active
// and recent windows cannot skew within one aggregation call.
func (r *StatsRepo) Collect(ctx context.Context, now time.Time) (*domain.AlertStats, error) {
	const op = "postgres.Stats.Collect"

	now = now.UTC()

	const countsQuery = `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE valid_from <= $1 AND valid_until >= $1),
			   COUNT(*) FILTER (WHERE created_at >= $1 - INTERVAL '7 days')
		FROM alerts
	`

	stats := &domain.AlertStats{
		AlertsByType:     make(map[domain.AlertType]int64),
		AlertsBySeverity: make(map[domain.AlertSeverity]int64),
	}

	if err := r.pool.QueryRow(ctx, countsQuery, now).Scan(
		&stats.TotalAlerts,
		&stats.ActiveAlerts,
		&stats.RecentAlerts,
	); err != nil {
		r.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	const byTypeQuery = `SELECT type, COUNT(*) FROM alerts GROUP BY type`

	rows, err := r.pool.Query(ctx, byTypeQuery)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var typ domain.AlertType
		var cnt int64
		if err := rows.Scan(&typ, &cnt); err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		stats.AlertsByType[typ] = cnt
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	const bySeverityQuery = `SELECT severity, COUNT(*) FROM alerts GROUP BY severity`

	sevRows, err := r.pool.Query(ctx, bySeverityQuery)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer sevRows.Close()

	for sevRows.Next() {
		var sev domain.AlertSeverity
		var cnt int64
		if err := sevRows.Scan(&sev, &cnt); err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		stats.AlertsBySeverity[sev] = cnt
	}
	if err := sevRows.Err(); err != nil {
		r.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return stats, nil
}
