package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
	"github.com/KartikeAnuj/Disaster-Management/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AlertRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewAlertRepo(pool *pgxpool.Pool, logger *slog.Logger) *AlertRepo {
	return &AlertRepo{pool: pool, logger: logger}
}

const alertColumns = `id, title, description, type, severity, status,
	   lat, lng, radius_km, address, city, state, country,
	   valid_from, valid_until, is_public, created_by, updated_by,
	   views, created_at, updated_at`

// Great-circle distance on a 6371 km sphere via the spherical law of cosines.
// acos input is clamped so identical points cannot fall out of domain.
// Inclusion matches the haversine test in pkg/geo: distance == radius is in.
const greatCircleCond = `(6371 * acos(least(1.0, greatest(-1.0,
	cos(radians($%[1]d)) * cos(radians(lat)) * cos(radians(lng) - radians($%[2]d)) +
	sin(radians($%[1]d)) * sin(radians(lat)))))) <= $%[3]d`

const severityRank = `CASE severity
	WHEN 'critical' THEN 4
	WHEN 'high' THEN 3
	WHEN 'medium' THEN 2
	WHEN 'low' THEN 1
	ELSE 0 END`

func scanAlert(row pgx.Row) (*domain.Alert, error) {
	var a domain.Alert
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Type,
		&a.Severity,
		&a.Status,
		&a.Location.Lat,
		&a.Location.Lng,
		&a.Location.RadiusKM,
		&a.Location.Address,
		&a.Location.City,
		&a.Location.State,
		&a.Location.Country,
		&a.ValidFrom,
		&a.ValidUntil,
		&a.IsPublic,
		&a.CreatedBy,
		&a.UpdatedBy,
		&a.Statistics.Views,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlertRepo) Create(ctx context.Context, alert *domain.Alert) error {
	const op = "postgres.Alert.Create"

	const query = `
		INSERT INTO alerts (id, title, description, type, severity, status,
			lat, lng, radius_km, address, city, state, country,
			valid_from, valid_until, is_public, created_by, updated_by,
			views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21)
	`

	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	alert.UpdatedAt = alert.CreatedAt
	if alert.UpdatedBy == uuid.Nil {
		alert.UpdatedBy = alert.CreatedBy
	}

	_, err := r.pool.Exec(ctx, query,
		alert.ID,
		alert.Title,
		alert.Description,
		alert.Type,
		alert.Severity,
		alert.Status,
		alert.Location.Lat,
		alert.Location.Lng,
		alert.Location.RadiusKM,
		alert.Location.Address,
		alert.Location.City,
		alert.Location.State,
		alert.Location.Country,
		alert.ValidFrom,
		alert.ValidUntil,
		alert.IsPublic,
		alert.CreatedBy,
		alert.UpdatedBy,
		alert.Statistics.Views,
		alert.CreatedAt,
		alert.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (r *AlertRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	const op = "postgres.Alert.Get"

	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	alert, err := scanAlert(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		r.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return alert, nil
}

// GetAndCountView bumps the view counter inside the read statement itself, so
// concurrent readers never lose increments. It serves the public read path, so
// non-public alerts report not found.
func (r *AlertRepo) GetAndCountView(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	const op = "postgres.Alert.GetAndCountView"

	query := `
		UPDATE alerts
		SET views = views + 1
		WHERE id = $1 AND is_public
		RETURNING ` + alertColumns

	alert, err := scanAlert(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		r.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return alert, nil
}

func (r *AlertRepo) Update(ctx context.Context, alert *domain.Alert) error {
	const op = "postgres.Alert.Update"

	const query = `
		UPDATE alerts
		SET title = $2, description = $3, type = $4, severity = $5, status = $6,
			lat = $7, lng = $8, radius_km = $9,
			address = $10, city = $11, state = $12, country = $13,
			valid_from = $14, valid_until = $15, is_public = $16,
			updated_by = $17, updated_at = $18
		WHERE id = $1
	`

	alert.UpdatedAt = time.Now().UTC()

	cmd, err := r.pool.Exec(ctx, query,
		alert.ID,
		alert.Title,
		alert.Description,
		alert.Type,
		alert.Severity,
		alert.Status,
		alert.Location.Lat,
		alert.Location.Lng,
		alert.Location.RadiusKM,
		alert.Location.Address,
		alert.Location.City,
		alert.Location.State,
		alert.Location.Country,
		alert.ValidFrom,
		alert.ValidUntil,
		alert.IsPublic,
		alert.UpdatedBy,
		alert.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", alert.ID.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

func (r *AlertRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Alert.Delete"

	// Hard removal. No tombstones.
	const query = `DELETE FROM alerts WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

func (r *AlertRepo) Scan(ctx context.Context, filter domain.AlertFilter, sort domain.AlertSort, limit, offset int) ([]*domain.Alert, int64, error) {
	const op = "postgres.Alert.Scan"

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where, args := buildFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM alerts` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`SELECT %s FROM alerts%s %s LIMIT $%d OFFSET $%d`,
		alertColumns, where, orderBy(sort), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, 0, e.WrapError(ctx, op, err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	return alerts, total, nil
}

func (r *AlertRepo) ListActivePublic(ctx context.Context, now time.Time) ([]domain.CachedAlert, error) {
	const op = "postgres.Alert.ListActivePublic"

	const query = `
		SELECT id, title, type, severity, lat, lng, radius_km, valid_from, valid_until, created_at
		FROM alerts
		WHERE is_public = TRUE AND valid_from <= $1 AND valid_until >= $1
	`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	alerts := make([]domain.CachedAlert, 0, 16)
	for rows.Next() {
		var a domain.CachedAlert
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Type, &a.Severity,
			&a.Lat, &a.Lng, &a.RadiusKM,
			&a.ValidFrom, &a.ValidUntil, &a.CreatedAt,
		); err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return alerts, nil
}

func buildFilter(f domain.AlertFilter) (string, []any) {
	conds := make([]string, 0, 6)
	args := make([]any, 0, 8)

	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Severity != "" {
		args = append(args, f.Severity)
		conds = append(conds, fmt.Sprintf("severity = $%d", len(args)))
	}
	if f.ActiveAt != nil {
		// Window containment substitutes the stored-status check.
		args = append(args, f.ActiveAt.UTC())
		n := len(args)
		conds = append(conds, fmt.Sprintf("valid_from <= $%d AND valid_until >= $%d", n, n))
	} else if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.IsPublic != nil {
		args = append(args, *f.IsPublic)
		conds = append(conds, fmt.Sprintf("is_public = $%d", len(args)))
	}
	if f.Lat != nil && f.Lng != nil && f.RadiusKM > 0 {
		args = append(args, *f.Lat, *f.Lng, f.RadiusKM)
		conds = append(conds, fmt.Sprintf(greatCircleCond, len(args)-2, len(args)-1, len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(sort domain.AlertSort) string {
	switch sort {
	case domain.SortCreatedAsc:
		return "ORDER BY created_at ASC"
	case domain.SortSeverityDesc:
		return "ORDER BY " + severityRank + " DESC, created_at DESC"
	default:
		return "ORDER BY created_at DESC"
	}
}
