package postgres

import (
	"context"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"

	"github.com/google/uuid"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	// GetAndCountView increments the view counter and returns the alert in
	// one atomic statement.
	GetAndCountView(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Update(ctx context.Context, alert *domain.Alert) error
	Delete(ctx context.Context, id uuid.UUID) error
	Scan(ctx context.Context, filter domain.AlertFilter, sort domain.AlertSort, limit, offset int) ([]*domain.Alert, int64, error)
	ListActivePublic(ctx context.Context, now time.Time) ([]domain.CachedAlert, error)
}

type StatsRepository interface {
	Collect(ctx context.Context, now time.Time) (*domain.AlertStats, error)
}

func (p *Postgres) Alerts() AlertRepository { return p.Alert }
func (p *Postgres) Stats() StatsRepository  { return p.Stat }
