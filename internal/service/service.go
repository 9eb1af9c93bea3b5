package service

import (
	"context"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// AdminAlertService gates every mutation behind an elevated-role identity.
type AdminAlertService interface {
	Create(ctx context.Context, identity domain.Identity, req domain.CreateAlertRequest) (*domain.Alert, error)
	Update(ctx context.Context, identity domain.Identity, id uuid.UUID, req domain.UpdateAlertRequest) (*domain.Alert, error)
	Delete(ctx context.Context, identity domain.Identity, id uuid.UUID) error
	List(ctx context.Context, req domain.ListAlertsRequest) (*domain.ListAlertsResponse, error)
}

// PublicAlertService answers the read path.
type PublicAlertService interface {
	List(ctx context.Context, req domain.ListAlertsRequest) (*domain.ListAlertsResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	NearLocation(ctx context.Context, req domain.NearLocationRequest) ([]domain.NearbyAlert, error)
}

type StatsService interface {
	GetStats(ctx context.Context, identity domain.Identity) (*domain.AlertStats, error)
}

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	GetAndCountView(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Update(ctx context.Context, alert *domain.Alert) error
	Delete(ctx context.Context, id uuid.UUID) error
	Scan(ctx context.Context, filter domain.AlertFilter, sort domain.AlertSort, limit, offset int) ([]*domain.Alert, int64, error)
	ListActivePublic(ctx context.Context, now time.Time) ([]domain.CachedAlert, error)
}

type StatsRepository interface {
	Collect(ctx context.Context, now time.Time) (*domain.AlertStats, error)
}

type AlertCacheService interface {
	GetActive(ctx context.Context) ([]domain.CachedAlert, error)
	SetActive(ctx context.Context, alerts []domain.CachedAlert, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type EventQueue interface {
	Enqueue(ctx context.Context, event domain.AlertEvent) error
}

type Service struct {
	AdminAlertService  AdminAlertService
	PublicAlertService PublicAlertService
	StatsService       StatsService
}

func NewService(
	adminAlertService AdminAlertService,
	publicAlertService PublicAlertService,
	statsService StatsService,
) *Service {
	return &Service{
		AdminAlertService:  adminAlertService,
		PublicAlertService: publicAlertService,
		StatsService:       statsService,
	}
}
