package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
	"github.com/KartikeAnuj/Disaster-Management/pkg/e"
	"github.com/KartikeAnuj/Disaster-Management/pkg/geo"

	"github.com/google/uuid"
)

const (
	defaultLimit      = 20
	maxLimit          = 100
	nearLocationCap   = 50
	defaultNearRadius = domain.DefaultRadiusKM
)

// PublicService is the query planner for the public read path. Non-public
// alerts never leave it, and "active" always means window containment, not the
// stored status label.
type PublicService struct {
	repo         AlertRepository
	cache        AlertCacheService
	cacheTTL     time.Duration
	logger       *slog.Logger
	now          func() time.Time
	storeTimeout time.Duration
}

func NewPublicAlertService(repo AlertRepository, cache AlertCacheService, cacheTTL time.Duration, logger *slog.Logger, storeTimeout time.Duration) *PublicService {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &PublicService{
		repo:         repo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
		storeTimeout: storeTimeout,
	}
}

func (s *PublicService) List(ctx context.Context, req domain.ListAlertsRequest) (*domain.ListAlertsResponse, error) {
	limit, page := clampPagination(req.Limit, req.Page)

	isPublic := true
	filter := domain.AlertFilter{
		IsPublic: &isPublic,
	}
	if req.Type.Valid() {
		filter.Type = req.Type
	}
	if req.Severity.Valid() {
		filter.Severity = req.Severity
	}

	// An unrecognized status coerces to the active default; it must not
	// widen the result set.
	status := req.Status
	if status == "" || !status.Valid() {
		status = domain.StatusActive
	}
	if status == domain.StatusActive {
		now := s.now()
		filter.ActiveAt = &now
	} else {
		filter.Status = status
	}

	if req.Lat != nil && req.Lng != nil {
		if !geo.ValidCoordinates(*req.Lng, *req.Lat) {
			return nil, fmt.Errorf("service.Public.List: %w", e.ErrInvalidCoordinates)
		}
		filter.Lat = req.Lat
		filter.Lng = req.Lng
		filter.RadiusKM = req.RadiusKM
		if filter.RadiusKM <= 0 {
			filter.RadiusKM = defaultNearRadius
		}
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	alerts, total, err := s.repo.Scan(storeCtx, filter, parseSort(req.Sort), limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &domain.ListAlertsResponse{
		Alerts:     alerts,
		Page:       page,
		TotalPages: totalPages(total, limit),
		Total:      total,
	}, nil
}

// Get fetches one public alert and counts the view. The increment rides inside
// the store read, one per successful fetch; non-public ids report not found.
func (s *PublicService) Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.repo.GetAndCountView(storeCtx, id)
}

// NearLocation answers the containment query against the active public set:
// cache first, store on miss, exact haversine confirmation either way.
func (s *PublicService) NearLocation(ctx context.Context, req domain.NearLocationRequest) ([]domain.NearbyAlert, error) {
	const op = "service.Public.NearLocation"

	if !geo.ValidCoordinates(req.Lng, req.Lat) {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	radius := req.RadiusKM
	if radius <= 0 {
		radius = defaultNearRadius
	}

	now := s.now()

	active, err := s.activeAlerts(ctx, now)
	if err != nil {
		return nil, err
	}

	nearby := make([]domain.NearbyAlert, 0, len(active))
	for _, a := range active {
		if req.Type != "" && a.Type != req.Type {
			continue
		}
		if req.Severity != "" && a.Severity != req.Severity {
			continue
		}
		dist := geo.HaversineKM(req.Lat, req.Lng, a.Lat, a.Lng)
		if dist <= radius {
			nearby = append(nearby, domain.NearbyAlert{CachedAlert: a, DistanceKM: dist})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		ri, rj := nearby[i].Severity.Rank(), nearby[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return nearby[i].CreatedAt.After(nearby[j].CreatedAt)
	})

	if len(nearby) > nearLocationCap {
		nearby = nearby[:nearLocationCap]
	}

	s.logger.Debug("near-location query done",
		slog.Float64("lat", req.Lat),
		slog.Float64("lng", req.Lng),
		slog.Float64("radius_km", radius),
		slog.Int("active", len(active)),
		slog.Int("nearby", len(nearby)),
	)

	return nearby, nil
}

// activeAlerts reads the cached active set, falling back to the store on miss
// or cache failure. Cached entries are re-checked against now since the cache
// may outlive a validity boundary.
func (s *PublicService) activeAlerts(ctx context.Context, now time.Time) ([]domain.CachedAlert, error) {
	if s.cache != nil {
		cached, err := s.cache.GetActive(ctx)
		if err != nil {
			s.logger.Warn("alert cache read failed, falling back to store", slog.Any("error", err))
		} else if cached != nil {
			alive := cached[:0]
			for _, a := range cached {
				if !a.ValidFrom.After(now) && !now.After(a.ValidUntil) {
					alive = append(alive, a)
				}
			}
			return alive, nil
		}
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	active, err := s.repo.ListActivePublic(storeCtx, now)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetActive(ctx, active, s.cacheTTL); err != nil {
			s.logger.Warn("alert cache write failed", slog.Any("error", err))
		}
	}

	return active, nil
}

// clampPagination coerces malformed limit/page to sane defaults rather than
// failing the request.
func clampPagination(limit, page int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page <= 0 {
		page = 1
	}
	return limit, page
}

func parseSort(sort string) domain.AlertSort {
	switch domain.AlertSort(sort) {
	case domain.SortCreatedAsc:
		return domain.SortCreatedAsc
	case domain.SortSeverityDesc:
		return domain.SortSeverityDesc
	default:
		return domain.SortCreatedDesc
	}
}

func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
