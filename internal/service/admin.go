package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
	"github.com/KartikeAnuj/Disaster-Management/pkg/e"
	"github.com/KartikeAnuj/Disaster-Management/pkg/geo"
	"github.com/KartikeAnuj/Disaster-Management/pkg/validator"

	"github.com/google/uuid"
)

// AdminService is the mutation gatekeeper: the role check runs before any
// validation or store access, so unauthorized callers learn nothing about the
// resource.
type AdminService struct {
	repo         AlertRepository
	queue        EventQueue
	cache        AlertCacheService
	logger       *slog.Logger
	now          func() time.Time
	storeTimeout time.Duration
}

func NewAdminAlertService(repo AlertRepository, queue EventQueue, cache AlertCacheService, logger *slog.Logger, storeTimeout time.Duration) *AdminService {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &AdminService{
		repo:         repo,
		queue:        queue,
		cache:        cache,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
		storeTimeout: storeTimeout,
	}
}

func (s *AdminService) Create(ctx context.Context, identity domain.Identity, req domain.CreateAlertRequest) (*domain.Alert, error) {
	const op = "service.Admin.Create"

	if !identity.HasElevatedRole() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrForbidden)
	}

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, e.ErrInvalidInput, err)
	}
	if !geo.ValidCoordinates(req.Location.Lng, req.Location.Lat) {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if req.ValidFrom.After(req.ValidUntil) {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidWindow)
	}

	alert := &domain.Alert{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Severity:    req.Severity,
		Status:      req.Status,
		Location:    req.Location,
		ValidFrom:   req.ValidFrom.UTC(),
		ValidUntil:  req.ValidUntil.UTC(),
		IsPublic:    true,
		CreatedBy:   identity.ID,
		UpdatedBy:   identity.ID,
	}
	if alert.Status == "" {
		alert.Status = domain.StatusActive
	}
	if alert.Location.RadiusKM <= 0 {
		alert.Location.RadiusKM = domain.DefaultRadiusKM
	}
	if req.IsPublic != nil {
		alert.IsPublic = *req.IsPublic
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.repo.Create(storeCtx, alert); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, domain.AlertCreated, alert, identity)

	return alert, nil
}

func (s *AdminService) Update(ctx context.Context, identity domain.Identity, id uuid.UUID, req domain.UpdateAlertRequest) (*domain.Alert, error) {
	const op = "service.Admin.Update"

	if !identity.HasElevatedRole() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrForbidden)
	}

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, e.ErrInvalidInput, err)
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	alert, err := s.repo.Get(storeCtx, id)
	if err != nil {
		return nil, err
	}

	applyPatch(alert, req)

	if !geo.ValidCoordinates(alert.Location.Lng, alert.Location.Lat) {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if alert.ValidFrom.After(alert.ValidUntil) {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidWindow)
	}

	alert.UpdatedBy = identity.ID

	if err := s.repo.Update(storeCtx, alert); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, domain.AlertUpdated, alert, identity)

	return alert, nil
}

func (s *AdminService) Delete(ctx context.Context, identity domain.Identity, id uuid.UUID) error {
	const op = "service.Admin.Delete"

	if !identity.HasElevatedRole() {
		return fmt.Errorf("%s: %w", op, e.ErrForbidden)
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.repo.Delete(storeCtx, id); err != nil {
		return err
	}

	s.afterMutation(ctx, domain.AlertDeleted, &domain.Alert{ID: id}, identity)

	return nil
}

// List is the administrative scan: unlike the public path it does not force
// is_public and does not substitute the validity window unless asked to.
func (s *AdminService) List(ctx context.Context, req domain.ListAlertsRequest) (*domain.ListAlertsResponse, error) {
	limit, page := clampPagination(req.Limit, req.Page)

	filter := domain.AlertFilter{
		Type:     req.Type,
		Severity: req.Severity,
	}
	switch {
	case req.Status == domain.StatusActive:
		now := s.now()
		filter.ActiveAt = &now
	case req.Status.Valid():
		filter.Status = req.Status
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

// applyPatch merges a partial update into the stored alert. Absent fields stay
// untouched; a location patch without a radius keeps the prior radius.
func applyPatch(alert *domain.Alert, req domain.UpdateAlertRequest) {
	if req.Title != nil {
		alert.Title = *req.Title
	}
	if req.Description != nil {
		alert.Description = *req.Description
	}
	if req.Type != nil {
		alert.Type = *req.Type
	}
	if req.Severity != nil {
		alert.Severity = *req.Severity
	}
	if req.Status != nil {
		alert.Status = *req.Status
	}
	if req.Location != nil {
		if req.Location.Lat != nil {
			alert.Location.Lat = *req.Location.Lat
		}
		if req.Location.Lng != nil {
			alert.Location.Lng = *req.Location.Lng
		}
		if req.Location.RadiusKM != nil {
			alert.Location.RadiusKM = *req.Location.RadiusKM
		}
		if req.Location.Address != nil {
			alert.Location.Address = *req.Location.Address
		}
		if req.Location.City != nil {
			alert.Location.City = *req.Location.City
		}
		if req.Location.State != nil {
			alert.Location.State = *req.Location.State
		}
		if req.Location.Country != nil {
			alert.Location.Country = *req.Location.Country
		}
	}
	if req.ValidFrom != nil {
		alert.ValidFrom = req.ValidFrom.UTC()
	}
	if req.ValidUntil != nil {
		alert.ValidUntil = req.ValidUntil.UTC()
	}
	if req.IsPublic != nil {
		alert.IsPublic = *req.IsPublic
	}
}

// afterMutation is best-effort: a dead queue or cache must not fail the write.
func (s *AdminService) afterMutation(ctx context.Context, kind domain.AlertEventKind, alert *domain.Alert, identity domain.Identity) {
	if s.queue != nil {
		event := domain.AlertEvent{
			Kind:       kind,
			AlertID:    alert.ID,
			Type:       alert.Type,
			Severity:   alert.Severity,
			ActorID:    identity.ID,
			OccurredAt: s.now(),
		}
		if err := s.queue.Enqueue(ctx, event); err != nil {
			s.logger.Error("enqueue alert event failed",
				slog.String("kind", string(kind)),
				slog.String("alert_id", alert.ID.String()),
				slog.Any("error", err),
			)
		}
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Error("cache invalidate failed", slog.Any("error", err))
		}
	}
}
