package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
	"github.com/KartikeAnuj/Disaster-Management/internal/service"
	mock_service "github.com/KartikeAnuj/Disaster-Management/internal/service/mocks"
	"github.com/KartikeAnuj/Disaster-Management/pkg/e"
)

// --- helpers ---

func strPtr(s string) *string                            { return &s }
func f64Ptr(v float64) *float64                          { return &v }
func boolPtr(b bool) *bool                               { return &b }
func typePtr(v domain.AlertType) *domain.AlertType       { return &v }
func sevPtr(v domain.AlertSeverity) *domain.AlertSeverity { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminIdentity(t *testing.T) domain.Identity {
	t.Helper()
	return domain.Identity{ID: uuid.New(), Role: domain.RoleAdmin}
}

func userIdentity(t *testing.T) domain.Identity {
	t.Helper()
	return domain.Identity{ID: uuid.New(), Role: domain.RoleUser}
}

func mustTime(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func validCreateReq(t *testing.T) domain.CreateAlertRequest {
	t.Helper()
	from := mustTime(t)
	return domain.CreateAlertRequest{
		Title:    "Flooding along river banks",
		Type:     domain.AlertFlood,
		Severity: domain.SeverityHigh,
		Location: domain.Location{
			Lat: 28.6139,
			Lng: 77.2090,
		},
		ValidFrom:  from,
		ValidUntil: from.Add(48 * time.Hour),
	}
}

// --- Create ---

func TestAdminService_Create_OK_Defaults(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)
	queue := mock_service.NewMockEventQueue(ctrl)
	cache := mock_service.NewMockAlertCacheService(ctrl)

	var got *domain.Alert
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *domain.Alert) error {
			got = a
			return nil
		}).
		Times(1)
	queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)

	svc := service.NewAdminAlertService(repo, queue, cache, discardLogger(), 0)

	alert, err := svc.Create(context.Background(), adminIdentity(t), validCreateReq(t))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if alert == nil || alert.ID == uuid.Nil {
		t.Fatalf("expected alert with non-nil id, got %+v", alert)
	}
	if got == nil {
		t.Fatalf("expected alert passed to repo.Create")
	}
	if got.Status != domain.StatusActive {
		t.Fatalf("expected default status=%q got=%q", domain.StatusActive, got.Status)
	}
	if got.Location.RadiusKM != domain.DefaultRadiusKM {
		t.Fatalf("expected default radius=%v got=%v", domain.DefaultRadiusKM, got.Location.RadiusKM)
	}
	if !got.IsPublic {
		t.Fatalf("expected is_public to default to true")
	}
}

func TestAdminService_Create_Forbidden_BeforeAnything(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Repo and queue get no expectations: a forbidden caller must not reach them,
	// even with a malformed request.
	repo := mock_service.NewMockAlertRepository(ctrl)
	queue := mock_service.NewMockEventQueue(ctrl)
	cache := mock_service.NewMockAlertCacheService(ctrl)

	svc := service.NewAdminAlertService(repo, queue, cache, discardLogger(), 0)

	bad := domain.CreateAlertRequest{Title: ""}

	_, err := svc.Create(context.Background(), userIdentity(t), bad)
	if !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	_, err = svc.Create(context.Background(), domain.Anonymous(), bad)
	if !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for anonymous, got %v", err)
	}
}

func TestAdminService_Create_InvalidInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*domain.CreateAlertRequest)
		wantErr error
	}{
		{"missing_title", func(r *domain.CreateAlertRequest) { r.Title = "" }, e.ErrInvalidInput},
		{"unknown_type", func(r *domain.CreateAlertRequest) { r.Type = "earthquake" }, e.ErrInvalidInput},
		{"unknown_severity", func(r *domain.CreateAlertRequest) { r.Severity = "catastrophic" }, e.ErrInvalidInput},
		// Out-of-range coordinates trip the struct validators first, which
		// still unwrap to invalid input.
		{"lat_out_of_range", func(r *domain.CreateAlertRequest) { r.Location.Lat = 91 }, e.ErrInvalidInput},
		{"lng_out_of_range", func(r *domain.CreateAlertRequest) { r.Location.Lng = -181 }, e.ErrInvalidInput},
		{"window_inverted", func(r *domain.CreateAlertRequest) {
			r.ValidFrom = r.ValidUntil.Add(time.Hour)
		}, e.ErrInvalidWindow},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock_service.NewMockAlertRepository(ctrl)
			svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

			req := validCreateReq(t)
			c.mutate(&req)

			_, err := svc.Create(context.Background(), adminIdentity(t), req)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
		})
	}
}

func TestAdminService_Create_CoordinateBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		lat, lng float64
	}{
		{"lat_min_lng_min", -90, -180},
		{"lat_max_lng_max", 90, 180},
		{"origin", 0, 0},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock_service.NewMockAlertRepository(ctrl)
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)

			svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

			req := validCreateReq(t)
			req.Location.Lat = c.lat
			req.Location.Lng = c.lng

			if _, err := svc.Create(context.Background(), adminIdentity(t), req); err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
		})
	}
}

func TestAdminService_Create_ZeroLengthWindow(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	req := validCreateReq(t)
	req.ValidUntil = req.ValidFrom

	if _, err := svc.Create(context.Background(), adminIdentity(t), req); err != nil {
		t.Fatalf("valid_from == valid_until must be accepted, got %v", err)
	}
}

func TestAdminService_Create_ExplicitPrivate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *domain.Alert) error {
			if a.IsPublic {
				t.Fatalf("expected is_public=false when set explicitly")
			}
			return nil
		}).
		Times(1)

	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	req := validCreateReq(t)
	req.IsPublic = boolPtr(false)

	if _, err := svc.Create(context.Background(), adminIdentity(t), req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestAdminService_Create_RepoError_NoEvent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)
	queue := mock_service.NewMockEventQueue(ctrl)
	cache := mock_service.NewMockAlertCacheService(ctrl)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down")).Times(1)
	// No Enqueue or Invalidate expectations: a failed write publishes nothing.

	svc := service.NewAdminAlertService(repo, queue, cache, discardLogger(), 0)

	if _, err := svc.Create(context.Background(), adminIdentity(t), validCreateReq(t)); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestAdminService_Create_QueueFailureDoesNotFailWrite(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)
	queue := mock_service.NewMockEventQueue(ctrl)
	cache := mock_service.NewMockAlertCacheService(ctrl)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(1)
	cache.EXPECT().Invalidate(gomock.Any()).Return(errors.New("redis down")).Times(1)

	svc := service.NewAdminAlertService(repo, queue, cache, discardLogger(), 0)

	if _, err := svc.Create(context.Background(), adminIdentity(t), validCreateReq(t)); err != nil {
		t.Fatalf("queue/cache failure must not fail the write, got %v", err)
	}
}

// --- Update ---

func TestAdminService_Update_PartialPatch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)
	queue := mock_service.NewMockEventQueue(ctrl)
	cache := mock_service.NewMockAlertCacheService(ctrl)

	queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil).AnyTimes()

	admin := adminIdentity(t)
	id := uuid.New()
	from := mustTime(t)
	existing := &domain.Alert{
		ID:       id,
		Title:    "Old title",
		Type:     domain.AlertFlood,
		Severity: domain.SeverityLow,
		Status:   domain.StatusActive,
		Location: domain.Location{
			Lat: 28.6139, Lng: 77.2090, RadiusKM: 25, City: "Delhi",
		},
		ValidFrom:  from,
		ValidUntil: from.Add(24 * time.Hour),
		IsPublic:   true,
		CreatedBy:  uuid.New(),
		UpdatedBy:  uuid.New(),
	}

	req := domain.UpdateAlertRequest{
		Severity: sevPtr(domain.SeverityCritical),
	}

	var updated *domain.Alert
	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), id).Return(existing, nil).Times(1),
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *domain.Alert) error {
				updated = a
				return nil
			}).Times(1),
	)

	svc := service.NewAdminAlertService(repo, queue, cache, discardLogger(), 0)

	if _, err := svc.Update(context.Background(), admin, id, req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if updated.Severity != domain.SeverityCritical {
		t.Fatalf("expected severity patched, got %q", updated.Severity)
	}
	if updated.Title != existing.Title || updated.Type != existing.Type || updated.Status != existing.Status {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.Location.RadiusKM != 25 || updated.Location.City != "Delhi" {
		t.Fatalf("location must stay untouched, got %+v", updated.Location)
	}
	if updated.UpdatedBy != admin.ID {
		t.Fatalf("expected updated_by=%s got=%s", admin.ID, updated.UpdatedBy)
	}
}

func TestAdminService_Update_LocationPatchKeepsRadius(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)

	id := uuid.New()
	from := mustTime(t)
	existing := &domain.Alert{
		ID:       id,
		Title:    "Landslide watch",
		Type:     domain.AlertLandslide,
		Severity: domain.SeverityMedium,
		Status:   domain.StatusActive,
		Location: domain.Location{
			Lat: 10, Lng: 20, RadiusKM: 75,
		},
		ValidFrom:  from,
		ValidUntil: from.Add(time.Hour),
		IsPublic:   true,
	}

	req := domain.UpdateAlertRequest{
		Location: &domain.LocationPatch{Lat: f64Ptr(11), Lng: f64Ptr(21), City: strPtr("Shimla")},
	}

	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), id).Return(existing, nil).Times(1),
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *domain.Alert) error {
				if a.Location.Lat != 11 || a.Location.Lng != 21 {
					t.Fatalf("coordinates not patched: %+v", a.Location)
				}
				if a.Location.RadiusKM != 75 {
					t.Fatalf("radius must survive a location patch without one, got %v", a.Location.RadiusKM)
				}
				if a.Location.City != "Shimla" {
					t.Fatalf("expected city patched, got %q", a.Location.City)
				}
				return nil
			}).Times(1),
	)

	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	if _, err := svc.Update(context.Background(), adminIdentity(t), id, req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestAdminService_Update_AddressOnlyPatchKeepsCoordinates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)

	id := uuid.New()
	from := mustTime(t)
	existing := &domain.Alert{
		ID:       id,
		Title:    "Landslide watch",
		Type:     domain.AlertLandslide,
		Severity: domain.SeverityMedium,
		Status:   domain.StatusActive,
		Location: domain.Location{
			Lat: 28.6139, Lng: 77.2090, RadiusKM: 75,
		},
		ValidFrom:  from,
		ValidUntil: from.Add(time.Hour),
		IsPublic:   true,
	}

	req := domain.UpdateAlertRequest{
		Location: &domain.LocationPatch{Address: strPtr("Mall Road")},
	}

	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), id).Return(existing, nil).Times(1),
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *domain.Alert) error {
				if a.Location.Lat != 28.6139 || a.Location.Lng != 77.2090 {
					t.Fatalf("address-only patch must not move the alert, got %+v", a.Location)
				}
				if a.Location.Address != "Mall Road" {
					t.Fatalf("expected address patched, got %q", a.Location.Address)
				}
				return nil
			}).Times(1),
	)

	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	if _, err := svc.Update(context.Background(), adminIdentity(t), id, req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestAdminService_Update_WindowInverted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)

	id := uuid.New()
	from := mustTime(t)
	existing := &domain.Alert{
		ID:         id,
		Title:      "Flood",
		Type:       domain.AlertFlood,
		Severity:   domain.SeverityHigh,
		Status:     domain.StatusActive,
		Location:   domain.Location{Lat: 1, Lng: 2, RadiusKM: 10},
		ValidFrom:  from,
		ValidUntil: from.Add(time.Hour),
	}

	// Patching valid_until behind the stored valid_from must fail before Update.
	bad := from.Add(-time.Hour)
	req := domain.UpdateAlertRequest{ValidUntil: &bad}

	repo.EXPECT().Get(gomock.Any(), id).Return(existing, nil).Times(1)

	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	_, err := svc.Update(context.Background(), adminIdentity(t), id, req)
	if !errors.Is(err, e.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestAdminService_Update_Forbidden(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)
	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	_, err := svc.Update(context.Background(), userIdentity(t), uuid.New(), domain.UpdateAlertRequest{
		Title: strPtr("new"),
	})
	if !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAdminService_Update_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)

	id := uuid.New()
	repo.EXPECT().Get(gomock.Any(), id).Return(nil, e.ErrNotFound).Times(1)

	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	_, err := svc.Update(context.Background(), adminIdentity(t), id, domain.UpdateAlertRequest{
		Title: strPtr("new"),
	})
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// --- Delete ---

func TestAdminService_Delete_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)
	queue := mock_service.NewMockEventQueue(ctrl)
	cache := mock_service.NewMockAlertCacheService(ctrl)

	id := uuid.New()
	repo.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)
	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev domain.AlertEvent) error {
			if ev.Kind != domain.AlertDeleted || ev.AlertID != id {
				t.Fatalf("unexpected event: %+v", ev)
			}
			return nil
		}).
		Times(1)
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)

	svc := service.NewAdminAlertService(repo, queue, cache, discardLogger(), 0)

	if err := svc.Delete(context.Background(), adminIdentity(t), id); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestAdminService_Delete_Forbidden(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)
	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	if err := svc.Delete(context.Background(), domain.Anonymous(), uuid.New()); !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAdminService_Delete_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)

	id := uuid.New()
	repo.EXPECT().Delete(gomock.Any(), id).Return(e.ErrNotFound).Times(1)

	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	if err := svc.Delete(context.Background(), adminIdentity(t), id); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// --- List (admin scan) ---

func TestAdminService_List_ActiveSubstitutesWindow(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)

	repo.EXPECT().
		Scan(gomock.Any(), gomock.Any(), domain.SortCreatedDesc, 20, 0).
		DoAndReturn(func(_ context.Context, f domain.AlertFilter, _ domain.AlertSort, _, _ int) ([]*domain.Alert, int64, error) {
			if f.ActiveAt == nil {
				t.Fatalf("status=active must filter on the validity window")
			}
			if f.Status != "" {
				t.Fatalf("stored status filter must be cleared, got %q", f.Status)
			}
			if f.IsPublic != nil {
				t.Fatalf("admin scan must not force is_public")
			}
			return []*domain.Alert{}, 0, nil
		}).
		Times(1)

	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	if _, err := svc.List(context.Background(), domain.ListAlertsRequest{Status: domain.StatusActive}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestAdminService_List_UnknownStatusScansUnfiltered(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockAlertRepository(ctrl)

	repo.EXPECT().
		Scan(gomock.Any(), gomock.Any(), domain.SortCreatedDesc, 20, 0).
		DoAndReturn(func(_ context.Context, f domain.AlertFilter, _ domain.AlertSort, _, _ int) ([]*domain.Alert, int64, error) {
			if f.Status != "" {
				t.Fatalf("unknown status must not reach the store, got %q", f.Status)
			}
			if f.ActiveAt != nil {
				t.Fatalf("unknown status must fall back to the unfiltered admin scan")
			}
			return []*domain.Alert{}, 0, nil
		}).
		Times(1)

	svc := service.NewAdminAlertService(repo, nil, nil, discardLogger(), 0)

	if _, err := svc.List(context.Background(), domain.ListAlertsRequest{Status: "bogus"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
