package public_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/KartikeAnuj/Disaster-Management/internal/api/handlers/http/public"
	mock_public "github.com/KartikeAnuj/Disaster-Management/internal/api/handlers/http/public/mocks"
	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
	"github.com/KartikeAnuj/Disaster-Management/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func addChiURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func TestPublicAlertList_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerts := mock_public.NewMockPublicAlerts(ctrl)
	h := public.NewHandler(newTestLogger(), alerts)

	alerts.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, lr domain.ListAlertsRequest) (*domain.ListAlertsResponse, error) {
			if lr.Type != domain.AlertFlood || lr.Severity != domain.SeverityHigh {
				t.Fatalf("filters not decoded: %+v", lr)
			}
			if lr.Limit != 10 || lr.Page != 2 {
				t.Fatalf("pagination not decoded: %+v", lr)
			}
			return &domain.ListAlertsResponse{
				Alerts:     []*domain.Alert{{ID: uuid.New()}},
				Page:       2,
				TotalPages: 3,
				Total:      25,
			}, nil
		}).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/?type=flood&severity=high&limit=10&page=2", nil)
	rr := httptest.NewRecorder()

	h.PublicAlertList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.ListAlertsResponse](t, rr)
	if got.Total != 25 || got.TotalPages != 3 {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestPublicAlertList_MalformedPagination_UsesDefaults(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerts := mock_public.NewMockPublicAlerts(ctrl)
	h := public.NewHandler(newTestLogger(), alerts)

	alerts.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, lr domain.ListAlertsRequest) (*domain.ListAlertsResponse, error) {
			if lr.Limit != 20 || lr.Page != 1 {
				t.Fatalf("expected defaults for garbage input, got %+v", lr)
			}
			return &domain.ListAlertsResponse{Alerts: []*domain.Alert{}, Page: 1}, nil
		}).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/?limit=abc&page=xyz", nil)
	rr := httptest.NewRecorder()

	h.PublicAlertList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
}

func TestPublicAlertList_GeoParamsRequireBoth(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerts := mock_public.NewMockPublicAlerts(ctrl)
	h := public.NewHandler(newTestLogger(), alerts)

	alerts.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, lr domain.ListAlertsRequest) (*domain.ListAlertsResponse, error) {
			if lr.Lat != nil || lr.Lng != nil {
				t.Fatalf("lat without lng must not set the geo filter: %+v", lr)
			}
			return &domain.ListAlertsResponse{Alerts: []*domain.Alert{}, Page: 1}, nil
		}).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/?lat=28.7", nil)
	rr := httptest.NewRecorder()

	h.PublicAlertList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
}

func TestPublicAlertGet_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerts := mock_public.NewMockPublicAlerts(ctrl)
	h := public.NewHandler(newTestLogger(), alerts)

	id := uuid.New()
	alerts.EXPECT().
		Get(gomock.Any(), id).
		Return(&domain.Alert{ID: id, Statistics: domain.AlertStatistics{Views: 42}}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/"+id.String(), nil)
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	h.PublicAlertGet(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.Alert](t, rr)
	if got.ID != id || got.Statistics.Views != 42 {
		t.Fatalf("unexpected alert: %+v", got)
	}
}

func TestPublicAlertGet_BadID_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := public.NewHandler(newTestLogger(), mock_public.NewMockPublicAlerts(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/nope", nil)
	req = addChiURLParam(req, "id", "nope")
	rr := httptest.NewRecorder()

	h.PublicAlertGet(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestPublicAlertGet_NotFound_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerts := mock_public.NewMockPublicAlerts(ctrl)
	h := public.NewHandler(newTestLogger(), alerts)

	id := uuid.New()
	alerts.EXPECT().Get(gomock.Any(), id).Return(nil, e.ErrNotFound).Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/"+id.String(), nil)
	req = addChiURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	h.PublicAlertGet(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d", http.StatusNotFound, rr.Code)
	}
}

func TestPublicAlertsNearby_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerts := mock_public.NewMockPublicAlerts(ctrl)
	h := public.NewHandler(newTestLogger(), alerts)

	alerts.EXPECT().
		NearLocation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, nr domain.NearLocationRequest) ([]domain.NearbyAlert, error) {
			if nr.Lat != 28.7 || nr.Lng != 77.1 || nr.RadiusKM != 25 {
				t.Fatalf("request not decoded: %+v", nr)
			}
			return []domain.NearbyAlert{
				{CachedAlert: domain.CachedAlert{ID: uuid.New()}, DistanceKM: 14.4},
			}, nil
		}).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/nearby?lat=28.7&lng=77.1&radius=25", nil)
	rr := httptest.NewRecorder()

	h.PublicAlertsNearby(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[map[string]json.RawMessage](t, rr)
	if _, ok := got["alerts"]; !ok {
		t.Fatalf("expected alerts in body: %s", rr.Body.String())
	}
}

func TestPublicAlertsNearby_MissingCoords_400(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		url  string
	}{
		{"no_params", "/api/v1/alerts/nearby"},
		{"lat_only", "/api/v1/alerts/nearby?lat=28.7"},
		{"lng_only", "/api/v1/alerts/nearby?lng=77.1"},
		{"garbage_lat", "/api/v1/alerts/nearby?lat=abc&lng=77.1"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h := public.NewHandler(newTestLogger(), mock_public.NewMockPublicAlerts(ctrl))

			req := httptest.NewRequest(http.MethodGet, c.url, nil)
			rr := httptest.NewRecorder()

			h.PublicAlertsNearby(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
			}
		})
	}
}

func TestPublicAlertsNearby_InvalidCoordinates_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerts := mock_public.NewMockPublicAlerts(ctrl)
	h := public.NewHandler(newTestLogger(), alerts)

	alerts.EXPECT().
		NearLocation(gomock.Any(), gomock.Any()).
		Return(nil, e.ErrInvalidCoordinates).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/nearby?lat=95&lng=77.1", nil)
	rr := httptest.NewRecorder()

	h.PublicAlertsNearby(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}
