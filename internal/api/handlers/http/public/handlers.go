package public

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type PublicAlerts interface {
	List(ctx context.Context, req domain.ListAlertsRequest) (*domain.ListAlertsResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	NearLocation(ctx context.Context, req domain.NearLocationRequest) ([]domain.NearbyAlert, error)
}

type Handler struct {
	logger *slog.Logger
	Alerts PublicAlerts
}

func NewHandler(logger *slog.Logger, alerts PublicAlerts) *Handler {
	return &Handler{
		logger: logger,
		Alerts: alerts,
	}
}

func (h *Handler) PublicAlertList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("PublicAlertList", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	q := r.URL.Query()
	req := domain.ListAlertsRequest{
		Type:     domain.AlertType(q.Get("type")),
		Severity: domain.AlertSeverity(q.Get("severity")),
		Status:   domain.AlertStatus(q.Get("status")),
		Page:     parseInt(q.Get("page"), 1),
		Limit:    parseInt(q.Get("limit"), 20),
		Sort:     q.Get("sort"),
		RadiusKM: parseFloat(q.Get("radius"), 0),
	}
	if lat, ok := parseFloatOK(q.Get("lat")); ok {
		if lng, ok := parseFloatOK(q.Get("lng")); ok {
			req.Lat = &lat
			req.Lng = &lng
		}
	}

	resp, err := h.Alerts.List(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PublicAlertGet(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("PublicAlertGet", slog.String("remote", r.RemoteAddr))

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	alert, err := h.Alerts.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) PublicAlertsNearby(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("PublicAlertsNearby", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	q := r.URL.Query()

	lat, latOK := parseFloatOK(q.Get("lat"))
	lng, lngOK := parseFloatOK(q.Get("lng"))
	if !latOK || !lngOK {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng are required"})
		return
	}

	req := domain.NearLocationRequest{
		Lat:      lat,
		Lng:      lng,
		RadiusKM: parseFloat(q.Get("radius"), 0),
		Type:     domain.AlertType(q.Get("type")),
		Severity: domain.AlertSeverity(q.Get("severity")),
	}

	nearby, err := h.Alerts.NearLocation(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("nearby alerts found", slog.Int("count", len(nearby)))
	h.writeJSON(w, http.StatusOK, map[string]any{"alerts": nearby, "count": len(nearby)})
}
