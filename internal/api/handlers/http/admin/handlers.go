package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"
	"github.com/KartikeAnuj/Disaster-Management/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AdminAlerts interface {
	Create(ctx context.Context, identity domain.Identity, req domain.CreateAlertRequest) (*domain.Alert, error)
	Update(ctx context.Context, identity domain.Identity, id uuid.UUID, req domain.UpdateAlertRequest) (*domain.Alert, error)
	Delete(ctx context.Context, identity domain.Identity, id uuid.UUID) error
	List(ctx context.Context, req domain.ListAlertsRequest) (*domain.ListAlertsResponse, error)
}

type StatsGetter interface {
	GetStats(ctx context.Context, identity domain.Identity) (*domain.AlertStats, error)
}

type Handler struct {
	logger *slog.Logger
	Admin  AdminAlerts
	Stats  StatsGetter
}

func NewHandler(logger *slog.Logger, admin AdminAlerts, stats StatsGetter) *Handler {
	return &Handler{
		logger: logger,
		Admin:  admin,
		Stats:  stats,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) AdminAlertCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminAlertCreate", slog.String("remote", r.RemoteAddr))

	var req domain.CreateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	identity := middleware.IdentityFromContext(r.Context())

	l.Info("creating alert",
		slog.String("type", string(req.Type)),
		slog.String("severity", string(req.Severity)),
		slog.Float64("lat", req.Location.Lat),
		slog.Float64("lng", req.Location.Lng),
	)

	alert, err := h.Admin.Create(r.Context(), identity, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert created", slog.String("id", alert.ID.String()))
	h.writeJSON(w, http.StatusCreated, alert)
}

func (h *Handler) AdminAlertList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminAlertList", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	q := r.URL.Query()
	req := domain.ListAlertsRequest{
		Type:     domain.AlertType(q.Get("type")),
		Severity: domain.AlertSeverity(q.Get("severity")),
		Status:   domain.AlertStatus(q.Get("status")),
		Page:     parseInt(q.Get("page"), 1),
		Limit:    parseInt(q.Get("limit"), 20),
		Sort:     q.Get("sort"),
	}

	resp, err := h.Admin.List(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alerts listed", slog.Int("count", len(resp.Alerts)), slog.Int64("total", resp.Total))
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AdminAlertUpdate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminAlertUpdate", slog.String("remote", r.RemoteAddr))

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req domain.UpdateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	identity := middleware.IdentityFromContext(r.Context())

	alert, err := h.Admin.Update(r.Context(), identity, id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) AdminAlertDelete(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminAlertDelete", slog.String("remote", r.RemoteAddr))

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	identity := middleware.IdentityFromContext(r.Context())

	if err := h.Admin.Delete(r.Context(), identity, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminStats", slog.String("remote", r.RemoteAddr))

	identity := middleware.IdentityFromContext(r.Context())

	stats, err := h.Stats.GetStats(r.Context(), identity)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("stats success", slog.Int64("total", stats.TotalAlerts))
	h.writeJSON(w, http.StatusOK, stats)
}
