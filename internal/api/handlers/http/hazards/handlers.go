package hazards

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"saferoute/internal/domain"
	"saferoute/internal/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Hazards interface {
	List(ctx context.Context) ([]domain.Hazard, error)
	Create(ctx context.Context, req domain.CreateHazardRequest) (domain.Hazard, error)
	Delete(ctx context.Context, id int64) error
	Verify(ctx context.Context, id int64) (domain.Hazard, error)
}

type SpeedZones interface {
	List(ctx context.Context) ([]domain.SpeedZone, error)
}

type Handler struct {
	logger     *slog.Logger
	Hazards    Hazards
	SpeedZones SpeedZones
}

func NewHandler(logger *slog.Logger, hazards Hazards, speedZones SpeedZones) *Handler {
	return &Handler{
		logger:     logger,
		Hazards:    hazards,
		SpeedZones: speedZones,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) HazardList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("HazardList", slog.String("remote", r.RemoteAddr))

	items, err := h.Hazards.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) HazardCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("HazardCreate", slog.String("remote", r.RemoteAddr))

	req, err := middleware.BindJSON[domain.CreateHazardRequest](w, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	created, err := h.Hazards.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("hazard reported", slog.Int64("id", created.ID), slog.String("type", created.Category))
	h.writeJSON(w, http.StatusOK, created)
}

func (h *Handler) HazardDelete(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("HazardDelete", slog.String("remote", r.RemoteAddr))

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Hazards.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, domain.DeleteHazardResponse{Status: "deleted", ID: id})
}

func (h *Handler) HazardVerify(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("HazardVerify", slog.String("remote", r.RemoteAddr))

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	verified, err := h.Hazards.Verify(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, verified)
}

func (h *Handler) SpeedZoneList(w http.ResponseWriter, r *http.Request) {
	zones, err := h.SpeedZones.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, zones)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
