package navigation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"saferoute/internal/domain"
	"saferoute/pkg/e"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Navigator interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.Place, error)
	Route(ctx context.Context, req domain.RouteRequest) (domain.RouteResponse, error)
}

type Handler struct {
	logger    *slog.Logger
	Navigator Navigator
}

func NewHandler(logger *slog.Logger, navigator Navigator) *Handler {
	return &Handler{
		logger:    logger,
		Navigator: navigator,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

// Search handles GET /search?q=...&lat=...&lon=...
// Results are biased towards lat/lon only when both are given.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("Search", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	q := r.URL.Query()
	req := domain.SearchRequest{Query: q.Get("q")}

	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr != "" && lonStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat != nil || errLon != nil {
			h.handleError(w, r, e.Wrap("lat/lon must be numbers", e.ErrInvalidInput))
			return
		}
		req.Bias = &domain.Coordinates{Lat: lat, Lng: lon}
	}

	places, err := h.Navigator.Search(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, places)
}

// Route handles GET /route?start=lat,lng&end=lat,lng&profile=car|bike|foot.
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("Route", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	q := r.URL.Query()

	start, err := parseLatLng("start", q.Get("start"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	end, err := parseLatLng("end", q.Get("end"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	profile := domain.TravelProfile(q.Get("profile"))
	if profile == "" {
		profile = domain.ProfileCar
	}

	resp, err := h.Navigator.Route(r.Context(), domain.RouteRequest{
		Start:        start,
		End:          end,
		Profile:      profile,
		Alternatives: q.Get("alternatives") == "true",
		Steps:        q.Get("steps") == "true",
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func parseLatLng(name, raw string) (domain.Coordinates, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return domain.Coordinates{}, e.Wrap(fmt.Sprintf("%s must be lat,lng", name), e.ErrInvalidInput)
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLng != nil {
		return domain.Coordinates{}, e.Wrap(fmt.Sprintf("%s must be lat,lng", name), e.ErrInvalidInput)
	}
	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}
