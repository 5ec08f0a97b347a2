package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"saferoute/internal/domain"
	"saferoute/internal/observability"
	"saferoute/pkg/e"
)

// NavigationService fronts the place search and routing collaborators.
// Their failures never touch hazard state.
type NavigationService struct {
	searcher PlaceSearcher
	planner  RoutePlanner
	logger   *slog.Logger
	metrics  *observability.Metrics
}

func NewNavigationService(searcher PlaceSearcher, planner RoutePlanner, logger *slog.Logger, metrics *observability.Metrics) *NavigationService {
	return &NavigationService{
		searcher: searcher,
		planner:  planner,
		logger:   logger,
		metrics:  metrics,
	}
}

func (s *NavigationService) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Place, error) {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return nil, e.Wrap("q is required", e.ErrInvalidInput)
	}
	if req.Bias != nil && !validCoordinates(*req.Bias) {
		return nil, e.Wrap("lat/lon out of range", e.ErrInvalidInput)
	}

	start := time.Now()
	places, err := s.searcher.Search(ctx, req)
	s.observe("search", start, err)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search done", slog.String("q", req.Query), slog.Int("results", len(places)))
	return places, nil
}

func (s *NavigationService) Route(ctx context.Context, req domain.RouteRequest) (domain.RouteResponse, error) {
	if !validCoordinates(req.Start) || !validCoordinates(req.End) {
		return domain.RouteResponse{}, e.Wrap("start/end out of range", e.ErrInvalidInput)
	}

	start := time.Now()
	resp, err := s.planner.Route(ctx, req)
	s.observe("route", start, err)
	if err != nil {
		return domain.RouteResponse{}, err
	}

	s.logger.Debug("route done",
		slog.String("mode", req.Profile.RoutingMode()),
		slog.Int("routes", len(resp.Routes)),
	)
	return resp, nil
}

func (s *NavigationService) observe(service string, start time.Time, err error) {
	s.metrics.ExternalDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "error"
		s.logger.Warn("external call failed", slog.String("service", service), slog.Any("error", err))
	}
	s.metrics.ExternalRequests.WithLabelValues(service, outcome).Inc()
}

func validCoordinates(c domain.Coordinates) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
