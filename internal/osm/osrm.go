package osm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"saferoute/internal/domain"
	"saferoute/pkg/e"
)

// OSRM computes routes between two points.
type OSRM struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewOSRM(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *OSRM {
	return &OSRM{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *OSRM) Route(ctx context.Context, req domain.RouteRequest) (domain.RouteResponse, error) {
	// OSRM wants lng,lat pairs.
	coords := fmt.Sprintf("%s,%s;%s,%s",
		formatCoord(req.Start.Lng), formatCoord(req.Start.Lat),
		formatCoord(req.End.Lng), formatCoord(req.End.Lat),
	)
	params := url.Values{
		"overview":     {"full"},
		"geometries":   {"geojson"},
		"alternatives": {strconv.FormatBool(req.Alternatives)},
		"steps":        {strconv.FormatBool(req.Steps)},
	}
	u := fmt.Sprintf("%s/route/v1/%s/%s?%s", c.baseURL, req.Profile.RoutingMode(), coords, params.Encode())

	var resp domain.RouteResponse
	if err := getJSON(ctx, c.httpClient, u, c.userAgent, &resp); err != nil {
		return domain.RouteResponse{}, fmt.Errorf("osrm route: %w", err)
	}
	if resp.Code != "Ok" {
		return domain.RouteResponse{}, fmt.Errorf("osrm route: code %q: %s: %w", resp.Code, resp.Message, e.ErrUpstream)
	}
	c.logger.Debug("osrm route done",
		slog.String("mode", req.Profile.RoutingMode()),
		slog.Int("routes", len(resp.Routes)),
	)
	return resp, nil
}
