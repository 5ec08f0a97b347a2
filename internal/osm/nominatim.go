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
)

const (
	searchLimit = 5
	// biasDegrees is half the side of the viewbox around the caller, roughly 50 km.
	biasDegrees = 0.5
)

// Nominatim searches places by free text.
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewNominatim(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Nominatim {
	return &Nominatim{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Search returns up to five matches. With a bias the results are bounded
// to a box around the given point.
func (c *Nominatim) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Place, error) {
	params := url.Values{
		"q":              {req.Query},
		"format":         {"json"},
		"addressdetails": {"1"},
		"limit":          {strconv.Itoa(searchLimit)},
	}
	if b := req.Bias; b != nil {
		// left,top,right,bottom
		params.Set("viewbox", strings.Join([]string{
			formatCoord(b.Lng - biasDegrees),
			formatCoord(b.Lat + biasDegrees),
			formatCoord(b.Lng + biasDegrees),
			formatCoord(b.Lat - biasDegrees),
		}, ","))
		params.Set("bounded", "1")
	}

	var places []domain.Place
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/search?"+params.Encode(), c.userAgent, &places); err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}
	c.logger.Debug("nominatim search done",
		slog.String("query", req.Query),
		slog.Int("results", len(places)),
	)
	if places == nil {
		places = []domain.Place{}
	}
	return places, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
