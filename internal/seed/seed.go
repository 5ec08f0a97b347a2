// Package seed provides the startup data: speed zones, which never change
// at runtime, and the hazards the registry starts with.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"saferoute/internal/domain"
	"saferoute/pkg/e"
)

type Seed struct {
	SpeedZones []domain.SpeedZone `yaml:"speed_zones"`
	Hazards    []domain.Hazard    `yaml:"hazards"`
}

// Default mirrors the sample data the map client was built against.
func Default() Seed {
	return Seed{
		SpeedZones: []domain.SpeedZone{
			{ID: 1, Lat: 37.7749, Lng: -122.4194, Radius: 500, Limit: 30},
			{ID: 2, Lat: 37.7849, Lng: -122.4094, Radius: 1000, Limit: 50},
		},
		Hazards: []domain.Hazard{
			{
				ID:          1,
				Lat:         37.7749,
				Lng:         -122.4194,
				Category:    "pothole",
				Label:       "Pothole",
				Description: "Big pothole on right lane",
				CreatedAt:   time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC),
			},
		},
	}
}

// Load reads a YAML seed file. An empty path yields Default.
func Load(path string) (Seed, error) {
	const op = "seed.Load"

	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, e.Wrap(op, err)
	}
	s, err := Parse(raw)
	if err != nil {
		return Seed{}, e.Wrap(op+" "+path, err)
	}
	return s, nil
}

func Parse(raw []byte) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Seed{}, fmt.Errorf("decode yaml: %v: %w", err, e.ErrInvalidInput)
	}
	if err := s.Validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

func (s Seed) Validate() error {
	zoneIDs := make(map[int64]struct{}, len(s.SpeedZones))
	for _, z := range s.SpeedZones {
		if _, dup := zoneIDs[z.ID]; dup {
			return fmt.Errorf("speed zone %d: duplicate id: %w", z.ID, e.ErrInvalidInput)
		}
		zoneIDs[z.ID] = struct{}{}
		if !validCoordinates(z.Lat, z.Lng) {
			return fmt.Errorf("speed zone %d: coordinates out of range: %w", z.ID, e.ErrInvalidInput)
		}
		if z.Radius <= 0 || z.Limit <= 0 {
			return fmt.Errorf("speed zone %d: radius and limit must be positive: %w", z.ID, e.ErrInvalidInput)
		}
	}

	hazardIDs := make(map[int64]struct{}, len(s.Hazards))
	for _, h := range s.Hazards {
		if h.ID <= 0 {
			return fmt.Errorf("hazard %q: id must be positive: %w", h.Label, e.ErrInvalidInput)
		}
		if _, dup := hazardIDs[h.ID]; dup {
			return fmt.Errorf("hazard %d: duplicate id: %w", h.ID, e.ErrInvalidInput)
		}
		hazardIDs[h.ID] = struct{}{}
		if !validCoordinates(h.Lat, h.Lng) {
			return fmt.Errorf("hazard %d: coordinates out of range: %w", h.ID, e.ErrInvalidInput)
		}
	}
	return nil
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
