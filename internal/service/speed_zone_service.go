package service

import (
	"context"

	"saferoute/internal/domain"
)

// SpeedZoneService serves the reference speed zones loaded at startup.
// They never change while the process runs.
type SpeedZoneService struct {
	zones []domain.SpeedZone
}

func NewSpeedZoneService(zones []domain.SpeedZone) *SpeedZoneService {
	cp := make([]domain.SpeedZone, len(zones))
	copy(cp, zones)
	return &SpeedZoneService{zones: cp}
}

func (s *SpeedZoneService) List(ctx context.Context) ([]domain.SpeedZone, error) {
	out := make([]domain.SpeedZone, len(s.zones))
	copy(out, s.zones)
	return out, nil
}
