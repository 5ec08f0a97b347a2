package service

import (
	"context"

	"saferoute/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type HazardStore interface {
	List() []domain.Hazard
	Create(req domain.CreateHazardRequest, commit domain.CommitFunc) domain.Hazard
	Delete(id int64, commit domain.CommitFunc) bool
	Verify(id int64, commit domain.CommitFunc) (domain.Hazard, error)
}

// Publisher fans an event out to live observers. It never blocks on a slow
// observer and never fails the caller.
type Publisher interface {
	Publish(ev domain.Event) int
}

// External collaborators.
type PlaceSearcher interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.Place, error)
}

type RoutePlanner interface {
	Route(ctx context.Context, req domain.RouteRequest) (domain.RouteResponse, error)
}

type Service struct {
	Hazards    *HazardService
	SpeedZones *SpeedZoneService
	Navigation *NavigationService
	Auth       *AuthService
}

func NewService(
	hazards *HazardService,
	speedZones *SpeedZoneService,
	navigation *NavigationService,
	auth *AuthService,
) *Service {
	return &Service{
		Hazards:    hazards,
		SpeedZones: speedZones,
		Navigation: navigation,
		Auth:       auth,
	}
}
