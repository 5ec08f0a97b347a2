package service_test

import (
	"context"
	"testing"

	"saferoute/internal/domain"
	"saferoute/internal/service"
)

func TestSpeedZoneService_ListReturnsCopy(t *testing.T) {
	t.Parallel()

	zones := []domain.SpeedZone{{ID: 1, Lat: 40.7, Lng: -74.0, Radius: 500, Limit: 30}}
	svc := service.NewSpeedZoneService(zones)
	zones[0].Limit = 99

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Limit != 30 {
		t.Fatalf("unexpected zones %+v", got)
	}

	got[0].Limit = 10
	again, _ := svc.List(context.Background())
	if again[0].Limit != 30 {
		t.Fatalf("caller mutated stored zones: %+v", again)
	}
}
