package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"saferoute/internal/broadcast"
	"saferoute/internal/domain"
	"saferoute/internal/hazard"
	"saferoute/internal/observability"
	"saferoute/internal/service"
	mock_service "saferoute/internal/service/mocks"
	"saferoute/pkg/e"
)

// --- helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func f64ptr(v float64) *float64 { return &v }

func validRequest() domain.CreateHazardRequest {
	return domain.CreateHazardRequest{
		Lat:         f64ptr(40.7),
		Lng:         f64ptr(-74.0),
		Category:    "pothole",
		Label:       "road",
		Description: "deep",
	}
}

func newHazardService(t *testing.T, ctrl *gomock.Controller) (*service.HazardService, *mock_service.MockHazardStore, *mock_service.MockPublisher, *observability.Metrics) {
	t.Helper()
	store := mock_service.NewMockHazardStore(ctrl)
	pub := mock_service.NewMockPublisher(ctrl)
	m := observability.NewMetricsForTesting()

	store.EXPECT().List().Return([]domain.Hazard{{ID: 1}}).Times(1)
	svc := service.NewHazardService(store, pub, newTestLogger(), m)
	return svc, store, pub, m
}

// --- Create ---

func TestHazardService_Create_PublishesUpsert(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, store, pub, m := newHazardService(t, ctrl)

	want := domain.Hazard{ID: 2, Lat: 40.7, Lng: -74.0, Category: "pothole", Label: "road", Description: "deep"}
	store.EXPECT().
		Create(validRequest(), gomock.Any()).
		DoAndReturn(func(_ domain.CreateHazardRequest, commit domain.CommitFunc) domain.Hazard {
			commit(domain.HazardUpserted(want))
			return want
		}).
		Times(1)
	pub.EXPECT().Publish(domain.HazardUpserted(want)).Return(2).Times(1)

	got, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if v := testutil.ToFloat64(m.HazardsActive); v != 2 {
		t.Fatalf("expected 2 active hazards, got %v", v)
	}
}

func TestHazardService_Create_InvalidInput(t *testing.T) {
	t.Parallel()

	cases := map[string]func(r *domain.CreateHazardRequest){
		"missing lat":      func(r *domain.CreateHazardRequest) { r.Lat = nil },
		"lng too large":    func(r *domain.CreateHazardRequest) { r.Lng = f64ptr(181) },
		"blank type":       func(r *domain.CreateHazardRequest) { r.Category = "   " },
		"empty tag":        func(r *domain.CreateHazardRequest) { r.Label = "" },
		"long description": func(r *domain.CreateHazardRequest) { r.Description = strings.Repeat("x", 2001) },
	}

	for name, mutate := range cases {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No Create/Publish expectations: the store must stay untouched.
			svc, _, _, m := newHazardService(t, ctrl)

			req := validRequest()
			mutate(&req)

			_, err := svc.Create(context.Background(), req)
			if !errors.Is(err, e.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if v := testutil.ToFloat64(m.HazardMutations.WithLabelValues("create", "invalid")); v != 1 {
				t.Fatalf("expected invalid counter 1, got %v", v)
			}
		})
	}
}

// --- Delete ---

func TestHazardService_Delete_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, store, pub, _ := newHazardService(t, ctrl)

	store.EXPECT().
		Delete(int64(1), gomock.Any()).
		DoAndReturn(func(id int64, commit domain.CommitFunc) bool {
			commit(domain.HazardDeleted(id))
			return true
		})
	pub.EXPECT().Publish(domain.HazardDeleted(1)).Return(1)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestHazardService_Delete_Missing_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, store, _, m := newHazardService(t, ctrl)

	store.EXPECT().Delete(int64(99), gomock.Any()).Return(false)

	err := svc.Delete(context.Background(), 99)
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if v := testutil.ToFloat64(m.HazardsActive); v != 1 {
		t.Fatalf("active hazards changed: %v", v)
	}
}

// --- Verify ---

func TestHazardService_Verify_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, store, _, _ := newHazardService(t, ctrl)

	store.EXPECT().Verify(int64(5), gomock.Any()).Return(domain.Hazard{}, e.Wrap("hazard 5", e.ErrNotFound))

	if _, err := svc.Verify(context.Background(), 5); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHazardService_Verify_Twice_PublishesTwice(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, store, pub, _ := newHazardService(t, ctrl)

	verified := domain.Hazard{ID: 1, Verified: true}
	store.EXPECT().
		Verify(int64(1), gomock.Any()).
		DoAndReturn(func(_ int64, commit domain.CommitFunc) (domain.Hazard, error) {
			commit(domain.HazardUpserted(verified))
			return verified, nil
		}).
		Times(2)
	pub.EXPECT().Publish(domain.HazardUpserted(verified)).Return(0).Times(2)

	for i := 0; i < 2; i++ {
		got, err := svc.Verify(context.Background(), 1)
		if err != nil {
			t.Fatalf("verify #%d: %v", i+1, err)
		}
		if !got.Verified {
			t.Fatalf("verify #%d: expected verified record", i+1)
		}
	}
}

// --- with the real store and hub ---

func TestHazardService_VerifyScenario_EndToEnd(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC))
	created := clock.Now()
	store := hazard.NewStore(clock, domain.Hazard{ID: 1, Lat: 40.7, Lng: -74.0, Category: "pothole", Label: "road", CreatedAt: created})

	m := observability.NewMetricsForTesting()
	hub := broadcast.NewHub(broadcast.NewRegistry(8), newTestLogger(), m)
	a, b := hub.Join(), hub.Join()

	svc := service.NewHazardService(store, hub, newTestLogger(), m)

	clock.Advance(time.Hour)
	for i := 0; i < 2; i++ {
		if _, err := svc.Verify(context.Background(), 1); err != nil {
			t.Fatalf("verify #%d: %v", i+1, err)
		}
	}

	for _, sub := range []*broadcast.Subscriber{a, b} {
		for i := 0; i < 2; i++ {
			select {
			case msg := <-sub.Messages():
				var ev domain.Event
				if err := json.Unmarshal(msg.Payload, &ev); err != nil {
					t.Fatalf("bad payload: %v", err)
				}
				if ev.Type != domain.EventHazardUpserted || ev.Data == nil || !ev.Data.Verified {
					t.Fatalf("unexpected event %+v", ev)
				}
				if !ev.Data.CreatedAt.Equal(created) {
					t.Fatalf("createdAt changed: %v", ev.Data.CreatedAt)
				}
			default:
				t.Fatalf("subscriber %s missing event #%d", sub.ID(), i+1)
			}
		}
	}

	list, _ := svc.List(context.Background())
	if len(list) != 1 || !list[0].Verified {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestHazardService_List_CanceledContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newHazardService(t, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.List(ctx); !errors.Is(err, e.ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
}
