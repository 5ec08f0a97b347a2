//go:build integration

package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"saferoute/internal/domain"
	"saferoute/pkg/e"
)

var (
	testRedis *Redis
	tc        testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "6379/tcp")

	testRedis = &Redis{Client: goredis.NewClient(&goredis.Options{
		Addr: fmt.Sprintf("%s:%s", host, mappedPort.Port()),
	})}
	if err := testRedis.Ping(ctx); err != nil {
		fmt.Println("redis ping:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	_ = testRedis.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func flush(t *testing.T) {
	t.Helper()
	if err := testRedis.Client.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("flushdb: %v", err)
	}
}

type countingSearcher struct {
	calls  int
	places []domain.Place
	err    error
}

func (s *countingSearcher) Search(context.Context, domain.SearchRequest) ([]domain.Place, error) {
	s.calls++
	return s.places, s.err
}

func TestSearchCache_HitAfterMiss(t *testing.T) {
	flush(t)
	inner := &countingSearcher{places: []domain.Place{{PlaceID: 1, DisplayName: "Market St", Lat: "37.79", Lon: "-122.39"}}}
	c := NewSearchCache(inner, testRedis, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	first, err := c.Search(ctx, domain.SearchRequest{Query: "Market St"})
	if err != nil {
		t.Fatalf("first search: %v", err)
	}
	second, err := c.Search(ctx, domain.SearchRequest{Query: "  market st "})
	if err != nil {
		t.Fatalf("second search: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", inner.calls)
	}
	if len(second) != 1 || second[0].DisplayName != first[0].DisplayName {
		t.Fatalf("cached result mismatch: %+v vs %+v", second, first)
	}
}

func TestSearchCache_BiasIsPartOfKey(t *testing.T) {
	flush(t)
	inner := &countingSearcher{places: []domain.Place{{PlaceID: 1}}}
	c := NewSearchCache(inner, testRedis, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	_, _ = c.Search(ctx, domain.SearchRequest{Query: "cafe"})
	_, _ = c.Search(ctx, domain.SearchRequest{Query: "cafe", Bias: &domain.Coordinates{Lat: 1, Lng: 2}})

	if inner.calls != 2 {
		t.Fatalf("expected two upstream calls, got %d", inner.calls)
	}
}

func TestSearchCache_ErrorsAndEmptyNotCached(t *testing.T) {
	flush(t)
	inner := &countingSearcher{err: e.ErrUpstream}
	c := NewSearchCache(inner, testRedis, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	if _, err := c.Search(ctx, domain.SearchRequest{Query: "x"}); !errors.Is(err, e.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	inner.err = nil
	inner.places = []domain.Place{}
	_, _ = c.Search(ctx, domain.SearchRequest{Query: "x"})
	_, _ = c.Search(ctx, domain.SearchRequest{Query: "x"})

	if inner.calls != 3 {
		t.Fatalf("expected three upstream calls, got %d", inner.calls)
	}
}

func TestWebhookQueue_FIFO(t *testing.T) {
	flush(t)
	q := NewWebhookQueue(testRedis.Client, "webhooks:test")
	ctx := context.Background()

	first := domain.WebhookPayload{DeliveryID: uuid.New(), Event: domain.HazardDeleted(1), SentAt: time.Now().UTC()}
	second := domain.WebhookPayload{DeliveryID: uuid.New(), Event: domain.HazardDeleted(2), SentAt: time.Now().UTC()}
	if err := q.Enqueue(ctx, first); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := q.Enqueue(ctx, second); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	n, err := q.Len(ctx)
	if err != nil || n != 2 {
		t.Fatalf("expected len 2, got %d (%v)", n, err)
	}

	got, err := q.BRPop(ctx, time.Second)
	if err != nil {
		t.Fatalf("brpop: %v", err)
	}
	if got.DeliveryID != first.DeliveryID || got.Event.ID != 1 {
		t.Fatalf("expected first payload, got %+v", got)
	}
}

func TestWebhookQueue_EmptyTimesOut(t *testing.T) {
	flush(t)
	q := NewWebhookQueue(testRedis.Client, "webhooks:test")

	_, err := q.BRPop(context.Background(), time.Second)
	if !errors.Is(err, e.ErrWebHookEmpty) {
		t.Fatalf("expected ErrWebHookEmpty, got %v", err)
	}
}
