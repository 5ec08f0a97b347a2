//go:build integration

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"saferoute/internal/domain"
	"saferoute/pkg/e"
)

var (
	testPool *pgxpool.Pool
	tc       testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "postgres"

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(90 * time.Second),
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
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, mappedPort.Port(), db)

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := EnsureSchema(ctx, testPool); err != nil {
		fmt.Println("EnsureSchema:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func truncateEvents(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE hazard_events RESTART IDENTITY`)
	if err != nil {
		t.Fatalf("truncate hazard_events: %v", err)
	}
}

func newJournal() *Journal {
	return NewJournal(testPool, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustPayload(t *testing.T, ev domain.Event) []byte {
	t.Helper()
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestJournal_AppendAndHistory(t *testing.T) {
	truncateEvents(t)
	j := newJournal()
	ctx := context.Background()

	h := domain.Hazard{ID: 7, Category: "accident", Label: "Accident", CreatedAt: time.Now().UTC()}
	created := domain.HazardUpserted(h)
	h.Verified = true
	verified := domain.HazardUpserted(h)
	deleted := domain.HazardDeleted(7)

	for _, ev := range []domain.Event{created, verified, deleted, domain.HazardDeleted(8)} {
		if err := j.Append(ctx, ev, mustPayload(t, ev)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries, err := j.History(ctx, 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantTypes := []domain.EventType{domain.EventHazardUpserted, domain.EventHazardUpserted, domain.EventHazardDeleted}
	for i, entry := range entries {
		if entry.Type != wantTypes[i] {
			t.Fatalf("entry %d: type %s, want %s", i, entry.Type, wantTypes[i])
		}
		if entry.HazardID != 7 {
			t.Fatalf("entry %d: hazard_id %d", i, entry.HazardID)
		}
		if i > 0 && entry.Seq <= entries[i-1].Seq {
			t.Fatalf("entries out of order: %d after %d", entry.Seq, entries[i-1].Seq)
		}
	}

	var decoded domain.Event
	if err := json.Unmarshal(entries[1].Payload, &decoded); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if decoded.Data == nil || !decoded.Data.Verified {
		t.Fatalf("expected verified payload, got %+v", decoded)
	}
}

func TestJournal_Append_RejectsEmpty(t *testing.T) {
	j := newJournal()

	err := j.Append(context.Background(), domain.Event{}, nil)
	if !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestJournal_History_Empty(t *testing.T) {
	truncateEvents(t)
	j := newJournal()

	entries, err := j.History(context.Background(), 12345)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
