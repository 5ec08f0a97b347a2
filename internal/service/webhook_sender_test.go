package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"saferoute/internal/config"
	"saferoute/internal/domain"
	"saferoute/pkg/e"
)

type sliceQueue struct {
	items chan domain.WebhookPayload
}

func (q *sliceQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.WebhookPayload, error) {
	select {
	case p := <-q.items:
		return p, nil
	case <-ctx.Done():
		return domain.WebhookPayload{}, ctx.Err()
	case <-time.After(10 * time.Millisecond):
		return domain.WebhookPayload{}, e.ErrWebHookEmpty
	}
}

func newSender(url string, q WebhookSource) *WebhookSender {
	s := NewWebhookSender(slog.New(slog.NewTextHandler(io.Discard, nil)), config.WebhookConfig{URL: url}, q)
	s.backoff = time.Millisecond
	return s
}

func TestWebhookSender_RetriesUntilAccepted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ids := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		ids <- r.Header.Get("X-Delivery-ID")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p := domain.WebhookPayload{DeliveryID: uuid.New(), Event: domain.HazardDeleted(4), SentAt: time.Now().UTC()}
	if ok := newSender(srv.URL, nil).sendWithRetry(context.Background(), p); !ok {
		t.Fatalf("expected delivery to succeed")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
	if got := <-ids; got != p.DeliveryID.String() {
		t.Fatalf("delivery id header %q", got)
	}
}

func TestWebhookSender_GivesUp(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := domain.WebhookPayload{DeliveryID: uuid.New(), Event: domain.HazardDeleted(4)}
	if ok := newSender(srv.URL, nil).sendWithRetry(context.Background(), p); ok {
		t.Fatalf("expected delivery to fail")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestWebhookSender_RunDeliversQueuedEvents(t *testing.T) {
	t.Parallel()

	received := make(chan domain.WebhookPayload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p domain.WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received <- p
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	q := &sliceQueue{items: make(chan domain.WebhookPayload, 1)}
	h := domain.Hazard{ID: 9, Category: "flood", Label: "water"}
	q.items <- domain.WebhookPayload{DeliveryID: uuid.New(), Event: domain.HazardUpserted(h)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newSender(srv.URL, q).Run(ctx)
		close(done)
	}()

	select {
	case p := <-received:
		if p.Event.Type != domain.EventHazardUpserted || p.Event.HazardID() != 9 {
			t.Fatalf("unexpected payload %+v", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("webhook not delivered")
	}

	cancel()
	<-done
}
