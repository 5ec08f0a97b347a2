package workers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"saferoute/internal/domain"
)

type WebhookQueue interface {
	Enqueue(ctx context.Context, payload domain.WebhookPayload) error
}

// WebhookSink queues every event for the webhook sender.
func WebhookSink(q WebhookQueue) Sink {
	return Sink{
		Name: "webhook",
		Export: func(ctx context.Context, ev domain.Event, _ []byte) error {
			return q.Enqueue(ctx, domain.WebhookPayload{
				DeliveryID: uuid.New(),
				Event:      ev,
				SentAt:     time.Now().UTC(),
			})
		},
	}
}
