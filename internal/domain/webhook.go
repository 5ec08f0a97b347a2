package domain

import (
	"time"

	"github.com/google/uuid"
)

// WebhookPayload is what the notification webhook receives for each hazard event.
type WebhookPayload struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
	Event      Event     `json:"event"`
	SentAt     time.Time `json:"sent_at"`
}
