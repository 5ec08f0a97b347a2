// Package broadcast fans hazard events out to every connected observer.
//
// Publish encodes an event once, takes a snapshot of the registry and then
// hands the message to each subscriber's bounded buffer without blocking.
// A subscriber whose buffer is full, or that has already left, is evicted;
// its writer notices the closed Done channel and drops the connection.
// Nothing about a failed delivery is reported to the publisher.
//
// There is no replay. Observers must read the current hazard list after
// joining, and should treat new_hazard as an upsert because an event
// published between the join and the list can arrive twice.
package broadcast

import (
	"encoding/json"
	"errors"
	"log/slog"

	"saferoute/internal/domain"
	"saferoute/internal/observability"
)

type Hub struct {
	registry *Registry
	logger   *slog.Logger
	metrics  *observability.Metrics
}

func NewHub(registry *Registry, logger *slog.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Hub) Join() *Subscriber {
	sub := h.registry.Join()
	h.metrics.SubscribersConnected.Set(float64(h.registry.Len()))
	h.logger.Debug("subscriber joined", slog.String("subscriber_id", sub.ID().String()))
	return sub
}

// Leave is safe to call any number of times from any goroutine.
func (h *Hub) Leave(sub *Subscriber) {
	if !h.registry.Leave(sub) {
		return
	}
	h.metrics.SubscribersConnected.Set(float64(h.registry.Len()))
	h.logger.Debug("subscriber left", slog.String("subscriber_id", sub.ID().String()))
}

func (h *Hub) Subscribers() int {
	return h.registry.Len()
}

// Publish delivers ev to everyone registered at call time and returns the
// number of successful deliveries.
func (h *Hub) Publish(ev domain.Event) int {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("encode event failed",
			slog.String("type", string(ev.Type)),
			slog.Any("error", err),
		)
		return 0
	}
	msg := Message{Event: ev, Payload: payload}

	subs := h.registry.Snapshot()
	var failed []*Subscriber
	for _, sub := range subs {
		if err := sub.deliver(msg); err != nil {
			failed = append(failed, sub)
			h.metrics.DeliveryFailures.WithLabelValues(failureReason(err)).Inc()
			h.logger.Warn("event delivery failed",
				slog.String("subscriber_id", sub.ID().String()),
				slog.String("type", string(ev.Type)),
				slog.Int64("hazard_id", ev.HazardID()),
				slog.Any("error", err),
			)
		}
	}
	h.metrics.EventsPublished.WithLabelValues(string(ev.Type)).Inc()

	for _, sub := range failed {
		h.Leave(sub)
	}
	return len(subs) - len(failed)
}

// Close evicts every subscriber, e.g. on shutdown.
func (h *Hub) Close() {
	n := h.registry.Close()
	h.metrics.SubscribersConnected.Set(0)
	h.logger.Info("broadcast hub closed", slog.Int("subscribers", n))
}

func failureReason(err error) string {
	if errors.Is(err, errBufferFull) {
		return "buffer_full"
	}
	return "gone"
}
