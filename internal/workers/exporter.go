package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"saferoute/internal/broadcast"
	"saferoute/internal/domain"
	"saferoute/internal/observability"
)

type Hub interface {
	Join() *broadcast.Subscriber
	Leave(sub *broadcast.Subscriber)
}

// Sink receives every hazard event together with its wire encoding.
type Sink struct {
	Name   string
	Export func(ctx context.Context, ev domain.Event, payload []byte) error
}

// Exporter forwards the live event stream to external sinks. Each sink is
// an ordinary subscriber of the hub with its own goroutine, so a slow sink
// only ever gets itself evicted. After an eviction the sink rejoins; events
// published while it was out are not exported.
type Exporter struct {
	hub     Hub
	sinks   []Sink
	timeout time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewExporter(hub Hub, sinks []Sink, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Exporter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Exporter{
		hub:     hub,
		sinks:   sinks,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}
}

// Run blocks until ctx is cancelled.
func (x *Exporter) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for _, sink := range x.sinks {
		wg.Add(1)
		go func(sink Sink) {
			defer wg.Done()
			x.runSink(ctx, sink)
		}(sink)
	}
	wg.Wait()
}

func (x *Exporter) runSink(ctx context.Context, sink Sink) {
	l := x.logger.With(slog.String("sink", sink.Name))
	l.Info("exporter STARTED")

	for {
		sub := x.hub.Join()
		evicted := x.drain(ctx, sink, sub)
		if !evicted {
			x.hub.Leave(sub)
			l.Info("exporter STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		}
		l.Warn("exporter evicted for falling behind, rejoining")
	}
}

// drain returns true when the subscriber was evicted and false when ctx ended.
func (x *Exporter) drain(ctx context.Context, sink Sink, sub *broadcast.Subscriber) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case msg := <-sub.Messages():
			x.export(ctx, sink, msg)
		case <-sub.Done():
			for {
				select {
				case msg := <-sub.Messages():
					x.export(ctx, sink, msg)
				default:
					return true
				}
			}
		}
	}
}

func (x *Exporter) export(ctx context.Context, sink Sink, msg broadcast.Message) {
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	if err := sink.Export(ctx, msg.Event, msg.Payload); err != nil {
		x.metrics.EventsExported.WithLabelValues(sink.Name, "error").Inc()
		x.logger.Error("export failed",
			slog.String("sink", sink.Name),
			slog.String("type", string(msg.Event.Type)),
			slog.Int64("hazard_id", msg.Event.HazardID()),
			slog.Any("error", err),
		)
		return
	}
	x.metrics.EventsExported.WithLabelValues(sink.Name, "success").Inc()
}
