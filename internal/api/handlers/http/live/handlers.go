// Package live serves the websocket feed of hazard events.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"saferoute/internal/broadcast"
	"saferoute/internal/config"
	"saferoute/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Feed interface {
	Join() *broadcast.Subscriber
	Leave(sub *broadcast.Subscriber)
}

type HazardLister interface {
	List(ctx context.Context) ([]domain.Hazard, error)
}

type Handler struct {
	logger   *slog.Logger
	Feed     Feed
	Hazards  HazardLister
	cfg      config.BroadcastConfig
	upgrader websocket.Upgrader
}

func NewHandler(logger *slog.Logger, feed Feed, hazards HazardLister, cfg config.BroadcastConfig, allowedOrigins []string) *Handler {
	return &Handler{
		logger:  logger,
		Feed:    feed,
		Hazards: hazards,
		cfg:     cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

// Subscribe upgrades the request and streams events until either side goes
// away. The observer joins before the current hazards are replayed, so an
// upsert racing the replay may arrive twice but nothing is missed.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Warn("websocket upgrade failed", slog.String("remote", r.RemoteAddr), slog.Any("error", err))
		return
	}
	defer conn.Close()

	sub := h.Feed.Join()
	defer h.Feed.Leave(sub)

	l = l.With(slog.String("subscriber_id", sub.ID().String()))
	l.Info("observer connected", slog.String("remote", r.RemoteAddr))

	if err := h.replay(r.Context(), conn); err != nil {
		l.Warn("replay failed", slog.Any("error", err))
		return
	}

	readDone := make(chan struct{})
	go h.readLoop(conn, sub, readDone)

	reason := h.writeLoop(conn, sub, readDone)
	l.Info("observer disconnected",
		slog.String("reason", reason),
		slog.Duration("connected_for", time.Since(sub.JoinedAt())),
	)
}

func (h *Handler) replay(ctx context.Context, conn *websocket.Conn) error {
	hazards, err := h.Hazards.List(ctx)
	if err != nil {
		return err
	}
	for _, hz := range hazards {
		payload, err := json.Marshal(domain.HazardUpserted(hz))
		if err != nil {
			return err
		}
		if err := h.write(conn, websocket.TextMessage, payload); err != nil {
			return err
		}
	}
	return nil
}

// readLoop discards client messages; it exists to notice disconnects and
// answer pings.
func (h *Handler) readLoop(conn *websocket.Conn, sub *broadcast.Subscriber, done chan<- struct{}) {
	defer close(done)
	defer h.Feed.Leave(sub)

	if h.cfg.ReadLimit > 0 {
		conn.SetReadLimit(h.cfg.ReadLimit)
	}
	if h.cfg.PingInterval > 0 {
		pongWait := 2 * h.cfg.PingInterval
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
	} else {
		// The server's ReadTimeout survives the hijack.
		_ = conn.SetReadDeadline(time.Time{})
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writeLoop(conn *websocket.Conn, sub *broadcast.Subscriber, readDone <-chan struct{}) string {
	var ping <-chan time.Time
	if h.cfg.PingInterval > 0 {
		ticker := time.NewTicker(h.cfg.PingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case msg := <-sub.Messages():
			if err := h.write(conn, websocket.TextMessage, msg.Payload); err != nil {
				return "write failed"
			}
		case <-ping:
			if err := h.write(conn, websocket.PingMessage, nil); err != nil {
				return "ping failed"
			}
		case <-readDone:
			return "client gone"
		case <-sub.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "evicted"),
				time.Now().Add(time.Second))
			return "evicted"
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, messageType int, data []byte) error {
	deadline := time.Time{}
	if h.cfg.WriteTimeout > 0 {
		deadline = time.Now().Add(h.cfg.WriteTimeout)
	}
	_ = conn.SetWriteDeadline(deadline)
	return conn.WriteMessage(messageType, data)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
