package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"saferoute/internal/config"
	"saferoute/internal/domain"
	"saferoute/pkg/e"
)

type WebhookSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.WebhookPayload, error)
}

// WebhookSender drains the webhook queue and POSTs each hazard event to the
// configured URL, retrying a few times with a growing pause.
type WebhookSender struct {
	logger  *slog.Logger
	cfg     config.WebhookConfig
	queue   WebhookSource
	http    *http.Client
	retries int
	backoff time.Duration
}

func NewWebhookSender(logger *slog.Logger, cfg config.WebhookConfig, q WebhookSource) *WebhookSender {
	return &WebhookSender{
		logger:  logger,
		cfg:     cfg,
		queue:   q,
		http:    &http.Client{Timeout: 5 * time.Second},
		retries: 3,
		backoff: time.Second,
	}
}

func (s *WebhookSender) Run(ctx context.Context) {
	s.logger.Info("webhookSender STARTED", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("webhookSender STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		payload, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrWebHookEmpty) || ctx.Err() != nil {
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			s.sleep(ctx, 500*time.Millisecond)
			continue
		}

		s.logger.Debug("sending webhook",
			slog.String("delivery_id", payload.DeliveryID.String()),
			slog.String("type", string(payload.Event.Type)),
		)
		s.sendWithRetry(ctx, payload)
	}
}

// sendWithRetry reports whether the webhook accepted the payload.
func (s *WebhookSender) sendWithRetry(ctx context.Context, p domain.WebhookPayload) bool {
	body, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("marshal webhook payload failed", slog.String("error", err.Error()))
		return false
	}

	for attempt := 1; attempt <= s.retries; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return false
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create webhook request failed", slog.String("error", err.Error()))
			return false
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Delivery-ID", p.DeliveryID.String())

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return true
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		s.logger.Warn("webhook failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)

		if attempt < s.retries {
			s.sleep(ctx, time.Duration(attempt)*s.backoff)
		}
	}

	s.logger.Error("webhook dropped after retries", slog.String("delivery_id", p.DeliveryID.String()))
	return false
}

func (s *WebhookSender) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
