package service

import (
	"context"
	"fmt"
	"log/slog"

	"saferoute/internal/domain"
	"saferoute/internal/observability"
	"saferoute/pkg/e"
	"saferoute/pkg/validator"
)

// HazardService is the only way hazards change. Every successful mutation
// is published from inside the store's critical section, so observers see
// events in commit order.
type HazardService struct {
	store     HazardStore
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

func NewHazardService(store HazardStore, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *HazardService {
	metrics.HazardsActive.Set(float64(len(store.List())))
	return &HazardService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

func (s *HazardService) List(ctx context.Context) ([]domain.Hazard, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, "service.HazardService.List", err)
	}
	return s.store.List(), nil
}

func (s *HazardService) Create(ctx context.Context, req domain.CreateHazardRequest) (domain.Hazard, error) {
	const op = "service.HazardService.Create"

	if err := validator.ValidateStruct(req); err != nil {
		s.metrics.HazardMutations.WithLabelValues("create", "invalid").Inc()
		return domain.Hazard{}, e.Wrap(validator.Describe(err), e.ErrInvalidInput)
	}

	h := s.store.Create(req, s.commit())
	s.metrics.HazardMutations.WithLabelValues("create", "ok").Inc()
	s.metrics.HazardsActive.Inc()

	s.logger.Info("hazard created",
		slog.String("op", op),
		slog.Int64("id", h.ID),
		slog.String("type", h.Category),
		slog.Float64("lat", h.Lat),
		slog.Float64("lng", h.Lng),
	)
	return h, nil
}

func (s *HazardService) Delete(ctx context.Context, id int64) error {
	const op = "service.HazardService.Delete"

	if !s.store.Delete(id, s.commit()) {
		s.metrics.HazardMutations.WithLabelValues("delete", "not_found").Inc()
		return fmt.Errorf("%s: hazard %d: %w", op, id, e.ErrNotFound)
	}
	s.metrics.HazardMutations.WithLabelValues("delete", "ok").Inc()
	s.metrics.HazardsActive.Dec()

	s.logger.Info("hazard deleted", slog.Int64("id", id))
	return nil
}

func (s *HazardService) Verify(ctx context.Context, id int64) (domain.Hazard, error) {
	h, err := s.store.Verify(id, s.commit())
	if err != nil {
		s.metrics.HazardMutations.WithLabelValues("verify", "not_found").Inc()
		return domain.Hazard{}, err
	}
	s.metrics.HazardMutations.WithLabelValues("verify", "ok").Inc()

	s.logger.Info("hazard verified", slog.Int64("id", h.ID))
	return h, nil
}

// commit runs under the store lock; Publish does not block.
func (s *HazardService) commit() domain.CommitFunc {
	return func(ev domain.Event) {
		delivered := s.publisher.Publish(ev)
		s.logger.Debug("hazard event published",
			slog.String("type", string(ev.Type)),
			slog.Int64("hazard_id", ev.HazardID()),
			slog.Int("delivered", delivered),
		)
	}
}
