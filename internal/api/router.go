package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"saferoute/internal/api/handlers/http/auth"
	"saferoute/internal/api/handlers/http/hazards"
	"saferoute/internal/api/handlers/http/live"
	"saferoute/internal/api/handlers/http/navigation"
	"saferoute/internal/api/handlers/http/system"
	"saferoute/internal/config"
	"saferoute/internal/middleware"
	"saferoute/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, feed live.Feed, checkers map[string]system.Checker) *Server {
	hazardHandler := hazards.NewHandler(logger, svc.Hazards, svc.SpeedZones)
	navigationHandler := navigation.NewHandler(logger, svc.Navigation)
	authHandler := auth.NewHandler(logger, svc.Auth)
	liveHandler := live.NewHandler(logger, feed, svc.Hazards, cfg.Broadcast, cfg.Http.CORSOrigins)
	systemHandler := system.NewHandler(logger, checkers)

	r := InitRouter(cfg, hazardHandler, navigationHandler, authHandler, liveHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	cfg *config.Config,
	hazardHandler *hazards.Handler,
	navigationHandler *navigation.Handler,
	authHandler *auth.Handler,
	liveHandler *live.Handler,
	systemHandler *system.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	// RequestID first so chi.Logger and handlers see it.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Http.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	mutations := middleware.Limit(cfg.RateLimit.MutationsRPS, cfg.RateLimit.MutationsBurst, 10*time.Minute, logger)
	external := middleware.Limit(cfg.RateLimit.ExternalRPS, cfg.RateLimit.ExternalBurst, 5*time.Minute, logger)

	// SYSTEM
	r.Get("/", systemHandler.Root)
	r.Get("/health", systemHandler.SystemHealth)
	r.Get("/ready", systemHandler.SystemReady)
	r.Handle("/metrics", promhttp.Handler())

	// HAZARDS
	r.Get("/speed-zones", hazardHandler.SpeedZoneList)
	r.Route("/hazards", func(hr chi.Router) {
		hr.Get("/", hazardHandler.HazardList)

		hr.Group(func(mr chi.Router) {
			mr.Use(mutations)
			mr.Post("/", hazardHandler.HazardCreate)
			mr.Delete("/{id}", hazardHandler.HazardDelete)
			mr.Put("/{id}/verify", hazardHandler.HazardVerify)
		})
	})

	// NAVIGATION
	r.Group(func(nr chi.Router) {
		nr.Use(external)
		nr.Get("/search", navigationHandler.Search)
		nr.Get("/route", navigationHandler.Route)
	})

	// AUTH
	r.With(mutations).Post("/auth/login", authHandler.Login)

	// LIVE
	r.Get("/ws", liveHandler.Subscribe)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
