package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"saferoute/internal/domain"
	"saferoute/internal/middleware"
	"saferoute/pkg/e"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Authenticator interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
}

type Handler struct {
	logger        *slog.Logger
	Authenticator Authenticator
}

func NewHandler(logger *slog.Logger, authenticator Authenticator) *Handler {
	return &Handler{
		logger:        logger,
		Authenticator: authenticator,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	l := h.logger
	if reqID := chimw.GetReqID(r.Context()); reqID != "" {
		l = l.With(slog.String("request_id", reqID))
	}

	req, err := middleware.BindJSON[domain.LoginRequest](w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	resp, err := h.Authenticator.Login(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, e.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	case errors.Is(err, e.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		l.Error("login failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
