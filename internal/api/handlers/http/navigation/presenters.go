package navigation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"saferoute/pkg/e"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	switch {
	case errors.Is(err, e.ErrInvalidInput):
		l.Warn("invalid input", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, e.ErrUpstream), errors.Is(err, e.ErrDeadline):
		l.Error("upstream failure", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream service unavailable"})
	default:
		l.Error("handler error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response failed", slog.Any("error", err))
	}
}
