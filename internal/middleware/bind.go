package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"saferoute/pkg/e"
)

const maxBodyBytes = 1 << 20

// BindJSON decodes exactly one JSON object from the request body. Anything
// after the object is rejected.
func BindJSON[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var target T

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&target); err != nil {
		return target, e.Wrap("invalid JSON", e.ErrInvalidInput)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return target, e.Wrap("invalid JSON", e.ErrInvalidInput)
	}
	return target, nil
}
