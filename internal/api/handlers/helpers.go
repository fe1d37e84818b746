package handlers

import (
	"errors"
	"net/http"
	"parcel-network-service/internal/domain"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// writeJSON encodes before writing the status line so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
// Storage and unexpected failures are logged and hidden from clients.
func writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoPath):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("op", op).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
