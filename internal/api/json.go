package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// writeError maps domain errors onto HTTP statuses: validation failures
// become 422 with field detail, missing records 404, rejected mail 502,
// anything else a logged 500.
func writeError(w http.ResponseWriter, action string, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  "validation failed",
			Fields: ve.Fields,
		})
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrDeliveryFailed):
		writeJSON(w, http.StatusBadGateway, errorBody("email delivery failed"))
	default:
		slog.Error(action+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
