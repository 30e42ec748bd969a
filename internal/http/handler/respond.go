package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"dailyjournal/internal/apperr"
	"dailyjournal/internal/auth"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP statuses. Anything outside the
// taxonomy is logged and surfaced as a generic server error.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "something went wrong: " + err.Error()})
		return
	}
	writeJSON(w, statusOf(kind), map[string]any{"error": err.Error()})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.Conflict, apperr.InvalidState:
		return http.StatusConflict
	case apperr.InvalidArgument, apperr.LimitExceeded:
		return http.StatusBadRequest
	case apperr.TooLarge:
		return http.StatusRequestEntityTooLarge
	case apperr.UnsupportedType:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// writeFieldErrors returns validation failures as a field→message mapping.
func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
}

var errInvalidUserID = apperr.E(apperr.InvalidArgument, "invalid userId")

type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func caller(r *http.Request) auth.Identity {
	id, _ := auth.CallerFromContext(r.Context())
	return id
}

func pathID(r *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apperr.E(apperr.InvalidArgument, "invalid %s", name)
	}
	return id, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperr.E(apperr.InvalidArgument, "invalid date, expected YYYY-MM-DD")
	}
	return t, nil
}
