package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dailyjournal/internal/apperr"

	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	t.Parallel()

	cases := map[apperr.Kind]int{
		apperr.NotFound:        http.StatusNotFound,
		apperr.Unauthenticated: http.StatusUnauthorized,
		apperr.Forbidden:       http.StatusForbidden,
		apperr.Conflict:        http.StatusConflict,
		apperr.InvalidState:    http.StatusConflict,
		apperr.InvalidArgument: http.StatusBadRequest,
		apperr.LimitExceeded:   http.StatusBadRequest,
		apperr.TooLarge:        http.StatusRequestEntityTooLarge,
		apperr.UnsupportedType: http.StatusUnsupportedMediaType,
	}
	for kind, want := range cases {
		require.Equal(t, want, statusOf(kind))
	}
}

func TestWriteErrorTaxonomy(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, apperr.E(apperr.NotFound, "journal not found"))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "journal not found", body["error"])
}

func TestWriteErrorInternalIsGeneric(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteFieldErrors(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeFieldErrors(rec, map[string]string{"title": "title is required"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "title is required", body.Errors["title"])
}
