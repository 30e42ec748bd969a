package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dailyjournal/internal/media"
	"dailyjournal/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type captureStore struct {
	deleted []string
}

func (s *captureStore) Save(ctx context.Context, f *media.File) error { return nil }

func (s *captureStore) Open(ctx context.Context, key string) (*media.File, error) {
	return nil, nil
}

func (s *captureStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

// Promote must read the same path parameter the route declares. An anonymous
// caller gets past parsing and is rejected by the role check, not by a
// parameter error.
func TestPromoteRoutedParam(t *testing.T) {
	t.Parallel()

	h := &AdminHandler{Users: &user.Service{}}
	r := chi.NewRouter()
	r.Post("/api/admin/promote/{userId}", h.Promote)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/promote/42", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/promote/abc", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid userId")
}

func TestReleaseProfilePicture(t *testing.T) {
	t.Parallel()

	store := &captureStore{}
	h := &AdminHandler{Media: &media.Service{Store: store}}

	h.releaseProfilePicture(context.Background(), "abc123_me.png")
	require.Equal(t, []string{"abc123_me.png"}, store.deleted)

	// Accounts without a photo release nothing.
	h.releaseProfilePicture(context.Background(), "")
	require.Len(t, store.deleted, 1)
}
