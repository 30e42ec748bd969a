package handler

import (
	"context"
	"log"
	"net/http"
	"strings"

	"dailyjournal/internal/auth"
	"dailyjournal/internal/friendship"
	"dailyjournal/internal/journal"
	"dailyjournal/internal/media"
	"dailyjournal/internal/user"
)

// AdminHandler groups the moderation endpoints. Account deletion is the one
// cross-service operation: journals and friendships go first, then the
// identity itself, then its photo blob.
type AdminHandler struct {
	Users    *user.Service
	Journals *journal.Service
	Friends  *friendship.Service
	Media    *media.Service
}

func (h *AdminHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.Users.Promote(r.Context(), caller(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: msg})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	c := caller(r)
	if err := auth.RequireAdmin(c); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.Users.ByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Journals.DeleteAllForUser(r.Context(), c, id); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Friends.RemoveAllForUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Users.Delete(r.Context(), c, id); err != nil {
		writeError(w, err)
		return
	}
	h.releaseProfilePicture(r.Context(), u.ProfilePicture)

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "User and all associated data deleted successfully."})
}

// releaseProfilePicture drops the account's photo blob. Best effort, the
// account row is already gone.
func (h *AdminHandler) releaseProfilePicture(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := h.Media.Delete(ctx, key); err != nil {
		log.Printf("release profile picture %s: %v", key, err)
	}
}

// AllJournals lists every entry, optionally filtered.
func (h *AdminHandler) AllJournals(w http.ResponseWriter, r *http.Request) {
	c, err := journal.CriteriaFromValues(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.Journals.AdminAll(r.Context(), caller(r), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

// SearchUsers is the moderation-side user lookup.
func (h *AdminHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	if err := auth.RequireAdmin(caller(r)); err != nil {
		writeError(w, err)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	users, err := h.Users.Search(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(users))
}

func (h *AdminHandler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Journals.Delete(r.Context(), caller(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "Journal entry deleted successfully."})
}
