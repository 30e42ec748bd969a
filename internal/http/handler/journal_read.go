package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"dailyjournal/internal/journal"
)

type JournalReadHandler struct {
	Svc *journal.Service
}

type journalDTO struct {
	ID            uint64   `json:"id"`
	UserID        uint64   `json:"userId"`
	UserName      string   `json:"userName,omitempty"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Mood          string   `json:"mood"`
	Tags          string   `json:"tags"`
	Date          string   `json:"date"`
	MediaPaths    []string `json:"mediaPaths"`
	IsPrivate     bool     `json:"isPrivate"`
	IsPublished   bool     `json:"isPublished"`
	EverPublished bool     `json:"everPublished"`
	HiddenByAdmin bool     `json:"hiddenByAdmin"`
}

func toJournalDTO(e journal.Entry) journalDTO {
	dto := journalDTO{
		ID:            e.ID,
		UserID:        e.UserID,
		Title:         e.Title,
		Content:       e.Content,
		Mood:          e.Mood,
		Tags:          e.Tags,
		Date:          e.Date.Format("2006-01-02"),
		MediaPaths:    []string(e.MediaPaths),
		IsPrivate:     e.IsPrivate,
		IsPublished:   e.IsPublished,
		EverPublished: e.EverPublished,
		HiddenByAdmin: e.HiddenByAdmin,
	}
	if dto.MediaPaths == nil {
		dto.MediaPaths = []string{}
	}
	if e.User != nil {
		dto.UserName = e.User.Name
	}
	return dto
}

func toJournalDTOs(entries []journal.Entry) []journalDTO {
	out := make([]journalDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toJournalDTO(e))
	}
	return out
}

func (h *JournalReadHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := h.Svc.ByID(r.Context(), caller(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTO(*e))
}

func (h *JournalReadHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.Svc.ListByUser(r.Context(), caller(r), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

// Search handles the single-criterion endpoint: ?userId=&mood=&tag=&date=&sort=
func (h *JournalReadHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var mood, tag *string
	if m := strings.TrimSpace(r.URL.Query().Get("mood")); m != "" {
		mood = &m
	}
	if t := strings.TrimSpace(r.URL.Query().Get("tag")); t != "" {
		tag = &t
	}
	var date *time.Time
	if d := strings.TrimSpace(r.URL.Query().Get("date")); d != "" {
		t, err := parseDate(d)
		if err != nil {
			writeError(w, err)
			return
		}
		date = &t
	}
	sort := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sort")))

	entries, err := h.Svc.Search(r.Context(), caller(r), userID, mood, tag, date, sort)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

// Calendar returns entries in a closed date range: ?userId=&start=&end=
func (h *JournalReadHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.Svc.Calendar(r.Context(), caller(r), userID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

// Filter composes predicates only for the present parameters.
func (h *JournalReadHandler) Filter(w http.ResponseWriter, r *http.Request) {
	c, err := journal.CriteriaFromValues(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.Svc.Filter(r.Context(), caller(r), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

// Public endpoints: non-private entries of one user, no auth required.

func (h *JournalReadHandler) PublicByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.Svc.PublicByUser(r.Context(), userID, "")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

func (h *JournalReadHandler) PublicSearch(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sort := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sort")))
	entries, err := h.Svc.PublicByUser(r.Context(), userID, sort)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

func (h *JournalReadHandler) PublicCalendar(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.Svc.PublicCalendar(r.Context(), userID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

// Published feed: currently published entries across all users.

func (h *JournalReadHandler) Published(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.Published(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

func (h *JournalReadHandler) SearchPublished(w http.ResponseWriter, r *http.Request) {
	c, err := journal.CriteriaFromValues(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.Svc.SearchPublished(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

// Admin moderation feed: everything ever published, hidden included.

func (h *JournalReadHandler) EverPublished(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.EverPublished(r.Context(), caller(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

func (h *JournalReadHandler) SearchEverPublished(w http.ResponseWriter, r *http.Request) {
	c, err := journal.CriteriaFromValues(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.Svc.SearchEverPublished(r.Context(), caller(r), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTOs(entries))
}

func queryUserID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		return 0, errInvalidUserID
	}
	return id, nil
}
