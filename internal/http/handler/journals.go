package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"dailyjournal/internal/journal"
	"dailyjournal/internal/media"

	"github.com/go-chi/chi/v5"
)

type JournalHandler struct {
	Svc   *journal.Service
	Media *media.Service
}

type journalReq struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Mood       string   `json:"mood"`
	Tags       string   `json:"tags"`
	Date       string   `json:"date"`
	IsPrivate  bool     `json:"isPrivate"`
	MediaPaths []string `json:"mediaPaths"`
}

func (req *journalReq) toInput() (journal.CreateInput, map[string]string) {
	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "title is required"
	}
	date, err := parseDate(req.Date)
	if err != nil {
		fields["date"] = "a valid date (YYYY-MM-DD) is required"
	}
	if len(fields) > 0 {
		return journal.CreateInput{}, fields
	}
	return journal.CreateInput{
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		Mood:       req.Mood,
		Tags:       req.Tags,
		Date:       date,
		IsPrivate:  req.IsPrivate,
		MediaPaths: req.MediaPaths,
	}, nil
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req journalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	in, fields := req.toInput()
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	e, err := h.Svc.Create(r.Context(), caller(r), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJournalDTO(*e))
}

func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req journalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	in, fields := req.toInput()
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	e, err := h.Svc.Update(r.Context(), caller(r), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTO(*e))
}

func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), caller(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "Journal entry deleted successfully."})
}

func (h *JournalHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := h.Svc.Publish(r.Context(), caller(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTO(*e))
}

func (h *JournalHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := h.Svc.Unpublish(r.Context(), caller(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTO(*e))
}

func (h *JournalHandler) Hide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := h.Svc.Hide(r.Context(), caller(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTO(*e))
}

func (h *JournalHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := h.Svc.Restore(r.Context(), caller(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalDTO(*e))
}

// Upload attaches up to four media files to an entry.
func (h *JournalHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := r.ParseMultipartForm(media.MaxBatchSize + 1<<20); err != nil {
		http.Error(w, "bad multipart form", http.StatusBadRequest)
		return
	}
	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		writeFieldErrors(w, map[string]string{"files": "no files provided"})
		return
	}

	uploads := make([]media.Upload, 0, len(parts))
	for _, fh := range parts {
		f, err := fh.Open()
		if err != nil {
			writeError(w, err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, err)
			return
		}
		uploads = append(uploads, media.Upload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        data,
		})
	}

	keys, err := h.Media.Attach(r.Context(), caller(r), id, uploads)
	if err != nil {
		writeError(w, err)
		return
	}

	urls := make([]string, 0, len(keys))
	for _, k := range keys {
		urls = append(urls, "/api/journals/media/"+k)
	}
	writeJSON(w, http.StatusOK, urls)
}

func (h *JournalHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	filename := chi.URLParam(r, "filename")
	if err := h.Media.Detach(r.Context(), caller(r), id, filename); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "Media file deleted successfully."})
}
