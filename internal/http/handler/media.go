package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"dailyjournal/internal/media"

	"github.com/go-chi/chi/v5"
)

type MediaHandler struct {
	Svc *media.Service
}

// Serve streams a stored blob. Keys are content-addressed by a random uuid
// prefix, so the response is cacheable forever and validated with a weak ETag.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	f, err := h.Svc.Get(r.Context(), filename)
	if err != nil {
		writeError(w, err)
		return
	}

	etag := fmt.Sprintf(`W/"%s-%d-%d"`, f.Filename, f.Size, f.CreatedAt.Unix())
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.FormatInt(f.Size, 10))
	w.Header().Set("Content-Disposition", `inline; filename="`+f.OriginalFilename+`"`)
	_, _ = w.Write(f.Data)
}
