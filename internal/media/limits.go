package media

import (
	"strings"

	"dailyjournal/internal/apperr"

	"github.com/google/uuid"
)

const (
	MaxFilesPerEntry      = 4
	MaxFileSize           = 3 << 20  // per file
	MaxBatchSize          = 10 << 20 // per upload batch
	MaxProfilePictureSize = 2 << 20
)

var allowedExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {},
	"pdf": {}, "mp3": {}, "wav": {}, "ogg": {},
}

var allowedPictureTypes = map[string]struct{}{
	"image/jpeg": {}, "image/jpg": {}, "image/png": {}, "image/webp": {},
}

// Upload is one file received from a multipart request, fully read.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// CheckAttachments enforces the per-entry attachment limits: total count,
// extension allowlist, per-file size, cumulative batch size. Empty parts are
// ignored here and skipped at store time.
func CheckAttachments(existing int, uploads []Upload) error {
	incoming := 0
	for _, u := range uploads {
		if u.Size > 0 {
			incoming++
		}
	}
	if existing+incoming > MaxFilesPerEntry {
		return apperr.E(apperr.LimitExceeded,
			"upload limit reached, only %d files allowed per journal", MaxFilesPerEntry)
	}

	var total int64
	for _, u := range uploads {
		if u.Size == 0 {
			continue
		}
		ext := strings.ToLower(u.Name[strings.LastIndex(u.Name, ".")+1:])
		if _, ok := allowedExtensions[ext]; !ok {
			return apperr.E(apperr.UnsupportedType, "file type not allowed: %s", u.Name)
		}
		if u.Size > MaxFileSize {
			return apperr.E(apperr.TooLarge, "file exceeds 3MB: %s", u.Name)
		}
		total += u.Size
		if total > MaxBatchSize {
			return apperr.E(apperr.TooLarge, "total upload size exceeds 10MB")
		}
	}
	return nil
}

// CheckProfilePicture enforces the single-file profile photo rules.
func CheckProfilePicture(u Upload) error {
	if u.Size == 0 {
		return apperr.E(apperr.InvalidArgument, "file is empty or missing")
	}
	if u.Size > MaxProfilePictureSize {
		return apperr.E(apperr.TooLarge, "file size exceeds 2MB limit")
	}
	if _, ok := allowedPictureTypes[strings.ToLower(u.ContentType)]; !ok {
		return apperr.E(apperr.UnsupportedType, "invalid file type, only PNG, JPEG, JPG, WEBP are allowed")
	}
	return nil
}

// StorageKey generates a unique blob key that keeps the original name
// readable. Collisions are assumed negligible.
func StorageKey(original string) string {
	return uuid.New().String() + "_" + original
}
