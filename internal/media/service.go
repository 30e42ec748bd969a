package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailyjournal/internal/apperr"
	"dailyjournal/internal/auth"
	"dailyjournal/internal/journal"
	"dailyjournal/internal/user"

	"gorm.io/gorm"
)

type Service struct {
	DB    *gorm.DB
	Store Store
}

// Attach validates the batch against the per-entry limits, stores each file
// under a fresh key and appends the keys to the entry's media list. Blobs are
// written before the metadata commit; a failure mid-batch can orphan already
// written blobs, which is accepted.
func (s *Service) Attach(ctx context.Context, caller auth.Identity, journalID uint64, uploads []Upload) ([]string, error) {
	e, err := s.loadEntry(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(caller, e.UserID); err != nil {
		return nil, err
	}

	if err := CheckAttachments(len(e.MediaPaths), uploads); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(uploads))
	for _, u := range uploads {
		if u.Size == 0 {
			continue
		}
		key := StorageKey(u.Name)
		f := File{
			Filename:         key,
			OriginalFilename: u.Name,
			ContentType:      u.ContentType,
			Size:             u.Size,
			Data:             u.Data,
			CreatedAt:        time.Now(),
		}
		if err := s.Store.Save(ctx, &f); err != nil {
			return nil, fmt.Errorf("file upload failed: %w", err)
		}
		keys = append(keys, key)
	}

	e.MediaPaths = append(e.MediaPaths, keys...)
	if err := s.DB.WithContext(ctx).Save(e).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// Detach removes the key from the entry's media list and then deletes the
// blob. Blob deletion failure is surfaced but does not revert the already
// persisted metadata change.
func (s *Service) Detach(ctx context.Context, caller auth.Identity, journalID uint64, filename string) error {
	e, err := s.loadEntry(ctx, journalID)
	if err != nil {
		return err
	}
	if err := auth.RequireOwnerOrAdmin(caller, e.UserID); err != nil {
		return err
	}

	idx := -1
	for i, p := range e.MediaPaths {
		if p == filename {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.E(apperr.NotFound, "media not found in this journal")
	}

	e.MediaPaths = append(e.MediaPaths[:idx], e.MediaPaths[idx+1:]...)
	if err := s.DB.WithContext(ctx).Save(e).Error; err != nil {
		return err
	}

	if err := s.Store.Delete(ctx, filename); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", filename, err)
	}
	return nil
}

// Get opens a stored blob by key.
func (s *Service) Get(ctx context.Context, filename string) (*File, error) {
	return s.Store.Open(ctx, filename)
}

// Delete releases a blob. Satisfies journal.BlobRemover.
func (s *Service) Delete(ctx context.Context, key string) error {
	return s.Store.Delete(ctx, key)
}

// SetProfilePicture stores a single validated image and records its key on
// the identity record. Returns the stored key.
func (s *Service) SetProfilePicture(ctx context.Context, caller auth.Identity, u Upload) (string, error) {
	if err := CheckProfilePicture(u); err != nil {
		return "", err
	}

	key := StorageKey(u.Name)
	f := File{
		Filename:         key,
		OriginalFilename: u.Name,
		ContentType:      u.ContentType,
		Size:             u.Size,
		Data:             u.Data,
		CreatedAt:        time.Now(),
	}
	if err := s.Store.Save(ctx, &f); err != nil {
		return "", fmt.Errorf("failed to upload profile picture: %w", err)
	}

	err := s.DB.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", caller.ID).
		Update("profile_picture", key).Error
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) loadEntry(ctx context.Context, id uint64) (*journal.Entry, error) {
	var e journal.Entry
	err := s.DB.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.E(apperr.NotFound, "journal not found")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
