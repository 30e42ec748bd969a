package media

import (
	"context"
	"errors"

	"dailyjournal/internal/apperr"

	"gorm.io/gorm"
)

// DBStore keeps blob bytes in the media_files table.
type DBStore struct {
	DB *gorm.DB
}

func (s *DBStore) Save(ctx context.Context, f *File) error {
	return s.DB.WithContext(ctx).Create(f).Error
}

func (s *DBStore) Open(ctx context.Context, key string) (*File, error) {
	var f File
	err := s.DB.WithContext(ctx).Where("filename = ?", key).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.E(apperr.NotFound, "media not found")
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *DBStore) Delete(ctx context.Context, key string) error {
	return s.DB.WithContext(ctx).Where("filename = ?", key).Delete(&File{}).Error
}
