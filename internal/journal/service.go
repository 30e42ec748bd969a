package journal

import (
	"context"
	"errors"
	"log"
	"time"

	"dailyjournal/internal/apperr"
	"dailyjournal/internal/auth"
	"dailyjournal/internal/user"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// BlobRemover releases stored media when entries are destroyed. Removal is
// best-effort: a blob that fails to delete never blocks the metadata change.
type BlobRemover interface {
	Delete(ctx context.Context, key string) error
}

type Service struct {
	DB    *gorm.DB
	Blobs BlobRemover
}

type CreateInput struct {
	Title      string
	Content    string
	Mood       string
	Tags       string
	Date       time.Time
	IsPrivate  bool
	MediaPaths []string
}

// Create stores a new entry owned by userID. The caller must be that user or
// an admin acting on their behalf. All publication flags start false.
func (s *Service) Create(ctx context.Context, caller auth.Identity, userID uint64, in CreateInput) (*Entry, error) {
	if err := auth.RequireOwnerOrAdmin(caller, userID); err != nil {
		return nil, err
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	e := Entry{
		UserID:     userID,
		Title:      in.Title,
		Content:    in.Content,
		Mood:       in.Mood,
		Tags:       in.Tags,
		Date:       in.Date,
		IsPrivate:  in.IsPrivate,
		MediaPaths: pq.StringArray(in.MediaPaths),
	}
	if e.MediaPaths == nil {
		e.MediaPaths = pq.StringArray{}
	}
	if err := s.DB.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ByID applies the read-visibility rule: owner, admin, or public entry.
func (s *Service) ByID(ctx context.Context, caller auth.Identity, id uint64) (*Entry, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.ReadableBy(caller) {
		return nil, apperr.E(apperr.Forbidden, "not authorized to access this private journal")
	}
	return e, nil
}

// ListByUser returns a user's entries; private ones are stripped unless the
// caller is the owner or an admin.
func (s *Service) ListByUser(ctx context.Context, caller auth.Identity, userID uint64) ([]Entry, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if caller.ID != userID && !caller.Admin {
		q = q.Where("is_private = false")
	}
	var entries []Entry
	if err := q.Order("date desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

type UpdateInput = CreateInput

func (s *Service) Update(ctx context.Context, caller auth.Identity, id uint64, in UpdateInput) (*Entry, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(caller, e.UserID); err != nil {
		return nil, err
	}

	e.Title = in.Title
	e.Content = in.Content
	e.Mood = in.Mood
	e.Tags = in.Tags
	e.Date = in.Date
	e.IsPrivate = in.IsPrivate
	if in.MediaPaths != nil {
		e.MediaPaths = pq.StringArray(in.MediaPaths)
	}

	if err := s.DB.WithContext(ctx).Save(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Delete destroys the entry and releases its media blobs.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id uint64) error {
	e, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.RequireOwnerOrAdmin(caller, e.UserID); err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(e).Error; err != nil {
		return err
	}
	s.releaseBlobs(ctx, e.MediaPaths)
	return nil
}

// DeleteAllForUser removes every entry owned by userID, blobs included.
// Used when an admin deletes the account.
func (s *Service) DeleteAllForUser(ctx context.Context, caller auth.Identity, userID uint64) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	var entries []Entry
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&Entry{}).Error; err != nil {
		return err
	}
	for _, e := range entries {
		s.releaseBlobs(ctx, e.MediaPaths)
	}
	return nil
}

// Search mirrors the single-criterion search endpoint: the first present
// parameter wins, then the optional date sort.
func (s *Service) Search(ctx context.Context, caller auth.Identity, userID uint64, mood, tag *string, date *time.Time, sort string) ([]Entry, error) {
	if err := auth.RequireOwnerOrAdmin(caller, userID); err != nil {
		return nil, err
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	switch {
	case mood != nil:
		q = q.Where("mood ILIKE ?", "%"+*mood+"%")
	case tag != nil:
		q = q.Where("tags ILIKE ?", "%"+*tag+"%")
	case date != nil:
		q = q.Where("date = ?", date.Format("2006-01-02"))
	case sort == "asc":
		q = q.Order("date asc")
	case sort == "desc":
		q = q.Order("date desc")
	}

	var entries []Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) Calendar(ctx context.Context, caller auth.Identity, userID uint64, start, end time.Time) ([]Entry, error) {
	if err := auth.RequireOwnerOrAdmin(caller, userID); err != nil {
		return nil, err
	}
	var entries []Entry
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date asc").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Filter returns the caller's own entries matching the present criteria.
func (s *Service) Filter(ctx context.Context, caller auth.Identity, c Criteria) ([]Entry, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", caller.ID)
	var entries []Entry
	if err := c.apply(q).Order("date desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Public listings expose only non-private entries, regardless of publish
// state, scoped to one user. No authentication required.

func (s *Service) PublicByUser(ctx context.Context, userID uint64, sort string) ([]Entry, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ? AND is_private = false", userID)
	if sort == "asc" {
		q = q.Order("date asc")
	} else {
		q = q.Order("date desc")
	}
	var entries []Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) PublicCalendar(ctx context.Context, userID uint64, start, end time.Time) ([]Entry, error) {
	var entries []Entry
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_private = false AND date BETWEEN ? AND ?",
			userID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date asc").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Published returns the global feed of currently published entries.
func (s *Service) Published(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := s.DB.WithContext(ctx).Preload("User").
		Where("is_published = true").Order("date desc").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) SearchPublished(ctx context.Context, c Criteria) ([]Entry, error) {
	q := s.DB.WithContext(ctx).Model(&Entry{}).Preload("User").
		Joins("JOIN users ON users.id = journal_entries.user_id").
		Where("journal_entries.is_published = true")
	var entries []Entry
	if err := c.applyFeed(q).Order("journal_entries.date desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// EverPublished is the admin moderation feed: everything that was published
// at some point, currently hidden entries included.
func (s *Service) EverPublished(ctx context.Context, caller auth.Identity) ([]Entry, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	var entries []Entry
	err := s.DB.WithContext(ctx).Preload("User").
		Where("ever_published = true").Order("date desc").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) SearchEverPublished(ctx context.Context, caller auth.Identity, c Criteria) ([]Entry, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Model(&Entry{}).Preload("User").
		Joins("JOIN users ON users.id = journal_entries.user_id").
		Where("journal_entries.ever_published = true")
	var entries []Entry
	if err := c.applyFeed(q).Order("journal_entries.date desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// AdminAll lists every entry, optionally filtered.
func (s *Service) AdminAll(ctx context.Context, caller auth.Identity, c Criteria) ([]Entry, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Model(&Entry{}).Preload("User").
		Joins("JOIN users ON users.id = journal_entries.user_id")
	var entries []Entry
	if err := c.applyFeed(q).Order("journal_entries.date desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Publication transitions. Each loads, authorizes, transitions, saves.

func (s *Service) Publish(ctx context.Context, caller auth.Identity, id uint64) (*Entry, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(caller, e.UserID); err != nil {
		return nil, err
	}
	e.Publish()
	if err := s.DB.WithContext(ctx).Save(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Unpublish is owner-only: an admin cannot unpublish on a user's behalf,
// that path is Hide.
func (s *Service) Unpublish(ctx context.Context, caller auth.Identity, id uint64) (*Entry, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.UserID != caller.ID {
		return nil, apperr.E(apperr.Forbidden, "you can only unpublish your own journals")
	}
	e.Unpublish()
	if err := s.DB.WithContext(ctx).Save(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Hide(ctx context.Context, caller auth.Identity, id uint64) (*Entry, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Hide()
	if err := s.DB.WithContext(ctx).Save(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Restore(ctx context.Context, caller auth.Identity, id uint64) (*Entry, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Restore(); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) load(ctx context.Context, id uint64) (*Entry, error) {
	var e Entry
	err := s.DB.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.E(apperr.NotFound, "journal not found")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) userExists(ctx context.Context, userID uint64) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&user.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.E(apperr.NotFound, "user not found")
	}
	return nil
}

func (s *Service) releaseBlobs(ctx context.Context, keys []string) {
	if s.Blobs == nil {
		return
	}
	for _, key := range keys {
		if err := s.Blobs.Delete(ctx, key); err != nil {
			log.Printf("release media %s: %v", key, err)
		}
	}
}
