package journal

import (
	"time"

	"dailyjournal/internal/user"

	"github.com/lib/pq"
)

// Entry is a single dated diary record. Visibility is the combination of
// IsPrivate (owner-scoped read access) and the publication flags governed by
// the transitions in visibility.go.
type Entry struct {
	ID      uint64    `gorm:"primaryKey" json:"id"`
	UserID  uint64    `gorm:"index;not null" json:"userId"`
	Title   string    `gorm:"not null" json:"title"`
	Content string    `gorm:"type:text" json:"content"`
	Date    time.Time `gorm:"type:date;index" json:"date"`
	Mood    string    `json:"mood"`

	// Tags is a free-form comma list, e.g. "#Work,#Happy".
	Tags string `json:"tags"`

	MediaPaths pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"mediaPaths"`

	IsPrivate     bool `gorm:"not null;default:false" json:"isPrivate"`
	IsPublished   bool `gorm:"not null;default:false" json:"isPublished"`
	EverPublished bool `gorm:"not null;default:false" json:"everPublished"`
	HiddenByAdmin bool `gorm:"not null;default:false" json:"hiddenByAdmin"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	User *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Entry) TableName() string { return "journal_entries" }
