package media

import "time"

// File is a stored blob plus the metadata needed to serve it. When the S3
// backend is active the Data column stays empty and bytes live in the bucket.
type File struct {
	Filename         string    `gorm:"primaryKey" json:"filename"`
	OriginalFilename string    `gorm:"not null" json:"originalFilename"`
	ContentType      string    `json:"contentType"`
	Size             int64     `gorm:"not null" json:"size"`
	Data             []byte    `gorm:"type:bytea" json:"-"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (File) TableName() string { return "media_files" }
