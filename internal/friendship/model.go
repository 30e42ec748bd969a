package friendship

import (
	"time"

	"dailyjournal/internal/user"
)

// Status is the friend-request lifecycle state. PENDING moves to ACCEPTED or
// REJECTED; both are terminal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

type FriendRequest struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	SenderID   uint64    `gorm:"index;not null" json:"senderId"`
	ReceiverID uint64    `gorm:"index;not null" json:"receiverId"`
	Status     Status    `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	Sender   *user.User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *user.User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

func (FriendRequest) TableName() string { return "friend_requests" }

// Friendship is the migration-era parallel table. It is written on accept for
// backward compatibility and merged into listings; the canonical friends
// relation is derived from accepted requests. Planned for retirement.
type Friendship struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"index;not null" json:"userId"`
	FriendID  uint64    `gorm:"index;not null" json:"friendId"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (Friendship) TableName() string { return "friendships" }
