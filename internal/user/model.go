package user

import (
	"time"

	"dailyjournal/internal/auth"
)

// Role names form a fixed set; membership is a set of tags, not a type
// hierarchy.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type Role struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type User struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Enabled        bool      `gorm:"not null;default:true" json:"enabled"`
	Roles          []Role    `gorm:"many2many:user_roles" json:"roles"`
	CreatedAt      time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool { return u.HasRole(RoleAdmin) }

func (u *User) Identity() auth.Identity {
	return auth.Identity{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Enabled: u.Enabled,
		Admin:   u.IsAdmin(),
	}
}
