package db

import (
	"fmt"

	"dailyjournal/internal/auth"
	"dailyjournal/internal/friendship"
	"dailyjournal/internal/journal"
	"dailyjournal/internal/media"
	"dailyjournal/internal/user"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&user.User{},
		&user.Role{},
		&journal.Entry{},
		&friendship.FriendRequest{},
		&friendship.Friendship{},
		&media.File{},
	); err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_journal_user_date on journal_entries(user_id, date desc);`,
		`create index if not exists idx_journal_published on journal_entries(is_published, date desc);`,
		`create index if not exists idx_journal_ever_published on journal_entries(ever_published, date desc);`,
		`create index if not exists idx_requests_pair on friend_requests(sender_id, receiver_id);`,
		`create index if not exists idx_requests_receiver_status on friend_requests(receiver_id, status);`,
		`create index if not exists idx_friendships_pair on friendships(user_id, friend_id);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}

// Seed creates the fixed role rows and, when configured, the initial admin
// account. Idempotent across restarts.
func Seed(gdb *gorm.DB, adminEmail, adminPassword string) error {
	roles := map[string]*user.Role{}
	for _, name := range []string{user.RoleUser, user.RoleAdmin} {
		r := user.Role{Name: name}
		if err := gdb.Where("name = ?", name).FirstOrCreate(&r).Error; err != nil {
			return err
		}
		roles[name] = &r
	}

	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var count int64
	if err := gdb.Model(&user.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	admin := user.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: hash,
		Enabled:      true,
		Roles:        []user.Role{*roles[user.RoleUser], *roles[user.RoleAdmin]},
	}
	return gdb.Create(&admin).Error
}
