package user

import (
	"context"
	"errors"
	"strings"

	"dailyjournal/internal/apperr"
	"dailyjournal/internal/auth"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Register creates an identity with the USER role. Email uniqueness is the
// Conflict case; everything else is surfaced as-is.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var count int64
	if err := s.DB.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.E(apperr.Conflict, "email already in use")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var role Role
	if err := s.DB.WithContext(ctx).Where("name = ?", RoleUser).First(&role).Error; err != nil {
		return nil, err
	}

	u := User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Enabled:      true,
		Roles:        []Role{role},
	}
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate verifies a credential against a stored identity.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.ByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.E(apperr.Unauthenticated, "invalid email or password")
		}
		return nil, err
	}
	if !u.Enabled {
		return nil, apperr.E(apperr.Forbidden, "user is blocked or disabled")
	}
	if !auth.ComparePassword(u.PasswordHash, password) {
		return nil, apperr.E(apperr.Unauthenticated, "invalid email or password")
	}
	return u, nil
}

func (s *Service) ByID(ctx context.Context, id uint64) (*User, error) {
	var u User
	err := s.DB.WithContext(ctx).Preload("Roles").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.E(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Service) ByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.DB.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.E(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ResolveIdentity backs the auth middleware.
func (s *Service) ResolveIdentity(ctx context.Context, email string) (auth.Identity, error) {
	u, err := s.ByEmail(ctx, email)
	if err != nil {
		return auth.Identity{}, err
	}
	return u.Identity(), nil
}

func (s *Service) List(ctx context.Context, caller auth.Identity) ([]User, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	var users []User
	if err := s.DB.WithContext(ctx).Preload("Roles").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]User, error) {
	var users []User
	q := "%" + strings.TrimSpace(query) + "%"
	err := s.DB.WithContext(ctx).Preload("Roles").
		Where("name ILIKE ? OR email ILIKE ?", q, q).
		Order("id").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

type UpdateInput struct {
	Name        *string
	Email       *string
	OldPassword *string
	Password    *string
}

// UpdateProfile applies the provided fields to the caller's own record. The
// old-password check runs only when both old and new passwords are present.
func (s *Service) UpdateProfile(ctx context.Context, caller auth.Identity, in UpdateInput) error {
	u, err := s.ByID(ctx, caller.ID)
	if err != nil {
		return err
	}

	if in.OldPassword != nil && in.Password != nil {
		if !auth.ComparePassword(u.PasswordHash, *in.OldPassword) {
			return apperr.E(apperr.InvalidArgument, "old password doesn't match")
		}
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		u.Email = strings.TrimSpace(strings.ToLower(*in.Email))
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}

	return s.DB.WithContext(ctx).Save(u).Error
}

// Promote grants the ADMIN role. Idempotent: promoting an admin reports the
// existing membership instead of failing.
func (s *Service) Promote(ctx context.Context, caller auth.Identity, userID uint64) (string, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return "", err
	}

	u, err := s.ByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u.IsAdmin() {
		return "User already has ADMIN role", nil
	}

	var role Role
	if err := s.DB.WithContext(ctx).Where("name = ?", RoleAdmin).First(&role).Error; err != nil {
		return "", err
	}
	if err := s.DB.WithContext(ctx).Model(u).Association("Roles").Append(&role); err != nil {
		return "", err
	}
	return "User promoted to ADMIN", nil
}

// Block flips enabled off so the user can no longer log in.
func (s *Service) Block(ctx context.Context, caller auth.Identity, userID uint64) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	u, err := s.ByID(ctx, userID)
	if err != nil {
		return err
	}
	u.Enabled = false
	return s.DB.WithContext(ctx).Save(u).Error
}

// ToggleStatus flips enabled and reports the resulting state.
func (s *Service) ToggleStatus(ctx context.Context, caller auth.Identity, userID uint64) (string, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return "", err
	}
	u, err := s.ByID(ctx, userID)
	if err != nil {
		return "", err
	}
	u.Enabled = !u.Enabled
	if err := s.DB.WithContext(ctx).Save(u).Error; err != nil {
		return "", err
	}
	if u.Enabled {
		return "User has been unblocked.", nil
	}
	return "User has been blocked.", nil
}

// Delete removes the identity and its role memberships. Dependent journal and
// friendship rows are removed by their owning services before this is called.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, userID uint64) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	u, err := s.ByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(u).Association("Roles").Clear(); err != nil {
			return err
		}
		return tx.Delete(u).Error
	})
}
