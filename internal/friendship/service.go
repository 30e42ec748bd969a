package friendship

import (
	"context"
	"errors"

	"dailyjournal/internal/apperr"
	"dailyjournal/internal/user"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// SendRequest evaluates the pair state and creates a PENDING request when
// nothing blocks it. The check and insert share a transaction, but there is
// no uniqueness constraint: a concurrent pair of sends can still race to two
// PENDING rows, which is accepted behavior.
func (s *Service) SendRequest(ctx context.Context, senderID, receiverID uint64) (string, error) {
	var msg string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range []uint64{senderID, receiverID} {
			var count int64
			if err := tx.Model(&user.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperr.E(apperr.NotFound, "user not found")
			}
		}

		friends, err := s.areFriends(tx, senderID, receiverID)
		if err != nil {
			return err
		}
		existing, err := s.requestBetween(tx, senderID, receiverID)
		if err != nil {
			return err
		}

		decision, err := DecideSend(senderID, receiverID, friends, existing)
		if err != nil {
			return err
		}
		msg = decision.Message
		if !decision.Create {
			return nil
		}
		return tx.Create(&FriendRequest{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Status:     StatusPending,
		}).Error
	})
	return msg, err
}

// Accept transitions the request and writes the legacy friendship row the
// older listing path still reads.
func (s *Service) Accept(ctx context.Context, requestID, callerID uint64) (string, error) {
	var msg string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := s.loadRequest(tx, requestID)
		if err != nil {
			return err
		}
		m, changed, err := req.Accept(callerID)
		if err != nil {
			return err
		}
		msg = m
		if !changed {
			return nil
		}
		if err := tx.Save(req).Error; err != nil {
			return err
		}
		return tx.Create(&Friendship{UserID: req.SenderID, FriendID: req.ReceiverID}).Error
	})
	return msg, err
}

func (s *Service) Reject(ctx context.Context, requestID, callerID uint64) (string, error) {
	req, err := s.loadRequest(s.DB.WithContext(ctx), requestID)
	if err != nil {
		return "", err
	}
	msg, changed, err := req.Reject(callerID)
	if err != nil {
		return "", err
	}
	if changed {
		if err := s.DB.WithContext(ctx).Save(req).Error; err != nil {
			return "", err
		}
	}
	return msg, nil
}

// Remove deletes both representations of the relation between the pair.
// Reports whether anything was removed; removing a non-relation is not an
// error.
func (s *Service) Remove(ctx context.Context, userID, friendID uint64) (bool, error) {
	removed := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(
			"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID,
		).Delete(&Friendship{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			removed = true
		}

		res = tx.Where(
			"status = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			StatusAccepted, userID, friendID, friendID, userID,
		).Delete(&FriendRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			removed = true
		}
		return nil
	})
	return removed, err
}

// Friends is the derived friends view: accepted-request counterparts merged
// with legacy-table counterparts, deduplicated by user id.
func (s *Service) Friends(ctx context.Context, userID uint64) ([]user.User, error) {
	db := s.DB.WithContext(ctx)

	var accepted []FriendRequest
	err := db.Preload("Sender.Roles").Preload("Receiver.Roles").
		Where("status = ? AND (sender_id = ? OR receiver_id = ?)", StatusAccepted, userID, userID).
		Find(&accepted).Error
	if err != nil {
		return nil, err
	}

	friends := make([]user.User, 0, len(accepted))
	seen := map[uint64]struct{}{}
	for _, req := range accepted {
		var counterpart *user.User
		if req.SenderID == userID {
			counterpart = req.Receiver
		} else {
			counterpart = req.Sender
		}
		if counterpart == nil {
			continue
		}
		if _, ok := seen[counterpart.ID]; ok {
			continue
		}
		seen[counterpart.ID] = struct{}{}
		friends = append(friends, *counterpart)
	}

	var legacy []user.User
	err = db.Model(&user.User{}).
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Find(&legacy).Error
	if err != nil {
		return nil, err
	}
	var legacyReverse []user.User
	err = db.Model(&user.User{}).
		Joins("JOIN friendships ON friendships.user_id = users.id").
		Where("friendships.friend_id = ?", userID).
		Find(&legacyReverse).Error
	if err != nil {
		return nil, err
	}

	for _, u := range append(legacy, legacyReverse...) {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		friends = append(friends, u)
	}

	return friends, nil
}

func (s *Service) AreFriends(ctx context.Context, a, b uint64) (bool, error) {
	return s.areFriends(s.DB.WithContext(ctx), a, b)
}

// Status reports the pair relation from a's point of view.
func (s *Service) Status(ctx context.Context, a, b uint64) (string, error) {
	friends, err := s.areFriends(s.DB.WithContext(ctx), a, b)
	if err != nil {
		return "", err
	}
	latest, err := s.requestBetween(s.DB.WithContext(ctx), a, b)
	if err != nil {
		return "", err
	}
	return PairStatus(a, friends, latest), nil
}

// PendingFor lists requests awaiting the user's decision.
func (s *Service) PendingFor(ctx context.Context, userID uint64) ([]FriendRequest, error) {
	var reqs []FriendRequest
	err := s.DB.WithContext(ctx).Preload("Sender.Roles").
		Where("receiver_id = ? AND status = ?", userID, StatusPending).
		Order("created_at desc").Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// SentBy lists pending requests the user initiated.
func (s *Service) SentBy(ctx context.Context, userID uint64) ([]FriendRequest, error) {
	var reqs []FriendRequest
	err := s.DB.WithContext(ctx).Preload("Receiver.Roles").
		Where("sender_id = ? AND status = ?", userID, StatusPending).
		Order("created_at desc").Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *Service) PendingCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&FriendRequest{}).
		Where("receiver_id = ? AND status = ?", userID, StatusPending).
		Count(&count).Error
	return count, err
}

// FriendCount counts the merged, deduplicated friends view, so the legacy
// table never double-counts.
func (s *Service) FriendCount(ctx context.Context, userID uint64) (int64, error) {
	friends, err := s.Friends(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(friends)), nil
}

// RemoveAllForUser clears every relation involving the user. Used when an
// admin deletes the account.
func (s *Service) RemoveAllForUser(ctx context.Context, userID uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).
			Delete(&FriendRequest{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? OR friend_id = ?", userID, userID).
			Delete(&Friendship{}).Error
	})
}

func (s *Service) areFriends(tx *gorm.DB, a, b uint64) (bool, error) {
	var count int64
	err := tx.Model(&FriendRequest{}).
		Where("status = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			StatusAccepted, a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = tx.Model(&Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) requestBetween(tx *gorm.DB, a, b uint64) (*FriendRequest, error) {
	var req FriendRequest
	err := tx.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		a, b, b, a,
	).Order("id desc").First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Service) loadRequest(tx *gorm.DB, id uint64) (*FriendRequest, error) {
	var req FriendRequest
	err := tx.First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.E(apperr.NotFound, "friend request not found")
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}
