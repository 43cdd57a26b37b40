package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gatepass/internal/errors"
	"gatepass/internal/model"
	"gatepass/internal/repository"
)

// NotificationService handles the per-user notification log.
type NotificationService interface {
	ListForUser(ctx context.Context, userID uint) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uint) (*model.Notification, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// ListForUser returns the user's notifications, newest first.
func (s *notificationService) ListForUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkRead flips the read flag. Marking an already-read notification is a
// no-op, not an error; only a missing ID fails.
func (s *notificationService) MarkRead(ctx context.Context, id uint) (*model.Notification, error) {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}

	if !notification.IsRead {
		if err := s.repo.MarkRead(ctx, id); err != nil {
			return nil, fmt.Errorf("mark notification read: %w", err)
		}
		notification.IsRead = true
	}

	return notification, nil
}
