package service

import (
	"context"

	"github.com/kengni1234/kengni-finance-v2/internal/entity"
	"github.com/kengni1234/kengni-finance-v2/internal/repository"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
)

// Notification exposes the user's in-app notification feed.
type Notification interface {
	List(ctx context.Context, userID uint, limit int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

// NewNotification creates the notification service.
func NewNotification(log *logger.Logger, notificationRepo repository.NotificationRepository) Notification {
	return &notification{log: log, notificationRepo: notificationRepo}
}

type notification struct {
	log              *logger.Logger
	notificationRepo repository.NotificationRepository
}

func (s *notification) List(ctx context.Context, userID uint, limit int) ([]entity.Notification, error) {
	return s.notificationRepo.FindRecent(ctx, userID, limit)
}

func (s *notification) MarkRead(ctx context.Context, id, userID uint) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

func (s *notification) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
