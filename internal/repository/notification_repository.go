package repository

import (
	"context"

	"github.com/kengni1234/kengni-finance-v2/internal/entity"

	"gorm.io/gorm"
)

// NotificationRepository defines data operations over in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindRecent(ctx context.Context, userID uint, limit int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

// NewNotificationRepository creates a new GORM-based notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

type notificationRepository struct {
	db *gorm.DB
}

// Create inserts a notification.
func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// FindRecent returns the user's most recent notifications.
func (r *notificationRepository) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one notification as read.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

// CountUnread counts the user's unread notifications.
func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}
