package notification

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService defines the interface for the notification feed
type NotificationService interface {
	CreateNotification(ctx context.Context, title, message string, notifType NotificationType) error
	ListNotifications(ctx context.Context) ([]Notification, error)
	GetUnreadCount(ctx context.Context) (int, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) error
}

// NotificationServiceImpl implements NotificationService
type NotificationServiceImpl struct {
	NotificationRepo NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo NotificationRepository) NotificationService {
	return &NotificationServiceImpl{
		NotificationRepo: notificationRepo,
	}
}

// CreateNotification appends an entry to the feed
func (s *NotificationServiceImpl) CreateNotification(ctx context.Context, title, message string, notifType NotificationType) error {
	n := &Notification{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Message:   message,
		Type:      notifType,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	return s.NotificationRepo.Insert(ctx, n)
}

// ListNotifications returns the feed, newest first
func (s *NotificationServiceImpl) ListNotifications(ctx context.Context) ([]Notification, error) {
	return s.NotificationRepo.FindAll(ctx)
}

// GetUnreadCount returns the number of unread notifications
func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context) (int, error) {
	return s.NotificationRepo.CountUnread(ctx)
}

// MarkAsRead flags a single notification as read
func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, id string) error {
	return s.NotificationRepo.MarkAsRead(ctx, id)
}

// MarkAllAsRead flags the whole feed as read
func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context) error {
	return s.NotificationRepo.MarkAllAsRead(ctx)
}
